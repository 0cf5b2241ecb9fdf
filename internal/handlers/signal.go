package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/dealflow-backend/internal/logger"
  "github.com/yungbote/dealflow-backend/internal/repos"
  "github.com/yungbote/dealflow-backend/internal/services"
)

type SignalHandler struct {
  log           *logger.Logger
  signalService services.SignalService
}

func NewSignalHandler(log *logger.Logger, signalService services.SignalService) *SignalHandler {
  return &SignalHandler{
    log:           log.With("handler", "SignalHandler"),
    signalService: signalService,
  }
}

func (h *SignalHandler) ListSignals(c *gin.Context) {
  skip, err := queryInt(c, "skip", 0)
  if err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }
  limit, err := queryInt(c, "limit", 50)
  if err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }
  createdAt, err := queryDate(c, "created_at")
  if err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  signals, err := h.signalService.List(c.Request.Context(), repos.SignalListFilter{
    Name:      c.Query("name"),
    CreatedAt: createdAt,
    Skip:      skip,
    Limit:     limit,
  })
  if err != nil {
    h.log.Error("ListSignals failed", "error", err)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, signals)
}

func (h *SignalHandler) GetSignal(c *gin.Context) {
  id, err := paramInt64(c, "signal_id")
  if err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  signal, err := h.signalService.Get(c.Request.Context(), id)
  if err != nil {
    h.log.Error("GetSignal failed", "error", err, "signal_id", id)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, signal)
}
