package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/dealflow-backend/internal/logger"
  "github.com/yungbote/dealflow-backend/internal/services"
)

type SearchHandler struct {
  log           *logger.Logger
  searchService services.SearchService
}

func NewSearchHandler(log *logger.Logger, searchService services.SearchService) *SearchHandler {
  return &SearchHandler{
    log:           log.With("handler", "SearchHandler"),
    searchService: searchService,
  }
}

func (h *SearchHandler) ListSearches(c *gin.Context) {
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

  searches, err := h.searchService.List(c.Request.Context(), skip, limit)
  if err != nil {
    h.log.Error("ListSearches failed", "error", err)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, searches)
}

func (h *SearchHandler) GetSearch(c *gin.Context) {
  id, err := paramInt64(c, "search_id")
  if err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  search, err := h.searchService.Get(c.Request.Context(), id)
  if err != nil {
    h.log.Error("GetSearch failed", "error", err, "search_id", id)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, search)
}
