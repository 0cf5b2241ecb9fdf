package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/dealflow-backend/internal/apierr"
)

// Error bodies are {"detail": <message>}, matching what the tool's frontend
// already consumes.
type ErrorEnvelope struct {
  Detail string `json:"detail"`
}

func RespondError(c *gin.Context, status int, err error) {
  msg := "Internal server error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{Detail: msg})
}

// RespondServiceError unwraps the status carried by apierr.Error; anything
// else is an opaque 500.
func RespondServiceError(c *gin.Context, err error) {
  var apiErr *apierr.Error
  if errors.As(err, &apiErr) {
    RespondError(c, apiErr.Status, apiErr)
    return
  }
  RespondError(c, http.StatusInternalServerError, err)
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}
