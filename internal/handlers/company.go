package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/dealflow-backend/internal/logger"
  "github.com/yungbote/dealflow-backend/internal/repos"
  "github.com/yungbote/dealflow-backend/internal/services"
)

type CompanyHandler struct {
  log            *logger.Logger
  companyService services.CompanyService
}

func NewCompanyHandler(log *logger.Logger, companyService services.CompanyService) *CompanyHandler {
  return &CompanyHandler{
    log:            log.With("handler", "CompanyHandler"),
    companyService: companyService,
  }
}

func (h *CompanyHandler) ListCompanies(c *gin.Context) {
  skip, err := queryInt(c, "skip", 0)
  if err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }
  limit, err := queryInt(c, "limit", 10)
  if err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }
  listID, err := queryInt64Ptr(c, "list_id")
  if err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }
  createdAt, err := queryDate(c, "created_at")
  if err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  filter := repos.CompanyListFilter{
    Name:       c.Query("name"),
    SourceName: c.Query("source_name"),
    CreatedAt:  createdAt,
    ListID:     listID,
    Skip:       skip,
    Limit:      limit,
  }

  companies, err := h.companyService.List(c.Request.Context(), filter)
  if err != nil {
    h.log.Error("ListCompanies failed", "error", err)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, companies)
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
  id, err := paramInt64(c, "company_id")
  if err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  company, err := h.companyService.Get(c.Request.Context(), id)
  if err != nil {
    h.log.Error("GetCompany failed", "error", err, "company_id", id)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, company)
}

type HideCompaniesRequest struct {
  IDs []int64 `json:"ids" binding:"required"`
}

func (h *CompanyHandler) HideCompanies(c *gin.Context) {
  var req HideCompaniesRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  if _, err := h.companyService.Hide(c.Request.Context(), req.IDs); err != nil {
    h.log.Error("HideCompanies failed", "error", err, "ids", req.IDs)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Companies hidden successfully"})
}

type CompanyCommentUpdate struct {
  ID      int64  `json:"id" binding:"required"`
  Comment string `json:"comment"`
}

func (h *CompanyHandler) EditComments(c *gin.Context) {
  var req CompanyCommentUpdate
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  if err := h.companyService.EditComments(c.Request.Context(), req.ID, req.Comment); err != nil {
    h.log.Error("EditComments failed", "error", err, "company_id", req.ID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Comments updated successfully for all related companies"})
}

type CompanyRelevanceUpdate struct {
  ID             int64  `json:"id" binding:"required"`
  RelevenceStage string `json:"relevence_stage" binding:"required"`
}

func (h *CompanyHandler) EditRelevence(c *gin.Context) {
  var req CompanyRelevanceUpdate
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  if err := h.companyService.EditRelevence(c.Request.Context(), req.ID, req.RelevenceStage); err != nil {
    h.log.Error("EditRelevence failed", "error", err, "company_id", req.ID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Relevance stage updated successfully for all related companies"})
}
