package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/dealflow-backend/internal/logger"
  "github.com/yungbote/dealflow-backend/internal/repos"
  "github.com/yungbote/dealflow-backend/internal/services"
)

type PersonHandler struct {
  log           *logger.Logger
  personService services.PersonService
}

func NewPersonHandler(log *logger.Logger, personService services.PersonService) *PersonHandler {
  return &PersonHandler{
    log:           log.With("handler", "PersonHandler"),
    personService: personService,
  }
}

func (h *PersonHandler) ListPeople(c *gin.Context) {
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

  filter := repos.PersonListFilter{
    Name:       c.Query("name"),
    SourceName: c.Query("source_name"),
    CreatedAt:  createdAt,
    ListID:     listID,
    Skip:       skip,
    Limit:      limit,
  }

  people, err := h.personService.List(c.Request.Context(), filter)
  if err != nil {
    h.log.Error("ListPeople failed", "error", err)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, people)
}

func (h *PersonHandler) GetPerson(c *gin.Context) {
  id, err := paramInt64(c, "person_id")
  if err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  person, err := h.personService.Get(c.Request.Context(), id)
  if err != nil {
    h.log.Error("GetPerson failed", "error", err, "person_id", id)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, person)
}

type HidePeopleRequest struct {
  IDs []int64 `json:"ids" binding:"required"`
}

func (h *PersonHandler) HidePeople(c *gin.Context) {
  var req HidePeopleRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  if _, err := h.personService.Hide(c.Request.Context(), req.IDs); err != nil {
    h.log.Error("HidePeople failed", "error", err, "ids", req.IDs)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "People hidden successfully"})
}

type PersonCommentUpdate struct {
  ID      int64  `json:"id" binding:"required"`
  Comment string `json:"comment"`
}

func (h *PersonHandler) EditComments(c *gin.Context) {
  var req PersonCommentUpdate
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  if err := h.personService.EditComments(c.Request.Context(), req.ID, req.Comment); err != nil {
    h.log.Error("EditComments failed", "error", err, "person_id", req.ID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Comments updated successfully for all related persons"})
}

type PersonRelevanceUpdate struct {
  ID             int64  `json:"id" binding:"required"`
  RelevenceStage string `json:"relevence_stage" binding:"required"`
}

func (h *PersonHandler) EditRelevence(c *gin.Context) {
  var req PersonRelevanceUpdate
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  if err := h.personService.EditRelevence(c.Request.Context(), req.ID, req.RelevenceStage); err != nil {
    h.log.Error("EditRelevence failed", "error", err, "person_id", req.ID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Relevance stage updated successfully for all related persons"})
}
