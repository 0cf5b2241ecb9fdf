package handlers

import (
  "fmt"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/dealflow-backend/internal/logger"
  "github.com/yungbote/dealflow-backend/internal/services"
)

type ListHandler struct {
  log         *logger.Logger
  listService services.ListService
}

func NewListHandler(log *logger.Logger, listService services.ListService) *ListHandler {
  return &ListHandler{
    log:         log.With("handler", "ListHandler"),
    listService: listService,
  }
}

func (h *ListHandler) GetAllLists(c *gin.Context) {
  lists, err := h.listService.GetAll(c.Request.Context())
  if err != nil {
    h.log.Error("GetAllLists failed", "error", err)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, lists)
}

func (h *ListHandler) GetListEntities(c *gin.Context) {
  id, err := paramInt64(c, "list_id")
  if err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  entities, err := h.listService.GetEntities(c.Request.Context(), id)
  if err != nil {
    h.log.Error("GetListEntities failed", "error", err, "list_id", id)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, entities)
}

type ListCreateRequest struct {
  Name string `json:"name" binding:"required"`
  Type string `json:"type" binding:"required"`
}

func (h *ListHandler) CreateList(c *gin.Context) {
  var req ListCreateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  list, err := h.listService.Create(c.Request.Context(), req.Name, req.Type)
  if err != nil {
    h.log.Error("CreateList failed", "error", err, "name", req.Name, "type", req.Type)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, list)
}

func (h *ListHandler) DeleteList(c *gin.Context) {
  id, err := paramInt64(c, "list_id")
  if err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  if err := h.listService.Delete(c.Request.Context(), id); err != nil {
    h.log.Error("DeleteList failed", "error", err, "list_id", id)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": fmt.Sprintf("List with id %d has been deleted.", id)})
}

type ModifyListRequest struct {
  Operation string  `json:"operation" binding:"required"`
  ItemIDs   []int64 `json:"item_ids" binding:"required"`
}

func (h *ListHandler) ModifyList(c *gin.Context) {
  id, err := paramInt64(c, "list_id")
  if err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  var req ModifyListRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusUnprocessableEntity, err)
    return
  }

  result, err := h.listService.Modify(c.Request.Context(), id, req.Operation, req.ItemIDs)
  if err != nil {
    h.log.Error("ModifyList failed", "error", err, "list_id", id, "operation", req.Operation)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, result)
}
