package services

import (
  "context"
  "fmt"
  "net/http"

  "gorm.io/gorm"

  "github.com/yungbote/dealflow-backend/internal/apierr"
  "github.com/yungbote/dealflow-backend/internal/logger"
  "github.com/yungbote/dealflow-backend/internal/repos"
  "github.com/yungbote/dealflow-backend/internal/types"
)

const (
  ListOperationAdd    = "add"
  ListOperationRemove = "remove"
)

// ListEntities carries one list's members; exactly one side is populated,
// determined by the list's declared type.
type ListEntities struct {
  Companies []*types.Company `json:"companies,omitempty"`
  People    []*types.Person  `json:"people,omitempty"`
}

type ModifyListResult struct {
  Message       string `json:"message"`
  AlreadyExists int    `json:"already_exists"`
}

type ListService interface {
  Create(ctx context.Context, name, listType string) (*types.List, error)
  Delete(ctx context.Context, id int64) error
  GetAll(ctx context.Context) ([]*types.List, error)
  GetEntities(ctx context.Context, listID int64) (*ListEntities, error)
  Modify(ctx context.Context, listID int64, operation string, itemIDs []int64) (*ModifyListResult, error)
}

type listService struct {
  db          *gorm.DB
  log         *logger.Logger
  listRepo    repos.ListRepo
  companyRepo repos.CompanyRepo
  personRepo  repos.PersonRepo
}

func NewListService(
  db *gorm.DB,
  baseLog *logger.Logger,
  listRepo repos.ListRepo,
  companyRepo repos.CompanyRepo,
  personRepo repos.PersonRepo,
) ListService {
  serviceLog := baseLog.With("service", "ListService")
  return &listService{
    db:          db,
    log:         serviceLog,
    listRepo:    listRepo,
    companyRepo: companyRepo,
    personRepo:  personRepo,
  }
}

func (ls *listService) Create(ctx context.Context, name, listType string) (*types.List, error) {
  if listType != types.ListTypeCompany && listType != types.ListTypePerson {
    return nil, apierr.New(http.StatusBadRequest, "invalid_list_type", fmt.Errorf("Invalid list type. Must be 'company' or 'person'."))
  }

  existing, err := ls.listRepo.FindByNameAndType(ctx, nil, name, listType)
  if err != nil {
    return nil, apierr.New(http.StatusInternalServerError, "create_list_failed", fmt.Errorf("check existing list: %w", err))
  }
  if existing != nil {
    return nil, apierr.New(http.StatusBadRequest, "list_exists", fmt.Errorf("A %s list with the name '%s' already exists.", listType, name))
  }

  list := &types.List{Name: name, Type: listType}
  if _, err := ls.listRepo.Create(ctx, nil, list); err != nil {
    ls.log.Error("Create list failed", "error", err, "name", name, "type", listType)
    return nil, apierr.New(http.StatusInternalServerError, "create_list_failed", fmt.Errorf("create list: %w", err))
  }
  return list, nil
}

func (ls *listService) Delete(ctx context.Context, id int64) error {
  if _, err := ls.getList(ctx, id); err != nil {
    return err
  }
  if err := ls.listRepo.DeleteWithAssociations(ctx, nil, id); err != nil {
    ls.log.Error("Delete list failed", "error", err, "list_id", id)
    return apierr.New(http.StatusInternalServerError, "delete_list_failed", fmt.Errorf("delete list: %w", err))
  }
  return nil
}

func (ls *listService) GetAll(ctx context.Context) ([]*types.List, error) {
  lists, err := ls.listRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, apierr.New(http.StatusInternalServerError, "get_lists_failed", fmt.Errorf("load lists: %w", err))
  }
  return lists, nil
}

func (ls *listService) GetEntities(ctx context.Context, listID int64) (*ListEntities, error) {
  list, err := ls.getList(ctx, listID)
  if err != nil {
    return nil, err
  }

  memberIDs, err := ls.listRepo.GetAssociatedEntityIDs(ctx, nil, listID, list.Type)
  if err != nil {
    return nil, apierr.New(http.StatusInternalServerError, "get_list_entities_failed", fmt.Errorf("load list members: %w", err))
  }

  switch list.Type {
  case types.ListTypeCompany:
    companies, err := ls.companyRepo.GetByIDs(ctx, nil, memberIDs)
    if err != nil {
      return nil, apierr.New(http.StatusInternalServerError, "get_list_entities_failed", fmt.Errorf("load companies: %w", err))
    }
    return &ListEntities{Companies: companies}, nil
  case types.ListTypePerson:
    people, err := ls.personRepo.GetByIDs(ctx, nil, memberIDs)
    if err != nil {
      return nil, apierr.New(http.StatusInternalServerError, "get_list_entities_failed", fmt.Errorf("load people: %w", err))
    }
    return &ListEntities{People: people}, nil
  default:
    return nil, apierr.New(http.StatusBadRequest, "invalid_list_type", fmt.Errorf("Invalid list type."))
  }
}

// Modify adds or removes members. The list's declared type determines which
// entity table the requested ids are validated against; validation and the
// membership writes share one transaction.
func (ls *listService) Modify(ctx context.Context, listID int64, operation string, itemIDs []int64) (*ModifyListResult, error) {
  if operation != ListOperationAdd && operation != ListOperationRemove {
    return nil, apierr.New(http.StatusBadRequest, "invalid_operation", fmt.Errorf("Invalid operation. Must be 'add' or 'remove'."))
  }

  list, err := ls.getList(ctx, listID)
  if err != nil {
    return nil, err
  }

  alreadyExists := 0
  err = ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    entityIDs, err := ls.resolveEntityIDs(ctx, tx, list.Type, itemIDs)
    if err != nil {
      return err
    }
    if len(entityIDs) == 0 {
      if list.Type == types.ListTypeCompany {
        return apierr.New(http.StatusNotFound, "entities_not_found", fmt.Errorf("No companies found with given IDs."))
      }
      return apierr.New(http.StatusNotFound, "entities_not_found", fmt.Errorf("No people found with given IDs."))
    }

    if operation == ListOperationAdd {
      existingIDs, err := ls.listRepo.GetAssociatedEntityIDs(ctx, tx, listID, list.Type)
      if err != nil {
        return err
      }
      existing := make(map[int64]struct{}, len(existingIDs))
      for _, id := range existingIDs {
        existing[id] = struct{}{}
      }

      var associations []*types.ListEntityAssociation
      for _, entityID := range entityIDs {
        if _, ok := existing[entityID]; ok {
          alreadyExists++
          continue
        }
        associations = append(associations, &types.ListEntityAssociation{
          ListID:     listID,
          EntityID:   entityID,
          EntityType: list.Type,
        })
      }
      return ls.listRepo.CreateAssociations(ctx, tx, associations)
    }
    return ls.listRepo.DeleteAssociations(ctx, tx, listID, list.Type, entityIDs)
  })
  if err != nil {
    if apiErr, ok := err.(*apierr.Error); ok {
      return nil, apiErr
    }
    ls.log.Error("Modify list failed", "error", err, "list_id", listID, "operation", operation)
    return nil, apierr.New(http.StatusInternalServerError, "modify_list_failed", fmt.Errorf("modify list: %w", err))
  }

  return &ModifyListResult{
    Message:       fmt.Sprintf("Successfully %sed items to/from the list.", operation),
    AlreadyExists: alreadyExists,
  }, nil
}

func (ls *listService) getList(ctx context.Context, id int64) (*types.List, error) {
  list, err := ls.listRepo.GetByID(ctx, nil, id)
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, apierr.New(http.StatusNotFound, "list_not_found", fmt.Errorf("List not found."))
    }
    return nil, apierr.New(http.StatusInternalServerError, "get_list_failed", fmt.Errorf("load list: %w", err))
  }
  return list, nil
}

func (ls *listService) resolveEntityIDs(ctx context.Context, tx *gorm.DB, listType string, itemIDs []int64) ([]int64, error) {
  switch listType {
  case types.ListTypeCompany:
    companies, err := ls.companyRepo.GetByIDs(ctx, tx, itemIDs)
    if err != nil {
      return nil, err
    }
    ids := make([]int64, 0, len(companies))
    for _, company := range companies {
      ids = append(ids, company.ID)
    }
    return ids, nil
  case types.ListTypePerson:
    people, err := ls.personRepo.GetByIDs(ctx, tx, itemIDs)
    if err != nil {
      return nil, err
    }
    ids := make([]int64, 0, len(people))
    for _, person := range people {
      ids = append(ids, person.ID)
    }
    return ids, nil
  default:
    return nil, apierr.New(http.StatusBadRequest, "invalid_list_type", fmt.Errorf("Invalid list type."))
  }
}
