package repos

import (
  "context"
  "time"

  "gorm.io/gorm"

  "github.com/yungbote/dealflow-backend/internal/logger"
  "github.com/yungbote/dealflow-backend/internal/types"
)

// ListRef is the {id, name} pair attached to listing rows for every list an
// entity belongs to.
type ListRef struct {
  ID   int64  `json:"id"`
  Name string `json:"name"`
}

// ListMembership aggregates an entity's list associations. AddedAt is the
// earliest association time among the rows considered.
type ListMembership struct {
  Lists   []ListRef
  AddedAt *time.Time
}

type ListRepo interface {
  GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.List, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.List, error)
  FindByNameAndType(ctx context.Context, tx *gorm.DB, name, listType string) (*types.List, error)
  Create(ctx context.Context, tx *gorm.DB, list *types.List) (*types.List, error)
  DeleteWithAssociations(ctx context.Context, tx *gorm.DB, id int64) error
  GetAssociatedEntityIDs(ctx context.Context, tx *gorm.DB, listID int64, entityType string) ([]int64, error)
  CreateAssociations(ctx context.Context, tx *gorm.DB, associations []*types.ListEntityAssociation) error
  DeleteAssociations(ctx context.Context, tx *gorm.DB, listID int64, entityType string, entityIDs []int64) error
  GetMemberships(ctx context.Context, tx *gorm.DB, entityType string, entityIDs []int64, listID *int64) (map[int64]*ListMembership, error)
}

type listRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewListRepo(db *gorm.DB, baseLog *logger.Logger) ListRepo {
  repoLog := baseLog.With("repo", "ListRepo")
  return &listRepo{db: db, log: repoLog}
}

func (lr *listRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.List, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var list types.List
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&list).Error; err != nil {
    return nil, err
  }
  return &list, nil
}

func (lr *listRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.List, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.List
  if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (lr *listRepo) FindByNameAndType(ctx context.Context, tx *gorm.DB, name, listType string) (*types.List, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var list types.List
  err := transaction.WithContext(ctx).
    Where("name = ? AND type = ?", name, listType).
    First(&list).Error
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, nil
    }
    return nil, err
  }
  return &list, nil
}

func (lr *listRepo) Create(ctx context.Context, tx *gorm.DB, list *types.List) (*types.List, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  if err := transaction.WithContext(ctx).Create(list).Error; err != nil {
    return nil, err
  }
  return list, nil
}

// DeleteWithAssociations removes the list's association rows then the list
// row itself in one transaction.
func (lr *listRepo) DeleteWithAssociations(ctx context.Context, tx *gorm.DB, id int64) error {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  return transaction.WithContext(ctx).Transaction(func(innerTx *gorm.DB) error {
    if err := innerTx.
      Where("list_id = ?", id).
      Delete(&types.ListEntityAssociation{}).Error; err != nil {
      return err
    }
    return innerTx.
      Where("id = ?", id).
      Delete(&types.List{}).Error
  })
}

func (lr *listRepo) GetAssociatedEntityIDs(ctx context.Context, tx *gorm.DB, listID int64, entityType string) ([]int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var ids []int64
  if err := transaction.WithContext(ctx).
    Model(&types.ListEntityAssociation{}).
    Where("list_id = ? AND entity_type = ?", listID, entityType).
    Pluck("entity_id", &ids).Error; err != nil {
    return nil, err
  }
  return ids, nil
}

func (lr *listRepo) CreateAssociations(ctx context.Context, tx *gorm.DB, associations []*types.ListEntityAssociation) error {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  if len(associations) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).Create(&associations).Error
}

func (lr *listRepo) DeleteAssociations(ctx context.Context, tx *gorm.DB, listID int64, entityType string, entityIDs []int64) error {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  if len(entityIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("list_id = ? AND entity_type = ? AND entity_id IN ?", listID, entityType, entityIDs).
    Delete(&types.ListEntityAssociation{}).Error
}

type membershipRow struct {
  EntityID int64
  ListID   int64
  ListName string
  AddedAt  time.Time
}

// GetMemberships returns, per entity, every list it belongs to and the
// earliest association time. When listID is set, AddedAt considers only that
// list's association rows.
func (lr *listRepo) GetMemberships(ctx context.Context, tx *gorm.DB, entityType string, entityIDs []int64, listID *int64) (map[int64]*ListMembership, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  out := make(map[int64]*ListMembership)
  if len(entityIDs) == 0 {
    return out, nil
  }

  var rows []membershipRow
  if err := transaction.WithContext(ctx).
    Table("list_entity_association").
    Select(`list_entity_association.entity_id,
            list.id AS list_id, list.name AS list_name,
            list_entity_association.created_at AS added_at`).
    Joins("JOIN list ON list_entity_association.list_id = list.id").
    Where("list_entity_association.entity_type = ?", entityType).
    Where("list_entity_association.entity_id IN ?", entityIDs).
    Order("list_entity_association.created_at ASC").
    Scan(&rows).Error; err != nil {
    lr.log.Error("GetMemberships failed", "error", err)
    return nil, err
  }

  for _, row := range rows {
    membership := out[row.EntityID]
    if membership == nil {
      membership = &ListMembership{}
      out[row.EntityID] = membership
    }
    membership.Lists = append(membership.Lists, ListRef{ID: row.ListID, Name: row.ListName})
    if listID != nil && row.ListID != *listID {
      continue
    }
    addedAt := row.AddedAt
    if membership.AddedAt == nil || addedAt.Before(*membership.AddedAt) {
      membership.AddedAt = &addedAt
    }
  }
  return out, nil
}
