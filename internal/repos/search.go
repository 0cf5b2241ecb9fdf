package repos

import (
  "context"

  "gorm.io/gorm"

  "github.com/yungbote/dealflow-backend/internal/logger"
  "github.com/yungbote/dealflow-backend/internal/types"
)

type SearchRepo interface {
  List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Search, error)
  GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Search, error)
}

type searchRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSearchRepo(db *gorm.DB, baseLog *logger.Logger) SearchRepo {
  repoLog := baseLog.With("repo", "SearchRepo")
  return &searchRepo{db: db, log: repoLog}
}

func (sr *searchRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Search, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  query := transaction.WithContext(ctx).
    Model(&types.Search{}).
    Order("created_at DESC")
  if skip > 0 {
    query = query.Offset(skip)
  }
  if limit > 0 {
    query = query.Limit(limit)
  }

  var results []*types.Search
  if err := query.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (sr *searchRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Search, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  var search types.Search
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&search).Error; err != nil {
    return nil, err
  }
  return &search, nil
}
