package repos

import (
  "context"
  "strings"

  "gorm.io/gorm"

  "github.com/yungbote/dealflow-backend/internal/logger"
  "github.com/yungbote/dealflow-backend/internal/types"
)

type SignalListFilter struct {
  Name      string
  CreatedAt string
  Skip      int
  Limit     int
}

type SignalRepo interface {
  List(ctx context.Context, tx *gorm.DB, f SignalListFilter) ([]*types.Signal, error)
  GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Signal, error)
}

type signalRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSignalRepo(db *gorm.DB, baseLog *logger.Logger) SignalRepo {
  repoLog := baseLog.With("repo", "SignalRepo")
  return &signalRepo{db: db, log: repoLog}
}

func (sr *signalRepo) List(ctx context.Context, tx *gorm.DB, f SignalListFilter) ([]*types.Signal, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  query := transaction.WithContext(ctx).
    Model(&types.Signal{}).
    Order("created_at DESC")

  if f.Name != "" {
    query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
  }
  if f.CreatedAt != "" {
    query = query.Where("date(created_at) = ?", f.CreatedAt)
  }
  if f.Skip > 0 {
    query = query.Offset(f.Skip)
  }
  if f.Limit > 0 {
    query = query.Limit(f.Limit)
  }

  var results []*types.Signal
  if err := query.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (sr *signalRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Signal, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  var signal types.Signal
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&signal).Error; err != nil {
    return nil, err
  }
  return &signal, nil
}
