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

type SignalService interface {
  List(ctx context.Context, f repos.SignalListFilter) ([]*types.Signal, error)
  Get(ctx context.Context, id int64) (*types.Signal, error)
}

type signalService struct {
  db         *gorm.DB
  log        *logger.Logger
  signalRepo repos.SignalRepo
}

func NewSignalService(db *gorm.DB, baseLog *logger.Logger, signalRepo repos.SignalRepo) SignalService {
  serviceLog := baseLog.With("service", "SignalService")
  return &signalService{db: db, log: serviceLog, signalRepo: signalRepo}
}

func (ss *signalService) List(ctx context.Context, f repos.SignalListFilter) ([]*types.Signal, error) {
  signals, err := ss.signalRepo.List(ctx, nil, f)
  if err != nil {
    ss.log.Error("List signals failed", "error", err)
    return nil, apierr.New(http.StatusInternalServerError, "list_signals_failed", fmt.Errorf("list signals: %w", err))
  }
  return signals, nil
}

func (ss *signalService) Get(ctx context.Context, id int64) (*types.Signal, error) {
  signal, err := ss.signalRepo.GetByID(ctx, nil, id)
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, apierr.New(http.StatusNotFound, "signal_not_found", fmt.Errorf("Signal not found"))
    }
    return nil, apierr.New(http.StatusInternalServerError, "get_signal_failed", fmt.Errorf("load signal: %w", err))
  }
  return signal, nil
}
