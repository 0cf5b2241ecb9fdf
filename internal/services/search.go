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

type SearchService interface {
  List(ctx context.Context, skip, limit int) ([]*types.Search, error)
  Get(ctx context.Context, id int64) (*types.Search, error)
}

type searchService struct {
  db         *gorm.DB
  log        *logger.Logger
  searchRepo repos.SearchRepo
}

func NewSearchService(db *gorm.DB, baseLog *logger.Logger, searchRepo repos.SearchRepo) SearchService {
  serviceLog := baseLog.With("service", "SearchService")
  return &searchService{db: db, log: serviceLog, searchRepo: searchRepo}
}

func (ss *searchService) List(ctx context.Context, skip, limit int) ([]*types.Search, error) {
  searches, err := ss.searchRepo.List(ctx, nil, skip, limit)
  if err != nil {
    ss.log.Error("List searches failed", "error", err)
    return nil, apierr.New(http.StatusInternalServerError, "list_searches_failed", fmt.Errorf("list searches: %w", err))
  }
  return searches, nil
}

func (ss *searchService) Get(ctx context.Context, id int64) (*types.Search, error) {
  search, err := ss.searchRepo.GetByID(ctx, nil, id)
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, apierr.New(http.StatusNotFound, "search_not_found", fmt.Errorf("Search not found"))
    }
    return nil, apierr.New(http.StatusInternalServerError, "get_search_failed", fmt.Errorf("load search: %w", err))
  }
  return search, nil
}
