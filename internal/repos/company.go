package repos

import (
  "context"
  "strings"
  "time"

  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/yungbote/dealflow-backend/internal/logger"
  "github.com/yungbote/dealflow-backend/internal/types"
)

// CompanyListFilter narrows the canonical company listing. CreatedAt is the
// date portion only, formatted YYYY-MM-DD.
type CompanyListFilter struct {
  Name       string
  SourceName string
  CreatedAt  string
  ListID     *int64
  Skip       int
  Limit      int
}

// CompanyListingRow is one canonical (deduplicated) company with its metric
// columns and resolved source name attached.
type CompanyListingRow struct {
  ID              int64          `json:"id"`
  SourceCompanyID *int64         `json:"source_company_id"`
  Name            string         `json:"name"`
  CreatedAt       time.Time      `json:"created_at"`
  WebsiteURLs     datatypes.JSON `json:"website_urls"`
  Description     string         `json:"description"`
  Location        datatypes.JSON `json:"location"`
  Comments        string         `json:"comments"`
  RelevenceStage  string         `json:"relevence_stage"`
  IsHidden        *bool          `json:"is_hidden"`
  Rank            *float64       `json:"rank"`
  Employees       datatypes.JSON `json:"employees"`
  Funding         datatypes.JSON `json:"funding"`
  FundingRounds   datatypes.JSON `json:"funding_rounds"`
  SourceName      *string        `json:"source_name"`
}

// CompanyDetail bundles one raw company row with its metric row and the
// signal/search provenance collected across every row sharing its name.
type CompanyDetail struct {
  Company      *types.Company
  Metric       *types.CompanyMetric
  TotalSignals []int64
  TotalSearches []int64
}

type CompanyRepo interface {
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.Company, error)
  ListCanonical(ctx context.Context, tx *gorm.DB, f CompanyListFilter) ([]*CompanyListingRow, error)
  GetDetail(ctx context.Context, tx *gorm.DB, id int64) (*CompanyDetail, error)
  UpdateCommentsBySourceID(ctx context.Context, tx *gorm.DB, sourceCompanyID int64, comments string) (int64, error)
  UpdateRelevenceBySourceID(ctx context.Context, tx *gorm.DB, sourceCompanyID int64, stage string) (int64, error)
  UpdateCommentsByID(ctx context.Context, tx *gorm.DB, id int64, comments string) (int64, error)
  UpdateRelevenceByID(ctx context.Context, tx *gorm.DB, id int64, stage string) (int64, error)
  HideBySourceIDs(ctx context.Context, tx *gorm.DB, sourceCompanyIDs []int64) (int64, error)
  HideByIDs(ctx context.Context, tx *gorm.DB, ids []int64) (int64, error)
}

type companyRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCompanyRepo(db *gorm.DB, baseLog *logger.Logger) CompanyRepo {
  repoLog := baseLog.With("repo", "CompanyRepo")
  return &companyRepo{db: db, log: repoLog}
}

func (cr *companyRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.Company, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Company
  if len(ids) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// ListCanonical collapses duplicate company rows sharing a source_company_id
// into one representative row: the visible row with the highest id. Every
// projected column comes from that single row. Groups with a null/zero
// source_company_id or an empty name are excluded, as are companies without
// a metric row.
func (cr *companyRepo) ListCanonical(ctx context.Context, tx *gorm.DB, f CompanyListFilter) ([]*CompanyListingRow, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  canonical := transaction.WithContext(ctx).
    Model(&types.Company{}).
    Select("MAX(id) AS id").
    Where("source_company_id IS NOT NULL AND source_company_id <> 0").
    Where("name IS NOT NULL AND name <> ''").
    Where("is_hidden = ? OR is_hidden IS NULL", false).
    Group("source_company_id")

  query := transaction.WithContext(ctx).
    Table("company").
    Select(`company.id, company.source_company_id, company.name, company.created_at,
            company.website_urls, company.description, company.location,
            company.comments, company.relevence_stage, company.is_hidden, company.rank,
            company_metric.employees, company_metric.funding, company_metric.funding_rounds,
            source.name AS source_name`).
    Joins("JOIN (?) AS canonical ON company.id = canonical.id", canonical).
    Joins("JOIN company_metric ON company_metric.company_id = company.id").
    Joins("LEFT JOIN signal ON company.signal_id = signal.id").
    Joins("LEFT JOIN source ON signal.source_id = source.id")

  if f.Name != "" {
    pattern := "%" + strings.ToLower(f.Name) + "%"
    query = query.Where(
      "LOWER(company.name) LIKE ? OR LOWER(company.legal_name) LIKE ? OR LOWER(CAST(company.name_aliases AS TEXT)) LIKE ?",
      pattern, pattern, pattern,
    )
  }
  if f.SourceName != "" {
    query = query.Where("source.name = ?", f.SourceName)
  }
  if f.ListID != nil {
    query = query.Joins(
      "JOIN list_entity_association lea ON lea.entity_id = company.id AND lea.entity_type = ? AND lea.list_id = ?",
      types.ListTypeCompany, *f.ListID,
    )
  }
  if f.CreatedAt != "" {
    query = query.Where("date(company.created_at) = ?", f.CreatedAt)
  }

  query = query.Order("company.created_at DESC, company.name ASC")
  if f.Skip > 0 {
    query = query.Offset(f.Skip)
  }
  if f.Limit > 0 {
    query = query.Limit(f.Limit)
  }

  var rows []*CompanyListingRow
  if err := query.Scan(&rows).Error; err != nil {
    cr.log.Error("ListCanonical failed", "error", err)
    return nil, err
  }
  return rows, nil
}

func (cr *companyRepo) GetDetail(ctx context.Context, tx *gorm.DB, id int64) (*CompanyDetail, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var company types.Company
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&company).Error; err != nil {
    return nil, err
  }

  // Inner-join semantics: a company without a metric row has no detail view.
  var metric types.CompanyMetric
  if err := transaction.WithContext(ctx).
    Where("company_id = ?", id).
    First(&metric).Error; err != nil {
    return nil, err
  }

  var siblings []*types.Company
  if err := transaction.WithContext(ctx).
    Where("name = ?", company.Name).
    Find(&siblings).Error; err != nil {
    return nil, err
  }

  detail := &CompanyDetail{Company: &company, Metric: &metric}
  for _, sibling := range siblings {
    if sibling.SignalID != nil {
      detail.TotalSignals = append(detail.TotalSignals, *sibling.SignalID)
    }
    if sibling.SearchID != nil {
      detail.TotalSearches = append(detail.TotalSearches, *sibling.SearchID)
    }
  }
  return detail, nil
}

func (cr *companyRepo) UpdateCommentsBySourceID(ctx context.Context, tx *gorm.DB, sourceCompanyID int64, comments string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  result := transaction.WithContext(ctx).
    Model(&types.Company{}).
    Where("source_company_id = ?", sourceCompanyID).
    Update("comments", comments)
  return result.RowsAffected, result.Error
}

func (cr *companyRepo) UpdateRelevenceBySourceID(ctx context.Context, tx *gorm.DB, sourceCompanyID int64, stage string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  result := transaction.WithContext(ctx).
    Model(&types.Company{}).
    Where("source_company_id = ?", sourceCompanyID).
    Update("relevence_stage", stage)
  return result.RowsAffected, result.Error
}

func (cr *companyRepo) UpdateCommentsByID(ctx context.Context, tx *gorm.DB, id int64, comments string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  result := transaction.WithContext(ctx).
    Model(&types.Company{}).
    Where("id = ?", id).
    Update("comments", comments)
  return result.RowsAffected, result.Error
}

func (cr *companyRepo) UpdateRelevenceByID(ctx context.Context, tx *gorm.DB, id int64, stage string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  result := transaction.WithContext(ctx).
    Model(&types.Company{}).
    Where("id = ?", id).
    Update("relevence_stage", stage)
  return result.RowsAffected, result.Error
}

func (cr *companyRepo) HideBySourceIDs(ctx context.Context, tx *gorm.DB, sourceCompanyIDs []int64) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  if len(sourceCompanyIDs) == 0 {
    return 0, nil
  }
  result := transaction.WithContext(ctx).
    Model(&types.Company{}).
    Where("source_company_id IN ?", sourceCompanyIDs).
    Update("is_hidden", true)
  return result.RowsAffected, result.Error
}

func (cr *companyRepo) HideByIDs(ctx context.Context, tx *gorm.DB, ids []int64) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  if len(ids) == 0 {
    return 0, nil
  }
  result := transaction.WithContext(ctx).
    Model(&types.Company{}).
    Where("id IN ?", ids).
    Update("is_hidden", true)
  return result.RowsAffected, result.Error
}
