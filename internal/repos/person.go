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

type PersonListFilter struct {
  Name       string
  SourceName string
  CreatedAt  string
  ListID     *int64
  Skip       int
  Limit      int
}

type PersonListingRow struct {
  ID                int64          `json:"id"`
  SourcePersonID    *int64         `json:"source_person_id"`
  FirstName         string         `json:"first_name"`
  LastName          string         `json:"last_name"`
  LinkedinHeadline  string         `json:"linkedin_headline"`
  ProfilePictureURL string         `json:"profile_picture_url"`
  Location          datatypes.JSON `json:"location"`
  Highlights        datatypes.JSON `json:"highlights"`
  Education         datatypes.JSON `json:"education"`
  Socials           datatypes.JSON `json:"socials"`
  Experience        datatypes.JSON `json:"experience"`
  Awards            datatypes.JSON `json:"awards"`
  CreatedAt         time.Time      `json:"created_at"`
  Comments          string         `json:"comments"`
  RelevenceStage    string         `json:"relevence_stage"`
  SourceName        *string        `json:"source_name"`
}

type PersonRepo interface {
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.Person, error)
  ListCanonical(ctx context.Context, tx *gorm.DB, f PersonListFilter) ([]*PersonListingRow, error)
  UpdateCommentsBySourceID(ctx context.Context, tx *gorm.DB, sourcePersonID int64, comments string) (int64, error)
  UpdateRelevenceBySourceID(ctx context.Context, tx *gorm.DB, sourcePersonID int64, stage string) (int64, error)
  UpdateCommentsByID(ctx context.Context, tx *gorm.DB, id int64, comments string) (int64, error)
  UpdateRelevenceByID(ctx context.Context, tx *gorm.DB, id int64, stage string) (int64, error)
  HideBySourceIDs(ctx context.Context, tx *gorm.DB, sourcePersonIDs []int64) (int64, error)
  HideByIDs(ctx context.Context, tx *gorm.DB, ids []int64) (int64, error)
}

type personRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPersonRepo(db *gorm.DB, baseLog *logger.Logger) PersonRepo {
  repoLog := baseLog.With("repo", "PersonRepo")
  return &personRepo{db: db, log: repoLog}
}

func (pr *personRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.Person, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Person
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

// ListCanonical mirrors the company canonicalization: one visible row per
// source_person_id (highest id), with filters and ordering applied to the
// canonical rows.
func (pr *personRepo) ListCanonical(ctx context.Context, tx *gorm.DB, f PersonListFilter) ([]*PersonListingRow, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  canonical := transaction.WithContext(ctx).
    Model(&types.Person{}).
    Select("MAX(id) AS id").
    Where("source_person_id IS NOT NULL AND source_person_id <> 0").
    Where("is_hidden = ? OR is_hidden IS NULL", false).
    Group("source_person_id")

  query := transaction.WithContext(ctx).
    Table("person").
    Select(`person.id, person.source_person_id, person.first_name, person.last_name,
            person.linkedin_headline, person.profile_picture_url, person.location,
            person.highlights, person.education, person.socials, person.experience,
            person.awards, person.created_at, person.comments, person.relevence_stage,
            source.name AS source_name`).
    Joins("JOIN (?) AS canonical ON person.id = canonical.id", canonical).
    Joins("LEFT JOIN signal ON person.signal_id = signal.id").
    Joins("LEFT JOIN source ON signal.source_id = source.id")

  if f.Name != "" {
    pattern := "%" + strings.ToLower(f.Name) + "%"
    query = query.Where(
      "LOWER(person.first_name) LIKE ? OR LOWER(person.last_name) LIKE ?",
      pattern, pattern,
    )
  }
  if f.SourceName != "" {
    query = query.Where("source.name = ?", f.SourceName)
  }
  if f.ListID != nil {
    query = query.Joins(
      "JOIN list_entity_association lea ON lea.entity_id = person.id AND lea.entity_type = ? AND lea.list_id = ?",
      types.ListTypePerson, *f.ListID,
    )
  }
  if f.CreatedAt != "" {
    query = query.Where("date(person.created_at) = ?", f.CreatedAt)
  }

  query = query.Order("person.created_at DESC, person.first_name ASC")
  if f.Skip > 0 {
    query = query.Offset(f.Skip)
  }
  if f.Limit > 0 {
    query = query.Limit(f.Limit)
  }

  var rows []*PersonListingRow
  if err := query.Scan(&rows).Error; err != nil {
    pr.log.Error("ListCanonical failed", "error", err)
    return nil, err
  }
  return rows, nil
}

func (pr *personRepo) UpdateCommentsBySourceID(ctx context.Context, tx *gorm.DB, sourcePersonID int64, comments string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  result := transaction.WithContext(ctx).
    Model(&types.Person{}).
    Where("source_person_id = ?", sourcePersonID).
    Update("comments", comments)
  return result.RowsAffected, result.Error
}

func (pr *personRepo) UpdateRelevenceBySourceID(ctx context.Context, tx *gorm.DB, sourcePersonID int64, stage string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  result := transaction.WithContext(ctx).
    Model(&types.Person{}).
    Where("source_person_id = ?", sourcePersonID).
    Update("relevence_stage", stage)
  return result.RowsAffected, result.Error
}

func (pr *personRepo) UpdateCommentsByID(ctx context.Context, tx *gorm.DB, id int64, comments string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  result := transaction.WithContext(ctx).
    Model(&types.Person{}).
    Where("id = ?", id).
    Update("comments", comments)
  return result.RowsAffected, result.Error
}

func (pr *personRepo) UpdateRelevenceByID(ctx context.Context, tx *gorm.DB, id int64, stage string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  result := transaction.WithContext(ctx).
    Model(&types.Person{}).
    Where("id = ?", id).
    Update("relevence_stage", stage)
  return result.RowsAffected, result.Error
}

func (pr *personRepo) HideBySourceIDs(ctx context.Context, tx *gorm.DB, sourcePersonIDs []int64) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if len(sourcePersonIDs) == 0 {
    return 0, nil
  }
  result := transaction.WithContext(ctx).
    Model(&types.Person{}).
    Where("source_person_id IN ?", sourcePersonIDs).
    Update("is_hidden", true)
  return result.RowsAffected, result.Error
}

func (pr *personRepo) HideByIDs(ctx context.Context, tx *gorm.DB, ids []int64) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if len(ids) == 0 {
    return 0, nil
  }
  result := transaction.WithContext(ctx).
    Model(&types.Person{}).
    Where("id IN ?", ids).
    Update("is_hidden", true)
  return result.RowsAffected, result.Error
}
