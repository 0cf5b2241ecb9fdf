package services

import (
  "context"
  "fmt"
  "net/http"
  "time"

  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/yungbote/dealflow-backend/internal/apierr"
  "github.com/yungbote/dealflow-backend/internal/logger"
  "github.com/yungbote/dealflow-backend/internal/repos"
  "github.com/yungbote/dealflow-backend/internal/types"
)

type PersonListItem struct {
  ID                int64           `json:"id"`
  FirstName         string          `json:"first_name"`
  LastName          string          `json:"last_name"`
  SourceName        *string         `json:"source_name"`
  LinkedinHeadline  string          `json:"linkedin_headline"`
  ProfilePictureURL string          `json:"profile_picture_url"`
  Location          datatypes.JSON  `json:"location"`
  Highlights        datatypes.JSON  `json:"highlights"`
  Education         datatypes.JSON  `json:"education"`
  Socials           datatypes.JSON  `json:"socials"`
  Experience        datatypes.JSON  `json:"experience"`
  Awards            datatypes.JSON  `json:"awards"`
  CreatedAt         time.Time       `json:"created_at"`
  AddedAt           *time.Time      `json:"added_at"`
  Comments          string          `json:"comments"`
  RelevenceStage    string          `json:"relevence_stage"`
  Lists             []repos.ListRef `json:"lists"`
}

type PersonService interface {
  List(ctx context.Context, f repos.PersonListFilter) ([]*PersonListItem, error)
  Get(ctx context.Context, id int64) (*types.Person, error)
  Hide(ctx context.Context, ids []int64) (int64, error)
  EditComments(ctx context.Context, id int64, comment string) error
  EditRelevence(ctx context.Context, id int64, stage string) error
}

type personService struct {
  db         *gorm.DB
  log        *logger.Logger
  personRepo repos.PersonRepo
  listRepo   repos.ListRepo
}

func NewPersonService(
  db *gorm.DB,
  baseLog *logger.Logger,
  personRepo repos.PersonRepo,
  listRepo repos.ListRepo,
) PersonService {
  serviceLog := baseLog.With("service", "PersonService")
  return &personService{
    db:         db,
    log:        serviceLog,
    personRepo: personRepo,
    listRepo:   listRepo,
  }
}

func (ps *personService) List(ctx context.Context, f repos.PersonListFilter) ([]*PersonListItem, error) {
  rows, err := ps.personRepo.ListCanonical(ctx, nil, f)
  if err != nil {
    return nil, apierr.New(http.StatusInternalServerError, "list_people_failed", fmt.Errorf("list people: %w", err))
  }

  personIDs := make([]int64, 0, len(rows))
  for _, row := range rows {
    personIDs = append(personIDs, row.ID)
  }
  memberships, err := ps.listRepo.GetMemberships(ctx, nil, types.ListTypePerson, personIDs, f.ListID)
  if err != nil {
    return nil, apierr.New(http.StatusInternalServerError, "list_memberships_failed", fmt.Errorf("load list memberships: %w", err))
  }

  items := make([]*PersonListItem, 0, len(rows))
  for _, row := range rows {
    item := &PersonListItem{
      ID:                row.ID,
      FirstName:         row.FirstName,
      LastName:          row.LastName,
      SourceName:        row.SourceName,
      LinkedinHeadline:  row.LinkedinHeadline,
      ProfilePictureURL: row.ProfilePictureURL,
      Location:          row.Location,
      Highlights:        row.Highlights,
      Education:         row.Education,
      Socials:           row.Socials,
      Experience:        row.Experience,
      Awards:            row.Awards,
      CreatedAt:         row.CreatedAt,
      Comments:          row.Comments,
      RelevenceStage:    row.RelevenceStage,
    }
    if membership := memberships[row.ID]; membership != nil {
      item.Lists = membership.Lists
      // added_at is only surfaced when the listing is scoped to one list.
      if f.ListID != nil {
        item.AddedAt = membership.AddedAt
      }
    }
    items = append(items, item)
  }
  return items, nil
}

func (ps *personService) Get(ctx context.Context, id int64) (*types.Person, error) {
  people, err := ps.personRepo.GetByIDs(ctx, nil, []int64{id})
  if err != nil {
    return nil, apierr.New(http.StatusInternalServerError, "get_person_failed", fmt.Errorf("load person: %w", err))
  }
  if len(people) == 0 {
    return nil, apierr.New(http.StatusNotFound, "person_not_found", fmt.Errorf("Person not found"))
  }
  return people[0], nil
}

func (ps *personService) Hide(ctx context.Context, ids []int64) (int64, error) {
  people, err := ps.personRepo.GetByIDs(ctx, nil, ids)
  if err != nil {
    return 0, apierr.New(http.StatusInternalServerError, "hide_people_failed", fmt.Errorf("load people: %w", err))
  }
  if len(people) == 0 {
    return 0, apierr.New(http.StatusNotFound, "person_not_found", fmt.Errorf("People not found"))
  }

  var sourceIDs []int64
  seenSourceIDs := make(map[int64]struct{})
  for _, person := range people {
    if person.SourcePersonID == nil || *person.SourcePersonID == 0 {
      continue
    }
    if _, ok := seenSourceIDs[*person.SourcePersonID]; ok {
      continue
    }
    seenSourceIDs[*person.SourcePersonID] = struct{}{}
    sourceIDs = append(sourceIDs, *person.SourcePersonID)
  }

  var hidden int64
  err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    bySource, err := ps.personRepo.HideBySourceIDs(ctx, tx, sourceIDs)
    if err != nil {
      return err
    }
    byID, err := ps.personRepo.HideByIDs(ctx, tx, ids)
    if err != nil {
      return err
    }
    hidden = bySource + byID
    return nil
  })
  if err != nil {
    ps.log.Error("Hide failed", "error", err, "ids", ids)
    return 0, apierr.New(http.StatusInternalServerError, "hide_people_failed", fmt.Errorf("hide people: %w", err))
  }
  return hidden, nil
}

func (ps *personService) EditComments(ctx context.Context, id int64, comment string) error {
  return ps.propagateEdit(ctx, id, func(tx *gorm.DB, sourceID *int64) error {
    if sourceID != nil {
      _, err := ps.personRepo.UpdateCommentsBySourceID(ctx, tx, *sourceID, comment)
      return err
    }
    _, err := ps.personRepo.UpdateCommentsByID(ctx, tx, id, comment)
    return err
  })
}

func (ps *personService) EditRelevence(ctx context.Context, id int64, stage string) error {
  return ps.propagateEdit(ctx, id, func(tx *gorm.DB, sourceID *int64) error {
    if sourceID != nil {
      _, err := ps.personRepo.UpdateRelevenceBySourceID(ctx, tx, *sourceID, stage)
      return err
    }
    _, err := ps.personRepo.UpdateRelevenceByID(ctx, tx, id, stage)
    return err
  })
}

func (ps *personService) propagateEdit(ctx context.Context, id int64, apply func(tx *gorm.DB, sourceID *int64) error) error {
  people, err := ps.personRepo.GetByIDs(ctx, nil, []int64{id})
  if err != nil {
    return apierr.New(http.StatusInternalServerError, "edit_person_failed", fmt.Errorf("load person: %w", err))
  }
  if len(people) == 0 {
    return apierr.New(http.StatusNotFound, "person_not_found", fmt.Errorf("Person not found"))
  }

  var sourceID *int64
  if people[0].SourcePersonID != nil && *people[0].SourcePersonID != 0 {
    sourceID = people[0].SourcePersonID
  }

  err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return apply(tx, sourceID)
  })
  if err != nil {
    ps.log.Error("propagateEdit failed", "error", err, "person_id", id)
    return apierr.New(http.StatusInternalServerError, "edit_person_failed", fmt.Errorf("update person rows: %w", err))
  }
  return nil
}
