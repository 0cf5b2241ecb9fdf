package services

import (
  "context"
  "encoding/json"
  "fmt"
  "net/http"
  "strconv"
  "strings"
  "time"

  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/yungbote/dealflow-backend/internal/apierr"
  "github.com/yungbote/dealflow-backend/internal/logger"
  "github.com/yungbote/dealflow-backend/internal/repos"
  "github.com/yungbote/dealflow-backend/internal/types"
)

type Investor struct {
  Name      string `json:"name"`
  EntityUrn string `json:"entity_urn"`
}

type KeyEmployee struct {
  Person    string `json:"person"`
  Title     string `json:"title"`
  EntityUrn string `json:"entityUrn"`
}

type CompanyListItem struct {
  ID                  int64           `json:"id"`
  Name                string          `json:"name"`
  WebsiteURLs         string          `json:"website_urls"`
  Description         string          `json:"description"`
  Location            string          `json:"location"`
  SourceName          *string         `json:"source_name"`
  CreatedAt           time.Time       `json:"created_at"`
  Investors           []Investor      `json:"investors"`
  MostRecentRound     string          `json:"most_recent_round"`
  MostRecentRoundSize float64         `json:"most_recent_round_size"`
  KeyEmployees        []KeyEmployee   `json:"key_employees"`
  Comments            string          `json:"comments"`
  RelevenceStage      string          `json:"relevence_stage"`
  IsHidden            *bool           `json:"is_hidden"`
  Lists               []repos.ListRef `json:"lists"`
  AddedAt             *time.Time      `json:"added_at"`
  Rank                *float64        `json:"rank"`
}

type CompanyDetailResponse struct {
  ID               int64          `json:"id"`
  TotalSignals     []int64        `json:"total_signals"`
  TotalSearches    []int64        `json:"total_searches"`
  SourceCompanyID  *int64         `json:"source_company_id"`
  Type             string         `json:"type"`
  Name             string         `json:"name"`
  NameAliases      datatypes.JSON `json:"name_aliases"`
  LegalName        string         `json:"legal_name"`
  Description      string         `json:"description"`
  Contact          datatypes.JSON `json:"contact"`
  FoundingDate     datatypes.JSON `json:"founding_date"`
  WebsiteURLs      datatypes.JSON `json:"website_urls"`
  LogoURL          string         `json:"logo_url"`
  OwnershipStatus  string         `json:"ownership_status"`
  Location         datatypes.JSON `json:"location"`
  Tags             datatypes.JSON `json:"tags"`
  Socials          datatypes.JSON `json:"socials"`
  Rank             *float64       `json:"rank"`
  RelatedCompanies datatypes.JSON `json:"related_companies"`
  CreatedAt        time.Time      `json:"created_at"`
  UpdatedAt        time.Time      `json:"updated_at"`

  Stage              string         `json:"stage"`
  Headcount          *int64         `json:"headcount"`
  TractionMetrics    datatypes.JSON `json:"traction_metrics"`
  Funding            datatypes.JSON `json:"funding"`
  EmployeeHighlights datatypes.JSON `json:"employee_highlights"`
  InvestorURN        string         `json:"investor_urn"`
  FundingRounds      datatypes.JSON `json:"funding_rounds"`

  Employees       []*HarmonicPerson `json:"employees"`
  TeamConnections []*TeamConnection `json:"team_connections"`
}

type CompanyService interface {
  List(ctx context.Context, f repos.CompanyListFilter) ([]*CompanyListItem, error)
  Get(ctx context.Context, id int64) (*CompanyDetailResponse, error)
  Hide(ctx context.Context, ids []int64) (int64, error)
  EditComments(ctx context.Context, id int64, comment string) error
  EditRelevence(ctx context.Context, id int64, stage string) error
}

type companyService struct {
  db          *gorm.DB
  log         *logger.Logger
  companyRepo repos.CompanyRepo
  listRepo    repos.ListRepo
  harmonic    HarmonicClient
}

func NewCompanyService(
  db *gorm.DB,
  baseLog *logger.Logger,
  companyRepo repos.CompanyRepo,
  listRepo repos.ListRepo,
  harmonic HarmonicClient,
) CompanyService {
  serviceLog := baseLog.With("service", "CompanyService")
  return &companyService{
    db:          db,
    log:         serviceLog,
    companyRepo: companyRepo,
    listRepo:    listRepo,
    harmonic:    harmonic,
  }
}

func (cs *companyService) List(ctx context.Context, f repos.CompanyListFilter) ([]*CompanyListItem, error) {
  rows, err := cs.companyRepo.ListCanonical(ctx, nil, f)
  if err != nil {
    return nil, apierr.New(http.StatusInternalServerError, "list_companies_failed", fmt.Errorf("list companies: %w", err))
  }

  companyIDs := make([]int64, 0, len(rows))
  employeesByCompany := make(map[int64][]rawEmployee, len(rows))
  var allEmployeeIDs []int64
  for _, row := range rows {
    companyIDs = append(companyIDs, row.ID)
    employees := decodeEmployees(row.Employees)
    employeesByCompany[row.ID] = employees
    for _, employee := range employees {
      if !isKeyEmployee(employee) {
        continue
      }
      if id, ok := parseEntityURNID(employee.Person); ok {
        allEmployeeIDs = append(allEmployeeIDs, id)
      }
    }
  }

  // One batched gateway call per request covers every row's key employees.
  var enriched []*HarmonicPerson
  if len(allEmployeeIDs) > 0 {
    enriched, err = cs.harmonic.GetPersonsByIDs(ctx, allEmployeeIDs)
    if err != nil {
      cs.log.Error("Harmonic person lookup failed", "error", err)
      return nil, apierr.New(http.StatusBadGateway, "enrichment_failed", fmt.Errorf("fetch enrichment data: %w", err))
    }
  }

  memberships, err := cs.listRepo.GetMemberships(ctx, nil, types.ListTypeCompany, companyIDs, f.ListID)
  if err != nil {
    return nil, apierr.New(http.StatusInternalServerError, "list_memberships_failed", fmt.Errorf("load list memberships: %w", err))
  }

  items := make([]*CompanyListItem, 0, len(rows))
  for _, row := range rows {
    item := &CompanyListItem{
      ID:             row.ID,
      Name:           row.Name,
      WebsiteURLs:    extractWebsiteURL(row.WebsiteURLs),
      Description:    row.Description,
      Location:       formatLocation(row.Location),
      SourceName:     row.SourceName,
      CreatedAt:      row.CreatedAt,
      KeyEmployees:   extractKeyEmployees(employeesByCompany[row.ID], enriched),
      Comments:       row.Comments,
      RelevenceStage: row.RelevenceStage,
      IsHidden:       row.IsHidden,
      Rank:           row.Rank,
    }
    item.Investors, item.MostRecentRound, item.MostRecentRoundSize = summarizeFunding(row.Funding)
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

func (cs *companyService) Get(ctx context.Context, id int64) (*CompanyDetailResponse, error) {
  detail, err := cs.companyRepo.GetDetail(ctx, nil, id)
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, apierr.New(http.StatusNotFound, "company_not_found", fmt.Errorf("Company not found"))
    }
    return nil, apierr.New(http.StatusInternalServerError, "get_company_failed", fmt.Errorf("load company: %w", err))
  }

  employees := decodeEmployees(detail.Metric.Employees)
  var personIDs []int64
  for _, employee := range employees {
    if personID, ok := parseEntityURNID(employee.Person); ok {
      personIDs = append(personIDs, personID)
    }
  }

  var enriched []*HarmonicPerson
  if len(personIDs) > 0 {
    enriched, err = cs.harmonic.GetPersonsByIDs(ctx, personIDs)
    if err != nil {
      cs.log.Error("Harmonic person lookup failed", "error", err, "company_id", id)
      return nil, apierr.New(http.StatusBadGateway, "enrichment_failed", fmt.Errorf("fetch enrichment data: %w", err))
    }
  }
  // Carry the locally-ingested title onto the matching enrichment record.
  for _, employee := range employees {
    for _, person := range enriched {
      if person != nil && person.EntityUrn == employee.Person {
        person.Title = employee.Title
      }
    }
  }

  var teamConnections []*TeamConnection
  if detail.Company.SourceCompanyID != nil && *detail.Company.SourceCompanyID != 0 {
    teamConnections, err = cs.harmonic.GetTeamConnections(ctx, *detail.Company.SourceCompanyID)
    if err != nil {
      cs.log.Error("Harmonic team connection lookup failed", "error", err, "company_id", id)
      return nil, apierr.New(http.StatusBadGateway, "enrichment_failed", fmt.Errorf("fetch team connections: %w", err))
    }
  }

  company := detail.Company
  metric := detail.Metric
  return &CompanyDetailResponse{
    ID:               company.ID,
    TotalSignals:     detail.TotalSignals,
    TotalSearches:    detail.TotalSearches,
    SourceCompanyID:  company.SourceCompanyID,
    Type:             company.Type,
    Name:             company.Name,
    NameAliases:      company.NameAliases,
    LegalName:        company.LegalName,
    Description:      company.Description,
    Contact:          company.Contact,
    FoundingDate:     company.FoundingDate,
    WebsiteURLs:      company.WebsiteURLs,
    LogoURL:          company.LogoURL,
    OwnershipStatus:  company.OwnershipStatus,
    Location:         company.Location,
    Tags:             company.Tags,
    Socials:          company.Socials,
    Rank:             company.Rank,
    RelatedCompanies: company.RelatedCompanies,
    CreatedAt:        company.CreatedAt,
    UpdatedAt:        company.UpdatedAt,

    Stage:              metric.Stage,
    Headcount:          metric.Headcount,
    TractionMetrics:    metric.TractionMetrics,
    Funding:            metric.Funding,
    EmployeeHighlights: metric.EmployeeHighlights,
    InvestorURN:        metric.InvestorURN,
    FundingRounds:      metric.FundingRounds,

    Employees:       enriched,
    TeamConnections: teamConnections,
  }, nil
}

// Hide marks every row sharing a duplicate-group key with the addressed rows
// as hidden. Rows without a usable source_company_id are hidden individually.
func (cs *companyService) Hide(ctx context.Context, ids []int64) (int64, error) {
  companies, err := cs.companyRepo.GetByIDs(ctx, nil, ids)
  if err != nil {
    return 0, apierr.New(http.StatusInternalServerError, "hide_companies_failed", fmt.Errorf("load companies: %w", err))
  }
  if len(companies) == 0 {
    return 0, apierr.New(http.StatusNotFound, "company_not_found", fmt.Errorf("No company found with the provided ID"))
  }

  var sourceIDs []int64
  seenSourceIDs := make(map[int64]struct{})
  for _, company := range companies {
    if company.SourceCompanyID == nil || *company.SourceCompanyID == 0 {
      continue
    }
    if _, ok := seenSourceIDs[*company.SourceCompanyID]; ok {
      continue
    }
    seenSourceIDs[*company.SourceCompanyID] = struct{}{}
    sourceIDs = append(sourceIDs, *company.SourceCompanyID)
  }

  var hidden int64
  err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    bySource, err := cs.companyRepo.HideBySourceIDs(ctx, tx, sourceIDs)
    if err != nil {
      return err
    }
    byID, err := cs.companyRepo.HideByIDs(ctx, tx, ids)
    if err != nil {
      return err
    }
    hidden = bySource + byID
    return nil
  })
  if err != nil {
    cs.log.Error("Hide failed", "error", err, "ids", ids)
    return 0, apierr.New(http.StatusInternalServerError, "hide_companies_failed", fmt.Errorf("hide companies: %w", err))
  }
  return hidden, nil
}

func (cs *companyService) EditComments(ctx context.Context, id int64, comment string) error {
  return cs.propagateEdit(ctx, id, func(tx *gorm.DB, sourceID *int64) error {
    if sourceID != nil {
      _, err := cs.companyRepo.UpdateCommentsBySourceID(ctx, tx, *sourceID, comment)
      return err
    }
    _, err := cs.companyRepo.UpdateCommentsByID(ctx, tx, id, comment)
    return err
  })
}

func (cs *companyService) EditRelevence(ctx context.Context, id int64, stage string) error {
  return cs.propagateEdit(ctx, id, func(tx *gorm.DB, sourceID *int64) error {
    if sourceID != nil {
      _, err := cs.companyRepo.UpdateRelevenceBySourceID(ctx, tx, *sourceID, stage)
      return err
    }
    _, err := cs.companyRepo.UpdateRelevenceByID(ctx, tx, id, stage)
    return err
  })
}

// propagateEdit resolves the duplicate-group key of one company and applies
// the update to every row sharing it, in one transaction.
func (cs *companyService) propagateEdit(ctx context.Context, id int64, apply func(tx *gorm.DB, sourceID *int64) error) error {
  companies, err := cs.companyRepo.GetByIDs(ctx, nil, []int64{id})
  if err != nil {
    return apierr.New(http.StatusInternalServerError, "edit_company_failed", fmt.Errorf("load company: %w", err))
  }
  if len(companies) == 0 {
    return apierr.New(http.StatusNotFound, "company_not_found", fmt.Errorf("Company not found"))
  }

  var sourceID *int64
  if companies[0].SourceCompanyID != nil && *companies[0].SourceCompanyID != 0 {
    sourceID = companies[0].SourceCompanyID
  }

  err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return apply(tx, sourceID)
  })
  if err != nil {
    cs.log.Error("propagateEdit failed", "error", err, "company_id", id)
    return apierr.New(http.StatusInternalServerError, "edit_company_failed", fmt.Errorf("update company rows: %w", err))
  }
  return nil
}

// Location column ordering for display. Python's dict preserved ingestion
// order; here the known address fields are joined in a fixed order.
var locationDisplayOrder = []string{
  "address_formatted", "location", "street", "city", "state", "zip", "country",
}

func formatLocation(raw datatypes.JSON) string {
  if len(raw) == 0 {
    return ""
  }
  var location map[string]interface{}
  if err := json.Unmarshal(raw, &location); err != nil {
    return ""
  }
  var parts []string
  for _, key := range locationDisplayOrder {
    value, ok := location[key]
    if !ok || value == nil {
      continue
    }
    text := strings.TrimSpace(fmt.Sprint(value))
    if text != "" {
      parts = append(parts, text)
    }
  }
  return strings.Join(parts, ", ")
}

func extractWebsiteURL(raw datatypes.JSON) string {
  if len(raw) == 0 {
    return ""
  }
  var website struct {
    URL string `json:"url"`
  }
  if err := json.Unmarshal(raw, &website); err != nil {
    return ""
  }
  return website.URL
}

type rawInvestor struct {
  Name      string `json:"name"`
  EntityUrn string `json:"entity_urn"`
}

type rawFunding struct {
  LastFundingAt    interface{}   `json:"last_funding_at"`
  LastFundingTotal interface{}   `json:"last_funding_total"`
  Investors        []rawInvestor `json:"investors"`
}

func summarizeFunding(raw datatypes.JSON) ([]Investor, string, float64) {
  investors := []Investor{}
  round := "-"
  var roundSize float64

  if len(raw) == 0 {
    return investors, round, roundSize
  }
  var funding rawFunding
  if err := json.Unmarshal(raw, &funding); err != nil {
    return investors, round, roundSize
  }

  for _, investor := range funding.Investors {
    name := investor.Name
    if name == "" {
      name = "-"
    }
    urn := investor.EntityUrn
    if urn == "" {
      urn = "-"
    }
    investors = append(investors, Investor{Name: name, EntityUrn: urn})
  }

  if funding.LastFundingAt != nil {
    if text := strings.TrimSpace(fmt.Sprint(funding.LastFundingAt)); text != "" {
      round = text
    }
  }
  roundSize = toFloat(funding.LastFundingTotal)
  return investors, round, roundSize
}

func toFloat(value interface{}) float64 {
  switch v := value.(type) {
  case float64:
    return v
  case int:
    return float64(v)
  case int64:
    return float64(v)
  case string:
    if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
      return parsed
    }
  }
  return 0
}
