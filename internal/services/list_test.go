package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/dealflow-backend/internal/apierr"
	"github.com/yungbote/dealflow-backend/internal/logger"
	"github.com/yungbote/dealflow-backend/internal/repos"
	"github.com/yungbote/dealflow-backend/internal/types"
)

func newListServiceForTest(t *testing.T) (ListService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&types.Company{},
		&types.Person{},
		&types.List{},
		&types.ListEntityAssociation{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	listRepo := repos.NewListRepo(db, log)
	companyRepo := repos.NewCompanyRepo(db, log)
	personRepo := repos.NewPersonRepo(db, log)
	return NewListService(db, log, listRepo, companyRepo, personRepo), db
}

func apiStatus(t *testing.T, err error) int {
	t.Helper()
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apierr.Error, got %T: %v", err, err)
	}
	return apiErr.Status
}

func TestListServiceCreate_RejectsUnknownType(t *testing.T) {
	service, _ := newListServiceForTest(t)

	_, err := service.Create(context.Background(), "Watchlist", "account")
	if err == nil {
		t.Fatalf("expected error for unknown list type")
	}
	if status := apiStatus(t, err); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestListServiceCreate_RejectsDuplicateNameWithinType(t *testing.T) {
	service, _ := newListServiceForTest(t)
	ctx := context.Background()

	if _, err := service.Create(ctx, "Watchlist", types.ListTypeCompany); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := service.Create(ctx, "Watchlist", types.ListTypeCompany)
	if err == nil {
		t.Fatalf("expected duplicate error")
	}
	if status := apiStatus(t, err); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}

	// The same name under the other type is allowed.
	if _, err := service.Create(ctx, "Watchlist", types.ListTypePerson); err != nil {
		t.Fatalf("cross-type create: %v", err)
	}
}

func TestListServiceModify_AddCountsExistingMemberships(t *testing.T) {
	service, db := newListServiceForTest(t)
	ctx := context.Background()

	companyA := &types.Company{Name: "Acme Inc", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	companyB := &types.Company{Name: "Globex", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	if err := db.Create(companyA).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	if err := db.Create(companyB).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}

	list, err := service.Create(ctx, "Watchlist", types.ListTypeCompany)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	first, err := service.Modify(ctx, list.ID, ListOperationAdd, []int64{companyA.ID})
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if first.AlreadyExists != 0 {
		t.Fatalf("expected no existing members, got %d", first.AlreadyExists)
	}

	second, err := service.Modify(ctx, list.ID, ListOperationAdd, []int64{companyA.ID, companyB.ID})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if second.AlreadyExists != 1 {
		t.Fatalf("expected 1 existing member, got %d", second.AlreadyExists)
	}

	var count int64
	if err := db.Model(&types.ListEntityAssociation{}).Where("list_id = ?", list.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 associations, got %d", count)
	}
}

func TestListServiceModify_RemoveDeletesMemberships(t *testing.T) {
	service, db := newListServiceForTest(t)
	ctx := context.Background()

	company := &types.Company{Name: "Acme Inc", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	list, err := service.Create(ctx, "Watchlist", types.ListTypeCompany)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if _, err := service.Modify(ctx, list.ID, ListOperationAdd, []int64{company.ID}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := service.Modify(ctx, list.ID, ListOperationRemove, []int64{company.ID}); err != nil {
		t.Fatalf("remove: %v", err)
	}

	var count int64
	if err := db.Model(&types.ListEntityAssociation{}).Where("list_id = ?", list.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no associations, got %d", count)
	}
}

func TestListServiceModify_ValidatesAgainstBackingTable(t *testing.T) {
	service, db := newListServiceForTest(t)
	ctx := context.Background()

	// Only a company exists; a person list must not accept its id.
	company := &types.Company{Name: "Acme Inc", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	list, err := service.Create(ctx, "Founders", types.ListTypePerson)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	_, err = service.Modify(ctx, list.ID, ListOperationAdd, []int64{company.ID})
	if err == nil {
		t.Fatalf("expected error for ids missing from the person table")
	}
	if status := apiStatus(t, err); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestListServiceModify_RejectsUnknownOperation(t *testing.T) {
	service, _ := newListServiceForTest(t)

	_, err := service.Modify(context.Background(), 1, "upsert", []int64{1})
	if err == nil {
		t.Fatalf("expected error for unknown operation")
	}
	if status := apiStatus(t, err); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestListServiceDelete_MissingListIs404(t *testing.T) {
	service, _ := newListServiceForTest(t)

	err := service.Delete(context.Background(), 999)
	if err == nil {
		t.Fatalf("expected error for missing list")
	}
	if status := apiStatus(t, err); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestListServiceGetEntities_ReturnsMembersOfDeclaredType(t *testing.T) {
	service, db := newListServiceForTest(t)
	ctx := context.Background()

	person := &types.Person{FirstName: "Jane", LastName: "Doe", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	if err := db.Create(person).Error; err != nil {
		t.Fatalf("seed person: %v", err)
	}
	list, err := service.Create(ctx, "Founders", types.ListTypePerson)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if _, err := service.Modify(ctx, list.ID, ListOperationAdd, []int64{person.ID}); err != nil {
		t.Fatalf("add: %v", err)
	}

	entities, err := service.GetEntities(ctx, list.ID)
	if err != nil {
		t.Fatalf("GetEntities: %v", err)
	}
	if len(entities.People) != 1 || entities.People[0].ID != person.ID {
		t.Fatalf("expected the person member, got %+v", entities.People)
	}
	if entities.Companies != nil {
		t.Fatalf("expected no companies side for a person list")
	}
}
