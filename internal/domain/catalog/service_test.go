// internal/domain/catalog/service_test.go
package catalog

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&Category{}, &Item{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, itemType ItemType) *Category {
	t.Helper()
	category := &Category{
		ID:   uuid.NewString(),
		Name: fmt.Sprintf("test category %s", uuid.NewString()[:8]),
		Type: itemType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	t.Cleanup(func() { db.Delete(category) })
	return category
}

func TestCreateItemRejectsCategoryTypeMismatch(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, &config.Config{})

	deviceCategory := seedCategory(t, db, ItemTypeMedicalDevice)

	_, err := svc.CreateItem(&CreateItemRequest{
		Type:       string(ItemTypeMedicine),
		Name:       fmt.Sprintf("test medicine %s", uuid.NewString()[:8]),
		CategoryID: deviceCategory.ID,
	})
	if !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestCreateItemRejectsMissingCategory(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, &config.Config{})

	_, err := svc.CreateItem(&CreateItemRequest{
		Type:       string(ItemTypeMedicine),
		Name:       fmt.Sprintf("test medicine %s", uuid.NewString()[:8]),
		CategoryID: uuid.NewString(),
	})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateItemMatchingCategory(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, &config.Config{})

	category := seedCategory(t, db, ItemTypeMedicine)

	item, err := svc.CreateItem(&CreateItemRequest{
		Type:       string(ItemTypeMedicine),
		Name:       fmt.Sprintf("test medicine %s", uuid.NewString()[:8]),
		CategoryID: category.ID,
		Quantity:   7,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	t.Cleanup(func() { db.Delete(&Item{}, "id = ?", item.ID) })

	if !item.Location().IsCentral() {
		t.Error("item without branch id must land at the central warehouse")
	}
	if item.Quantity != 7 {
		t.Errorf("quantity = %d, want 7", item.Quantity)
	}
}

func TestUpdateItemCategoryRevalidated(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, &config.Config{})

	medicineCategory := seedCategory(t, db, ItemTypeMedicine)
	deviceCategory := seedCategory(t, db, ItemTypeMedicalDevice)

	item, err := svc.CreateItem(&CreateItemRequest{
		Type:       string(ItemTypeMedicine),
		Name:       fmt.Sprintf("test medicine %s", uuid.NewString()[:8]),
		CategoryID: medicineCategory.ID,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	t.Cleanup(func() { db.Delete(&Item{}, "id = ?", item.ID) })

	_, err = svc.UpdateItem(item.ID, &UpdateItemRequest{CategoryID: &deviceCategory.ID})
	if !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory on cross-type recategorization, got %v", err)
	}
}
