// internal/domain/stock/ledger_test.go
package stock

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB connects to the database named by TEST_DATABASE_URL and
// skips the test when the variable is unset.
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

	err = db.AutoMigrate(
		&catalog.Category{}, &catalog.Item{},
		&Arrival{}, &Transfer{},
		&Shipment{}, &ShipmentItem{},
		&DispensingRecord{}, &DispensingItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

// seedCentralItem creates a central warehouse row with a unique name
// and registers cleanup of everything the test creates under that name.
func seedCentralItem(t *testing.T, db *gorm.DB, qty int) *catalog.Item {
	t.Helper()

	category := &catalog.Category{
		ID:   uuid.NewString(),
		Name: fmt.Sprintf("test category %s", uuid.NewString()[:8]),
		Type: catalog.ItemTypeMedicine,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	item := &catalog.Item{
		ID:         uuid.NewString(),
		Type:       catalog.ItemTypeMedicine,
		Name:       fmt.Sprintf("test medicine %s", uuid.NewString()[:8]),
		CategoryID: category.ID,
		Quantity:   qty,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create item: %v", err)
	}

	t.Cleanup(func() {
		db.Where("item_type = ? AND name = ?", item.Type, item.Name).Delete(&catalog.Item{})
		db.Delete(category)
	})
	return item
}

func TestLedgerIncrementAndDecrement(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)
	central := catalog.CentralWarehouse()

	item := seedCentralItem(t, db, 10)

	if err := ledger.Increment(item.Type, item.ID, central, 5); err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if err := ledger.Decrement(item.Type, item.ID, central, 3); err != nil {
		t.Fatalf("Decrement: %v", err)
	}

	qty, err := ledger.AvailableQuantity(item.Type, item.ID, central)
	if err != nil {
		t.Fatalf("AvailableQuantity: %v", err)
	}
	if qty != 12 {
		t.Errorf("quantity = %d, want 12", qty)
	}
}

func TestLedgerDecrementOversellFails(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)
	central := catalog.CentralWarehouse()

	item := seedCentralItem(t, db, 4)

	err := ledger.Decrement(item.Type, item.ID, central, 5)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	var typed *InsufficientStockError
	if !errors.As(err, &typed) {
		t.Fatal("expected InsufficientStockError detail")
	}
	if typed.Available != 4 || typed.Requested != 5 {
		t.Errorf("detail = %+v", typed)
	}

	// The failed decrement must not have touched the row.
	qty, err := ledger.AvailableQuantity(item.Type, item.ID, central)
	if err != nil {
		t.Fatalf("AvailableQuantity: %v", err)
	}
	if qty != 4 {
		t.Errorf("quantity = %d, want 4 after failed decrement", qty)
	}
}

func TestLedgerDecrementMissingRow(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)

	err := ledger.Decrement(catalog.ItemTypeMedicine, uuid.NewString(), catalog.CentralWarehouse(), 1)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock for missing row, got %v", err)
	}
}

func TestLedgerRejectsNonPositiveDeltas(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)
	central := catalog.CentralWarehouse()

	item := seedCentralItem(t, db, 1)

	for _, delta := range []int{0, -1} {
		if err := ledger.Increment(item.Type, item.ID, central, delta); !errors.Is(err, ErrValidation) {
			t.Errorf("Increment(%d) expected ErrValidation, got %v", delta, err)
		}
		if err := ledger.Decrement(item.Type, item.ID, central, delta); !errors.Is(err, ErrValidation) {
			t.Errorf("Decrement(%d) expected ErrValidation, got %v", delta, err)
		}
	}
}

func TestLedgerConcurrentOversell(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)
	central := catalog.CentralWarehouse()

	item := seedCentralItem(t, db, 1)

	// Two concurrent decrements race for a single unit; exactly one may win.
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			results <- ledger.Decrement(item.Type, item.ID, central, 1)
		}()
	}

	var wins, losses int
	for i := 0; i < 2; i++ {
		if err := <-results; err == nil {
			wins++
		} else if errors.Is(err, ErrInsufficientStock) {
			losses++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("wins = %d, losses = %d, want exactly one of each", wins, losses)
	}

	qty, err := ledger.AvailableQuantity(item.Type, item.ID, central)
	if err != nil {
		t.Fatalf("AvailableQuantity: %v", err)
	}
	if qty != 0 {
		t.Errorf("quantity = %d, want 0", qty)
	}
}

func TestLedgerDepositByName(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)
	branchID := uuid.NewString()

	source := seedCentralItem(t, db, 10)

	// First deposit creates the branch row from the central one.
	if err := ledger.DepositByName(branchID, source, 3); err != nil {
		t.Fatalf("DepositByName: %v", err)
	}

	var row catalog.Item
	err := db.Where("item_type = ? AND name = ? AND branch_id = ?", source.Type, source.Name, branchID).
		First(&row).Error
	if err != nil {
		t.Fatalf("branch row not created: %v", err)
	}
	if row.Quantity != 3 {
		t.Errorf("branch quantity = %d, want 3", row.Quantity)
	}
	if row.ID == source.ID {
		t.Error("branch row must be distinct from the central row")
	}
	if row.CategoryID != source.CategoryID {
		t.Error("branch row must inherit the source category")
	}

	// Second deposit tops up the existing row.
	if err := ledger.DepositByName(branchID, source, 2); err != nil {
		t.Fatalf("second DepositByName: %v", err)
	}

	qty, err := ledger.AvailableQuantity(source.Type, row.ID, catalog.AtBranch(branchID))
	if err != nil {
		t.Fatalf("AvailableQuantity: %v", err)
	}
	if qty != 5 {
		t.Errorf("branch quantity = %d, want 5", qty)
	}
}
