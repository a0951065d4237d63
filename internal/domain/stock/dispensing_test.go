// internal/domain/stock/dispensing_test.go
package stock

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

func seedBranchItem(t *testing.T, db *gorm.DB, branchID string, qty int) *catalog.Item {
	t.Helper()
	source := seedCentralItem(t, db, qty)
	if err := NewLedger(db).DepositByName(branchID, source, qty); err != nil {
		t.Fatalf("DepositByName: %v", err)
	}

	var row catalog.Item
	err := db.Where("item_type = ? AND name = ? AND branch_id = ?", source.Type, source.Name, branchID).
		First(&row).Error
	if err != nil {
		t.Fatalf("branch row missing: %v", err)
	}
	return &row
}

func TestDispensingDecrementsBranchStock(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	branchID := uuid.NewString()

	item := seedBranchItem(t, db, branchID, 5)

	record, err := svc.CreateDispensing(&DispensingRequest{
		PatientID:  uuid.NewString(),
		EmployeeID: uuid.NewString(),
		BranchID:   branchID,
		Medicines:  []IDQuantity{{ID: item.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateDispensing: %v", err)
	}
	t.Cleanup(func() {
		db.Where("record_id = ?", record.ID).Delete(&DispensingItem{})
		db.Delete(&DispensingRecord{}, "id = ?", record.ID)
	})

	if record.PatientName != "Test Patient" || record.EmployeeName != "Test Employee" {
		t.Errorf("directory names not stamped: %+v", record)
	}
	if len(record.Items) != 1 || record.Items[0].ItemName != item.Name {
		t.Errorf("unexpected record lines: %+v", record.Items)
	}

	qty, err := svc.ledger.AvailableQuantity(item.Type, item.ID, catalog.AtBranch(branchID))
	if err != nil {
		t.Fatalf("AvailableQuantity: %v", err)
	}
	if qty != 3 {
		t.Errorf("branch quantity = %d, want 3", qty)
	}
}

func TestDispensingIsAllOrNothing(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	branchID := uuid.NewString()

	good := seedBranchItem(t, db, branchID, 5)
	short := seedBranchItem(t, db, branchID, 1)

	_, err := svc.CreateDispensing(&DispensingRequest{
		PatientID:  uuid.NewString(),
		EmployeeID: uuid.NewString(),
		BranchID:   branchID,
		Medicines: []IDQuantity{
			{ID: good.ID, Quantity: 3},
			{ID: short.ID, Quantity: 2},
		},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// The failing line must not have let the first line through.
	ledger := NewLedger(db)
	if qty, _ := ledger.AvailableQuantity(good.Type, good.ID, catalog.AtBranch(branchID)); qty != 5 {
		t.Errorf("first item quantity = %d, want 5", qty)
	}
	if qty, _ := ledger.AvailableQuantity(short.Type, short.ID, catalog.AtBranch(branchID)); qty != 1 {
		t.Errorf("second item quantity = %d, want 1", qty)
	}

	var count int64
	db.Model(&DispensingRecord{}).Where("branch_id = ?", branchID).Count(&count)
	if count != 0 {
		t.Errorf("found %d dispensing records after failed batch, want 0", count)
	}
}

func TestDispensingRejectsWrongLocation(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)

	// The item only exists at the central warehouse.
	item := seedCentralItem(t, db, 5)

	_, err := svc.CreateDispensing(&DispensingRequest{
		PatientID:  uuid.NewString(),
		EmployeeID: uuid.NewString(),
		BranchID:   uuid.NewString(),
		Medicines:  []IDQuantity{{ID: item.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock for central-only item, got %v", err)
	}
}
