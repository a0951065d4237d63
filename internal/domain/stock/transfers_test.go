// internal/domain/stock/transfers_test.go
package stock

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
)

func TestTransferMovesStockAndRecords(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	branchID := uuid.NewString()

	medicine := seedCentralItem(t, db, 100)
	t.Cleanup(func() {
		db.Where("medicine_id = ?", medicine.ID).Delete(&Transfer{})
	})

	transfers, err := svc.CreateTransfers(&BatchTransferRequest{
		Transfers: []TransferLine{
			{MedicineID: medicine.ID, Quantity: 30, ToBranchID: branchID},
		},
	})
	if err != nil {
		t.Fatalf("CreateTransfers: %v", err)
	}
	if len(transfers) != 1 {
		t.Fatalf("expected 1 transfer record, got %d", len(transfers))
	}

	record := transfers[0]
	if record.MedicineID != medicine.ID || record.MedicineName != medicine.Name {
		t.Errorf("unexpected record identity: %+v", record)
	}
	if record.Quantity != 30 || record.ToBranchID != branchID {
		t.Errorf("unexpected record movement: %+v", record)
	}

	ledger := NewLedger(db)
	if qty, _ := ledger.AvailableQuantity(medicine.Type, medicine.ID, catalog.CentralWarehouse()); qty != 70 {
		t.Errorf("central quantity = %d, want 70", qty)
	}

	var branchRow catalog.Item
	err = db.Where("item_type = ? AND name = ? AND branch_id = ?", medicine.Type, medicine.Name, branchID).
		First(&branchRow).Error
	if err != nil {
		t.Fatalf("branch row missing: %v", err)
	}
	if branchRow.Quantity != 30 {
		t.Errorf("branch quantity = %d, want 30", branchRow.Quantity)
	}

	var count int64
	db.Model(&Transfer{}).Where("medicine_id = ?", medicine.ID).Count(&count)
	if count != 1 {
		t.Errorf("found %d audit rows, want 1", count)
	}
}

func TestTransferBatchIsAllOrNothing(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	branchID := uuid.NewString()

	first := seedCentralItem(t, db, 50)
	second := seedCentralItem(t, db, 2)
	t.Cleanup(func() {
		db.Where("medicine_id IN ?", []string{first.ID, second.ID}).Delete(&Transfer{})
	})

	_, err := svc.CreateTransfers(&BatchTransferRequest{
		Transfers: []TransferLine{
			{MedicineID: first.ID, Quantity: 10, ToBranchID: branchID},
			{MedicineID: second.ID, Quantity: 5, ToBranchID: branchID},
		},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// The first line's decrement and deposit must have rolled back.
	ledger := NewLedger(db)
	if qty, _ := ledger.AvailableQuantity(first.Type, first.ID, catalog.CentralWarehouse()); qty != 50 {
		t.Errorf("first central quantity = %d, want 50", qty)
	}
	if qty, _ := ledger.AvailableQuantity(second.Type, second.ID, catalog.CentralWarehouse()); qty != 2 {
		t.Errorf("second central quantity = %d, want 2", qty)
	}

	var branchRows int64
	db.Model(&catalog.Item{}).Where("branch_id = ?", branchID).Count(&branchRows)
	if branchRows != 0 {
		t.Errorf("found %d branch rows after failed batch, want 0", branchRows)
	}

	var audits int64
	db.Model(&Transfer{}).Where("medicine_id IN ?", []string{first.ID, second.ID}).Count(&audits)
	if audits != 0 {
		t.Errorf("found %d audit rows after failed batch, want 0", audits)
	}
}

func TestTransferRejectsUnknownMedicine(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.CreateTransfers(&BatchTransferRequest{
		Transfers: []TransferLine{
			{MedicineID: uuid.NewString(), Quantity: 1, ToBranchID: uuid.NewString()},
		},
	})
	if !errors.Is(err, catalog.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
