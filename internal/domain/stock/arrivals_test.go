// internal/domain/stock/arrivals_test.go
package stock

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
)

func TestArrivalIncrementsCentralStock(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)

	item := seedCentralItem(t, db, 10)
	t.Cleanup(func() {
		db.Where("item_id = ?", item.ID).Delete(&Arrival{})
	})

	arrivals, err := svc.CreateArrivals(&BatchArrivalRequest{
		Arrivals: []ArrivalLine{
			{ItemType: string(item.Type), ItemID: item.ID, Quantity: 15},
		},
	})
	if err != nil {
		t.Fatalf("CreateArrivals: %v", err)
	}
	if len(arrivals) != 1 {
		t.Fatalf("expected 1 arrival record, got %d", len(arrivals))
	}
	if arrivals[0].ItemName != item.Name || arrivals[0].Quantity != 15 {
		t.Errorf("unexpected arrival record: %+v", arrivals[0])
	}

	qty, err := NewLedger(db).AvailableQuantity(item.Type, item.ID, catalog.CentralWarehouse())
	if err != nil {
		t.Fatalf("AvailableQuantity: %v", err)
	}
	if qty != 25 {
		t.Errorf("central quantity = %d, want 25", qty)
	}
}

func TestArrivalBatchIsAllOrNothing(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)

	item := seedCentralItem(t, db, 10)
	t.Cleanup(func() {
		db.Where("item_id = ?", item.ID).Delete(&Arrival{})
	})

	// The second line references an item that does not exist; the first
	// line's increment must not survive.
	_, err := svc.CreateArrivals(&BatchArrivalRequest{
		Arrivals: []ArrivalLine{
			{ItemType: string(item.Type), ItemID: item.ID, Quantity: 5},
			{ItemType: string(catalog.ItemTypeMedicine), ItemID: uuid.NewString(), Quantity: 3},
		},
	})
	if !errors.Is(err, catalog.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	qty, _ := NewLedger(db).AvailableQuantity(item.Type, item.ID, catalog.CentralWarehouse())
	if qty != 10 {
		t.Errorf("central quantity = %d after failed batch, want 10", qty)
	}

	var audits int64
	db.Model(&Arrival{}).Where("item_id = ?", item.ID).Count(&audits)
	if audits != 0 {
		t.Errorf("found %d audit rows after failed batch, want 0", audits)
	}
}

func TestArrivalRejectsBadLines(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)

	item := seedCentralItem(t, db, 10)

	_, err := svc.CreateArrivals(&BatchArrivalRequest{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for empty batch, got %v", err)
	}

	_, err = svc.CreateArrivals(&BatchArrivalRequest{
		Arrivals: []ArrivalLine{{ItemType: "vaccine", ItemID: item.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown type tag, got %v", err)
	}

	_, err = svc.CreateArrivals(&BatchArrivalRequest{
		Arrivals: []ArrivalLine{{ItemType: string(item.Type), ItemID: item.ID, Quantity: -2}},
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for negative quantity, got %v", err)
	}

	// None of the rejected batches may have touched the row.
	qty, _ := NewLedger(db).AvailableQuantity(item.Type, item.ID, catalog.CentralWarehouse())
	if qty != 10 {
		t.Errorf("central quantity = %d, want 10", qty)
	}
}
