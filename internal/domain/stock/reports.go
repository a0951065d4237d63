// internal/domain/stock/reports.go
package stock

import (
	"fmt"
	"time"

	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
)

// StockOnHandEntry is one (item, quantity) pair of a location listing
type StockOnHandEntry struct {
	ItemID   string           `json:"item_id"`
	ItemType catalog.ItemType `json:"item_type"`
	Name     string           `json:"name"`
	Quantity int              `json:"quantity"`
}

// StockOnHand returns the live per-item quantities at a location
func (s *Service) StockOnHand(loc catalog.Location) ([]StockOnHandEntry, error) {
	var items []catalog.Item
	err := s.db.Scopes(catalog.AtLocation(loc)).Order("name").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}

	entries := make([]StockOnHandEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, StockOnHandEntry{
			ItemID:   item.ID,
			ItemType: item.Type,
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}
	return entries, nil
}

// StockAsOf reconstructs per-item quantities at a location as of a past
// instant by replaying the audit history backwards from the current
// quantities: movements recorded after asOf are undone row by row.
func (s *Service) StockAsOf(loc catalog.Location, asOf time.Time) ([]StockOnHandEntry, error) {
	var items []catalog.Item
	err := s.db.Scopes(catalog.AtLocation(loc)).Order("name").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}

	entries := make([]StockOnHandEntry, 0, len(items))
	for _, item := range items {
		qty := item.Quantity
		var delta int
		var err error
		if loc.IsCentral() {
			delta, err = s.centralDeltaSince(&item, asOf)
		} else {
			delta, err = s.branchDeltaSince(&item, *loc.BranchID(), asOf)
		}
		if err != nil {
			return nil, err
		}

		entries = append(entries, StockOnHandEntry{
			ItemID:   item.ID,
			ItemType: item.Type,
			Name:     item.Name,
			Quantity: qty - delta,
		})
	}
	return entries, nil
}

// centralDeltaSince computes the net quantity change of a central row
// since asOf: arrivals in, transfers and accepted shipments out.
func (s *Service) centralDeltaSince(item *catalog.Item, asOf time.Time) (int, error) {
	var arrived int64
	err := s.db.Model(&Arrival{}).
		Where("item_type = ? AND item_id = ? AND date > ?", item.Type, item.ID, asOf).
		Select("COALESCE(SUM(quantity), 0)").Scan(&arrived).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum arrivals: %w", err)
	}

	var transferred int64
	if item.Type == catalog.ItemTypeMedicine {
		err = s.db.Model(&Transfer{}).
			Where("medicine_id = ? AND date > ?", item.ID, asOf).
			Select("COALESCE(SUM(quantity), 0)").Scan(&transferred).Error
		if err != nil {
			return 0, fmt.Errorf("failed to sum transfers: %w", err)
		}
	}

	var shipped int64
	err = s.db.Model(&ShipmentItem{}).
		Joins("JOIN shipments ON shipments.id = shipment_items.shipment_id").
		Where("shipment_items.item_type = ? AND shipment_items.item_id = ?", item.Type, item.ID).
		Where("shipments.status = ? AND shipments.accepted_at > ?", ShipmentStatusAccepted, asOf).
		Select("COALESCE(SUM(shipment_items.quantity), 0)").Scan(&shipped).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum shipped quantities: %w", err)
	}

	return int(arrived - transferred - shipped), nil
}

// branchDeltaSince computes the net quantity change of a branch row
// since asOf: transfers and accepted shipments in, dispensing out.
// Incoming movements are matched by item name, the key under which
// branch rows are created.
func (s *Service) branchDeltaSince(item *catalog.Item, branchID string, asOf time.Time) (int, error) {
	var transferredIn int64
	if item.Type == catalog.ItemTypeMedicine {
		err := s.db.Model(&Transfer{}).
			Where("medicine_name = ? AND to_branch_id = ? AND date > ?", item.Name, branchID, asOf).
			Select("COALESCE(SUM(quantity), 0)").Scan(&transferredIn).Error
		if err != nil {
			return 0, fmt.Errorf("failed to sum transfers: %w", err)
		}
	}

	var shippedIn int64
	err := s.db.Model(&ShipmentItem{}).
		Joins("JOIN shipments ON shipments.id = shipment_items.shipment_id").
		Where("shipment_items.item_type = ? AND shipment_items.item_name = ?", item.Type, item.Name).
		Where("shipments.to_branch_id = ? AND shipments.status = ? AND shipments.accepted_at > ?", branchID, ShipmentStatusAccepted, asOf).
		Select("COALESCE(SUM(shipment_items.quantity), 0)").Scan(&shippedIn).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum shipped quantities: %w", err)
	}

	var dispensed int64
	err = s.db.Model(&DispensingItem{}).
		Joins("JOIN dispensing_records ON dispensing_records.id = dispensing_items.record_id").
		Where("dispensing_items.item_type = ? AND dispensing_items.item_id = ?", item.Type, item.ID).
		Where("dispensing_records.branch_id = ? AND dispensing_records.date > ?", branchID, asOf).
		Select("COALESCE(SUM(dispensing_items.quantity), 0)").Scan(&dispensed).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum dispensed quantities: %w", err)
	}

	return int(transferredIn + shippedIn - dispensed), nil
}

// IncomingReport lists a branch's accepted shipments created within the
// date range, with their lines.
func (s *Service) IncomingReport(branchID string, from, to time.Time) ([]Shipment, error) {
	var shipments []Shipment
	err := s.db.Preload("Items", orderBySeq).
		Where("to_branch_id = ? AND status = ?", branchID, ShipmentStatusAccepted).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at").
		Find(&shipments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build incoming report: %w", err)
	}
	return shipments, nil
}
