// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"gorm.io/gorm"
)

var (
	// ErrItemNotFound is returned when no item row matches the lookup
	ErrItemNotFound = errors.New("item not found")
	// ErrCategoryNotFound is returned when the referenced category does not exist
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidCategory is returned when a category's type tag does not
	// match the item's own variant
	ErrInvalidCategory = errors.New("category type does not match item type")
)

// Service handles item and category management
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateCategoryRequest represents category creation data
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required"`
}

// UpdateCategoryRequest represents category update data
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateItemRequest represents item creation data
type CreateItemRequest struct {
	Type          string  `json:"type" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	CategoryID    string  `json:"category_id" binding:"required"`
	PurchasePrice float64 `json:"purchase_price"`
	SellPrice     float64 `json:"sell_price"`
	Quantity      int     `json:"quantity"`
	BranchID      *string `json:"branch_id"`
}

// UpdateItemRequest represents item update data
type UpdateItemRequest struct {
	Name          *string  `json:"name"`
	CategoryID    *string  `json:"category_id"`
	PurchasePrice *float64 `json:"purchase_price"`
	SellPrice     *float64 `json:"sell_price"`
}

// CATEGORY MANAGEMENT

// GetCategories retrieves categories, optionally filtered by type tag
func (s *Service) GetCategories(typeTag string) ([]Category, error) {
	query := s.db.Model(&Category{})
	if typeTag != "" {
		itemType, err := ParseItemType(typeTag)
		if err != nil {
			return nil, err
		}
		query = query.Where("type = ?", itemType)
	}

	var categories []Category
	if err := query.Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a new category
func (s *Service) CreateCategory(req *CreateCategoryRequest) (*Category, error) {
	itemType, err := ParseItemType(req.Type)
	if err != nil {
		return nil, err
	}

	category := &Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Type:        itemType,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// UpdateCategory updates a category's name/description; the type tag is fixed
func (s *Service) UpdateCategory(id string, req *UpdateCategoryRequest) (*Category, error) {
	var category Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, ErrCategoryNotFound
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.db.Save(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &category, nil
}

// DeleteCategory deletes a category
func (s *Service) DeleteCategory(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// DefaultCategory returns any category of the given type, used when a
// branch row has to be created without an explicit category.
func (s *Service) DefaultCategory(itemType ItemType) (*Category, error) {
	var category Category
	if err := s.db.Where("type = ?", itemType).First(&category).Error; err != nil {
		return nil, ErrCategoryNotFound
	}
	return &category, nil
}

// ITEM MANAGEMENT

// GetItems retrieves item rows at one location, optionally filtered by type tag
func (s *Service) GetItems(typeTag string, loc Location) ([]Item, error) {
	query := s.db.Model(&Item{}).Scopes(AtLocation(loc))
	if typeTag != "" {
		itemType, err := ParseItemType(typeTag)
		if err != nil {
			return nil, err
		}
		query = query.Where("item_type = ?", itemType)
	}

	var items []Item
	if err := query.Preload("Category").Order("name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve items: %w", err)
	}
	return items, nil
}

// GetItem retrieves one item row by id
func (s *Service) GetItem(id string) (*Item, error) {
	var item Item
	if err := s.db.Preload("Category").Where("id = ?", id).First(&item).Error; err != nil {
		return nil, ErrItemNotFound
	}
	return &item, nil
}

// FindItemAt retrieves the row for a (type, id) pair at one location
func (s *Service) FindItemAt(itemType ItemType, itemID string, loc Location) (*Item, error) {
	var item Item
	err := s.db.Scopes(AtLocation(loc)).
		Where("item_type = ? AND id = ?", itemType, itemID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to look up item: %w", err)
	}
	return &item, nil
}

// CreateItem creates a new item row after validating its category
func (s *Service) CreateItem(req *CreateItemRequest) (*Item, error) {
	itemType, err := ParseItemType(req.Type)
	if err != nil {
		return nil, err
	}

	if err := s.validateCategory(req.CategoryID, itemType); err != nil {
		return nil, err
	}

	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}

	item := &Item{
		ID:            uuid.NewString(),
		Type:          itemType,
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		PurchasePrice: req.PurchasePrice,
		SellPrice:     req.SellPrice,
		Quantity:      req.Quantity,
		BranchID:      req.BranchID,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

// UpdateItem updates an item's descriptive fields and prices. Quantity is
// deliberately not updatable here; every quantity change goes through the
// stock ledger.
func (s *Service) UpdateItem(id string, req *UpdateItemRequest) (*Item, error) {
	var item Item
	if err := s.db.Where("id = ?", id).First(&item).Error; err != nil {
		return nil, ErrItemNotFound
	}

	if req.CategoryID != nil {
		if err := s.validateCategory(*req.CategoryID, item.Type); err != nil {
			return nil, err
		}
		item.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.PurchasePrice != nil {
		item.PurchasePrice = *req.PurchasePrice
	}
	if req.SellPrice != nil {
		item.SellPrice = *req.SellPrice
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return &item, nil
}

// DeleteItem deletes an item row
func (s *Service) DeleteItem(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Item{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *Service) validateCategory(categoryID string, itemType ItemType) error {
	var category Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		return ErrCategoryNotFound
	}
	if category.Type != itemType {
		return fmt.Errorf("%w: category %s is %s", ErrInvalidCategory, category.ID, category.Type)
	}
	return nil
}
