// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/branch"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/employee"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/notification"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/patient"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/stock"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		// Accounts and directories
		&user.User{},
		&branch.Branch{},
		&patient.Patient{},
		&employee.Employee{},

		// Catalog
		&catalog.Category{},
		&catalog.Item{},

		// Stock movements
		&stock.Arrival{},
		&stock.Transfer{},
		&stock.Shipment{},
		&stock.ShipmentItem{},
		&stock.DispensingRecord{},
		&stock.DispensingItem{},

		// Notifications
		&notification.Notification{},
	}

	// Run auto-migration for each model
	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_login_active ON users(login, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_branch ON users(branch_id)",

		// Item indexes. One row per (logical item, location); the partial
		// unique indexes keep central and branch copies from colliding.
		"CREATE INDEX IF NOT EXISTS idx_items_type_branch ON items(item_type, branch_id)",
		"CREATE INDEX IF NOT EXISTS idx_items_name ON items(name)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_items_central_name ON items(item_type, name) WHERE branch_id IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_items_branch_name ON items(item_type, name, branch_id) WHERE branch_id IS NOT NULL",
		"CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_id)",

		// Movement indexes
		"CREATE INDEX IF NOT EXISTS idx_arrivals_date ON arrivals(date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_arrivals_item ON arrivals(item_type, item_id)",
		"CREATE INDEX IF NOT EXISTS idx_transfers_date ON transfers(date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_transfers_to_branch ON transfers(to_branch_id, date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_shipments_branch_status ON shipments(to_branch_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_shipments_created_at ON shipments(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_shipment_items_shipment ON shipment_items(shipment_id)",
		"CREATE INDEX IF NOT EXISTS idx_dispensing_branch_date ON dispensing_records(branch_id, date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_dispensing_patient ON dispensing_records(patient_id)",
		"CREATE INDEX IF NOT EXISTS idx_dispensing_items_record ON dispensing_items(record_id)",

		// Notification indexes
		"CREATE INDEX IF NOT EXISTS idx_notifications_branch_read ON notifications(branch_id, is_read)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at DESC)",

		// Quantities must never go negative regardless of code paths.
		// ADD CONSTRAINT has no IF NOT EXISTS, so swallow the duplicate
		// on repeated startups.
		`DO $$ BEGIN
			ALTER TABLE items ADD CONSTRAINT chk_items_quantity_non_negative CHECK (quantity >= 0);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$`,
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedCategories creates the default catalog categories
func (m *Migration) seedCategories() error {
	log.Println("🏷️ Seeding categories...")

	categories := []catalog.Category{
		{
			Name:        "General medicines",
			Description: "Medicines without a dedicated category",
			Type:        catalog.ItemTypeMedicine,
		},
		{
			Name:        "Antibiotics",
			Description: "Antibacterial medicines",
			Type:        catalog.ItemTypeMedicine,
		},
		{
			Name:        "General medical devices",
			Description: "Medical devices without a dedicated category",
			Type:        catalog.ItemTypeMedicalDevice,
		},
		{
			Name:        "Consumables",
			Description: "Single-use medical supplies",
			Type:        catalog.ItemTypeMedicalDevice,
		},
	}

	for _, category := range categories {
		var existing catalog.Category
		result := m.db.Where("name = ? AND type = ?", category.Name, category.Type).First(&existing)
		if result.Error != nil {
			category.ID = uuid.NewString()
			if err := m.db.Create(&category).Error; err != nil {
				return err
			}
			log.Printf("✅ Created category: %s", category.Name)
		} else {
			log.Printf("⏭️ Category already exists: %s", category.Name)
		}
	}

	return nil
}

// seedAdminUser creates the default admin account
func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var existing user.User
	result := m.db.Where("login = ?", "admin").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		adminUser := user.User{
			ID:       uuid.NewString(),
			Login:    "admin",
			Password: string(hashedPassword),
			Role:     user.RoleAdmin,
			IsActive: true,
		}

		if err := m.db.Create(&adminUser).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("✅ Created admin user: admin (password: admin123)")
	} else {
		log.Printf("⏭️ Admin user already exists with ID: %s", existing.ID)
	}

	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Define tables in reverse dependency order
	tables := []string{
		"notifications",
		"dispensing_items",
		"dispensing_records",
		"shipment_items",
		"shipments",
		"transfers",
		"arrivals",
		"items",
		"categories",
		"employees",
		"patients",
		"branches",
		"users",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}

// GetTableInfo returns information about database tables
func (m *Migration) GetTableInfo() error {
	var tables []string

	// Get list of tables
	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	log.Println("📊 Database Tables Information:")
	log.Println("================================")

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count

		status := "✅"
		if count == 0 {
			status = "📭"
		}

		log.Printf("%s %-25s | %d records", status, table, count)
	}

	log.Println("================================")
	log.Printf("📈 Total records across all tables: %d", totalRecords)
	log.Printf("🗂️ Total tables: %d", len(tables))

	return nil
}
