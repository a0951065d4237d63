// internal/interfaces/http/routes/routes.go
package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/branch"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/catalog"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/employee"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/notification"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/patient"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/report"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/stock"
	"github.com/your-org/clinic-warehouse-backend/internal/domain/user"
	redisdb "github.com/your-org/clinic-warehouse-backend/internal/infrastructure/database/redis"
	"github.com/your-org/clinic-warehouse-backend/internal/interfaces/http/handlers"
	"github.com/your-org/clinic-warehouse-backend/internal/interfaces/http/middleware"
	"github.com/your-org/clinic-warehouse-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// SetupRoutes wires every service and registers the API surface
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redisdb.Client, cfg *config.Config) {
	log := newLogger(cfg)

	// Services. The stock service gets the directories it needs to
	// stamp names onto records and the notifier for branch events.
	userService := user.NewService(db, cfg)
	branchService := branch.NewService(db, cfg, userService)
	catalogService := catalog.NewService(db, cfg)
	patientService := patient.NewService(db, cfg)
	employeeService := employee.NewService(db, cfg)
	notificationService := notification.NewService(db, cfg, redisClient, log)
	stockService := stock.NewService(db, cfg, log, patientService, employeeService, notificationService)
	pdfService := pdf.NewService(cfg)
	reportService := report.NewService(cfg, stockService, patientService, pdfService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cfg)
	userHandler := handlers.NewUserHandler(userService, cfg)
	branchHandler := handlers.NewBranchHandler(branchService, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalogService, cfg)
	patientHandler := handlers.NewPatientHandler(patientService, cfg)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, cfg)
	stockHandler := handlers.NewStockHandler(stockService, cfg)
	shipmentHandler := handlers.NewShipmentHandler(stockService, cfg)
	dispensingHandler := handlers.NewDispensingHandler(stockService, cfg)
	notificationHandler := handlers.NewNotificationHandler(notificationService, cfg)
	reportHandler := handlers.NewReportHandler(reportService, cfg)

	// Public auth endpoints
	auth := rg.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.POST("/change-password", authHandler.ChangePassword)
		}
	}

	// Everything else requires a signed-in account.
	api := rg.Group("")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		categories := api.Group("/categories")
		{
			categories.GET("", catalogHandler.GetCategories)
			categories.POST("", catalogHandler.CreateCategory)
			categories.PUT("/:id", catalogHandler.UpdateCategory)
			categories.DELETE("/:id", catalogHandler.DeleteCategory)
		}

		items := api.Group("/items")
		{
			items.GET("", catalogHandler.GetItems)
			items.GET("/:id", catalogHandler.GetItem)
			items.POST("", catalogHandler.CreateItem)
			items.PUT("/:id", catalogHandler.UpdateItem)
			items.DELETE("/:id", catalogHandler.DeleteItem)
		}

		api.GET("/stock", stockHandler.GetStock)
		api.GET("/stock/as-of", stockHandler.GetStockAsOf)

		arrivals := api.Group("/arrivals")
		{
			arrivals.GET("", stockHandler.GetArrivals)
			arrivals.POST("", stockHandler.CreateArrivals)
		}

		transfers := api.Group("/transfers")
		{
			transfers.GET("", stockHandler.GetTransfers)
			transfers.POST("", stockHandler.CreateTransfers)
		}

		shipments := api.Group("/shipments")
		{
			shipments.GET("", shipmentHandler.GetShipments)
			shipments.GET("/:id", shipmentHandler.GetShipment)
			shipments.POST("", shipmentHandler.CreateShipment)
			shipments.POST("/:id/accept", shipmentHandler.AcceptShipment)
			shipments.POST("/:id/reject", shipmentHandler.RejectShipment)
			shipments.POST("/:id/cancel", shipmentHandler.CancelShipment)
		}

		dispensing := api.Group("/dispensing")
		{
			dispensing.GET("", dispensingHandler.GetDispensingRecords)
			dispensing.POST("", dispensingHandler.CreateDispensing)
		}

		patients := api.Group("/patients")
		{
			patients.GET("", patientHandler.GetPatients)
			patients.GET("/:id", patientHandler.GetPatient)
			patients.POST("", patientHandler.CreatePatient)
			patients.PUT("/:id", patientHandler.UpdatePatient)
			patients.DELETE("/:id", patientHandler.DeletePatient)
		}

		employees := api.Group("/employees")
		{
			employees.GET("", employeeHandler.GetEmployees)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.POST("", employeeHandler.CreateEmployee)
			employees.PUT("/:id", employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", employeeHandler.DeleteEmployee)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}

		reports := api.Group("/reports")
		{
			reports.POST("/generate", reportHandler.Generate)
			reports.GET("/incoming", reportHandler.IncomingReport)
			reports.POST("/stock/pdf", reportHandler.ExportStockPDF)
		}

		api.GET("/calendar/dispensing", reportHandler.DispensingCalendar)

		// Admin-only management
		admin := api.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			branches := admin.Group("/branches")
			{
				branches.GET("", branchHandler.GetBranches)
				branches.GET("/:id", branchHandler.GetBranch)
				branches.POST("", branchHandler.CreateBranch)
				branches.PUT("/:id", branchHandler.UpdateBranch)
				branches.DELETE("/:id", branchHandler.DeleteBranch)
			}

			users := admin.Group("/users")
			{
				users.GET("", userHandler.GetUsers)
				users.GET("/:id", userHandler.GetUser)
				users.POST("", userHandler.CreateUser)
				users.PUT("/:id", userHandler.UpdateUser)
				users.DELETE("/:id", userHandler.DeleteUser)
			}
		}
	}
}

// newLogger builds the shared application logger from config
func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
