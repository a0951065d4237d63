// internal/domain/notification/service.go
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/clinic-warehouse-backend/internal/config"
	"github.com/your-org/clinic-warehouse-backend/internal/infrastructure/database/redis"
	"gorm.io/gorm"
)

// ErrNotificationNotFound is returned when no notification matches
var ErrNotificationNotFound = errors.New("notification not found")

// Service handles branch notifications
type Service struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client
	log    *logrus.Logger
}

// NewService creates a new notification service
func NewService(db *gorm.DB, cfg *config.Config, redisClient *redis.Client, log *logrus.Logger) *Service {
	return &Service{
		db:     db,
		config: cfg,
		redis:  redisClient,
		log:    log,
	}
}

func channelFor(branchID string) string {
	return fmt.Sprintf("notifications:%s", branchID)
}

// NotifyBranch stores a notification row and publishes it to the
// branch's channel. A publish failure is logged but does not fail the
// notification; the row is the source of truth.
func (s *Service) NotifyBranch(branchID, title, message string) error {
	n := Notification{
		ID:        uuid.NewString(),
		BranchID:  branchID,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&n).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if s.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.redis.SetJSON(ctx, channelFor(branchID)+":latest", n, time.Hour); err != nil {
			s.log.WithError(err).WithField("branch_id", branchID).
				Warn("Failed to cache latest notification")
		}
		if err := s.redis.Publish(ctx, channelFor(branchID), n.Title+": "+n.Message); err != nil {
			s.log.WithError(err).WithField("branch_id", branchID).
				Warn("Failed to publish notification")
		}
	}

	return nil
}

// GetNotifications lists a branch's notifications, newest first
func (s *Service) GetNotifications(branchID string, unreadOnly bool) ([]Notification, error) {
	query := s.db.Where("branch_id = ?", branchID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead marks one notification as read
func (s *Service) MarkRead(id string) error {
	result := s.db.Model(&Notification{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks all of a branch's notifications as read
func (s *Service) MarkAllRead(branchID string) error {
	err := s.db.Model(&Notification{}).
		Where("branch_id = ? AND is_read = ?", branchID, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
