package services

import (
	"cbt-portal-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Create(createdBy uuid.UUID, title, message string) (*models.Notification, error) {
	notification := models.Notification{
		Title:     title,
		Message:   message,
		CreatedBy: createdBy,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (s *NotificationService) ListRecent(limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 20
	}

	var notifications []models.Notification
	if err := s.db.Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}
