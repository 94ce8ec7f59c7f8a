package notifications

import (
	"context"
	"log"
	"time"

	"agrimart/db"
	"agrimart/models"
	"agrimart/utils"
)

// Store is the narrow insert surface the service writes through. The
// production implementation is the mongo notifications collection.
type Store interface {
	Insert(ctx context.Context, n models.Notification) error
}

type mongoStore struct{}

func (mongoStore) Insert(ctx context.Context, n models.Notification) error {
	_, err := db.NotificationsCollection.InsertOne(ctx, n)
	return err
}

// Service is the single write path for notifications across the whole
// backend. Every caller treats Create as fire-and-forget.
type Service struct {
	store Store
}

func NewService() *Service {
	return &Service{store: mongoStore{}}
}

// NewServiceWithStore is used by tests to inject a failing store.
func NewServiceWithStore(s Store) *Service {
	return &Service{store: s}
}

// Create writes one notification. On any failure it logs and returns
// nil so callers never branch on the outcome; a state transition must
// not be failed by its notification.
func (s *Service) Create(ctx context.Context, userID string, typ models.NotificationType, title, message string, metadata map[string]any) *models.Notification {
	n := models.Notification{
		NotificationID: utils.NewID("n"),
		UserID:         userID,
		Type:           typ,
		Title:          title,
		Message:        message,
		Metadata:       metadata,
		CreatedAt:      time.Now(),
	}
	if err := s.store.Insert(ctx, n); err != nil {
		log.Printf("[notifications] create failed for user %s type %s: %v", userID, typ, err)
		return nil
	}
	return &n
}

// CreateBulk fans the same payload out to several users, dropping the
// attempts that fail.
func (s *Service) CreateBulk(ctx context.Context, userIDs []string, typ models.NotificationType, title, message string, metadata map[string]any) []models.Notification {
	var out []models.Notification
	for _, id := range userIDs {
		if n := s.Create(ctx, id, typ, title, message, metadata); n != nil {
			out = append(out, *n)
		}
	}
	return out
}
