package repositories

import (
	"context"

	"github.com/bridgetunes/draw-console-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditEventRepository defines the interface for audit trail operations
type AuditEventRepository interface {
	Create(ctx context.Context, event *models.AuditEvent) error
	FindByDrawDate(ctx context.Context, drawDate string) ([]*models.AuditEvent, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.AuditEvent, error)
	Count(ctx context.Context) (int64, error)
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
	Count(ctx context.Context) (int64, error)
}
