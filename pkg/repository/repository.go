package repository

import (
	"context"

	"github.com/mightytheif/sakany/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type PropertyRepo interface {
	CreateProperty(ctx context.Context, p *models.Property) (int64, error)
	GetPropertyByID(ctx context.Context, id int64) (*models.Property, error)
	UpdateProperty(ctx context.Context, p *models.Property) error
	DeleteProperty(ctx context.Context, id int64) error

	// ListProperties returns candidates matching the search criteria in
	// newest-first order. Callers are responsible for applying the public
	// visibility gate; the repository does not re-implement it.
	ListProperties(ctx context.Context, f models.PropertyFilter, limit, offset int) ([]models.Property, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Property, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Property, error)

	// SetModeration applies an admin approve/reject decision.
	SetModeration(ctx context.Context, id int64, verified bool, status string) error
	SetStatus(ctx context.Context, id int64, status string) error
	SetPublished(ctx context.Context, id int64, published bool) error
}

type MessageRepo interface {
	CreateMessage(ctx context.Context, m *models.Message) (int64, error)
	ListBetween(ctx context.Context, userA, userB int64, limit, offset int) ([]models.Message, error)
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]models.Message, error)
}

type FavoriteRepo interface {
	AddFavorite(ctx context.Context, userID, propertyID int64) error
	RemoveFavorite(ctx context.Context, userID, propertyID int64) error
	ListFavoriteProperties(ctx context.Context, userID int64) ([]models.Property, error)
}

type ReportRepo interface {
	CreateReport(ctx context.Context, r *models.Report) (int64, error)
	GetReportByID(ctx context.Context, id int64) (*models.Report, error)
	ListReportsByStatus(ctx context.Context, status string, limit, offset int) ([]models.Report, error)
	UpdateReportStatus(ctx context.Context, id int64, status string) error
	CountOpenByProperty(ctx context.Context, propertyID int64) (int64, error)
}
