package repository

import (
	"context"

	"github.com/mhagyesh07/ITCC-System/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User, passwordHash string) error
	// GetByEmail returns (nil, "", nil) when no account exists.
	GetByEmail(ctx context.Context, email string) (*models.User, string /*passwordHash*/, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type TicketRepository interface {
	Create(ctx context.Context, t *models.Ticket) error
	Get(ctx context.Context, id string) (*models.Ticket, error)
	List(ctx context.Context, f TicketFilter) ([]models.Ticket, error)
	Count(ctx context.Context, f TicketFilter) (int, error)
	SetAdminComment(ctx context.Context, id, comment string) (*models.Ticket, error)
	SetStatus(ctx context.Context, id string, status models.Status) (*models.Ticket, error)
}
