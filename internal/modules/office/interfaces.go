package office

import (
	"context"
	"time"

	"officebook/internal/domain"
)

type officeRepo interface {
	Create(ctx context.Context, o *domain.Office) error
	GetByID(ctx context.Context, id int64) (*domain.Office, error)
	List(ctx context.Context) ([]domain.Office, error)
	ListByBranch(ctx context.Context, branchID int64) ([]domain.Office, error)
	SetDeletedAt(ctx context.Context, officeID int64, effective time.Time) error
	AddInactivity(ctx context.Context, in *domain.Inactivity) error
}

type branchRepo interface {
	Create(ctx context.Context, b *domain.OfficeBranch) error
	GetByID(ctx context.Context, id int64) (*domain.OfficeBranch, error)
}
