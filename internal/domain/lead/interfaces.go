package lead

import (
	"context"

	"github.com/apexautolab/leadapi/internal/repository"
)

// Repository provides lead persistence.
type Repository interface {
	Create(ctx context.Context, l *Lead) error
	Get(ctx context.Context, id int64) (*Lead, error)
	List(ctx context.Context, opts repository.ListLeadsOptions) ([]LeadRef, error)
	UpdateStatus(ctx context.Context, id int64, status string, note *string) (*Lead, error)
}

// Notifier forwards a best-effort notification about a captured lead.
// Implementations may be no-ops; errors are logged by the caller and never
// affect the originating request.
type Notifier interface {
	LeadCreated(ctx context.Context, l *Lead) error
}
