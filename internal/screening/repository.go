package screening

import "context"

// Repository defines the storage interface for screenings.
type Repository interface {
	// List returns every stored screening ordered by date and start time.
	List(ctx context.Context) ([]*Screening, error)

	// Get retrieves a screening by id. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Screening, error)

	// Create stores a screening that has no id yet and assigns one.
	Create(ctx context.Context, s *Screening) error

	// Update applies a partial update in place. Returns ErrNotFound when absent.
	Update(ctx context.Context, id string, p Patch) error

	// Delete removes a screening. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the repository.
	Close() error
}
