package contract

import (
	"context"

	"babyname-be/internal/entity"

	"github.com/google/uuid"
)

// FavoriteRepository is implemented by both the remote (Postgres) store and
// the local fallback cache, so the fallback controller can swap them freely.
type FavoriteRepository interface {
	// List returns all favorites ordered by created_at, newest first.
	List(ctx context.Context) ([]*entity.Favorite, error)

	// Create inserts the favorite and fills in backend-assigned fields
	// (id, created_at) on the passed entity.
	Create(ctx context.Context, favorite *entity.Favorite) error

	// Update applies a partial merge of the given fields onto the record.
	// Unspecified fields are never overwritten. Returns the stored record, or
	// nil when the id is absent.
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Favorite, error)

	// Delete removes by id. Deleting an absent id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindOne returns the record or nil when absent.
	FindOne(ctx context.Context, id uuid.UUID) (*entity.Favorite, error)
}

// Updatable field keys accepted by Update implementations.
const (
	FieldDescription = "description"
	FieldMeaning     = "meaning"
	FieldOrigin      = "origin"
	FieldUsedWiki    = "used_wiki"
)
