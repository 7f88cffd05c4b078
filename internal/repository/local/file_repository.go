package local

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"babyname-be/internal/apperr"
	"babyname-be/internal/entity"
	"babyname-be/internal/repository/contract"

	"github.com/google/uuid"
)

// FileRepository is the session-local fallback cache: one serialized ordered
// collection, read entirely into memory on open and rewritten entirely on
// every mutation. It implements the same contract as the remote store so the
// fallback controller can swap it in transparently.
type FileRepository struct {
	filePath  string
	mu        sync.RWMutex
	favorites map[uuid.UUID]*entity.Favorite
}

var _ contract.FavoriteRepository = (*FileRepository)(nil)

func NewFileRepository(filePath string) (*FileRepository, error) {
	r := &FileRepository{
		filePath:  filePath,
		favorites: make(map[uuid.UUID]*entity.Favorite),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepository) load() error {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return apperr.StoreUnavailable("failed to open local favorites cache", err)
	}

	var stored []*entity.Favorite
	if err := json.Unmarshal(data, &stored); err != nil {
		return apperr.StoreUnavailable("local favorites cache is corrupted", err)
	}
	for _, favorite := range stored {
		r.favorites[favorite.Id] = favorite
	}
	return nil
}

func (r *FileRepository) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(r.filePath), 0o755); err != nil {
		return apperr.StoreUnavailable("failed to create local cache directory", err)
	}

	data, err := json.MarshalIndent(r.sortedLocked(), "", "  ")
	if err != nil {
		return apperr.StoreUnavailable("failed to encode local favorites cache", err)
	}
	if err := os.WriteFile(r.filePath, data, 0o644); err != nil {
		return apperr.StoreUnavailable("failed to write local favorites cache", err)
	}
	return nil
}

func (r *FileRepository) sortedLocked() []*entity.Favorite {
	out := make([]*entity.Favorite, 0, len(r.favorites))
	for _, favorite := range r.favorites {
		out = append(out, favorite)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *FileRepository) List(ctx context.Context) ([]*entity.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked(), nil
}

func (r *FileRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	if strings.TrimSpace(favorite.Name) == "" {
		return apperr.Validation("name is required")
	}
	if favorite.Id == uuid.Nil {
		favorite.Id = uuid.New()
	}
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now()
	}
	if favorite.Owner == "" {
		favorite.Owner = entity.GuestOwner
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *favorite
	r.favorites[favorite.Id] = &stored
	return r.persistLocked()
}

func (r *FileRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	favorite, ok := r.favorites[id]
	if !ok {
		return nil, nil
	}

	for key, value := range fields {
		switch key {
		case contract.FieldDescription:
			if s, ok := value.(string); ok {
				favorite.Description = s
			}
		case contract.FieldMeaning:
			if s, ok := value.(string); ok {
				favorite.Meaning = s
			}
		case contract.FieldOrigin:
			if s, ok := value.(string); ok {
				favorite.Origin = s
			}
		case contract.FieldUsedWiki:
			if b, ok := value.(bool); ok {
				favorite.UsedWiki = b
			}
		}
	}

	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	copied := *favorite
	return &copied, nil
}

func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.favorites[id]; !ok {
		return nil
	}
	delete(r.favorites, id)
	return r.persistLocked()
}

func (r *FileRepository) FindOne(ctx context.Context, id uuid.UUID) (*entity.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	favorite, ok := r.favorites[id]
	if !ok {
		return nil, nil
	}
	copied := *favorite
	return &copied, nil
}

// Merge unions already-known remote records into the cache by id, keeping
// whatever the cache already holds for an id. Called once when the fallback
// controller enters LOCAL so nothing already shown to the user disappears.
func (r *FileRepository) Merge(favorites []*entity.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, favorite := range favorites {
		if _, exists := r.favorites[favorite.Id]; exists {
			continue
		}
		stored := *favorite
		r.favorites[favorite.Id] = &stored
	}
	return r.persistLocked()
}
