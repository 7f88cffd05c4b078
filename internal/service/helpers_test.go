package service

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"babyname-be/internal/entity"
	"babyname-be/internal/repository/local"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fakeRemoteRepo stands in for the Postgres-backed store. Error fields, when
// set, are returned for every call of that operation.
type fakeRemoteRepo struct {
	mu        sync.Mutex
	favorites map[uuid.UUID]*entity.Favorite

	createErr error
	listErr   error
	updateErr error
	deleteErr error
}

func newFakeRemoteRepo() *fakeRemoteRepo {
	return &fakeRemoteRepo{favorites: make(map[uuid.UUID]*entity.Favorite)}
}

func (r *fakeRemoteRepo) List(ctx context.Context) ([]*entity.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*entity.Favorite, 0, len(r.favorites))
	for _, f := range r.favorites {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRemoteRepo) Create(ctx context.Context, favorite *entity.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	stored := *favorite
	r.favorites[favorite.Id] = &stored
	return nil
}

func (r *fakeRemoteRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	f, ok := r.favorites[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["description"].(string); ok {
		f.Description = v
	}
	if v, ok := fields["meaning"].(string); ok {
		f.Meaning = v
	}
	if v, ok := fields["origin"].(string); ok {
		f.Origin = v
	}
	if v, ok := fields["used_wiki"].(bool); ok {
		f.UsedWiki = v
	}
	copied := *f
	return &copied, nil
}

func (r *fakeRemoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.favorites, id)
	return nil
}

func (r *fakeRemoteRepo) FindOne(ctx context.Context, id uuid.UUID) (*entity.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.favorites[id]
	if !ok {
		return nil, nil
	}
	copied := *f
	return &copied, nil
}

// fakePublisher records enrichment payloads instead of pushing them onto the
// event bus.
type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

func newTestLocalRepo(t *testing.T) *local.FileRepository {
	t.Helper()
	repo, err := local.NewFileRepository(filepath.Join(t.TempDir(), "favorites.json"))
	require.NoError(t, err)
	return repo
}
