package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"babyname-be/internal/dto"
	"babyname-be/internal/entity"
	"babyname-be/internal/service"
	"babyname-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFavoriteService struct {
	deleted []uuid.UUID
}

func (s *stubFavoriteService) List(ctx context.Context) ([]*entity.Favorite, bool, error) {
	return nil, false, nil
}

func (s *stubFavoriteService) BuildFavorite(req *dto.CreateFavoriteRequest) (*entity.Favorite, error) {
	return &entity.Favorite{Id: uuid.New(), Name: req.Name, Owner: entity.GuestOwner}, nil
}

func (s *stubFavoriteService) Create(ctx context.Context, sessionId string, favorite *entity.Favorite) error {
	return nil
}

func (s *stubFavoriteService) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Favorite, error) {
	return nil, nil
}

func (s *stubFavoriteService) UpdateDescription(ctx context.Context, id uuid.UUID, description string, usedWiki bool) (*entity.Favorite, error) {
	return &entity.Favorite{Id: id, Name: "Ava", Description: description}, nil
}

func (s *stubFavoriteService) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubFavoriteService) FindOne(ctx context.Context, id uuid.UUID) (*entity.Favorite, error) {
	return &entity.Favorite{Id: id, Name: "Ava"}, nil
}

func (s *stubFavoriteService) RequestEnrichment(ctx context.Context, sessionId string, id uuid.UUID) error {
	return nil
}

func (s *stubFavoriteService) UsingLocal() bool { return false }

type stubViewService struct{}

func (stubViewService) Snapshot(ctx context.Context, sessionId string) (*store.ViewState, bool, error) {
	return &store.ViewState{SessionId: sessionId}, false, nil
}

func (stubViewService) Refresh(ctx context.Context, sessionId string) (*store.ViewState, error) {
	return &store.ViewState{SessionId: sessionId}, nil
}

func (stubViewService) AddOptimistic(sessionId string, favorite *entity.Favorite) {}

func (stubViewService) ReconcileCreate(sessionId string, id uuid.UUID, confirmed *entity.Favorite, createErr error) {
}

func (stubViewService) RemoveOptimistic(sessionId string, id uuid.UUID) {}

func (stubViewService) ReconcileDelete(ctx context.Context, sessionId string, id uuid.UUID, deleteErr error) {
}

func (stubViewService) ApplyEnrichment(sessionId string, id uuid.UUID, text string, saved bool) bool {
	return true
}

type stubDescriptionService struct{}

func (stubDescriptionService) EnsureDescription(ctx context.Context, id uuid.UUID) (*service.DescriptionResult, error) {
	return &service.DescriptionResult{Text: "text", Status: service.StatusSaved}, nil
}

func newTestApp(favorites *stubFavoriteService) *fiber.App {
	app := fiber.New()
	ctrl := NewFavoriteController(favorites, stubDescriptionService{}, stubViewService{})
	ctrl.RegisterRoutes(app.Group("/api"))
	return app
}

func TestMalformedIdReturnsBadRequest(t *testing.T) {
	favorites := &stubFavoriteService{}
	app := newTestApp(favorites)

	requests := []struct {
		method string
		path   string
	}{
		{fiber.MethodDelete, "/api/favorite/v1/not-a-uuid"},
		{fiber.MethodGet, "/api/favorite/v1/not-a-uuid/description"},
		{fiber.MethodPost, "/api/favorite/v1/not-a-uuid/enrich"},
		{fiber.MethodPatch, "/api/favorite/v1/not-a-uuid/description"},
	}

	for _, tt := range requests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	// Nothing with a garbage id may reach the store.
	assert.Empty(t, favorites.deleted)
}

func TestDeleteWithValidIdReachesService(t *testing.T) {
	favorites := &stubFavoriteService{}
	app := newTestApp(favorites)
	id := uuid.New()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/favorite/v1/"+id.String(), nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, favorites.deleted, 1)
	assert.Equal(t, id, favorites.deleted[0])
}
