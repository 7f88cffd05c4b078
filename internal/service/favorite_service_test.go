package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"babyname-be/internal/apperr"
	"babyname-be/internal/dto"
	"babyname-be/internal/entity"
	"babyname-be/internal/repository/local"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFavoriteService(t *testing.T, remote *fakeRemoteRepo) (IFavoriteService, *local.FileRepository, *fakePublisher) {
	t.Helper()
	localRepo := newTestLocalRepo(t)
	fc := NewFallbackController(remote, localRepo, nopLogger{})
	pub := &fakePublisher{}
	return NewFavoriteService(fc, pub, nil, nopLogger{}), localRepo, pub
}

func TestBuildFavoriteAssignsGuestIdentity(t *testing.T) {
	svc, _, _ := newTestFavoriteService(t, newFakeRemoteRepo())

	favorite, err := svc.BuildFavorite(&dto.CreateFavoriteRequest{Name: "  Ava ", Gender: entity.GenderGirl})
	require.NoError(t, err)

	assert.Equal(t, "Ava", favorite.Name)
	assert.Equal(t, entity.GuestOwner, favorite.Owner)
	assert.NotEqual(t, uuid.Nil, favorite.Id)
	assert.False(t, favorite.CreatedAt.IsZero())
}

func TestBuildFavoriteRejectsBlankName(t *testing.T) {
	svc, _, _ := newTestFavoriteService(t, newFakeRemoteRepo())

	_, err := svc.BuildFavorite(&dto.CreateFavoriteRequest{Name: "   "})
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateOnHealthyRemoteStaysRemote(t *testing.T) {
	remote := newFakeRemoteRepo()
	svc, _, pub := newTestFavoriteService(t, remote)
	ctx := context.Background()

	favorite, err := svc.BuildFavorite(&dto.CreateFavoriteRequest{Name: "Rowan"})
	require.NoError(t, err)
	require.NoError(t, svc.Create(ctx, "guest", favorite))

	assert.False(t, svc.UsingLocal())
	stored, err := remote.FindOne(ctx, favorite.Id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Rowan", stored.Name)

	// No long-form text yet, so enrichment was queued.
	assert.Equal(t, 1, pub.count())
}

func TestCreateSkipsEnrichmentWhenDescriptionPresent(t *testing.T) {
	svc, _, pub := newTestFavoriteService(t, newFakeRemoteRepo())

	favorite, err := svc.BuildFavorite(&dto.CreateFavoriteRequest{Name: "Ava", Description: "A graceful classic."})
	require.NoError(t, err)
	require.NoError(t, svc.Create(context.Background(), "guest", favorite))

	assert.Equal(t, 0, pub.count())
}

func TestCreateSchemaMismatchFallsBackAndRetriesLocally(t *testing.T) {
	remote := newFakeRemoteRepo()
	remote.createErr = apperr.SchemaMismatch("favorites store rejected the write", errors.New(`null value in column "user_email" violates not-null constraint`))
	svc, localRepo, _ := newTestFavoriteService(t, remote)
	ctx := context.Background()

	favorite, err := svc.BuildFavorite(&dto.CreateFavoriteRequest{Name: "Ava"})
	require.NoError(t, err)

	// The caller sees a plain success; the retry against the local cache is
	// invisible.
	require.NoError(t, svc.Create(ctx, "guest", favorite))
	assert.True(t, svc.UsingLocal())

	stored, err := localRepo.FindOne(ctx, favorite.Id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Ava", stored.Name)
}

func TestFallbackSeedsLocalCacheWithLastKnownRemoteList(t *testing.T) {
	remote := newFakeRemoteRepo()
	seeded := &entity.Favorite{Id: uuid.New(), Name: "Rowan", CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, remote.Create(context.Background(), seeded))

	svc, localRepo, _ := newTestFavoriteService(t, remote)
	ctx := context.Background()

	// A successful remote listing is remembered.
	favorites, usingLocal, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.False(t, usingLocal)

	remote.createErr = apperr.SchemaMismatch("favorites store rejected the write", errors.New(`column "theme" of relation "favorites" does not exist`))
	favorite, err := svc.BuildFavorite(&dto.CreateFavoriteRequest{Name: "Ava", Theme: "nature"})
	require.NoError(t, err)
	require.NoError(t, svc.Create(ctx, "guest", favorite))

	// The local cache now holds the union of what the user had seen and the
	// newly saved favorite.
	localFavorites, err := localRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, localFavorites, 2)
	names := []string{localFavorites[0].Name, localFavorites[1].Name}
	assert.Contains(t, names, "Rowan")
	assert.Contains(t, names, "Ava")
}

func TestListDegradesToEmptyOnRemoteFailure(t *testing.T) {
	remote := newFakeRemoteRepo()
	remote.listErr = apperr.StoreUnavailable("connection refused", errors.New("dial tcp: connection refused"))
	svc, _, _ := newTestFavoriteService(t, remote)

	favorites, usingLocal, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, favorites)
	assert.False(t, usingLocal)
	// A read failure alone never engages the fallback.
	assert.False(t, svc.UsingLocal())
}

func TestUpdateDescriptionRejectsBlankText(t *testing.T) {
	svc, _, _ := newTestFavoriteService(t, newFakeRemoteRepo())

	_, err := svc.UpdateDescription(context.Background(), uuid.New(), "  ", false)
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateDescriptionOnAbsentIdReturnsNil(t *testing.T) {
	svc, _, _ := newTestFavoriteService(t, newFakeRemoteRepo())

	updated, err := svc.UpdateDescription(context.Background(), uuid.New(), "Some prose.", false)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDeleteIsIdempotent(t *testing.T) {
	remote := newFakeRemoteRepo()
	svc, _, _ := newTestFavoriteService(t, remote)
	ctx := context.Background()

	favorite, err := svc.BuildFavorite(&dto.CreateFavoriteRequest{Name: "Ava", Description: "x"})
	require.NoError(t, err)
	require.NoError(t, svc.Create(ctx, "guest", favorite))

	require.NoError(t, svc.Delete(ctx, favorite.Id))
	require.NoError(t, svc.Delete(ctx, favorite.Id))

	stored, err := svc.FindOne(ctx, favorite.Id)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestOperationsStayLocalAfterFallback(t *testing.T) {
	remote := newFakeRemoteRepo()
	remote.createErr = apperr.SchemaMismatch("favorites store rejected the write", errors.New("column does not exist"))
	svc, _, _ := newTestFavoriteService(t, remote)
	ctx := context.Background()

	first, err := svc.BuildFavorite(&dto.CreateFavoriteRequest{Name: "Ava"})
	require.NoError(t, err)
	require.NoError(t, svc.Create(ctx, "guest", first))
	require.True(t, svc.UsingLocal())

	// Even though the remote would accept writes again, the session is
	// latched: everything keeps going to the local cache.
	remote.createErr = nil
	second, err := svc.BuildFavorite(&dto.CreateFavoriteRequest{Name: "Rowan"})
	require.NoError(t, err)
	require.NoError(t, svc.Create(ctx, "guest", second))

	remoteStored, err := remote.FindOne(ctx, second.Id)
	require.NoError(t, err)
	assert.Nil(t, remoteStored)

	favorites, usingLocal, err := svc.List(ctx)
	require.NoError(t, err)
	assert.True(t, usingLocal)
	assert.Len(t, favorites, 2)
}
