package implementation

import (
	"context"
	"log"
	"os"
	"testing"

	"babyname-be/internal/entity"
	"babyname-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real Postgres when DB_CONNECTION_STRING is set, otherwise
// skips. Exercises the probe plus a full create/update/delete round trip.
func TestFavoriteRepositoryIntegration(t *testing.T) {
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")

	ctx := context.Background()

	caps, err := NewSchemaProber(gormDB).Probe(ctx)
	require.NoError(t, err, "Schema probe failed")
	t.Logf("Probed capabilities: %d optional columns usable", len(caps))

	repo := NewFavoriteRepository(gormDB, caps)

	favorite := &entity.Favorite{
		Name:    "Integration Test Name",
		Gender:  entity.GenderNeutral,
		Meaning: "Test meaning",
	}
	require.NoError(t, repo.Create(ctx, favorite))
	defer func() {
		assert.NoError(t, repo.Delete(ctx, favorite.Id))
	}()

	stored, err := repo.FindOne(ctx, favorite.Id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Integration Test Name", stored.Name)
	assert.Equal(t, entity.GuestOwner, stored.Owner)

	updated, err := repo.Update(ctx, favorite.Id, map[string]interface{}{
		"description": "Integration description.",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Integration description.", updated.Description)

	favorites, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, favorites)
}
