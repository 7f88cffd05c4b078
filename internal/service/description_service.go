package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"babyname-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// ErrFavoriteNotFound is returned when enrichment is requested for an id that
// no longer exists. Enrichment never recreates a deleted favorite.
var ErrFavoriteNotFound = errors.New("favorite not found")

type DescriptionStatus string

const (
	// StatusSaved means the text was generated (or already present) and is
	// persisted on the favorite.
	StatusSaved DescriptionStatus = "saved"
	// StatusUnsaved means the text was generated but persisting it failed;
	// the caller still gets the text for display.
	StatusUnsaved DescriptionStatus = "generated but not saved"
	StatusFailed  DescriptionStatus = "failed"
)

type DescriptionResult struct {
	Text     string
	UsedWiki bool
	Status   DescriptionStatus
}

type IDescriptionService interface {
	// EnsureDescription produces the long-form description for a favorite,
	// generating it if absent. Concurrent requests for the same id share one
	// generation.
	EnsureDescription(ctx context.Context, id uuid.UUID) (*DescriptionResult, error)
}

type descriptionService struct {
	favoriteService  IFavoriteService
	generatorService IGeneratorService
	redisClient      *redis.Client // nil disables the name-keyed memo
	logger           logger.ILogger
	flights          singleflight.Group
}

// descriptionMemo is the redis payload keyed by lowercased name, so the same
// name favorited twice reuses one generation across sessions.
type descriptionMemo struct {
	Text     string `json:"text"`
	UsedWiki bool   `json:"used_wiki"`
}

const descriptionMemoTTL = 24 * time.Hour

func NewDescriptionService(
	favoriteService IFavoriteService,
	generatorService IGeneratorService,
	redisClient *redis.Client,
	log logger.ILogger,
) IDescriptionService {
	return &descriptionService{
		favoriteService:  favoriteService,
		generatorService: generatorService,
		redisClient:      redisClient,
		logger:           log,
	}
}

func (s *descriptionService) EnsureDescription(ctx context.Context, id uuid.UUID) (*DescriptionResult, error) {
	v, err, _ := s.flights.Do(id.String(), func() (interface{}, error) {
		return s.ensure(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*DescriptionResult), nil
}

func (s *descriptionService) ensure(ctx context.Context, id uuid.UUID) (*DescriptionResult, error) {
	favorite, err := s.favoriteService.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if favorite == nil {
		return nil, ErrFavoriteNotFound
	}
	if favorite.HasEnrichment() {
		return &DescriptionResult{
			Text:     favorite.DisplayDescription(),
			UsedWiki: favorite.UsedWiki,
			Status:   StatusSaved,
		}, nil
	}

	text, usedWiki, fromMemo := s.memoGet(ctx, favorite.Name)
	if !fromMemo {
		text, usedWiki, err = s.generatorService.GenerateDescription(ctx, favorite.Name)
		if err != nil {
			return &DescriptionResult{Status: StatusFailed}, err
		}
		s.memoSet(ctx, favorite.Name, text, usedWiki)
	}

	updated, err := s.favoriteService.UpdateDescription(ctx, id, text, usedWiki)
	if err != nil {
		// The text is still worth showing; only the save failed.
		s.logger.Warn("DescriptionService", "Generated description could not be persisted", map[string]interface{}{
			"favorite_id": id,
			"error":       err.Error(),
		})
		return &DescriptionResult{Text: text, UsedWiki: usedWiki, Status: StatusUnsaved}, nil
	}
	if updated == nil {
		// Deleted while generating; do not resurrect it.
		return &DescriptionResult{Text: text, UsedWiki: usedWiki, Status: StatusUnsaved}, nil
	}
	return &DescriptionResult{Text: text, UsedWiki: usedWiki, Status: StatusSaved}, nil
}

func (s *descriptionService) memoKey(name string) string {
	return "babyname:description:" + strings.ToLower(strings.TrimSpace(name))
}

func (s *descriptionService) memoGet(ctx context.Context, name string) (string, bool, bool) {
	if s.redisClient == nil {
		return "", false, false
	}
	raw, err := s.redisClient.Get(ctx, s.memoKey(name)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("DescriptionService", "Description memo read failed", map[string]interface{}{
				"name":  name,
				"error": err.Error(),
			})
		}
		return "", false, false
	}
	var memo descriptionMemo
	if err := json.Unmarshal([]byte(raw), &memo); err != nil || memo.Text == "" {
		return "", false, false
	}
	return memo.Text, memo.UsedWiki, true
}

func (s *descriptionService) memoSet(ctx context.Context, name, text string, usedWiki bool) {
	if s.redisClient == nil {
		return
	}
	raw, _ := json.Marshal(descriptionMemo{Text: text, UsedWiki: usedWiki})
	if err := s.redisClient.Set(ctx, s.memoKey(name), raw, descriptionMemoTTL).Err(); err != nil {
		s.logger.Warn("DescriptionService", "Description memo write failed", map[string]interface{}{
			"name":  name,
			"error": err.Error(),
		})
	}
}
