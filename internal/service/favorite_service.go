package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"babyname-be/internal/apperr"
	"babyname-be/internal/dto"
	"babyname-be/internal/entity"
	"babyname-be/internal/pkg/logger"
	"babyname-be/internal/repository/contract"
	"babyname-be/pkg/events"
	pkgNats "babyname-be/pkg/nats"

	"github.com/google/uuid"
)

type IFavoriteService interface {
	// List returns favorites newest first plus whether the local cache is
	// active. A failing read degrades to an empty list, never an error:
	// favorites are a non-critical enhancement.
	List(ctx context.Context) ([]*entity.Favorite, bool, error)

	// BuildFavorite validates the request and constructs the entity with its
	// final id, so callers can show it optimistically before Create settles.
	BuildFavorite(req *dto.CreateFavoriteRequest) (*entity.Favorite, error)

	// Create persists a favorite built by BuildFavorite. A schema mismatch on
	// the remote store engages the local fallback and retries there
	// transparently.
	Create(ctx context.Context, sessionId string, favorite *entity.Favorite) error

	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Favorite, error)
	UpdateDescription(ctx context.Context, id uuid.UUID, description string, usedWiki bool) (*entity.Favorite, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, id uuid.UUID) (*entity.Favorite, error)

	// RequestEnrichment queues the async description fetch for a favorite.
	RequestEnrichment(ctx context.Context, sessionId string, id uuid.UUID) error

	UsingLocal() bool
}

type favoriteService struct {
	fallback         *FallbackController
	publisherService IPublisherService
	natsPub          *pkgNats.Publisher // nil when the bus is unreachable
	logger           logger.ILogger

	// lastKnown is the most recent successful remote listing; it seeds the
	// local cache when the fallback latch fires.
	mu        sync.Mutex
	lastKnown []*entity.Favorite
}

func NewFavoriteService(
	fallback *FallbackController,
	publisherService IPublisherService,
	natsPub *pkgNats.Publisher,
	log logger.ILogger,
) IFavoriteService {
	return &favoriteService{
		fallback:         fallback,
		publisherService: publisherService,
		natsPub:          natsPub,
		logger:           log,
	}
}

func (s *favoriteService) UsingLocal() bool {
	return s.fallback.UsingLocal()
}

func (s *favoriteService) List(ctx context.Context) ([]*entity.Favorite, bool, error) {
	usingLocal := s.fallback.UsingLocal()
	favorites, err := s.fallback.Repository().List(ctx)
	if err != nil {
		s.logger.Warn("FavoriteService", "Listing favorites failed, degrading to empty list", map[string]interface{}{
			"error": err.Error(),
			"local": usingLocal,
		})
		return []*entity.Favorite{}, usingLocal, nil
	}

	if !usingLocal {
		s.mu.Lock()
		s.lastKnown = favorites
		s.mu.Unlock()
	}
	return favorites, usingLocal, nil
}

func (s *favoriteService) knownFavorites() []*entity.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastKnown
}

func (s *favoriteService) BuildFavorite(req *dto.CreateFavoriteRequest) (*entity.Favorite, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("name is required")
	}

	return &entity.Favorite{
		Id:                     uuid.New(),
		Name:                   strings.TrimSpace(req.Name),
		Gender:                 req.Gender,
		Theme:                  req.Theme,
		Owner:                  entity.GuestOwner,
		Meaning:                req.Meaning,
		Origin:                 req.Origin,
		Description:            req.Description,
		InformativeDescription: req.InformativeDescription,
		PoeticDescription:      req.PoeticDescription,
		CreatedAt:              time.Now(),
		SourceMeta: map[string]interface{}{
			"theme":  req.Theme,
			"gender": req.Gender,
		},
	}, nil
}

func (s *favoriteService) Create(ctx context.Context, sessionId string, favorite *entity.Favorite) error {
	err := s.fallback.Repository().Create(ctx, favorite)
	if apperr.IsSchemaMismatch(err) && !s.fallback.UsingLocal() {
		// The remote schema rejected the write; latch to the local cache and
		// retry the same operation there, transparently for the caller.
		s.fallback.Engage(err.Error(), s.knownFavorites())
		s.publishEvent(ctx, events.NewFallbackEngaged(apperr.KindSchemaMismatch.String()))
		err = s.fallback.Repository().Create(ctx, favorite)
	}
	if err != nil {
		return err
	}

	s.publishEvent(ctx, events.NewFavoriteCreated(favorite.Id, favorite.Name))
	if !favorite.HasEnrichment() {
		if err := s.RequestEnrichment(ctx, sessionId, favorite.Id); err != nil {
			// A queue failure only delays enrichment, it never fails the save.
			s.logger.Warn("FavoriteService", "Failed to queue enrichment", map[string]interface{}{
				"favorite_id": favorite.Id,
				"error":       err.Error(),
			})
		}
	}
	return nil
}

func (s *favoriteService) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Favorite, error) {
	updated, err := s.fallback.Repository().Update(ctx, id, fields)
	if apperr.IsSchemaMismatch(err) && !s.fallback.UsingLocal() {
		s.fallback.Engage(err.Error(), s.knownFavorites())
		s.publishEvent(ctx, events.NewFallbackEngaged(apperr.KindSchemaMismatch.String()))
		updated, err = s.fallback.Repository().Update(ctx, id, fields)
	}
	return updated, err
}

func (s *favoriteService) UpdateDescription(ctx context.Context, id uuid.UUID, description string, usedWiki bool) (*entity.Favorite, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Validation("description is required")
	}
	fields := map[string]interface{}{
		contract.FieldDescription: description,
	}
	if usedWiki {
		fields[contract.FieldUsedWiki] = true
	}
	return s.UpdateFields(ctx, id, fields)
}

func (s *favoriteService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.fallback.Repository().Delete(ctx, id); err != nil {
		return err
	}
	s.publishEvent(ctx, events.NewFavoriteDeleted(id))
	return nil
}

func (s *favoriteService) FindOne(ctx context.Context, id uuid.UUID) (*entity.Favorite, error) {
	return s.fallback.Repository().FindOne(ctx, id)
}

func (s *favoriteService) RequestEnrichment(ctx context.Context, sessionId string, id uuid.UUID) error {
	msg := dto.EnrichFavoriteMessage{FavoriteId: id, SessionId: sessionId}
	msgJson, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, msgJson)
}

func (s *favoriteService) publishEvent(ctx context.Context, event events.Event) {
	if s.natsPub == nil {
		return
	}
	if err := s.natsPub.Publish(ctx, event); err != nil {
		s.logger.Warn("FavoriteService", "Failed to publish lifecycle event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}
