package service

import (
	"context"
	"sync"

	"babyname-be/internal/apperr"
	"babyname-be/internal/entity"
	"babyname-be/internal/pkg/logger"
	"babyname-be/internal/repository/memory"
	"babyname-be/pkg/store"

	"github.com/google/uuid"
)

// IViewService owns the per-session optimistic favorites view. Entries appear
// instantly as PENDING, get confirmed or failed as the store answers, and are
// never resurrected by work that finished after their removal.
type IViewService interface {
	Snapshot(ctx context.Context, sessionId string) (*store.ViewState, bool, error)
	Refresh(ctx context.Context, sessionId string) (*store.ViewState, error)
	AddOptimistic(sessionId string, favorite *entity.Favorite)
	ReconcileCreate(sessionId string, id uuid.UUID, confirmed *entity.Favorite, createErr error)
	RemoveOptimistic(sessionId string, id uuid.UUID)
	ReconcileDelete(ctx context.Context, sessionId string, id uuid.UUID, deleteErr error)
	// ApplyEnrichment patches enrichment text onto a view entry. Returns false
	// when the entry is gone, which the caller must treat as a discard.
	ApplyEnrichment(sessionId string, id uuid.UUID, text string, saved bool) bool
}

type viewService struct {
	views           *memory.ViewRepository
	favoriteService IFavoriteService
	logger          logger.ILogger

	// One lock for all sessions; view mutations are tiny and the app serves a
	// single guest session in practice.
	mu sync.Mutex
}

func NewViewService(views *memory.ViewRepository, favoriteService IFavoriteService, log logger.ILogger) IViewService {
	return &viewService{
		views:           views,
		favoriteService: favoriteService,
		logger:          log,
	}
}

func (s *viewService) Snapshot(ctx context.Context, sessionId string) (*store.ViewState, bool, error) {
	s.mu.Lock()
	view, found := s.views.Get(sessionId)
	s.mu.Unlock()
	if found {
		return view, s.favoriteService.UsingLocal(), nil
	}
	view, err := s.Refresh(ctx, sessionId)
	return view, s.favoriteService.UsingLocal(), err
}

// Refresh rebuilds the view from the authoritative list. Optimistic entries
// that are still pending or failed survive the rebuild; confirmed entries are
// replaced wholesale.
func (s *viewService) Refresh(ctx context.Context, sessionId string) (*store.ViewState, error) {
	favorites, _, err := s.favoriteService.List(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	view, found := s.views.Get(sessionId)
	if !found {
		view = &store.ViewState{SessionId: sessionId}
	}

	stored := make(map[uuid.UUID]struct{}, len(favorites))
	confirmed := make([]*store.ViewEntry, 0, len(favorites))
	for _, f := range favorites {
		stored[f.Id] = struct{}{}
		confirmed = append(confirmed, &store.ViewEntry{Favorite: f, Status: store.EntryConfirmed})
	}
	// Unsettled entries stay on top, where AddOptimistic put them.
	entries := make([]*store.ViewEntry, 0, len(view.Entries)+len(favorites))
	for _, e := range view.Entries {
		if e.Status == store.EntryConfirmed {
			continue
		}
		if _, ok := stored[e.Favorite.Id]; !ok {
			entries = append(entries, e)
		}
	}
	entries = append(entries, confirmed...)

	view.Entries = entries
	view.Revision++
	s.views.Save(view)
	return view, nil
}

func (s *viewService) AddOptimistic(sessionId string, favorite *entity.Favorite) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, found := s.views.Get(sessionId)
	if !found {
		view = &store.ViewState{SessionId: sessionId}
	}
	entry := &store.ViewEntry{Favorite: favorite, Status: store.EntryPending}
	view.Entries = append([]*store.ViewEntry{entry}, view.Entries...)
	view.Revision++
	s.views.Save(view)
}

// ReconcileCreate settles a pending entry once the store answered. Rejected
// input is dropped from the view; a store outage keeps the entry as FAILED so
// the user's input stays on screen for a retry.
func (s *viewService) ReconcileCreate(sessionId string, id uuid.UUID, confirmed *entity.Favorite, createErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, found := s.views.Get(sessionId)
	if !found {
		return
	}
	idx := view.IndexOf(id)
	if idx < 0 {
		return
	}

	switch {
	case createErr == nil:
		view.Entries[idx] = &store.ViewEntry{Favorite: confirmed, Status: store.EntryConfirmed}
	case apperr.IsValidation(createErr):
		view.Entries = append(view.Entries[:idx], view.Entries[idx+1:]...)
	default:
		view.Entries[idx].Status = store.EntryFailed
		view.Entries[idx].Error = createErr.Error()
	}
	view.Revision++
	s.views.Save(view)
}

func (s *viewService) RemoveOptimistic(sessionId string, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, found := s.views.Get(sessionId)
	if !found {
		return
	}
	idx := view.IndexOf(id)
	if idx < 0 {
		return
	}
	view.Entries = append(view.Entries[:idx], view.Entries[idx+1:]...)
	view.Revision++
	s.views.Save(view)
}

// ReconcileDelete restores the truth after a delete attempt. When the backend
// refused the delete the optimistic removal was wrong, so the whole view is
// refetched instead of guessing at the old entry.
func (s *viewService) ReconcileDelete(ctx context.Context, sessionId string, id uuid.UUID, deleteErr error) {
	if deleteErr == nil {
		return
	}
	s.logger.Warn("ViewService", "Delete failed, refetching view from store", map[string]interface{}{
		"session_id":  sessionId,
		"favorite_id": id,
		"error":       deleteErr.Error(),
	})
	if _, err := s.Refresh(ctx, sessionId); err != nil {
		s.logger.Warn("ViewService", "View refetch after failed delete also failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func (s *viewService) ApplyEnrichment(sessionId string, id uuid.UUID, text string, saved bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, found := s.views.Get(sessionId)
	if !found {
		return false
	}
	idx := view.IndexOf(id)
	if idx < 0 {
		// Removed while enrichment was in flight; drop the result.
		return false
	}

	entry := view.Entries[idx]
	patched := *entry.Favorite
	patched.Description = text
	entry.Favorite = &patched
	if !saved && entry.Status == store.EntryConfirmed {
		// Text is display-only until a later save succeeds.
		entry.Error = "description not persisted"
	}
	view.Revision++
	s.views.Save(view)
	return true
}
