package memory

import (
	"time"

	"babyname-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// ViewRepository keeps per-session optimistic view state in memory. Sessions
// expire after an hour of inactivity.
type ViewRepository struct {
	cache *cache.Cache
}

func NewViewRepository() *ViewRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ViewRepository{cache: c}
}

func (r *ViewRepository) Save(view *store.ViewState) {
	r.cache.Set(view.SessionId, view, cache.DefaultExpiration)
}

func (r *ViewRepository) Get(sessionId string) (*store.ViewState, bool) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*store.ViewState), true
	}
	return nil, false
}

func (r *ViewRepository) Delete(sessionId string) {
	r.cache.Delete(sessionId)
}
