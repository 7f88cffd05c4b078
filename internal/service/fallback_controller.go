package service

import (
	"sync"

	"babyname-be/internal/entity"
	"babyname-be/internal/pkg/logger"
	"babyname-be/internal/repository/contract"
	"babyname-be/internal/repository/local"
)

// BackendState is the fallback controller's state machine. REMOTE is initial;
// LOCAL is terminal for the session.
type BackendState int32

const (
	StateRemote BackendState = iota
	StateLocal
)

func (s BackendState) String() string {
	if s == StateLocal {
		return "LOCAL"
	}
	return "REMOTE"
}

// FallbackController owns the single REMOTE -> LOCAL transition. It fires
// exactly once, on the first SchemaMismatch, and there is no way back within
// a session: even a remote call that would now succeed must not run, so the
// data never splits across the two backends.
type FallbackController struct {
	mu     sync.Mutex
	state  BackendState
	remote contract.FavoriteRepository
	local  *local.FileRepository
	logger logger.ILogger
}

func NewFallbackController(remote contract.FavoriteRepository, localCache *local.FileRepository, log logger.ILogger) *FallbackController {
	return &FallbackController{
		state:  StateRemote,
		remote: remote,
		local:  localCache,
		logger: log,
	}
}

// Repository returns the backend all operations must currently target.
func (c *FallbackController) Repository() contract.FavoriteRepository {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateLocal {
		return c.local
	}
	return c.remote
}

func (c *FallbackController) State() BackendState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *FallbackController) UsingLocal() bool {
	return c.State() == StateLocal
}

// Engage transitions to LOCAL. known carries favorites already fetched from
// the remote store; they are union-merged into the local cache so nothing
// already shown to the user disappears. Subsequent calls are no-ops.
func (c *FallbackController) Engage(reason string, known []*entity.Favorite) {
	c.mu.Lock()
	if c.state == StateLocal {
		c.mu.Unlock()
		return
	}
	c.state = StateLocal
	c.mu.Unlock()

	if len(known) > 0 {
		if err := c.local.Merge(known); err != nil {
			c.logger.Error("FallbackController", "Failed to merge known favorites into local cache", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	c.logger.Warn("FallbackController", "Switched favorites persistence to local cache", map[string]interface{}{
		"reason": reason,
		"merged": len(known),
	})
}
