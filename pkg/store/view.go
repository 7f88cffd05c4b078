package store

import (
	"babyname-be/internal/entity"

	"github.com/google/uuid"
)

// EntryStatus tracks where a view entry stands relative to the backend.
type EntryStatus string

const (
	// EntryPending is an optimistic entry not yet confirmed by the store.
	EntryPending EntryStatus = "PENDING"
	// EntryConfirmed mirrors the authoritative stored record.
	EntryConfirmed EntryStatus = "CONFIRMED"
	// EntryFailed is a write the backend rejected; kept so the user's input
	// stays representable for a retry.
	EntryFailed EntryStatus = "FAILED"
)

type ViewEntry struct {
	Favorite *entity.Favorite `json:"favorite"`
	Status   EntryStatus      `json:"status"`
	Error    string           `json:"error,omitempty"`
}

// ViewState is one session's in-memory favorites list as the user sees it.
// Mutated only through the view service; Revision bumps on every change so
// clients can detect staleness.
type ViewState struct {
	SessionId string       `json:"session_id"`
	Entries   []*ViewEntry `json:"entries"`
	Revision  uint64       `json:"revision"`
}

func (v *ViewState) IndexOf(id uuid.UUID) int {
	for i, e := range v.Entries {
		if e.Favorite != nil && e.Favorite.Id == id {
			return i
		}
	}
	return -1
}

func (v *ViewState) Contains(id uuid.UUID) bool {
	return v.IndexOf(id) >= 0
}
