package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFavoriteRequest struct {
	Name                   string `json:"name" validate:"required"`
	Gender                 string `json:"gender" validate:"omitempty,oneof=boy girl neutral"`
	Theme                  string `json:"theme"`
	Meaning                string `json:"meaning"`
	Origin                 string `json:"origin"`
	Description            string `json:"description"`
	InformativeDescription string `json:"informativeDescription"`
	PoeticDescription      string `json:"poeticDescription"`
}

type UpdateDescriptionRequest struct {
	Id          uuid.UUID `json:"-"`
	Description string    `json:"description" validate:"required"`
}

type FavoriteResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender,omitempty"`
	Theme     string    `json:"theme,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Owner     string    `json:"user_email"`
	Meaning   string    `json:"meaning"`
	Origin    string    `json:"origin"`

	// Description is the resolved display text and is never empty; Saved is
	// false while enrichment text exists only in the current view.
	Description string `json:"description"`
	UsedWiki    bool   `json:"usedWiki"`
	Saved       bool   `json:"saved"`
}

type ListFavoritesResponse struct {
	Favorites    []*FavoriteResponse `json:"favorites"`
	UsingLocal   bool                `json:"usingLocalCache"`
	ViewRevision uint64              `json:"viewRevision"`
}

// EnrichFavoriteMessage is the async enrichment event payload published when a
// favorite without long-form text is created.
type EnrichFavoriteMessage struct {
	FavoriteId uuid.UUID `json:"favorite_id"`
	SessionId  string    `json:"session_id"`
}
