package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenderBoy     = "boy"
	GenderGirl    = "girl"
	GenderNeutral = "neutral"
)

// GuestOwner is the fixed identity used while no account system exists.
const GuestOwner = "guest@example.com"

// PlaceholderMeaning is substituted whenever no enrichment text is available.
// Rendered output never contains an empty description.
const (
	PlaceholderMeaning = "Information not available"
	PlaceholderOrigin  = "Unknown"
)

type Favorite struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Gender    string
	Theme     string
	Owner     string
	Meaning   string
	Origin    string
	CreatedAt time.Time

	// Description is the canonical enrichment field. The three legacy fields
	// below predate it and stay readable for old records.
	Description            string
	InformativeDescription string
	PoeticDescription      string
	History                string

	UsedWiki   bool
	SourceMeta map[string]interface{}
}

// DisplayDescription resolves the authoritative enrichment text for rendering:
// canonical description first, then the first non-empty legacy field, then the
// meaning/origin placeholder line.
func (f *Favorite) DisplayDescription() string {
	if f.Description != "" {
		return f.Description
	}
	for _, legacy := range []string{f.InformativeDescription, f.PoeticDescription, f.History} {
		if legacy != "" {
			return legacy
		}
	}
	meaning := f.Meaning
	if meaning == "" {
		meaning = PlaceholderMeaning
	}
	origin := f.Origin
	if origin == "" {
		origin = PlaceholderOrigin
	}
	return meaning + ". Origin: " + origin
}

// HasEnrichment reports whether any long-form text exists, so callers know an
// enrichment fetch is still worthwhile.
func (f *Favorite) HasEnrichment() bool {
	return f.Description != "" || f.InformativeDescription != "" || f.PoeticDescription != "" || f.History != ""
}
