package contract

import "context"

// Capabilities is the set of optional favorites columns the live remote
// schema currently supports. Write-payload builders drop attributes outside
// this set instead of sending writes the backend would reject.
type Capabilities map[string]struct{}

func (c Capabilities) Has(column string) bool {
	_, ok := c[column]
	return ok
}

// OptionalColumns lists every attribute that may or may not exist remotely.
// id, name, user_email and created_at are mandatory and always written.
var OptionalColumns = []string{
	"gender",
	"theme",
	"meaning",
	"origin",
	"description",
	"informative_description",
	"poetic_description",
	"history",
	"used_wiki",
	"source_meta",
}

// SchemaProber inspects the live shape of the remote favorites collection.
// Read-only; an empty table yields an empty set and callers must assume only
// mandatory attributes are safe to write.
type SchemaProber interface {
	Probe(ctx context.Context) (Capabilities, error)
}
