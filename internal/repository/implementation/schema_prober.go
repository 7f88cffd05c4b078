package implementation

import (
	"context"
	"errors"

	"babyname-be/internal/apperr"
	"babyname-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SchemaProberImpl struct {
	db *gorm.DB
}

func NewSchemaProber(db *gorm.DB) contract.SchemaProber {
	return &SchemaProberImpl{db: db}
}

// Probe samples one arbitrary row and reports which optional columns the live
// schema carries. The capability set is built once at startup and handed to
// the write-payload builder, not re-inferred per write.
func (p *SchemaProberImpl) Probe(ctx context.Context) (contract.Capabilities, error) {
	var sample map[string]interface{}
	err := p.db.WithContext(ctx).Table("favorites").Limit(1).Take(&sample).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Empty table: nothing to learn, only mandatory columns are safe.
			return contract.Capabilities{}, nil
		}
		return nil, apperr.StoreUnavailable("failed to inspect favorites schema", err)
	}

	caps := contract.Capabilities{}
	for _, column := range contract.OptionalColumns {
		if _, ok := sample[column]; ok {
			caps[column] = struct{}{}
		}
	}
	return caps, nil
}
