package mapper

import (
	"encoding/json"

	"babyname-be/internal/entity"
	"babyname-be/internal/model"

	"gorm.io/datatypes"
)

type FavoriteMapper struct{}

func NewFavoriteMapper() *FavoriteMapper {
	return &FavoriteMapper{}
}

func (m *FavoriteMapper) ToEntity(f *model.Favorite) *entity.Favorite {
	if f == nil {
		return nil
	}

	var sourceMeta map[string]interface{}
	if len(f.SourceMeta) > 0 {
		// Ignore unreadable metadata, the record itself is still valid.
		_ = json.Unmarshal(f.SourceMeta, &sourceMeta)
	}

	return &entity.Favorite{
		Id:                     f.Id,
		Name:                   f.Name,
		Gender:                 f.Gender,
		Theme:                  f.Theme,
		Owner:                  f.Owner,
		Meaning:                f.Meaning,
		Origin:                 f.Origin,
		CreatedAt:              f.CreatedAt,
		Description:            f.Description,
		InformativeDescription: f.InformativeDescription,
		PoeticDescription:      f.PoeticDescription,
		History:                f.History,
		UsedWiki:               f.UsedWiki,
		SourceMeta:             sourceMeta,
	}
}

func (m *FavoriteMapper) ToModel(f *entity.Favorite) *model.Favorite {
	if f == nil {
		return nil
	}

	var sourceMeta datatypes.JSON
	if f.SourceMeta != nil {
		if raw, err := json.Marshal(f.SourceMeta); err == nil {
			sourceMeta = raw
		}
	}

	return &model.Favorite{
		Id:                     f.Id,
		Name:                   f.Name,
		Gender:                 f.Gender,
		Theme:                  f.Theme,
		Owner:                  f.Owner,
		Meaning:                f.Meaning,
		Origin:                 f.Origin,
		CreatedAt:              f.CreatedAt,
		Description:            f.Description,
		InformativeDescription: f.InformativeDescription,
		PoeticDescription:      f.PoeticDescription,
		History:                f.History,
		UsedWiki:               f.UsedWiki,
		SourceMeta:             sourceMeta,
	}
}

func (m *FavoriteMapper) ToEntities(favorites []*model.Favorite) []*entity.Favorite {
	entities := make([]*entity.Favorite, len(favorites))
	for i, f := range favorites {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
