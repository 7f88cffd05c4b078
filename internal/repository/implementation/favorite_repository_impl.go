package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"babyname-be/internal/apperr"
	"babyname-be/internal/entity"
	"babyname-be/internal/mapper"
	"babyname-be/internal/model"
	"babyname-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FavoriteRepositoryImpl struct {
	db     *gorm.DB
	caps   contract.Capabilities
	mapper *mapper.FavoriteMapper
}

// NewFavoriteRepository builds the remote store. caps comes from a startup
// schema probe; optional attributes outside it are dropped from insert
// payloads rather than sent.
func NewFavoriteRepository(db *gorm.DB, caps contract.Capabilities) contract.FavoriteRepository {
	return &FavoriteRepositoryImpl{
		db:     db,
		caps:   caps,
		mapper: mapper.NewFavoriteMapper(),
	}
}

func (r *FavoriteRepositoryImpl) List(ctx context.Context) ([]*entity.Favorite, error) {
	var models []*model.Favorite
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperr.StoreUnavailable("failed to fetch favorites", err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FavoriteRepositoryImpl) Create(ctx context.Context, favorite *entity.Favorite) error {
	if strings.TrimSpace(favorite.Name) == "" {
		return apperr.Validation("name is required")
	}
	if favorite.Id == uuid.Nil {
		favorite.Id = uuid.New()
	}
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now()
	}
	if favorite.Owner == "" {
		favorite.Owner = entity.GuestOwner
	}

	payload := r.insertPayload(favorite)
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).Create(payload).Error
	if err != nil {
		return classifyWriteError(err, "failed to save favorite")
	}

	// Read back so backend-assigned values land on the entity.
	stored, err := r.FindOne(ctx, favorite.Id)
	if err != nil {
		return err
	}
	if stored != nil {
		*favorite = *stored
	}
	return nil
}

// insertPayload keeps the mandatory columns and filters every optional one
// through the probed capability set.
func (r *FavoriteRepositoryImpl) insertPayload(favorite *entity.Favorite) map[string]interface{} {
	payload := map[string]interface{}{
		"id":         favorite.Id,
		"name":       favorite.Name,
		"user_email": favorite.Owner,
		"created_at": favorite.CreatedAt,
	}

	optional := map[string]interface{}{
		"gender":                  favorite.Gender,
		"theme":                   favorite.Theme,
		"meaning":                 favorite.Meaning,
		"origin":                  favorite.Origin,
		"description":             favorite.Description,
		"informative_description": favorite.InformativeDescription,
		"poetic_description":      favorite.PoeticDescription,
		"history":                 favorite.History,
	}
	for column, value := range optional {
		if value == "" {
			continue
		}
		if r.caps.Has(column) {
			payload[column] = value
		}
	}

	if favorite.UsedWiki && r.caps.Has("used_wiki") {
		payload["used_wiki"] = true
	}
	if favorite.SourceMeta != nil && r.caps.Has("source_meta") {
		if raw, err := json.Marshal(favorite.SourceMeta); err == nil {
			payload["source_meta"] = raw
		}
	}
	return payload
}

func (r *FavoriteRepositoryImpl) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Favorite, error) {
	if len(fields) == 0 {
		return r.FindOne(ctx, id)
	}
	if name, ok := fields["name"]; ok {
		if s, _ := name.(string); strings.TrimSpace(s) == "" {
			return nil, apperr.Validation("name is required")
		}
	}

	tx := r.db.WithContext(ctx).Model(&model.Favorite{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, classifyWriteError(tx.Error, "failed to update favorite")
	}
	return r.FindOne(ctx, id)
}

func (r *FavoriteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&model.Favorite{}, id).Error
	if err != nil {
		return apperr.StoreUnavailable("failed to delete favorite", err)
	}
	return nil
}

func (r *FavoriteRepositoryImpl) FindOne(ctx context.Context, id uuid.UUID) (*entity.Favorite, error) {
	var m model.Favorite
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.StoreUnavailable("failed to fetch favorite", err)
	}
	return r.mapper.ToEntity(&m), nil
}
