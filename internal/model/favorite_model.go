package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Favorite struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:text;not null"`
	Gender    string    `gorm:"type:text"`
	Theme     string    `gorm:"type:text"`
	Owner     string    `gorm:"type:text;column:user_email"`
	Meaning   string    `gorm:"type:text"`
	Origin    string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_favorites_created_at,sort:desc"`

	Description            string `gorm:"type:text"`
	InformativeDescription string `gorm:"type:text;column:informative_description"`
	PoeticDescription      string `gorm:"type:text;column:poetic_description"`
	History                string `gorm:"type:text"`

	UsedWiki   bool           `gorm:"column:used_wiki"`
	SourceMeta datatypes.JSON `gorm:"column:source_meta"`
}

func (Favorite) TableName() string {
	return "favorites"
}
