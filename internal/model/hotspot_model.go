package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Hotspot struct {
	Id           uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Slug         string            `gorm:"type:varchar(128);not null;uniqueIndex"`
	Shape        string            `gorm:"type:varchar(16);not null"`
	Bounds       datatypes.JSON    `gorm:"type:jsonb;not null"`
	Viewpoint    datatypes.JSON    `gorm:"type:jsonb"`
	Names        datatypes.JSONMap `gorm:"type:jsonb"`
	Descriptions datatypes.JSONMap `gorm:"type:jsonb"`
	Active       bool              `gorm:"not null;default:true;index"`
	SortOrder    int               `gorm:"not null;default:0"`
	CreatedAt    time.Time         `gorm:"autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime"`
}

func (Hotspot) TableName() string {
	return "hotspots"
}
