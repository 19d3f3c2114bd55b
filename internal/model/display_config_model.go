package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DisplayConfig struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"type:varchar(128);not null"`
	TargetWidth  int            `gorm:"not null"`
	TargetHeight int            `gorm:"not null"`
	OverviewPose datatypes.JSON `gorm:"type:jsonb;not null"`
	Active       bool           `gorm:"not null;default:false;index"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (DisplayConfig) TableName() string {
	return "display_configs"
}
