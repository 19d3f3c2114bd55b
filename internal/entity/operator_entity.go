package entity

import (
	"time"

	"github.com/google/uuid"
)

// Operator is a museum staff account for admin mode.
type Operator struct {
	Id        uuid.UUID
	Name      string
	PinHash   string
	CreatedAt time.Time
}
