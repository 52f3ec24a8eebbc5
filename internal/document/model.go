package document

import (
	"time"
)

// Document is the persisted snapshot of one collaborative document.
// Data is an opaque editor payload, the server never interprets it.
type Document struct {
	ID        string `gorm:"primaryKey"`
	Data      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
