package model

import "time"

// Category groups products in the catalog.
type Category struct {
	CreatedAt   time.Time
	Name        string
	Slug        string
	Description string
	ID          int64
	IsActive    bool
}
