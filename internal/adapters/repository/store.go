// Package repository loads the launch records table and holds it in memory.
package repository

import (
	"context"

	"github.com/okian/launchboard/internal/domain/model"
)

// Store provides read access to the launch records loaded at startup.
// Implementations are immutable once constructed and safe for concurrent reads.
type Store interface {
	// Launches returns every record in file order. Callers must not modify it.
	Launches() []model.Launch

	// Sites returns the distinct launch sites in first-appearance order.
	Sites() []string

	// Bounds returns the global payload mass bounds.
	Bounds() model.Bounds

	// HasSite reports whether site occurs in the table.
	HasSite(site string) bool

	// Count returns the number of records.
	Count(ctx context.Context) int
}
