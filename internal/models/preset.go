// ABOUTME: Preset model: a named, saved date range
// ABOUTME: Stores the range in its serialized record form with timestamps

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/harper/daterange/internal/daterange"
)

// Preset is a user-named date range such as "Fiscal Q" or "Sprint".
type Preset struct {
	ID          string           // Unique identifier
	Name        string           // Unique display name
	Description *string          // Optional free-form note
	Range       daterange.Record // Serialized range
	CreatedAt   time.Time        // Creation timestamp
	UpdatedAt   time.Time        // Last modification timestamp
}

// NewPreset creates a preset with a generated ID and timestamps.
func NewPreset(name string, r daterange.Range) *Preset {
	now := time.Now()
	return &Preset{
		ID:        uuid.New().String(),
		Name:      name,
		Range:     r.Record(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DateRange decodes the stored range.
func (p *Preset) DateRange() (daterange.Range, error) {
	return daterange.FromRecord(p.Range)
}

// SetRange replaces the stored range and bumps UpdatedAt.
func (p *Preset) SetRange(r daterange.Range) {
	p.Range = r.Record()
	p.UpdatedAt = time.Now()
}

// SetDescription sets or clears the description.
func (p *Preset) SetDescription(desc string) {
	if desc == "" {
		p.Description = nil
		return
	}
	p.Description = &desc
}
