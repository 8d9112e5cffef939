package docsystem

import (
	"time"
)

type Folder struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"project_id" db:"project_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed fields, not stored in DB. Size is always recomputed from
	// the full file list after a mutation rather than kept as a counter,
	// so drift cannot accumulate.
	Files          []File `json:"files"`
	Size           int64  `json:"size"`
	RemainingSpace int64  `json:"remaining_space"`
}
