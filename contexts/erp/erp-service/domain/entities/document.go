package entities

import "time"

// Document is metadata only; the binary lives in external storage under
// StorageKey.
type Document struct {
	ID              string
	TenantID        string
	ProjectID       string
	ClientID        string
	CategoryID      string
	Title           string
	Description     string
	StorageKey      string
	ContentType     string
	SizeBytes       int64
	Checksum        string
	StorageProvider string
	Metadata        map[string]any
	Tags            []string
	CreatedByID     string
	UpdatedByID     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

func (d *Document) ApplyDefaults() {
	if d.Tags == nil {
		d.Tags = []string{}
	}
}
