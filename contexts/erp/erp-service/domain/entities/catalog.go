package entities

import "time"

type ProjectStatus struct {
	ID        string
	TenantID  string
	Name      string
	Phase     string
	Color     string
	Order     *int
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type DocumentCategory struct {
	ID          string
	TenantID    string
	Name        string
	Description string
	Color       string
	Order       *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
