package entities

import "time"

type Priority string

const (
	PriorityLow    Priority = "BAIXA"
	PriorityMedium Priority = "MEDIA"
	PriorityHigh   Priority = "ALTA"
	PriorityUrgent Priority = "URGENTE"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

type Project struct {
	ID             string
	TenantID       string
	ClientID       string
	Subject        string
	Description    string
	StatusID       string
	EntryDate      time.Time
	StartDate      *time.Time
	EndDate        *time.Time
	Expectation    string
	Objective      string
	Notes          string
	EstimatedValue *float64
	Priority       Priority
	Tags           []string
	ManagerID      string
	SalespersonID  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

func (p *Project) ApplyDefaults() {
	if p.Priority == "" {
		p.Priority = PriorityMedium
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}
