package entities

import "time"

type Client struct {
	ID             string
	TenantID       string
	LegalName      string
	TradeName      string
	CNPJ           string
	NormalizedCNPJ string
	Segment        string
	Street         string
	Number         string
	Complement     string
	District       string
	City           string
	State          string
	PostalCode     string
	Phone          string
	Email          string
	Website        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}
