package entities

import (
	"strings"
	"time"
)

const (
	DefaultTimezone   = "America/Sao_Paulo"
	DefaultCurrency   = "BRL"
	DefaultDateFormat = "DD/MM/YYYY"
)

// Company is the tenant itself: its ID is the tenant id.
type Company struct {
	ID         string
	LegalName  string
	TradeName  string
	CNPJ       string
	Address    string
	Phone      string
	Email      string
	Website    string
	Logo       string
	Timezone   string
	Currency   string
	DateFormat string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

func (c *Company) ApplyDefaults() {
	if strings.TrimSpace(c.Timezone) == "" {
		c.Timezone = DefaultTimezone
	}
	if strings.TrimSpace(c.Currency) == "" {
		c.Currency = DefaultCurrency
	}
	if strings.TrimSpace(c.DateFormat) == "" {
		c.DateFormat = DefaultDateFormat
	}
}

// NormalizeCNPJ keeps digits only.
func NormalizeCNPJ(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
