package entities

import "time"

type BudgetStatus string

const (
	BudgetStatusDraft    BudgetStatus = "RASCUNHO"
	BudgetStatusSent     BudgetStatus = "ENVIADO"
	BudgetStatusApproved BudgetStatus = "APROVADO"
	BudgetStatusRejected BudgetStatus = "REJEITADO"
	BudgetStatusExpired  BudgetStatus = "EXPIRADO"
)

// BudgetStatuses is the board column order.
var BudgetStatuses = []BudgetStatus{
	BudgetStatusDraft,
	BudgetStatusSent,
	BudgetStatusApproved,
	BudgetStatusRejected,
	BudgetStatusExpired,
}

func (s BudgetStatus) Valid() bool {
	for _, candidate := range BudgetStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

type Budget struct {
	ID          string
	TenantID    string
	ProjectID   string
	Number      string
	Title       string
	Description string
	Status      BudgetStatus
	ValidUntil  time.Time
	Currency    string
	TotalValue  float64
	Discount    *float64
	FinalValue  float64
	Notes       string
	SupplierID  string
	CreatedByID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

func (b *Budget) ApplyDefaults() {
	if b.Status == "" {
		b.Status = BudgetStatusDraft
	}
	if b.Currency == "" {
		b.Currency = DefaultCurrency
	}
}

// ComputeFinalValue is total minus discount, floored at zero.
func (b *Budget) ComputeFinalValue() {
	final := b.TotalValue
	if b.Discount != nil {
		final -= *b.Discount
	}
	if final < 0 {
		final = 0
	}
	b.FinalValue = final
}
