package commands

import (
	"context"
	"log/slog"
	"strings"

	application "erpinterno/contexts/erp/erp-service/application"
	"erpinterno/contexts/erp/erp-service/domain/entities"
	domainerrors "erpinterno/contexts/erp/erp-service/domain/errors"
	"erpinterno/contexts/erp/erp-service/ports"
)

type CreateCompanyCommand struct {
	TenantID   string
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
}

// CreateCompanyUseCase registers the tenant's own company row. The row id
// is the tenant id, so a tenant owns at most one company.
type CreateCompanyUseCase struct {
	Companies ports.CompanyRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc CreateCompanyUseCase) Execute(ctx context.Context, cmd CreateCompanyCommand) (entities.Company, error) {
	logger := application.RequestLogger(ctx, uc.Logger)
	tenantID, err := application.RequireTenant(cmd.TenantID)
	if err != nil {
		return entities.Company{}, err
	}

	exists, err := uc.Companies.CompanyExists(ctx, tenantID)
	if err != nil {
		return entities.Company{}, err
	}
	if exists {
		logger.Warn("company already registered for tenant",
			"event", "erp_company_create_duplicate_tenant",
			"module", application.ModuleName,
			"layer", "application",
		)
		return entities.Company{}, domainerrors.ErrCompanyExists
	}

	cnpj := strings.TrimSpace(cmd.CNPJ)
	registered, err := uc.Companies.CNPJRegistered(ctx, cnpj)
	if err != nil {
		return entities.Company{}, err
	}
	if registered {
		logger.Warn("company cnpj already registered",
			"event", "erp_company_create_cnpj_conflict",
			"module", application.ModuleName,
			"layer", "application",
		)
		return entities.Company{}, domainerrors.ErrCNPJExists
	}

	now := uc.Clock.Now().UTC()
	company := entities.Company{
		ID:         tenantID,
		LegalName:  strings.TrimSpace(cmd.LegalName),
		TradeName:  strings.TrimSpace(cmd.TradeName),
		CNPJ:       cnpj,
		Address:    strings.TrimSpace(cmd.Address),
		Phone:      strings.TrimSpace(cmd.Phone),
		Email:      strings.TrimSpace(cmd.Email),
		Website:    strings.TrimSpace(cmd.Website),
		Logo:       strings.TrimSpace(cmd.Logo),
		Timezone:   strings.TrimSpace(cmd.Timezone),
		Currency:   strings.TrimSpace(cmd.Currency),
		DateFormat: strings.TrimSpace(cmd.DateFormat),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	company.ApplyDefaults()

	if err := uc.Companies.CreateCompany(ctx, company); err != nil {
		logger.Error("company persist failed",
			"event", "erp_company_create_failed",
			"module", application.ModuleName,
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Company{}, err
	}

	logger.Info("company created",
		"event", "erp_company_created",
		"module", application.ModuleName,
		"layer", "application",
		"company_id", company.ID,
	)
	return company, nil
}
