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

type CreateClientCommand struct {
	TenantID   string
	LegalName  string
	TradeName  string
	CNPJ       string
	Segment    string
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	PostalCode string
	Phone      string
	Email      string
	Website    string
}

// CreateClientUseCase enforces CNPJ uniqueness inside the tenant on the
// digits-only form.
type CreateClientUseCase struct {
	Clients ports.ClientRepository
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func (uc CreateClientUseCase) Execute(ctx context.Context, cmd CreateClientCommand) (entities.Client, error) {
	logger := application.RequestLogger(ctx, uc.Logger)
	tenantID, err := application.RequireTenant(cmd.TenantID)
	if err != nil {
		return entities.Client{}, err
	}

	normalized := entities.NormalizeCNPJ(cmd.CNPJ)
	taken, err := uc.Clients.ClientCNPJTaken(ctx, tenantID, normalized)
	if err != nil {
		return entities.Client{}, err
	}
	if taken {
		logger.Warn("client cnpj already registered in tenant",
			"event", "erp_client_create_cnpj_conflict",
			"module", application.ModuleName,
			"layer", "application",
		)
		return entities.Client{}, domainerrors.ErrCNPJExists
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Client{}, err
	}
	now := uc.Clock.Now().UTC()
	client := entities.Client{
		ID:             id,
		TenantID:       tenantID,
		LegalName:      strings.TrimSpace(cmd.LegalName),
		TradeName:      strings.TrimSpace(cmd.TradeName),
		CNPJ:           strings.TrimSpace(cmd.CNPJ),
		NormalizedCNPJ: normalized,
		Segment:        strings.TrimSpace(cmd.Segment),
		Street:         strings.TrimSpace(cmd.Street),
		Number:         strings.TrimSpace(cmd.Number),
		Complement:     strings.TrimSpace(cmd.Complement),
		District:       strings.TrimSpace(cmd.District),
		City:           strings.TrimSpace(cmd.City),
		State:          strings.ToUpper(strings.TrimSpace(cmd.State)),
		PostalCode:     strings.TrimSpace(cmd.PostalCode),
		Phone:          strings.TrimSpace(cmd.Phone),
		Email:          strings.TrimSpace(cmd.Email),
		Website:        strings.TrimSpace(cmd.Website),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.Clients.CreateClient(ctx, client); err != nil {
		logger.Error("client persist failed",
			"event", "erp_client_create_failed",
			"module", application.ModuleName,
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Client{}, err
	}

	logger.Info("client created",
		"event", "erp_client_created",
		"module", application.ModuleName,
		"layer", "application",
		"client_id", client.ID,
	)
	return client, nil
}
