package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "erpinterno/contexts/erp/erp-service/application"
	"erpinterno/contexts/erp/erp-service/domain/entities"
	domainerrors "erpinterno/contexts/erp/erp-service/domain/errors"
	"erpinterno/contexts/erp/erp-service/ports"
)

type CreateBudgetCommand struct {
	TenantID    string
	UserID      string
	ProjectID   string
	Number      string
	Title       string
	Description string
	Status      entities.BudgetStatus
	ValidUntil  time.Time
	Currency    string
	TotalValue  float64
	Discount    *float64
	Notes       string
	SupplierID  string
}

type CreateBudgetUseCase struct {
	Budgets  ports.BudgetRepository
	Projects ports.ProjectRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc CreateBudgetUseCase) Execute(ctx context.Context, cmd CreateBudgetCommand) (entities.Budget, error) {
	logger := application.RequestLogger(ctx, uc.Logger)
	tenantID, err := application.RequireTenant(cmd.TenantID)
	if err != nil {
		return entities.Budget{}, err
	}

	projectID := strings.TrimSpace(cmd.ProjectID)
	found, err := uc.Projects.ProjectExists(ctx, tenantID, projectID)
	if err != nil {
		return entities.Budget{}, err
	}
	if !found {
		logger.Warn("budget project not found",
			"event", "erp_budget_create_project_not_found",
			"module", application.ModuleName,
			"layer", "application",
			"project_id", projectID,
		)
		return entities.Budget{}, domainerrors.ErrProjectNotFound
	}

	number := strings.TrimSpace(cmd.Number)
	taken, err := uc.Budgets.BudgetNumberTaken(ctx, tenantID, number)
	if err != nil {
		return entities.Budget{}, err
	}
	if taken {
		logger.Warn("budget number already used",
			"event", "erp_budget_create_number_conflict",
			"module", application.ModuleName,
			"layer", "application",
			"number", number,
		)
		return entities.Budget{}, domainerrors.ErrBudgetNumberExists
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Budget{}, err
	}
	now := uc.Clock.Now().UTC()
	budget := entities.Budget{
		ID:          id,
		TenantID:    tenantID,
		ProjectID:   projectID,
		Number:      number,
		Title:       strings.TrimSpace(cmd.Title),
		Description: strings.TrimSpace(cmd.Description),
		Status:      cmd.Status,
		ValidUntil:  cmd.ValidUntil.UTC(),
		Currency:    strings.TrimSpace(cmd.Currency),
		TotalValue:  cmd.TotalValue,
		Discount:    cmd.Discount,
		Notes:       strings.TrimSpace(cmd.Notes),
		SupplierID:  strings.TrimSpace(cmd.SupplierID),
		CreatedByID: strings.TrimSpace(cmd.UserID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	budget.ApplyDefaults()
	budget.ComputeFinalValue()

	if err := uc.Budgets.CreateBudget(ctx, budget); err != nil {
		logger.Error("budget persist failed",
			"event", "erp_budget_create_failed",
			"module", application.ModuleName,
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Budget{}, err
	}

	logger.Info("budget created",
		"event", "erp_budget_created",
		"module", application.ModuleName,
		"layer", "application",
		"budget_id", budget.ID,
		"project_id", budget.ProjectID,
		"final_value", budget.FinalValue,
	)
	return budget, nil
}
