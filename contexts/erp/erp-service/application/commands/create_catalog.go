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

type CreateProjectStatusCommand struct {
	TenantID string
	Name     string
	Phase    string
	Color    string
	Order    *int
}

type CreateProjectStatusUseCase struct {
	Statuses ports.ProjectStatusRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc CreateProjectStatusUseCase) Execute(ctx context.Context, cmd CreateProjectStatusCommand) (entities.ProjectStatus, error) {
	logger := application.RequestLogger(ctx, uc.Logger)
	tenantID, err := application.RequireTenant(cmd.TenantID)
	if err != nil {
		return entities.ProjectStatus{}, err
	}

	name := strings.TrimSpace(cmd.Name)
	taken, err := uc.Statuses.ProjectStatusNameTaken(ctx, tenantID, name)
	if err != nil {
		return entities.ProjectStatus{}, err
	}
	if taken {
		logger.Warn("project status name already used",
			"event", "erp_status_create_name_conflict",
			"module", application.ModuleName,
			"layer", "application",
		)
		return entities.ProjectStatus{}, domainerrors.ErrStatusNameExists
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.ProjectStatus{}, err
	}
	now := uc.Clock.Now().UTC()
	status := entities.ProjectStatus{
		ID:        id,
		TenantID:  tenantID,
		Name:      name,
		Phase:     strings.TrimSpace(cmd.Phase),
		Color:     strings.ToUpper(strings.TrimSpace(cmd.Color)),
		Order:     cmd.Order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.Statuses.CreateProjectStatus(ctx, status); err != nil {
		logger.Error("project status persist failed",
			"event", "erp_status_create_failed",
			"module", application.ModuleName,
			"layer", "application",
			"error", err.Error(),
		)
		return entities.ProjectStatus{}, err
	}

	logger.Info("project status created",
		"event", "erp_status_created",
		"module", application.ModuleName,
		"layer", "application",
		"status_id", status.ID,
	)
	return status, nil
}

type CreateDocumentCategoryCommand struct {
	TenantID    string
	Name        string
	Description string
	Color       string
	Order       *int
}

type CreateDocumentCategoryUseCase struct {
	Categories ports.DocumentCategoryRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc CreateDocumentCategoryUseCase) Execute(ctx context.Context, cmd CreateDocumentCategoryCommand) (entities.DocumentCategory, error) {
	logger := application.RequestLogger(ctx, uc.Logger)
	tenantID, err := application.RequireTenant(cmd.TenantID)
	if err != nil {
		return entities.DocumentCategory{}, err
	}

	name := strings.TrimSpace(cmd.Name)
	taken, err := uc.Categories.DocumentCategoryNameTaken(ctx, tenantID, name)
	if err != nil {
		return entities.DocumentCategory{}, err
	}
	if taken {
		logger.Warn("document category name already used",
			"event", "erp_category_create_name_conflict",
			"module", application.ModuleName,
			"layer", "application",
		)
		return entities.DocumentCategory{}, domainerrors.ErrCategoryNameExists
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.DocumentCategory{}, err
	}
	now := uc.Clock.Now().UTC()
	category := entities.DocumentCategory{
		ID:          id,
		TenantID:    tenantID,
		Name:        name,
		Description: strings.TrimSpace(cmd.Description),
		Color:       strings.ToUpper(strings.TrimSpace(cmd.Color)),
		Order:       cmd.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.Categories.CreateDocumentCategory(ctx, category); err != nil {
		logger.Error("document category persist failed",
			"event", "erp_category_create_failed",
			"module", application.ModuleName,
			"layer", "application",
			"error", err.Error(),
		)
		return entities.DocumentCategory{}, err
	}

	logger.Info("document category created",
		"event", "erp_category_created",
		"module", application.ModuleName,
		"layer", "application",
		"category_id", category.ID,
	)
	return category, nil
}
