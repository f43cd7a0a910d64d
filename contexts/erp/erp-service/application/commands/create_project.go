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

type CreateProjectCommand struct {
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
	Priority       entities.Priority
	Tags           []string
	ManagerID      string
	SalespersonID  string
}

// CreateProjectUseCase requires an existing client and, when given, an
// existing status of the same tenant.
type CreateProjectUseCase struct {
	Projects ports.ProjectRepository
	Clients  ports.ClientRepository
	Statuses ports.ProjectStatusRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc CreateProjectUseCase) Execute(ctx context.Context, cmd CreateProjectCommand) (entities.Project, error) {
	logger := application.RequestLogger(ctx, uc.Logger)
	tenantID, err := application.RequireTenant(cmd.TenantID)
	if err != nil {
		return entities.Project{}, err
	}

	clientID := strings.TrimSpace(cmd.ClientID)
	found, err := uc.Clients.ClientExists(ctx, tenantID, clientID)
	if err != nil {
		return entities.Project{}, err
	}
	if !found {
		logger.Warn("project client not found",
			"event", "erp_project_create_client_not_found",
			"module", application.ModuleName,
			"layer", "application",
			"client_id", clientID,
		)
		return entities.Project{}, domainerrors.ErrClientNotFound
	}

	statusID := strings.TrimSpace(cmd.StatusID)
	if statusID != "" {
		found, err := uc.Statuses.ProjectStatusExists(ctx, tenantID, statusID)
		if err != nil {
			return entities.Project{}, err
		}
		if !found {
			logger.Warn("project status not found",
				"event", "erp_project_create_status_not_found",
				"module", application.ModuleName,
				"layer", "application",
				"status_id", statusID,
			)
			return entities.Project{}, domainerrors.ErrStatusNotFound
		}
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Project{}, err
	}
	now := uc.Clock.Now().UTC()
	project := entities.Project{
		ID:             id,
		TenantID:       tenantID,
		ClientID:       clientID,
		Subject:        strings.TrimSpace(cmd.Subject),
		Description:    strings.TrimSpace(cmd.Description),
		StatusID:       statusID,
		EntryDate:      cmd.EntryDate.UTC(),
		StartDate:      utcPtr(cmd.StartDate),
		EndDate:        utcPtr(cmd.EndDate),
		Expectation:    strings.TrimSpace(cmd.Expectation),
		Objective:      strings.TrimSpace(cmd.Objective),
		Notes:          strings.TrimSpace(cmd.Notes),
		EstimatedValue: cmd.EstimatedValue,
		Priority:       cmd.Priority,
		Tags:           cleanTags(cmd.Tags),
		ManagerID:      strings.TrimSpace(cmd.ManagerID),
		SalespersonID:  strings.TrimSpace(cmd.SalespersonID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	project.ApplyDefaults()

	if err := uc.Projects.CreateProject(ctx, project); err != nil {
		logger.Error("project persist failed",
			"event", "erp_project_create_failed",
			"module", application.ModuleName,
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Project{}, err
	}

	logger.Info("project created",
		"event", "erp_project_created",
		"module", application.ModuleName,
		"layer", "application",
		"project_id", project.ID,
		"client_id", project.ClientID,
	)
	return project, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := t.UTC()
	return &value
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
