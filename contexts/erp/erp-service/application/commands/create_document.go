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

type CreateDocumentCommand struct {
	TenantID        string
	UserID          string
	ProjectID       string
	ClientID        string
	CategoryID      string
	Title           string
	Description     string
	StorageKey      string
	ContentType     string
	SizeBytes       int64
	Checksum        string
	StorageProvider string
	Metadata        map[string]any
	Tags            []string
}

// CreateDocumentUseCase records document metadata. Each optional reference
// must resolve inside the tenant.
type CreateDocumentUseCase struct {
	Documents  ports.DocumentRepository
	Projects   ports.ProjectRepository
	Clients    ports.ClientRepository
	Categories ports.DocumentCategoryRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc CreateDocumentUseCase) Execute(ctx context.Context, cmd CreateDocumentCommand) (entities.Document, error) {
	logger := application.RequestLogger(ctx, uc.Logger)
	tenantID, err := application.RequireTenant(cmd.TenantID)
	if err != nil {
		return entities.Document{}, err
	}

	projectID := strings.TrimSpace(cmd.ProjectID)
	clientID := strings.TrimSpace(cmd.ClientID)
	categoryID := strings.TrimSpace(cmd.CategoryID)

	checks := []struct {
		id     string
		exists func(context.Context, string, string) (bool, error)
		err    error
		event  string
	}{
		{projectID, uc.Projects.ProjectExists, domainerrors.ErrProjectNotFound, "erp_document_create_project_not_found"},
		{clientID, uc.Clients.ClientExists, domainerrors.ErrClientNotFound, "erp_document_create_client_not_found"},
		{categoryID, uc.Categories.DocumentCategoryExists, domainerrors.ErrCategoryNotFound, "erp_document_create_category_not_found"},
	}
	for _, check := range checks {
		if check.id == "" {
			continue
		}
		found, err := check.exists(ctx, tenantID, check.id)
		if err != nil {
			return entities.Document{}, err
		}
		if !found {
			logger.Warn("document reference not found",
				"event", check.event,
				"module", application.ModuleName,
				"layer", "application",
				"reference_id", check.id,
			)
			return entities.Document{}, check.err
		}
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Document{}, err
	}
	now := uc.Clock.Now().UTC()
	userID := strings.TrimSpace(cmd.UserID)
	document := entities.Document{
		ID:              id,
		TenantID:        tenantID,
		ProjectID:       projectID,
		ClientID:        clientID,
		CategoryID:      categoryID,
		Title:           strings.TrimSpace(cmd.Title),
		Description:     strings.TrimSpace(cmd.Description),
		StorageKey:      strings.TrimSpace(cmd.StorageKey),
		ContentType:     strings.TrimSpace(cmd.ContentType),
		SizeBytes:       cmd.SizeBytes,
		Checksum:        strings.TrimSpace(cmd.Checksum),
		StorageProvider: strings.TrimSpace(cmd.StorageProvider),
		Metadata:        cmd.Metadata,
		Tags:            cleanTags(cmd.Tags),
		CreatedByID:     userID,
		UpdatedByID:     userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	document.ApplyDefaults()

	if err := uc.Documents.CreateDocument(ctx, document); err != nil {
		logger.Error("document persist failed",
			"event", "erp_document_create_failed",
			"module", application.ModuleName,
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Document{}, err
	}

	logger.Info("document created",
		"event", "erp_document_created",
		"module", application.ModuleName,
		"layer", "application",
		"document_id", document.ID,
		"size_bytes", document.SizeBytes,
	)
	return document, nil
}
