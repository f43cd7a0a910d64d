package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "erpinterno/contexts/erp/erp-service/application"
	"erpinterno/contexts/erp/erp-service/domain/entities"
	domainerrors "erpinterno/contexts/erp/erp-service/domain/errors"
	"erpinterno/internal/shared/query"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	companyPrimaryKey = "empresas_pkey"

	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

type rowModel[E any] interface {
	toEntity() E
}

// listPage counts every match, then loads one ordered page.
func listPage[M rowModel[E], E any](ctx context.Context, db *gorm.DB, cols columns, filter query.Filter, page query.Page) ([]E, int, error) {
	order, err := cols.orderBy(page)
	if err != nil {
		return nil, 0, err
	}
	countTx, err := cols.scope(db.WithContext(ctx).Model(new(M)), filter)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := countTx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	findTx, err := cols.scope(db.WithContext(ctx).Model(new(M)), filter)
	if err != nil {
		return nil, 0, err
	}
	findTx = findTx.Order(order).Offset(page.Offset())
	if page.Limit > 0 {
		findTx = findTx.Limit(page.Limit)
	}
	var rows []M
	if err := findTx.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toEntities[M, E](rows), int(total), nil
}

func listAll[M rowModel[E], E any](ctx context.Context, db *gorm.DB, cols columns, filter query.Filter, order string) ([]E, error) {
	tx, err := cols.scope(db.WithContext(ctx).Model(new(M)), filter)
	if err != nil {
		return nil, err
	}
	var rows []M
	if err := tx.Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities[M, E](rows), nil
}

func toEntities[M rowModel[E], E any](rows []M) []E {
	items := make([]E, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func (r *Repository) exists(ctx context.Context, model any, where string, args ...any) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(model).
		Where(where, args...).
		Where("deleted_at IS NULL").
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) insert(ctx context.Context, row any, conflict func(*pgconn.PgError) error) error {
	err := r.db.WithContext(ctx).Create(row).Error
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		if conflict == nil {
			return err
		}
		r.logger.Warn("unique index rejected insert",
			"event", "erp_postgres_unique_violation",
			"module", application.ModuleName,
			"layer", "adapter",
			"table", pgErr.TableName,
			"constraint", pgErr.ConstraintName,
		)
		return conflict(pgErr)
	case foreignKeyViolation:
		mapped := missingReference(pgErr)
		if mapped == nil {
			return err
		}
		r.logger.Warn("foreign key rejected insert",
			"event", "erp_postgres_foreign_key_violation",
			"module", application.ModuleName,
			"layer", "adapter",
			"table", pgErr.TableName,
			"constraint", pgErr.ConstraintName,
		)
		return mapped
	}
	return err
}

// missingReference maps a foreign key constraint, named by Postgres as
// <table>_<column>_fkey, to the not-found error of the referenced row.
func missingReference(pgErr *pgconn.PgError) error {
	constraint := pgErr.ConstraintName
	switch {
	case strings.HasSuffix(constraint, "_empresa_id_fkey"):
		return domainerrors.ErrCompanyNotFound
	case strings.HasSuffix(constraint, "_cliente_id_fkey"):
		return domainerrors.ErrClientNotFound
	case strings.HasSuffix(constraint, "_projeto_id_fkey"):
		return domainerrors.ErrProjectNotFound
	case strings.HasSuffix(constraint, "_status_id_fkey"):
		return domainerrors.ErrStatusNotFound
	case strings.HasSuffix(constraint, "_categoria_id_fkey"):
		return domainerrors.ErrCategoryNotFound
	}
	return nil
}

func conflictWith(target error) func(*pgconn.PgError) error {
	return func(*pgconn.PgError) error { return target }
}

func (r *Repository) ListCompanies(ctx context.Context, filter query.Filter, page query.Page) ([]entities.Company, int, error) {
	return listPage[companyModel, entities.Company](ctx, r.db, companyColumns, filter, page)
}

func (r *Repository) CompanyExists(ctx context.Context, tenantID string) (bool, error) {
	return r.exists(ctx, &companyModel{}, "id = ?", strings.TrimSpace(tenantID))
}

func (r *Repository) CNPJRegistered(ctx context.Context, cnpj string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&companyModel{}).
		Where("cnpj = ?", strings.TrimSpace(cnpj)).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) CreateCompany(ctx context.Context, company entities.Company) error {
	row := companyModelFromEntity(company)
	return r.insert(ctx, &row, func(pgErr *pgconn.PgError) error {
		if pgErr.ConstraintName == companyPrimaryKey {
			return domainerrors.ErrCompanyExists
		}
		return domainerrors.ErrCNPJExists
	})
}

func (r *Repository) ListClients(ctx context.Context, filter query.Filter, page query.Page) ([]entities.Client, int, error) {
	return listPage[clientModel, entities.Client](ctx, r.db, clientColumns, filter, page)
}

func (r *Repository) ClientExists(ctx context.Context, tenantID string, clientID string) (bool, error) {
	return r.exists(ctx, &clientModel{}, "id = ? AND empresa_id = ?", strings.TrimSpace(clientID), tenantID)
}

func (r *Repository) ClientCNPJTaken(ctx context.Context, tenantID string, normalizedCNPJ string) (bool, error) {
	return r.exists(ctx, &clientModel{}, "empresa_id = ? AND normalized_cnpj = ?", tenantID, normalizedCNPJ)
}

func (r *Repository) CreateClient(ctx context.Context, client entities.Client) error {
	row := clientModelFromEntity(client)
	return r.insert(ctx, &row, conflictWith(domainerrors.ErrCNPJExists))
}

func (r *Repository) ListProjects(ctx context.Context, filter query.Filter, page query.Page) ([]entities.Project, int, error) {
	return listPage[projectModel, entities.Project](ctx, r.db, projectColumns, filter, page)
}

func (r *Repository) ListAllProjects(ctx context.Context, filter query.Filter) ([]entities.Project, error) {
	return listAll[projectModel, entities.Project](ctx, r.db, projectColumns, filter, "created_at DESC, id ASC")
}

func (r *Repository) ProjectExists(ctx context.Context, tenantID string, projectID string) (bool, error) {
	return r.exists(ctx, &projectModel{}, "id = ? AND empresa_id = ?", strings.TrimSpace(projectID), tenantID)
}

func (r *Repository) CreateProject(ctx context.Context, project entities.Project) error {
	row := projectModelFromEntity(project)
	return r.insert(ctx, &row, nil)
}

func (r *Repository) ListDocuments(ctx context.Context, filter query.Filter, page query.Page) ([]entities.Document, int, error) {
	return listPage[documentModel, entities.Document](ctx, r.db, documentColumns, filter, page)
}

func (r *Repository) CreateDocument(ctx context.Context, document entities.Document) error {
	row := documentModelFromEntity(document)
	return r.insert(ctx, &row, nil)
}

func (r *Repository) ListBudgets(ctx context.Context, filter query.Filter, page query.Page) ([]entities.Budget, int, error) {
	return listPage[budgetModel, entities.Budget](ctx, r.db, budgetColumns, filter, page)
}

func (r *Repository) ListAllBudgets(ctx context.Context, filter query.Filter) ([]entities.Budget, error) {
	return listAll[budgetModel, entities.Budget](ctx, r.db, budgetColumns, filter, "created_at DESC, id ASC")
}

func (r *Repository) BudgetNumberTaken(ctx context.Context, tenantID string, number string) (bool, error) {
	return r.exists(ctx, &budgetModel{}, "empresa_id = ? AND numero = ?", tenantID, strings.TrimSpace(number))
}

func (r *Repository) CreateBudget(ctx context.Context, budget entities.Budget) error {
	row := budgetModelFromEntity(budget)
	return r.insert(ctx, &row, conflictWith(domainerrors.ErrBudgetNumberExists))
}

func (r *Repository) ListProjectStatuses(ctx context.Context, filter query.Filter, page query.Page) ([]entities.ProjectStatus, int, error) {
	return listPage[projectStatusModel, entities.ProjectStatus](ctx, r.db, statusColumns, filter, page)
}

func (r *Repository) ListAllProjectStatuses(ctx context.Context, filter query.Filter) ([]entities.ProjectStatus, error) {
	return listAll[projectStatusModel, entities.ProjectStatus](ctx, r.db, statusColumns, filter, "ordem ASC NULLS LAST, nome ASC, id ASC")
}

func (r *Repository) ProjectStatusExists(ctx context.Context, tenantID string, statusID string) (bool, error) {
	return r.exists(ctx, &projectStatusModel{}, "id = ? AND empresa_id = ?", strings.TrimSpace(statusID), tenantID)
}

func (r *Repository) ProjectStatusNameTaken(ctx context.Context, tenantID string, name string) (bool, error) {
	return r.exists(ctx, &projectStatusModel{}, "empresa_id = ? AND nome = ?", tenantID, name)
}

func (r *Repository) CreateProjectStatus(ctx context.Context, status entities.ProjectStatus) error {
	row := projectStatusModelFromEntity(status)
	return r.insert(ctx, &row, conflictWith(domainerrors.ErrStatusNameExists))
}

func (r *Repository) ListDocumentCategories(ctx context.Context, filter query.Filter, page query.Page) ([]entities.DocumentCategory, int, error) {
	return listPage[documentCategoryModel, entities.DocumentCategory](ctx, r.db, categoryColumns, filter, page)
}

func (r *Repository) DocumentCategoryExists(ctx context.Context, tenantID string, categoryID string) (bool, error) {
	return r.exists(ctx, &documentCategoryModel{}, "id = ? AND empresa_id = ?", strings.TrimSpace(categoryID), tenantID)
}

func (r *Repository) DocumentCategoryNameTaken(ctx context.Context, tenantID string, name string) (bool, error) {
	return r.exists(ctx, &documentCategoryModel{}, "empresa_id = ? AND nome = ?", tenantID, name)
}

func (r *Repository) CreateDocumentCategory(ctx context.Context, category entities.DocumentCategory) error {
	row := documentCategoryModelFromEntity(category)
	return r.insert(ctx, &row, conflictWith(domainerrors.ErrCategoryNameExists))
}

func (r *Repository) countTenant(ctx context.Context, model any, tenantID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(model).
		Where("empresa_id = ? AND deleted_at IS NULL", tenantID).
		Count(&count).
		Error
	return int(count), err
}

func (r *Repository) CountEntities(ctx context.Context, tenantID string) (entities.DashboardCounts, error) {
	var counts entities.DashboardCounts
	var err error
	if counts.Clients, err = r.countTenant(ctx, &clientModel{}, tenantID); err != nil {
		return entities.DashboardCounts{}, err
	}
	if counts.Projects, err = r.countTenant(ctx, &projectModel{}, tenantID); err != nil {
		return entities.DashboardCounts{}, err
	}
	if counts.Documents, err = r.countTenant(ctx, &documentModel{}, tenantID); err != nil {
		return entities.DashboardCounts{}, err
	}
	if counts.Budgets, err = r.countTenant(ctx, &budgetModel{}, tenantID); err != nil {
		return entities.DashboardCounts{}, err
	}
	return counts, nil
}

// byID loads the tenant rows with the given ids, soft-deleted ones included.
func byID[M rowModel[E], E any](ctx context.Context, db *gorm.DB, tenantID string, ids []string, key func(E) string) (map[string]E, error) {
	out := make(map[string]E, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []M
	err := db.WithContext(ctx).
		Model(new(M)).
		Where("empresa_id = ? AND id IN ?", tenantID, ids).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		item := row.toEntity()
		out[key(item)] = item
	}
	return out, nil
}

func (r *Repository) ClientsByID(ctx context.Context, tenantID string, ids []string) (map[string]entities.Client, error) {
	return byID[clientModel](ctx, r.db, tenantID, ids, func(c entities.Client) string { return c.ID })
}

func (r *Repository) ProjectsByID(ctx context.Context, tenantID string, ids []string) (map[string]entities.Project, error) {
	return byID[projectModel](ctx, r.db, tenantID, ids, func(p entities.Project) string { return p.ID })
}

func (r *Repository) ProjectStatusesByID(ctx context.Context, tenantID string, ids []string) (map[string]entities.ProjectStatus, error) {
	return byID[projectStatusModel](ctx, r.db, tenantID, ids, func(s entities.ProjectStatus) string { return s.ID })
}

func (r *Repository) CountProjectChildren(ctx context.Context, tenantID string, projectIDs []string) (map[string]entities.ProjectCounts, error) {
	out := make(map[string]entities.ProjectCounts, len(projectIDs))
	if len(projectIDs) == 0 {
		return out, nil
	}
	documents, err := r.countByProject(ctx, &documentModel{}, tenantID, projectIDs)
	if err != nil {
		return nil, err
	}
	budgets, err := r.countByProject(ctx, &budgetModel{}, tenantID, projectIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range projectIDs {
		out[id] = entities.ProjectCounts{Documents: documents[id], Budgets: budgets[id]}
	}
	return out, nil
}

func (r *Repository) countByProject(ctx context.Context, model any, tenantID string, projectIDs []string) (map[string]int, error) {
	var rows []groupCountRow
	err := r.db.WithContext(ctx).
		Model(model).
		Select("projeto_id::text AS bucket, COUNT(*) AS count").
		Where("empresa_id = ? AND deleted_at IS NULL AND projeto_id IN ?", tenantID, projectIDs).
		Group("projeto_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[deref(row.Key)] += row.Count
	}
	return out, nil
}

type groupCountRow struct {
	Key   *string `gorm:"column:bucket"`
	Count int     `gorm:"column:count"`
}

func (r *Repository) groupCount(ctx context.Context, model any, column string, tenantID string) ([]groupCountRow, error) {
	var rows []groupCountRow
	err := r.db.WithContext(ctx).
		Model(model).
		Select(column+"::text AS bucket, COUNT(*) AS count").
		Where("empresa_id = ? AND deleted_at IS NULL", tenantID).
		Group(column).
		Scan(&rows).
		Error
	return rows, err
}

func (r *Repository) CountProjectsByStatus(ctx context.Context, tenantID string) (map[string]int, error) {
	rows, err := r.groupCount(ctx, &projectModel{}, "status_id", tenantID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[deref(row.Key)] += row.Count
	}
	return out, nil
}

func (r *Repository) CountBudgetsByStatus(ctx context.Context, tenantID string) (map[entities.BudgetStatus]int, error) {
	rows, err := r.groupCount(ctx, &budgetModel{}, "status", tenantID)
	if err != nil {
		return nil, err
	}
	out := make(map[entities.BudgetStatus]int, len(rows))
	for _, row := range rows {
		out[entities.BudgetStatus(deref(row.Key))] += row.Count
	}
	return out, nil
}

