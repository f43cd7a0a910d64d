package memory

import (
	"context"
	"maps"
	"slices"
	"strings"

	"erpinterno/contexts/erp/erp-service/domain/entities"
	domainerrors "erpinterno/contexts/erp/erp-service/domain/errors"
	"erpinterno/contexts/erp/erp-service/ports"
	"erpinterno/internal/shared/query"
)

var companyFields = accessors[entities.Company]{
	query.FieldID:        func(c entities.Company) any { return c.ID },
	query.FieldTenant:    func(c entities.Company) any { return c.ID },
	query.FieldDeletedAt: func(c entities.Company) any { return optionalTime(c.DeletedAt) },
	query.FieldCreatedAt: func(c entities.Company) any { return c.CreatedAt },
	ports.FieldUpdatedAt: func(c entities.Company) any { return c.UpdatedAt },
	ports.FieldLegalName: func(c entities.Company) any { return c.LegalName },
	ports.FieldTradeName: func(c entities.Company) any { return c.TradeName },
}

var clientFields = accessors[entities.Client]{
	query.FieldID:        func(c entities.Client) any { return c.ID },
	query.FieldTenant:    func(c entities.Client) any { return c.TenantID },
	query.FieldDeletedAt: func(c entities.Client) any { return optionalTime(c.DeletedAt) },
	query.FieldCreatedAt: func(c entities.Client) any { return c.CreatedAt },
	ports.FieldUpdatedAt: func(c entities.Client) any { return c.UpdatedAt },
	ports.FieldLegalName: func(c entities.Client) any { return c.LegalName },
	ports.FieldTradeName: func(c entities.Client) any { return optionalString(c.TradeName) },
	ports.FieldSegment:   func(c entities.Client) any { return optionalString(c.Segment) },
	ports.FieldCity:      func(c entities.Client) any { return c.City },
}

var projectFields = accessors[entities.Project]{
	query.FieldID:        func(p entities.Project) any { return p.ID },
	query.FieldTenant:    func(p entities.Project) any { return p.TenantID },
	query.FieldDeletedAt: func(p entities.Project) any { return optionalTime(p.DeletedAt) },
	query.FieldCreatedAt: func(p entities.Project) any { return p.CreatedAt },
	ports.FieldUpdatedAt: func(p entities.Project) any { return p.UpdatedAt },
	ports.FieldClientID:  func(p entities.Project) any { return p.ClientID },
	ports.FieldStatusID:  func(p entities.Project) any { return optionalString(p.StatusID) },
	ports.FieldPriority:  func(p entities.Project) any { return string(p.Priority) },
	ports.FieldSubject:   func(p entities.Project) any { return p.Subject },
	ports.FieldEntryDate: func(p entities.Project) any { return p.EntryDate },
}

var documentFields = accessors[entities.Document]{
	query.FieldID:         func(d entities.Document) any { return d.ID },
	query.FieldTenant:     func(d entities.Document) any { return d.TenantID },
	query.FieldDeletedAt:  func(d entities.Document) any { return optionalTime(d.DeletedAt) },
	query.FieldCreatedAt:  func(d entities.Document) any { return d.CreatedAt },
	ports.FieldUpdatedAt:  func(d entities.Document) any { return d.UpdatedAt },
	ports.FieldProjectID:  func(d entities.Document) any { return optionalString(d.ProjectID) },
	ports.FieldClientID:   func(d entities.Document) any { return optionalString(d.ClientID) },
	ports.FieldCategoryID: func(d entities.Document) any { return optionalString(d.CategoryID) },
	ports.FieldTitle:      func(d entities.Document) any { return d.Title },
	ports.FieldSizeBytes:  func(d entities.Document) any { return d.SizeBytes },
}

var budgetFields = accessors[entities.Budget]{
	query.FieldID:          func(b entities.Budget) any { return b.ID },
	query.FieldTenant:      func(b entities.Budget) any { return b.TenantID },
	query.FieldDeletedAt:   func(b entities.Budget) any { return optionalTime(b.DeletedAt) },
	query.FieldCreatedAt:   func(b entities.Budget) any { return b.CreatedAt },
	ports.FieldUpdatedAt:   func(b entities.Budget) any { return b.UpdatedAt },
	ports.FieldProjectID:   func(b entities.Budget) any { return b.ProjectID },
	ports.FieldStatus:      func(b entities.Budget) any { return string(b.Status) },
	ports.FieldNumber:      func(b entities.Budget) any { return b.Number },
	ports.FieldTitle:       func(b entities.Budget) any { return b.Title },
	ports.FieldDescription: func(b entities.Budget) any { return optionalString(b.Description) },
	ports.FieldValidUntil:  func(b entities.Budget) any { return b.ValidUntil },
	ports.FieldTotalValue:  func(b entities.Budget) any { return b.TotalValue },
}

var statusFields = accessors[entities.ProjectStatus]{
	query.FieldID:        func(s entities.ProjectStatus) any { return s.ID },
	query.FieldTenant:    func(s entities.ProjectStatus) any { return s.TenantID },
	query.FieldDeletedAt: func(s entities.ProjectStatus) any { return optionalTime(s.DeletedAt) },
	query.FieldCreatedAt: func(s entities.ProjectStatus) any { return s.CreatedAt },
	ports.FieldUpdatedAt: func(s entities.ProjectStatus) any { return s.UpdatedAt },
	ports.FieldName:      func(s entities.ProjectStatus) any { return s.Name },
	ports.FieldPhase:     func(s entities.ProjectStatus) any { return optionalString(s.Phase) },
	ports.FieldOrder:     func(s entities.ProjectStatus) any { return optionalInt(s.Order) },
}

var categoryFields = accessors[entities.DocumentCategory]{
	query.FieldID:          func(c entities.DocumentCategory) any { return c.ID },
	query.FieldTenant:      func(c entities.DocumentCategory) any { return c.TenantID },
	query.FieldDeletedAt:   func(c entities.DocumentCategory) any { return optionalTime(c.DeletedAt) },
	query.FieldCreatedAt:   func(c entities.DocumentCategory) any { return c.CreatedAt },
	ports.FieldUpdatedAt:   func(c entities.DocumentCategory) any { return c.UpdatedAt },
	ports.FieldName:        func(c entities.DocumentCategory) any { return c.Name },
	ports.FieldDescription: func(c entities.DocumentCategory) any { return optionalString(c.Description) },
	ports.FieldOrder:       func(c entities.DocumentCategory) any { return optionalInt(c.Order) },
}

func (s *Store) ListCompanies(_ context.Context, filter query.Filter, page query.Page) ([]entities.Company, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paginate(s.companies, companyFields, filter, page)
}

func (s *Store) CompanyExists(_ context.Context, tenantID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	company, ok := s.companies[strings.TrimSpace(tenantID)]
	return ok && company.DeletedAt == nil, nil
}

func (s *Store) CNPJRegistered(_ context.Context, cnpj string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cnpj = strings.TrimSpace(cnpj)
	for _, company := range s.companies {
		if company.CNPJ == cnpj {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateCompany(_ context.Context, company entities.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.companies[company.ID]; exists {
		return domainerrors.ErrCompanyExists
	}
	for _, existing := range s.companies {
		if existing.CNPJ == company.CNPJ {
			return domainerrors.ErrCNPJExists
		}
	}
	s.companies[company.ID] = company
	return nil
}

func (s *Store) ListClients(_ context.Context, filter query.Filter, page query.Page) ([]entities.Client, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paginate(s.clients, clientFields, filter, page)
}

func (s *Store) ClientExists(_ context.Context, tenantID string, clientID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	client, ok := s.clients[strings.TrimSpace(clientID)]
	return ok && client.TenantID == tenantID && client.DeletedAt == nil, nil
}

func (s *Store) ClientCNPJTaken(_ context.Context, tenantID string, normalizedCNPJ string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clientCNPJTakenLocked(tenantID, normalizedCNPJ), nil
}

func (s *Store) clientCNPJTakenLocked(tenantID string, normalizedCNPJ string) bool {
	for _, client := range s.clients {
		if client.TenantID == tenantID && client.DeletedAt == nil && client.NormalizedCNPJ == normalizedCNPJ {
			return true
		}
	}
	return false
}

func (s *Store) CreateClient(_ context.Context, client entities.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clientCNPJTakenLocked(client.TenantID, client.NormalizedCNPJ) {
		return domainerrors.ErrCNPJExists
	}
	s.clients[client.ID] = client
	return nil
}

// projectAccessors adds the fields read through the client; callers hold s.mu.
func (s *Store) projectAccessors() accessors[entities.Project] {
	fields := maps.Clone(projectFields)
	fields[ports.FieldClientSegment] = func(p entities.Project) any {
		return optionalString(s.clients[p.ClientID].Segment)
	}
	return fields
}

// budgetAccessors adds the fields read through the project and its client;
// callers hold s.mu.
func (s *Store) budgetAccessors() accessors[entities.Budget] {
	fields := maps.Clone(budgetFields)
	client := func(b entities.Budget) entities.Client {
		return s.clients[s.projects[b.ProjectID].ClientID]
	}
	fields[ports.FieldProjectClientID] = func(b entities.Budget) any {
		return optionalString(s.projects[b.ProjectID].ClientID)
	}
	fields[ports.FieldProjectSubject] = func(b entities.Budget) any {
		return optionalString(s.projects[b.ProjectID].Subject)
	}
	fields[ports.FieldClientSegment] = func(b entities.Budget) any {
		return optionalString(client(b).Segment)
	}
	fields[ports.FieldClientLegalName] = func(b entities.Budget) any {
		return optionalString(client(b).LegalName)
	}
	return fields
}

func (s *Store) ListProjects(_ context.Context, filter query.Filter, page query.Page) ([]entities.Project, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, total, err := paginate(s.projects, s.projectAccessors(), filter, page)
	return cloneEach(items, cloneProject), total, err
}

func (s *Store) ListAllProjects(_ context.Context, filter query.Filter) ([]entities.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, err := filterSort(s.projects, s.projectAccessors(), filter, query.FieldCreatedAt, true)
	return cloneEach(items, cloneProject), err
}

func (s *Store) ProjectExists(_ context.Context, tenantID string, projectID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[strings.TrimSpace(projectID)]
	return ok && project.TenantID == tenantID && project.DeletedAt == nil, nil
}

func (s *Store) CreateProject(_ context.Context, project entities.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = cloneProject(project)
	return nil
}

func (s *Store) ListDocuments(_ context.Context, filter query.Filter, page query.Page) ([]entities.Document, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, total, err := paginate(s.documents, documentFields, filter, page)
	return cloneEach(items, cloneDocument), total, err
}

func (s *Store) CreateDocument(_ context.Context, document entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[document.ID] = cloneDocument(document)
	return nil
}

func (s *Store) ListBudgets(_ context.Context, filter query.Filter, page query.Page) ([]entities.Budget, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paginate(s.budgets, s.budgetAccessors(), filter, page)
}

func (s *Store) ListAllBudgets(_ context.Context, filter query.Filter) ([]entities.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterSort(s.budgets, s.budgetAccessors(), filter, query.FieldCreatedAt, true)
}

func (s *Store) BudgetNumberTaken(_ context.Context, tenantID string, number string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budgetNumberTakenLocked(tenantID, number), nil
}

func (s *Store) budgetNumberTakenLocked(tenantID string, number string) bool {
	for _, budget := range s.budgets {
		if budget.TenantID == tenantID && budget.DeletedAt == nil && budget.Number == number {
			return true
		}
	}
	return false
}

func (s *Store) CreateBudget(_ context.Context, budget entities.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.budgetNumberTakenLocked(budget.TenantID, budget.Number) {
		return domainerrors.ErrBudgetNumberExists
	}
	s.budgets[budget.ID] = budget
	return nil
}

func (s *Store) ListProjectStatuses(_ context.Context, filter query.Filter, page query.Page) ([]entities.ProjectStatus, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paginate(s.statuses, statusFields, filter, page)
}

func (s *Store) ListAllProjectStatuses(_ context.Context, filter query.Filter) ([]entities.ProjectStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, err := filterSort(s.statuses, statusFields, filter, ports.FieldName, false)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b entities.ProjectStatus) int {
		return compareValues(optionalInt(a.Order), optionalInt(b.Order))
	})
	return items, nil
}

func (s *Store) ProjectStatusExists(_ context.Context, tenantID string, statusID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.statuses[strings.TrimSpace(statusID)]
	return ok && status.TenantID == tenantID && status.DeletedAt == nil, nil
}

func (s *Store) ProjectStatusNameTaken(_ context.Context, tenantID string, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statusNameTakenLocked(tenantID, name), nil
}

func (s *Store) statusNameTakenLocked(tenantID string, name string) bool {
	for _, status := range s.statuses {
		if status.TenantID == tenantID && status.DeletedAt == nil && status.Name == name {
			return true
		}
	}
	return false
}

func (s *Store) CreateProjectStatus(_ context.Context, status entities.ProjectStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statusNameTakenLocked(status.TenantID, status.Name) {
		return domainerrors.ErrStatusNameExists
	}
	s.statuses[status.ID] = status
	return nil
}

func (s *Store) ListDocumentCategories(_ context.Context, filter query.Filter, page query.Page) ([]entities.DocumentCategory, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paginate(s.categories, categoryFields, filter, page)
}

func (s *Store) DocumentCategoryExists(_ context.Context, tenantID string, categoryID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.categories[strings.TrimSpace(categoryID)]
	return ok && category.TenantID == tenantID && category.DeletedAt == nil, nil
}

func (s *Store) DocumentCategoryNameTaken(_ context.Context, tenantID string, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categoryNameTakenLocked(tenantID, name), nil
}

func (s *Store) categoryNameTakenLocked(tenantID string, name string) bool {
	for _, category := range s.categories {
		if category.TenantID == tenantID && category.DeletedAt == nil && category.Name == name {
			return true
		}
	}
	return false
}

func (s *Store) CreateDocumentCategory(_ context.Context, category entities.DocumentCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.categoryNameTakenLocked(category.TenantID, category.Name) {
		return domainerrors.ErrCategoryNameExists
	}
	s.categories[category.ID] = category
	return nil
}

func (s *Store) CountEntities(_ context.Context, tenantID string) (entities.DashboardCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var counts entities.DashboardCounts
	for _, item := range s.clients {
		if item.TenantID == tenantID && item.DeletedAt == nil {
			counts.Clients++
		}
	}
	for _, item := range s.projects {
		if item.TenantID == tenantID && item.DeletedAt == nil {
			counts.Projects++
		}
	}
	for _, item := range s.documents {
		if item.TenantID == tenantID && item.DeletedAt == nil {
			counts.Documents++
		}
	}
	for _, item := range s.budgets {
		if item.TenantID == tenantID && item.DeletedAt == nil {
			counts.Budgets++
		}
	}
	return counts, nil
}

func (s *Store) CountProjectsByStatus(_ context.Context, tenantID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int)
	for _, item := range s.projects {
		if item.TenantID == tenantID && item.DeletedAt == nil {
			out[item.StatusID]++
		}
	}
	return out, nil
}

func (s *Store) CountBudgetsByStatus(_ context.Context, tenantID string) (map[entities.BudgetStatus]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[entities.BudgetStatus]int)
	for _, item := range s.budgets {
		if item.TenantID == tenantID && item.DeletedAt == nil {
			out[item.Status]++
		}
	}
	return out, nil
}

func (s *Store) ClientsByID(_ context.Context, tenantID string, ids []string) (map[string]entities.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.clients, ids, func(c entities.Client) bool { return c.TenantID == tenantID }, nil), nil
}

func (s *Store) ProjectsByID(_ context.Context, tenantID string, ids []string) (map[string]entities.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.projects, ids, func(p entities.Project) bool { return p.TenantID == tenantID }, cloneProject), nil
}

func (s *Store) ProjectStatusesByID(_ context.Context, tenantID string, ids []string) (map[string]entities.ProjectStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.statuses, ids, func(st entities.ProjectStatus) bool { return st.TenantID == tenantID }, nil), nil
}

func (s *Store) CountProjectChildren(_ context.Context, tenantID string, projectIDs []string) (map[string]entities.ProjectCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]entities.ProjectCounts, len(projectIDs))
	for _, id := range projectIDs {
		out[id] = entities.ProjectCounts{}
	}
	for _, item := range s.documents {
		if counts, ok := out[item.ProjectID]; ok && item.TenantID == tenantID && item.DeletedAt == nil {
			counts.Documents++
			out[item.ProjectID] = counts
		}
	}
	for _, item := range s.budgets {
		if counts, ok := out[item.ProjectID]; ok && item.TenantID == tenantID && item.DeletedAt == nil {
			counts.Budgets++
			out[item.ProjectID] = counts
		}
	}
	return out, nil
}

// pick returns the owned items among ids; clone may be nil.
func pick[T any](source map[string]T, ids []string, owned func(T) bool, clone func(T) T) map[string]T {
	out := make(map[string]T, len(ids))
	for _, id := range ids {
		item, ok := source[id]
		if !ok || !owned(item) {
			continue
		}
		if clone != nil {
			item = clone(item)
		}
		out[id] = item
	}
	return out
}

func cloneEach[T any](items []T, clone func(T) T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}

func cloneProject(p entities.Project) entities.Project {
	p.Tags = slices.Clone(p.Tags)
	return p
}

func cloneDocument(d entities.Document) entities.Document {
	d.Tags = slices.Clone(d.Tags)
	d.Metadata = maps.Clone(d.Metadata)
	return d
}
