package postgresadapter

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"erpinterno/contexts/erp/erp-service/domain/entities"
)

// jsonStrings stores a string list in a jsonb column.
type jsonStrings []string

func (j jsonStrings) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(j))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (j *jsonStrings) Scan(src any) error {
	raw, err := jsonBytes(src)
	if err != nil || raw == nil {
		*j = jsonStrings{}
		return err
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	if out == nil {
		out = []string{}
	}
	*j = out
	return nil
}

// jsonObject stores free-form metadata in a jsonb column.
type jsonObject map[string]any

func (j jsonObject) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	raw, err := json.Marshal(map[string]any(j))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (j *jsonObject) Scan(src any) error {
	raw, err := jsonBytes(src)
	if err != nil || raw == nil {
		*j = nil
		return err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*j = out
	return nil
}

func jsonBytes(src any) ([]byte, error) {
	switch value := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return value, nil
	case string:
		return []byte(value), nil
	default:
		return nil, fmt.Errorf("unsupported json column type %T", src)
	}
}

func nullable(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

type companyModel struct {
	ID         string     `gorm:"column:id;primaryKey"`
	LegalName  string     `gorm:"column:razao_social"`
	TradeName  string     `gorm:"column:nome_fantasia"`
	CNPJ       string     `gorm:"column:cnpj"`
	Address    string     `gorm:"column:endereco"`
	Phone      *string    `gorm:"column:telefone"`
	Email      *string    `gorm:"column:email"`
	Website    *string    `gorm:"column:website"`
	Logo       *string    `gorm:"column:logo"`
	Timezone   string     `gorm:"column:timezone"`
	Currency   string     `gorm:"column:moeda"`
	DateFormat string     `gorm:"column:formato_data"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
	DeletedAt  *time.Time `gorm:"column:deleted_at"`
}

func (companyModel) TableName() string {
	return "empresas"
}

func companyModelFromEntity(item entities.Company) companyModel {
	return companyModel{
		ID:         item.ID,
		LegalName:  item.LegalName,
		TradeName:  item.TradeName,
		CNPJ:       item.CNPJ,
		Address:    item.Address,
		Phone:      nullable(item.Phone),
		Email:      nullable(item.Email),
		Website:    nullable(item.Website),
		Logo:       nullable(item.Logo),
		Timezone:   item.Timezone,
		Currency:   item.Currency,
		DateFormat: item.DateFormat,
		CreatedAt:  item.CreatedAt.UTC(),
		UpdatedAt:  item.UpdatedAt.UTC(),
		DeletedAt:  item.DeletedAt,
	}
}

func (m companyModel) toEntity() entities.Company {
	return entities.Company{
		ID:         m.ID,
		LegalName:  m.LegalName,
		TradeName:  m.TradeName,
		CNPJ:       m.CNPJ,
		Address:    m.Address,
		Phone:      deref(m.Phone),
		Email:      deref(m.Email),
		Website:    deref(m.Website),
		Logo:       deref(m.Logo),
		Timezone:   m.Timezone,
		Currency:   m.Currency,
		DateFormat: m.DateFormat,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
		DeletedAt:  m.DeletedAt,
	}
}

type clientModel struct {
	ID             string     `gorm:"column:id;primaryKey"`
	TenantID       string     `gorm:"column:empresa_id"`
	LegalName      string     `gorm:"column:razao_social"`
	TradeName      *string    `gorm:"column:nome_fantasia"`
	CNPJ           string     `gorm:"column:cnpj"`
	NormalizedCNPJ string     `gorm:"column:normalized_cnpj"`
	Segment        *string    `gorm:"column:segmento"`
	Street         string     `gorm:"column:logradouro"`
	Number         string     `gorm:"column:numero"`
	Complement     *string    `gorm:"column:complemento"`
	District       string     `gorm:"column:bairro"`
	City           string     `gorm:"column:cidade"`
	State          string     `gorm:"column:estado"`
	PostalCode     string     `gorm:"column:cep"`
	Phone          *string    `gorm:"column:telefone"`
	Email          *string    `gorm:"column:email"`
	Website        *string    `gorm:"column:website"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
	DeletedAt      *time.Time `gorm:"column:deleted_at"`
}

func (clientModel) TableName() string {
	return "clientes"
}

func clientModelFromEntity(item entities.Client) clientModel {
	return clientModel{
		ID:             item.ID,
		TenantID:       item.TenantID,
		LegalName:      item.LegalName,
		TradeName:      nullable(item.TradeName),
		CNPJ:           item.CNPJ,
		NormalizedCNPJ: item.NormalizedCNPJ,
		Segment:        nullable(item.Segment),
		Street:         item.Street,
		Number:         item.Number,
		Complement:     nullable(item.Complement),
		District:       item.District,
		City:           item.City,
		State:          item.State,
		PostalCode:     item.PostalCode,
		Phone:          nullable(item.Phone),
		Email:          nullable(item.Email),
		Website:        nullable(item.Website),
		CreatedAt:      item.CreatedAt.UTC(),
		UpdatedAt:      item.UpdatedAt.UTC(),
		DeletedAt:      item.DeletedAt,
	}
}

func (m clientModel) toEntity() entities.Client {
	return entities.Client{
		ID:             m.ID,
		TenantID:       m.TenantID,
		LegalName:      m.LegalName,
		TradeName:      deref(m.TradeName),
		CNPJ:           m.CNPJ,
		NormalizedCNPJ: m.NormalizedCNPJ,
		Segment:        deref(m.Segment),
		Street:         m.Street,
		Number:         m.Number,
		Complement:     deref(m.Complement),
		District:       m.District,
		City:           m.City,
		State:          m.State,
		PostalCode:     m.PostalCode,
		Phone:          deref(m.Phone),
		Email:          deref(m.Email),
		Website:        deref(m.Website),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
		DeletedAt:      m.DeletedAt,
	}
}

type projectModel struct {
	ID             string      `gorm:"column:id;primaryKey"`
	TenantID       string      `gorm:"column:empresa_id"`
	ClientID       string      `gorm:"column:cliente_id"`
	Subject        string      `gorm:"column:assunto"`
	Description    *string     `gorm:"column:descricao"`
	StatusID       *string     `gorm:"column:status_id"`
	EntryDate      time.Time   `gorm:"column:data_entrada"`
	StartDate      *time.Time  `gorm:"column:data_inicio"`
	EndDate        *time.Time  `gorm:"column:data_fim"`
	Expectation    *string     `gorm:"column:expectativa"`
	Objective      *string     `gorm:"column:objetivo"`
	Notes          *string     `gorm:"column:observacoes"`
	EstimatedValue *float64    `gorm:"column:valor_estimado"`
	Priority       string      `gorm:"column:prioridade"`
	Tags           jsonStrings `gorm:"column:tags;type:jsonb"`
	ManagerID      *string     `gorm:"column:gerente_id"`
	SalespersonID  *string     `gorm:"column:vendedor_id"`
	CreatedAt      time.Time   `gorm:"column:created_at"`
	UpdatedAt      time.Time   `gorm:"column:updated_at"`
	DeletedAt      *time.Time  `gorm:"column:deleted_at"`
}

func (projectModel) TableName() string {
	return "projetos"
}

func projectModelFromEntity(item entities.Project) projectModel {
	return projectModel{
		ID:             item.ID,
		TenantID:       item.TenantID,
		ClientID:       item.ClientID,
		Subject:        item.Subject,
		Description:    nullable(item.Description),
		StatusID:       nullable(item.StatusID),
		EntryDate:      item.EntryDate.UTC(),
		StartDate:      item.StartDate,
		EndDate:        item.EndDate,
		Expectation:    nullable(item.Expectation),
		Objective:      nullable(item.Objective),
		Notes:          nullable(item.Notes),
		EstimatedValue: item.EstimatedValue,
		Priority:       string(item.Priority),
		Tags:           jsonStrings(item.Tags),
		ManagerID:      nullable(item.ManagerID),
		SalespersonID:  nullable(item.SalespersonID),
		CreatedAt:      item.CreatedAt.UTC(),
		UpdatedAt:      item.UpdatedAt.UTC(),
		DeletedAt:      item.DeletedAt,
	}
}

func (m projectModel) toEntity() entities.Project {
	return entities.Project{
		ID:             m.ID,
		TenantID:       m.TenantID,
		ClientID:       m.ClientID,
		Subject:        m.Subject,
		Description:    deref(m.Description),
		StatusID:       deref(m.StatusID),
		EntryDate:      m.EntryDate.UTC(),
		StartDate:      utcPtr(m.StartDate),
		EndDate:        utcPtr(m.EndDate),
		Expectation:    deref(m.Expectation),
		Objective:      deref(m.Objective),
		Notes:          deref(m.Notes),
		EstimatedValue: m.EstimatedValue,
		Priority:       entities.Priority(m.Priority),
		Tags:           []string(m.Tags),
		ManagerID:      deref(m.ManagerID),
		SalespersonID:  deref(m.SalespersonID),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
		DeletedAt:      m.DeletedAt,
	}
}

type documentModel struct {
	ID              string      `gorm:"column:id;primaryKey"`
	TenantID        string      `gorm:"column:empresa_id"`
	ProjectID       *string     `gorm:"column:projeto_id"`
	ClientID        *string     `gorm:"column:cliente_id"`
	CategoryID      *string     `gorm:"column:categoria_id"`
	Title           string      `gorm:"column:titulo"`
	Description     *string     `gorm:"column:descricao"`
	StorageKey      string      `gorm:"column:storage_key"`
	ContentType     string      `gorm:"column:content_type"`
	SizeBytes       int64       `gorm:"column:size_bytes"`
	Checksum        *string     `gorm:"column:checksum"`
	StorageProvider *string     `gorm:"column:storage_provider"`
	Metadata        jsonObject  `gorm:"column:metadata;type:jsonb"`
	Tags            jsonStrings `gorm:"column:tags;type:jsonb"`
	CreatedByID     *string     `gorm:"column:created_by_id"`
	UpdatedByID     *string     `gorm:"column:updated_by_id"`
	CreatedAt       time.Time   `gorm:"column:created_at"`
	UpdatedAt       time.Time   `gorm:"column:updated_at"`
	DeletedAt       *time.Time  `gorm:"column:deleted_at"`
}

func (documentModel) TableName() string {
	return "documentos"
}

func documentModelFromEntity(item entities.Document) documentModel {
	return documentModel{
		ID:              item.ID,
		TenantID:        item.TenantID,
		ProjectID:       nullable(item.ProjectID),
		ClientID:        nullable(item.ClientID),
		CategoryID:      nullable(item.CategoryID),
		Title:           item.Title,
		Description:     nullable(item.Description),
		StorageKey:      item.StorageKey,
		ContentType:     item.ContentType,
		SizeBytes:       item.SizeBytes,
		Checksum:        nullable(item.Checksum),
		StorageProvider: nullable(item.StorageProvider),
		Metadata:        jsonObject(item.Metadata),
		Tags:            jsonStrings(item.Tags),
		CreatedByID:     nullable(item.CreatedByID),
		UpdatedByID:     nullable(item.UpdatedByID),
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
		DeletedAt:       item.DeletedAt,
	}
}

func (m documentModel) toEntity() entities.Document {
	return entities.Document{
		ID:              m.ID,
		TenantID:        m.TenantID,
		ProjectID:       deref(m.ProjectID),
		ClientID:        deref(m.ClientID),
		CategoryID:      deref(m.CategoryID),
		Title:           m.Title,
		Description:     deref(m.Description),
		StorageKey:      m.StorageKey,
		ContentType:     m.ContentType,
		SizeBytes:       m.SizeBytes,
		Checksum:        deref(m.Checksum),
		StorageProvider: deref(m.StorageProvider),
		Metadata:        map[string]any(m.Metadata),
		Tags:            []string(m.Tags),
		CreatedByID:     deref(m.CreatedByID),
		UpdatedByID:     deref(m.UpdatedByID),
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
		DeletedAt:       m.DeletedAt,
	}
}

type budgetModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	TenantID    string     `gorm:"column:empresa_id"`
	ProjectID   string     `gorm:"column:projeto_id"`
	Number      string     `gorm:"column:numero"`
	Title       string     `gorm:"column:titulo"`
	Description *string    `gorm:"column:descricao"`
	Status      string     `gorm:"column:status"`
	ValidUntil  time.Time  `gorm:"column:data_validade"`
	Currency    string     `gorm:"column:moeda"`
	TotalValue  float64    `gorm:"column:valor_total"`
	Discount    *float64   `gorm:"column:desconto"`
	FinalValue  float64    `gorm:"column:valor_final"`
	Notes       *string    `gorm:"column:observacoes"`
	SupplierID  *string    `gorm:"column:fornecedor_id"`
	CreatedByID *string    `gorm:"column:created_by_id"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	DeletedAt   *time.Time `gorm:"column:deleted_at"`
}

func (budgetModel) TableName() string {
	return "orcamentos"
}

func budgetModelFromEntity(item entities.Budget) budgetModel {
	return budgetModel{
		ID:          item.ID,
		TenantID:    item.TenantID,
		ProjectID:   item.ProjectID,
		Number:      item.Number,
		Title:       item.Title,
		Description: nullable(item.Description),
		Status:      string(item.Status),
		ValidUntil:  item.ValidUntil.UTC(),
		Currency:    item.Currency,
		TotalValue:  item.TotalValue,
		Discount:    item.Discount,
		FinalValue:  item.FinalValue,
		Notes:       nullable(item.Notes),
		SupplierID:  nullable(item.SupplierID),
		CreatedByID: nullable(item.CreatedByID),
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
		DeletedAt:   item.DeletedAt,
	}
}

func (m budgetModel) toEntity() entities.Budget {
	return entities.Budget{
		ID:          m.ID,
		TenantID:    m.TenantID,
		ProjectID:   m.ProjectID,
		Number:      m.Number,
		Title:       m.Title,
		Description: deref(m.Description),
		Status:      entities.BudgetStatus(m.Status),
		ValidUntil:  m.ValidUntil.UTC(),
		Currency:    m.Currency,
		TotalValue:  m.TotalValue,
		Discount:    m.Discount,
		FinalValue:  m.FinalValue,
		Notes:       deref(m.Notes),
		SupplierID:  deref(m.SupplierID),
		CreatedByID: deref(m.CreatedByID),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
		DeletedAt:   m.DeletedAt,
	}
}

type projectStatusModel struct {
	ID        string     `gorm:"column:id;primaryKey"`
	TenantID  string     `gorm:"column:empresa_id"`
	Name      string     `gorm:"column:nome"`
	Phase     *string    `gorm:"column:fase"`
	Color     *string    `gorm:"column:cor"`
	Order     *int       `gorm:"column:ordem"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at"`
}

func (projectStatusModel) TableName() string {
	return "status_projetos"
}

func projectStatusModelFromEntity(item entities.ProjectStatus) projectStatusModel {
	return projectStatusModel{
		ID:        item.ID,
		TenantID:  item.TenantID,
		Name:      item.Name,
		Phase:     nullable(item.Phase),
		Color:     nullable(item.Color),
		Order:     item.Order,
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt.UTC(),
		DeletedAt: item.DeletedAt,
	}
}

func (m projectStatusModel) toEntity() entities.ProjectStatus {
	return entities.ProjectStatus{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Name:      m.Name,
		Phase:     deref(m.Phase),
		Color:     deref(m.Color),
		Order:     m.Order,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
		DeletedAt: m.DeletedAt,
	}
}

type documentCategoryModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	TenantID    string     `gorm:"column:empresa_id"`
	Name        string     `gorm:"column:nome"`
	Description *string    `gorm:"column:descricao"`
	Color       *string    `gorm:"column:cor"`
	Order       *int       `gorm:"column:ordem"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	DeletedAt   *time.Time `gorm:"column:deleted_at"`
}

func (documentCategoryModel) TableName() string {
	return "categorias_documentos"
}

func documentCategoryModelFromEntity(item entities.DocumentCategory) documentCategoryModel {
	return documentCategoryModel{
		ID:          item.ID,
		TenantID:    item.TenantID,
		Name:        item.Name,
		Description: nullable(item.Description),
		Color:       nullable(item.Color),
		Order:       item.Order,
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
		DeletedAt:   item.DeletedAt,
	}
}

func (m documentCategoryModel) toEntity() entities.DocumentCategory {
	return entities.DocumentCategory{
		ID:          m.ID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		Description: deref(m.Description),
		Color:       deref(m.Color),
		Order:       m.Order,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
		DeletedAt:   m.DeletedAt,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := t.UTC()
	return &value
}
