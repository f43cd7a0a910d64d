package httpadapter

import (
	"time"

	"erpinterno/contexts/erp/erp-service/domain/entities"
	httptransport "erpinterno/contexts/erp/erp-service/transport/http"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	value := formatTime(*t)
	return &value
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseOptionalTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil
	}
	return &t
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func mapCompany(c entities.Company) httptransport.CompanyDTO {
	return httptransport.CompanyDTO{
		ID:           c.ID,
		RazaoSocial:  c.LegalName,
		NomeFantasia: c.TradeName,
		CNPJ:         c.CNPJ,
		Endereco:     c.Address,
		Telefone:     c.Phone,
		Email:        c.Email,
		Website:      c.Website,
		Logo:         c.Logo,
		Timezone:     c.Timezone,
		Moeda:        c.Currency,
		FormatoData:  c.DateFormat,
		CreatedAt:    formatTime(c.CreatedAt),
		UpdatedAt:    formatTime(c.UpdatedAt),
	}
}

func mapClient(c entities.Client) httptransport.ClientDTO {
	return httptransport.ClientDTO{
		ID:             c.ID,
		EmpresaID:      c.TenantID,
		RazaoSocial:    c.LegalName,
		NomeFantasia:   c.TradeName,
		CNPJ:           c.CNPJ,
		NormalizedCNPJ: c.NormalizedCNPJ,
		Segmento:       c.Segment,
		Logradouro:     c.Street,
		Numero:         c.Number,
		Complemento:    c.Complement,
		Bairro:         c.District,
		Cidade:         c.City,
		Estado:         c.State,
		CEP:            c.PostalCode,
		Telefone:       c.Phone,
		Email:          c.Email,
		Website:        c.Website,
		CreatedAt:      formatTime(c.CreatedAt),
		UpdatedAt:      formatTime(c.UpdatedAt),
	}
}

func mapProject(p entities.Project) httptransport.ProjectDTO {
	return httptransport.ProjectDTO{
		ID:            p.ID,
		EmpresaID:     p.TenantID,
		ClienteID:     p.ClientID,
		Assunto:       p.Subject,
		Descricao:     p.Description,
		StatusID:      optionalString(p.StatusID),
		DataEntrada:   formatTime(p.EntryDate),
		DataInicio:    formatOptionalTime(p.StartDate),
		DataFim:       formatOptionalTime(p.EndDate),
		Expectativa:   p.Expectation,
		Objetivo:      p.Objective,
		Observacoes:   p.Notes,
		ValorEstimado: p.EstimatedValue,
		Prioridade:    string(p.Priority),
		Tags:          nonNilTags(p.Tags),
		GerenteID:     p.ManagerID,
		VendedorID:    p.SalespersonID,
		CreatedAt:     formatTime(p.CreatedAt),
		UpdatedAt:     formatTime(p.UpdatedAt),
	}
}

func mapProjectListing(p entities.ProjectListing) httptransport.ProjectDTO {
	dto := mapProject(p.Project)
	dto.Cliente = clientSummary(p.Client)
	dto.Status = statusSummary(p.Status)
	dto.Count = &httptransport.ProjectCountDTO{
		Documentos: p.Counts.Documents,
		Orcamentos: p.Counts.Budgets,
	}
	return dto
}

func clientSummary(c *entities.Client) *httptransport.ClientSummaryDTO {
	if c == nil {
		return nil
	}
	return &httptransport.ClientSummaryDTO{
		ID:           c.ID,
		RazaoSocial:  c.LegalName,
		NomeFantasia: optionalString(c.TradeName),
		Segmento:     optionalString(c.Segment),
	}
}

func statusSummary(s *entities.ProjectStatus) *httptransport.StatusSummaryDTO {
	if s == nil {
		return nil
	}
	return &httptransport.StatusSummaryDTO{
		ID:   s.ID,
		Nome: s.Name,
		Fase: optionalString(s.Phase),
		Cor:  optionalString(s.Color),
	}
}

func mapDocument(d entities.Document) httptransport.DocumentDTO {
	return httptransport.DocumentDTO{
		ID:              d.ID,
		EmpresaID:       d.TenantID,
		ProjetoID:       optionalString(d.ProjectID),
		ClienteID:       optionalString(d.ClientID),
		CategoriaID:     optionalString(d.CategoryID),
		Titulo:          d.Title,
		Descricao:       d.Description,
		StorageKey:      d.StorageKey,
		ContentType:     d.ContentType,
		SizeBytes:       d.SizeBytes,
		Checksum:        d.Checksum,
		StorageProvider: d.StorageProvider,
		Metadata:        d.Metadata,
		Tags:            nonNilTags(d.Tags),
		CreatedByID:     d.CreatedByID,
		UpdatedByID:     d.UpdatedByID,
		CreatedAt:       formatTime(d.CreatedAt),
		UpdatedAt:       formatTime(d.UpdatedAt),
	}
}

func mapBudget(b entities.Budget) httptransport.BudgetDTO {
	return httptransport.BudgetDTO{
		ID:           b.ID,
		EmpresaID:    b.TenantID,
		ProjetoID:    b.ProjectID,
		Numero:       b.Number,
		Titulo:       b.Title,
		Descricao:    b.Description,
		Status:       string(b.Status),
		DataValidade: formatTime(b.ValidUntil),
		Moeda:        b.Currency,
		ValorTotal:   b.TotalValue,
		Desconto:     b.Discount,
		ValorFinal:   b.FinalValue,
		Observacoes:  b.Notes,
		FornecedorID: b.SupplierID,
		CreatedByID:  b.CreatedByID,
		CreatedAt:    formatTime(b.CreatedAt),
		UpdatedAt:    formatTime(b.UpdatedAt),
	}
}

func mapBudgetListing(b entities.BudgetListing) httptransport.BudgetDTO {
	dto := mapBudget(b.Budget)
	if p := b.Project; p != nil {
		dto.Projeto = &httptransport.BudgetProjectDTO{
			ID:          p.ID,
			Assunto:     p.Subject,
			Prioridade:  string(p.Priority),
			DataEntrada: formatTime(p.EntryDate),
			Cliente:     clientSummary(p.Client),
			Status:      statusSummary(p.Status),
		}
	}
	return dto
}

func mapProjectStatus(s entities.ProjectStatus) httptransport.ProjectStatusDTO {
	return httptransport.ProjectStatusDTO{
		ID:        s.ID,
		EmpresaID: s.TenantID,
		Nome:      s.Name,
		Fase:      s.Phase,
		Cor:       s.Color,
		Ordem:     s.Order,
		CreatedAt: formatTime(s.CreatedAt),
		UpdatedAt: formatTime(s.UpdatedAt),
	}
}

func mapDocumentCategory(c entities.DocumentCategory) httptransport.DocumentCategoryDTO {
	return httptransport.DocumentCategoryDTO{
		ID:        c.ID,
		EmpresaID: c.TenantID,
		Nome:      c.Name,
		Descricao: c.Description,
		Cor:       c.Color,
		Ordem:     c.Order,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func mapAll[T any, D any](items []T, mapper func(T) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, mapper(item))
	}
	return out
}
