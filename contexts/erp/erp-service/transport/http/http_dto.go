package http

type CreateCompanyRequest struct {
	RazaoSocial  string `json:"razaoSocial" validate:"required"`
	NomeFantasia string `json:"nomeFantasia" validate:"required"`
	CNPJ         string `json:"cnpj" validate:"required,cnpj"`
	Endereco     string `json:"endereco" validate:"required"`
	Telefone     string `json:"telefone,omitempty"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Website      string `json:"website,omitempty" validate:"omitempty,url"`
	Logo         string `json:"logo,omitempty"`
	Timezone     string `json:"timezone,omitempty"`
	Moeda        string `json:"moeda,omitempty"`
	FormatoData  string `json:"formatoData,omitempty"`
}

type CompanyDTO struct {
	ID           string `json:"id"`
	RazaoSocial  string `json:"razaoSocial"`
	NomeFantasia string `json:"nomeFantasia"`
	CNPJ         string `json:"cnpj"`
	Endereco     string `json:"endereco"`
	Telefone     string `json:"telefone,omitempty"`
	Email        string `json:"email,omitempty"`
	Website      string `json:"website,omitempty"`
	Logo         string `json:"logo,omitempty"`
	Timezone     string `json:"timezone"`
	Moeda        string `json:"moeda"`
	FormatoData  string `json:"formatoData"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

type CreateClientRequest struct {
	RazaoSocial  string `json:"razaoSocial" validate:"required"`
	NomeFantasia string `json:"nomeFantasia,omitempty"`
	CNPJ         string `json:"cnpj" validate:"required,cnpj"`
	Segmento     string `json:"segmento,omitempty"`
	Logradouro   string `json:"logradouro" validate:"required"`
	Numero       string `json:"numero" validate:"required"`
	Complemento  string `json:"complemento,omitempty"`
	Bairro       string `json:"bairro" validate:"required"`
	Cidade       string `json:"cidade" validate:"required"`
	Estado       string `json:"estado" validate:"required,len=2"`
	CEP          string `json:"cep" validate:"required,cep"`
	Telefone     string `json:"telefone,omitempty"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Website      string `json:"website,omitempty" validate:"omitempty,url"`
}

type ClientDTO struct {
	ID             string `json:"id"`
	EmpresaID      string `json:"empresaId"`
	RazaoSocial    string `json:"razaoSocial"`
	NomeFantasia   string `json:"nomeFantasia,omitempty"`
	CNPJ           string `json:"cnpj"`
	NormalizedCNPJ string `json:"normalizedCnpj"`
	Segmento       string `json:"segmento,omitempty"`
	Logradouro     string `json:"logradouro"`
	Numero         string `json:"numero"`
	Complemento    string `json:"complemento,omitempty"`
	Bairro         string `json:"bairro"`
	Cidade         string `json:"cidade"`
	Estado         string `json:"estado"`
	CEP            string `json:"cep"`
	Telefone       string `json:"telefone,omitempty"`
	Email          string `json:"email,omitempty"`
	Website        string `json:"website,omitempty"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type CreateProjectRequest struct {
	ClienteID     string   `json:"clienteId" validate:"required,uuid"`
	Assunto       string   `json:"assunto" validate:"required"`
	Descricao     string   `json:"descricao,omitempty"`
	StatusID      string   `json:"statusId,omitempty" validate:"omitempty,uuid"`
	DataEntrada   string   `json:"dataEntrada" validate:"required,isodatetime"`
	DataInicio    string   `json:"dataInicio,omitempty" validate:"omitempty,isodatetime"`
	DataFim       string   `json:"dataFim,omitempty" validate:"omitempty,isodatetime"`
	Expectativa   string   `json:"expectativa,omitempty"`
	Objetivo      string   `json:"objetivo,omitempty"`
	Observacoes   string   `json:"observacoes,omitempty"`
	ValorEstimado *float64 `json:"valorEstimado,omitempty" validate:"omitempty,gt=0"`
	Prioridade    string   `json:"prioridade,omitempty" validate:"omitempty,oneof=BAIXA MEDIA ALTA URGENTE"`
	Tags          []string `json:"tags,omitempty" validate:"omitempty,dive,required"`
	GerenteID     string   `json:"gerenteId,omitempty" validate:"omitempty,uuid"`
	VendedorID    string   `json:"vendedorId,omitempty" validate:"omitempty,uuid"`
}

type ProjectDTO struct {
	ID            string   `json:"id"`
	EmpresaID     string   `json:"empresaId"`
	ClienteID     string   `json:"clienteId"`
	Assunto       string   `json:"assunto"`
	Descricao     string   `json:"descricao,omitempty"`
	StatusID      *string  `json:"statusId"`
	DataEntrada   string   `json:"dataEntrada"`
	DataInicio    *string  `json:"dataInicio"`
	DataFim       *string  `json:"dataFim"`
	Expectativa   string   `json:"expectativa,omitempty"`
	Objetivo      string   `json:"objetivo,omitempty"`
	Observacoes   string   `json:"observacoes,omitempty"`
	ValorEstimado *float64 `json:"valorEstimado"`
	Prioridade    string   `json:"prioridade"`
	Tags          []string `json:"tags"`
	GerenteID     string   `json:"gerenteId,omitempty"`
	VendedorID    string   `json:"vendedorId,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`

	// Set on list rows only.
	Cliente *ClientSummaryDTO `json:"cliente,omitempty"`
	Status  *StatusSummaryDTO `json:"status,omitempty"`
	Count   *ProjectCountDTO  `json:"_count,omitempty"`
}

type ClientSummaryDTO struct {
	ID           string  `json:"id"`
	RazaoSocial  string  `json:"razaoSocial"`
	NomeFantasia *string `json:"nomeFantasia"`
	Segmento     *string `json:"segmento"`
}

type StatusSummaryDTO struct {
	ID   string  `json:"id"`
	Nome string  `json:"nome"`
	Fase *string `json:"fase"`
	Cor  *string `json:"cor"`
}

type ProjectCountDTO struct {
	Documentos int `json:"documentos"`
	Orcamentos int `json:"orcamentos"`
}

type CreateDocumentRequest struct {
	ProjetoID       string         `json:"projetoId,omitempty" validate:"omitempty,uuid"`
	ClienteID       string         `json:"clienteId,omitempty" validate:"omitempty,uuid"`
	CategoriaID     string         `json:"categoriaId,omitempty" validate:"omitempty,uuid"`
	Titulo          string         `json:"titulo" validate:"required"`
	Descricao       string         `json:"descricao,omitempty"`
	StorageKey      string         `json:"storageKey" validate:"required"`
	ContentType     string         `json:"contentType" validate:"required"`
	SizeBytes       int64          `json:"sizeBytes" validate:"required,gt=0"`
	Checksum        string         `json:"checksum,omitempty"`
	StorageProvider string         `json:"storageProvider,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	Tags            []string       `json:"tags,omitempty" validate:"omitempty,dive,required"`
}

type DocumentDTO struct {
	ID              string         `json:"id"`
	EmpresaID       string         `json:"empresaId"`
	ProjetoID       *string        `json:"projetoId"`
	ClienteID       *string        `json:"clienteId"`
	CategoriaID     *string        `json:"categoriaId"`
	Titulo          string         `json:"titulo"`
	Descricao       string         `json:"descricao,omitempty"`
	StorageKey      string         `json:"storageKey"`
	ContentType     string         `json:"contentType"`
	SizeBytes       int64          `json:"sizeBytes"`
	Checksum        string         `json:"checksum,omitempty"`
	StorageProvider string         `json:"storageProvider,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	Tags            []string       `json:"tags"`
	CreatedByID     string         `json:"createdById,omitempty"`
	UpdatedByID     string         `json:"updatedById,omitempty"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
}

type CreateBudgetRequest struct {
	ProjetoID    string   `json:"projetoId" validate:"required,uuid"`
	Numero       string   `json:"numero" validate:"required"`
	Titulo       string   `json:"titulo" validate:"required"`
	Descricao    string   `json:"descricao,omitempty"`
	Status       string   `json:"status,omitempty" validate:"omitempty,oneof=RASCUNHO ENVIADO APROVADO REJEITADO EXPIRADO"`
	DataValidade string   `json:"dataValidade" validate:"required,isodatetime"`
	Moeda        string   `json:"moeda,omitempty"`
	ValorTotal   float64  `json:"valorTotal" validate:"gte=0"`
	Desconto     *float64 `json:"desconto,omitempty" validate:"omitempty,gte=0"`
	Observacoes  string   `json:"observacoes,omitempty"`
	FornecedorID string   `json:"fornecedorId,omitempty" validate:"omitempty,uuid"`
}

type BudgetDTO struct {
	ID           string   `json:"id"`
	EmpresaID    string   `json:"empresaId"`
	ProjetoID    string   `json:"projetoId"`
	Numero       string   `json:"numero"`
	Titulo       string   `json:"titulo"`
	Descricao    string   `json:"descricao,omitempty"`
	Status       string   `json:"status"`
	DataValidade string   `json:"dataValidade"`
	Moeda        string   `json:"moeda"`
	ValorTotal   float64  `json:"valorTotal"`
	Desconto     *float64 `json:"desconto"`
	ValorFinal   float64  `json:"valorFinal"`
	Observacoes  string   `json:"observacoes,omitempty"`
	FornecedorID string   `json:"fornecedorId,omitempty"`
	CreatedByID  string   `json:"createdById,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`

	// Set on list rows only.
	Projeto *BudgetProjectDTO `json:"projeto,omitempty"`
}

type BudgetProjectDTO struct {
	ID          string            `json:"id"`
	Assunto     string            `json:"assunto"`
	Prioridade  string            `json:"prioridade"`
	DataEntrada string            `json:"dataEntrada"`
	Cliente     *ClientSummaryDTO `json:"cliente"`
	Status      *StatusSummaryDTO `json:"status"`
}

type CreateProjectStatusRequest struct {
	Nome  string `json:"nome" validate:"required"`
	Fase  string `json:"fase,omitempty"`
	Cor   string `json:"cor,omitempty" validate:"omitempty,color6"`
	Ordem *int   `json:"ordem,omitempty" validate:"omitempty,gte=0"`
}

type ProjectStatusDTO struct {
	ID        string `json:"id"`
	EmpresaID string `json:"empresaId"`
	Nome      string `json:"nome"`
	Fase      string `json:"fase,omitempty"`
	Cor       string `json:"cor,omitempty"`
	Ordem     *int   `json:"ordem"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type CreateDocumentCategoryRequest struct {
	Nome      string `json:"nome" validate:"required"`
	Descricao string `json:"descricao,omitempty"`
	Cor       string `json:"cor,omitempty" validate:"omitempty,color6"`
	Ordem     *int   `json:"ordem,omitempty" validate:"omitempty,gte=0"`
}

type DocumentCategoryDTO struct {
	ID        string `json:"id"`
	EmpresaID string `json:"empresaId"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao,omitempty"`
	Cor       string `json:"cor,omitempty"`
	Ordem     *int   `json:"ordem"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ListResponse is one page; the server moves the counters into the
// envelope's pagination block.
type ListResponse[T any] struct {
	Items []T
	Page  int
	Limit int
	Total int
}

type DashboardResponse struct {
	Overview   DashboardOverview `json:"overview"`
	Projetos   ProjectMetrics    `json:"projetos"`
	Orcamentos BudgetMetrics     `json:"orcamentos"`
	Timestamp  string            `json:"timestamp"`
}

type ProjectMetrics struct {
	PorStatus []ProjectStatusBucket `json:"porStatus"`
}

type BudgetMetrics struct {
	PorStatus []BudgetStatusBucket `json:"porStatus"`
}

type DashboardOverview struct {
	TotalClientes   int `json:"totalClientes"`
	TotalProjetos   int `json:"totalProjetos"`
	TotalDocumentos int `json:"totalDocumentos"`
	TotalOrcamentos int `json:"totalOrcamentos"`
}

type ProjectStatusBucket struct {
	StatusID *string           `json:"statusId"`
	Status   *StatusSummaryDTO `json:"status"`
	Count    int               `json:"count"`
}

type BudgetStatusBucket struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type ProjectKanbanColumn struct {
	StatusID *string           `json:"statusId"`
	Status   *ProjectStatusDTO `json:"status"`
	Projetos []ProjectDTO      `json:"projetos"`
}

type BudgetKanbanColumn struct {
	Status     string      `json:"status"`
	Orcamentos []BudgetDTO `json:"orcamentos"`
	ValorTotal float64     `json:"valorTotal"`
}
