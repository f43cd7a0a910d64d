package validation

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"erpinterno/internal/shared/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleAddress struct {
	Cidade string `json:"cidade" validate:"required"`
	Estado string `json:"estado" validate:"required,len=2"`
}

type sampleRequest struct {
	Nome     string        `json:"nome" validate:"required"`
	CNPJ     string        `json:"cnpj" validate:"required,cnpj"`
	Cep      string        `json:"cep" validate:"omitempty,cep"`
	Cor      *string       `json:"cor" validate:"omitempty,color6"`
	Email    *string       `json:"email" validate:"omitempty,email"`
	Data     string        `json:"dataEntrada" validate:"required,isodatetime"`
	Valor    *float64      `json:"valor" validate:"omitempty,gt=0"`
	Tags     []string      `json:"tags" validate:"omitempty,dive,required"`
	Endereco sampleAddress `json:"endereco"`
}

func validRequest() sampleRequest {
	return sampleRequest{
		Nome:     "Acme",
		CNPJ:     "12345678000190",
		Data:     "2026-01-15T10:00:00Z",
		Endereco: sampleAddress{Cidade: "São Paulo", Estado: "SP"},
	}
}

func TestStructAcceptsValidPayload(t *testing.T) {
	assert.NoError(t, New().Struct(validRequest()))
}

func TestStructReportsFieldPaths(t *testing.T) {
	req := validRequest()
	req.Nome = ""
	req.CNPJ = "123"
	bad := "red"
	req.Cor = &bad
	req.Tags = []string{"ok", ""}
	req.Endereco.Estado = "SPX"
	req.Data = "15/01/2026"

	err := New().Struct(req)
	fe, ok := AsFieldErrors(err)
	require.True(t, ok, "got %v", err)

	assert.Equal(t, []string{"Campo obrigatório"}, fe["nome"])
	assert.Equal(t, []string{"CNPJ deve ter 14 dígitos"}, fe["cnpj"])
	assert.Equal(t, []string{"Cor deve estar no formato #RRGGBB"}, fe["cor"])
	assert.Equal(t, []string{"Campo obrigatório"}, fe["tags.1"])
	assert.Equal(t, []string{"Deve ter exatamente 2 caracteres"}, fe["endereco.estado"])
	assert.Equal(t, []string{"Data inválida"}, fe["dataEntrada"])
}

func TestColorIsCaseInsensitive(t *testing.T) {
	req := validRequest()
	lower := "#a1b2c3"
	req.Cor = &lower
	assert.NoError(t, New().Struct(req))
}

func TestPositiveNumber(t *testing.T) {
	req := validRequest()
	zero := 0.0
	req.Valor = &zero
	fe, ok := AsFieldErrors(New().Struct(req))
	require.True(t, ok)
	assert.Equal(t, []string{"Deve ser positivo"}, fe["valor"])
}

func TestVarAccumulatesMessages(t *testing.T) {
	errs := FieldErrors{}
	v := New()
	v.Var("clienteId", "nope", "omitempty,uuid", errs)
	v.Var("clienteId", "also-nope", "omitempty,uuid", errs)
	v.Var("statusId", "", "omitempty,uuid", errs)

	assert.Equal(t, []string{"ID inválido", "ID inválido"}, errs["clienteId"])
	_, present := errs["statusId"]
	assert.False(t, present)
}

func TestDecodeJSON(t *testing.T) {
	var dst sampleRequest

	err := DecodeJSON(strings.NewReader(`{"nome":`), &dst)
	fe, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"JSON inválido"}, fe["body"])

	err = DecodeJSON(strings.NewReader(`{"nome": 42}`), &dst)
	fe, ok = AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Tipo inválido: esperado string"}, fe["nome"])

	err = DecodeJSON(strings.NewReader(``), &dst)
	fe, ok = AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fe, "body")

	require.NoError(t, DecodeJSON(strings.NewReader(`{"nome":"x"}`), &dst))
	assert.Equal(t, "x", dst.Nome)
}

func TestDecodeJSONReportsOversizedBody(t *testing.T) {
	var dst sampleRequest
	body := `{"nome":"` + strings.Repeat("a", 64) + `"}`
	capped := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(strings.NewReader(body)), 16)

	fe, ok := AsFieldErrors(DecodeJSON(capped, &dst))
	require.True(t, ok)
	assert.Equal(t, []string{"Corpo da requisição excede 16 bytes"}, fe["body"])
}

func TestParsePageDefaults(t *testing.T) {
	errs := FieldErrors{}
	page := ParsePage(url.Values{}, []string{"createdAt"}, errs)
	assert.Empty(t, errs)
	assert.Equal(t, query.Page{Number: 1, Limit: 20, SortDesc: true}, page)
}

func TestParsePageRejectsOutOfRange(t *testing.T) {
	errs := FieldErrors{}
	ParsePage(url.Values{
		"page":      {"0"},
		"limit":     {"101"},
		"sortBy":    {"password"},
		"sortOrder": {"up"},
	}, []string{"createdAt", "nome"}, errs)

	assert.Contains(t, errs, "page")
	assert.Contains(t, errs, "limit")
	assert.Contains(t, errs, "sortBy")
	assert.Contains(t, errs, "sortOrder")
}

func TestParsePageAcceptsBounds(t *testing.T) {
	errs := FieldErrors{}
	page := ParsePage(url.Values{"page": {"3"}, "limit": {"100"}, "sortBy": {"nome"}, "sortOrder": {"asc"}}, []string{"nome"}, errs)
	assert.Empty(t, errs)
	assert.Equal(t, query.Page{Number: 3, Limit: 100, SortBy: "nome", SortDesc: false}, page)
}

func TestFieldErrorsErr(t *testing.T) {
	assert.NoError(t, FieldErrors{}.Err())
	errs := FieldErrors{}
	errs.Add("a", "x")
	assert.Error(t, errs.Err())
	assert.Equal(t, "validation failed: a: x", errs.Error())
}
