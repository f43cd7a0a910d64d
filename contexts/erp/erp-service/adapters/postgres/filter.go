package postgresadapter

import (
	"fmt"

	"erpinterno/contexts/erp/erp-service/ports"
	"erpinterno/internal/shared/query"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// columns maps logical field names to SQL columns of one table. Relation
// fields map to correlated subqueries on the owning table.
type columns map[string]string

var baseColumns = columns{
	query.FieldID:        "id",
	query.FieldTenant:    "empresa_id",
	query.FieldDeletedAt: "deleted_at",
	query.FieldCreatedAt: "created_at",
	ports.FieldUpdatedAt: "updated_at",
}

func withBase(extra columns) columns {
	out := make(columns, len(baseColumns)+len(extra))
	for field, column := range baseColumns {
		out[field] = column
	}
	for field, column := range extra {
		out[field] = column
	}
	return out
}

var (
	companyColumns = withBase(columns{
		// the company row is the tenant
		query.FieldTenant:    "id",
		ports.FieldLegalName: "razao_social",
		ports.FieldTradeName: "nome_fantasia",
	})
	clientColumns = withBase(columns{
		ports.FieldLegalName: "razao_social",
		ports.FieldTradeName: "nome_fantasia",
		ports.FieldSegment:   "segmento",
		ports.FieldCity:      "cidade",
	})
	projectColumns = withBase(columns{
		ports.FieldClientID:      "cliente_id",
		ports.FieldStatusID:      "status_id",
		ports.FieldPriority:      "prioridade",
		ports.FieldSubject:       "assunto",
		ports.FieldEntryDate:     "data_entrada",
		ports.FieldClientSegment: "(SELECT c.segmento FROM clientes c WHERE c.id = projetos.cliente_id)",
	})
	documentColumns = withBase(columns{
		ports.FieldProjectID:  "projeto_id",
		ports.FieldClientID:   "cliente_id",
		ports.FieldCategoryID: "categoria_id",
		ports.FieldTitle:      "titulo",
		ports.FieldSizeBytes:  "size_bytes",
	})
	budgetColumns = withBase(columns{
		ports.FieldProjectID:   "projeto_id",
		ports.FieldStatus:      "status",
		ports.FieldNumber:      "numero",
		ports.FieldTitle:       "titulo",
		ports.FieldDescription: "descricao",
		ports.FieldValidUntil:  "data_validade",
		ports.FieldTotalValue:  "valor_total",

		ports.FieldProjectClientID: "(SELECT p.cliente_id FROM projetos p WHERE p.id = orcamentos.projeto_id)",
		ports.FieldProjectSubject:  "(SELECT p.assunto FROM projetos p WHERE p.id = orcamentos.projeto_id)",
		ports.FieldClientSegment:   "(SELECT c.segmento FROM projetos p JOIN clientes c ON c.id = p.cliente_id WHERE p.id = orcamentos.projeto_id)",
		ports.FieldClientLegalName: "(SELECT c.razao_social FROM projetos p JOIN clientes c ON c.id = p.cliente_id WHERE p.id = orcamentos.projeto_id)",
	})
	statusColumns = withBase(columns{
		ports.FieldName:  "nome",
		ports.FieldPhase: "fase",
		ports.FieldOrder: "ordem",
	})
	categoryColumns = withBase(columns{
		ports.FieldName:        "nome",
		ports.FieldDescription: "descricao",
		ports.FieldOrder:       "ordem",
	})
)

func (c columns) column(field string) (string, error) {
	column, ok := c[field]
	if !ok {
		return "", fmt.Errorf("unsupported field %q", field)
	}
	return column, nil
}

// predicate compiles the filter clauses into one AND-ed squirrel predicate.
func (c columns) predicate(filter query.Filter) (sq.And, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	out := sq.And{}
	for _, clause := range filter.Clauses() {
		switch clause.Op {
		case query.OpEq:
			column, err := c.column(clause.Field)
			if err != nil {
				return nil, err
			}
			out = append(out, sq.Eq{column: clause.Value})
		case query.OpIsNull:
			column, err := c.column(clause.Field)
			if err != nil {
				return nil, err
			}
			out = append(out, sq.Eq{column: nil})
		case query.OpContains:
			expr, err := c.ilike(clause.Field, clause.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, expr)
		case query.OpAnyContains:
			alternatives := sq.Or{}
			for _, field := range clause.Fields {
				expr, err := c.ilike(field, clause.Value)
				if err != nil {
					return nil, err
				}
				alternatives = append(alternatives, expr)
			}
			out = append(out, alternatives)
		default:
			return nil, fmt.Errorf("unsupported operator %s", clause.Op)
		}
	}
	return out, nil
}

func (c columns) ilike(field string, value any) (sq.Sqlizer, error) {
	column, err := c.column(field)
	if err != nil {
		return nil, err
	}
	term, _ := value.(string)
	return sq.Expr(column+" ILIKE ?", "%"+query.EscapeLike(term)+"%"), nil
}

// orderBy sorts by the page field, ties by id.
func (c columns) orderBy(page query.Page) (string, error) {
	column, err := c.column(page.NormalizedSort())
	if err != nil {
		return "", err
	}
	direction := "ASC"
	if page.SortDesc {
		direction = "DESC"
	}
	return column + " " + direction + ", id ASC", nil
}

func (c columns) scope(tx *gorm.DB, filter query.Filter) (*gorm.DB, error) {
	pred, err := c.predicate(filter)
	if err != nil {
		return nil, err
	}
	sql, args, err := pred.ToSql()
	if err != nil {
		return nil, err
	}
	if sql == "" {
		return tx, nil
	}
	return tx.Where(sql, args...), nil
}
