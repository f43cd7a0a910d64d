package memory

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	application "erpinterno/contexts/erp/erp-service/application"
	"erpinterno/contexts/erp/erp-service/domain/entities"
	"erpinterno/internal/shared/query"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing the erp-service ports for local
// runtime and tests. It is not intended as production persistence.
type Store struct {
	mu         sync.RWMutex
	companies  map[string]entities.Company
	clients    map[string]entities.Client
	projects   map[string]entities.Project
	documents  map[string]entities.Document
	budgets    map[string]entities.Budget
	statuses   map[string]entities.ProjectStatus
	categories map[string]entities.DocumentCategory
	now        func() time.Time
	logger     *slog.Logger
}

type Seed struct {
	Companies  []entities.Company
	Clients    []entities.Client
	Projects   []entities.Project
	Documents  []entities.Document
	Budgets    []entities.Budget
	Statuses   []entities.ProjectStatus
	Categories []entities.DocumentCategory
}

func NewStore(seed Seed, logger *slog.Logger) *Store {
	s := &Store{
		companies:  make(map[string]entities.Company, len(seed.Companies)),
		clients:    make(map[string]entities.Client, len(seed.Clients)),
		projects:   make(map[string]entities.Project, len(seed.Projects)),
		documents:  make(map[string]entities.Document, len(seed.Documents)),
		budgets:    make(map[string]entities.Budget, len(seed.Budgets)),
		statuses:   make(map[string]entities.ProjectStatus, len(seed.Statuses)),
		categories: make(map[string]entities.DocumentCategory, len(seed.Categories)),
		now:        func() time.Time { return time.Now().UTC() },
		logger:     application.ResolveLogger(logger),
	}
	for _, item := range seed.Companies {
		s.companies[item.ID] = item
	}
	for _, item := range seed.Clients {
		s.clients[item.ID] = item
	}
	for _, item := range seed.Projects {
		s.projects[item.ID] = cloneProject(item)
	}
	for _, item := range seed.Documents {
		s.documents[item.ID] = cloneDocument(item)
	}
	for _, item := range seed.Budgets {
		s.budgets[item.ID] = item
	}
	for _, item := range seed.Statuses {
		s.statuses[item.ID] = item
	}
	for _, item := range seed.Categories {
		s.categories[item.ID] = item
	}
	s.logger.Debug("memory store seeded",
		"event", "erp_memory_store_seeded",
		"module", application.ModuleName,
		"layer", "adapter",
		"companies", len(s.companies),
		"clients", len(s.clients),
		"projects", len(s.projects),
	)
	return s
}

// SetClock overrides the time source, for tests that need stable ordering.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// accessors maps logical field names to values of T. Values are normalized
// to string, time.Time, float64, int64 or nil.
type accessors[T any] map[string]func(T) any

func (a accessors[T]) matches(item T, clauses []query.Clause) bool {
	for _, clause := range clauses {
		switch clause.Op {
		case query.OpEq:
			if !equalValue(a.value(item, clause.Field), clause.Value) {
				return false
			}
		case query.OpIsNull:
			if a.value(item, clause.Field) != nil {
				return false
			}
		case query.OpContains:
			if !containsFold(a.value(item, clause.Field), clause.Value) {
				return false
			}
		case query.OpAnyContains:
			matched := false
			for _, field := range clause.Fields {
				if containsFold(a.value(item, field), clause.Value) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (a accessors[T]) value(item T, field string) any {
	get, ok := a[field]
	if !ok {
		return nil
	}
	return get(item)
}

// filterSort returns every matching item ordered by sortBy, ties by id.
func filterSort[T any](source map[string]T, fields accessors[T], filter query.Filter, sortBy string, desc bool) ([]T, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	clauses := filter.Clauses()
	items := make([]T, 0)
	for _, item := range source {
		if fields.matches(item, clauses) {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		cmp := compareValues(fields.value(items[i], sortBy), fields.value(items[j], sortBy))
		if cmp == 0 {
			return compareValues(fields.value(items[i], query.FieldID), fields.value(items[j], query.FieldID)) < 0
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return items, nil
}

func paginate[T any](source map[string]T, fields accessors[T], filter query.Filter, page query.Page) ([]T, int, error) {
	items, err := filterSort(source, fields, filter, page.NormalizedSort(), page.SortDesc)
	if err != nil {
		return nil, 0, err
	}
	total := len(items)
	start := page.Offset()
	if start >= total {
		return []T{}, total, nil
	}
	end := total
	if page.Limit > 0 && start+page.Limit < total {
		end = start + page.Limit
	}
	return append([]T(nil), items[start:end]...), total, nil
}

func equalValue(value any, expected any) bool {
	if value == nil {
		return expected == nil
	}
	return toString(value) == toString(expected)
}

func containsFold(value any, term any) bool {
	str, ok := value.(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(str), strings.ToLower(toString(term)))
}

func toString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case time.Time:
		return value.UTC().Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// compareValues puts nil after any value in ascending order.
func compareValues(a any, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	switch left := a.(type) {
	case string:
		return strings.Compare(left, b.(string))
	case time.Time:
		return left.Compare(b.(time.Time))
	case float64:
		right := b.(float64)
		switch {
		case left < right:
			return -1
		case left > right:
			return 1
		}
		return 0
	case int64:
		right := b.(int64)
		switch {
		case left < right:
			return -1
		case left > right:
			return 1
		}
		return 0
	default:
		return 0
	}
}

func optionalString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func optionalTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func optionalInt(n *int) any {
	if n == nil {
		return nil
	}
	return int64(*n)
}
