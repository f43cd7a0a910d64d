package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, root string, rel string, imports ...string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	src := "package x\n\nimport (\n"
	for _, imp := range imports {
		src += "\t\"" + imp + "\"\n"
	}
	src += ")\n"
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestBoundariesAllowSharedContracts(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "erp/erp-service/domain/errors/errors.go", "erpinterno/internal/shared/apperrors")
	writeSource(t, root, "erp/erp-service/application/commands/c.go",
		"context",
		"erpinterno/contexts/erp/erp-service/ports",
		"erpinterno/internal/shared/query",
	)

	if got := collectViolations(root); len(got) != 0 {
		t.Fatalf("expected no violations, got %+v", got)
	}
}

func TestBoundariesRejectInfrastructureAndAdapters(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "erp/erp-service/domain/entities/e.go", "erpinterno/internal/platform/db")
	writeSource(t, root, "erp/erp-service/application/queries/q.go",
		"erpinterno/contexts/erp/erp-service/adapters/memory",
		"gorm.io/gorm",
	)
	writeSource(t, root, "erp/erp-service/adapters/http/h.go", "erpinterno/contexts/billing/invoice-service/ports")

	got := collectViolations(root)
	if len(got) < 4 {
		t.Fatalf("expected at least 4 violations, got %+v", got)
	}
}

func TestBoundariesNameTheBrokenRule(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "erp/erp-service/domain/entities/e.go", "erpinterno/internal/platform/db")
	writeSource(t, root, "erp/erp-service/adapters/http/h.go", "erpinterno/contexts/billing/invoice-service/ports")

	rules := map[string]bool{}
	for _, v := range collectViolations(root) {
		rules[v.Rule] = true
	}
	for _, want := range []string{
		"domain must not import runtime infrastructure",
		"domain import is outside explicit allowlist",
		"cross-module imports are forbidden",
	} {
		if !rules[want] {
			t.Fatalf("expected rule %q, got %v", want, rules)
		}
	}
	if rules["adapters import is outside explicit allowlist"] {
		t.Fatalf("adapters are not allowlisted, got %v", rules)
	}
}
