// Command check_boundaries walks contexts/ and fails when a package imports
// another service, or when a domain or application package imports outside
// its allowlist.
package main

import (
	"cmp"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

const modulePath = "erpinterno"

var (
	contextsPrefix = modulePath + "/contexts"
	// shared error, tenant, logging and query contracts are open to every layer
	sharedPrefix    = modulePath + "/internal/shared"
	runtimePrefixes = []string{
		modulePath + "/internal/platform",
		modulePath + "/internal/app",
		modulePath + "/cmd",
	}

	// layerAllow lists the service subpackages each guarded layer may import.
	layerAllow = map[string][]string{
		"domain":      {"domain"},
		"application": {"application", "domain", "ports"},
	}
)

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

func (v violation) String() string {
	return fmt.Sprintf("%s:%d imports %q (%s)", v.File, v.Line, v.Import, v.Rule)
}

func main() {
	violations := collectViolations("contexts")
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}
	slices.SortFunc(violations, func(a, b violation) int {
		return cmp.Or(
			strings.Compare(a.File, b.File),
			cmp.Compare(a.Line, b.Line),
			strings.Compare(a.Import, b.Import),
		)
	})
	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Println("-", v)
	}
	os.Exit(1)
}

func collectViolations(root string) []violation {
	var out []violation
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		// <context>/<service>/<layer>/...
		parts := strings.Split(rel, "/")
		if len(parts) < 3 {
			return nil
		}
		service := strings.Join([]string{contextsPrefix, parts[0], parts[1]}, "/")
		out = append(out, checkFile(path, "contexts/"+rel, parts[2], service)...)
		return nil
	})
	return out
}

func checkFile(path string, name string, layer string, service string) []violation {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: name, Line: 1, Rule: "file must parse"}}
	}

	var out []violation
	for _, imp := range file.Imports {
		importPath, _ := strconv.Unquote(imp.Path.Value)
		report := func(rule string) {
			out = append(out, violation{File: name, Line: fset.Position(imp.Pos()).Line, Import: importPath, Rule: rule})
		}

		if hasPrefix(importPath, contextsPrefix) && !hasPrefix(importPath, service) {
			report("cross-module imports are forbidden")
		}
		allowed, guarded := layerAllow[layer]
		if !guarded {
			continue
		}
		if strings.Contains(importPath, "/adapters/") {
			report(layer + " must not import adapters")
		}
		if slices.ContainsFunc(runtimePrefixes, func(p string) bool { return hasPrefix(importPath, p) }) {
			report(layer + " must not import runtime infrastructure")
		}
		if !isStdlib(importPath) && !hasPrefix(importPath, sharedPrefix) &&
			!slices.ContainsFunc(allowed, func(sub string) bool { return hasPrefix(importPath, service+"/"+sub) }) {
			report(layer + " import is outside explicit allowlist")
		}
	}
	return out
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// isStdlib treats any path whose first element has no dot as standard library.
func isStdlib(importPath string) bool {
	if hasPrefix(importPath, modulePath) {
		return false
	}
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}
