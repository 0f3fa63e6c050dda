package architecture_test

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

type importViolation struct {
	file string
	imp  string
	rule string
}

// walkImports calls check for every import of every .go file under internal/.
func walkImports(t *testing.T, check func(rel, modulePath, imp string) (string, bool)) []importViolation {
	t.Helper()

	start, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	root, err := findModuleRoot(start)
	if err != nil {
		t.Fatalf("find module root: %v", err)
	}

	modulePath, err := readModulePath(filepath.Join(root, "go.mod"))
	if err != nil {
		t.Fatalf("read module path: %v", err)
	}

	internalDir := filepath.Join(root, "internal")
	fset := token.NewFileSet()

	var violations []importViolation

	walkErr := filepath.WalkDir(internalDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", "vendor", "node_modules", ".gocache":
				return filepath.SkipDir
			default:
				return nil
			}
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, spec := range f.Imports {
			if spec == nil || spec.Path == nil {
				continue
			}
			imp, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}
			if rule, bad := check(rel, modulePath, imp); bad {
				violations = append(violations, importViolation{file: rel, imp: imp, rule: rule})
			}
		}
		return nil
	})
	if walkErr != nil {
		t.Fatalf("walk internal/: %v", walkErr)
	}
	return violations
}

func reportViolations(t *testing.T, title string, violations []importViolation) {
	t.Helper()
	if len(violations) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString(title + ":\n")
	for _, v := range violations {
		fmt.Fprintf(&b, "- %s imports %q (disallowed: %q)\n", v.file, v.imp, v.rule)
	}
	t.Fatal(b.String())
}

func TestImportBoundaries(t *testing.T) {
	violations := walkImports(t, func(rel, modulePath, imp string) (string, bool) {
		for _, bad := range disallowedImports(modulePath, layerFor(rel)) {
			if imp == strings.TrimSuffix(bad, "/") || strings.HasPrefix(imp, bad) {
				return bad, true
			}
		}
		return "", false
	})
	reportViolations(t, "import boundary violations", violations)
}

// Vendor clients stay behind the adapter that owns them.
func TestVendorClientsStayInAdapters(t *testing.T) {
	owners := map[string]string{
		"github.com/redis/go-redis/":  "internal/platform/gateway/",
		"github.com/go-resty/resty/":  "internal/platform/gateway/",
		"github.com/sony/gobreaker/":  "internal/platform/gateway/",
		"github.com/golang-jwt/jwt/":  "internal/platform/gateway/",
		"gorm.io/driver/":             "internal/data/",
		"github.com/gin-contrib/cors": "internal/http/",
	}
	violations := walkImports(t, func(rel, _ string, imp string) (string, bool) {
		for prefix, owner := range owners {
			if strings.HasPrefix(imp, prefix) && !strings.HasPrefix(rel, owner) {
				return owner, true
			}
		}
		return "", false
	})
	reportViolations(t, "vendor clients imported outside their adapter", violations)
}

func layerFor(rel string) string {
	switch {
	case strings.HasPrefix(rel, "internal/domain/"):
		return "domain"
	case strings.HasPrefix(rel, "internal/platform/"):
		return "platform"
	case strings.HasPrefix(rel, "internal/data/"):
		return "data"
	case strings.HasPrefix(rel, "internal/services/"):
		return "services"
	case strings.HasPrefix(rel, "internal/http/") && strings.HasSuffix(rel, "_test.go"):
		return "http_test"
	case strings.HasPrefix(rel, "internal/http/"):
		return "http"
	default:
		return ""
	}
}

func disallowedImports(modulePath string, layer string) []string {
	switch layer {
	case "domain":
		return []string{
			modulePath + "/internal/platform/",
			modulePath + "/internal/data/",
			modulePath + "/internal/services/",
			modulePath + "/internal/http/",
			modulePath + "/internal/app/",
		}
	case "platform":
		return []string{
			modulePath + "/internal/data/",
			modulePath + "/internal/services/",
			modulePath + "/internal/http/",
			modulePath + "/internal/app/",
		}
	case "data":
		return []string{
			modulePath + "/internal/services/",
			modulePath + "/internal/http/",
			modulePath + "/internal/app/",
		}
	case "services":
		return []string{
			modulePath + "/internal/http/",
			modulePath + "/internal/app/",
			"github.com/gin-gonic/",
		}
	case "http":
		return []string{
			modulePath + "/internal/data/db/",
			modulePath + "/internal/data/repos/",
			modulePath + "/internal/app/",
		}
	case "http_test":
		return []string{
			modulePath + "/internal/app/",
		}
	default:
		return nil
	}
}

func findModuleRoot(start string) (string, error) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found from %s", start)
		}
		dir = parent
	}
}

func readModulePath(goModPath string) (string, error) {
	f, err := os.Open(goModPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if !strings.HasPrefix(line, "module ") {
			continue
		}
		mp := strings.TrimSpace(strings.TrimPrefix(line, "module "))
		if mp == "" {
			return "", fmt.Errorf("empty module path in %s", goModPath)
		}
		return mp, nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("module path not found in %s", goModPath)
}
