package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	root := filepath.Join("..", "modules")
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		module := moduleName(slash)
		layer := detectLayer(slash)
		if module == "" || layer == "" {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.Contains(importPath, "studylog/internal/modules/") {
				continue
			}
			if violatesLayerRule(module, layer, importPath) {
				t.Fatalf("forbidden import in %s (%s): %s", slash, layer, importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk modules: %v", err)
	}
}

func TestLayerRules(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, imp string
		forbidden          bool
	}{
		{"timer", "adapter/out", "studylog/internal/modules/session/port/in", false},
		{"timer", "adapter/out", "studylog/internal/modules/session/dto", false},
		{"timer", "usecase", "studylog/internal/modules/session/service", true},
		{"stats", "service", "studylog/internal/modules/session/domain", true},
		{"stats", "adapter/in", "studylog/internal/modules/stats/service", true},
		{"session", "usecase", "studylog/internal/modules/session/adapter/out", true},
		{"session", "domain", "studylog/internal/modules/session/port/out", true},
		{"session", "service", "studylog/internal/modules/session/port/out", false},
	}
	for _, tc := range cases {
		if got := violatesLayerRule(tc.module, tc.layer, tc.imp); got != tc.forbidden {
			t.Fatalf("%s/%s importing %s: forbidden=%v, want %v", tc.module, tc.layer, tc.imp, got, tc.forbidden)
		}
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func inLayer(path, layer string) bool {
	return strings.Contains(path, "/"+layer+"/") || strings.HasSuffix(path, "/"+layer)
}

func isPortIn(path string) bool {
	return inLayer(path, "port/in")
}

func isDTO(path string) bool {
	return inLayer(path, "dto")
}

func isInner(path string) bool {
	return inLayer(path, "service") || inLayer(path, "adapter/in") || inLayer(path, "adapter/out") || inLayer(path, "usecase")
}

func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.Contains(importPath, "/internal/modules/"+module+"/")
	if !sameModule {
		if isInner(importPath) || inLayer(importPath, "domain") || inLayer(importPath, "port/out") {
			return true
		}
		return !isPortIn(importPath) && !isDTO(importPath)
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return inLayer(importPath, "adapter/in") || inLayer(importPath, "adapter/out")
	case "service":
		return inLayer(importPath, "adapter/in") || inLayer(importPath, "adapter/out") || inLayer(importPath, "usecase")
	case "domain":
		return !inLayer(importPath, "domain")
	default:
		return false
	}
}
