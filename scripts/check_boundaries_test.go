package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeGoFile(t *testing.T, root string, rel string, imports ...string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	src := "package x\n\nimport (\n"
	for _, imp := range imports {
		src += "\t_ \"" + imp + "\"\n"
	}
	src += ")\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestRepositoryContextsRespectBoundaries(t *testing.T) {
	violations, err := collectViolations(filepath.Join("..", "contexts"))
	if err != nil {
		t.Fatalf("collect violations: %v", err)
	}
	for _, v := range violations {
		t.Errorf("%s:%d imports %q (%s)", v.File, v.Line, v.Import, v.Rule)
	}
}

func TestCollectViolationsFlagsLayerBreaches(t *testing.T) {
	root := t.TempDir()
	writeGoFile(t, root, "polls/tally/domain/entities/poll.go",
		"time",
		"github.com/google/uuid",
	)
	writeGoFile(t, root, "polls/tally/application/commands/cast.go",
		"context",
		"beastypage/contexts/polls/tally/ports",
		"beastypage/contexts/polls/tally/adapters/memory",
		"beastypage/internal/platform/metrics",
	)
	writeGoFile(t, root, "polls/tally/adapters/postgres/repo.go",
		"gorm.io/gorm",
		"beastypage/internal/platform/db",
		"beastypage/contexts/sharing/slug-registry/ports",
	)
	writeGoFile(t, root, "polls/tally/module.go",
		"beastypage/contexts/polls/tally/adapters/memory",
	)

	violations, err := collectViolations(root)
	if err != nil {
		t.Fatalf("collect violations: %v", err)
	}

	want := map[string]string{
		"github.com/google/uuid":                          "domain import is outside explicit allowlist",
		"beastypage/contexts/polls/tally/adapters/memory": "application must not import adapters",
		"beastypage/internal/platform/metrics":            "application must not import runtime infrastructure",
		"beastypage/contexts/sharing/slug-registry/ports": "cross-service imports are forbidden",
	}
	if len(violations) != len(want) {
		t.Fatalf("expected %d violations, got %d: %+v", len(want), len(violations), violations)
	}
	for _, v := range violations {
		rule, ok := want[v.Import]
		if !ok {
			t.Fatalf("unexpected violation %+v", v)
		}
		if v.Rule != rule {
			t.Fatalf("import %q: expected rule %q, got %q", v.Import, rule, v.Rule)
		}
	}
}

func TestIsStdlib(t *testing.T) {
	cases := map[string]bool{
		"context":                    true,
		"encoding/json":              true,
		"github.com/google/uuid":     false,
		"beastypage/internal/shared": false,
		"beastypage":                 false,
	}
	for path, want := range cases {
		if got := isStdlib(path); got != want {
			t.Fatalf("isStdlib(%q) = %v, want %v", path, got, want)
		}
	}
}
