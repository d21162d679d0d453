package cmd

import (
	"errors"
	"testing"

	"github.com/fn-gate/fngate/internal/config"
	"github.com/fn-gate/fngate/pkg/handler"
)

func TestHandlerModules_AllResolve(t *testing.T) {
	t.Parallel()

	modules := handlerModules()
	for _, name := range []string{"check", "identify-duplicates"} {
		if _, ok := modules[name]; !ok {
			t.Errorf("handlerModules() is missing %q", name)
		}
	}

	routes, err := resolveRoutes(modules)
	if err != nil {
		t.Fatalf("resolveRoutes error: %v", err)
	}
	if len(routes) != len(modules) {
		t.Errorf("routes = %d, want %d", len(routes), len(modules))
	}
	for _, rt := range routes {
		if rt.Invoke == nil {
			t.Errorf("route %q has a nil handler", rt.Name)
		}
	}
}

func TestResolveRoutes_FailsFast(t *testing.T) {
	t.Parallel()

	_, err := resolveRoutes(map[string]any{"broken": struct{}{}})
	if !errors.Is(err, handler.ErrNotCallable) {
		t.Errorf("error = %v, want ErrNotCallable", err)
	}
}

func TestCreateAuditStore(t *testing.T) {
	t.Parallel()

	var cfg config.Config
	cfg.SetDefaults()

	store, err := createAuditStore(&cfg)
	if err != nil {
		t.Fatalf("createAuditStore(stdout) error: %v", err)
	}
	_ = store.Close()

	cfg.Audit.Output = "unknown://x"
	if _, err := createAuditStore(&cfg); err == nil {
		t.Error("createAuditStore succeeded with an unknown scheme")
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"", "INFO"},
		{"bogus", "INFO"},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in).String(); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
