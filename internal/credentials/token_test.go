package credentials_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ghostie/internal/credentials"
	"ghostie/internal/testsupport"
)

func TestSetThenGetRoundTrip(t *testing.T) {
	t.Setenv(credentials.EnvKey, "")
	cfg := testsupport.NewConfig(t)

	if credentials.IsSet(cfg) {
		t.Fatal("expected token to be unset initially")
	}
	if err := credentials.Set(cfg, "  ghp_secret  "); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	token, err := credentials.Get(cfg)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if token != "ghp_secret" {
		t.Fatalf("unexpected token: %q", token)
	}
	if !credentials.IsSet(cfg) {
		t.Fatal("expected IsSet after Set")
	}

	info, err := os.Stat(cfg.TokenPath())
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 token file, got %o", perm)
	}
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		t.Fatalf("read token file: %v", err)
	}
	if !strings.HasPrefix(string(data), `GITHUB_TOKEN="ghp_secret"`) {
		t.Fatalf("unexpected token file content: %q", data)
	}
}

func TestGetFallsBackToEnvironment(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	t.Setenv(credentials.EnvKey, "from-env")

	token, err := credentials.Get(cfg)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if token != "from-env" {
		t.Fatalf("expected env token, got %q", token)
	}

	if err := credentials.Set(cfg, "from-file"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	token, err = credentials.Get(cfg)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if token != "from-file" {
		t.Fatalf("expected file to win over env, got %q", token)
	}
}

func TestGetReportsMissingToken(t *testing.T) {
	t.Setenv(credentials.EnvKey, "")
	cfg := testsupport.NewConfig(t)

	if _, err := credentials.Get(cfg); !errors.Is(err, credentials.ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
	if err := credentials.Set(cfg, "   "); err == nil {
		t.Fatal("expected empty token to be rejected")
	}
}

func TestGetParsesDotenvForms(t *testing.T) {
	t.Setenv(credentials.EnvKey, "")

	tests := []struct {
		name    string
		content string
	}{
		{name: "inline comment", content: "GITHUB_TOKEN=abc # rotated 2026-10\n"},
		{name: "export prefix", content: "export GITHUB_TOKEN=abc\n"},
		{name: "quoted", content: "# personal token\nGITHUB_TOKEN='abc'\n"},
		{name: "other keys", content: "OTHER=zzz\nGITHUB_TOKEN=\"abc\"\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testsupport.NewConfig(t)
			if err := os.MkdirAll(filepath.Dir(cfg.TokenPath()), 0o755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			if err := os.WriteFile(cfg.TokenPath(), []byte(tc.content), 0o600); err != nil {
				t.Fatalf("write token file: %v", err)
			}
			token, err := credentials.Get(cfg)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if token != "abc" {
				t.Fatalf("expected token abc, got %q", token)
			}
		})
	}
}
