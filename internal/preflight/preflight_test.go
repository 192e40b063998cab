package preflight_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ghostie/internal/credentials"
	"ghostie/internal/preflight"
	"ghostie/internal/testsupport"
)

type stubAuth struct {
	login string
	err   error
}

func (s stubAuth) CheckAuth(context.Context) (string, error) {
	return s.login, s.err
}

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	if result := preflight.CheckDirectoryAccess("test", dir); !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}

	missing := preflight.CheckDirectoryAccess("test", filepath.Join(dir, "nope"))
	if missing.Passed || !strings.Contains(missing.Detail, "does not exist") {
		t.Fatalf("expected missing dir failure, got %+v", missing)
	}

	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := preflight.CheckDirectoryAccess("test", file); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckBinary(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	ok := preflight.CheckBinary("Present", present, false)
	if !ok.Passed || ok.Detail != present {
		t.Fatalf("expected present binary to pass, got %+v", ok)
	}
	missing := preflight.CheckBinary("Missing", "clearly-not-present-binary", true)
	if missing.Passed || !missing.Optional {
		t.Fatalf("expected optional failure, got %+v", missing)
	}
	if preflight.Failed([]preflight.Result{ok, missing}) {
		t.Fatal("optional failures must not fail the run")
	}
}

func TestCheckToken(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	t.Setenv(credentials.EnvKey, "")

	if result := preflight.CheckToken(cfg); result.Passed {
		t.Fatalf("expected missing token to fail, got %+v", result)
	}

	t.Setenv(credentials.EnvKey, "ghp_env")
	if result := preflight.CheckToken(cfg); !result.Passed || !strings.Contains(result.Detail, credentials.EnvKey) {
		t.Fatalf("expected env token to pass, got %+v", result)
	}

	if err := credentials.Set(cfg, "ghp_file"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if result := preflight.CheckToken(cfg); !result.Passed || result.Detail != cfg.TokenPath() {
		t.Fatalf("expected file token to pass, got %+v", result)
	}

	if err := os.Chmod(cfg.TokenPath(), 0o644); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	if result := preflight.CheckToken(cfg); result.Passed {
		t.Fatalf("expected world-readable token file to fail, got %+v", result)
	}
}

func TestCheckGitHub(t *testing.T) {
	ok := preflight.CheckGitHub(context.Background(), stubAuth{login: "octocat"})
	if !ok.Passed || ok.Detail != "authenticated as octocat" {
		t.Fatalf("unexpected result: %+v", ok)
	}

	failed := preflight.CheckGitHub(context.Background(), stubAuth{err: errors.New("401 Bad credentials")})
	if failed.Passed || !strings.Contains(failed.Detail, "Bad credentials") {
		t.Fatalf("unexpected result: %+v", failed)
	}

	timedOut := preflight.CheckGitHub(context.Background(), stubAuth{err: context.DeadlineExceeded})
	if timedOut.Passed || !strings.Contains(timedOut.Detail, "timed out") {
		t.Fatalf("unexpected result: %+v", timedOut)
	}
}

func TestCheckNtfy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if result := preflight.CheckNtfy(context.Background(), srv.URL+"/ghostie"); !result.Passed {
		t.Fatalf("expected reachable ntfy, got %+v", result)
	}
	if result := preflight.CheckNtfy(context.Background(), "not a url"); result.Passed {
		t.Fatalf("expected invalid topic to fail, got %+v", result)
	}
}

func TestRunAllWithoutToken(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	t.Setenv(credentials.EnvKey, "")

	results := preflight.RunAll(context.Background(), cfg, nil)
	names := make(map[string]preflight.Result, len(results))
	for _, r := range results {
		names[r.Name] = r
	}
	for _, name := range []string{"Config directory", "Runtime directory", "GitHub token", "GitHub API"} {
		if _, ok := names[name]; !ok {
			t.Fatalf("expected %q check, got %+v", name, results)
		}
	}
	if _, ok := names["Desktop notifier"]; ok {
		t.Fatal("expected desktop notifier check skipped when disabled")
	}
	if !names["Config directory"].Passed || !names["Runtime directory"].Passed {
		t.Fatalf("expected directories to pass: %+v", results)
	}
	if !preflight.Failed(results) {
		t.Fatal("expected missing token to fail the run")
	}
}
