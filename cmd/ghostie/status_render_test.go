package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"ghostie/internal/daemon"
	"ghostie/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("State", statusError, "absent", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "State:", "[ERROR] absent")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("State", statusOK, "running", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestResultKind(t *testing.T) {
	cases := []struct {
		result preflight.Result
		want   statusKind
	}{
		{preflight.Result{Passed: true}, statusOK},
		{preflight.Result{Optional: true}, statusWarn},
		{preflight.Result{}, statusError},
	}
	for _, tc := range cases {
		if got := resultKind(tc.result); got != tc.want {
			t.Fatalf("resultKind(%+v) = %v, want %v", tc.result, got, tc.want)
		}
	}
}

func TestStateKind(t *testing.T) {
	if stateKind(daemon.StateLive) != statusOK || stateKind(daemon.StateStale) != statusWarn || stateKind(daemon.StateAbsent) != statusInfo {
		t.Fatal("unexpected state to status mapping")
	}
}

func TestShouldColorizeIgnoresBuffers(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("expected buffers never to be colorized")
	}
}
