package ptyio

import (
	"os"
	"os/user"
	"testing"
	"time"
)

func TestResolveShellPrefersConfiguredWhenPresent(t *testing.T) {
	tmp, err := os.CreateTemp("", "ptyio-shell")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer os.Remove(tmp.Name())
	tmp.Close()

	got := resolveShell(tmp.Name())
	if got != tmp.Name() {
		t.Fatalf("resolveShell = %q, want %q", got, tmp.Name())
	}
}

func TestResolveShellFallsBackWhenConfiguredMissing(t *testing.T) {
	got := resolveShell("/no/such/shell/binary")
	if got == "/no/such/shell/binary" {
		t.Fatalf("resolveShell should not return a nonexistent configured path")
	}
	if got == "" {
		t.Fatalf("resolveShell should never return empty")
	}
}

func TestPasswdShellUnknownUserReturnsEmpty(t *testing.T) {
	if got := passwdShell("a-user-that-should-not-exist-anywhere"); got != "" {
		t.Fatalf("passwdShell = %q, want empty for unknown user", got)
	}
}

func TestBuildEnvIncludesCoreVars(t *testing.T) {
	u := &user.User{Username: "tester", HomeDir: "/home/tester", Uid: "1000"}
	env := buildEnv("/bin/bash", u)
	mustContainPrefix(t, env, "SHELL=/bin/bash")
	mustContainPrefix(t, env, "HOME=/home/tester")
	mustContainPrefix(t, env, "USER=tester")
}

func TestHasExitedReflectsChildLifecycle(t *testing.T) {
	port, err := Open("/bin/sh", 80, 24)
	if err != nil {
		t.Skipf("cannot open PTY in this environment: %v", err)
	}
	defer port.Close()

	if port.HasExited() {
		t.Fatalf("expected shell to be running immediately after Open")
	}

	if _, err := port.Write([]byte("exit\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if port.HasExited() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected shell to have exited after writing \"exit\\n\"")
}

func mustContainPrefix(t *testing.T, env []string, prefix string) {
	t.Helper()
	for _, kv := range env {
		if kv == prefix {
			return
		}
	}
	t.Fatalf("expected env to contain %q, got %v", prefix, env)
}
