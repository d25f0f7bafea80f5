// Package ptyio implements the PtyPort external port: spawning a login
// shell behind a pseudo-terminal and shuttling bytes to and from it.
//
// One shell, started once: no custom-command/alias/init-script machinery.
package ptyio

import (
	"os"
	"os/exec"
	"os/user"
	"strings"
	"sync"
	"syscall"

	"github.com/creack/pty"
)

// Port wraps a pseudo-terminal bound to a freshly spawned shell.
type Port struct {
	cmd *exec.Cmd
	pty *os.File
	mu  sync.Mutex

	exitedMu sync.Mutex
	exited   bool
}

// Open spawns shellPath (or the user's login shell when empty) behind a
// PTY sized cols x rows.
func Open(shellPath string, cols, rows uint16) (*Port, error) {
	shell := resolveShell(shellPath)

	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(shell, "-i")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	cmd.Dir = currentUser.HomeDir
	cmd.Env = buildEnv(shell, currentUser)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: cols, Rows: rows})
	if err != nil {
		return nil, err
	}

	port := &Port{cmd: cmd, pty: ptmx}
	go func() {
		cmd.Wait()
		port.exitedMu.Lock()
		port.exited = true
		port.exitedMu.Unlock()
	}()
	return port, nil
}

func buildEnv(shell string, u *user.User) []string {
	xdgRuntimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if xdgRuntimeDir == "" {
		xdgRuntimeDir = "/run/user/" + u.Uid
	}
	env := []string{
		"PATH=/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin:" + os.Getenv("PATH"),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
		"HOME=" + u.HomeDir,
		"USER=" + u.Username,
		"SHELL=" + shell,
		"LANG=en_US.UTF-8",
		"LC_ALL=en_US.UTF-8",
		"XDG_RUNTIME_DIR=" + xdgRuntimeDir,
	}
	if display := os.Getenv("DISPLAY"); display != "" {
		env = append(env, "DISPLAY="+display)
	}
	if wayland := os.Getenv("WAYLAND_DISPLAY"); wayland != "" {
		env = append(env, "WAYLAND_DISPLAY="+wayland)
	}
	return env
}

// resolveShell picks configured, /etc/passwd, or a common fallback shell,
// in that order.
func resolveShell(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}
	if currentUser, err := user.Current(); err == nil {
		if shell := passwdShell(currentUser.Username); shell != "" {
			if _, err := os.Stat(shell); err == nil {
				return shell
			}
		}
	}
	for _, shell := range []string{"/bin/bash", "/usr/bin/bash", "/bin/zsh", "/usr/bin/zsh", "/bin/sh"} {
		if _, err := os.Stat(shell); err == nil {
			return shell
		}
	}
	return "/bin/sh"
}

func passwdShell(username string) string {
	data, err := os.ReadFile("/etc/passwd")
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Split(line, ":")
		if len(fields) >= 7 && fields[0] == username {
			return fields[6]
		}
	}
	return ""
}

// Read reads raw bytes from the PTY master.
func (p *Port) Read(buf []byte) (int, error) {
	return p.pty.Read(buf)
}

// Write writes raw bytes to the PTY master.
func (p *Port) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pty.Write(data)
}

// SetSize pushes TIOCSWINSZ with the new terminal dimensions.
func (p *Port) SetSize(cols, rows uint16) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return pty.Setsize(p.pty, &pty.Winsize{Cols: cols, Rows: rows})
}

// HasExited reports whether the child shell process has exited.
func (p *Port) HasExited() bool {
	p.exitedMu.Lock()
	defer p.exitedMu.Unlock()
	return p.exited
}

// Close kills the shell process (if still running) and closes the PTY.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	return p.pty.Close()
}

