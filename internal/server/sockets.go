package server

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"
)

// ResolveDir picks the socket directory: explicit flag value, then
// $DRAWBOARD_SOCKET_DIR, then $XDG_RUNTIME_DIR/drawboard, then
// ~/.drawboard/sockets.
func ResolveDir(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if dir := os.Getenv("DRAWBOARD_SOCKET_DIR"); dir != "" {
		return dir, nil
	}
	if runtime.GOOS != "windows" {
		if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
			return filepath.Join(dir, "drawboard"), nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".drawboard", "sockets"), nil
}

// EnsureDir creates the socket directory if needed.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SocketPath maps a session name to its socket file.
func SocketPath(dir, name string) string {
	filename := name
	if !strings.HasSuffix(filename, ".sock") {
		filename += ".sock"
	}
	return filepath.Join(dir, filename)
}

// Status describes one socket file in the session directory. A nil
// Err means a live session answered a state probe.
type Status struct {
	Name string
	File string
	Err  error
}

// Collect lists the socket files in dir, probing each for liveness.
// A missing directory yields an empty list, not an error.
func Collect(dir string) ([]Status, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	statuses := make([]Status, 0, len(entries))
	for _, entry := range entries {
		if entry.Type()&os.ModeDir != 0 {
			continue
		}
		name := entry.Name()
		if entry.Type()&os.ModeSocket == 0 && !strings.HasSuffix(name, ".sock") {
			continue
		}
		status := Status{Name: strings.TrimSuffix(name, ".sock"), File: name}
		if err := Ping(filepath.Join(dir, name)); err != nil {
			status.Err = normalizeSocketError(err)
		}
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses, nil
}

// Ping checks that a live session is behind the socket file by
// sending a state query and reading its reply.
func Ping(path string) error {
	conn, err := net.DialTimeout("unix", path, time.Second)
	if err != nil {
		return err
	}
	defer closeWithLog("ping socket", conn)
	if err := conn.SetDeadline(time.Now().Add(2 * time.Second)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(conn, "state"); err != nil {
		return err
	}
	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return err
		}
		return errors.New("socket closed")
	}
	if !strings.HasPrefix(scanner.Text(), "edge:") {
		return fmt.Errorf("unexpected response: %s", scanner.Text())
	}
	return nil
}

func normalizeSocketError(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return errors.New("missing socket file")
	}
	if errors.Is(err, os.ErrPermission) {
		return errors.New("permission denied")
	}
	return err
}
