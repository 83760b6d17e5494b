package server

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/command"
	"github.com/example/drawboard/internal/palette"
)

func startTestServer(t *testing.T) (*Server, *board.Surface, string) {
	t.Helper()
	dir := t.TempDir()
	surface := board.New(32, 32)
	ex := command.NewExecutor(surface, command.WithSaveFile(filepath.Join(dir, "out.png")))
	srv := New(SocketPath(dir, "test"), ex)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			t.Errorf("ListenAndServe: %v", err)
		}
	}()
	t.Cleanup(srv.Shutdown)

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(srv.Path()); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("socket %s never appeared", srv.Path())
		}
		time.Sleep(5 * time.Millisecond)
	}
	return srv, surface, dir
}

func TestServerRepliesOncePerLine(t *testing.T) {
	srv, _, _ := startTestServer(t)

	var out bytes.Buffer
	lines := []string{
		"state",
		"dot 5,5",
		"line 1,1",
		"edge 3",
		"state",
	}
	if err := SendLines(srv.Path(), lines, &out); err != nil {
		t.Fatalf("SendLines: %v", err)
	}
	want := []string{
		"edge:0 fill:none size:1",
		"ok",
		"error: line: want 2 args, got 1",
		"ok",
		"edge:3 fill:none size:1",
	}
	got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d reply lines, want %d: %q", len(got), len(want), out.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("reply %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestConnectionsShareOneSurface(t *testing.T) {
	srv, surface, _ := startTestServer(t)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var out bytes.Buffer
			lines := make([]string, 0, 25)
			for j := 0; j < 25; j++ {
				lines = append(lines, "dot 10,10")
			}
			if err := SendLines(srv.Path(), lines, &out); err != nil {
				t.Errorf("SendLines: %v", err)
			}
		}()
	}
	wg.Wait()

	img := surface.Snapshot()
	if got, want := img.RGBAAt(10, 10), palette.Index(0).Color(); got != want {
		t.Errorf("shared pixel = %v, want %v", got, want)
	}
}

func TestAttachPromptLoop(t *testing.T) {
	srv, _, _ := startTestServer(t)

	var out bytes.Buffer
	in := strings.NewReader("state\nbogus\n")
	if err := Attach(srv.Path(), in, &out); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "edge:0 fill:none size:1") {
		t.Errorf("attach output missing state reply: %q", got)
	}
	if !strings.Contains(got, `error: unknown command "bogus"`) {
		t.Errorf("attach output missing error reply: %q", got)
	}
	if !strings.Contains(got, "> ") {
		t.Errorf("attach output missing prompt: %q", got)
	}
}

func TestPingAndCollect(t *testing.T) {
	srv, _, dir := startTestServer(t)

	if err := Ping(srv.Path()); err != nil {
		t.Fatalf("Ping(live): %v", err)
	}

	// A leftover file with no listener behind it reads as dead.
	stale := filepath.Join(dir, "stale.sock")
	if err := os.WriteFile(stale, nil, 0o600); err != nil {
		t.Fatalf("write stale socket: %v", err)
	}

	statuses, err := Collect(dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("got %d statuses, want 2: %+v", len(statuses), statuses)
	}
	if statuses[0].Name != "stale" || statuses[0].Err == nil {
		t.Errorf("stale socket = %+v, want dead", statuses[0])
	}
	if statuses[1].Name != "test" || statuses[1].Err != nil {
		t.Errorf("live socket = %+v, want alive", statuses[1])
	}
}

func TestCollectMissingDir(t *testing.T) {
	statuses, err := Collect(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(statuses) != 0 {
		t.Errorf("got %d statuses, want 0", len(statuses))
	}
}

func TestShutdownRemovesSocket(t *testing.T) {
	srv, _, _ := startTestServer(t)
	srv.Shutdown()
	srv.Shutdown() // idempotent

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(srv.Path()); os.IsNotExist(err) {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("socket file still present after shutdown")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
