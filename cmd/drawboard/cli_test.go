package main

import (
	"errors"
	"flag"
	"strings"
	"testing"
)

func testRoot() *root {
	return &root{
		fs:      flag.NewFlagSet("drawboard", flag.ContinueOnError),
		program: "drawboard",
	}
}

func TestParseSendCmdCollectsLines(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"trailing args join into one command", []string{"line", "1,1", "20,20"}, []string{"line 1,1 20,20"}},
		{"repeated -e flags", []string{"-e", "edge 3", "-e", "circle 10,10 5"}, []string{"edge 3", "circle 10,10 5"}},
		{"flags and args combine", []string{"-e", "clear", "dot", "5,5"}, []string{"clear", "dot 5,5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := parseSendCmd(tt.args, testRoot())
			if err != nil {
				t.Fatalf("parseSendCmd(%v): %v", tt.args, err)
			}
			if len(cmd.lines) != len(tt.want) {
				t.Fatalf("got %d lines, want %d: %v", len(cmd.lines), len(tt.want), cmd.lines)
			}
			for i := range tt.want {
				if cmd.lines[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, cmd.lines[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseSendCmdWithoutCommandsIsUsage(t *testing.T) {
	_, err := parseSendCmd(nil, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("parseSendCmd(nil) error = %v, want *UsageError", err)
	}
}

func TestParseServeCmd(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cmd, err := parseServeCmd(nil, testRoot())
		if err != nil {
			t.Fatalf("parseServeCmd: %v", err)
		}
		if cmd.name != "default" {
			t.Errorf("name = %q, want default", cmd.name)
		}
	})
	t.Run("positional session name", func(t *testing.T) {
		cmd, err := parseServeCmd([]string{"scratch"}, testRoot())
		if err != nil {
			t.Fatalf("parseServeCmd: %v", err)
		}
		if cmd.name != "scratch" {
			t.Errorf("name = %q, want scratch", cmd.name)
		}
	})
	t.Run("surplus args are usage errors", func(t *testing.T) {
		_, err := parseServeCmd([]string{"a", "b"}, testRoot())
		var uerr *UsageError
		if !errors.As(err, &uerr) {
			t.Fatalf("error = %v, want *UsageError", err)
		}
	})
}

func TestParseSessionsCmdRejectsUnknownOp(t *testing.T) {
	_, err := parseSessionsCmd([]string{"explode"}, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("error = %v, want *UsageError", err)
	}
}

func TestUsageErrorRendersTemplate(t *testing.T) {
	r := testRoot()
	msg := (&UsageError{of: r}).Error()
	if msg == "" {
		t.Fatalf("usage message is empty")
	}
	for _, want := range []string{"drawboard", "serve", "send", "sessions"} {
		if !strings.Contains(msg, want) {
			t.Errorf("usage message missing %q:\n%s", want, msg)
		}
	}
}
