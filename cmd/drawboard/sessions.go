package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/drawboard/internal/server"
)

type sessionsCmd struct {
	*root

	fs *flag.FlagSet

	op            string
	dir           string
	helpRequested bool
}

func parseSessionsCmd(args []string, r *root) (*sessionsCmd, error) {
	cmd := &sessionsCmd{root: r}
	if len(args) == 0 {
		cmd.fs = flag.NewFlagSet("sessions", flag.ExitOnError)
		cmd.fs.Usage = usageFunc(cmd)
		return nil, &UsageError{of: cmd}
	}
	cmd.op = strings.ToLower(args[0])
	cmd.fs = flag.NewFlagSet("sessions "+cmd.op, flag.ExitOnError)
	cmd.fs.Usage = usageFunc(cmd)
	cmd.fs.StringVar(&cmd.dir, "dir", "", "directory that stores drawboard sockets")
	cmd.fs.BoolVar(&cmd.helpRequested, "help", false, "show this help message and exit")

	if err := cmd.fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: cmd}
		}
		return nil, err
	}
	if cmd.helpRequested {
		return nil, &UsageError{of: cmd}
	}

	rest := cmd.fs.Args()
	switch cmd.op {
	case "list", "clean":
		if cmd.dir == "" && len(rest) > 0 {
			cmd.dir = rest[0]
			rest = rest[1:]
		}
	default:
		return nil, &UsageError{of: cmd}
	}
	if len(rest) > 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (s *sessionsCmd) Program() string {
	return s.root.Program()
}

func (s *sessionsCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func (s *sessionsCmd) Run() error {
	dir, err := server.ResolveDir(s.dir)
	if err != nil {
		return err
	}
	switch s.op {
	case "list":
		return printSessionList(dir, os.Stdout)
	case "clean":
		return cleanSessionDir(dir, os.Stdout)
	default:
		return &UsageError{of: s}
	}
}

func printSessionList(dir string, out io.Writer) error {
	statuses, err := server.Collect(dir)
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		return writeln(out, "no sessions found")
	}
	if err := writeln(out, "available sessions:"); err != nil {
		return err
	}
	for _, st := range statuses {
		if st.Err != nil {
			if err := writef(out, "  %s (dead: %v)\n", st.Name, st.Err); err != nil {
				return err
			}
		} else {
			if err := writef(out, "  %s\n", st.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func cleanSessionDir(dir string, out io.Writer) error {
	statuses, err := server.Collect(dir)
	if err != nil {
		return err
	}
	var removed []string
	for _, st := range statuses {
		if st.Err == nil {
			continue
		}
		path := filepath.Join(dir, st.File)
		if err := os.Remove(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err := writef(out, "failed to remove %s: %v\n", st.Name, err); err != nil {
				return err
			}
			continue
		}
		removed = append(removed, st.Name)
	}
	if len(removed) == 0 {
		return writeln(out, "no dead sessions found")
	}
	return writef(out, "removed %d dead session(s): %s\n", len(removed), strings.Join(removed, ", "))
}

// selectRunningSession picks the target session for a client command:
// the preferred name if it responds, the single live session when only
// one exists, otherwise an error naming the candidates.
func selectRunningSession(dir, preferred string) (string, error) {
	statuses, err := server.Collect(dir)
	if err != nil {
		return "", err
	}
	alive := make([]string, 0, len(statuses))
	for _, st := range statuses {
		if st.Err == nil {
			alive = append(alive, st.Name)
		}
	}
	sort.Strings(alive)
	if preferred != "" {
		for _, name := range alive {
			if name == preferred {
				return preferred, nil
			}
		}
		return "", fmt.Errorf("session %s is not running", preferred)
	}
	switch len(alive) {
	case 0:
		return "", errors.New("no sessions running")
	case 1:
		return alive[0], nil
	default:
		return "", fmt.Errorf("multiple sessions running; specify a session name (%s)", strings.Join(alive, ", "))
	}
}
