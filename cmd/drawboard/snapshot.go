package main

import (
	"errors"
	"flag"
	"os"

	"github.com/example/drawboard/internal/server"
)

type snapshotCmd struct {
	*root

	fs *flag.FlagSet

	name          string
	dir           string
	helpRequested bool
}

func parseSnapshotCmd(args []string, r *root) (*snapshotCmd, error) {
	cmd := &snapshotCmd{root: r}
	cmd.fs = flag.NewFlagSet("snapshot", flag.ExitOnError)
	cmd.fs.Usage = usageFunc(cmd)
	cmd.fs.StringVar(&cmd.name, "name", "", "socket session name")
	cmd.fs.StringVar(&cmd.dir, "dir", "", "directory that stores drawboard sockets")
	cmd.fs.BoolVar(&cmd.helpRequested, "help", false, "show this help message and exit")

	if err := cmd.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: cmd}
		}
		return nil, err
	}
	if cmd.helpRequested {
		return nil, &UsageError{of: cmd}
	}

	rest := cmd.fs.Args()
	if cmd.name == "" && len(rest) > 0 {
		cmd.name = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (s *snapshotCmd) Program() string {
	return s.root.Program()
}

func (s *snapshotCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func (s *snapshotCmd) Run() error {
	dir, err := server.ResolveDir(s.dir)
	if err != nil {
		return err
	}
	name, err := selectRunningSession(dir, s.name)
	if err != nil {
		return err
	}
	return server.SendLines(server.SocketPath(dir, name), []string{"snapshot"}, os.Stdout)
}
