package main

import (
	"errors"
	"flag"
	"os"

	"github.com/example/drawboard/internal/server"
)

type attachCmd struct {
	*root

	fs *flag.FlagSet

	name          string
	dir           string
	helpRequested bool
}

func parseAttachCmd(args []string, r *root) (*attachCmd, error) {
	cmd := &attachCmd{root: r}
	cmd.fs = flag.NewFlagSet("attach", flag.ExitOnError)
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

func (a *attachCmd) Program() string {
	return a.root.Program()
}

func (a *attachCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func (a *attachCmd) Run() error {
	dir, err := server.ResolveDir(a.dir)
	if err != nil {
		return err
	}
	name, err := selectRunningSession(dir, a.name)
	if err != nil {
		return err
	}
	return server.Attach(server.SocketPath(dir, name), os.Stdin, os.Stdout)
}
