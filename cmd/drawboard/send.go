package main

import (
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/example/drawboard/internal/server"
)

type sendCmd struct {
	*root

	fs *flag.FlagSet

	execs         commandList
	name          string
	dir           string
	helpRequested bool

	lines []string
}

func parseSendCmd(args []string, r *root) (*sendCmd, error) {
	cmd := &sendCmd{root: r}
	cmd.fs = flag.NewFlagSet("send", flag.ExitOnError)
	cmd.fs.Usage = usageFunc(cmd)
	cmd.fs.Var(&cmd.execs, "e", "command to send (may be specified multiple times)")
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

	cmd.lines = append(cmd.lines, cmd.execs...)
	if rest := cmd.fs.Args(); len(rest) > 0 {
		cmd.lines = append(cmd.lines, strings.Join(rest, " "))
	}
	if len(cmd.lines) == 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (s *sendCmd) Program() string {
	return s.root.Program()
}

func (s *sendCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func (s *sendCmd) Run() error {
	dir, err := server.ResolveDir(s.dir)
	if err != nil {
		return err
	}
	name, err := selectRunningSession(dir, s.name)
	if err != nil {
		return err
	}
	return server.SendLines(server.SocketPath(dir, name), s.lines, os.Stdout)
}
