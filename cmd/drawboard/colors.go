package main

import (
	"errors"
	"flag"
	"os"

	"github.com/example/drawboard/internal/palette"
)

type colorsCmd struct {
	*root

	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	cmd := &colorsCmd{root: r}
	cmd.fs = flag.NewFlagSet("colors", flag.ExitOnError)
	cmd.fs.Usage = usageFunc(cmd)
	if err := cmd.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: cmd}
		}
		return nil, err
	}
	if cmd.fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Program() string {
	return c.root.Program()
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *colorsCmd) Run() error {
	for _, idx := range palette.All() {
		col := idx.Color()
		if err := writef(os.Stdout, "%2d  %-12s #%02X%02X%02X\n", int(idx), idx.Name(), col.R, col.G, col.B); err != nil {
			return err
		}
	}
	return nil
}
