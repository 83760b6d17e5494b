package main

import (
	"fmt"
	"io"
	"strings"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}
