package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
)

// SendLines dials the socket, writes each command line, and copies
// each reply to out. Every command gets exactly one reply line.
func SendLines(path string, lines []string, out io.Writer) error {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return err
	}
	defer closeWithLog("socket client", conn)
	scanner := bufio.NewScanner(conn)
	for _, line := range lines {
		if _, err := fmt.Fprintln(conn, line); err != nil {
			return err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return errors.New("socket closed")
		}
		if err := writeln(out, scanner.Text()); err != nil {
			return err
		}
	}
	return nil
}

// Attach runs an interactive prompt: each stdin line goes to the
// socket, each reply to stdout, until stdin or the peer closes.
func Attach(path string, stdin io.Reader, stdout io.Writer) error {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return err
	}
	defer closeWithLog("socket client", conn)
	replies := bufio.NewScanner(conn)
	input := bufio.NewScanner(stdin)
	for {
		if _, err := fmt.Fprint(stdout, "> "); err != nil {
			return err
		}
		if !input.Scan() {
			return input.Err()
		}
		if _, err := fmt.Fprintln(conn, input.Text()); err != nil {
			return err
		}
		if !replies.Scan() {
			if err := replies.Err(); err != nil {
				return err
			}
			return errors.New("socket closed")
		}
		if err := writeln(stdout, replies.Text()); err != nil {
			return err
		}
	}
}
