// Package server accepts drawing commands over a Unix socket and runs
// them against the shared surface. One goroutine per connection; a
// connection's errors never affect the listener or other connections.
package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"

	"github.com/example/drawboard/internal/command"
)

func writeln(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

func closeWithLog(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Printf("%s: close: %v", name, err)
	}
}

func removeWithLog(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("remove %s: %v", path, err)
	}
}

// Server owns one listening socket bound to one executor.
type Server struct {
	path     string
	exec     *command.Executor
	stopCh   chan struct{}
	listener net.Listener
}

// New returns a server that will listen on path and feed lines to
// exec.
func New(path string, exec *command.Executor) *Server {
	return &Server{
		path:   path,
		exec:   exec,
		stopCh: make(chan struct{}),
	}
}

// Path returns the socket path the server binds to.
func (s *Server) Path() string { return s.path }

// ListenAndServe binds the socket, removing a stale file first, and
// accepts connections until Shutdown. Accept errors after Shutdown
// return nil.
func (s *Server) ListenAndServe() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	ln, err := net.Listen("unix", s.path)
	if err != nil {
		return err
	}
	s.listener = ln
	defer closeWithLog("socket listener", ln)
	defer removeWithLog(s.path)
	log.Printf("listening on %s", s.path)
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.stopCh:
				return nil
			default:
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return err
		}
		go s.handleConn(conn)
	}
}

// handleConn reads newline-delimited commands and writes one reply
// per line: the command's reply body, "ok" for a silent command, or
// "error: <reason>". Parsing happens here, outside the surface lock;
// the executor takes the lock per command.
func (s *Server) handleConn(conn net.Conn) {
	defer closeWithLog("socket connection", conn)
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		cmd, err := command.Parse(line)
		if err != nil {
			if werr := writeln(conn, "error: "+err.Error()); werr != nil {
				log.Printf("socket write: %v", werr)
				return
			}
			continue
		}
		reply, err := s.exec.Run(cmd)
		switch {
		case err != nil:
			reply = "error: " + err.Error()
		case reply == "":
			reply = "ok"
		}
		if err := writeln(conn, reply); err != nil {
			log.Printf("socket write: %v", err)
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("socket read: %v", err)
	}
}

// Shutdown stops the accept loop and removes the socket file. Safe to
// call more than once.
func (s *Server) Shutdown() {
	select {
	case <-s.stopCh:
		return
	default:
	}
	close(s.stopCh)
	if s.listener != nil {
		closeWithLog("socket listener", s.listener)
	}
	removeWithLog(s.path)
}
