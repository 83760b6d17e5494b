package main

import (
	"errors"
	"flag"
	"log"

	"github.com/example/drawboard/internal/board"
	"github.com/example/drawboard/internal/command"
	"github.com/example/drawboard/internal/server"
	"github.com/example/drawboard/internal/ui"
)

type serveCmd struct {
	*root

	fs *flag.FlagSet

	name          string
	dir           string
	width         int
	height        int
	saveFile      string
	noUI          bool
	helpRequested bool
}

func parseServeCmd(args []string, r *root) (*serveCmd, error) {
	cmd := &serveCmd{root: r}
	cmd.fs = flag.NewFlagSet("serve", flag.ExitOnError)
	cmd.fs.Usage = usageFunc(cmd)
	cmd.fs.StringVar(&cmd.name, "name", "", "socket session name")
	cmd.fs.StringVar(&cmd.dir, "dir", "", "directory that stores drawboard sockets")
	cmd.fs.IntVar(&cmd.width, "width", 0, "canvas width in pixels (0 uses the configured or default width)")
	cmd.fs.IntVar(&cmd.height, "height", 0, "canvas height in pixels (0 uses the configured or default height)")
	cmd.fs.StringVar(&cmd.saveFile, "save", "", "path the snapshot command writes to")
	cmd.fs.BoolVar(&cmd.noUI, "no-ui", false, "run the socket listener without opening a window")
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
	if cmd.name == "" {
		cmd.name = "default"
	}
	return cmd, nil
}

func (s *serveCmd) Program() string {
	return s.root.Program()
}

func (s *serveCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func (s *serveCmd) Run() error {
	width := s.width
	if width == 0 {
		width = s.config.CanvasWidth
	}
	height := s.height
	if height == 0 {
		height = s.config.CanvasHeight
	}
	saveFile := s.saveFile
	if saveFile == "" {
		saveFile = s.config.SaveFile
	}
	if saveFile == "" {
		saveFile = "canvas.png"
	}

	surface := board.New(width, height)
	if s.config.Brush > 0 {
		surface.SetBrush(s.config.Brush)
	}

	exec := command.NewExecutor(surface,
		command.WithSaveFile(saveFile),
		command.WithSavedHook(func(path string) {
			s.notifier.Save(path)
		}),
	)

	dir, err := server.ResolveDir(s.dir)
	if err != nil {
		return err
	}
	if err := server.EnsureDir(dir); err != nil {
		return err
	}
	srv := server.New(server.SocketPath(dir, s.name), exec)

	if s.noUI {
		return srv.ListenAndServe()
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Printf("socket listener: %v", err)
		}
	}()

	u := ui.New(surface,
		ui.WithTheme(s.activeTheme),
		ui.WithNotifier(s.notifier),
		ui.WithSaveFile(saveFile),
		ui.WithOnClose(srv.Shutdown),
	)
	surface.OnChange(u.NotifyCanvasChanged)
	u.Run()
	srv.Shutdown()
	return nil
}
