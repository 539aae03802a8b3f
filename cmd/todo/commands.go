package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"todoapp/internal/config"
	"todoapp/internal/logging"
	"todoapp/internal/markup"
	"todoapp/internal/storage"
	"todoapp/internal/todo"
	"todoapp/internal/ui"
)

type app struct {
	in  *bufio.Reader
	out io.Writer
}

func newRootCommand(in io.Reader, out io.Writer) *cli.Command {
	a := &app{in: bufio.NewReader(in), out: out}
	return &cli.Command{
		Name:   "todo",
		Usage:  "Keep a short list of things to do",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ResolveConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: a.runTUI,
		Commands: []*cli.Command{
			{
				Name:   "tui",
				Usage:  "Launch the interactive list",
				Action: a.runTUI,
			},
			{
				Name:   "list",
				Usage:  "Print the tasks",
				Flags:  []cli.Flag{filterFlag()},
				Action: a.runList,
			},
			{
				Name:      "add",
				Usage:     "Add a task",
				ArgsUsage: "TEXT...",
				Action:    a.runAdd,
			},
			{
				Name:      "done",
				Usage:     "Toggle a task between open and completed",
				ArgsUsage: "REF",
				Action:    a.runDone,
			},
			{
				Name:      "edit",
				Usage:     "Replace the text of a task",
				ArgsUsage: "REF TEXT...",
				Action:    a.runEdit,
			},
			{
				Name:      "rm",
				Usage:     "Delete a task",
				ArgsUsage: "REF",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Do not ask for confirmation"},
				},
				Action: a.runRemove,
			},
			{
				Name:  "render",
				Usage: "Write the list as an HTML page",
				Flags: []cli.Flag{
					filterFlag(),
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file (default stdout)"},
				},
				Action: a.runRender,
			},
		},
	}
}

func filterFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "all, active or completed",
		Value:   string(todo.FilterAll),
	}
}

type env struct {
	cfg     config.Config
	logger  *log.Logger
	store   *storage.Persister
	closers []io.Closer
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
}

func openEnv(cmd *cli.Command) (*env, error) {
	root := cmd.Root()
	cfg, err := config.LoadOrCreate(root.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, logCloser, err := logging.Open(logging.Options{
		Path:  cfg.LogFile,
		Level: cfg.LogLevel,
		Debug: root.Bool("debug"),
	})
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	e.closers = append(e.closers, db)
	e.store = storage.NewPersister(db, cfg.StorageKey, logger)
	return e, nil
}

type session struct {
	*env
	ctrl    *todo.Controller
	surface *markup.Surface
}

func (a *app) openSession(cmd *cli.Command, prompt todo.Prompt) (*session, error) {
	e, err := openEnv(cmd)
	if err != nil {
		return nil, err
	}
	surface := markup.NewSurface(e.logger)
	ctrl := todo.New(todo.Options{
		Store:          e.store,
		Surface:        surface,
		Prompt:         prompt,
		Input:          surface,
		FilterControls: surface,
		Logger:         e.logger,
	})
	return &session{env: e, ctrl: ctrl, surface: surface}, nil
}

func (a *app) runTUI(_ context.Context, cmd *cli.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	return ui.Run(e.store, e.cfg, e.logger)
}

func (a *app) runList(_ context.Context, cmd *cli.Command) error {
	s, err := a.openSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	positions := map[string]int{}
	for i, t := range s.ctrl.Tasks() {
		positions[t.ID] = i + 1
	}
	s.ctrl.SetFilter(cmd.String("filter"))
	v := s.surface.View()
	if v.IsEmpty() {
		fmt.Fprintln(a.out, v.Empty)
		return nil
	}
	for _, r := range v.Rows {
		mark := " "
		if r.Completed {
			mark = "x"
		}
		fmt.Fprintf(a.out, "%3d. [%s] %s  (%s)\n", positions[r.ID], mark, r.Text, shortID(r.ID))
	}
	return nil
}

func (a *app) runAdd(_ context.Context, cmd *cli.Command) error {
	s, err := a.openSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	s.surface.SetInput(strings.Join(cmd.Args().Slice(), " "))
	t, ok := s.ctrl.Create(s.surface.InputValue())
	if !ok {
		return errTextEmpty
	}
	fmt.Fprintf(a.out, "Added %s %s\n", shortID(t.ID), t.Text)
	return nil
}

func (a *app) runDone(_ context.Context, cmd *cli.Command) error {
	s, err := a.openSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := resolveRef(s.ctrl.Tasks(), cmd.Args().First())
	if err != nil {
		return err
	}
	s.surface.Dispatch(todo.RoleCheckbox, todo.EventChange, id, todo.Event{})
	t, _ := s.ctrl.Task(id)
	state := "open"
	if t.Completed {
		state = "completed"
	}
	fmt.Fprintf(a.out, "%s %s: %s\n", shortID(t.ID), t.Text, state)
	return nil
}

func (a *app) runEdit(_ context.Context, cmd *cli.Command) error {
	s, err := a.openSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return errRefRequired
	}
	id, err := resolveRef(s.ctrl.Tasks(), args[0])
	if err != nil {
		return err
	}
	s.ctrl.BeginEdit(id)
	s.surface.SetEditValue(id, strings.Join(args[1:], " "))
	s.surface.Dispatch(todo.RoleSaveButton, todo.EventClick, id, todo.Event{})
	if s.ctrl.EditingID() != "" {
		return errTextEmpty
	}
	t, _ := s.ctrl.Task(id)
	fmt.Fprintf(a.out, "%s %s\n", shortID(t.ID), t.Text)
	return nil
}

func (a *app) runRemove(_ context.Context, cmd *cli.Command) error {
	prompt := linePrompt{in: a.in, out: a.out, assume: cmd.Bool("yes")}
	s, err := a.openSession(cmd, prompt)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := resolveRef(s.ctrl.Tasks(), cmd.Args().First())
	if err != nil {
		return err
	}
	if !s.ctrl.Remove(id) {
		fmt.Fprintln(a.out, "Kept")
		return nil
	}
	fmt.Fprintf(a.out, "Deleted %s\n", shortID(id))
	return nil
}

func (a *app) runRender(_ context.Context, cmd *cli.Command) error {
	s, err := a.openSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	s.ctrl.SetFilter(cmd.String("filter"))
	page, err := s.surface.Page()
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	path := cmd.String("out")
	if path == "" {
		_, err = io.WriteString(a.out, page)
		return err
	}
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %s\n", path)
	return nil
}
