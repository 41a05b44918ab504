// Package tui implements the terminal user interface: one tab per
// command, a shared output view, and modal key handling on top of
// Bubbletea's update loop.
package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skanehira/parallels/internal/config"
	"github.com/skanehira/parallels/internal/logging"
	"github.com/skanehira/parallels/internal/runner"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	runner  *runner.Runner
	cfg     *config.Config
	log     *logging.Logger
}

// New creates a new TUI application for the given commands.
func New(commands []string, cfg *config.Config, log *logging.Logger) *App {
	r := runner.New(commands, log)
	return &App{
		model:  NewModel(commands, cfg, r, log),
		runner: r,
		cfg:    cfg,
		log:    log,
	}
}

// Run spawns the commands and blocks until the TUI exits. Child
// processes are stopped before it returns, bounded by the configured
// shutdown timeout.
func (a *App) Run() error {
	a.runner.Start()

	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	// Translate termination signals into a clean TUI shutdown so the
	// terminal state is restored.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		<-sigChan
		if a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	_, err := a.program.Run()

	signal.Stop(sigChan)
	a.runner.Stop(a.cfg.ShutdownTimeout())

	return err
}
