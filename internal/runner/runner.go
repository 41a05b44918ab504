// Package runner supervises the shell subprocesses behind each tab. Every
// command gets its own process with independent stdout/stderr readers;
// everything those readers learn flows as events through one shared channel
// so the update loop stays the only writer of application state.
package runner

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/skanehira/parallels/internal/buffer"
	"github.com/skanehira/parallels/internal/logging"
)

const (
	// eventBacklog bounds how far a chatty process can run ahead of the
	// update loop before its own reader blocks. Other commands are
	// unaffected: each has its own reader goroutines.
	eventBacklog = 256

	// maxLineBytes caps a single output line; scanner default is too
	// small for minified output and stack traces.
	maxLineBytes = 1024 * 1024
)

// Event is anything a supervised process reports back to the update loop.
// The set is closed: OutputEvent, ExitEvent, StartFailedEvent.
type Event interface {
	TabIndex() int
}

// OutputEvent carries one decoded output line.
type OutputEvent struct {
	Tab  int
	Line buffer.Line
}

func (e OutputEvent) TabIndex() int { return e.Tab }

// ExitEvent reports process termination. Code is the exit code when the
// process exited on its own; a negative code with Err set means the
// process was killed by a signal or could not be waited on.
type ExitEvent struct {
	Tab  int
	Code int
	Err  error
}

func (e ExitEvent) TabIndex() int { return e.Tab }

// StartFailedEvent reports that a command never started. No further
// events follow for this tab.
type StartFailedEvent struct {
	Tab    int
	Reason string
}

func (e StartFailedEvent) TabIndex() int { return e.Tab }

// Runner spawns and supervises one shell process per command. It only
// produces events; it never touches tab or buffer state.
type Runner struct {
	commands []string
	events   chan Event
	log      *logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a runner for the given commands. Nothing starts until Start.
func New(commands []string, log *logging.Logger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		commands: commands,
		events:   make(chan Event, eventBacklog),
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Events returns the shared event channel. It is closed after Stop once
// every supervision goroutine has drained.
func (r *Runner) Events() <-chan Event {
	return r.events
}

// Start launches every command. Spawn failures surface as
// StartFailedEvent for the affected tab only; the rest keep running.
func (r *Runner) Start() {
	for i, command := range r.commands {
		r.wg.Add(1)
		go func(tab int, command string) {
			defer r.wg.Done()
			r.supervise(tab, command)
		}(i, command)
	}
}

// Restart re-launches the command for one tab. The caller is responsible
// for only restarting tabs whose previous process has terminated.
func (r *Runner) Restart(tab int) {
	if tab < 0 || tab >= len(r.commands) {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.supervise(tab, r.commands[tab])
	}()
}

// Stop signals every process to terminate and waits up to timeout for
// supervision to wind down, returning regardless so shutdown never hangs.
func (r *Runner) Stop(timeout time.Duration) {
	r.cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		// Close after the last supervisor is done even when Stop has
		// already returned, so a blocked Events receiver always wakes.
		close(r.events)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		r.log.Warn("timed out waiting for processes to exit", "timeout", timeout.String())
	}
}

// supervise runs one command to completion: spawn, stream both pipes,
// then report the exit. Emits exactly one terminal event (ExitEvent or
// StartFailedEvent), and never an OutputEvent after it.
func (r *Runner) supervise(tab int, command string) {
	log := r.log.WithCommand(tab, command)

	cmd := exec.CommandContext(r.ctx, "sh", "-c", command)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		r.emit(StartFailedEvent{Tab: tab, Reason: err.Error()})
		return
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		r.emit(StartFailedEvent{Tab: tab, Reason: err.Error()})
		return
	}
	if err := cmd.Start(); err != nil {
		log.Error("failed to start command", "error", err)
		r.emit(StartFailedEvent{Tab: tab, Reason: err.Error()})
		return
	}
	log.Debug("command started", "pid", cmd.Process.Pid)

	var readers sync.WaitGroup
	readers.Add(2)
	go r.readStream(&readers, log, tab, buffer.Stdout, stdout)
	go r.readStream(&readers, log, tab, buffer.Stderr, stderr)
	readers.Wait()

	err = cmd.Wait()
	code := -1
	if cmd.ProcessState != nil {
		code = cmd.ProcessState.ExitCode()
	}
	if err != nil && code >= 0 {
		// normal exit with nonzero status; the code says it all
		err = nil
	}
	log.Debug("command exited", "exit_code", code)
	r.emit(ExitEvent{Tab: tab, Code: code, Err: err})
}

// readStream turns one pipe into OutputEvents line by line. A trailing
// line without a newline is still delivered when the stream ends. Read
// errors end only this stream; the process's exit is reported separately.
func (r *Runner) readStream(wg *sync.WaitGroup, log *logging.Logger, tab int, kind buffer.Kind, stream io.Reader) {
	defer wg.Done()

	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := buffer.NewLine(kind, scanner.Text())
		r.emit(OutputEvent{Tab: tab, Line: line})
	}
	if err := scanner.Err(); err != nil {
		log.Warn("stream read error", "stream", kind.String(), "error", err)
	}
}

// emit delivers an event unless the runner is shutting down. Without the
// ctx guard a blocked send could strand a reader goroutine after the
// consumer has gone away.
func (r *Runner) emit(ev Event) {
	select {
	case r.events <- ev:
	case <-r.ctx.Done():
	}
}
