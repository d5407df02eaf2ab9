package espeak

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Session owns one espeak subprocess and the immutable launch-argument
// list it was spawned from. Text queued with Say is written to the
// process's stdin; Reopen and Close wait for queued text to finish being
// spoken by the only mechanism the process model offers: closing stdin and
// waiting for the engine to exit.
//
// Each session's process is fully independent; nothing is shared across
// sessions. A finalizer closes abandoned sessions so no subprocess
// outlives its Session under normal program exit, but finalizers run at
// the garbage collector's discretion, so callers should still defer Close
// on every path.
type Session struct {
	mu   sync.Mutex
	args []string // fixed at construction, reused verbatim for every spawn
	open bool

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser
}

// New builds the launch-argument list from opts, spawns the espeak process
// with piped stdin, stdout and stderr, and returns an open session. The
// returned error is a *SpawnError when the program cannot be located or
// started.
func New(opts Options) (*Session, error) {
	s := &Session{args: opts.Args()}
	if err := s.spawn(); err != nil {
		return nil, err
	}
	s.open = true
	runtime.SetFinalizer(s, (*Session).finalize)
	return s, nil
}

// spawn starts a fresh process from the session's argument list and wires
// up the three pipes. The caller holds the lock or, as in New, owns the
// session exclusively.
func (s *Session) spawn() error {
	cmd := exec.Command(s.args[0], s.args[1:]...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return &SpawnError{Program: s.args[0], Args: s.args, Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &SpawnError{Program: s.args[0], Args: s.args, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return &SpawnError{Program: s.args[0], Args: s.args, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return &SpawnError{Program: s.args[0], Args: s.args, Err: err}
	}

	s.cmd = cmd
	s.stdin = stdin
	s.stdout = stdout
	s.stderr = stderr
	log.Debug("espeak process started", "program", s.args[0], "pid", cmd.Process.Pid)
	return nil
}

// Say queues the input for speaking: a stream is read to completion, the
// content is trimmed of leading and trailing whitespace, a single newline
// is appended and the result is written to the engine's stdin. The pipe
// write is unbuffered, so the content is flushed to the engine
// immediately.
//
// Say is fire-and-forget: success means the bytes were handed to the
// engine, not that they have been spoken. The write may block if the
// engine is slow to drain its input.
func (s *Session) Say(in Input) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrSessionClosed
	}
	text, err := in.content()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(s.stdin, strings.TrimSpace(text)+"\n"); err != nil {
		return fmt.Errorf("unable to write to espeak: %w", err)
	}
	return nil
}

// Reopen blocks until everything queued so far has finished being spoken,
// then spawns a fresh process from the same argument list. The wait is
// best-effort: it relies on the engine flushing and exiting once its input
// stream is closed, and there is no internal timeout. Callers needing a
// bound must race Reopen against a timer and fall back to Terminate.
//
// Teardown failures are swallowed; a failure to spawn the replacement
// process surfaces as a *SpawnError and leaves the session closed.
func (s *Session) Reopen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd != nil {
		s.drain()
	}
	if err := s.spawn(); err != nil {
		s.open = false
		return err
	}
	s.open = true
	// Close and Terminate clear the finalizer, so a session reopened after
	// either must arm it again or an abandoned session would orphan the
	// fresh process.
	runtime.SetFinalizer(s, (*Session).finalize)
	return nil
}

// Close blocks until everything queued so far has finished being spoken,
// then shuts the process down. Closing an already-closed session is a
// no-op. The same best-effort caveat as Reopen applies to the wait.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	s.drain()
	s.open = false
	runtime.SetFinalizer(s, nil)
	return nil
}

// Terminate signals the subprocess to stop immediately, without waiting
// for queued text to finish. An error from signaling, such as the process
// already being gone, is discarded.
func (s *Session) Terminate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd != nil && s.cmd.Process != nil {
		_ = terminate(s.cmd.Process)
		_ = s.stdin.Close()
		_ = s.stdout.Close()
		_ = s.stderr.Close()
	}
	s.open = false
	runtime.SetFinalizer(s, nil)
	return nil
}

// drain is the wait-for-speech barrier shared by Reopen and Close: close
// stdin so the engine sees end of input, consume the remaining output and
// diagnostic streams, wait for the process to exit, then kill whatever is
// left. Every error here is discarded on purpose: the process being gone
// is the goal, so a teardown failure means the goal was already reached.
func (s *Session) drain() {
	_ = s.stdin.Close()

	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(io.Discard, s.stderr)
		close(done)
	}()
	_, _ = io.Copy(io.Discard, s.stdout)
	<-done

	_ = s.cmd.Wait()
	_ = s.cmd.Process.Kill()
}

// finalize is the destructor-equivalent run by the garbage collector for
// sessions abandoned without an explicit Close.
func (s *Session) finalize() {
	_ = s.Close()
}

// Open reports whether the session has a live process accepting text.
func (s *Session) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Args returns a copy of the immutable launch-argument list.
func (s *Session) Args() []string {
	return append([]string(nil), s.args...)
}

// Stdout returns the engine's output stream. The session does not consume
// it while open; an engine that buffers large amounts of undrained output
// can stall until someone reads from here. The reader is replaced when the
// session is reopened.
func (s *Session) Stdout() io.Reader {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stdout
}

// Stderr returns the engine's diagnostic stream. The same draining caveat
// as Stdout applies.
func (s *Session) Stderr() io.Reader {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stderr
}
