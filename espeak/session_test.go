package espeak

import (
	"bufio"
	"errors"
	"runtime"
	"strings"
	"testing"
)

// newEchoSession spawns a session backed by cat, which echoes everything
// written to its stdin. That makes the exact bytes handed to the engine
// observable on the session's stdout.
func newEchoSession(t *testing.T) *Session {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test requires the cat command")
	}

	opts := DefaultOptions()
	opts.Program = "cat"
	sess, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = sess.Terminate() })
	return sess
}

func TestNewSpawnError(t *testing.T) {
	opts := DefaultOptions()
	opts.Program = "definitely-not-a-real-binary-4242"

	_, err := New(opts)
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("New() error = %v, want *SpawnError", err)
	}
	if spawnErr.Program != opts.Program {
		t.Errorf("SpawnError.Program = %q, want %q", spawnErr.Program, opts.Program)
	}
}

func TestSayNormalizesContent(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want string
	}{
		{
			name: "text is trimmed",
			in:   Text("  hello world \n\n"),
			want: "hello world\n",
		},
		{
			name: "stream is trimmed",
			in:   Stream(strings.NewReader("\t from a stream \n")),
			want: "from a stream\n",
		},
		{
			name: "already clean text",
			in:   Text("clean"),
			want: "clean\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newEchoSession(t)
			if err := sess.Say(tt.in); err != nil {
				t.Fatalf("Say() error = %v", err)
			}

			got, err := bufio.NewReader(sess.Stdout()).ReadString('\n')
			if err != nil {
				t.Fatalf("reading echoed output: %v", err)
			}
			if got != tt.want {
				t.Errorf("echoed %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSayUnsupportedInput(t *testing.T) {
	sess := newEchoSession(t)
	if err := sess.Say(Input{}); !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("Say(Input{}) error = %v, want %v", err, ErrUnsupportedInput)
	}
	if err := sess.Say(Stream(nil)); !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("Say(Stream(nil)) error = %v, want %v", err, ErrUnsupportedInput)
	}

	// the session survives a rejected input
	if err := sess.Say(Text("still alive")); err != nil {
		t.Errorf("Say() after rejected input error = %v", err)
	}
}

func TestCloseWaitsForExit(t *testing.T) {
	sess := newEchoSession(t)
	if err := sess.Say(Text("goodbye")); err != nil {
		t.Fatalf("Say() error = %v", err)
	}

	if err := sess.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if sess.Open() {
		t.Error("Open() = true after Close")
	}
	if sess.cmd.ProcessState == nil || !sess.cmd.ProcessState.Exited() {
		t.Error("expected the process to have exited after Close")
	}
}

func TestCloseIdempotent(t *testing.T) {
	sess := newEchoSession(t)
	if err := sess.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := sess.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestSayAfterClose(t *testing.T) {
	sess := newEchoSession(t)
	if err := sess.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := sess.Say(Text("too late")); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Say() error = %v, want %v", err, ErrSessionClosed)
	}
}

func TestReopenSpawnsNewProcess(t *testing.T) {
	sess := newEchoSession(t)
	oldPid := sess.cmd.Process.Pid

	if err := sess.Reopen(); err != nil {
		t.Fatalf("Reopen() error = %v", err)
	}
	if !sess.Open() {
		t.Error("Open() = false after Reopen")
	}
	if sess.cmd.Process.Pid == oldPid {
		t.Error("Reopen reused the old process")
	}

	if err := sess.Say(Text("fresh process")); err != nil {
		t.Fatalf("Say() after Reopen error = %v", err)
	}
	got, err := bufio.NewReader(sess.Stdout()).ReadString('\n')
	if err != nil {
		t.Fatalf("reading echoed output: %v", err)
	}
	if got != "fresh process\n" {
		t.Errorf("echoed %q, want %q", got, "fresh process\n")
	}
}

func TestReopenAfterClose(t *testing.T) {
	sess := newEchoSession(t)
	if err := sess.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := sess.Reopen(); err != nil {
		t.Fatalf("Reopen() after Close error = %v", err)
	}
	if err := sess.Say(Text("back again")); err != nil {
		t.Errorf("Say() after Reopen error = %v", err)
	}
}

func TestReopenSpawnFailure(t *testing.T) {
	sess := newEchoSession(t)
	sess.args[0] = "definitely-not-a-real-binary-4242"

	err := sess.Reopen()
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("Reopen() error = %v, want *SpawnError", err)
	}
	if sess.Open() {
		t.Error("Open() = true after failed Reopen")
	}
	if err := sess.Say(Text("no process")); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Say() error = %v, want %v", err, ErrSessionClosed)
	}
}

func TestTerminate(t *testing.T) {
	sess := newEchoSession(t)
	if err := sess.Terminate(); err != nil {
		t.Fatalf("Terminate() error = %v", err)
	}
	if sess.Open() {
		t.Error("Open() = true after Terminate")
	}
	if err := sess.Say(Text("too late")); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Say() error = %v, want %v", err, ErrSessionClosed)
	}
}

func TestTerminateDeadProcess(t *testing.T) {
	sess := newEchoSession(t)

	// take the process down behind the session's back; the signal failure
	// must be swallowed
	if err := sess.cmd.Process.Kill(); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}
	_ = sess.cmd.Wait()

	if err := sess.Terminate(); err != nil {
		t.Errorf("Terminate() error = %v", err)
	}
}

func TestCloseDeadProcess(t *testing.T) {
	sess := newEchoSession(t)
	if err := sess.cmd.Process.Kill(); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}

	if err := sess.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestArgsImmutable(t *testing.T) {
	sess := newEchoSession(t)
	args := sess.Args()
	if len(args) == 0 || args[0] != "cat" {
		t.Fatalf("Args() = %v, want [cat ...]", args)
	}

	args[0] = "mutated"
	if got := sess.Args(); got[0] != "cat" {
		t.Errorf("Args() = %v, caller mutation leaked into the session", got)
	}
}
