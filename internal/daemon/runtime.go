package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrNotRunning is returned when no live daemon owns the pid file.
var ErrNotRunning = errors.New("daemon is not running")

// RuntimeState is written next to the pid file while the daemon runs.
type RuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	DataDir   string    `json:"data_dir"`
}

// PIDFile guards a single daemon instance. The state sidecar lives at
// Path + ".json".
type PIDFile struct {
	Path string
}

func (p PIDFile) statePath() string { return p.Path + ".json" }

// Claim records st as the running instance. It fails if another live
// process already holds the file; stale files are replaced. The returned
// release func removes both files.
func (p PIDFile) Claim(st RuntimeState) (func(), error) {
	if cur, err := p.Running(); err == nil {
		return nil, fmt.Errorf("daemon already running (pid %d)", cur.PID)
	} else if !errors.Is(err, ErrNotRunning) {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(p.Path), 0o750); err != nil {
		return nil, fmt.Errorf("create daemon directory: %w", err)
	}
	if err := os.WriteFile(p.Path, []byte(strconv.Itoa(st.PID)+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("write pid file: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err == nil {
		err = os.WriteFile(p.statePath(), append(data, '\n'), 0o600)
	}
	if err != nil {
		p.Clear()
		return nil, fmt.Errorf("write daemon state: %w", err)
	}
	return p.Clear, nil
}

// Running returns the state of the live daemon. A missing file or a dead
// pid yields ErrNotRunning, and a dead pid's files are cleared.
func (p PIDFile) Running() (RuntimeState, error) {
	//nolint:gosec // pid path is configured by the local user
	raw, err := os.ReadFile(p.Path)
	if errors.Is(err, os.ErrNotExist) {
		return RuntimeState{}, ErrNotRunning
	}
	if err != nil {
		return RuntimeState{}, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || pid <= 0 {
		return RuntimeState{}, fmt.Errorf("invalid pid in %s", p.Path)
	}
	if !Alive(pid) {
		p.Clear()
		return RuntimeState{}, ErrNotRunning
	}

	st := RuntimeState{PID: pid}
	//nolint:gosec // state path is derived from the pid path
	if data, err := os.ReadFile(p.statePath()); err == nil {
		_ = json.Unmarshal(data, &st)
		st.PID = pid
	}
	return st, nil
}

// Clear removes the pid file and its state sidecar.
func (p PIDFile) Clear() {
	_ = os.Remove(p.Path)
	_ = os.Remove(p.statePath())
}

// Stop sends SIGTERM to the running daemon and waits for it to exit.
func (p PIDFile) Stop(ctx context.Context) (int, error) {
	st, err := p.Running()
	if err != nil {
		return 0, err
	}
	proc, err := os.FindProcess(st.PID)
	if err != nil {
		return st.PID, fmt.Errorf("find daemon process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return st.PID, fmt.Errorf("signal daemon process: %w", err)
	}

	tick := time.NewTicker(150 * time.Millisecond)
	defer tick.Stop()
	for Alive(st.PID) {
		select {
		case <-ctx.Done():
			return st.PID, fmt.Errorf("daemon (pid %d) did not exit in time", st.PID)
		case <-tick.C:
		}
	}
	p.Clear()
	return st.PID, nil
}

// Alive reports whether pid names a live process.
func Alive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

// FetchStatus queries a running daemon's /v1/status endpoint.
func FetchStatus(ctx context.Context, addr string) (Status, error) {
	var st Status
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/v1/status", nil)
	if err != nil {
		return st, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return st, fmt.Errorf("unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return st, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return st, fmt.Errorf("malformed response: %w", err)
	}
	return st, nil
}
