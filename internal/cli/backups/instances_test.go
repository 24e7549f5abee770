package backups

import (
	"errors"
	"strings"
	"testing"

	"github.com/mitchellh/go-ps"
)

type fakeProcess struct {
	pid, ppid int
	exe       string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return p.ppid }
func (p fakeProcess) Executable() string { return p.exe }

// stubProcesses replaces the process table for the duration of the test
func stubProcesses(t *testing.T, procs []ps.Process, err error) {
	t.Helper()
	origProcs, origSelf := processesFunc, selfPID
	processesFunc = func() ([]ps.Process, error) { return procs, err }
	selfPID = func() int { return 100 }
	t.Cleanup(func() {
		processesFunc, selfPID = origProcs, origSelf
	})
}

func TestOtherInstances(t *testing.T) {
	stubProcesses(t, []ps.Process{
		fakeProcess{pid: 100, ppid: 1, exe: "skateday"},
		fakeProcess{pid: 101, ppid: 100, exe: "skateday"},
		fakeProcess{pid: 200, ppid: 1, exe: "skateday"},
		fakeProcess{pid: 201, ppid: 1, exe: "skateday.exe"},
		fakeProcess{pid: 300, ppid: 1, exe: "bash"},
	}, nil)

	pids, err := otherInstances()
	if err != nil {
		t.Fatal(err)
	}
	if len(pids) != 2 || pids[0] != 200 || pids[1] != 201 {
		t.Errorf("otherInstances() = %v, want [200 201]", pids)
	}
}

func TestBackupRestore_RefusesWhileRunning(t *testing.T) {
	ctx, _ := setupTestDB(t)
	stubProcesses(t, []ps.Process{fakeProcess{pid: 200, ppid: 1, exe: "skateday"}}, nil)

	err := (&BackupRestoreCmd{BackupFile: ctx.Store.GetConfigPath(), Yes: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "still running") {
		t.Errorf("restore error = %v, want a running-process error", err)
	}
}

func TestBackupRestore_ProcessListFailureWarns(t *testing.T) {
	ctx, out := setupTestDB(t)
	stubProcesses(t, nil, errors.New("no /proc"))

	ctx.In = strings.NewReader("n\n")
	if err := (&BackupRestoreCmd{BackupFile: ctx.Store.GetConfigPath()}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Could not check for running skateday processes") {
		t.Errorf("expected a warning:\n%s", out.String())
	}
}
