package backups

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/skateday/internal/constants"
)

var (
	processesFunc = ps.Processes
	selfPID       = os.Getpid
)

// otherInstances returns the pids of skateday processes other than this one
func otherInstances() ([]int, error) {
	procs, err := processesFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	self := selfPID()

	var pids []int
	for _, p := range procs {
		if p.Pid() == self || p.PPid() == self {
			continue
		}
		exe := strings.TrimSuffix(p.Executable(), ".exe")
		if exe == constants.AppName {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}
