//go:build unix

package espeak

import (
	"os"
	"syscall"
)

// terminate asks the process to stop with SIGTERM, the same signal the
// engine receives from a shell interrupt.
func terminate(p *os.Process) error {
	return p.Signal(syscall.SIGTERM)
}
