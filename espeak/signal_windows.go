//go:build !unix

package espeak

import "os"

// terminate kills the process outright; there is no SIGTERM equivalent on
// this platform.
func terminate(p *os.Process) error {
	return p.Kill()
}
