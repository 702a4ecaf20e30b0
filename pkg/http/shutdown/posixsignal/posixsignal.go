// Package posixsignal triggers graceful shutdown on POSIX signals.
package posixsignal

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/skeinlab/skein/pkg/http/shutdown"
)

// Name identifies this shutdown manager.
const Name = "PosixSignalManager"

// PosixSignalManager converts SIGINT/SIGTERM into a shutdown request.
type PosixSignalManager struct {
	signals []os.Signal
}

// NewPosixSignalManager returns a manager for the given signals,
// defaulting to SIGINT and SIGTERM.
func NewPosixSignalManager(sig ...os.Signal) *PosixSignalManager {
	if len(sig) == 0 {
		sig = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	return &PosixSignalManager{signals: sig}
}

// Name implements shutdown.Manager.
func (m *PosixSignalManager) Name() string {
	return Name
}

// Start waits for a signal in the background and kicks off shutdown.
func (m *PosixSignalManager) Start(gs *shutdown.GracefulShutdown) error {
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, m.signals...)
		<-c

		gs.StartShutdown(m)
	}()
	return nil
}

// ShutdownStart implements shutdown.Manager.
func (m *PosixSignalManager) ShutdownStart() error {
	return nil
}

// ShutdownFinish exits the process once all callbacks have run.
func (m *PosixSignalManager) ShutdownFinish() error {
	os.Exit(0)
	return nil
}
