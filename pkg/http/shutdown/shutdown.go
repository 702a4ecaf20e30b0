// Package shutdown coordinates graceful teardown across shutdown triggers.
package shutdown

import "sync"

// Callback is invoked once a shutdown has been requested.
type Callback interface {
	OnShutdown(managerName string) error
}

// Func adapts a plain function to the Callback interface.
type Func func(managerName string) error

// OnShutdown implements Callback.
func (f Func) OnShutdown(managerName string) error {
	return f(managerName)
}

// Manager watches for a shutdown trigger and reports it to GracefulShutdown.
type Manager interface {
	Name() string
	Start(gs *GracefulShutdown) error
	ShutdownStart() error
	ShutdownFinish() error
}

// ErrorHandler receives callback and manager errors during shutdown.
type ErrorHandler interface {
	OnError(err error)
}

// GracefulShutdown fans one shutdown trigger out to all registered callbacks.
type GracefulShutdown struct {
	callbacks    []Callback
	managers     []Manager
	errorHandler ErrorHandler
}

// New returns an empty GracefulShutdown.
func New() *GracefulShutdown {
	return &GracefulShutdown{}
}

// Start launches all registered managers.
func (gs *GracefulShutdown) Start() error {
	for _, m := range gs.managers {
		if err := m.Start(gs); err != nil {
			return err
		}
	}
	return nil
}

// AddShutdownManager registers a trigger source.
func (gs *GracefulShutdown) AddShutdownManager(m Manager) {
	gs.managers = append(gs.managers, m)
}

// AddShutdownCallback registers work to run at shutdown.
func (gs *GracefulShutdown) AddShutdownCallback(cb Callback) {
	gs.callbacks = append(gs.callbacks, cb)
}

// SetErrorHandler sets the receiver for shutdown errors.
func (gs *GracefulShutdown) SetErrorHandler(h ErrorHandler) {
	gs.errorHandler = h
}

// StartShutdown runs every callback concurrently, then finishes the manager.
func (gs *GracefulShutdown) StartShutdown(m Manager) {
	gs.reportError(m.ShutdownStart())

	var wg sync.WaitGroup
	for _, cb := range gs.callbacks {
		wg.Add(1)
		go func(cb Callback) {
			defer wg.Done()
			gs.reportError(cb.OnShutdown(m.Name()))
		}(cb)
	}
	wg.Wait()

	gs.reportError(m.ShutdownFinish())
}

func (gs *GracefulShutdown) reportError(err error) {
	if err != nil && gs.errorHandler != nil {
		gs.errorHandler.OnError(err)
	}
}
