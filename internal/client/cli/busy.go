package cli

import "errors"

// ErrBusy is returned when an action is dispatched while another one is
// still running. The second action is dropped, not queued.
var ErrBusy = errors.New("another action is in progress")

// exclusive runs fn unless another exclusive action is running.
func (a *App) exclusive(fn func() error) error {
	if !a.busy.CompareAndSwap(false, true) {
		a.notify(errorNotice("Please wait, " + ErrBusy.Error() + "."))
		return ErrBusy
	}
	defer a.busy.Store(false)
	return fn()
}

// Busy reports whether an action is running.
func (a *App) Busy() bool {
	return a.busy.Load()
}
