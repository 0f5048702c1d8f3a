package reload

import "errors"

var (
	ErrNilStore       = errors.New("reload: nil manifest store")
	ErrWatcherFailed  = errors.New("reload: failed to start file watcher")
	ErrReloadFailed   = errors.New("reload: failed to rebuild manifest")
	ErrAlreadyRunning = errors.New("reload: watcher already running")
)
