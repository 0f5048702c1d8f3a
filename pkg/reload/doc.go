// Package reload keeps a manifest.Store in sync with the routing document on
// disk.
//
// A Watcher observes the document's directory with fsnotify, debounces bursts
// of write events and rebuilds the manifest. A successful build replaces the
// store's snapshot in one atomic swap; a failed build is logged and the
// previous snapshot keeps serving.
//
//	w, err := reload.New(path, store, reload.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	go w.Run(ctx)
package reload
