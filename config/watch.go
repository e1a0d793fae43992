// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"cogentcore.org/glview/gpu"
)

// Watch reloads the file at path whenever it is written or created, and
// calls fn with the result of [Load]. The
// watcher is set up before Watch returns; events are handled on a
// separate goroutine until ctx is done, so fn must not touch the GL
// context directly.
func Watch(ctx context.Context, path string, fn func(*Viewer, error)) error {
	path = filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Editors often replace the file, so watch its directory.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return err
	}
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				gpu.Logger().Debug("config: reloading", "path", path, "op", event.Op.String())
				fn(Load(path))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				gpu.Logger().Warn("config: watcher", "path", path, "err", err)
			}
		}
	}()
	return nil
}
