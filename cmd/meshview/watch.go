// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher reports changes to a single file.
// The parent directory is watched so that files replaced
// by renaming are still tracked.
type fileWatcher struct {
	w    *fsnotify.Watcher
	name string
	log  *log.Logger
	wake func()

	// C receives a value after the file is written or
	// recreated. Notifications coalesce while C is full.
	C chan struct{}
}

// newFileWatcher starts watching name. If wake is not nil,
// it is called from the watching goroutine after each
// notification, so that a loop blocked waiting for window
// events can return and drain C.
func newFileWatcher(name string, logger *log.Logger, wake func()) (*fileWatcher, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	fw := &fileWatcher{w: w, name: abs, log: logger, wake: wake, C: make(chan struct{}, 1)}
	go fw.loop()
	return fw, nil
}

func (fw *fileWatcher) loop() {
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.name || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			select {
			case fw.C <- struct{}{}:
			default:
			}
			if fw.wake != nil {
				fw.wake()
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			fw.log.Print(err)
		}
	}
}

// Close stops watching.
func (fw *fileWatcher) Close() error { return fw.w.Close() }
