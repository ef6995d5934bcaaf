package compilecontext

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// StartWatching creates an fsnotify watcher over every vapidir registered so
// far and invalidates the context whenever one of them changes on disk,
// the same way bufbuild's language server refreshes a workspace image from
// its fileWatcher goroutine (private/buf/buflsp/lsp.go's NewBufLsp). Only
// the vapidirs known at call time are watched; a vapidir registered
// afterward needs a fresh StartWatching call to be picked up. onError, if
// non-nil, is called from the watcher goroutine for any error fsnotify
// itself reports (e.g. a watched directory removed out from under it); it
// must not block or call back into the CompilationContext.
func (c *CompilationContext) StartWatching(onError func(error)) error {
	c.mu.Lock()
	if c.watcher != nil {
		c.mu.Unlock()
		return fmt.Errorf("compilecontext: already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("creating vapidir watcher: %w", err)
	}

	for _, dir := range c.vapidirs {
		if err := watcher.Add(dir); err != nil {
			c.mu.Unlock()
			watcher.Close()
			return fmt.Errorf("watching vapidir %s: %w", dir, err)
		}
	}

	c.watcher = watcher
	c.mu.Unlock()

	go c.watchLoop(watcher, onError)
	return nil
}

func (c *CompilationContext) watchLoop(watcher *fsnotify.Watcher, onError func(error)) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				c.Invalidate()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}

// StopWatching closes the watcher started by StartWatching, if any. Safe to
// call when no watcher is running.
func (c *CompilationContext) StopWatching() error {
	c.mu.Lock()
	watcher := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if watcher == nil {
		return nil
	}
	return watcher.Close()
}
