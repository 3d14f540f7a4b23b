package main

import (
	"fmt"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type imageChangedMsg struct {
	path string
}

type watchErrMsg struct {
	err error
}

// ImageWatcher reloads the background image when its file changes on disk.
// The parent directory is watched so editors that replace the file by
// rename are still seen.
type ImageWatcher struct {
	watcher *fsnotify.Watcher

	mu   sync.Mutex
	path string
	dir  string
}

func NewImageWatcher() (*ImageWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &ImageWatcher{watcher: w}, nil
}

// Watch switches the watched file. An empty path stops watching.
func (iw *ImageWatcher) Watch(path string) error {
	iw.mu.Lock()
	defer iw.mu.Unlock()

	dir := ""
	if path != "" {
		path = filepath.Clean(path)
		dir = filepath.Dir(path)
	}
	if iw.dir != "" && iw.dir != dir {
		_ = iw.watcher.Remove(iw.dir)
	}
	if dir != "" && dir != iw.dir {
		if err := iw.watcher.Add(dir); err != nil {
			iw.path, iw.dir = "", ""
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	iw.path, iw.dir = path, dir
	return nil
}

func (iw *ImageWatcher) matches(ev fsnotify.Event) bool {
	iw.mu.Lock()
	defer iw.mu.Unlock()
	if iw.path == "" || filepath.Clean(ev.Name) != iw.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create) != 0
}

// Wait blocks until the watched file changes. Issue it again after every
// message it produces.
func (iw *ImageWatcher) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-iw.watcher.Events:
				if !ok {
					return nil
				}
				if iw.matches(ev) {
					return imageChangedMsg{path: filepath.Clean(ev.Name)}
				}
			case err, ok := <-iw.watcher.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (iw *ImageWatcher) Close() error {
	return iw.watcher.Close()
}
