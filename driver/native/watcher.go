package native

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gobeaver/vfs"
)

// Event is a change to a file whose name matches the scanner's pattern.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watch reports changes below the scanner's root until ctx is done. The
// root directory is watched, and with a recursive scanner every
// subdirectory too, including ones created while watching. fn runs on the
// calling goroutine.
func (s *Scanner) Watch(ctx context.Context, fn func(Event)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return vfs.WrapPathErr("watch", s.Root().OpenPath(), err)
	}
	defer w.Close()

	dir := s.Root().BaseDir()
	if dir == "" {
		dir = "."
	}
	if err := s.addDirs(w, dir); err != nil {
		return vfs.WrapPathErr("watch", dir, err)
	}
	log := s.Logger().WithPath(dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if s.Recursive() && event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := s.addDirs(w, event.Name); err != nil {
						log.Warn("watch add failed", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !s.Match(filepath.Base(event.Name)) || s.Excluded(event.Name) {
				continue
			}
			fn(Event{Path: event.Name, Op: event.Op})
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)
		}
	}
}

func (s *Scanner) addDirs(w *fsnotify.Watcher, dir string) error {
	if !s.Recursive() {
		return w.Add(dir)
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && s.Excluded(path) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// ChangeToken returns a token fired by the first matching change below the
// root. Watching stops once the token fires or ctx is done.
func (s *Scanner) ChangeToken(ctx context.Context) (vfs.ChangeToken, error) {
	dir := s.Root().BaseDir()
	if dir == "" {
		dir = "."
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, vfs.WrapPathErr("watch", dir, mapError(err))
	}

	token := vfs.NewCallbackChangeToken()
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer cancel()
		err := s.Watch(ctx, func(Event) {
			token.SignalChange()
			cancel()
		})
		if err != nil {
			s.Logger().WithPath(dir).Warn("watch failed", "error", err)
		}
	}()
	return token, nil
}
