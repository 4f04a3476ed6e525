package fs

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watch reports changes made to the root or any theme directory, for
// refreshing listings that were changed behind our back. Bursts of events are
// coalesced: the channel holds at most one pending notification. The channel
// is closed when ctx is done or the watcher fails.
func (x *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := x.watchAll(watcher); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	changed := make(chan struct{}, 1)
	go func() {
		defer close(changed)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				x.log.Debug().Str("event", event.String()).Msg("filesystem event")
				if event.Op&fsnotify.Create == fsnotify.Create {
					// new theme directories need their own watch; Add on a
					// plain file is harmless
					_ = watcher.Add(event.Name)
				}
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				x.log.Warn().Err(err).Msg("watcher error")
			}
		}
	}()
	return changed, nil
}

func (x *Store) watchAll(watcher *fsnotify.Watcher) error {
	if err := watcher.Add(x.Directory); err != nil {
		return fmt.Errorf("unable to watch %s: %w", x.Directory, err)
	}
	themes, err := x.Themes()
	if err != nil {
		return err
	}
	for _, t := range themes {
		if err := watcher.Add(t.Path); err != nil {
			return fmt.Errorf("unable to watch %s: %w", t.Path, err)
		}
	}
	return nil
}
