package filewatch

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// ErrModified is the cause of contexts canceled by a change of watched files.
var ErrModified = fmt.Errorf("watched file is modified")

// UntilModifyContext returns a context canceled when one of target files
// (or entries of target directories) is written, created, removed or renamed.
//
// Attribute changes (chmod) are ignored.
//
// The cause of cancellation (context.Cause) wraps ErrModified and names the file.
//
// When it fails to start watching, the context and cancel func are nil.
func UntilModifyContext(ctx context.Context, targetFilePath ...string) (context.Context, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	for _, f := range targetFilePath {
		if err := w.Add(f); err != nil {
			w.Close()
			return nil, nil, err
		}
	}

	cctx, cancel := context.WithCancelCause(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer w.Close()

		for {
			select {
			case <-cctx.Done():
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				cancel(err)
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op == fsnotify.Chmod {
					continue
				}
				cancel(fmt.Errorf("%w: %s (%s)", ErrModified, ev.Name, ev.Op))
				return
			}
		}
	}()

	return cctx, func() {
		cancel(nil)
		<-done
	}, nil
}
