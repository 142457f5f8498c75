package mdfile

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/mdprogress/pkg/checklist"
	"github.com/walteh/mdprogress/pkg/config"
)

// Watcher re-synchronizes matching files under a directory whenever they are written. Writing
// the synchronized text fires one more event, which finds nothing to change and stops there.
type Watcher struct {
	fs      afero.Fs
	cfg     *config.Config
	sync    *checklist.Synchronizer
	root    string
	watcher *fsnotify.Watcher

	// OnSync is called after every handled event, mostly for tests.
	OnSync func(*Result)
}

// NewWatcher watches root and every directory below it. fsnotify only sees the real file
// system, so afs must be backed by it.
func NewWatcher(ctx context.Context, afs afero.Fs, cfg *config.Config, sync *checklist.Synchronizer, root string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Errorf("creating watcher: %w", err)
	}

	me := &Watcher{fs: afs, cfg: cfg, sync: sync, root: root, watcher: w}

	if err := me.addTree(ctx, root); err != nil {
		_ = w.Close()
		return nil, err
	}

	return me, nil
}

func (me *Watcher) addTree(ctx context.Context, dir string) error {
	return afero.Walk(me.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if err := me.watcher.Add(path); err != nil {
			return errors.Errorf("watching %s: %w", path, err)
		}
		zerolog.Ctx(ctx).Trace().Str("dir", path).Msg("watching directory")
		return nil
	})
}

func (me *Watcher) matches(path string) bool {
	rel, err := filepath.Rel(me.root, path)
	if err != nil {
		return false
	}
	return me.cfg.Matches(rel)
}

// Run handles events until ctx is done or the watcher is closed.
func (me *Watcher) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-me.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch error")
		case event, ok := <-me.watcher.Events:
			if !ok {
				return nil
			}
			me.handle(ctx, event)
		}
	}
}

func (me *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	logger := zerolog.Ctx(ctx).With().Str("path", event.Name).Str("op", event.Op.String()).Logger()

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := me.fs.Stat(event.Name); err == nil && info.IsDir() {
			if err := me.addTree(ctx, event.Name); err != nil {
				logger.Warn().Err(err).Msg("watching new directory")
			}
			return
		}
	}

	if !me.matches(event.Name) {
		return
	}

	res, err := Sync(ctx, me.fs, event.Name, me.sync, true)
	if err != nil {
		logger.Warn().Err(err).Msg("synchronizing file")
		return
	}

	if res.Changed() {
		logger.Info().Int("edits", len(res.Edits)).Msg("checklists updated")
	}

	if me.OnSync != nil {
		me.OnSync(res)
	}
}

func (me *Watcher) Close() error {
	if err := me.watcher.Close(); err != nil {
		return errors.Errorf("closing watcher: %w", err)
	}
	return nil
}
