package mdfile

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/mdprogress/pkg/checklist"
)

// Result is one synchronized file.
type Result struct {
	Path   string
	Before string
	After  string
	Edits  []checklist.LineEdit
}

func (me *Result) Changed() bool {
	return len(me.Edits) > 0
}

// Sync brings the counters and bars of one file up to date. The file is only written when write
// is set and at least one line changed, so syncing a synchronized file never touches it.
func Sync(ctx context.Context, afs afero.Fs, path string, sync *checklist.Synchronizer, write bool) (*Result, error) {
	info, err := afs.Stat(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	data, err := afero.ReadFile(afs, path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	res := &Result{Path: path, Before: string(data)}
	res.Edits = sync.Synchronize(res.Before)
	res.After = checklist.Apply(res.Before, res.Edits)

	logger := zerolog.Ctx(ctx).With().Str("path", path).Int("edits", len(res.Edits)).Logger()

	if !res.Changed() || !write {
		logger.Trace().Msg("file not written")
		return res, nil
	}

	if err := afero.WriteFile(afs, path, []byte(res.After), info.Mode().Perm()); err != nil {
		return nil, errors.Errorf("writing %s: %w", path, err)
	}

	logger.Debug().Msg("file synchronized")

	return res, nil
}

// SyncAll runs Sync over every path. A failing file does not stop the others, all failures are
// returned together.
func SyncAll(ctx context.Context, afs afero.Fs, paths []string, sync *checklist.Synchronizer, write bool) ([]*Result, error) {
	var results []*Result
	var errs error

	for _, path := range paths {
		res, err := Sync(ctx, afs, path, sync, write)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		results = append(results, res)
	}

	return results, errs
}
