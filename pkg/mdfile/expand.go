package mdfile

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/mdprogress/pkg/config"
)

// Expand turns command line arguments into the files to synchronize. Files are taken as given
// and directories are searched with the include globs of cfg. No arguments means ".".
func Expand(afs afero.Fs, cfg *config.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	seen := map[string]bool{}
	var files []string
	var errs error

	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		info, err := afs.Stat(arg)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("reading %s: %w", arg, err))
			continue
		}

		if !info.IsDir() {
			add(arg)
			continue
		}

		matches, err := globDir(afs, arg, cfg.Include)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(files)

	return files, errs
}

func globDir(afs afero.Fs, dir string, patterns []string) ([]string, error) {
	var fsys fs.FS
	if filepath.Clean(dir) == "." {
		fsys = afero.NewIOFS(afs)
	} else {
		fsys = afero.NewIOFS(afero.NewBasePathFs(afs, dir))
	}

	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %s in %s: %w", pattern, dir, err)
		}
		for _, m := range matches {
			out = append(out, filepath.Join(dir, filepath.FromSlash(m)))
		}
	}
	return out, nil
}
