package utils

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/leatherman/logging"
)

// RemoveFileNoError will remove the file at the given path if it exists. Any
// errors will be suppressed.
func RemoveFileNoError(path string) {
	utils.UncheckedErrorFunc(func() error {
		if _, err := os.Stat(path); err == nil {
			return os.Remove(path)
		}
		return nil
	})
}

// SafeJoinDir performs a filepath.Join of 'parent' and 'subdir' but returns an error
// if the resulting path points outside of 'parent'.
// See also https://github.com/cyphar/filepath-securejoin.
func SafeJoinDir(parent, subdir string) (string, error) {
	res := filepath.Join(parent, subdir)
	if !strings.HasPrefix(filepath.Clean(res), filepath.Clean(parent)+string(os.PathSeparator)) {
		return res, errors.Errorf("unsafe path join: '%s' with '%s'", parent, subdir)
	}
	return res, nil
}

// CreateFolder creates the directory `name` with mode 0o775. A directory that already exists is
// not an error.
func CreateFolder(name string, logger logging.Logger) error {
	err := os.Mkdir(name, 0o775)
	if err == nil {
		logger.Infow("created folder", "path", name)
		return nil
	}
	if info, statErr := os.Stat(name); statErr == nil && info.IsDir() {
		logger.Debugw("folder is present, not creating", "path", name)
		return nil
	}
	return errors.Wrapf(err, "failed to create folder %q", name)
}

// FolderContents returns the names of the entries in folder `name`, sorted in ascending byte
// order. The `.` and `..` entries are never included.
func FolderContents(name string) ([]string, error) {
	entries, err := os.ReadDir(name)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening folder %q", name)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		files = append(files, entry.Name())
	}
	slices.Sort(files)
	return files, nil
}
