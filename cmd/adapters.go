package cmd

import (
	"log/slog"

	"github.com/eykd/chapterlint/internal/chapter"
	"github.com/eykd/chapterlint/internal/fs"
	"github.com/eykd/chapterlint/internal/lock"
)

// wireServices connects the chapter services to the real filesystem and
// advisory lock.
func wireServices(logger *slog.Logger) (ValidateRunner, ScaffoldRunner) {
	reader := fs.OSReader{}
	validator := chapter.NewValidator(reader, logger)
	scaffolder := chapter.NewScaffolder(reader, fs.OSWriter{}, newLocker, logger)
	return validator, scaffolder
}

func newLocker(path string) chapter.Locker {
	return lock.NewFromPath(path)
}
