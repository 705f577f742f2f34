package chapter

import (
	"context"
	"errors"
	iofs "io/fs"

	"github.com/eykd/chapterlint/internal/chapterconfig"
	"github.com/eykd/chapterlint/internal/domain"
)

// ErrConfigUnavailable matches every failure to obtain a parsed chapter config.
var ErrConfigUnavailable = errors.New("chapter config unavailable")

// Reasons a chapter config could not be loaded.
var (
	ErrConfigMissing    = errors.New("config not found")
	ErrConfigUnreadable = errors.New("cannot read config")
	ErrConfigInvalid    = errors.New("invalid YAML in config")
)

// ConfigError reports why a chapter config could not be loaded.
type ConfigError struct {
	Reason error
	Path   string
	Err    error
}

// Error returns the reason, path and underlying cause.
func (e *ConfigError) Error() string {
	return e.Reason.Error() + ": " + e.Path + ": " + e.Err.Error()
}

// Is matches the reason sentinel and ErrConfigUnavailable.
func (e *ConfigError) Is(target error) bool {
	return target == e.Reason || target == ErrConfigUnavailable
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// loadConfig reads and parses the chapter config exactly once.
func loadConfig(ctx context.Context, fs FileSystem, unit domain.Unit) (*domain.ChapterConfig, error) {
	path := unit.ConfigPath()

	data, err := fs.ReadFile(ctx, path)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		return nil, &ConfigError{Reason: ErrConfigMissing, Path: path, Err: err}
	case err != nil:
		return nil, &ConfigError{Reason: ErrConfigUnreadable, Path: path, Err: err}
	}

	cfg, err := chapterconfig.Parse(data)
	if err != nil {
		return nil, &ConfigError{Reason: ErrConfigInvalid, Path: path, Err: err}
	}
	return cfg, nil
}
