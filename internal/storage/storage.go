package storage

import (
	"fmt"

	"github.com/Veraticus/suitwatch/internal/service"
)

// Supported storage backends.
const (
	DriverSQLite = "sqlite"
	DriverYAML   = "yaml"
)

// Open returns the storage backend named by driver. Migrate must still be called.
func Open(driver, path string) (service.Storage, error) {
	switch driver {
	case DriverSQLite, "":
		return NewSQLiteStorage(path)
	case DriverYAML:
		return NewYAMLStorage(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, driver)
	}
}

var (
	_ service.Storage = (*SQLiteStorage)(nil)
	_ service.Storage = (*YAMLStorage)(nil)
)
