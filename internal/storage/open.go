package storage

import "fmt"

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

type Config struct {
	Backend  Backend
	Driver   string
	DBPath   string
	FilePath string
}

func Open(cfg Config) (KV, error) {
	switch cfg.Backend {
	case BackendSQLite, "":
		repo, err := OpenSQLite(cfg.Driver, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case BackendFile:
		repo, err := OpenFile(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case BackendMemory:
		return NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
