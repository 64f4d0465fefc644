package catalog

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed devices/*
var embeddedDevices embed.FS

var (
	defaultOnce  sync.Once
	defaultStore *Store
	defaultErr   error
)

// EmbeddedFS returns the bundled device definitions (TalonFX motor and
// CANcoder). Callers may pass this filesystem to LoadFS.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDevices, "devices")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default loads the embedded catalog once and returns the shared store.
func Default() (*Store, error) {
	defaultOnce.Do(func() {
		defaultStore, defaultErr = LoadFS(EmbeddedFS())
	})
	return defaultStore, defaultErr
}
