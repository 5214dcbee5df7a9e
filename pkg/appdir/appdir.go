// Package appdir resolves the per-user data directory (~/.regrep).
package appdir

import (
	"log"
	"os"
	"path"
	"sync"
)

var (
	once   sync.Once
	appDir string
)

// AppDir returns the per-user data directory, creating it on first use.
func AppDir() string {
	once.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("%v", err)
		}
		appDir = path.Join(home, ".regrep")
		if err := os.MkdirAll(appDir, 0755); err != nil {
			log.Fatalf("creating %s: %v", appDir, err)
		}
	})
	return appDir
}
