package convert

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"planetview/internal/utils"
)

// Limit concurrency to avoid RAM spikes on large planet maps.
const maxConcurrency = 4

var packableExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// PackDir converts every PNG/JPEG under root into a .ptex file in outDir,
// keeping the relative layout. It returns the number of files written and
// the first error seen; other files are still attempted.
func PackDir(root, outDir string) (int, error) {
	utils.Info("Packing textures under %s in parallel...", root)
	var packed int32
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrency)

	var firstErr error
	var errOnce sync.Once
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	walkErr := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !packableExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".ptex")

		wg.Add(1)
		sem <- struct{}{}
		go func(src, dst string) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
				fail(err)
				return
			}
			if err := PackFile(src, dst); err != nil {
				utils.Error("Failed to pack %s: %v", src, err)
				fail(err)
				return
			}
			atomic.AddInt32(&packed, 1)
		}(path, dst)
		return nil
	})

	wg.Wait()
	if walkErr != nil {
		return int(packed), walkErr
	}
	utils.Info("Packing finished. Wrote %d textures.", packed)
	return int(packed), firstErr
}
