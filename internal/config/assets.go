package config

import (
	"os"
	"path/filepath"

	"planetview/internal/utils"
)

// DiscoverAssets points utils.AssetRoot at customPath, or at the first
// well-known install location that exists.
func DiscoverAssets(customPath string) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			utils.AssetRoot = customPath
			utils.Info("Using custom assets path: %s", customPath)
			return
		}
		utils.Warn("Custom assets path NOT FOUND: %s", customPath)
		utils.Info("Falling back to automatic discovery...")
	}

	home, _ := os.UserHomeDir()

	possiblePaths := []string{
		filepath.Join(home, ".local/share/planetview/assets"),
		"/usr/local/share/planetview/assets",
		"/usr/share/planetview/assets",
	}

	for _, p := range possiblePaths {
		if _, err := os.Stat(p); err == nil {
			utils.AssetRoot = p
			utils.Info("Discovered assets at: %s", p)
			return
		}
	}

	utils.Debug("No shared assets folder found; only ./assets will be searched")
}
