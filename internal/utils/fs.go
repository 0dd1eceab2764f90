package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// AssetRoot is an extra directory searched after the local assets folder.
var AssetRoot string

var textureExtensions = []string{".ptex", ".png", ".jpg", ".jpeg"}

func ResolveAssetPath(relPath string) string {
	// Try local assets first
	localPath := filepath.Join("assets", relPath)
	if _, err := os.Stat(localPath); err == nil {
		return localPath
	}

	if AssetRoot != "" {
		rootPath := filepath.Join(AssetRoot, relPath)
		if _, err := os.Stat(rootPath); err == nil {
			return rootPath
		}
	}

	return localPath // Fallback to local even if not exists
}

// FindTextureFile locates a planet texture. Absolute or existing paths win;
// otherwise the name is tried with each known extension in the asset folders.
func FindTextureFile(name string) string {
	if name == "" {
		return ""
	}

	if _, err := os.Stat(name); err == nil {
		return name
	}

	cleanName := strings.TrimPrefix(name, "textures/")
	if ext := filepath.Ext(cleanName); ext != "" {
		cleanName = strings.TrimSuffix(cleanName, ext)
	}

	searchDirs := []string{
		"assets/textures",
		"assets",
		"textures",
	}

	if AssetRoot != "" {
		searchDirs = append(searchDirs,
			filepath.Join(AssetRoot, "textures"),
			AssetRoot,
		)
	}

	for _, dir := range searchDirs {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}

		for _, ext := range textureExtensions {
			p = filepath.Join(dir, cleanName+ext)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}

	return ""
}
