package main

import (
	"image"

	"planetview/internal/convert"
	"planetview/internal/utils"
)

type textureResult struct {
	path string
	img  *image.RGBA
	err  error
}

// TextureLoader decodes the surface texture off the render thread. The
// decoded pixels come back over a channel and are uploaded by Poll.
type TextureLoader struct {
	results chan textureResult
	pending bool
}

func resolveTexturePath(name string) string {
	if path := utils.FindTextureFile(name); path != "" {
		return path
	}
	return utils.ResolveAssetPath(name)
}

// StartTextureLoad begins decoding name. An empty name loads nothing and the
// surface keeps its black default.
func StartTextureLoad(name string) *TextureLoader {
	l := &TextureLoader{results: make(chan textureResult, 1)}
	if name == "" {
		utils.Warn("No surface texture configured")
		return l
	}

	path := resolveTexturePath(name)
	utils.Debug("Loading surface texture from %s", path)
	l.pending = true
	go func() {
		img, err := convert.LoadImage(path)
		l.results <- textureResult{path: path, img: img, err: err}
	}()
	return l
}

// Poll hands a finished decode to upload. It never blocks and reports
// whether the load has settled, successfully or not.
func (l *TextureLoader) Poll(upload func(*image.RGBA)) bool {
	if !l.pending {
		return true
	}

	select {
	case res := <-l.results:
		l.pending = false
		if res.err != nil {
			utils.Warn("Failed to load texture %s, keeping black default: %v", res.path, res.err)
			return true
		}
		upload(res.img)
	default:
		return false
	}
	return true
}
