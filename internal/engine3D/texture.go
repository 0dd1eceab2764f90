package engine3D

import (
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BlackTexture stands in for the surface map until the real one is uploaded.
var BlackTexture *rl.Texture2D

// InitDefaults creates the default textures. It needs an open window.
func InitDefaults() {
	if BlackTexture == nil {
		img := rl.GenImageColor(1, 1, rl.Black)
		tex := rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		BlackTexture = &tex
	}
}

// UnloadDefaults releases what InitDefaults created.
func UnloadDefaults() {
	if BlackTexture != nil {
		rl.UnloadTexture(*BlackTexture)
		BlackTexture = nil
	}
}

// LoadTexture uploads a decoded image with mipmaps and anisotropic filtering.
func LoadTexture(img *image.RGBA) rl.Texture2D {
	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)

	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterAnisotropic16x)
	return tex
}
