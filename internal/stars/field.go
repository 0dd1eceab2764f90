package stars

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultCount   = 20000
	DefaultExtent  = 2000
	DefaultSize    = 0.1
	DefaultOpacity = 0.8
)

type Options struct {
	Count  int
	Extent float32 // side of the cube centred on the origin
	Seed   int64   // 0 picks a time-based seed
}

// Field is an immutable point cloud drawn behind the planet.
type Field struct {
	Points  []mgl32.Vec3
	Color   mgl32.Vec3
	Size    float32
	Opacity float32
	Seed    int64
}

// Generate samples Count points with every coordinate uniform in
// [-Extent/2, Extent/2).
func Generate(opts Options) Field {
	if opts.Count < 0 {
		opts.Count = 0
	}
	if opts.Extent <= 0 {
		opts.Extent = DefaultExtent
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	points := make([]mgl32.Vec3, opts.Count)
	for i := range points {
		points[i] = mgl32.Vec3{
			(rng.Float32() - 0.5) * opts.Extent,
			(rng.Float32() - 0.5) * opts.Extent,
			(rng.Float32() - 0.5) * opts.Extent,
		}
	}

	return Field{
		Points:  points,
		Color:   mgl32.Vec3{1, 1, 1},
		Size:    DefaultSize,
		Opacity: DefaultOpacity,
		Seed:    opts.Seed,
	}
}

// Bounds returns the axis-aligned box enclosing every point.
func (f Field) Bounds() (min, max mgl32.Vec3) {
	if len(f.Points) == 0 {
		return min, max
	}
	min, max = f.Points[0], f.Points[0]
	for _, p := range f.Points[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return min, max
}
