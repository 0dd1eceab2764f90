package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CPU mirror of the GLSL programs. It evaluates the same formulas so they can
// be tested without a GPU and sampled by the debug overlay.

const (
	LandThreshold     = 0.3
	TextureGamma      = 0.9
	ContrastGamma     = 0.95
	ColorFloor        = 0.15
	RimPower          = 1.5
	AuroraStrength    = 0.3
	AtmosphereFalloff = 0.7
	AtmosphereOpacity = 0.3
	GlowFalloff       = 0.6
)

var (
	LumaWeights = mgl32.Vec3{0.299, 0.587, 0.114}
	ViewForward = mgl32.Vec3{0, 0, 1}

	LightDirections = [3]mgl32.Vec3{
		mgl32.Vec3{1, 1, 1}.Normalize(),
		mgl32.Vec3{-1, -1, -1}.Normalize(),
		mgl32.Vec3{-1, -1, 0}.Normalize(),
	}
	LightWeights = [3]float32{1.0, 0.5, 0.7}
)

type SurfaceClass int

const (
	Ocean SurfaceClass = iota
	Land
)

func (c SurfaceClass) String() string {
	if c == Land {
		return "land"
	}
	return "ocean"
}

func Luma(c mgl32.Vec3) float32 {
	return c.Dot(LumaWeights)
}

// Classify is inclusive-above: luma exactly at the threshold is land.
func Classify(luma float32) SurfaceClass {
	if luma >= LandThreshold {
		return Land
	}
	return Ocean
}

func Smoothstep(edge0, edge1, x float32) float32 {
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// AuroraGate is 0 below |yNorm| = 0.8 and 1 at the poles.
func AuroraGate(yNorm float32) float32 {
	return Smoothstep(0.8, 1.0, abs32(yNorm))
}

// AuroraWave is the time-modulated aurora factor for model-space height y on a
// shell of the given radius.
func AuroraWave(y, radius, t float32) float32 {
	wave := sin32(y*10+t)*0.5 + 0.5
	return wave * AuroraGate(y/radius)
}

func (p Palette) AuroraTerm(y, radius, t float32) mgl32.Vec3 {
	return p.Aurora.Mul(AuroraWave(y, radius, t) * AuroraStrength)
}

// DirectionalLight sums the three fixed lights and shapes the result with power.
func DirectionalLight(n mgl32.Vec3, power float32) float32 {
	var light float32
	for i, dir := range LightDirections {
		light += max32(0, n.Dot(dir)) * LightWeights[i]
	}
	return pow32(light, power)
}

func RimTerm(n mgl32.Vec3) float32 {
	return pow32(1-max32(0, n.Dot(ViewForward)), RimPower)
}

// SurfaceSample is everything the surface program reads for one fragment.
// Normal is in view space, Position in model space.
type SurfaceSample struct {
	Texel    mgl32.Vec3
	UV       mgl32.Vec2
	Normal   mgl32.Vec3
	Position mgl32.Vec3
}

func (p Palette) SurfaceColor(s SurfaceSample, t, lightPower, radius float32) mgl32.Vec3 {
	tex := powVec(s.Texel, TextureGamma)

	var enhanced mgl32.Vec3
	if Classify(Luma(tex)) == Land {
		enhanced = mulEach(tex, p.LandTint)
		detail := sin32(s.UV[0]*100) * sin32(s.UV[1]*100) * 0.02
		enhanced = enhanced.Add(mgl32.Vec3{detail, detail, detail})
	} else {
		enhanced = mulEach(tex, p.OceanTint)
		wave := sin32(s.UV[0]*50+t*2) * sin32(s.UV[1]*50+t*2) * 0.02
		enhanced = enhanced.Add(mgl32.Vec3{wave, wave, wave})
	}

	n := s.Normal.Normalize()
	light := DirectionalLight(n, lightPower)

	color := enhanced.Mul(0.85 + 0.15*light).
		Add(p.Rim.Mul(RimTerm(n))).
		Add(p.AuroraTerm(s.Position[1], radius, t))

	for i := range color {
		color[i] = pow32(max32(color[i], ColorFloor), ContrastGamma)
	}
	return color
}

func AtmosphereIntensity(n mgl32.Vec3) float32 {
	f := AtmosphereFalloff - n.Dot(ViewForward)
	return f * f
}

// AtmosphereColor returns the premultiplied colour and alpha of one atmosphere fragment.
func (p Palette) AtmosphereColor(n mgl32.Vec3, y, radius, t float32) (mgl32.Vec3, float32) {
	intensity := AtmosphereIntensity(n)
	light := n.Dot(LightDirections[0])
	light *= light

	color := p.Atmosphere.Mul(intensity * (0.7 + 0.3*light)).Add(p.AuroraTerm(y, radius, t))
	return color, intensity * AtmosphereOpacity
}

// GlowIntensity uses the camera direction instead of a fixed forward vector.
func GlowIntensity(n, view mgl32.Vec3) float32 {
	f := GlowFalloff - n.Normalize().Dot(view.Normalize())
	return f * f
}

func (p Palette) GlowColor(intensity, y, radius, t float32) mgl32.Vec3 {
	variation := sin32(t*0.5)*0.5 + 0.5
	base := p.GlowBase.Add(p.GlowPeak.Sub(p.GlowBase).Mul(variation))
	return base.Mul(intensity).Add(p.AuroraTerm(y, radius, t))
}

func mulEach(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func powVec(v mgl32.Vec3, e float32) mgl32.Vec3 {
	return mgl32.Vec3{pow32(v[0], e), pow32(v[1], e), pow32(v[2], e)}
}

func sin32(x float32) float32    { return float32(math.Sin(float64(x))) }
func pow32(x, e float32) float32 { return float32(math.Pow(float64(x), float64(e))) }
func abs32(x float32) float32    { return float32(math.Abs(float64(x))) }

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
