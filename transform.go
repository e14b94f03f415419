package zoomview

import "math"

// Ratios of the minimum and maximum scales to the initial (fit) scale, and the
// factor by which a live pinch may overshoot the maximum.
const (
	minScaleRatio    = 1.0 / 5
	maxScaleRatio    = 5.0
	liveOverscaleCap = 1.5
)

const (
	doubleTapEpsilon  = 0.01
	degenerateEpsilon = 1e-12
	flingOffsetRatio  = 1.0 / 10
)

// Transform is a uniform scale followed by a translation, mapping content
// coordinates into viewport coordinates:
//
//	viewX = ScaleX*contentX + TranslateX
//	viewY = ScaleY*contentY + TranslateY
//
// ScaleX and ScaleY are always equal; they are kept as separate fields so the
// scale animation can drive both axes symmetrically.
type Transform struct {
	ScaleX, ScaleY         float64
	TranslateX, TranslateY float64
}

// IdentityTransform is the transform that leaves content untouched.
var IdentityTransform = Transform{ScaleX: 1, ScaleY: 1}

// Scale returns the uniform scale factor.
func (t Transform) Scale() float64 { return t.ScaleX }

// Translation returns the translation component.
func (t Transform) Translation() Vec2 { return Vec2{t.TranslateX, t.TranslateY} }

// PostScale scales the transform by (sx, sy) about the viewport point (px, py).
func (t *Transform) PostScale(sx, sy, px, py float64) {
	t.ScaleX *= sx
	t.ScaleY *= sy
	t.TranslateX = sx*(t.TranslateX-px) + px
	t.TranslateY = sy*(t.TranslateY-py) + py
}

// scaleTo scales about (px, py) so the resulting scales are exactly sx and
// sy. A degenerate current scale is left unchanged.
func (t *Transform) scaleTo(sx, sy, px, py float64) {
	if degenerate(t.ScaleX) || degenerate(t.ScaleY) {
		return
	}
	t.PostScale(sx/t.ScaleX, sy/t.ScaleY, px, py)
	t.ScaleX, t.ScaleY = sx, sy
}

// PostTranslate moves the transform by (dx, dy) viewport pixels.
func (t *Transform) PostTranslate(dx, dy float64) {
	t.TranslateX += dx
	t.TranslateY += dy
}

// Matrix returns the transform as a 2D affine matrix [a, b, c, d, tx, ty].
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func (t Transform) Matrix() [6]float64 {
	return [6]float64{t.ScaleX, 0, 0, t.ScaleY, t.TranslateX, t.TranslateY}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -degenerateEpsilon && det < degenerateEpsilon {
		return IdentityTransform.Matrix()
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ScaleLimits are the scale bounds derived from a (content, viewport) pair.
type ScaleLimits struct {
	// Initial is the fit-to-viewport scale.
	Initial float64
	// Min is the smallest scale a pinch may reach (Initial/5).
	Min float64
	// Max is the largest scale the transform settles at (Initial*5).
	Max float64
	// LiveCap is the largest scale a pinch may reach while fingers are down
	// (Max*1.5). Release resolution animates anything above Max back to Max.
	LiveCap float64
}

// newScaleLimits derives the limits from the initial scale.
func newScaleLimits(initial float64) ScaleLimits {
	hi := initial * maxScaleRatio
	return ScaleLimits{
		Initial: initial,
		Min:     initial * minScaleRatio,
		Max:     hi,
		LiveCap: hi * liveOverscaleCap,
	}
}

// Initialize computes the fit-to-viewport transform: the content is centred
// in the viewport and scaled about the viewport centre by
// min(viewport.Width/content.Width, viewport.Height/content.Height).
// The boolean is false, and the other results zero, when either extent is
// zero, negative, or not finite.
func Initialize(viewport, content Extent) (Transform, ScaleLimits, bool) {
	if !viewport.valid() || !content.valid() {
		return Transform{}, ScaleLimits{}, false
	}
	scale := math.Min(viewport.Width/content.Width, viewport.Height/content.Height)

	t := IdentityTransform
	t.PostTranslate((viewport.Width-content.Width)/2, (viewport.Height-content.Height)/2)
	t.PostScale(scale, scale, viewport.Width/2, viewport.Height/2)
	return t, newScaleLimits(scale), true
}

// ResolveBounds maps the content rectangle [0, 0, content.Width,
// content.Height] through t.
func ResolveBounds(t Transform, content Extent) Rect {
	m := t.Matrix()
	x0, y0 := transformPoint(m, 0, 0)
	x1, y1 := transformPoint(m, content.Width, content.Height)
	return Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// SettleTranslation returns the translation that brings a candidate
// transform back into legal bounds. Along each axis, content at least as large
// as the viewport is pulled so no gap shows at either edge; smaller content is
// centred. It has no side effects.
func SettleTranslation(t Transform, content, viewport Extent) (dx, dy float64) {
	b := ResolveBounds(t, content)
	dx = settleAxis(b.Left(), b.Right(), b.Width, viewport.Width)
	dy = settleAxis(b.Top(), b.Bottom(), b.Height, viewport.Height)
	return dx, dy
}

// settleAxis applies the settle rule to one axis.
func settleAxis(lo, hi, size, view float64) float64 {
	if size >= view {
		switch {
		case lo > 0:
			return -lo
		case hi < view:
			return view - hi
		default:
			return 0
		}
	}
	return (view+size)/2 - hi
}

// degenerate reports whether s cannot be divided by.
func degenerate(s float64) bool {
	return (s > -degenerateEpsilon && s < degenerateEpsilon) || math.IsNaN(s) || math.IsInf(s, 0)
}

// scaleRatio returns to/from, treating a degenerate or non-finite ratio as
// no change.
func scaleRatio(to, from float64) float64 {
	if degenerate(from) {
		return 1
	}
	r := to / from
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 1
	}
	return r
}
