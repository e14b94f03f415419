package ebitenview

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/zoomview"
)

// View displays one image through a zoomview.Controller inside a rectangle
// of the screen. It forwards polled pointer input to the controller and
// draws the image with the controller's transform.
type View struct {
	input

	ctrl  *zoomview.Controller
	image *ebiten.Image
	rect  image.Rectangle
	now   time.Duration

	// Background, if set, fills the view before the image is drawn.
	Background *ebiten.Image
	// Debug draws the gesture state and transform over the image.
	Debug bool
}

// NewView creates a view with the given gesture configuration.
func NewView(cfg zoomview.Config) *View {
	return &View{ctrl: zoomview.NewController(cfg)}
}

// Controller returns the view's gesture controller.
func (v *View) Controller() *zoomview.Controller {
	return v.ctrl
}

// Image returns the displayed image, or nil.
func (v *View) Image() *ebiten.Image {
	return v.image
}

// SetImage binds img to the controller. A nil image unbinds it.
func (v *View) SetImage(img *ebiten.Image) {
	v.image = img
	if img == nil {
		v.ctrl.Unbind()
		return
	}
	b := img.Bounds()
	v.ctrl.Bind(zoomview.Extent{Width: float64(b.Dx()), Height: float64(b.Dy())})
}

// SetRect places the view on screen. A size change re-initializes the
// transform.
func (v *View) SetRect(r image.Rectangle) {
	v.rect = r
	v.ctrl.SetViewport(zoomview.Extent{Width: float64(r.Dx()), Height: float64(r.Dy())})
}

// Rect returns the view's screen rectangle.
func (v *View) Rect() image.Rectangle {
	return v.rect
}

// Update polls input, forwards it to the controller, and advances
// animations by one tick.
func (v *View) Update() error {
	v.step(tickDuration(), v.poll)
	return nil
}

// step advances the view clock by dt and routes the events produced by poll.
func (v *View) step(dt time.Duration, poll pollFunc) {
	v.now += dt
	for _, ev := range poll(v.now, float64(v.rect.Min.X), float64(v.rect.Min.Y)) {
		v.ctrl.HandlePointer(ev)
	}
	v.ctrl.Update(dt)
}

// Draw renders the image into the view's rectangle of dst.
func (v *View) Draw(dst *ebiten.Image) {
	v.drawAt(dst, 0)
}

// drawAt renders the view shifted horizontally by dx screen pixels, clipped
// to the shifted rectangle.
func (v *View) drawAt(dst *ebiten.Image, dx int) {
	r := v.rect.Add(image.Pt(dx, 0)).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	target := dst.SubImage(r).(*ebiten.Image)
	if v.Background != nil {
		op := &ebiten.DrawImageOptions{}
		bb := v.Background.Bounds()
		op.GeoM.Scale(float64(v.rect.Dx())/float64(bb.Dx()), float64(v.rect.Dy())/float64(bb.Dy()))
		op.GeoM.Translate(float64(v.rect.Min.X+dx), float64(v.rect.Min.Y))
		target.DrawImage(v.Background, op)
	}
	if v.image != nil {
		if _, ok := v.ctrl.ImageBounds(); ok {
			op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
			op.GeoM = transformGeoM(v.ctrl.Transform())
			op.GeoM.Translate(float64(v.rect.Min.X+dx), float64(v.rect.Min.Y))
			target.DrawImage(v.image, op)
		}
	}
	if v.Debug {
		drawDebug(target, v.ctrl, v.rect.Min.X+dx, v.rect.Min.Y)
	}
}

// transformGeoM converts a zoomview transform into an ebiten.GeoM.
func transformGeoM(t zoomview.Transform) ebiten.GeoM {
	m := t.Matrix()
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// tickDuration is the simulated time of one Update call.
func tickDuration() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}
