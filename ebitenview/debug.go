package ebitenview

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/zoomview"
)

// drawDebug prints the controller state at (x, y).
func drawDebug(dst *ebiten.Image, c *zoomview.Controller, x, y int) {
	t := c.Transform()
	msg := fmt.Sprintf("state: %s\nscale: %.3f\ntranslate: %.1f, %.1f\nTPS: %.1f",
		c.State(), t.ScaleX, t.TranslateX, t.TranslateY, ebiten.ActualTPS())
	if limits, ok := c.Limits(); ok {
		msg += fmt.Sprintf("\nlimits: %.3f / %.3f / %.3f", limits.Min, limits.Initial, limits.Max)
	}
	ebitenutil.DebugPrintAt(dst, msg, x+4, y+4)
}
