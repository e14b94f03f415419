// Package ebitenview hosts zoomview controllers in an Ebitengine game.
//
// A [View] shows one image inside a screen rectangle: it polls mouse and
// touch input, turns it into zoomview pointer events, ticks the controller
// once per Update, and draws the image through the controller's transform.
// A [Pager] lays views out as horizontal pages and routes every event
// through a [zoomview.HandoffCoordinator] first, so swipes that the current
// image cannot use turn the page. The previous page is reset to its fit
// transform once a page change settles.
//
// Both types can replay synthetic input with the Inject methods, one sample
// per frame, which takes priority over real devices while queued.
//
// Usage:
//
//	pager := ebitenview.NewPager(zoomview.DefaultConfig())
//	pager.SetRect(image.Rect(0, 0, 960, 640))
//	for _, img := range images {
//		pager.AddPage(img)
//	}
//	// in Game.Update: return pager.Update()
//	// in Game.Draw:   pager.Draw(screen)
package ebitenview
