// Package camera maps the play area onto a viewport.
package camera

// Camera controls the viewport into the play area.
// Supports pan and zoom; the view is kept over the play area.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float64

	// Zoom level (1.0 = whole play area fitted to the viewport)
	Zoom float64

	// Viewport dimensions (screen pixels or terminal cells)
	ViewportW, ViewportH float64

	// Play area dimensions
	WorldW, WorldH float64

	// AspectY scales vertical screen distance. Terminal cells are about twice as
	// tall as wide, so a text viewport uses 0.5.
	AspectY float64

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera centered on the play area with the whole area in view.
func New(viewportW, viewportH, worldW, worldH float64) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		AspectY:   1,
		MinZoom:   1,
		MaxZoom:   8,
	}
	c.Reset()
	return c
}

// scale returns screen units per world unit at the current zoom.
func (c *Camera) scale() float64 {
	if c.WorldW <= 0 || c.WorldH <= 0 {
		return 1
	}
	fit := min(c.ViewportW/c.WorldW, c.ViewportH/(c.WorldH*c.AspectY))
	return fit * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	s := c.scale()
	sx = c.ViewportW/2 + (wx-c.X)*s
	sy = c.ViewportH/2 + (wy-c.Y)*s*c.AspectY
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	s := c.scale()
	wx = c.X + (sx-c.ViewportW/2)/s
	wy = c.Y + (sy-c.ViewportH/2)/(s*c.AspectY)
	return wx, wy
}

// ScreenRadius converts a world radius to horizontal screen units.
func (c *Camera) ScreenRadius(r float64) float64 {
	return r * c.scale()
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	s := c.scale()
	halfW := c.ViewportW/(2*s) + radius
	halfH := c.ViewportH/(2*s*c.AspectY) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.clampPosition()
}

// SetWorld updates the play area, recentering when it changes.
func (c *Camera) SetWorld(worldW, worldH float64) {
	if worldW == c.WorldW && worldH == c.WorldH {
		return
	}
	c.WorldW = worldW
	c.WorldH = worldH
	c.X = worldW / 2
	c.Y = worldH / 2
}

// Pan moves the camera by the given delta in screen units.
func (c *Camera) Pan(dx, dy float64) {
	s := c.scale()
	c.X += dx / s
	c.Y += dy / (s * c.AspectY)
	c.clampPosition()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampPosition()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1.0
}

// clampPosition keeps the camera center inside the play area.
func (c *Camera) clampPosition() {
	c.X = clamp(c.X, 0, c.WorldW)
	c.Y = clamp(c.Y, 0, c.WorldH)
}

// absf returns the absolute value of a float64.
func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
