// Package zoom implements the constrained affine transform shared by the
// hemicycle and geographic map views: bounded scale, bounded pan, discrete
// zoom steps, reset, and fit-to-bounds.
package zoom

import (
	"math"
	"time"
)

const (
	DefaultMinZoom = 1.0
	DefaultMaxZoom = 8.0

	// StepDuration is the animation window for discrete zoom in/out;
	// ResetDuration covers reset and fit-to-bounds.
	StepDuration  = 300 * time.Millisecond
	ResetDuration = 750 * time.Millisecond

	// A scale this close to 1 still counts as "not zoomed" so the reset
	// control does not flicker on float noise.
	zoomedThreshold = 1.01

	// Fraction of the viewport a fitted bounding box may occupy,
	// leaving 10% padding around it.
	fitPadding = 0.9
)

// Transform maps abstract canvas coordinates to screen pixels:
// screen = canvas*K + (X, Y).
type Transform struct {
	K float64 `json:"k"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Identity() Transform {
	return Transform{K: 1}
}

func (t Transform) Apply(cx, cy float64) (float64, float64) {
	return cx*t.K + t.X, cy*t.K + t.Y
}

// Invert maps a screen point back to canvas space.
func (t Transform) Invert(sx, sy float64) (float64, float64) {
	return (sx - t.X) / t.K, (sy - t.Y) / t.K
}

func (t Transform) IsZoomed() bool {
	return t.K > zoomedThreshold
}

// Bounds is an axis-aligned rectangle in canvas or screen space.
type Bounds struct {
	X0, Y0, X1, Y1 float64
}

func (b Bounds) Width() float64  { return b.X1 - b.X0 }
func (b Bounds) Height() float64 { return b.Y1 - b.Y0 }

func (b Bounds) Center() (float64, float64) {
	return (b.X0 + b.X1) / 2, (b.Y0 + b.Y1) / 2
}

func (b Bounds) Empty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Command is a computed transition: the target transform plus how long the
// rendering surface should take to animate there. A new command simply
// supersedes any transition still in flight.
type Command struct {
	Target   Transform
	Duration time.Duration
}

// Controller owns the current transform for one rendering surface and
// enforces the scale and translation constraints on every mutation.
type Controller struct {
	minZoom  float64
	maxZoom  float64
	viewport Bounds
	extent   Bounds // canvas-space pan extent; zero value means unconstrained
	current  Transform
}

type Option func(*Controller)

func WithScaleExtent(min, max float64) Option {
	return func(c *Controller) {
		c.minZoom = min
		c.maxZoom = max
	}
}

// WithTranslateExtent bounds panning so the given canvas-space rectangle can
// never be dragged entirely out of the viewport.
func WithTranslateExtent(extent Bounds) Option {
	return func(c *Controller) {
		c.extent = extent
	}
}

func NewController(viewport Bounds, opts ...Option) *Controller {
	c := &Controller{
		minZoom:  DefaultMinZoom,
		maxZoom:  DefaultMaxZoom,
		viewport: viewport,
		current:  Identity(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Current() Transform {
	return c.current
}

func (c *Controller) clampScale(k float64) float64 {
	return math.Max(c.minZoom, math.Min(c.maxZoom, k))
}

// constrain clamps the translation so the pan extent keeps covering the
// viewport (or stays centered when it is smaller than the viewport).
func (c *Controller) constrain(t Transform) Transform {
	if c.extent.Empty() {
		return t
	}
	t.X = clampAxis(t.X, c.viewport.X0, c.viewport.X1, c.extent.X0, c.extent.X1, t.K)
	t.Y = clampAxis(t.Y, c.viewport.Y0, c.viewport.Y1, c.extent.Y0, c.extent.Y1, t.K)
	return t
}

func clampAxis(tr, v0, v1, e0, e1, k float64) float64 {
	lo := v1 - e1*k
	hi := v0 - e0*k
	if lo > hi {
		// Scaled extent is narrower than the viewport: pin it centered.
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, tr))
}

// scaleAbout rescales while keeping the canvas point under (sx, sy) fixed.
func (c *Controller) scaleAbout(k, sx, sy float64) Transform {
	k = c.clampScale(k)
	cx, cy := c.current.Invert(sx, sy)
	next := Transform{K: k, X: sx - cx*k, Y: sy - cy*k}
	return c.constrain(next)
}

// ZoomIn doubles the scale about the viewport center, clamped to the
// configured maximum.
func (c *Controller) ZoomIn() Command {
	vx, vy := c.viewport.Center()
	c.current = c.scaleAbout(c.current.K*2, vx, vy)
	return Command{Target: c.current, Duration: StepDuration}
}

// ZoomOut halves the scale about the viewport center.
func (c *Controller) ZoomOut() Command {
	vx, vy := c.viewport.Center()
	c.current = c.scaleAbout(c.current.K*0.5, vx, vy)
	return Command{Target: c.current, Duration: StepDuration}
}

func (c *Controller) Reset() Command {
	c.current = Identity()
	return Command{Target: c.current, Duration: ResetDuration}
}

// ZoomToBounds fits the given canvas-space box into the viewport with 10%
// padding, centered, never exceeding the maximum zoom.
func (c *Controller) ZoomToBounds(b Bounds) Command {
	if b.Empty() {
		return c.Reset()
	}
	k := fitPadding * math.Min(
		c.viewport.Width()/b.Width(),
		c.viewport.Height()/b.Height(),
	)
	k = c.clampScale(k)

	vx, vy := c.viewport.Center()
	bx, by := b.Center()
	next := Transform{K: k, X: vx - bx*k, Y: vy - by*k}
	c.current = c.constrain(next)
	return Command{Target: c.current, Duration: ResetDuration}
}

// Pan translates by a screen-space delta, applied immediately (gesture
// driven, no animation).
func (c *Controller) Pan(dx, dy float64) Transform {
	next := c.current
	next.X += dx
	next.Y += dy
	c.current = c.constrain(next)
	return c.current
}

// ScaleBy applies a gesture zoom factor about a screen-space origin
// (wheel or pinch position), applied immediately.
func (c *Controller) ScaleBy(factor, sx, sy float64) Transform {
	c.current = c.scaleAbout(c.current.K*factor, sx, sy)
	return c.current
}

// Set installs an externally supplied transform (e.g. echoed back from a
// client), re-clamped through the same constraints.
func (c *Controller) Set(t Transform) Transform {
	if t.K == 0 {
		t = Identity()
	}
	t.K = c.clampScale(t.K)
	c.current = c.constrain(t)
	return c.current
}
