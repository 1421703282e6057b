// Package geo renders the state/district choropleth maps: boundary loading,
// a fixed conic projection, occupant joins, and fill selection.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// ConicProjection is an Albers equal-area conic projection with fixed
// parameters, scaled into canvas space.
type ConicProjection struct {
	n    float64
	c    float64
	rho0 float64
	lam0 float64

	scale  float64
	transX float64
	transY float64
}

// NewAlbersUSA fixes the standard continental-US parameters: standard
// parallels 29.5 and 45.5, origin at 96W 38N, scaled to the given canvas.
func NewAlbersUSA(canvasWidth, canvasHeight float64) ConicProjection {
	const (
		phi1 = 29.5 * math.Pi / 180
		phi2 = 45.5 * math.Pi / 180
		phi0 = 38.0 * math.Pi / 180
		lam0 = -96.0 * math.Pi / 180
	)

	n := (math.Sin(phi1) + math.Sin(phi2)) / 2
	c := math.Cos(phi1)*math.Cos(phi1) + 2*n*math.Sin(phi1)
	rho0 := math.Sqrt(c-2*n*math.Sin(phi0)) / n

	return ConicProjection{
		n:      n,
		c:      c,
		rho0:   rho0,
		lam0:   lam0,
		scale:  canvasWidth * 1.35,
		transX: canvasWidth / 2,
		transY: canvasHeight / 2,
	}
}

// Project maps a lon/lat point to canvas coordinates. Y grows downward.
func (p ConicProjection) Project(pt orb.Point) (float64, float64) {
	lam := pt[0] * math.Pi / 180
	phi := pt[1] * math.Pi / 180

	rho := math.Sqrt(p.c-2*p.n*math.Sin(phi)) / p.n
	theta := p.n * (lam - p.lam0)

	x := rho * math.Sin(theta)
	y := p.rho0 - rho*math.Cos(theta)

	return x*p.scale + p.transX, -y*p.scale + p.transY
}
