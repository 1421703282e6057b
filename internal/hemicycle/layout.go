package hemicycle

import (
	"capitolview/internal/model"
	"capitolview/internal/zoom"
)

// ChamberSpec fixes the per-chamber rendering parameters. Senate seats are
// fewer and larger, so they also get the bigger hover enlargement.
type ChamberSpec struct {
	Chamber         model.Chamber
	Viewport        zoom.Bounds
	SeatRadius      float64
	HoverMultiplier float64
}

var (
	houseSpec = ChamberSpec{
		Chamber:         model.ChamberHouse,
		Viewport:        zoom.Bounds{X0: 0, Y0: 0, X1: 900, Y1: 520},
		SeatRadius:      6,
		HoverMultiplier: 2.0,
	}
	senateSpec = ChamberSpec{
		Chamber:         model.ChamberSenate,
		Viewport:        zoom.Bounds{X0: 0, Y0: 0, X1: 780, Y1: 460},
		SeatRadius:      10,
		HoverMultiplier: 2.5,
	}
)

func SpecFor(chamber model.Chamber) ChamberSpec {
	if chamber == model.ChamberSenate {
		return senateSpec
	}
	return houseSpec
}

// NewController builds the zoom controller for a chamber surface: scale
// bounded to [1, 8], pan bounded to the chamber viewport so the diagram
// cannot be dragged fully offscreen.
func (s ChamberSpec) NewController() *zoom.Controller {
	return zoom.NewController(s.Viewport, zoom.WithTranslateExtent(s.Viewport))
}

// SeatAt hit-tests a screen-space pointer position against the seat layout
// through the inverse of the current transform. Vacant seats are not
// interactive and never match.
func (s ChamberSpec) SeatAt(seats []model.Seat, t zoom.Transform, sx, sy float64) *model.Seat {
	cx, cy := t.Invert(sx, sy)
	r2 := s.SeatRadius * s.SeatRadius
	for i := range seats {
		if seats[i].Vacant() {
			continue
		}
		dx := seats[i].X - cx
		dy := seats[i].Y - cy
		if dx*dx+dy*dy <= r2 {
			return &seats[i]
		}
	}
	return nil
}

// SeatBounds is the canvas-space bounding box of a set of seats, padded by
// the seat radius; used for zoom-to-bounds on a party or state selection.
func (s ChamberSpec) SeatBounds(seats []model.Seat) zoom.Bounds {
	if len(seats) == 0 {
		return zoom.Bounds{}
	}
	b := zoom.Bounds{X0: seats[0].X, Y0: seats[0].Y, X1: seats[0].X, Y1: seats[0].Y}
	for _, seat := range seats[1:] {
		if seat.X < b.X0 {
			b.X0 = seat.X
		}
		if seat.X > b.X1 {
			b.X1 = seat.X
		}
		if seat.Y < b.Y0 {
			b.Y0 = seat.Y
		}
		if seat.Y > b.Y1 {
			b.Y1 = seat.Y
		}
	}
	b.X0 -= s.SeatRadius
	b.Y0 -= s.SeatRadius
	b.X1 += s.SeatRadius
	b.Y1 += s.SeatRadius
	return b
}
