package hemicycle

import (
	"fmt"
	"strings"

	"capitolview/internal/model"
	"capitolview/internal/zoom"
)

// tooltipOffset lifts the tooltip anchor above the pointer so the cursor
// never covers it.
const tooltipOffset = 14.0

// SeatView is one seat resolved to its final visual attributes.
type SeatView struct {
	Seat      model.Seat `json:"seat"`
	Radius    float64    `json:"radius"`
	Fill      string     `json:"fill"`
	Stroke    string     `json:"stroke,omitempty"`
	Aura      *AuraView  `json:"aura,omitempty"`
	Hidden    bool       `json:"hidden,omitempty"` // true while this seat's hover marker replaces it
	Clickable bool       `json:"clickable"`
	Href      string     `json:"href,omitempty"`
}

// AuraView is the translucent party-color circle drawn under a vote-colored
// marker in overlay mode.
type AuraView struct {
	Fill    string  `json:"fill"`
	Radius  float64 `json:"radius"`
	Opacity float64 `json:"opacity"`
}

// HoverMarker is the enlarged presentation of the hovered seat: white
// backing circle, clipped photo, translucent party tint, party ring.
type HoverMarker struct {
	SeatID    string  `json:"seat_id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Radius    float64 `json:"radius"`
	PhotoURL  string  `json:"photo_url,omitempty"`
	TintColor string  `json:"tint_color"`
	RingColor string  `json:"ring_color"`
}

// Tooltip floats above the pointer, not the seat, so it tracks the cursor.
type Tooltip struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Name     string  `json:"name"`
	Party    string  `json:"party"`
	Locality string  `json:"locality"`
	Vote     string  `json:"vote,omitempty"`
}

// Scene is the full view-model for one render of the chamber.
type Scene struct {
	Chamber   model.Chamber  `json:"chamber"`
	Viewport  zoom.Bounds    `json:"viewport"`
	Transform zoom.Transform `json:"transform"`
	Overlay   bool           `json:"overlay"`
	Seats     []SeatView     `json:"seats"`
	Hover     *HoverMarker   `json:"hover,omitempty"`
	Tooltip   *Tooltip       `json:"tooltip,omitempty"`
}

// Pointer is the current hover input: which seat the pointer is over and
// where the pointer is in screen space. Hover state is exclusive; a nil
// pointer clears it.
type Pointer struct {
	SeatID string
	X, Y   float64
}

type Renderer struct {
	spec ChamberSpec
}

func NewRenderer(chamber model.Chamber) *Renderer {
	return &Renderer{spec: SpecFor(chamber)}
}

func (r *Renderer) Spec() ChamberSpec {
	return r.spec
}

// Scene resolves seats to their rendered attributes. overlay selects vote
// coloring; ptr carries the hover state, if any.
func (r *Renderer) Scene(seats []model.Seat, overlay bool, t zoom.Transform, ptr *Pointer) Scene {
	seats = model.NormalizeSeats(seats)

	scene := Scene{
		Chamber:   r.spec.Chamber,
		Viewport:  r.spec.Viewport,
		Transform: t,
		Overlay:   overlay,
		Seats:     make([]SeatView, 0, len(seats)),
	}

	for _, seat := range seats {
		view := r.seatView(seat, overlay)
		if ptr != nil && ptr.SeatID == seat.ID && !seat.Vacant() {
			// The hover marker replaces the normal circle entirely.
			view.Hidden = true
			scene.Hover = r.hoverMarker(seat)
			scene.Tooltip = r.tooltip(seat, overlay, ptr)
		}
		scene.Seats = append(scene.Seats, view)
	}

	return scene
}

func (r *Renderer) seatView(seat model.Seat, overlay bool) SeatView {
	view := SeatView{
		Seat:   seat,
		Radius: r.spec.SeatRadius,
	}

	if seat.Vacant() {
		view.Fill = NeutralColor
		return view
	}

	view.Clickable = true
	view.Href = MemberRoute(seat.Occupant.BioguideID)

	party := PartyColor(seat.Occupant.Party)
	if !overlay {
		view.Fill = party
		view.Stroke = occupiedStroke
		return view
	}

	// Overlay mode: party identity survives as the aura, the inner circle
	// carries the vote position (neutral gray when none was recorded).
	view.Aura = &AuraView{
		Fill:    party,
		Radius:  r.spec.SeatRadius * auraRadiusMultiplier,
		Opacity: auraOpacity,
	}
	view.Fill = VoteColor(seat.Vote)
	view.Stroke = party
	return view
}

func (r *Renderer) hoverMarker(seat model.Seat) *HoverMarker {
	party := PartyColor(seat.Occupant.Party)
	return &HoverMarker{
		SeatID:    seat.ID,
		X:         seat.X,
		Y:         seat.Y,
		Radius:    r.spec.SeatRadius * r.spec.HoverMultiplier,
		PhotoURL:  seat.Occupant.PhotoURL,
		TintColor: party,
		RingColor: party,
	}
}

func (r *Renderer) tooltip(seat model.Seat, overlay bool, ptr *Pointer) *Tooltip {
	tip := &Tooltip{
		X:        ptr.X,
		Y:        ptr.Y - tooltipOffset,
		Name:     seat.Occupant.Name,
		Party:    string(seat.Occupant.Party),
		Locality: seat.Occupant.Locality(),
	}
	if overlay {
		tip.Vote = seat.Vote.Label()
	}
	return tip
}

func MemberRoute(bioguideID string) string {
	return "/members/" + bioguideID
}

// SVG renders the scene as a standalone SVG document.
func (r *Renderer) SVG(scene Scene) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`,
		scene.Viewport.X0, scene.Viewport.Y0, scene.Viewport.Width(), scene.Viewport.Height())
	t := scene.Transform
	fmt.Fprintf(&b, `<g transform="translate(%g,%g) scale(%g)">`, t.X, t.Y, t.K)

	// Auras first so every inner circle sits on top of its own aura.
	for _, v := range scene.Seats {
		if v.Aura == nil || v.Hidden {
			continue
		}
		fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="%g" fill="%s" fill-opacity="%g"/>`,
			v.Seat.X, v.Seat.Y, v.Aura.Radius, v.Aura.Fill, v.Aura.Opacity)
	}

	for _, v := range scene.Seats {
		if v.Hidden {
			continue
		}
		circle := fmt.Sprintf(`<circle cx="%g" cy="%g" r="%g" fill="%s"`, v.Seat.X, v.Seat.Y, v.Radius, v.Fill)
		if v.Stroke != "" {
			circle += fmt.Sprintf(` stroke="%s" stroke-width="1"`, v.Stroke)
		}
		circle += "/>"
		if v.Clickable {
			fmt.Fprintf(&b, `<a href="%s">%s</a>`, escapeAttr(v.Href), circle)
		} else {
			b.WriteString(circle)
		}
	}

	if h := scene.Hover; h != nil {
		clipID := "seat-clip-" + escapeAttr(h.SeatID)
		fmt.Fprintf(&b, `<clipPath id="%s"><circle cx="%g" cy="%g" r="%g"/></clipPath>`,
			clipID, h.X, h.Y, h.Radius)
		fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="%g" fill="#FFFFFF"/>`, h.X, h.Y, h.Radius)
		if h.PhotoURL != "" {
			fmt.Fprintf(&b, `<image href="%s" x="%g" y="%g" width="%g" height="%g" clip-path="url(#%s)" preserveAspectRatio="xMidYMid slice"/>`,
				escapeAttr(h.PhotoURL), h.X-h.Radius, h.Y-h.Radius, h.Radius*2, h.Radius*2, clipID)
		}
		fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="%g" fill="%s" fill-opacity="0.25"/>`,
			h.X, h.Y, h.Radius, h.TintColor)
		fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="%g" fill="none" stroke="%s" stroke-width="2"/>`,
			h.X, h.Y, h.Radius, h.RingColor)
	}

	b.WriteString("</g></svg>")
	return b.String()
}

func escapeAttr(s string) string {
	replacer := strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}
