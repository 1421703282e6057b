package hemicycle

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capitolview/internal/model"
	"capitolview/internal/zoom"
)

func occupiedSeat(id string, party model.Party, vote model.VotePosition) model.Seat {
	return model.Seat{
		ID:      id,
		Chamber: model.ChamberSenate,
		X:       100,
		Y:       100,
		Occupant: &model.Occupant{
			BioguideID: "B" + id,
			Name:       "Member " + id,
			Party:      party,
			State:      "VT",
			PhotoURL:   "https://photos.example/" + id + ".jpg",
		},
		Vote: vote,
	}
}

func TestSceneVacantSeatsAreNeutralAndInert(t *testing.T) {
	seats := []model.Seat{
		{ID: "s1", Chamber: model.ChamberSenate, X: 50, Y: 50},
		occupiedSeat("s2", model.PartyDemocrat, ""),
	}

	r := NewRenderer(model.ChamberSenate)
	scene := r.Scene(seats, false, zoom.Identity(), nil)

	require.Len(t, scene.Seats, 2)
	vacant := scene.Seats[0]
	assert.Equal(t, NeutralColor, vacant.Fill)
	assert.False(t, vacant.Clickable)
	assert.Empty(t, vacant.Href)
	assert.Empty(t, vacant.Stroke)

	occupied := scene.Seats[1]
	assert.Equal(t, ColorDemocrat, occupied.Fill)
	assert.True(t, occupied.Clickable)
	assert.Equal(t, "/members/Bs2", occupied.Href)
	assert.Equal(t, occupiedStroke, occupied.Stroke)
}

func TestSceneVacantSeatNeverCarriesVote(t *testing.T) {
	// Upstream glitch: a vacant seat arrives with a vote position.
	seats := []model.Seat{{ID: "s1", Chamber: model.ChamberSenate, X: 50, Y: 50, Vote: model.VoteYea}}

	r := NewRenderer(model.ChamberSenate)
	scene := r.Scene(seats, true, zoom.Identity(), nil)

	assert.Empty(t, scene.Seats[0].Seat.Vote)
	assert.Nil(t, scene.Seats[0].Aura)
	assert.Equal(t, NeutralColor, scene.Seats[0].Fill)
}

func TestSceneOverlayColoring(t *testing.T) {
	seats := []model.Seat{
		occupiedSeat("yea", model.PartyDemocrat, model.VoteYea),
		occupiedSeat("nay", model.PartyRepublican, model.VoteNay),
		occupiedSeat("present", model.PartyIndependent, model.VotePresent),
		occupiedSeat("nv", model.PartyRepublican, model.VoteNotVoting),
		occupiedSeat("nodata", model.PartyDemocrat, ""),
	}

	r := NewRenderer(model.ChamberSenate)
	scene := r.Scene(seats, true, zoom.Identity(), nil)

	byID := map[string]SeatView{}
	for _, v := range scene.Seats {
		byID[v.Seat.ID] = v
	}

	assert.Equal(t, ColorYea, byID["yea"].Fill)
	assert.Equal(t, ColorNay, byID["nay"].Fill)
	assert.Equal(t, ColorPresent, byID["present"].Fill)
	assert.Equal(t, ColorNotVoting, byID["nv"].Fill)

	// Missing position: neutral inner fill, party aura intact.
	noData := byID["nodata"]
	assert.Equal(t, NeutralColor, noData.Fill)
	require.NotNil(t, noData.Aura)
	assert.Equal(t, ColorDemocrat, noData.Aura.Fill)

	// Every occupied seat keeps party identity via aura + stroke.
	for id, v := range byID {
		require.NotNil(t, v.Aura, id)
		assert.Equal(t, PartyColor(v.Seat.Occupant.Party), v.Aura.Fill, id)
		assert.Equal(t, PartyColor(v.Seat.Occupant.Party), v.Stroke, id)
		assert.InDelta(t, v.Radius*auraRadiusMultiplier, v.Aura.Radius, 1e-9, id)
	}
}

// Scenario: 100 Senate seats, one overlay vote with 60 yea, 38 nay and
// 2 not voting. Auras split by party regardless of vote; inner fills count
// exactly 60 white, 38 near-black, 2 gray.
func TestSceneSenateOverlayScenario(t *testing.T) {
	seats := make([]model.Seat, 0, 100)
	for i := 0; i < 100; i++ {
		party := model.PartyDemocrat
		if i%2 == 0 {
			party = model.PartyRepublican
		}
		var vote model.VotePosition
		switch {
		case i < 60:
			vote = model.VoteYea
		case i < 98:
			vote = model.VoteNay
		default:
			vote = model.VoteNotVoting
		}
		seat := occupiedSeat(fmt.Sprintf("s%03d", i), party, vote)
		seat.X = float64(10 + i*7)
		seat.Y = 200
		seats = append(seats, seat)
	}

	r := NewRenderer(model.ChamberSenate)
	scene := r.Scene(seats, true, zoom.Identity(), nil)

	fills := map[string]int{}
	auras := map[string]int{}
	for _, v := range scene.Seats {
		fills[v.Fill]++
		auras[v.Aura.Fill]++
	}

	assert.Equal(t, 60, fills[ColorYea])
	assert.Equal(t, 38, fills[ColorNay])
	assert.Equal(t, 2, fills[ColorNotVoting])
	assert.Equal(t, 50, auras[ColorRepublican])
	assert.Equal(t, 50, auras[ColorDemocrat])
}

func TestSceneHoverIsExclusiveAndAnchorsTooltipAbovePointer(t *testing.T) {
	seats := []model.Seat{
		occupiedSeat("a", model.PartyDemocrat, model.VoteYea),
		occupiedSeat("b", model.PartyRepublican, model.VoteNay),
	}
	seats[1].X = 300

	r := NewRenderer(model.ChamberSenate)
	ptr := &Pointer{SeatID: "a", X: 102, Y: 98}
	scene := r.Scene(seats, true, zoom.Identity(), ptr)

	require.NotNil(t, scene.Hover)
	assert.Equal(t, "a", scene.Hover.SeatID)

	hiddenCount := 0
	for _, v := range scene.Seats {
		if v.Hidden {
			hiddenCount++
			assert.Equal(t, "a", v.Seat.ID)
		}
	}
	assert.Equal(t, 1, hiddenCount)

	// Enlarged marker sits at the seat's own coordinates, scaled per chamber.
	assert.Equal(t, seats[0].X, scene.Hover.X)
	assert.Equal(t, seats[0].Y, scene.Hover.Y)
	spec := SpecFor(model.ChamberSenate)
	assert.InDelta(t, spec.SeatRadius*spec.HoverMultiplier, scene.Hover.Radius, 1e-9)
	assert.Equal(t, ColorDemocrat, scene.Hover.RingColor)

	require.NotNil(t, scene.Tooltip)
	assert.Less(t, scene.Tooltip.Y, ptr.Y)
	assert.Equal(t, ptr.X, scene.Tooltip.X)
	assert.Equal(t, "Member a", scene.Tooltip.Name)
	assert.Equal(t, "VT", scene.Tooltip.Locality)
	assert.Equal(t, "Yea", scene.Tooltip.Vote)
}

func TestSceneHoverSkipsVacantSeats(t *testing.T) {
	seats := []model.Seat{{ID: "v", Chamber: model.ChamberSenate, X: 10, Y: 10}}

	r := NewRenderer(model.ChamberSenate)
	scene := r.Scene(seats, false, zoom.Identity(), &Pointer{SeatID: "v", X: 10, Y: 10})

	assert.Nil(t, scene.Hover)
	assert.Nil(t, scene.Tooltip)
	assert.False(t, scene.Seats[0].Hidden)
}

func TestSceneTooltipOmitsVoteOutsideOverlay(t *testing.T) {
	seats := []model.Seat{occupiedSeat("a", model.PartyDemocrat, model.VoteYea)}

	r := NewRenderer(model.ChamberSenate)
	scene := r.Scene(seats, false, zoom.Identity(), &Pointer{SeatID: "a", X: 100, Y: 100})

	require.NotNil(t, scene.Tooltip)
	assert.Empty(t, scene.Tooltip.Vote)
}

func TestSenateHoverLargerThanHouse(t *testing.T) {
	house := SpecFor(model.ChamberHouse)
	senate := SpecFor(model.ChamberSenate)
	assert.Greater(t, senate.SeatRadius, house.SeatRadius)
	assert.Greater(t, senate.HoverMultiplier, house.HoverMultiplier)
}

func TestSeatAtHitTestsThroughTransform(t *testing.T) {
	seats := []model.Seat{
		occupiedSeat("a", model.PartyDemocrat, ""),
		{ID: "vac", Chamber: model.ChamberSenate, X: 100, Y: 100},
	}
	spec := SpecFor(model.ChamberSenate)

	// At identity, the pointer over the seat center hits it.
	hit := spec.SeatAt(seats, zoom.Identity(), 100, 100)
	require.NotNil(t, hit)
	assert.Equal(t, "a", hit.ID)

	// Zoomed 2x with translation: the same canvas point now lives at
	// screen (2*100-50, 2*100+10).
	tr := zoom.Transform{K: 2, X: -50, Y: 10}
	hit = spec.SeatAt(seats, tr, 150, 210)
	require.NotNil(t, hit)
	assert.Equal(t, "a", hit.ID)

	// Far away: nothing.
	assert.Nil(t, spec.SeatAt(seats, tr, 600, 600))
}

func TestSeatAtIgnoresVacantSeats(t *testing.T) {
	seats := []model.Seat{{ID: "vac", Chamber: model.ChamberSenate, X: 100, Y: 100}}
	spec := SpecFor(model.ChamberSenate)
	assert.Nil(t, spec.SeatAt(seats, zoom.Identity(), 100, 100))
}

func TestSeatBounds(t *testing.T) {
	spec := SpecFor(model.ChamberSenate)
	seats := []model.Seat{
		{ID: "a", X: 20, Y: 40},
		{ID: "b", X: 200, Y: 90},
	}
	b := spec.SeatBounds(seats)
	assert.Equal(t, 20-spec.SeatRadius, b.X0)
	assert.Equal(t, 40-spec.SeatRadius, b.Y0)
	assert.Equal(t, 200+spec.SeatRadius, b.X1)
	assert.Equal(t, 90+spec.SeatRadius, b.Y1)

	assert.True(t, spec.SeatBounds(nil).Empty())
}

func TestSVGOutput(t *testing.T) {
	seats := []model.Seat{
		occupiedSeat("a", model.PartyDemocrat, model.VoteYea),
		occupiedSeat("b", model.PartyRepublican, model.VoteNay),
		{ID: "vac", Chamber: model.ChamberSenate, X: 40, Y: 40},
	}
	seats[1].X = 300

	r := NewRenderer(model.ChamberSenate)
	scene := r.Scene(seats, true, zoom.Identity(), &Pointer{SeatID: "a", X: 100, Y: 90})
	svg := r.SVG(scene)

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, `fill="`+NeutralColor+`"`)         // vacant seat
	assert.Contains(t, svg, `fill-opacity="0.35"`)             // aura
	assert.Contains(t, svg, `clip-path="url(#seat-clip-a)"`)   // hover photo crop
	assert.Contains(t, svg, `stroke="`+ColorDemocrat+`"`)      // party ring
	assert.Contains(t, svg, "translate(0,0) scale(1)")
	assert.NotContains(t, svg, `href="/members/Bvac"`)
}

func TestPartyAndVoteColorFallbacks(t *testing.T) {
	assert.Equal(t, NeutralColor, PartyColor(""))
	assert.Equal(t, NeutralColor, PartyColor("X"))
	assert.Equal(t, NeutralColor, VoteColor(""))
	assert.Equal(t, ColorYea, VoteColor(model.VoteYea))
}
