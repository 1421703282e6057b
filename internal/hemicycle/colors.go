// Package hemicycle renders the semicircular chamber seat map: party and
// vote-overlay coloring, hover markers with tooltip anchors, hit-testing
// through the current zoom transform, and SVG output.
package hemicycle

import "capitolview/internal/model"

// Palette. NeutralColor is the single no-data gray used for vacant seats,
// missing vote positions, and unmatched map regions; SplitColor is reserved
// for split-delegation Senate regions on the geographic views.
const (
	ColorDemocrat    = "#3575D3"
	ColorRepublican  = "#D23B43"
	ColorIndependent = "#8B72BE"

	NeutralColor = "#C9CACE"
	SplitColor   = "#B07AA1"

	ColorYea       = "#FFFFFF"
	ColorNay       = "#1F2127"
	ColorPresent   = "#E8C547"
	ColorNotVoting = "#9AA0A6"

	occupiedStroke = "#FFFFFF"

	// Overlay aura: outer translucent circle keeping party identity
	// visible behind the vote-colored inner marker.
	auraRadiusMultiplier = 1.4
	auraOpacity          = 0.35
)

func PartyColor(p model.Party) string {
	switch p {
	case model.PartyDemocrat:
		return ColorDemocrat
	case model.PartyRepublican:
		return ColorRepublican
	case model.PartyIndependent:
		return ColorIndependent
	}
	return NeutralColor
}

func VoteColor(v model.VotePosition) string {
	switch v {
	case model.VoteYea:
		return ColorYea
	case model.VoteNay:
		return ColorNay
	case model.VotePresent:
		return ColorPresent
	case model.VoteNotVoting:
		return ColorNotVoting
	}
	return NeutralColor
}
