package model

import (
	"fmt"
	"time"
)

type Chamber string

const (
	ChamberHouse  Chamber = "house"
	ChamberSenate Chamber = "senate"
)

func ParseChamber(s string) (Chamber, error) {
	switch Chamber(s) {
	case ChamberHouse, ChamberSenate:
		return Chamber(s), nil
	}
	return "", fmt.Errorf("unknown chamber %q", s)
}

type Party string

const (
	PartyDemocrat    Party = "D"
	PartyRepublican  Party = "R"
	PartyIndependent Party = "I"
)

// VotePosition is a recorded roll-call position. The zero value means no
// position was recorded for that seat on the selected vote.
type VotePosition string

const (
	VoteYea       VotePosition = "yea"
	VoteNay       VotePosition = "nay"
	VotePresent   VotePosition = "present"
	VoteNotVoting VotePosition = "not_voting"
)

func (v VotePosition) Label() string {
	switch v {
	case VoteYea:
		return "Yea"
	case VoteNay:
		return "Nay"
	case VotePresent:
		return "Present"
	case VoteNotVoting:
		return "Not Voting"
	}
	return "No position recorded"
}

// Occupant is the member currently holding a seat.
type Occupant struct {
	BioguideID string `json:"bioguide_id"`
	Name       string `json:"name"`
	Party      Party  `json:"party"`
	State      string `json:"state"`
	District   int    `json:"district,omitempty"` // 0 for senators and at-large seats
	PhotoURL   string `json:"photo_url,omitempty"`
}

// Locality is the "NY-14" / "VT" form shown in tooltips.
func (o Occupant) Locality() string {
	if o.District > 0 {
		return fmt.Sprintf("%s-%d", o.State, o.District)
	}
	return o.State
}

// Seat is one fixed slot in the chamber diagram. Layout coordinates are
// precomputed upstream in abstract canvas space and never change; only the
// occupant and the overlay vote position vary per render.
type Seat struct {
	ID       string       `json:"id"`
	Chamber  Chamber      `json:"chamber"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Occupant *Occupant    `json:"occupant,omitempty"`
	Vote     VotePosition `json:"vote,omitempty"`
}

func (s Seat) Vacant() bool {
	return s.Occupant == nil
}

// NormalizeSeats enforces the overlay invariant: a seat with no occupant
// never carries a vote position.
func NormalizeSeats(seats []Seat) []Seat {
	for i := range seats {
		if seats[i].Occupant == nil {
			seats[i].Vote = ""
		}
	}
	return seats
}

type Member struct {
	Occupant
	Chamber   Chamber   `json:"chamber"`
	StartDate time.Time `json:"start_date"`
	Website   string    `json:"website,omitempty"`
}

type Bill struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	Title      string    `json:"title"`
	Chamber    Chamber   `json:"chamber"`
	SponsorID  string    `json:"sponsor_id"`
	Introduced time.Time `json:"introduced"`
	Latest     string    `json:"latest_action,omitempty"`
}

type Vote struct {
	ID       string    `json:"id"`
	Chamber  Chamber   `json:"chamber"`
	BillID   string    `json:"bill_id,omitempty"`
	Question string    `json:"question"`
	Result   string    `json:"result"`
	Date     time.Time `json:"date"`
	Yea      int       `json:"yea"`
	Nay      int       `json:"nay"`
}

type Committee struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Chamber Chamber `json:"chamber"`
	ChairID string  `json:"chair_id,omitempty"`
}

type CalendarDay struct {
	Date  time.Time `json:"date"`
	Bills []Bill    `json:"bills"`
	Votes []Vote    `json:"votes"`
}

// District is the zip-code lookup result.
type District struct {
	State    string `json:"state"`
	District int    `json:"district"`
}

func (d District) Code() string {
	return fmt.Sprintf("%s-%d", d.State, d.District)
}

type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}
