package congress

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capitolview/internal/config"
	"capitolview/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.UpstreamConfig{
		BaseURL:           srv.URL,
		Timeout:           5 * time.Second,
		RequestsPerSecond: 1000,
		Burst:             1000,
	})
}

func TestListMembers(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/members", r.URL.Path)
		assert.Equal(t, "senate", r.URL.Query().Get("chamber"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{
			"members": [
				{"bioguide_id":"S000033","name":"Bernard Sanders","party":"I","state":"VT","chamber":"senate"}
			],
			"pagination": {"page":2,"page_size":50,"total":100}
		}`))
	}))

	got, err := c.ListMembers(context.Background(), model.ChamberSenate, 2, 50)
	require.NoError(t, err)
	require.Len(t, got.Members, 1)
	assert.Equal(t, "S000033", got.Members[0].BioguideID)
	assert.Equal(t, model.PartyIndependent, got.Members[0].Party)
	assert.Equal(t, 100, got.Pagination.Total)
}

func TestGetMemberNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := c.GetMember(context.Background(), "X000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpstreamErrorIncludesStatusAndBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream database offline", http.StatusServiceUnavailable)
	}))

	_, err := c.ListBills(context.Background(), 1, 20)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "upstream database offline")
}

func TestGetVote(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/votes/s-42", r.URL.Path)
		w.Write([]byte(`{"id":"s-42","chamber":"senate","question":"On Passage","result":"Passed","yea":60,"nay":38}`))
	}))

	got, err := c.GetVote(context.Background(), "s-42")
	require.NoError(t, err)
	assert.Equal(t, 60, got.Yea)
	assert.Equal(t, model.ChamberSenate, got.Chamber)
}

func TestCalendarSendsDateRange(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-08-17", r.URL.Query().Get("from"))
		assert.Equal(t, "2026-08-23", r.URL.Query().Get("to"))
		w.Write([]byte(`{"days":[{"date":"2026-08-18T00:00:00Z","bills":[],"votes":[]}]}`))
	}))

	from := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	days, err := c.Calendar(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, days, 1)
}

func TestDistrictForZip(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/districts/zip/10465", r.URL.Path)
		w.Write([]byte(`{"state":"NY","district":14}`))
	}))

	got, err := c.DistrictForZip(context.Background(), "10465")
	require.NoError(t, err)
	assert.Equal(t, "NY-14", got.Code())
}

func TestSeatLayoutStripsVotesFromVacantSeats(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/seats/senate", r.URL.Path)
		w.Write([]byte(`{"seats":[
			{"id":"s1","chamber":"senate","x":10,"y":10,
			 "occupant":{"bioguide_id":"A1","name":"A","party":"D","state":"VT"},"vote":"yea"},
			{"id":"s2","chamber":"senate","x":20,"y":10,"vote":"yea"}
		]}`))
	}))

	seats, err := c.SeatLayout(context.Background(), model.ChamberSenate)
	require.NoError(t, err)
	require.Len(t, seats, 2)
	assert.Equal(t, model.VoteYea, seats[0].Vote)
	assert.True(t, seats[1].Vacant())
	assert.Empty(t, seats[1].Vote, "vacant seats never carry a vote")
}

func TestSeatOverlayPassesVoteID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "s-42", r.URL.Query().Get("vote_id"))
		w.Write([]byte(`{"seats":[]}`))
	}))

	seats, err := c.SeatOverlay(context.Background(), model.ChamberSenate, "s-42")
	require.NoError(t, err)
	assert.Empty(t, seats)
}

func TestRateLimiterHonorsContextCancellation(t *testing.T) {
	c := New(config.UpstreamConfig{
		BaseURL:           "http://127.0.0.1:1",
		RequestsPerSecond: 0.001,
		Burst:             1,
	})

	// Burn the single burst token, then a cancelled context must fail the
	// limiter wait rather than block for the next token.
	_, _ = c.ListBills(context.Background(), 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListBills(ctx, 0, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
