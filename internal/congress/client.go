// Package congress is the typed client for the upstream civic REST API.
// All failures are terminal for that one call: there are no retries here,
// a new user action issues a new request.
package congress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"capitolview/internal/config"
	"capitolview/internal/model"
	"capitolview/internal/utils"
)

// ErrNotFound marks a 404 from the upstream; handlers convert it into the
// page-level not-found presentation.
var ErrNotFound = errors.New("resource not found")

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func New(cfg config.UpstreamConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: utils.NewHTTPClient(timeout),
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	return q
}

type MemberList struct {
	Members    []model.Member   `json:"members"`
	Pagination model.Pagination `json:"pagination"`
}

func (c *Client) ListMembers(ctx context.Context, chamber model.Chamber, page, pageSize int) (*MemberList, error) {
	q := pageQuery(page, pageSize)
	if chamber != "" {
		q.Set("chamber", string(chamber))
	}
	var out MemberList
	if err := c.get(ctx, "/members", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetMember(ctx context.Context, bioguideID string) (*model.Member, error) {
	var out model.Member
	if err := c.get(ctx, "/members/"+url.PathEscape(bioguideID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type BillList struct {
	Bills      []model.Bill     `json:"bills"`
	Pagination model.Pagination `json:"pagination"`
}

func (c *Client) ListBills(ctx context.Context, page, pageSize int) (*BillList, error) {
	var out BillList
	if err := c.get(ctx, "/bills", pageQuery(page, pageSize), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBill(ctx context.Context, id string) (*model.Bill, error) {
	var out model.Bill
	if err := c.get(ctx, "/bills/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type VoteList struct {
	Votes      []model.Vote     `json:"votes"`
	Pagination model.Pagination `json:"pagination"`
}

func (c *Client) ListVotes(ctx context.Context, chamber model.Chamber, page, pageSize int) (*VoteList, error) {
	q := pageQuery(page, pageSize)
	if chamber != "" {
		q.Set("chamber", string(chamber))
	}
	var out VoteList
	if err := c.get(ctx, "/votes", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetVote(ctx context.Context, id string) (*model.Vote, error) {
	var out model.Vote
	if err := c.get(ctx, "/votes/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type CommitteeList struct {
	Committees []model.Committee `json:"committees"`
	Pagination model.Pagination  `json:"pagination"`
}

func (c *Client) ListCommittees(ctx context.Context, page, pageSize int) (*CommitteeList, error) {
	var out CommitteeList
	if err := c.get(ctx, "/committees", pageQuery(page, pageSize), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCommittee(ctx context.Context, id string) (*model.Committee, error) {
	var out model.Committee
	if err := c.get(ctx, "/committees/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Calendar(ctx context.Context, from, to time.Time) ([]model.CalendarDay, error) {
	q := url.Values{}
	q.Set("from", from.Format("2006-01-02"))
	q.Set("to", to.Format("2006-01-02"))
	var out struct {
		Days []model.CalendarDay `json:"days"`
	}
	if err := c.get(ctx, "/calendar", q, &out); err != nil {
		return nil, err
	}
	return out.Days, nil
}

func (c *Client) DistrictForZip(ctx context.Context, zip string) (*model.District, error) {
	var out model.District
	if err := c.get(ctx, "/districts/zip/"+url.PathEscape(zip), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SeatLayout fetches the fixed seat coordinates plus current occupants for
// one chamber.
func (c *Client) SeatLayout(ctx context.Context, chamber model.Chamber) ([]model.Seat, error) {
	var out struct {
		Seats []model.Seat `json:"seats"`
	}
	if err := c.get(ctx, "/seats/"+string(chamber), nil, &out); err != nil {
		return nil, err
	}
	return model.NormalizeSeats(out.Seats), nil
}

// SeatOverlay fetches the same layout with each occupied seat's recorded
// position on the given vote.
func (c *Client) SeatOverlay(ctx context.Context, chamber model.Chamber, voteID string) ([]model.Seat, error) {
	q := url.Values{}
	q.Set("vote_id", voteID)
	var out struct {
		Seats []model.Seat `json:"seats"`
	}
	if err := c.get(ctx, "/seats/"+string(chamber), q, &out); err != nil {
		return nil, err
	}
	return model.NormalizeSeats(out.Seats), nil
}
