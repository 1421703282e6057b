package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"capitolview/internal/congress"
	"capitolview/internal/model"
)

// CivicHandler serves the page-data endpoints: thin typed passthroughs over
// the upstream API, with 404s converted into the not-found presentation.
type CivicHandler struct {
	api *congress.Client
}

func NewCivicHandler(api *congress.Client) *CivicHandler {
	return &CivicHandler{api: api}
}

// respondUpstreamError maps a client error onto the page boundary: bad ids
// become 404s, everything else is a bad gateway. No retries either way.
func respondUpstreamError(c *gin.Context, err error) {
	if errors.Is(err, congress.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}

func (h *CivicHandler) ListMembers(c *gin.Context) {
	page, pageSize := pageParams(c)
	chamber, _ := model.ParseChamber(c.Query("chamber"))

	list, err := h.api.ListMembers(c.Request.Context(), chamber, page, pageSize)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CivicHandler) GetMember(c *gin.Context) {
	member, err := h.api.GetMember(c.Request.Context(), c.Param("bioguide_id"))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *CivicHandler) ListBills(c *gin.Context) {
	page, pageSize := pageParams(c)
	list, err := h.api.ListBills(c.Request.Context(), page, pageSize)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CivicHandler) GetBill(c *gin.Context) {
	bill, err := h.api.GetBill(c.Request.Context(), c.Param("bill_id"))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *CivicHandler) ListVotes(c *gin.Context) {
	page, pageSize := pageParams(c)
	chamber, _ := model.ParseChamber(c.Query("chamber"))

	list, err := h.api.ListVotes(c.Request.Context(), chamber, page, pageSize)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CivicHandler) GetVote(c *gin.Context) {
	vote, err := h.api.GetVote(c.Request.Context(), c.Param("vote_id"))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, vote)
}

func (h *CivicHandler) ListCommittees(c *gin.Context) {
	page, pageSize := pageParams(c)
	list, err := h.api.ListCommittees(c.Request.Context(), page, pageSize)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CivicHandler) GetCommittee(c *gin.Context) {
	committee, err := h.api.GetCommittee(c.Request.Context(), c.Param("committee_id"))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, committee)
}

// Calendar serves a date-range slice of chamber activity. Defaults to the
// current week when no range is given.
func (h *CivicHandler) Calendar(c *gin.Context) {
	now := time.Now()
	from := now.AddDate(0, 0, -int(now.Weekday()))
	to := from.AddDate(0, 0, 6)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		to = parsed
	}

	days, err := h.api.Calendar(c.Request.Context(), from, to)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *CivicHandler) DistrictForZip(c *gin.Context) {
	district, err := h.api.DistrictForZip(c.Request.Context(), c.Param("zip"))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, district)
}
