package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"capitolview/internal/geo"
	"capitolview/internal/hemicycle"
	"capitolview/internal/model"
	"capitolview/internal/service"
	"capitolview/internal/zoom"
)

type MapHandler struct {
	maps *service.MapService
}

func NewMapHandler(maps *service.MapService) *MapHandler {
	return &MapHandler{maps: maps}
}

// parseTransform reads the client's echoed zoom transform from the query;
// absent or garbage values fall back to identity and get re-clamped by the
// controller anyway.
func parseTransform(c *gin.Context) zoom.Transform {
	t := zoom.Identity()
	if k, err := strconv.ParseFloat(c.Query("k"), 64); err == nil {
		t.K = k
	}
	if x, err := strconv.ParseFloat(c.Query("x"), 64); err == nil {
		t.X = x
	}
	if y, err := strconv.ParseFloat(c.Query("y"), 64); err == nil {
		t.Y = y
	}
	return t
}

func parsePointer(c *gin.Context) *hemicycle.Pointer {
	seatID := c.Query("hover")
	if seatID == "" {
		return nil
	}
	px, _ := strconv.ParseFloat(c.Query("px"), 64)
	py, _ := strconv.ParseFloat(c.Query("py"), 64)
	return &hemicycle.Pointer{SeatID: seatID, X: px, Y: py}
}

// Hemicycle serves the chamber seat map as a JSON view-model or, with
// format=svg, a rendered document. vote_id switches on overlay coloring.
func (h *MapHandler) Hemicycle(c *gin.Context) {
	chamber, err := model.ParseChamber(c.Param("chamber"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scene, err := h.maps.HemicycleScene(
		c.Request.Context(),
		chamber,
		c.Query("vote_id"),
		parseTransform(c),
		parsePointer(c),
	)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	if c.Query("format") == "svg" {
		renderer := hemicycle.NewRenderer(chamber)
		c.Data(http.StatusOK, "image/svg+xml", []byte(renderer.SVG(*scene)))
		return
	}
	c.JSON(http.StatusOK, scene)
}

func (h *MapHandler) States(c *gin.Context) {
	m, t, err := h.maps.StateMap(c.Request.Context(), parseTransform(c))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	h.respondMap(c, m, t)
}

func (h *MapHandler) Districts(c *gin.Context) {
	m, t, err := h.maps.DistrictMap(c.Request.Context(), parseTransform(c))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	h.respondMap(c, m, t)
}

func (h *MapHandler) respondMap(c *gin.Context, m *geo.Map, t zoom.Transform) {
	if c.Query("format") == "svg" {
		c.Data(http.StatusOK, "image/svg+xml", []byte(geo.SVG(*m, t)))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"map":       m,
		"transform": t,
	})
}
