package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"capitolview/internal/hemicycle"
	"capitolview/internal/model"
	"capitolview/internal/zoom"
	"capitolview/pkg/logger"
)

// Loader fetches boundary topology once per map mount. A failed load
// degrades to an empty map rather than an error: the page renders nothing
// instead of crashing.
type Loader struct {
	httpClient *http.Client
}

func NewLoader(httpClient *http.Client) *Loader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Loader{httpClient: httpClient}
}

func (l *Loader) Load(ctx context.Context, url string) *geojson.FeatureCollection {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.Warnf("boundary request build failed: %v", err)
		return nil
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		logger.Warnf("boundary fetch failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warnf("boundary fetch returned %d for %s", resp.StatusCode, url)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warnf("boundary read failed: %v", err)
		return nil
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		logger.Warnf("boundary parse failed: %v", err)
		return nil
	}
	return fc
}

// Region is one boundary feature resolved for rendering.
type Region struct {
	Code      string           `json:"code"`
	Name      string           `json:"name,omitempty"`
	Occupants []model.Occupant `json:"occupants"`
	Fill      string           `json:"fill"`
	Path      string           `json:"path"`
	Href      string           `json:"href"`
}

// Map is the choropleth view-model. It shares the zoom viewport model with
// the hemicycle so both reuse the same controls.
type Map struct {
	Viewport zoom.Bounds `json:"viewport"`
	Regions  []Region    `json:"regions"`
}

var mapViewport = zoom.Bounds{X0: 0, Y0: 0, X1: 960, Y1: 600}

func NewController() *zoom.Controller {
	return zoom.NewController(mapViewport, zoom.WithTranslateExtent(mapViewport))
}

// JoinOccupants indexes members by region code: "NY" for Senate features,
// "NY-14" for House districts. At-large districts use district 0 upstream
// and join as "AK-0".
func JoinOccupants(members []model.Member, chamber model.Chamber) map[string][]model.Occupant {
	byCode := make(map[string][]model.Occupant)
	for _, m := range members {
		if m.Chamber != chamber {
			continue
		}
		code := m.State
		if chamber == model.ChamberHouse {
			code = fmt.Sprintf("%s-%d", m.State, m.District)
		}
		byCode[code] = append(byCode[code], m.Occupant)
	}
	return byCode
}

// RegionFill picks the fill for a region's matched occupants: single party
// takes the party color, a split Senate delegation takes the split color,
// and zero matches always render in the neutral gray rather than dropping
// the region.
func RegionFill(occupants []model.Occupant) string {
	if len(occupants) == 0 {
		return hemicycle.NeutralColor
	}
	first := occupants[0].Party
	for _, o := range occupants[1:] {
		if o.Party != first {
			return hemicycle.SplitColor
		}
	}
	return hemicycle.PartyColor(first)
}

// BuildMap projects every feature and joins it to its occupants. A nil
// collection (failed load) yields an empty map. codeProperty names the
// feature property carrying the government identifier.
func BuildMap(fc *geojson.FeatureCollection, occupants map[string][]model.Occupant, codeProperty string) Map {
	m := Map{Viewport: mapViewport}
	if fc == nil {
		return m
	}

	proj := NewAlbersUSA(mapViewport.Width(), mapViewport.Height())

	for _, feature := range fc.Features {
		code := feature.Properties.MustString(codeProperty, "")
		if code == "" {
			continue
		}
		path := PathData(feature.Geometry, proj)
		if path == "" {
			continue
		}
		m.Regions = append(m.Regions, Region{
			Code:      code,
			Name:      feature.Properties.MustString("name", ""),
			Occupants: occupants[code],
			Fill:      RegionFill(occupants[code]),
			Path:      path,
			Href:      "/regions/" + code,
		})
	}

	// Stable draw order regardless of source feature order.
	sort.Slice(m.Regions, func(i, j int) bool { return m.Regions[i].Code < m.Regions[j].Code })
	return m
}

// PathData projects a polygon or multipolygon boundary into SVG path data.
// Other geometry types are not boundaries and produce nothing.
func PathData(geom orb.Geometry, proj ConicProjection) string {
	switch g := geom.(type) {
	case orb.Polygon:
		return polygonPath(g, proj)
	case orb.MultiPolygon:
		var b strings.Builder
		for _, poly := range g {
			b.WriteString(polygonPath(poly, proj))
		}
		return b.String()
	}
	return ""
}

func polygonPath(poly orb.Polygon, proj ConicProjection) string {
	var b strings.Builder
	for _, ring := range poly {
		for i, pt := range ring {
			x, y := proj.Project(pt)
			if i == 0 {
				fmt.Fprintf(&b, "M%.2f,%.2f", x, y)
			} else {
				fmt.Fprintf(&b, "L%.2f,%.2f", x, y)
			}
		}
		b.WriteString("Z")
	}
	return b.String()
}

// SVG renders the choropleth as a standalone document with the current
// transform applied.
func SVG(m Map, t zoom.Transform) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`,
		m.Viewport.X0, m.Viewport.Y0, m.Viewport.Width(), m.Viewport.Height())
	fmt.Fprintf(&b, `<g transform="translate(%g,%g) scale(%g)">`, t.X, t.Y, t.K)
	for _, r := range m.Regions {
		fmt.Fprintf(&b, `<a href="%s"><path d="%s" fill="%s" stroke="#FFFFFF" stroke-width="0.5"/></a>`,
			r.Href, r.Path, r.Fill)
	}
	b.WriteString("</g></svg>")
	return b.String()
}
