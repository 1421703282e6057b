package service

import (
	"context"

	"capitolview/internal/config"
	"capitolview/internal/congress"
	"capitolview/internal/geo"
	"capitolview/internal/hemicycle"
	"capitolview/internal/model"
	"capitolview/internal/utils"
	"capitolview/internal/zoom"
)

// MapService assembles seat-map and choropleth view-models from upstream
// data. Boundary topology is loaded per request and a failed load degrades
// to an empty map.
type MapService struct {
	api    *congress.Client
	loader *geo.Loader
	cfg    config.MapsConfig
}

func NewMapService(api *congress.Client, cfg config.MapsConfig) *MapService {
	return &MapService{
		api:    api,
		loader: geo.NewLoader(utils.NewHTTPClient(cfg.BoundaryTimeout)),
		cfg:    cfg,
	}
}

// HemicycleScene renders the chamber diagram. voteID selects overlay mode;
// t is the client's current transform (re-clamped here); ptr carries hover
// input, if any.
func (s *MapService) HemicycleScene(ctx context.Context, chamber model.Chamber, voteID string, t zoom.Transform, ptr *hemicycle.Pointer) (*hemicycle.Scene, error) {
	var (
		seats []model.Seat
		err   error
	)
	overlay := voteID != ""
	if overlay {
		seats, err = s.api.SeatOverlay(ctx, chamber, voteID)
	} else {
		seats, err = s.api.SeatLayout(ctx, chamber)
	}
	if err != nil {
		return nil, err
	}

	renderer := hemicycle.NewRenderer(chamber)
	controller := renderer.Spec().NewController()
	t = controller.Set(t)

	scene := renderer.Scene(seats, overlay, t, ptr)
	return &scene, nil
}

// StateMap builds the Senate choropleth: one feature per state, filled by
// delegation party (split delegations get the split color).
func (s *MapService) StateMap(ctx context.Context, t zoom.Transform) (*geo.Map, zoom.Transform, error) {
	return s.buildMap(ctx, s.cfg.StateBoundaryURL, model.ChamberSenate, "code", t)
}

// DistrictMap builds the House choropleth keyed by "ST-n" district codes.
func (s *MapService) DistrictMap(ctx context.Context, t zoom.Transform) (*geo.Map, zoom.Transform, error) {
	return s.buildMap(ctx, s.cfg.DistrictBoundaryURL, model.ChamberHouse, "code", t)
}

func (s *MapService) buildMap(ctx context.Context, boundaryURL string, chamber model.Chamber, codeProperty string, t zoom.Transform) (*geo.Map, zoom.Transform, error) {
	// Members first: a failed member fetch is a page error, a failed
	// boundary fetch is not.
	members, err := s.api.ListMembers(ctx, chamber, 1, 600)
	if err != nil {
		return nil, t, err
	}

	fc := s.loader.Load(ctx, boundaryURL)
	occupants := geo.JoinOccupants(members.Members, chamber)

	controller := geo.NewController()
	t = controller.Set(t)

	m := geo.BuildMap(fc, occupants, codeProperty)
	return &m, t, nil
}
