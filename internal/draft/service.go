// Package draft runs complete drafts: it loads a catalog snapshot, builds
// and runs the engine, and assembles the response.
package draft

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/crew-draft-backend/internal/catalog"
	"github.com/DoyleJ11/crew-draft-backend/internal/engine"
	"github.com/DoyleJ11/crew-draft-backend/internal/errors"
	"github.com/DoyleJ11/crew-draft-backend/internal/types"
)

const (
	DefaultNumPlayers    = 2
	DefaultNumCrewNeeded = 5
)

type Config struct {
	Gateway catalog.Gateway
	Logger  *zap.Logger
	// FetchTimeout bounds the whole catalog load. Zero means no extra bound.
	FetchTimeout time.Duration
	// DefaultSourceIDs is used when a request selects no sources.
	DefaultSourceIDs []int
	// NewSampler builds the sampler for each run. Tests inject seeded ones.
	NewSampler func() engine.Sampler
	// NewID labels each run. Defaults to GenerateCode.
	NewID func() (string, error)
}

func (c *Config) Validate() error {
	if c.Gateway == nil {
		return errors.InvalidArgument("catalog gateway is required")
	}
	return nil
}

// Service is stateless between runs; every call loads a fresh snapshot.
type Service struct {
	gateway          catalog.Gateway
	logger           *zap.Logger
	fetchTimeout     time.Duration
	defaultSourceIDs []int
	newSampler       func() engine.Sampler
	newID            func() (string, error)
}

func NewService(cfg *Config) (*Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid draft service config")
	}

	s := &Service{
		gateway:          cfg.Gateway,
		logger:           cfg.Logger,
		fetchTimeout:     cfg.FetchTimeout,
		defaultSourceIDs: append([]int(nil), cfg.DefaultSourceIDs...),
		newSampler:       cfg.NewSampler,
		newID:            cfg.NewID,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.newSampler == nil {
		s.newSampler = engine.NewSampler
	}
	if s.newID == nil {
		s.newID = GenerateCode
	}
	return s, nil
}

// EngineConfig applies form defaults to req and validates the result.
func (s *Service) EngineConfig(req types.DraftRequest) (engine.Config, error) {
	cfg := engine.Config{
		NumPlayers:      DefaultNumPlayers,
		PicksPerPlayer:  DefaultNumCrewNeeded,
		RequiredRoleIDs: req.RequiredRoleIDs,
		DraftLeader:     req.DraftLeader,
		DraftShip:       req.DraftShip,
		PlayerNames:     req.PlayerNames,
		TargetSourceIDs: req.TargetSourceIDs,
	}
	if req.NumPlayers != nil {
		cfg.NumPlayers = *req.NumPlayers
	}
	if req.NumCrewNeeded != nil {
		cfg.PicksPerPlayer = *req.NumCrewNeeded
	}
	if len(cfg.TargetSourceIDs) == 0 {
		cfg.TargetSourceIDs = s.defaultSourceIDs
	}

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid draft request")
	}
	return cfg.Normalize(), nil
}

// Run executes one draft and returns the assembled teams.
func (s *Service) Run(ctx context.Context, req types.DraftRequest) (*types.DraftResponse, error) {
	resp, _, err := s.run(ctx, req)
	return resp, err
}

// RunStream executes one draft and passes every pick to emit in draft order
// before returning the final teams. An error from emit stops the stream.
func (s *Service) RunStream(ctx context.Context, req types.DraftRequest, emit func(types.PickView) error) (*types.DraftResponse, error) {
	resp, picks, err := s.run(ctx, req)
	if err != nil {
		return nil, err
	}
	for _, pv := range picks {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.GetCode(err), "pick stream interrupted")
		}
		if err := emit(pv); err != nil {
			return nil, errors.Wrap(err, "emit pick")
		}
	}
	return resp, nil
}

func (s *Service) run(ctx context.Context, req types.DraftRequest) (*types.DraftResponse, []types.PickView, error) {
	cfg, err := s.EngineConfig(req)
	if err != nil {
		return nil, nil, err
	}

	draftID, err := s.newID()
	if err != nil {
		return nil, nil, errors.Wrap(err, "generate draft id")
	}
	log := s.logger.With(zap.String("draft_id", draftID))

	snap, err := s.loadSnapshot(ctx, catalog.Request{SourceIDs: cfg.TargetSourceIDs, Ships: cfg.DraftShip})
	if err != nil {
		log.Error("catalog load failed", zap.Error(err))
		return nil, nil, err
	}

	eng, err := engine.New(cfg, snap.Crew, snap.Ships,
		engine.WithSampler(s.newSampler()),
		engine.WithLogger(log),
		engine.WithRoleNames(snap.RoleNames()),
	)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid draft request")
	}
	if err := eng.Run(); err != nil {
		return nil, nil, errors.Wrap(err, "run draft")
	}
	res, err := eng.Result()
	if err != nil {
		return nil, nil, errors.Wrap(err, "read draft result")
	}

	resp := Assemble(draftID, res)
	log.Info("draft completed",
		zap.Int("players", cfg.NumPlayers),
		zap.Int("crew_pool", len(snap.Crew)),
		zap.Int("skipped_picks", engine.CountEvents(eng.Events(), engine.EvtPickSkipped)),
		zap.Int("unfilled_roles", engine.CountEvents(eng.Events(), engine.EvtRoleUnfilled)),
	)
	return &resp, PickViews(eng.Events(), cfg.PlayerNames), nil
}

func (s *Service) loadSnapshot(ctx context.Context, req catalog.Request) (*catalog.Snapshot, error) {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}
	return catalog.LoadSnapshot(ctx, s.gateway, req, s.logger)
}

// ListRoles returns the catalog roles for building the draft form.
func (s *Service) ListRoles(ctx context.Context) ([]types.RoleView, error) {
	ctx, cancel := s.fetchContext(ctx)
	defer cancel()

	roles, err := s.gateway.FetchRoles(ctx)
	if err != nil {
		return nil, unavailable(err, "list roles")
	}
	out := make([]types.RoleView, 0, len(roles))
	for _, r := range roles {
		if r.ID <= 0 {
			continue
		}
		out = append(out, types.RoleView{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// ListSources returns the catalog sources with their crew exclusions.
func (s *Service) ListSources(ctx context.Context) ([]types.SourceView, error) {
	ctx, cancel := s.fetchContext(ctx)
	defer cancel()

	recs, err := s.gateway.FetchSources(ctx)
	if err != nil {
		return nil, unavailable(err, "list sources")
	}
	out := make([]types.SourceView, 0, len(recs))
	for _, rec := range recs {
		if rec.ID <= 0 {
			continue
		}
		ex := rec.Exclusions.IDs
		if ex == nil {
			ex = []int{}
		}
		out = append(out, types.SourceView{ID: int(rec.ID), Name: rec.Name, Exclusions: ex})
	}
	return out, nil
}

func (s *Service) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.fetchTimeout > 0 {
		return context.WithTimeout(ctx, s.fetchTimeout)
	}
	return context.WithCancel(ctx)
}

func unavailable(err error, message string) error {
	if errors.GetCode(err) == errors.CodeInternal {
		return errors.WrapWithCode(err, errors.CodeUnavailable, message)
	}
	return errors.Wrap(err, message)
}
