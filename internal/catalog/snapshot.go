package catalog

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/crew-draft-backend/internal/entity"
	"github.com/DoyleJ11/crew-draft-backend/internal/errors"
)

// Request selects what LoadSnapshot fetches.
type Request struct {
	SourceIDs []int
	Ships     bool
}

// Snapshot is the validated catalog a single draft runs against. Crew has
// already had source exclusions removed.
type Snapshot struct {
	Crew    []*entity.Crew
	Ships   []*entity.Ship
	Roles   []entity.Role
	Sources []*entity.Source
}

// RoleNames maps role id to display name for every named catalog role.
func (s *Snapshot) RoleNames() map[int]string {
	out := make(map[int]string, len(s.Roles))
	for _, r := range s.Roles {
		if r.ID > 0 && r.Name != "" {
			out[r.ID] = r.Name
		}
	}
	return out
}

// SourceExclusions collects the crew ids excluded by any selected source.
// With no selection every source counts as selected.
func SourceExclusions(sources []*entity.Source, selected []int) entity.IDSet {
	sel := entity.NewIDSet(selected...)
	out := entity.IDSet{}
	for _, src := range sources {
		if sel.Len() > 0 && !sel.Has(src.ID) {
			continue
		}
		for id := range src.Exclusions {
			out.Add(id)
		}
	}
	return out
}

// LoadSnapshot fetches crew, ships, roles and sources concurrently, validates
// every record and applies source exclusions. Any fetch failure cancels the
// rest and is returned as is; invalid records and malformed exclusion
// tokens are logged and skipped.
func LoadSnapshot(ctx context.Context, gw Gateway, req Request, logger *zap.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		crewRecs   []entity.CrewRecord
		shipRecs   []entity.ShipRecord
		sourceRecs []entity.SourceRecord
		roles      []entity.Role
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		crewRecs, err = gw.FetchCrew(gctx, req.SourceIDs)
		return err
	})
	if req.Ships {
		g.Go(func() error {
			var err error
			shipRecs, err = gw.FetchShips(gctx, req.SourceIDs)
			return err
		})
	}
	g.Go(func() error {
		var err error
		sourceRecs, err = gw.FetchSources(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		roles, err = gw.FetchRoles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.GetCode(err) == errors.CodeInternal {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "load catalog")
		}
		return nil, err
	}

	snap := &Snapshot{Roles: roles}

	for _, rec := range sourceRecs {
		if len(rec.Exclusions.Dropped) > 0 {
			logger.Warn("dropped malformed source exclusions",
				zap.Int("source_id", int(rec.ID)),
				zap.Strings("tokens", rec.Exclusions.Dropped),
			)
		}
		src, err := entity.NewSource(rec)
		if err != nil {
			logger.Warn("skipping invalid source record", zap.Error(err))
			continue
		}
		snap.Sources = append(snap.Sources, src)
	}
	excluded := SourceExclusions(snap.Sources, req.SourceIDs)

	for _, rec := range crewRecs {
		if len(rec.Exclusions.Dropped) > 0 {
			logger.Warn("dropped malformed crew exclusions",
				zap.Int("crew_id", int(rec.ID)),
				zap.Strings("tokens", rec.Exclusions.Dropped),
			)
		}
		c, err := entity.NewCrew(rec)
		if err != nil {
			logger.Warn("skipping invalid crew record", zap.Error(err))
			continue
		}
		if excluded.Has(c.ID()) {
			continue
		}
		snap.Crew = append(snap.Crew, c)
	}

	for _, rec := range shipRecs {
		s, err := entity.NewShip(rec)
		if err != nil {
			logger.Warn("skipping invalid ship record", zap.Error(err))
			continue
		}
		snap.Ships = append(snap.Ships, s)
	}

	logger.Debug("catalog snapshot loaded",
		zap.Ints("source_ids", req.SourceIDs),
		zap.Int("crew", len(snap.Crew)),
		zap.Int("ships", len(snap.Ships)),
		zap.Int("source_excluded", excluded.Len()),
	)
	return snap, nil
}
