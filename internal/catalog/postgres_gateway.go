package catalog

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DoyleJ11/crew-draft-backend/internal/entity"
	"github.com/DoyleJ11/crew-draft-backend/internal/errors"
)

// PostgresGateway reads the catalog schema (crew, crew_roles, roles,
// crew_exclusions, planets, ships, sources, source_exclusions) directly. Roles and exclusions
// are aggregated in SQL so each fetch is a single query.
type PostgresGateway struct {
	db *gorm.DB
}

// NewPostgresGateway opens a pgx-backed connection pool for dsn.
func NewPostgresGateway(dsn string) (*PostgresGateway, error) {
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse database url")
	}
	sqlDB := stdlib.OpenDB(*connCfg)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "open catalog database")
	}
	return &PostgresGateway{db: db}, nil
}

// NewPostgresGatewayFromDB wraps an existing gorm handle.
func NewPostgresGatewayFromDB(db *gorm.DB) *PostgresGateway {
	return &PostgresGateway{db: db}
}

func (g *PostgresGateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type crewRow struct {
	ID         int
	CrewName   string
	Leader     bool
	SourceID   int
	SourceName string
	PlanetName string
	ImageURL   string
	Roles      string
	Exclusions string
}

type shipRow struct {
	ID         int
	ShipName   string
	SourceID   int
	SourceName string
	ImageURL   string
}

type sourceRow struct {
	SourceID   int
	SourceName string
	Exclusions string
}

func (g *PostgresGateway) FetchCrew(ctx context.Context, sourceIDs []int) ([]entity.CrewRecord, error) {
	q := g.db.WithContext(ctx).
		Table("crew c").
		Select(`c.id, c.name AS crew_name, COALESCE(c.leader::int, 0) = 1 AS leader, c.source_id,
			COALESCE(s.name, '') AS source_name,
			COALESCE(p.name, '') AS planet_name,
			COALESCE(c.image_url, '') AS image_url,
			COALESCE(json_agg(json_build_object('id', r.id, 'name', r.name) ORDER BY r.id)
				FILTER (WHERE r.id IS NOT NULL), '[]')::text AS roles,
			COALESCE((SELECT string_agg(ce.excluded_crew_id::text, ',') FROM crew_exclusions ce WHERE ce.crew_id = c.id), '') AS exclusions`).
		Joins("LEFT JOIN sources s ON s.id = c.source_id").
		Joins("LEFT JOIN planets p ON p.id = c.planet_id").
		Joins("LEFT JOIN crew_roles cr ON cr.crew_id = c.id").
		Joins("LEFT JOIN roles r ON r.id = cr.role_id").
		Group("c.id, s.name, p.name").
		Order("c.id")
	if len(sourceIDs) > 0 {
		q = q.Where("c.source_id IN ?", sourceIDs)
	}

	var rows []crewRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, dbUnavailable(ctx, err, "crew")
	}

	out := make([]entity.CrewRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.record())
	}
	return out, nil
}

func (g *PostgresGateway) FetchShips(ctx context.Context, sourceIDs []int) ([]entity.ShipRecord, error) {
	q := g.db.WithContext(ctx).
		Table("ships sh").
		Select(`sh.id, sh.name AS ship_name, sh.source_id,
			COALESCE(s.name, '') AS source_name,
			COALESCE(sh.image_url, '') AS image_url`).
		Joins("LEFT JOIN sources s ON s.id = sh.source_id").
		Order("sh.name")
	if len(sourceIDs) > 0 {
		q = q.Where("sh.source_id IN ?", sourceIDs)
	}

	var rows []shipRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, dbUnavailable(ctx, err, "ships")
	}

	out := make([]entity.ShipRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.ShipRecord{
			ID:         entity.FlexInt(row.ID),
			Name:       row.ShipName,
			SourceID:   entity.FlexInt(row.SourceID),
			SourceName: row.SourceName,
			ImageURL:   row.ImageURL,
		})
	}
	return out, nil
}

func (g *PostgresGateway) FetchSources(ctx context.Context) ([]entity.SourceRecord, error) {
	var rows []sourceRow
	err := g.db.WithContext(ctx).
		Table("sources s").
		Select(`s.id AS source_id, s.name AS source_name,
			COALESCE(string_agg(se.excluded_crew_id::text, ',' ORDER BY se.excluded_crew_id), '') AS exclusions`).
		Joins("LEFT JOIN source_exclusions se ON se.source_id = s.id").
		Group("s.id, s.name").
		Order("s.name").
		Scan(&rows).Error
	if err != nil {
		return nil, dbUnavailable(ctx, err, "sources")
	}

	out := make([]entity.SourceRecord, 0, len(rows))
	for _, row := range rows {
		ids, dropped := entity.ParseIDs(row.Exclusions)
		out = append(out, entity.SourceRecord{
			ID:         entity.FlexInt(row.SourceID),
			Name:       row.SourceName,
			Exclusions: entity.IDList{IDs: ids, Dropped: dropped},
		})
	}
	return out, nil
}

func (g *PostgresGateway) FetchRoles(ctx context.Context) ([]entity.Role, error) {
	var roles []entity.Role
	err := g.db.WithContext(ctx).
		Table("roles").
		Select("id, name").
		Order("id").
		Scan(&roles).Error
	if err != nil {
		return nil, dbUnavailable(ctx, err, "roles")
	}
	return roles, nil
}

// record rebuilds the catalog record from the aggregated columns. Roles
// arrive as a JSON array of {id, name} objects; an unreadable array leaves
// the crew member without roles.
func (row crewRow) record() entity.CrewRecord {
	rec := entity.CrewRecord{
		ID:         entity.FlexInt(row.ID),
		Name:       row.CrewName,
		Leader:     entity.FlexBool(row.Leader),
		SourceID:   entity.FlexInt(row.SourceID),
		SourceName: row.SourceName,
		PlanetName: row.PlanetName,
		ImageURL:   row.ImageURL,
	}

	if row.Roles != "" {
		var roles []entity.Role
		if err := json.Unmarshal([]byte(row.Roles), &roles); err == nil {
			rec.Roles = roles
		}
	}

	excl, dropped := entity.ParseIDs(row.Exclusions)
	rec.Exclusions = entity.IDList{IDs: excl, Dropped: dropped}
	return rec
}

func dbUnavailable(ctx context.Context, err error, resource string) error {
	code := errors.CodeUnavailable
	if ctx.Err() == context.DeadlineExceeded {
		code = errors.CodeDeadlineExceeded
	}
	return errors.WrapWithCodef(err, code, "query catalog %s", resource).WithMeta("resource", resource)
}

var _ Gateway = (*PostgresGateway)(nil)
