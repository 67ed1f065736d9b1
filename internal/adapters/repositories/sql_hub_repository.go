package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/geo"
	"hub-routing-service/internal/platform/db"
	"hub-routing-service/internal/platform/obs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SQL-backed implementation of the HubProvider port.
type SQLHubRepository struct {
	DB      *sql.DB
	dialect db.Dialect
	logger  *zap.Logger
}

func NewSQLHubRepository(conn *sql.DB, driver string, logger *zap.Logger) *SQLHubRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLHubRepository{DB: conn, dialect: db.DialectFor(driver), logger: logger}
}

// Return all hubs ordered by id.
func (s *SQLHubRepository) ListHubs(ctx context.Context) (_ []domain.Hub, err error) {
	defer obs.Time(ctx, s.logger, "hubs.ListHubs")(&err)

	if s.DB == nil {
		return nil, errors.New("sql hub repository: DB is nil")
	}

	query := `
	SELECT id, address, type, location
	FROM hubs
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list hubs: query hubs table: %w", err)
	}
	defer rows.Close()

	hubs := make([]domain.Hub, 0, 64)
	for rows.Next() {
		h, err := scanHub(rows)
		if err != nil {
			return nil, fmt.Errorf("list hubs: %w", err)
		}
		hubs = append(hubs, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hubs: row iteration: %w", err)
	}

	return hubs, nil
}

func (s *SQLHubRepository) GetHub(ctx context.Context, id uuid.UUID) (domain.Hub, error) {
	if s.DB == nil {
		return domain.Hub{}, errors.New("sql hub repository: DB is nil")
	}

	query := s.dialect.Rebind(`
	SELECT id, address, type, location
	FROM hubs
	WHERE id = ?;
	`)
	h, err := scanHub(s.DB.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hub{}, fmt.Errorf("get hub %s: %w", id, domain.ErrHubNotFound)
	}
	if err != nil {
		return domain.Hub{}, fmt.Errorf("get hub %s: %w", id, err)
	}
	return h, nil
}

func (s *SQLHubRepository) ListEdges(ctx context.Context) (_ []domain.Edge, err error) {
	defer obs.Time(ctx, s.logger, "hubs.ListEdges")(&err)

	query := `
	SELECT id, from_hub_id, to_hub_id, weight
	FROM hub_connections
	ORDER BY id;
	`
	return s.queryEdges(ctx, "list edges", query)
}

func (s *SQLHubRepository) ListEdgesFrom(ctx context.Context, id uuid.UUID) ([]domain.Edge, error) {
	query := s.dialect.Rebind(`
	SELECT id, from_hub_id, to_hub_id, weight
	FROM hub_connections
	WHERE from_hub_id = ?
	ORDER BY id;
	`)
	return s.queryEdges(ctx, "list edges from "+id.String(), query, id.String())
}

func (s *SQLHubRepository) queryEdges(ctx context.Context, op, query string, args ...any) ([]domain.Edge, error) {
	if s.DB == nil {
		return nil, errors.New("sql hub repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query hub_connections table: %w", op, err)
	}
	defer rows.Close()

	edges := make([]domain.Edge, 0, 64)
	for rows.Next() {
		var (
			e      domain.Edge
			weight sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.FromHubID, &e.ToHubID, &weight); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		if weight.Valid {
			e.Weight = domain.Weight(weight.Float64)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: row iteration: %w", op, err)
	}
	return edges, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHub(row rowScanner) (domain.Hub, error) {
	var (
		h        domain.Hub
		typ, loc string
	)
	if err := row.Scan(&h.ID, &h.Address, &typ, &loc); err != nil {
		return domain.Hub{}, err
	}

	t, err := domain.ParseHubType(typ)
	if err != nil {
		return domain.Hub{}, fmt.Errorf("hub %s: %w", h.ID, err)
	}
	h.Type = t

	if h.Location, err = geo.ParsePoint(loc); err != nil {
		return domain.Hub{}, fmt.Errorf("hub %s location: %w", h.ID, err)
	}
	return h, nil
}
