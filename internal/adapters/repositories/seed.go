package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/geo"
	"hub-routing-service/internal/platform/db"
	"os"
	"strings"

	"github.com/google/uuid"
)

type HubSeed struct {
	ID      string  `json:"id"`
	Address string  `json:"address"`
	Type    string  `json:"type"`
	Lon     float64 `json:"lon"`
	Lat     float64 `json:"lat"`
}

type EdgeSeed struct {
	ID     string   `json:"id"`
	From   string   `json:"from"`
	To     string   `json:"to"`
	Weight *float64 `json:"weight"`
}

// NetworkSeed is the JSON document accepted by SeedFromJSON.
type NetworkSeed struct {
	Hubs  []HubSeed  `json:"hubs"`
	Edges []EdgeSeed `json:"edges"`
}

// Parse validates a seed document into domain values. Edges must reference
// hubs from the same document.
func (n NetworkSeed) Parse() ([]domain.Hub, []domain.Edge, error) {
	hubs := make([]domain.Hub, 0, len(n.Hubs))
	known := make(map[uuid.UUID]struct{}, len(n.Hubs))
	for i, h := range n.Hubs {
		id, err := uuid.Parse(strings.TrimSpace(h.ID))
		if err != nil {
			return nil, nil, fmt.Errorf("hub at index %d: invalid id %q: %w", i, h.ID, err)
		}
		if _, dup := known[id]; dup {
			return nil, nil, fmt.Errorf("hub at index %d: duplicate id %s", i, id)
		}
		typ, err := domain.ParseHubType(h.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("hub at index %d: %w", i, err)
		}
		loc := domain.Coordinates{Lon: h.Lon, Lat: h.Lat}
		if err := loc.Validate(); err != nil {
			return nil, nil, fmt.Errorf("hub at index %d: %w", i, err)
		}
		address := strings.TrimSpace(h.Address)
		if address == "" {
			return nil, nil, fmt.Errorf("hub at index %d: address cannot be empty", i)
		}
		known[id] = struct{}{}
		hubs = append(hubs, domain.Hub{ID: id, Address: address, Type: typ, Location: loc})
	}

	edges := make([]domain.Edge, 0, len(n.Edges))
	for i, e := range n.Edges {
		id := uuid.New()
		if s := strings.TrimSpace(e.ID); s != "" {
			var err error
			if id, err = uuid.Parse(s); err != nil {
				return nil, nil, fmt.Errorf("edge at index %d: invalid id %q: %w", i, e.ID, err)
			}
		}
		from, err := uuid.Parse(strings.TrimSpace(e.From))
		if err != nil {
			return nil, nil, fmt.Errorf("edge at index %d: invalid from %q: %w", i, e.From, err)
		}
		to, err := uuid.Parse(strings.TrimSpace(e.To))
		if err != nil {
			return nil, nil, fmt.Errorf("edge at index %d: invalid to %q: %w", i, e.To, err)
		}
		if _, ok := known[from]; !ok {
			return nil, nil, fmt.Errorf("edge at index %d: from %s: %w", i, from, domain.ErrHubNotFound)
		}
		if _, ok := known[to]; !ok {
			return nil, nil, fmt.Errorf("edge at index %d: to %s: %w", i, to, domain.ErrHubNotFound)
		}
		if e.Weight != nil && *e.Weight < 0 {
			return nil, nil, fmt.Errorf("edge at index %d: weight %v: %w", i, *e.Weight, domain.ErrNegativeWeight)
		}
		edges = append(edges, domain.Edge{ID: id, FromHubID: from, ToHubID: to, Weight: e.Weight})
	}
	return hubs, edges, nil
}

// Populate the hub network from a JSON file.
func SeedFromJSON(ctx context.Context, conn *sql.DB, driver, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed hubs: read %q: %w", jsonPath, err)
	}

	var data NetworkSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed hubs: parse json: %w", err)
	}

	hubs, edges, err := data.Parse()
	if err != nil {
		return fmt.Errorf("seed hubs: %w", err)
	}

	if err := SaveNetwork(ctx, conn, driver, hubs, edges); err != nil {
		return fmt.Errorf("seed hubs: %w", err)
	}
	return nil
}

// SaveNetwork upserts hubs and edges in one transaction.
func SaveNetwork(ctx context.Context, conn *sql.DB, driver string, hubs []domain.Hub, edges []domain.Edge) error {
	d := db.DialectFor(driver)

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save network: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	hubStmt, err := tx.PrepareContext(ctx, d.Rebind(`
	INSERT INTO hubs (id, address, type, location)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET address = EXCLUDED.address,
		type = EXCLUDED.type,
		location = EXCLUDED.location;
	`))
	if err != nil {
		return fmt.Errorf("save network: prepare hub insert: %w", err)
	}
	defer hubStmt.Close()

	for _, h := range hubs {
		if _, err := hubStmt.ExecContext(ctx, h.ID.String(), h.Address, string(h.Type), geo.FormatPoint(h.Location)); err != nil {
			return fmt.Errorf("save network: insert hub id=%s: %w", h.ID, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, d.Rebind(`
	INSERT INTO hub_connections (id, from_hub_id, to_hub_id, weight)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET from_hub_id = EXCLUDED.from_hub_id,
		to_hub_id = EXCLUDED.to_hub_id,
		weight = EXCLUDED.weight;
	`))
	if err != nil {
		return fmt.Errorf("save network: prepare edge insert: %w", err)
	}
	defer edgeStmt.Close()

	for _, e := range edges {
		weight := sql.NullFloat64{}
		if e.Weight != nil {
			weight = sql.NullFloat64{Float64: *e.Weight, Valid: true}
		}
		if _, err := edgeStmt.ExecContext(ctx, e.ID.String(), e.FromHubID.String(), e.ToHubID.String(), weight); err != nil {
			return fmt.Errorf("save network: insert edge id=%s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save network: commit tx: %w", err)
	}
	return nil
}
