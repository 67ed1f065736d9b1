// Package osrm is an HTTP client for OSRM-compatible road routing services.
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/platform/obs"
	"hub-routing-service/internal/ports"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://router.project-osrm.org/route/v1/driving"
	DefaultTimeout = 10 * time.Second
)

// Client implements ports.RoadRouter against the OSRM route service.
//
// Responses are cached by the ordered waypoint list when a cache is
// configured. Cache failures are logged and never fail a request.
// The client is safe for concurrent use.
type Client struct {
	session   *http.Client
	baseURL   string
	userAgent string
	cache     ports.RoadRouteCache
	logger    *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client (and its timeout).
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.session = h } }

// WithCache enables response caching.
func WithCache(cache ports.RoadRouteCache) Option { return func(c *Client) { c.cache = cache } }

func WithUserAgent(ua string) Option { return func(c *Client) { c.userAgent = ua } }

func WithLogger(l *zap.Logger) Option { return func(c *Client) { c.logger = l } }

func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("osrm client: base url is empty")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		session:   &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		userAgent: "hub-routing-service",
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route requests a full-geometry route through the waypoints in order.
func (c *Client) Route(ctx context.Context, waypoints []domain.Coordinates) (_ ports.RoadRoute, err error) {
	defer obs.Time(ctx, c.logger, "osrm.Route")(&err)

	if len(waypoints) < 2 {
		return ports.RoadRoute{}, fmt.Errorf("osrm route: need at least 2 waypoints, got %d", len(waypoints))
	}
	key := CoordinatePath(waypoints)

	if c.cache != nil {
		hit, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.logger.Warn("route cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return hit, nil
		}
	}

	rr, err := c.fetch(ctx, key)
	if err != nil {
		return ports.RoadRoute{}, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, rr); err != nil {
			c.logger.Warn("route cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return rr, nil
}

func (c *Client) fetch(ctx context.Context, coords string) (ports.RoadRoute, error) {
	url := fmt.Sprintf("%s/%s?overview=full&geometries=geojson", c.baseURL, coords)
	req, err := c.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return ports.RoadRoute{}, fmt.Errorf("osrm route: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return ports.RoadRoute{}, fmt.Errorf("osrm route %s: %w", coords, err)
	}
	defer resp.Body.Close()

	var body routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.RoadRoute{}, fmt.Errorf("osrm route %s: %w: decode response: %v", coords, domain.ErrProviderUnavailable, err)
	}
	if len(body.Routes) == 0 {
		return ports.RoadRoute{}, fmt.Errorf("osrm route %s: code=%q: %w", coords, body.Code, domain.ErrNoPathFound)
	}

	first := body.Routes[0]
	geometry := make([]domain.Coordinates, 0, len(first.Geometry.Coordinates))
	for i, p := range first.Geometry.Coordinates {
		if len(p) < 2 {
			return ports.RoadRoute{}, fmt.Errorf("osrm route %s: %w: coordinate %d has %d components", coords, domain.ErrProviderUnavailable, i, len(p))
		}
		geometry = append(geometry, domain.Coordinates{Lon: p[0], Lat: p[1]})
	}

	return ports.RoadRoute{
		DistanceMeters:  first.Distance,
		DurationSeconds: first.Duration,
		Geometry:        geometry,
	}, nil
}

// CoordinatePath formats waypoints as "lon,lat;lon,lat;...". It is both the
// URL path segment and the cache key.
func CoordinatePath(waypoints []domain.Coordinates) string {
	parts := make([]string, len(waypoints))
	for i, w := range waypoints {
		parts[i] = fmt.Sprintf("%f,%f", w.Lon, w.Lat)
	}
	return strings.Join(parts, ";")
}
