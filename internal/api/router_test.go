package api

import (
	"bytes"
	"encoding/json"
	"hub-routing-service/internal/adapters/osrm"
	"hub-routing-service/internal/adapters/repositories"
	"hub-routing-service/internal/api/dto"
	"hub-routing-service/internal/domain"
	"hub-routing-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	hubs   *repositories.MemoryHubProvider
	router *osrm.MockRoadRouter
	h      http.Handler
	a, b   domain.Hub
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	a := domain.Hub{ID: uuid.New(), Address: "north depot", Type: domain.HubWarehouse, Location: domain.Coordinates{Lon: 4.05, Lat: 9.70}}
	b := domain.Hub{ID: uuid.New(), Address: "south depot", Type: domain.HubPickupPoint, Location: domain.Coordinates{Lon: 4.05, Lat: 9.80}}

	hubs := repositories.NewMemoryHubProvider([]domain.Hub{a, b}, nil)
	router := osrm.NewMockRoadRouter()
	svc := services.NewRouteService(hubs, repositories.NewMemoryRouteRepository(), services.NewStrategies(hubs, router, 0, nil), nil)
	return &testAPI{hubs: hubs, router: router, h: NewRouter(svc, nil), a: a, b: b}
}

func (api *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch v := body.(type) {
		case string:
			buf.WriteString(v)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(v))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	api.h.ServeHTTP(rec, req)
	return rec
}

func (api *testAPI) calculate(t *testing.T, algorithm string) dto.RouteResponse {
	t.Helper()
	rec := api.do(t, http.MethodPost, "/api/v1/routes/calculate", map[string]any{
		"parcel_id":    uuid.New(),
		"driver_id":    uuid.New(),
		"start_hub_id": api.a.ID,
		"end_hub_id":   api.b.ID,
		"constraints":  map[string]any{"algorithm": algorithm},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res dto.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	api.h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestCalculateAndGetRoute(t *testing.T) {
	api := newTestAPI(t)
	created := api.calculate(t, "BASIC")

	assert.Equal(t, "BASIC", created.RoutingService)
	assert.True(t, strings.HasPrefix(created.Geometry, "LINESTRING("), created.Geometry)
	assert.Equal(t, [][]float64{{4.05, 9.7}, {4.05, 9.8}}, created.Coordinates)
	require.NotNil(t, created.StartHubID)
	assert.Equal(t, api.a.ID, *created.StartHubID)
	assert.True(t, created.Active)

	rec := api.do(t, http.MethodGet, "/api/v1/routes/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Geometry, got.Geometry)
}

func TestCalculateRejectsBadInput(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/routes/calculate", `{"parcel_id": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/v1/routes/calculate", `{"unknown": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/v1/routes/calculate", map[string]any{"parcel_id": uuid.New()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalculateWithoutDriver(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodPost, "/api/v1/routes/calculate", map[string]any{
		"parcel_id":    uuid.New(),
		"start_hub_id": api.a.ID,
		"end_hub_id":   api.b.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res dto.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Nil(t, res.DriverID)
	assert.Equal(t, "BASIC", res.RoutingService)
}

func TestCalculateUnknownHub(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodPost, "/api/v1/routes/calculate", map[string]any{
		"parcel_id":    uuid.New(),
		"driver_id":    uuid.New(),
		"start_hub_id": uuid.New(),
		"end_hub_id":   api.b.ID,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalculateNoPathAnywhere(t *testing.T) {
	api := newTestAPI(t)
	api.router.Err = domain.ErrProviderUnavailable

	rec := api.do(t, http.MethodPost, "/api/v1/routes/calculate", map[string]any{
		"parcel_id":    uuid.New(),
		"driver_id":    uuid.New(),
		"start_hub_id": api.a.ID,
		"end_hub_id":   api.b.ID,
		"constraints":  map[string]any{"algorithm": "DIJKSTRA"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCalculateProviderDown(t *testing.T) {
	api := newTestAPI(t)
	api.router.Err = domain.ErrProviderUnavailable

	rec := api.do(t, http.MethodPost, "/api/v1/routes/calculate", map[string]any{
		"parcel_id":    uuid.New(),
		"driver_id":    uuid.New(),
		"start_hub_id": api.a.ID,
		"end_hub_id":   api.b.ID,
		"constraints":  map[string]any{"algorithm": "OSRM"},
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetRouteErrors(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/v1/routes/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/routes/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecalculateRoute(t *testing.T) {
	api := newTestAPI(t)
	created := api.calculate(t, "BASIC")
	path := "/api/v1/routes/" + created.ID.String() + "/recalculate"

	rec := api.do(t, http.MethodPost, path, map[string]any{
		"type":                   "ACCIDENT",
		"line_start":             map[string]float64{"lon": 4.04, "lat": 9.705},
		"line_end":               map[string]float64{"lon": 4.06, "lat": 9.705},
		"buffer_distance_meters": 50,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got dto.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "BASIC_DETOUR", got.RoutingService)
	assert.Greater(t, len(got.Coordinates), 2)
}

func TestRecalculateRouteUnchanged(t *testing.T) {
	api := newTestAPI(t)
	created := api.calculate(t, "BASIC")

	rec := api.do(t, http.MethodPost, "/api/v1/routes/"+created.ID.String()+"/recalculate", map[string]any{
		"type":                   "CONSTRUCTION",
		"buffer_distance_meters": 50,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.RoutingService, got.RoutingService)
	assert.Equal(t, created.Coordinates, got.Coordinates)
}

func TestRecalculateRejectsNegativeBuffer(t *testing.T) {
	api := newTestAPI(t)
	created := api.calculate(t, "BASIC")

	rec := api.do(t, http.MethodPost, "/api/v1/routes/"+created.ID.String()+"/recalculate", map[string]any{
		"line_start":             map[string]float64{"lon": 4.04, "lat": 9.705},
		"line_end":               map[string]float64{"lon": 4.06, "lat": 9.705},
		"buffer_distance_meters": -5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListHubs(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/api/v1/hubs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ListHubsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Hubs, 2)
	assert.Equal(t, api.a.ID, res.Hubs[0].ID)
	assert.Equal(t, "WAREHOUSE", res.Hubs[0].Type)
	assert.True(t, strings.HasPrefix(res.Hubs[0].Location, "POINT("), res.Hubs[0].Location)
}

func TestMethodNotAllowed(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodPut, "/health", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
