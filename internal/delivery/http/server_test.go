package http_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/config"
	httpserver "github.com/atl08-heightmap/internal/delivery/http"
	"github.com/atl08-heightmap/internal/delivery/http/handler"
	"github.com/atl08-heightmap/internal/render"
	"github.com/atl08-heightmap/internal/repository/overlay"
	"github.com/atl08-heightmap/internal/usecase"
)

type stubCheck struct{ err error }

func (s stubCheck) Health(context.Context) error { return s.err }

const inlineBody = `{
	"rows": [
		{"lat": 10, "lon": 10, "h_can": 5, "night_flg": 0},
		{"lat": 11, "lon": 11, "h_can": 12, "night_flg": 1},
		{"lat": 12, "lon": 12, "h_can": 25, "night_flg": 1}
	]
}`

func newTestServer(t *testing.T, checks map[string]httpserver.HealthChecker) *httpserver.Server {
	t.Helper()
	logger := zap.NewNop()

	renderer, err := render.NewHTMLRenderer("")
	require.NoError(t, err)
	composer := usecase.NewMapComposer(overlay.NewGeoJSONRepository(t.TempDir(), logger), usecase.NewMarkerRenderer(logger), logger)
	renderUC := usecase.NewRenderUseCase(nil, nil, nil, composer, renderer, usecase.DefaultComposeOptions(), logger, time.Hour)

	return httpserver.NewServer(
		&config.Config{},
		logger,
		handler.NewMapHandler(renderUC, logger),
		handler.NewBasemapHandler(),
		handler.NewColormapHandler(),
		checks,
	)
}

func doJSON(t *testing.T, s *httpserver.Server, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestServer_RenderMap(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := doJSON(t, s, "POST", "/api/v1/maps", inlineBody)
	require.Equal(t, 200, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, 2.0, data["marker_count"])
	assert.Len(t, data["map_id"], 32)
	assert.Equal(t, map[string]interface{}{"lat": 11.0, "lon": 11.0}, data["center"])
}

func TestServer_RenderMapHTML(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest("POST", "/api/v1/maps/html", strings.NewReader(inlineBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	html, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(html), "ATL08 night obs")
	assert.Contains(t, string(html), "Vegetation height from ATL08 (h_can)")
}

func TestServer_RenderErrors(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{"rows":`, 400, "INVALID_REQUEST"},
		{"no rows and no granule", `{"column":"h_can"}`, 400, "INVALID_REQUEST"},
		{"column is not an identifier", `{"rows":[{"lat":1,"lon":1}],"column":"h can"}`, 400, "INVALID_REQUEST"},
		{"missing metric column", `{"rows":[{"lat":1,"lon":1,"night_flg":1}]}`, 422, "MISSING_COLUMN"},
		{"overlay outside store", `{"rows":[{"lat":1,"lon":1,"h_can":2,"night_flg":1}],"overlay_paths":["nope.geojson"]}`, 422, "OVERLAY_UNREADABLE"},
		{"granule without store", `{"granule":"ATL08_20190801"}`, 400, "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, s, "POST", "/api/v1/maps", tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body["error"].(map[string]interface{})["code"])
		})
	}
}

func TestServer_GetMapWithoutCache(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := doJSON(t, s, "GET", "/api/v1/maps/0123456789abcdef", "")
	assert.Equal(t, 404, status)
	assert.Equal(t, "MAP_NOT_FOUND", body["error"].(map[string]interface{})["code"])
}

func TestServer_Basemaps(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := doJSON(t, s, "GET", "/api/v1/basemaps", "")
	require.Equal(t, 200, status)

	data := body["data"].(map[string]interface{})
	assert.Len(t, data["basemaps"], 4)
	assert.Equal(t, []interface{}{"Imagery", "basemap_gray", "ESRINatGeo"}, data["defaults"])
}

func TestServer_Colormap(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := doJSON(t, s, "GET", "/api/v1/colormap?value=30", "")
	require.Equal(t, 200, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "#1a9850", data["color"])
	assert.Len(t, data["stops"], 8)

	status, _ = doJSON(t, s, "GET", "/api/v1/colormap?value=tall", "")
	assert.Equal(t, 400, status)
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t, map[string]httpserver.HealthChecker{
		"redis":    stubCheck{},
		"database": stubCheck{err: stderrors.New("connection refused")},
	})

	status, body := doJSON(t, s, "GET", "/api/v1/health", "")
	assert.Equal(t, 503, status)
	assert.Equal(t, "degraded", body["status"])
	deps := body["dependencies"].(map[string]interface{})
	assert.Equal(t, "ok", deps["redis"])
}
