package usecase_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/domain"
	"github.com/atl08-heightmap/internal/domain/repository"
	"github.com/atl08-heightmap/internal/pkg/errors"
	"github.com/atl08-heightmap/internal/render"
	"github.com/atl08-heightmap/internal/usecase"
	"github.com/atl08-heightmap/internal/usecase/dto"
)

type renderDeps struct {
	obs    *MockObservationRepository
	cache  *MockCacheRepository
	stream *MockStreamRepository
}

func newRenderUseCase(t *testing.T) (*usecase.RenderUseCase, renderDeps) {
	t.Helper()
	logger := zap.NewNop()
	renderer, err := render.NewHTMLRenderer("")
	require.NoError(t, err)

	deps := renderDeps{
		obs:    &MockObservationRepository{},
		cache:  &MockCacheRepository{},
		stream: &MockStreamRepository{},
	}
	composer := usecase.NewMapComposer(&MockOverlayRepository{}, usecase.NewMarkerRenderer(logger), logger)
	uc := usecase.NewRenderUseCase(deps.obs, deps.cache, deps.stream, composer, renderer,
		usecase.DefaultComposeOptions(), logger, time.Hour)
	return uc, deps
}

func inlineRequest() *dto.RenderMapRequest {
	return &dto.RenderMapRequest{
		Rows: []map[string]interface{}{
			{"lat": 10.0, "lon": 10.0, "h_can": 5.0, "night_flg": "day"},
			{"lat": 11.0, "lon": 11.0, "h_can": 12.0, "night_flg": "night"},
			{"lat": 12.0, "lon": 12.0, "h_can": 25.0, "night_flg": "night"},
		},
		NightSentinel: "night",
	}
}

func TestRenderUseCase_Render(t *testing.T) {
	uc, _ := newRenderUseCase(t)

	result, err := uc.Render(context.Background(), inlineRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, result.MarkerCount())
	assert.Equal(t, domain.Point{Lat: 11, Lon: 11}, result.Map.Center)
	assert.InDelta(t, 10, result.Bounds.MinLat, 1e-9)
	assert.InDelta(t, 12, result.Bounds.MaxLon, 1e-9)
	assert.Contains(t, string(result.HTML), "ATL08 night obs")
	assert.Len(t, result.MapID, 32)
}

func TestRenderUseCase_RenderAndStore(t *testing.T) {
	ctx := context.Background()

	t.Run("renders and caches on miss", func(t *testing.T) {
		uc, deps := newRenderUseCase(t)
		req := inlineRequest()
		mapID, err := usecase.MapID(req)
		require.NoError(t, err)

		deps.cache.On("Get", ctx, "map:meta:"+mapID).Return(nil, nil).Once()
		deps.cache.On("SetMap", ctx, mapID, mock.AnythingOfType("[]uint8"), time.Hour).Return(nil).Once()
		deps.cache.On("Set", ctx, "map:meta:"+mapID, mock.AnythingOfType("[]uint8"), time.Hour).Return(nil).Once()

		resp, err := uc.RenderAndStore(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, mapID, resp.MapID)
		assert.Equal(t, 2, resp.MarkerCount)
		assert.Equal(t, "/api/v1/maps/"+mapID, resp.URL)
		deps.cache.AssertExpectations(t)
	})

	t.Run("returns cached metadata on hit", func(t *testing.T) {
		uc, deps := newRenderUseCase(t)
		req := inlineRequest()
		mapID, err := usecase.MapID(req)
		require.NoError(t, err)

		cached, _ := json.Marshal(dto.RenderMapResponse{MapID: mapID, MarkerCount: 2, URL: usecase.MapURL(mapID)})
		deps.cache.On("Get", ctx, "map:meta:"+mapID).Return(cached, nil).Once()

		resp, err := uc.RenderAndStore(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.MarkerCount)
		deps.cache.AssertNotCalled(t, "SetMap", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache write failure", func(t *testing.T) {
		uc, deps := newRenderUseCase(t)
		req := inlineRequest()
		mapID, err := usecase.MapID(req)
		require.NoError(t, err)

		deps.cache.On("Get", ctx, "map:meta:"+mapID).Return(nil, nil).Once()
		deps.cache.On("SetMap", ctx, mapID, mock.Anything, time.Hour).Return(stderrors.New("connection refused")).Once()

		_, err = uc.RenderAndStore(ctx, req)
		assert.True(t, stderrors.Is(err, errors.ErrCacheError))
	})
}

func TestRenderUseCase_GetMapHTML(t *testing.T) {
	ctx := context.Background()
	uc, deps := newRenderUseCase(t)

	deps.cache.On("GetMap", ctx, "abc").Return([]byte("<html></html>"), nil).Once()
	deps.cache.On("GetMap", ctx, "missing").Return(nil, nil).Once()

	html, err := uc.GetMapHTML(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(html))

	_, err = uc.GetMapHTML(ctx, "missing")
	assert.True(t, stderrors.Is(err, errors.ErrMapNotFound))
}

func TestRenderUseCase_LoadsGranule(t *testing.T) {
	ctx := context.Background()
	uc, deps := newRenderUseCase(t)

	table := granuleTable(t)
	deps.obs.On("Load", ctx, repository.ObservationQuery{
		Granule: "ATL08_20190801",
		Columns: []string{"h_can", "night_flg"},
	}).Return(table, nil).Once()

	result, err := uc.Render(ctx, &dto.RenderMapRequest{Granule: "ATL08_20190801"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.MarkerCount())
	deps.obs.AssertExpectations(t)
}

func TestRenderUseCase_GranuleLoadFailure(t *testing.T) {
	ctx := context.Background()
	uc, deps := newRenderUseCase(t)

	deps.obs.On("Load", ctx, mock.Anything).Return(nil, stderrors.New("connection reset")).Once()

	_, err := uc.Render(ctx, &dto.RenderMapRequest{Granule: "ATL08_20190801"})
	assert.True(t, stderrors.Is(err, errors.ErrDatabaseError))
}

func TestRenderUseCase_EnqueueRender(t *testing.T) {
	ctx := context.Background()
	uc, deps := newRenderUseCase(t)

	var published domain.RenderMapEvent
	deps.stream.On("PublishToStream", ctx, domain.StreamMapRender, mock.AnythingOfType("domain.RenderMapEvent")).
		Run(func(args mock.Arguments) {
			published = args.Get(2).(domain.RenderMapEvent)
		}).
		Return(nil).Once()

	resp, err := uc.EnqueueRender(ctx, inlineRequest())
	require.NoError(t, err)
	assert.Equal(t, published.JobID, resp.JobID)

	var req dto.RenderMapRequest
	require.NoError(t, json.Unmarshal(published.Request, &req))
	assert.Len(t, req.Rows, 3)
	assert.Equal(t, "night", req.NightSentinel)
}

func TestRenderUseCase_Options(t *testing.T) {
	uc, _ := newRenderUseCase(t)
	off := false

	opts, err := uc.Options(&dto.RenderMapRequest{
		Column:       "h_max_can",
		NightOnly:    &off,
		AddOverlay:   &off,
		OverlayPaths: []string{"a.geojson"},
		Width:        640,
		Radius:       4,
		Basemaps:     []string{"Google Terrain"},
	})
	require.NoError(t, err)

	assert.Equal(t, "h_max_can", opts.Markers.MetricColumn)
	assert.False(t, opts.Markers.NightOnly)
	assert.True(t, opts.DisableOverlay)
	assert.Equal(t, 640, opts.Width)
	assert.Equal(t, 400, opts.Height)
	assert.Equal(t, 4.0, opts.Markers.Radius)
	assert.True(t, opts.Markers.NightSentinel.Equal(domain.Number(1)))

	opts, err = uc.Options(&dto.RenderMapRequest{NightSentinel: 1.0})
	require.NoError(t, err)
	assert.True(t, opts.Markers.NightOnly)
	assert.True(t, opts.Markers.NightSentinel.Equal(domain.Number(1)))
}

func TestTableFromRows(t *testing.T) {
	table, err := usecase.TableFromRows([]map[string]interface{}{
		{"h_can": 3.5, "lon": 2.0, "lat": 1.0, "night_flg": "1"},
		{"lat": 4.0, "lon": 5.0, "h_can": 6.0},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"lat", "lon", "h_can", "night_flg"}, table.Columns())
	assert.Equal(t, 2, table.Len())

	flags, err := table.Column("night_flg")
	require.NoError(t, err)
	assert.True(t, flags[0].Equal(domain.Number(1)))
	assert.True(t, flags[1].Equal(domain.Text("")))

	_, err = usecase.TableFromRows([]map[string]interface{}{{"lat": []int{1}}})
	assert.True(t, stderrors.Is(err, errors.ErrInvalidObservation))
}

func mustMapID(t *testing.T, req *dto.RenderMapRequest) string {
	t.Helper()
	id, err := usecase.MapID(req)
	require.NoError(t, err)
	return id
}

func TestMapID_Stable(t *testing.T) {
	a, b := inlineRequest(), inlineRequest()
	assert.Equal(t, mustMapID(t, a), mustMapID(t, b))

	b.Width = 800
	assert.NotEqual(t, mustMapID(t, a), mustMapID(t, b))
}

func TestMapID_RejectsUnencodableRequest(t *testing.T) {
	req := inlineRequest()
	req.Rows[0]["h_can"] = math.Inf(1)

	id, err := usecase.MapID(req)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidRequest))
	assert.Empty(t, id)

	uc, deps := newRenderUseCase(t)
	_, err = uc.RenderAndStore(context.Background(), req)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidRequest))
	deps.cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
