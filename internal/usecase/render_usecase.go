package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/domain"
	"github.com/atl08-heightmap/internal/domain/repository"
	"github.com/atl08-heightmap/internal/pkg/errors"
	"github.com/atl08-heightmap/internal/render"
	"github.com/atl08-heightmap/internal/usecase/dto"
)

const mapMetaKeyPrefix = "map:meta:"

// RenderResult is a composed map and its HTML export.
type RenderResult struct {
	MapID  string
	Map    *domain.Map
	Bounds domain.BoundingBox
	HTML   []byte
}

// MarkerCount is the number of observations drawn.
func (r *RenderResult) MarkerCount() int {
	return len(r.Map.Markers())
}

// RenderUseCase turns render requests into cached HTML maps.
type RenderUseCase struct {
	obsRepo     repository.ObservationRepository
	cacheRepo   repository.CacheRepository
	streamRepo  repository.StreamRepository
	composer    *MapComposer
	renderer    *render.HTMLRenderer
	defaults    ComposeOptions
	logger      *zap.Logger
	mapCacheTTL time.Duration
}

// NewRenderUseCase wires the render pipeline. obsRepo, cacheRepo and
// streamRepo may be nil; the operations needing them then fail with
// INVALID_REQUEST or skip caching.
func NewRenderUseCase(
	obsRepo repository.ObservationRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	composer *MapComposer,
	renderer *render.HTMLRenderer,
	defaults ComposeOptions,
	logger *zap.Logger,
	mapCacheTTL time.Duration,
) *RenderUseCase {
	if mapCacheTTL == 0 {
		mapCacheTTL = time.Hour
	}
	return &RenderUseCase{
		obsRepo:     obsRepo,
		cacheRepo:   cacheRepo,
		streamRepo:  streamRepo,
		composer:    composer,
		renderer:    renderer,
		defaults:    defaults,
		logger:      logger,
		mapCacheTTL: mapCacheTTL,
	}
}

// Render composes and exports the map described by req without caching it.
func (uc *RenderUseCase) Render(ctx context.Context, req *dto.RenderMapRequest) (*RenderResult, error) {
	mapID, err := MapID(req)
	if err != nil {
		return nil, err
	}

	opts, err := uc.Options(req)
	if err != nil {
		return nil, err
	}

	table, err := uc.loadTable(ctx, req, opts.Markers)
	if err != nil {
		return nil, err
	}

	m, err := uc.composer.Compose(ctx, table, opts)
	if err != nil {
		return nil, err
	}

	bounds, err := table.Bounds()
	if err != nil {
		return nil, err
	}

	html, err := uc.renderer.RenderBytes(m)
	if err != nil {
		return nil, errors.ErrInternalServer.Wrap(err)
	}

	return &RenderResult{MapID: mapID, Map: m, Bounds: bounds, HTML: html}, nil
}

// RenderAndStore renders req and keeps the HTML in the cache under its map
// ID. A map already in the cache is not rendered again. The HTML is written
// before the metadata, so a metadata hit implies the HTML was stored.
func (uc *RenderUseCase) RenderAndStore(ctx context.Context, req *dto.RenderMapRequest) (*dto.RenderMapResponse, error) {
	mapID, err := MapID(req)
	if err != nil {
		return nil, err
	}

	// Проверяем кеш
	if uc.cacheRepo != nil {
		if cached, err := uc.cacheRepo.Get(ctx, mapMetaKeyPrefix+mapID); err == nil && len(cached) > 0 {
			var resp dto.RenderMapResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				uc.logger.Debug("Map cache hit", zap.String("map_id", mapID))
				return &resp, nil
			}
		}
	}

	result, err := uc.Render(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &dto.RenderMapResponse{
		MapID:       mapID,
		MarkerCount: result.MarkerCount(),
		Center:      result.Map.Center,
		Bounds:      result.Bounds,
		URL:         MapURL(mapID),
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetMap(ctx, mapID, result.HTML, uc.mapCacheTTL); err != nil {
			uc.logger.Error("Failed to cache map", zap.String("map_id", mapID), zap.Error(err))
			return nil, errors.ErrCacheError.Wrap(err)
		}
		if meta, err := json.Marshal(resp); err == nil {
			if err := uc.cacheRepo.Set(ctx, mapMetaKeyPrefix+mapID, meta, uc.mapCacheTTL); err != nil {
				uc.logger.Warn("Failed to cache map metadata", zap.String("map_id", mapID), zap.Error(err))
			}
		}
	}

	return resp, nil
}

// GetMapHTML returns a stored map.
func (uc *RenderUseCase) GetMapHTML(ctx context.Context, mapID string) ([]byte, error) {
	if uc.cacheRepo == nil {
		return nil, errors.ErrMapNotFound
	}
	html, err := uc.cacheRepo.GetMap(ctx, mapID)
	if err != nil {
		uc.logger.Error("Failed to read map from cache", zap.String("map_id", mapID), zap.Error(err))
		return nil, errors.ErrCacheError.Wrap(err)
	}
	if len(html) == 0 {
		return nil, errors.ErrMapNotFound.WithDetails(map[string]interface{}{"map_id": mapID})
	}
	return html, nil
}

// EnqueueRender publishes req to the render stream for a worker to pick up.
func (uc *RenderUseCase) EnqueueRender(ctx context.Context, req *dto.RenderMapRequest) (*dto.EnqueueRenderResponse, error) {
	if uc.streamRepo == nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": "render queue is not configured"})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.ErrInvalidRequest.Wrap(err)
	}

	event := domain.RenderMapEvent{JobID: uuid.New(), Request: body}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamMapRender, event); err != nil {
		return nil, errors.ErrInternalServer.Wrap(err)
	}

	uc.logger.Info("Render job enqueued", zap.String("job_id", event.JobID.String()))
	return &dto.EnqueueRenderResponse{JobID: event.JobID, Stream: domain.StreamMapRender}, nil
}

// Granules lists the granules of the observation store.
func (uc *RenderUseCase) Granules(ctx context.Context) ([]string, error) {
	if uc.obsRepo == nil {
		return []string{}, nil
	}
	return uc.obsRepo.Granules(ctx)
}

// Options merges req over the configured defaults.
func (uc *RenderUseCase) Options(req *dto.RenderMapRequest) (ComposeOptions, error) {
	opts := uc.defaults
	opts.Markers = opts.Markers.withDefaults()

	if req.Column != "" {
		opts.Markers.MetricColumn = req.Column
	}
	if req.NightOnly != nil {
		opts.Markers.NightOnly = *req.NightOnly
	}
	if req.NightFlagColumn != "" {
		opts.Markers.NightFlagColumn = req.NightFlagColumn
	}
	if req.NightSentinel != nil {
		v, err := sentinelValue(req.NightSentinel)
		if err != nil {
			return ComposeOptions{}, err
		}
		opts.Markers.NightSentinel = &v
	}
	if req.Radius > 0 {
		opts.Markers.Radius = req.Radius
	}
	if req.Width > 0 {
		opts.Width = req.Width
	}
	if req.Height > 0 {
		opts.Height = req.Height
	}
	if len(req.OverlayPaths) > 0 {
		opts.OverlayPaths = req.OverlayPaths
	}
	if req.AddOverlay != nil {
		opts.DisableOverlay = !*req.AddOverlay
	}
	if len(req.Basemaps) > 0 {
		opts.ExtraBasemaps = req.Basemaps
	}
	return opts, nil
}

func (uc *RenderUseCase) loadTable(ctx context.Context, req *dto.RenderMapRequest, opts MarkerOptions) (*domain.Table, error) {
	if len(req.Rows) > 0 {
		return TableFromRows(req.Rows)
	}

	if uc.obsRepo == nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": "no observation store configured, send rows"})
	}

	columns := []string{opts.MetricColumn}
	if opts.NightOnly {
		columns = append(columns, opts.NightFlagColumn)
	}
	table, err := uc.obsRepo.Load(ctx, repository.ObservationQuery{Granule: req.Granule, Columns: columns})
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, err
		}
		uc.logger.Error("Failed to load observations", zap.String("granule", req.Granule), zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}
	return table, nil
}

// TableFromRows builds a table from JSON objects. lat and lon come first,
// the remaining columns follow in name order. A key missing from a row
// yields an empty text cell.
func TableFromRows(rows []map[string]interface{}) (*domain.Table, error) {
	seen := map[string]bool{domain.ColumnLat: true, domain.ColumnLon: true}
	var rest []string
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				rest = append(rest, k)
			}
		}
	}
	sort.Strings(rest)
	columns := append([]string{domain.ColumnLat, domain.ColumnLon}, rest...)

	table := domain.NewTable(columns...)
	for i, row := range rows {
		values := make([]domain.Value, len(columns))
		for j, c := range columns {
			v, err := cellValue(row[c])
			if err != nil {
				return nil, errors.InvalidObservation(i, c).Wrap(err)
			}
			values[j] = v
		}
		if err := table.Append(values...); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func cellValue(raw interface{}) (domain.Value, error) {
	switch v := raw.(type) {
	case nil:
		return domain.Text(""), nil
	case float64:
		return domain.Number(v), nil
	case int:
		return domain.Number(float64(v)), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return domain.Value{}, err
		}
		return domain.Number(f), nil
	case bool:
		if v {
			return domain.Number(1), nil
		}
		return domain.Number(0), nil
	case string:
		return domain.ParseValue(v), nil
	default:
		return domain.Value{}, fmt.Errorf("unsupported cell type %T", raw)
	}
}

func sentinelValue(raw interface{}) (domain.Value, error) {
	v, err := cellValue(raw)
	if err != nil {
		return domain.Value{}, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"night_sentinel": fmt.Sprint(raw)})
	}
	return v, nil
}

// MapID is the cache identifier of a request: the md5 of its JSON form.
// A request that cannot be encoded (for example a non-finite number in
// its rows) is rejected rather than hashed.
func MapID(req *dto.RenderMapRequest) (string, error) {
	// json.Marshal сортирует ключи map, поэтому хеш стабилен
	b, err := json.Marshal(req)
	if err != nil {
		return "", errors.ErrInvalidRequest.Wrap(err)
	}
	return fmt.Sprintf("%x", md5.Sum(b)), nil
}

// MapURL is where a stored map is served.
func MapURL(mapID string) string {
	return "/api/v1/maps/" + mapID
}
