package usecase

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/colormap"
	"github.com/atl08-heightmap/internal/domain"
	"github.com/atl08-heightmap/internal/pkg/errors"
)

// Marker style shared by every observation.
const (
	DefaultMarkerRadius = 10.0
	markerWeight        = 0.75
	markerOpacity       = 1.0
	// заливка как у Leaflet по умолчанию, полная непрозрачность только у обводки
	markerFillOpacity = 0.2
)

// MarkerOptions controls which observations are drawn and how.
type MarkerOptions struct {
	MetricColumn    string
	NightOnly       bool
	NightFlagColumn string
	// NightSentinel is the indicator value marking a night observation.
	// nil means numeric 1.
	NightSentinel *domain.Value
	Radius        float64
}

// DefaultMarkerOptions returns the ATL08 defaults: h_can, night only.
func DefaultMarkerOptions() MarkerOptions {
	return MarkerOptions{
		MetricColumn:    domain.DefaultMetricColumn,
		NightOnly:       true,
		NightFlagColumn: domain.DefaultNightFlagColumn,
		Radius:          DefaultMarkerRadius,
	}
}

func (o MarkerOptions) withDefaults() MarkerOptions {
	if o.MetricColumn == "" {
		o.MetricColumn = domain.DefaultMetricColumn
	}
	if o.NightFlagColumn == "" {
		o.NightFlagColumn = domain.DefaultNightFlagColumn
	}
	if o.NightSentinel == nil {
		one := domain.Number(1)
		o.NightSentinel = &one
	}
	if o.Radius <= 0 {
		o.Radius = DefaultMarkerRadius
	}
	return o
}

// Label is "night" or "day/night" depending on the filter.
func (o MarkerOptions) Label() string {
	if o.NightOnly {
		return "night"
	}
	return "day/night"
}

// MarkerRenderer draws one circle marker per observation, coloured by the
// height ramp.
type MarkerRenderer struct {
	logger *zap.Logger
}

func NewMarkerRenderer(logger *zap.Logger) *MarkerRenderer {
	return &MarkerRenderer{logger: logger}
}

// AddObservations adds the (optionally night filtered) observations of table
// to m, followed by the colour legend. m is returned for chaining.
func (r *MarkerRenderer) AddObservations(table *domain.Table, opts MarkerOptions, m *domain.Map) (*domain.Map, error) {
	opts = opts.withDefaults()

	if err := table.Require(domain.ColumnLat, domain.ColumnLon, opts.MetricColumn); err != nil {
		return nil, err
	}

	rows := table
	if opts.NightOnly {
		filtered, err := table.Where(opts.NightFlagColumn, *opts.NightSentinel)
		if err != nil {
			return nil, err
		}
		rows = filtered
	}

	lats, err := rows.Floats(domain.ColumnLat)
	if err != nil {
		return nil, err
	}
	lons, err := rows.Floats(domain.ColumnLon)
	if err != nil {
		return nil, err
	}
	values, err := rows.Floats(opts.MetricColumn)
	if err != nil {
		return nil, err
	}

	label := opts.Label()
	r.logger.Info(fmt.Sprintf("Mapping %d %s ATL08 observations of %s", rows.Len(), label, opts.MetricColumn),
		zap.Int("count", rows.Len()),
		zap.String("label", label),
		zap.String("column", opts.MetricColumn),
	)

	ramp := colormap.Height(opts.MetricColumn)
	name := fmt.Sprintf("ATL08 %s obs", label)

	markers := make([]domain.CircleMarker, 0, len(values))
	for i, v := range values {
		if !domain.ValidCoordinate(lats[i], lons[i]) {
			return nil, errors.InvalidObservation(i, domain.ColumnLat)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.InvalidObservation(i, opts.MetricColumn)
		}

		c := ramp.Hex(v)
		markers = append(markers, domain.CircleMarker{
			Location:    domain.Point{Lat: lats[i], Lon: lons[i]},
			Radius:      opts.Radius,
			Weight:      markerWeight,
			Color:       c,
			FillColor:   c,
			Fill:        true,
			Opacity:     markerOpacity,
			FillOpacity: markerFillOpacity,
			Tooltip:     fmt.Sprintf("%.2f m", v),
			Name:        name,
			Value:       v,
		})
	}

	// Ошибки проверены заранее, карта меняется только целиком
	for _, mk := range markers {
		m.Add(mk)
	}
	m.Add(Legend(ramp))

	return m, nil
}

// Legend turns a ramp into a legend layer.
func Legend(ramp *colormap.Ramp) domain.ColorScale {
	stops := ramp.Stops()
	scale := domain.ColorScale{
		Caption: ramp.Caption,
		Min:     ramp.Min(),
		Max:     ramp.Max(),
		Stops:   make([]domain.ColorStop, len(stops)),
	}
	for i, s := range stops {
		scale.Stops[i] = domain.ColorStop{Value: s.Value, Color: colormap.Hex(s.Color)}
	}
	return scale
}
