// Command render builds an ATL08 vegetation height map and writes it as a
// standalone HTML page.
//
//	render --csv granule.csv --overlay footprints.geojson --out map.html
//	render --granule ATL08_20190801 --night-only=false --basemap "Google Terrain"
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/atl08-heightmap/internal/config"
	"github.com/atl08-heightmap/internal/domain"
	"github.com/atl08-heightmap/internal/domain/repository"
	"github.com/atl08-heightmap/internal/pkg/logger"
	"github.com/atl08-heightmap/internal/render"
	"github.com/atl08-heightmap/internal/repository/csvfile"
	"github.com/atl08-heightmap/internal/repository/overlay"
	"github.com/atl08-heightmap/internal/repository/postgres"
	"github.com/atl08-heightmap/internal/usecase"
)

type flags struct {
	csv        string
	granule    string
	overlays   []string
	addOverlay bool
	basemaps   []string
	out        string
	title      string
	envFile    string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "render:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var f flags
	fs := pflag.NewFlagSet("render", pflag.ContinueOnError)
	fs.StringVar(&f.csv, "csv", "", "observation CSV file")
	fs.StringVar(&f.granule, "granule", "", "granule to load from the configured observation store")
	fs.String("column", domain.DefaultMetricColumn, "metric column to colour by")
	fs.Bool("night-only", true, "draw only night observations")
	fs.String("night-flag", domain.DefaultNightFlagColumn, "night indicator column")
	fs.String("night-sentinel", "1", "indicator value marking a night observation")
	fs.StringArrayVar(&f.overlays, "overlay", nil, "GeoJSON footprint file (repeatable)")
	fs.BoolVar(&f.addOverlay, "add-overlay", true, "draw the footprint overlay when --overlay is given")
	fs.Int("width", usecase.DefaultWidth, "figure width in px")
	fs.Int("height", usecase.DefaultHeight, "figure height in px")
	fs.Float64("radius", usecase.DefaultMarkerRadius, "marker radius in px")
	fs.StringArrayVar(&f.basemaps, "basemap", nil, "extra basemap from the registry (repeatable)")
	fs.StringVarP(&f.out, "out", "o", "map.html", "output file, - for stdout")
	fs.StringVar(&f.title, "title", render.DefaultTitle, "page title")
	fs.StringVar(&f.envFile, "env-file", ".env", "settings file")
	fs.String("log-level", "info", "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if (f.csv == "") == (f.granule == "") {
		return fmt.Errorf("exactly one of --csv or --granule is required")
	}

	// Флаги имеют приоритет над .env и окружением
	v := viper.New()
	for key, flag := range map[string]string{
		"MAP_METRIC_COLUMN":     "column",
		"MAP_NIGHT_ONLY":        "night-only",
		"MAP_NIGHT_FLAG_COLUMN": "night-flag",
		"MAP_NIGHT_SENTINEL":    "night-sentinel",
		"MAP_WIDTH":             "width",
		"MAP_HEIGHT":            "height",
		"MAP_RADIUS":            "radius",
		"LOG_LEVEL":             "log-level",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return err
		}
	}

	cfg, err := config.LoadFrom(v, f.envFile)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, logger.WithOutput("stderr"), logger.WithName("render"))
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, err := usecase.ComposeOptionsFromConfig(&cfg.Map)
	if err != nil {
		return err
	}
	opts.OverlayPaths = f.overlays
	opts.DisableOverlay = !f.addOverlay
	opts.ExtraBasemaps = f.basemaps

	table, err := loadTable(ctx, cfg, &f, opts.Markers, log)
	if err != nil {
		return err
	}

	composer := usecase.NewMapComposer(overlay.NewGeoJSONRepository("", log), usecase.NewMarkerRenderer(log), log)
	m, err := composer.Compose(ctx, table, opts)
	if err != nil {
		return err
	}

	renderer, err := render.NewHTMLRenderer(f.title)
	if err != nil {
		return err
	}

	if err := writeMap(f.out, renderer, m); err != nil {
		return err
	}

	log.Info("Map written",
		zap.String("out", f.out),
		zap.Int("markers", len(m.Markers())),
		zap.Float64("center_lat", m.Center.Lat),
		zap.Float64("center_lon", m.Center.Lon))
	return nil
}

func loadTable(ctx context.Context, cfg *config.Config, f *flags, opts usecase.MarkerOptions, log *zap.Logger) (*domain.Table, error) {
	if f.csv != "" {
		file, err := os.Open(f.csv)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return csvfile.ReadTable(ctx, file, nil)
	}

	var repo repository.ObservationRepository
	switch cfg.Data.Source {
	case "csv":
		repo = csvfile.NewObservationRepository(cfg.Data.CSVDir, log)
	default:
		db, err := postgres.New(cfg, log)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		repo, err = postgres.NewObservationRepository(db, cfg.Data.ObservationsTable)
		if err != nil {
			return nil, err
		}
	}

	columns := []string{opts.MetricColumn}
	if opts.NightOnly {
		columns = append(columns, opts.NightFlagColumn)
	}
	return repo.Load(ctx, repository.ObservationQuery{Granule: f.granule, Columns: columns})
}

// writeMap renders m to out ("-" is stdout). A file is replaced only after
// the whole page has been rendered and flushed.
func writeMap(out string, renderer *render.HTMLRenderer, m *domain.Map) error {
	if out == "-" {
		return renderer.Render(os.Stdout, m)
	}

	html, err := renderer.RenderBytes(m)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(out), "."+filepath.Base(out)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	if _, err := tmp.Write(html); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := os.Rename(tmp.Name(), out); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}
