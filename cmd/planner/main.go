// Command planner reads a multi-leg bus plan, resolves each complete leg
// through the route API and writes the drawn map as GeoJSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"

	"busplanner.dev/internal/appconf"
	"busplanner.dev/internal/busline"
	"busplanner.dev/internal/directions"
	"busplanner.dev/internal/logging"
	"busplanner.dev/internal/models"
	"busplanner.dev/internal/planner"
	"busplanner.dev/internal/render"
	"busplanner.dev/internal/restapi"
)

func main() {
	var (
		configPath string
		apiBase    string
		planPath   string
		outPath    string
		timeout    time.Duration
		verbose    bool
	)

	flag.StringVar(&configPath, "config", "", "Path to config.yml")
	flag.StringVar(&apiBase, "api", "http://localhost:8888", "Base URL of the route API")
	flag.StringVar(&planPath, "plan", "plan.yml", "Plan file listing segments")
	flag.StringVar(&outPath, "out", "route.geojson", "Where to write the drawn map")
	flag.DurationVar(&timeout, "timeout", 15*time.Second, "Per-request timeout")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewTextLogger(os.Stderr, level)

	cfg, err := appconf.Load(configPath)
	if err != nil {
		logging.LogError(logger, "failed to load config", err)
		os.Exit(1)
	}

	pf, err := readPlanFile(planPath)
	if err != nil {
		logging.LogError(logger, "failed to read plan", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	base := strings.TrimRight(apiBase, "/")
	lookup := busline.NewRemoteLookup(base, timeout, logger)
	source := directions.NewHTTPClient(base+restapi.RoutePath, timeout, logger)

	if err := run(ctx, os.Stdout, cfg, pf, lookup, source, outPath, logger); err != nil {
		logging.LogError(logger, "planner failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, cfg appconf.Config, pf planFile, lookup busline.Lookup, source directions.RouteSource, outPath string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	plan, problems := buildPlan(ctx, lookup, pf)
	for _, p := range problems {
		logger.Warn("segment left incomplete", "error", p)
	}

	center := models.Coordinate{X: cfg.Region.CenterLon, Y: cfg.Region.CenterLat}
	surface := render.NewGeoJSONSurface(center, cfg.Region.Level)
	renderer := render.NewRenderer(source, func() (render.Surface, error) {
		return surface, nil
	}, render.WithStaleDiscard(), render.WithLogger(logger))
	if _, err := renderer.Init(); err != nil {
		return err
	}
	defer func() {
		if err := renderer.Teardown(); err != nil {
			logging.LogError(logger, "teardown failed", err)
		}
	}()

	legs := plan.Completed()
	outcomes := renderer.Draw(ctx, legs).Wait()

	printSummary(out, plan, outcomes)

	if outPath == "" {
		return nil
	}
	if err := surface.WriteFile(outPath); err != nil {
		return fmt.Errorf("writing map: %w", err)
	}
	fmt.Fprintf(out, "%s\n", dimStyle.Render("→ "+outPath))
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
)

func printSummary(out io.Writer, plan *planner.Plan, outcomes []render.Outcome) {
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d/%d 구간 완성", plan.CompletedCount(), plan.Len())))

	failed := make(map[int]error, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			failed[o.Leg.Index] = o.Err
		}
	}
	for _, line := range render.Summary(plan.Completed()) {
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color(line.Color)).Render("●")
		text := line.Text
		if err, ok := failed[line.Index]; ok {
			text += " " + failStyle.Render(failureText(err))
		}
		fmt.Fprintf(out, "%s %s\n", marker, text)
	}
}

func failureText(err error) string {
	if f := directions.AsFailure(err); f.Message != "" {
		return f.Message
	}
	return err.Error()
}
