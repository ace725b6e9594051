// Command astrotune computes a natal chart, and optionally its harmonic
// resonance against a song, and prints the result as JSON.
//
// Usage:
//
//	astrotune <date> <time> <location> [song.json]
//
// date is YYYY-MM-DD, time is "2:30 pm" or 24-hour "14:30", location is
// a city name. song.json, when given, holds a pre-extracted harmonic
// series; the output then carries a resonance section.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"astrotune-backend/application/services"
	"astrotune-backend/domain/core/entities"
	"astrotune-backend/infrastructure/config"
	"astrotune-backend/infrastructure/di"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fail(err)
	}
}

func run(args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return fmt.Errorf("usage: astrotune <date> <time> <location> [song.json]")
	}
	date, localTime, location := args[0], args[1], args[2]

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	container, err := di.InitializeContainer(cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = container.Shutdown(shutdownCtx)
	}()

	chart, err := container.ChartService.ComputeChart(ctx, date, localTime, location)
	if err != nil {
		return err
	}

	doc := services.NewChartDocument(chart)

	if len(args) == 4 {
		series, err := loadSeries(args[3])
		if err != nil {
			return err
		}
		report, err := container.ResonanceService.Score(ctx, chart, series)
		if err != nil {
			return err
		}
		doc.Resonance = services.NewResonanceReportDocument(report)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// loadSeries reads a song harmonic series file
func loadSeries(path string) (entities.SongHarmonicSeries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.SongHarmonicSeries{}, fmt.Errorf("failed to read song file: %w", err)
	}
	var series entities.SongHarmonicSeries
	if err := json.Unmarshal(data, &series); err != nil {
		return entities.SongHarmonicSeries{}, fmt.Errorf("failed to parse song file: %w", err)
	}
	return series, nil
}

// fail prints the error envelope and exits non-zero
func fail(err error) {
	payload, marshalErr := json.Marshal(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		payload = []byte(`{"error": "` + strings.ReplaceAll(err.Error(), `"`, `'`) + `"}`)
	}
	fmt.Fprintln(os.Stderr, string(payload))
	os.Exit(1)
}
