// Command agrisim launches the interactive crop-yield simulator dashboard.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/talgya/agrisim/internal/api"
	"github.com/talgya/agrisim/internal/engine"
	"github.com/talgya/agrisim/internal/weather"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	port := envInt("PORT", 8080)
	seed := int64(envInt("SEED", 42))

	// Growth weights are configurable constants; a bad sum would silently
	// skew every yield, so it is fatal here rather than clamped.
	model, err := parseModel(os.Getenv("GROWTH_WEIGHTS"))
	if err != nil {
		slog.Error("invalid growth weights", "error", err)
		os.Exit(1)
	}
	slog.Info("growth model",
		"w_moisture", model.WMoisture,
		"w_nutrient", model.WNutrient,
		"w_pest", model.WPest,
	)

	// Optional live weather for seeding today's slider defaults.
	var wclient *weather.Client
	if key := os.Getenv("OWM_API_KEY"); key != "" {
		wclient = weather.NewClient(key, os.Getenv("OWM_LOCATION"))
		slog.Info("live weather enabled", "location", os.Getenv("OWM_LOCATION"))
	} else {
		slog.Info("OWM_API_KEY not set, slider defaults are static")
	}

	server := &api.Server{
		Engine:  engine.New(model),
		Weather: wclient,
		Port:    port,
		Seed:    seed,
	}
	server.Start()

	fmt.Printf("\nSmart Agriculture Simulator\n")
	fmt.Printf("Dashboard: http://localhost:%d/\n", port)
	fmt.Printf("API:       http://localhost:%d/api/v1/status\n", port)
	fmt.Println("Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	// Give in-flight responses a moment to flush.
	time.Sleep(100 * time.Millisecond)
}

// parseModel builds the growth model from "wm,wn,wp" (empty = defaults).
func parseModel(raw string) (engine.WeightedModel, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return engine.DefaultModel(), nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return engine.WeightedModel{}, fmt.Errorf("GROWTH_WEIGHTS=%q: want three comma-separated weights", raw)
	}
	var w [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return engine.WeightedModel{}, fmt.Errorf("GROWTH_WEIGHTS=%q: %w", raw, err)
		}
		w[i] = v
	}
	return engine.NewWeightedModel(w[0], w[1], w[2])
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid env value, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}
