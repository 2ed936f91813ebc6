// Package api serves the interactive dashboard and its JSON API.
// GET endpoints are public read-only computations; the simulate endpoint is
// rate limited per IP since it runs a full multi-day simulation.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/talgya/agrisim/internal/crop"
	"github.com/talgya/agrisim/internal/engine"
	"github.com/talgya/agrisim/internal/farm"
	"github.com/talgya/agrisim/internal/params"
	"github.com/talgya/agrisim/internal/weather"
)

// Server serves the yield dashboard over HTTP.
type Server struct {
	Engine  *engine.Engine
	Weather *weather.Client // optional live conditions; nil = disabled
	Port    int
	Seed    int64 // base seed for simulate requests that don't pass one

	started time.Time

	mu         sync.Mutex
	lastReport *farm.Report
	runs       int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	s.started = time.Now()
	simulateLimiter := NewRateLimiter(60, time.Hour)

	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/params", s.handleParams)
	mux.HandleFunc("/api/v1/crops", s.handleCrops)
	mux.HandleFunc("/api/v1/yield", s.handleYield)
	mux.HandleFunc("/api/v1/sweep", s.handleSweep)
	mux.HandleFunc("/api/v1/simulate", RateLimitMiddleware(simulateLimiter, s.handleSimulate))
	mux.Handle("/metrics", MetricsHandler())

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "live_weather", s.Weather != nil)

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// CORS_ORIGINS to a comma-separated list; localhost dev servers are always
// allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	observeRequest("status")

	s.mu.Lock()
	runs := s.runs
	var lastRun string
	if s.lastReport != nil {
		lastRun = s.lastReport.RunID
	}
	s.mu.Unlock()

	status := map[string]any{
		"name":           "agrisim",
		"uptime_seconds": int(time.Since(s.started).Seconds()),
		"crops":          crop.Names(),
		"sweep_vars":     engine.SweepVars(),
		"model":          s.Engine.Model,
		"runs":           runs,
		"last_run_id":    lastRun,
	}

	if s.Weather != nil {
		if current, err := s.Weather.Fetch(); err == nil {
			status["live_weather"] = current
		}
	}

	writeJSON(w, status)
}

// handleParams returns slider metadata so the UI builds controls from the
// same declared domains the engine clamps against.
func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	observeRequest("params")

	type slider struct {
		Key     string  `json:"key"`
		Label   string  `json:"label"`
		Min     float64 `json:"min"`
		Max     float64 `json:"max"`
		Default float64 `json:"default"`
		Step    float64 `json:"step"`
	}

	defaults := params.Default()
	// Live weather, when configured, nudges today's defaults.
	if s.Weather != nil {
		if current, err := s.Weather.Fetch(); err == nil {
			defaults.Temperature = params.TemperatureRange.Clamp(current.TempC)
			defaults.Rainfall = params.RainfallRange.Clamp(current.RainMM)
		}
	}

	writeJSON(w, []slider{
		{Key: "temperature", Label: "Temperature (°C)", Min: params.TemperatureRange.Min, Max: params.TemperatureRange.Max, Default: defaults.Temperature, Step: 0.5},
		{Key: "rainfall", Label: "Rainfall (mm/day)", Min: params.RainfallRange.Min, Max: params.RainfallRange.Max, Default: defaults.Rainfall, Step: 0.1},
		{Key: "soil_n", Label: "Soil Nitrogen (kg/ha)", Min: params.SoilNRange.Min, Max: params.SoilNRange.Max, Default: defaults.SoilN, Step: 1},
		{Key: "pest_pressure", Label: "Pest Pressure", Min: params.PestRange.Min, Max: params.PestRange.Max, Default: defaults.PestPressure, Step: 0.01},
		{Key: "area_ha", Label: "Farm Size (ha)", Min: params.AreaRange.Min, Max: params.AreaRange.Max, Default: defaults.AreaHa, Step: 1},
	})
}

func (s *Server) handleCrops(w http.ResponseWriter, r *http.Request) {
	observeRequest("crops")
	writeJSON(w, crop.Profiles())
}

// handleYield computes a single yield estimate from query parameters.
// Out-of-domain inputs are clamped unless strict=true is passed.
func (s *Server) handleYield(w http.ResponseWriter, r *http.Request) {
	observeRequest("yield")

	p, err := paramsFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	profile, ok := crop.Lookup(queryString(r, "crop", "wheat"))
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown crop %q", r.URL.Query().Get("crop")))
		return
	}

	strict := r.URL.Query().Get("strict") == "true"
	res, err := s.Engine.Yield(p, profile, !strict)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	observeYield()
	writeJSON(w, map[string]any{
		"crop":       profile.Name,
		"parameters": p.Clamp(),
		"result":     res,
	})
}

// handleSweep computes a yield series across one swept variable.
func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	observeRequest("sweep")

	p, err := paramsFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	profile, ok := crop.Lookup(queryString(r, "crop", "wheat"))
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown crop %q", r.URL.Query().Get("crop")))
		return
	}

	v := engine.SweepVar(queryString(r, "var", string(engine.SweepRainfall)))
	dom, err := sweepDomain(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	from := queryFloat(r, "from", dom.Min)
	to := queryFloat(r, "to", dom.Max)
	steps := int(queryFloat(r, "steps", 50))
	if steps > 1000 {
		steps = 1000
	}

	series, err := s.Engine.Sweep(p, profile, v, from, to, steps)
	if err != nil {
		if errors.Is(err, engine.ErrDegenerateSweep) {
			writeJSONStatus(w, http.StatusBadRequest, map[string]any{
				"error":  err.Error(),
				"series": []engine.Point{},
			})
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, map[string]any{
		"crop":   profile.Name,
		"var":    v,
		"series": series,
	})
}

// handleSimulate runs a full multi-day farm simulation.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	observeRequest("simulate")

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := farm.Config{Crop: "wheat", AreaHa: 10, Days: 120}
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if cfg.Seed == 0 {
		cfg.Seed = s.Seed
	}
	cfg.Model = s.Engine.Model

	f, err := farm.New(cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	report := f.Run()
	observeSimulation(cfg.Crop)

	s.mu.Lock()
	s.lastReport = report
	s.runs++
	s.mu.Unlock()

	writeJSON(w, map[string]any{
		"report": report,
		"series": f.Log(),
	})
}

// --------------------- helpers ---------------------

func paramsFromQuery(r *http.Request) (params.Parameters, error) {
	p := params.Default()
	fields := []struct {
		key string
		dst *float64
	}{
		{"temperature", &p.Temperature},
		{"rainfall", &p.Rainfall},
		{"soil_n", &p.SoilN},
		{"pest_pressure", &p.PestPressure},
		{"area_ha", &p.AreaHa},
	}
	for _, f := range fields {
		raw := r.URL.Query().Get(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, fmt.Errorf("parse %s=%q: %w", f.key, raw, err)
		}
		*f.dst = v
	}
	return p, nil
}

func sweepDomain(v engine.SweepVar) (params.Range, error) {
	switch v {
	case engine.SweepTemperature:
		return params.TemperatureRange, nil
	case engine.SweepRainfall:
		return params.RainfallRange, nil
	case engine.SweepSoilN:
		return params.SoilNRange, nil
	case engine.SweepPest:
		return params.PestRange, nil
	case engine.SweepArea:
		return params.AreaRange, nil
	default:
		return params.Range{}, fmt.Errorf("unknown sweep variable %q", v)
	}
}

func queryString(r *http.Request, key, def string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return def
}

func queryFloat(r *http.Request, key string, def float64) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, data any) {
	writeJSONStatus(w, http.StatusOK, data)
}

func writeJSONStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSONStatus(w, status, map[string]string{"error": err.Error()})
}
