/*
handlers.go - HTTP API handlers for the sales simulator

PURPOSE:
  Exposes the projection engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to factory (input
  parsing) and engine (computation).

ENDPOINTS:
  Simulations:
    POST   /api/simulations              Run a simulation (optionally save it)
    GET    /api/simulations              List saved runs (?limit=N)
    GET    /api/simulations/{id}         Get a saved run with its input
    POST   /api/simulations/{id}/replay  Recompute a saved run's input
    DELETE /api/simulations/{id}         Delete a saved run

  Reference data:
    GET    /api/units                    Sample unit list
    GET    /api/config/default           Default commercial configuration

  Scenarios:
    GET    /api/scenarios                List preset configurations
    POST   /api/scenarios/{id}/run       Simulate the sample units with a preset

  GET    /api/health

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store:   Run history (engine.RunStore)
  - Cache:   Rendered responses keyed on normalized input
  - Factory: JSON to engine conversion with defaults

CACHING:
  A simulation is a pure function of (units, config). Unsaved requests are
  served from the cache when possible. Saved requests always recompute so
  the stored run carries full-precision decimals, and refresh the cache.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body, invalid units, degenerate configuration
  - 404: Run or scenario not found
  - 500: Storage failures

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Preset configurations
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warp/sales-simulator/cache"
	"github.com/warp/sales-simulator/engine"
	"github.com/warp/sales-simulator/factory"
)

const (
	maxBodyBytes     = 1 << 20
	defaultListLimit = 50
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   engine.RunStore
	Cache   cache.Cache
	Factory *factory.SimulationFactory

	now   func() time.Time
	newID func() string
}

// NewHandler creates a new handler. A nil cache means an in-memory one.
func NewHandler(store engine.RunStore, c cache.Cache) *Handler {
	if c == nil {
		c = cache.NewMemory()
	}
	return &Handler{
		Store:   store,
		Cache:   c,
		Factory: factory.NewSimulationFactory(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// =============================================================================
// SIMULATION HANDLERS
// =============================================================================

// Simulate runs a simulation from the request body.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var req SimulateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sim, err := h.Factory.FromJSON(req.SimulationJSON)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid simulation input", err)
		return
	}

	resp, err := h.run(r.Context(), sim, string(body), req.Save)
	if err != nil {
		writeError(w, statusFor(err), "Simulation failed", err)
		return
	}

	status := http.StatusOK
	if resp.RunID != "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

// ListSimulations returns saved runs, newest first.
func (h *Handler) ListSimulations(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	runs, err := h.Store.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list simulations", err)
		return
	}

	dtos := make([]RunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = toRunDTO(run, false)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSimulation returns a saved run with its input.
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	run, err := h.Store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), "Failed to get simulation", err)
		return
	}
	writeJSON(w, http.StatusOK, toRunDTO(*run, true))
}

// ReplaySimulation recomputes a saved run from its stored input.
func (h *Handler) ReplaySimulation(w http.ResponseWriter, r *http.Request) {
	run, err := h.Store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), "Failed to get simulation", err)
		return
	}

	sim, err := h.Factory.ParseSimulation(run.InputJSON)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Stored input is no longer valid", err)
		return
	}

	resp, err := h.run(r.Context(), sim, run.InputJSON, false)
	if err != nil {
		writeError(w, statusFor(err), "Simulation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteSimulation removes a saved run.
func (h *Handler) DeleteSimulation(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteRun(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFor(err), "Failed to delete simulation", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// REFERENCE DATA HANDLERS
// =============================================================================

// ListUnits returns the sample unit list.
func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units := h.Factory.Units()
	dtos := make([]factory.UnitJSON, len(units))
	for i, u := range units {
		dtos[i] = factory.UnitToJSON(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetDefaultConfig returns the configuration used for omitted fields.
func (h *Handler) GetDefaultConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, factory.ToJSON(h.Factory.Defaults))
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// SIMULATION PIPELINE
// =============================================================================

// cacheInput is what a cached response depends on. Name is not part of it.
type cacheInput struct {
	Units  []engine.Unit `json:"units"`
	Config engine.Config `json:"config"`
}

func (h *Handler) run(ctx context.Context, sim *factory.Simulation, input string, save bool) (*SimulationResponse, error) {
	key, err := cache.Key(cacheInput{Units: sim.Units, Config: sim.Config})
	if err != nil {
		log.Printf("[Cache] Key error: %v", err)
		key = ""
	}

	if key != "" && !save {
		if body, ok := h.Cache.Get(ctx, key); ok {
			var resp SimulationResponse
			if err := json.Unmarshal(body, &resp); err == nil {
				resp.Name = sim.Name
				resp.Cached = true
				return &resp, nil
			}
		}
	}

	res, err := engine.Simulate(sim.Units, sim.Config)
	if err != nil {
		return nil, err
	}
	resp := toSimulationResponse(sim, res)

	if key != "" {
		if body, err := json.Marshal(resp); err == nil {
			if err := h.Cache.Set(ctx, key, body); err != nil {
				log.Printf("[Cache] Set %s failed: %v", key, err)
			}
		}
	}

	if save {
		run := engine.NewRun(h.newID(), sim.Name, len(sim.Units), res, input, h.now())
		if err := h.Store.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to save run: %w", err)
		}
		resp.RunID = run.ID
	}

	return resp, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func statusFor(err error) int {
	switch {
	case factory.IsInputError(err), engine.IsClientError(err):
		return http.StatusBadRequest
	case engine.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
