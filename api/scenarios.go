/*
scenarios.go - Preset commercial scenarios for demos and comparisons

PURPOSE:

	Exposes the realestate presets so a client can compare launch
	strategies on the sample tower without composing a configuration.

AVAILABLE SCENARIOS:

	standard:     30% entrada over 6 months, 10% at month 12, 60% at delivery
	pre-launch:   Deeper pre-launch discount, ato payment, longer entrada
	long-entrada: Half the price over 18 months, half at delivery

USAGE VIA API:

	GET  /api/scenarios
	POST /api/scenarios/pre-launch/run?save=true

ADDING NEW SCENARIOS:
 1. Add a preset to realestate/presets.go
 2. Add an entry to 'scenarios' below

SEE ALSO:
  - realestate/presets.go: Preset definitions
  - handlers.go: Simulation pipeline
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/warp/sales-simulator/engine"
	"github.com/warp/sales-simulator/factory"
	"github.com/warp/sales-simulator/realestate"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type scenario struct {
	ID          string
	Name        string
	Description string
	Config      func() engine.Config
}

var scenarios = []scenario{
	{
		ID:          "standard",
		Name:        "Standard",
		Description: "30% entrada over 6 months, 10% intermediate at month 12, 60% at delivery",
		Config:      realestate.StandardConfig,
	},
	{
		ID:          "pre-launch",
		Name:        "Pre-Launch Push",
		Description: "15% off for the first 4 buyers, 5% ato, entrada over 10 months",
		Config:      realestate.PreLaunchConfig,
	},
	{
		ID:          "long-entrada",
		Name:        "Long Entrada",
		Description: "50% spread over 18 months, 50% at delivery",
		Config:      realestate.LongEntradaConfig,
	},
}

func findScenario(id string) (scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return scenario{}, false
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns all preset scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = ScenarioDTO{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Config:      factory.ToJSON(s.Config()),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RunScenario simulates the sample units under a preset.
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, ok := findScenario(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Scenario not found", fmt.Errorf("unknown scenario: %s", id))
		return
	}

	save := false
	if v := r.URL.Query().Get("save"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid save flag", err)
			return
		}
		save = b
	}

	sim := &factory.Simulation{
		Name:   s.Name,
		Units:  h.Factory.Units(),
		Config: s.Config(),
	}
	cj := factory.ToJSON(sim.Config)
	input, err := json.Marshal(factory.SimulationJSON{Name: s.Name, Config: &cj})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode scenario", err)
		return
	}

	resp, err := h.run(r.Context(), sim, string(input), save)
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
