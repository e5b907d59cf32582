/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal types from the external API contract: money and
  rates leave the API as JSON numbers rounded for display, while stored
  runs keep full precision.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Simulation:
    SimulateRequest, SimulationResponse, UnitFlowDTO, SummaryDTO

  Runs:
    RunDTO

  Scenarios:
    ScenarioDTO

VALIDATION:
  Validation is done by factory and engine, not in DTOs. DTOs are pure
  data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/config.go: ConfigJSON, UnitJSON, SimulationJSON
*/
package api

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/sales-simulator/engine"
	"github.com/warp/sales-simulator/factory"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SimulateRequest is the body of POST /api/simulations.
type SimulateRequest struct {
	factory.SimulationJSON

	// Save records the run in the history store.
	Save bool `json:"save,omitempty"`
}

// SimulationResponse is a complete simulation result.
type SimulationResponse struct {
	RunID      string             `json:"runId,omitempty"`
	Name       string             `json:"name,omitempty"`
	Config     factory.ConfigJSON `json:"config"`
	Units      []UnitFlowDTO      `json:"units"`
	Aggregate  []float64          `json:"aggregate"`
	Cumulative []float64          `json:"cumulative"`
	Summary    SummaryDTO         `json:"summary"`
	Cached     bool               `json:"cached"`
}

// UnitFlowDTO is one unit's projection.
type UnitFlowDTO struct {
	ID          int       `json:"id"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Phase       int       `json:"phase"`
	Band        string    `json:"band"`
	Value       float64   `json:"value"`
	BasePrice   float64   `json:"basePrice"`
	Total       float64   `json:"total"`
	Flow        []float64 `json:"flow"`
}

// SummaryDTO holds the portfolio metrics.
type SummaryDTO struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	MonthlyRate    float64 `json:"monthlyRate"`
	AnnualRate     float64 `json:"annualRate"`
	Converged      bool    `json:"converged"`
	Iterations     int     `json:"iterations,omitempty"`
	Payback        int     `json:"payback"`
	PaybackReached bool    `json:"paybackReached"`
	ROI            float64 `json:"roi"`
}

// RunDTO is a stored simulation run.
type RunDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name,omitempty"`
	CreatedAt string          `json:"createdAt"`
	UnitCount int             `json:"unitCount"`
	Summary   SummaryDTO      `json:"summary"`
	Aggregate []float64       `json:"aggregate"`
	Input     json.RawMessage `json:"input,omitempty"`
}

// ScenarioDTO represents a preset commercial configuration.
type ScenarioDTO struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Config      factory.ConfigJSON `json:"config"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toSimulationResponse(sim *factory.Simulation, res *engine.Result) *SimulationResponse {
	units := make([]UnitFlowDTO, len(res.Units))
	for i, uf := range res.Units {
		units[i] = UnitFlowDTO{
			ID:          uf.Unit.ID,
			Description: uf.Unit.Description,
			Category:    string(uf.Unit.Category),
			Status:      string(uf.Unit.Status),
			Phase:       uf.Phase,
			Band:        string(uf.Band),
			Value:       money(uf.Unit.Value),
			BasePrice:   money(uf.BasePrice),
			Total:       money(uf.Total),
			Flow:        moneyFlow(uf.Flow),
		}
	}

	s := res.Summary
	return &SimulationResponse{
		Name:       sim.Name,
		Config:     factory.ToJSON(sim.Config),
		Units:      units,
		Aggregate:  moneyFlow(res.Aggregate),
		Cumulative: moneyFlow(res.Aggregate.Cumulative()),
		Summary: SummaryDTO{
			TotalRevenue:   money(s.TotalRevenue),
			MonthlyRate:    s.Rate.Rate.InexactFloat64(),
			AnnualRate:     s.AnnualRate.Round(6).InexactFloat64(),
			Converged:      s.Rate.Converged,
			Iterations:     s.Rate.Iterations,
			Payback:        s.Payback,
			PaybackReached: s.PaybackReached,
			ROI:            s.ROI.InexactFloat64(),
		},
	}
}

func toRunDTO(run engine.Run, withInput bool) RunDTO {
	dto := RunDTO{
		ID:        run.ID,
		Name:      run.Name,
		CreatedAt: run.CreatedAt.Format(time.RFC3339),
		UnitCount: run.UnitCount,
		Summary: SummaryDTO{
			TotalRevenue:   money(run.TotalRevenue),
			MonthlyRate:    run.MonthlyRate.InexactFloat64(),
			AnnualRate:     run.AnnualRate.Round(6).InexactFloat64(),
			Converged:      run.Converged,
			Payback:        run.Payback,
			PaybackReached: run.PaybackReached,
			ROI:            run.ROI.InexactFloat64(),
		},
		Aggregate: moneyFlow(run.Aggregate),
	}
	if withInput && json.Valid([]byte(run.InputJSON)) {
		dto.Input = json.RawMessage(run.InputJSON)
	}
	return dto
}

// money rounds to cents for display.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func moneyFlow(cf engine.CashFlow) []float64 {
	out := make([]float64, len(cf))
	for i, v := range cf {
		out[i] = money(v)
	}
	return out
}
