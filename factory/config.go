/*
Package factory provides JSON and YAML to engine conversion.

PURPOSE:
  Converts the commercial configuration and unit list a client sends into
  engine.Config and []engine.Unit. The engine assumes well-typed input;
  this package is where missing fields get their defaults.

JSON SCHEMA:
  {
    "name": "Tower A launch",
    "units": [
      {"id": 1, "description": "Apto 101", "value": 300000,
       "category": "apartment", "status": "available", "phase": 0}
    ],
    "config": {
      "incc": 0.0045, "ipca": 0.004,
      "entradaPct": 30, "entradaMonths": 6,
      "payAtoPct": 0,
      "payInterPct": 10, "payInterMonth": 12,
      "payChavesPct": 60,
      "preLaunchMonths": 2, "launchMonths": 3,
      "discountPre": 10, "discountLaunch": 5
    }
  }

  The same keys are accepted in YAML.

DEFAULTS:
  - Any missing config field takes its value from the factory defaults
    (realestate.StandardConfig unless overridden)
  - A missing unit "phase" is the unit's position in the list
  - A missing unit "id" is position + 1, or the next unused id above it
  - Missing category/status are apartment/available
  - A missing "units" list is realestate.DefaultUnits()

REJECTED INPUT:
  Malformed JSON/YAML, non-positive unit values, unknown category or
  status labels and duplicate unit ids. Leg percentages are NOT checked
  to add up to 100.

USAGE:
  f := factory.NewSimulationFactory()
  sim, err := f.ParseSimulation(body)
  if err != nil {
      return err // factory.IsInputError(err) == true
  }
  result, err := engine.Simulate(sim.Units, sim.Config)

SEE ALSO:
  - realestate/presets.go: Default configuration and units
  - engine/types.go: Config and Unit
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/sales-simulator/engine"
	"github.com/warp/sales-simulator/realestate"
	"gopkg.in/yaml.v3"
)

// ErrInvalidInput is wrapped by every parse and conversion failure.
var ErrInvalidInput = errors.New("invalid simulation input")

// IsInputError returns true if err came from malformed client input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ConfigJSON is the wire form of engine.Config. Nil fields take defaults.
type ConfigJSON struct {
	INCC            *float64 `json:"incc,omitempty" yaml:"incc,omitempty"`
	IPCA            *float64 `json:"ipca,omitempty" yaml:"ipca,omitempty"`
	EntradaPct      *float64 `json:"entradaPct,omitempty" yaml:"entradaPct,omitempty"`
	EntradaMonths   *int     `json:"entradaMonths,omitempty" yaml:"entradaMonths,omitempty"`
	PayAtoPct       *float64 `json:"payAtoPct,omitempty" yaml:"payAtoPct,omitempty"`
	PayInterPct     *float64 `json:"payInterPct,omitempty" yaml:"payInterPct,omitempty"`
	PayInterMonth   *int     `json:"payInterMonth,omitempty" yaml:"payInterMonth,omitempty"`
	PayChavesPct    *float64 `json:"payChavesPct,omitempty" yaml:"payChavesPct,omitempty"`
	PreLaunchMonths *int     `json:"preLaunchMonths,omitempty" yaml:"preLaunchMonths,omitempty"`
	LaunchMonths    *int     `json:"launchMonths,omitempty" yaml:"launchMonths,omitempty"`
	DiscountPre     *float64 `json:"discountPre,omitempty" yaml:"discountPre,omitempty"`
	DiscountLaunch  *float64 `json:"discountLaunch,omitempty" yaml:"discountLaunch,omitempty"`
}

// UnitJSON is the wire form of engine.Unit.
type UnitJSON struct {
	ID          *int    `json:"id,omitempty" yaml:"id,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Value       float64 `json:"value" yaml:"value"`
	Category    string  `json:"category,omitempty" yaml:"category,omitempty"`
	Status      string  `json:"status,omitempty" yaml:"status,omitempty"`
	Phase       *int    `json:"phase,omitempty" yaml:"phase,omitempty"`
}

// SimulationJSON is a complete simulation request.
type SimulationJSON struct {
	Name   string      `json:"name,omitempty" yaml:"name,omitempty"`
	Units  []UnitJSON  `json:"units,omitempty" yaml:"units,omitempty"`
	Config *ConfigJSON `json:"config,omitempty" yaml:"config,omitempty"`
}

// Simulation is a parsed request, ready for engine.Simulate.
type Simulation struct {
	Name   string
	Units  []engine.Unit
	Config engine.Config
}

// =============================================================================
// SIMULATION FACTORY
// =============================================================================

// SimulationFactory converts wire input into engine values.
type SimulationFactory struct {
	Defaults engine.Config
	Units    func() []engine.Unit
}

// NewSimulationFactory creates a factory with the standard defaults.
func NewSimulationFactory() *SimulationFactory {
	return &SimulationFactory{
		Defaults: realestate.StandardConfig(),
		Units:    realestate.DefaultUnits,
	}
}

// ParseSimulation parses a JSON simulation request.
func (f *SimulationFactory) ParseSimulation(jsonStr string) (*Simulation, error) {
	var sj SimulationJSON
	if err := json.Unmarshal([]byte(jsonStr), &sj); err != nil {
		return nil, fmt.Errorf("%w: failed to parse simulation JSON: %v", ErrInvalidInput, err)
	}
	return f.FromJSON(sj)
}

// ParseSimulationYAML parses a YAML simulation request.
func (f *SimulationFactory) ParseSimulationYAML(data []byte) (*Simulation, error) {
	var sj SimulationJSON
	if err := yaml.Unmarshal(data, &sj); err != nil {
		return nil, fmt.Errorf("%w: failed to parse simulation YAML: %v", ErrInvalidInput, err)
	}
	return f.FromJSON(sj)
}

// FromJSON converts a decoded request, filling defaults.
func (f *SimulationFactory) FromJSON(sj SimulationJSON) (*Simulation, error) {
	var units []engine.Unit
	if sj.Units == nil {
		units = f.Units()
	} else {
		var err error
		units, err = UnitsFromJSON(sj.Units)
		if err != nil {
			return nil, err
		}
	}

	cfg := f.Defaults
	if sj.Config != nil {
		cfg = f.ConfigFromJSON(*sj.Config)
	}

	return &Simulation{Name: sj.Name, Units: units, Config: cfg}, nil
}

// ParseConfig parses a JSON configuration.
func (f *SimulationFactory) ParseConfig(jsonStr string) (engine.Config, error) {
	var cj ConfigJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return engine.Config{}, fmt.Errorf("%w: failed to parse config JSON: %v", ErrInvalidInput, err)
	}
	return f.ConfigFromJSON(cj), nil
}

// ParseConfigYAML parses a YAML configuration.
func (f *SimulationFactory) ParseConfigYAML(data []byte) (engine.Config, error) {
	var cj ConfigJSON
	if err := yaml.Unmarshal(data, &cj); err != nil {
		return engine.Config{}, fmt.Errorf("%w: failed to parse config YAML: %v", ErrInvalidInput, err)
	}
	return f.ConfigFromJSON(cj), nil
}

// ConfigFromJSON converts ConfigJSON, taking defaults for nil fields.
func (f *SimulationFactory) ConfigFromJSON(cj ConfigJSON) engine.Config {
	cfg := f.Defaults

	setDecimal(&cfg.INCC, cj.INCC)
	setDecimal(&cfg.IPCA, cj.IPCA)
	setDecimal(&cfg.EntradaPct, cj.EntradaPct)
	setInt(&cfg.EntradaMonths, cj.EntradaMonths)
	setDecimal(&cfg.PayAtoPct, cj.PayAtoPct)
	setDecimal(&cfg.PayInterPct, cj.PayInterPct)
	setInt(&cfg.PayInterMonth, cj.PayInterMonth)
	setDecimal(&cfg.PayChavesPct, cj.PayChavesPct)
	setInt(&cfg.PreLaunchMonths, cj.PreLaunchMonths)
	setInt(&cfg.LaunchMonths, cj.LaunchMonths)
	setDecimal(&cfg.DiscountPre, cj.DiscountPre)
	setDecimal(&cfg.DiscountLaunch, cj.DiscountLaunch)

	return cfg
}

// ToJSON converts a Config to its wire form with every field set.
func ToJSON(cfg engine.Config) ConfigJSON {
	return ConfigJSON{
		INCC:            floatPtr(cfg.INCC),
		IPCA:            floatPtr(cfg.IPCA),
		EntradaPct:      floatPtr(cfg.EntradaPct),
		EntradaMonths:   intPtr(cfg.EntradaMonths),
		PayAtoPct:       floatPtr(cfg.PayAtoPct),
		PayInterPct:     floatPtr(cfg.PayInterPct),
		PayInterMonth:   intPtr(cfg.PayInterMonth),
		PayChavesPct:    floatPtr(cfg.PayChavesPct),
		PreLaunchMonths: intPtr(cfg.PreLaunchMonths),
		LaunchMonths:    intPtr(cfg.LaunchMonths),
		DiscountPre:     floatPtr(cfg.DiscountPre),
		DiscountLaunch:  floatPtr(cfg.DiscountLaunch),
	}
}

// =============================================================================
// UNITS
// =============================================================================

// ParseUnits parses a JSON unit list.
func ParseUnits(jsonStr string) ([]engine.Unit, error) {
	var ujs []UnitJSON
	if err := json.Unmarshal([]byte(jsonStr), &ujs); err != nil {
		return nil, fmt.Errorf("%w: failed to parse units JSON: %v", ErrInvalidInput, err)
	}
	return UnitsFromJSON(ujs)
}

// ParseUnitsYAML parses a YAML unit list.
func ParseUnitsYAML(data []byte) ([]engine.Unit, error) {
	var ujs []UnitJSON
	if err := yaml.Unmarshal(data, &ujs); err != nil {
		return nil, fmt.Errorf("%w: failed to parse units YAML: %v", ErrInvalidInput, err)
	}
	return UnitsFromJSON(ujs)
}

// UnitsFromJSON converts wire units. A missing phase is the list position.
// A missing id is position + 1, or the next id above it that no other unit
// uses; explicit ids are never rewritten.
func UnitsFromJSON(ujs []UnitJSON) ([]engine.Unit, error) {
	units := make([]engine.Unit, len(ujs))
	ids := make(map[int]bool, len(ujs))

	for i, uj := range ujs {
		u, err := unitFromJSON(uj, i)
		if err != nil {
			return nil, err
		}
		if uj.ID != nil {
			if ids[u.ID] {
				return nil, fmt.Errorf("%w: duplicate unit id %d", ErrInvalidInput, u.ID)
			}
			ids[u.ID] = true
		}
		units[i] = u
	}

	for i, uj := range ujs {
		if uj.ID != nil {
			continue
		}
		id := i + 1
		for ids[id] {
			id++
		}
		ids[id] = true
		units[i].ID = id
	}
	return units, nil
}

// UnitToJSON converts a unit to its wire form.
func UnitToJSON(u engine.Unit) UnitJSON {
	id, phase := u.ID, u.Phase
	return UnitJSON{
		ID:          &id,
		Description: u.Description,
		Value:       u.Value.InexactFloat64(),
		Category:    string(u.Category),
		Status:      string(u.Status),
		Phase:       &phase,
	}
}

func unitFromJSON(uj UnitJSON, position int) (engine.Unit, error) {
	if uj.Value <= 0 {
		return engine.Unit{}, fmt.Errorf("%w: unit at position %d has non-positive value %v", ErrInvalidInput, position, uj.Value)
	}

	category := engine.Category(uj.Category)
	if category == "" {
		category = realestate.CategoryApartment
	}
	if !realestate.IsCategory(category) {
		return engine.Unit{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, uj.Category)
	}

	status := engine.Status(uj.Status)
	if status == "" {
		status = realestate.StatusAvailable
	}
	if !realestate.IsStatus(status) {
		return engine.Unit{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, uj.Status)
	}

	id := 0
	if uj.ID != nil {
		id = *uj.ID
	}

	phase := position
	if uj.Phase != nil {
		phase = *uj.Phase
	}

	return engine.Unit{
		ID:          id,
		Description: uj.Description,
		Value:       decimal.NewFromFloat(uj.Value),
		Category:    category,
		Status:      status,
		Phase:       phase,
	}, nil
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func setDecimal(dst *decimal.Decimal, v *float64) {
	if v != nil {
		*dst = decimal.NewFromFloat(*v)
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func floatPtr(d decimal.Decimal) *float64 {
	v := d.InexactFloat64()
	return &v
}

func intPtr(i int) *int {
	return &i
}
