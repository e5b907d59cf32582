// Package realestate holds the property-sales vocabulary and presets used
// with the generic projection engine.
package realestate

import "github.com/warp/sales-simulator/engine"

// =============================================================================
// UNIT CATEGORIES
// =============================================================================

const (
	CategoryApartment  engine.Category = "apartment"
	CategoryGarden     engine.Category = "garden"
	CategoryPenthouse  engine.Category = "penthouse"
	CategoryStudio     engine.Category = "studio"
	CategoryCommercial engine.Category = "commercial"
)

// =============================================================================
// UNIT STATUS
// =============================================================================

const (
	StatusAvailable engine.Status = "available"
	StatusReserved  engine.Status = "reserved"
	StatusSold      engine.Status = "sold"
)

var categories = map[engine.Category]bool{
	CategoryApartment:  true,
	CategoryGarden:     true,
	CategoryPenthouse:  true,
	CategoryStudio:     true,
	CategoryCommercial: true,
}

var statuses = map[engine.Status]bool{
	StatusAvailable: true,
	StatusReserved:  true,
	StatusSold:      true,
}

// IsCategory reports whether c is a known unit category.
func IsCategory(c engine.Category) bool { return categories[c] }

// IsStatus reports whether s is a known unit status.
func IsStatus(s engine.Status) bool { return statuses[s] }
