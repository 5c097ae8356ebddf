package pricing

import (
	"time"

	"confreg/config"
	"confreg/models"
)

// PhaseOn returns the booking phase in effect at the given instant,
// according to the table's calendar cutoffs. Callers pass time.Now() in
// production and a fixed instant in tests.
func PhaseOn(table *config.PricingTable, at time.Time) models.Phase {
	if !at.After(table.EarlyBirdEnds) {
		return models.PhaseEarlyBird
	}
	if !at.After(table.RegularEnds) {
		return models.PhaseRegular
	}
	return models.PhaseSpot
}
