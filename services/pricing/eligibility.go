package pricing

import (
	"confreg/config"
	"confreg/models"
)

// ValidateSelection enforces the business rules the calculator deliberately
// does not know about: role eligibility, mutually exclusive add-ons, and
// offers that are not sold in the current phase. A selection that passes
// here can be priced without producing a silent zero.
func ValidateSelection(table *config.PricingTable, role models.Role, phase models.Phase, sel models.Selections) error {
	if sel.AccompanyingPersons < 0 {
		return newError(CodeInvalidSelection, "accompanying persons cannot be negative")
	}

	if sel.AddWorkshop {
		if sel.SelectedWorkshop == "" {
			return newError(CodeInvalidSelection, "workshop selection is required when adding a workshop")
		}
		if WorkshopPrice(table, role, phase) == 0 {
			return newError(CodeOfferUnavailable, "workshop is not available in the current booking phase")
		}
	}

	if sel.AddAoaCourse {
		if role == models.RolePGS {
			return newError(CodeInvalidSelection, "certified course is not open to postgraduate students")
		}
		// The course price is phase-independent; SPOT is closed by rule.
		if phase == models.PhaseSpot {
			return newError(CodeOfferUnavailable, "certified course registration is closed for spot registrations")
		}
		if role == models.RoleAOA && sel.AddWorkshop {
			return newError(CodeInvalidSelection, "choose either the workshop or the certified course, not both")
		}
	}

	if sel.AddLifeMembership {
		if role != models.RoleNonAOA {
			return newError(CodeInvalidSelection, "life membership is available only to non-AOA members")
		}
		if LifeMembershipPrice(table, role, phase) == 0 {
			return newError(CodeOfferUnavailable, "life membership is not available in the current booking phase")
		}
	}

	return nil
}
