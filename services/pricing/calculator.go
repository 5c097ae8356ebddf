package pricing

import (
	"math"

	"confreg/config"
	"confreg/models"
)

// roundHalfUp rounds to the nearest integer, halves away from zero upward.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// basePrice looks up the base conference price for (role, phase).
func basePrice(table *config.PricingTable, role models.Role, phase models.Phase) (int, error) {
	byPhase, ok := table.Base[role]
	if !ok {
		return 0, newError(CodeInvalidRole, "unknown role "+string(role))
	}
	price, ok := byPhase[phase]
	if !ok {
		return 0, newError(CodeInvalidPhase, "unknown booking phase "+string(phase))
	}
	return price, nil
}

// addOnPrice derives the incremental add-on price from the legacy package
// total: combo(role, phase) minus base(role, phase), floored at 0. The
// tables store package totals, never increments; deriving here keeps the
// preview and the upsert paths priced identically across roles.
func addOnPrice(table *config.PricingTable, combo map[models.Role]map[models.Phase]int, role models.Role, phase models.Phase) int {
	byPhase, ok := combo[role]
	if !ok {
		return 0
	}
	total, ok := byPhase[phase]
	if !ok || total == 0 {
		return 0
	}
	base := table.Base[role][phase]
	if total <= base {
		return 0
	}
	return total - base
}

// WorkshopPrice returns the incremental workshop price for (role, phase);
// 0 means the offer is unavailable.
func WorkshopPrice(table *config.PricingTable, role models.Role, phase models.Phase) int {
	return addOnPrice(table, table.WorkshopCombo, role, phase)
}

// CoursePrice returns the incremental certified-course price for (role, phase).
func CoursePrice(table *config.PricingTable, role models.Role, phase models.Phase) int {
	return addOnPrice(table, table.CourseCombo, role, phase)
}

// LifeMembershipPrice returns the incremental life-membership price for (role, phase).
func LifeMembershipPrice(table *config.PricingTable, role models.Role, phase models.Phase) int {
	return addOnPrice(table, table.LifeMembershipCombo, role, phase)
}

// Calculate prices a selection set. It is a pure function of its inputs:
// the same (role, phase, selections, coupon) always produces the same
// breakdown. Eligibility and availability are the caller's concern
// (ValidateSelection); Calculate only does arithmetic.
//
// The order of operations is fixed: coupon off the base, plus add-ons,
// plus accompanying persons, then GST on that sum, then the processing fee
// on the sum including GST. Reordering shifts the total by rounding drift.
func Calculate(table *config.PricingTable, role models.Role, phase models.Phase, sel models.Selections, couponCode string) (models.PriceBreakdown, error) {
	var b models.PriceBreakdown

	base, err := basePrice(table, role, phase)
	if err != nil {
		return b, err
	}
	b.BasePrice = base

	if couponCode != "" {
		amount, ok := table.Coupons[couponCode]
		if !ok {
			return b, newError(CodeInvalidCoupon, "unknown coupon code")
		}
		if amount < 0 {
			amount = 0
		}
		if amount > base {
			amount = base
		}
		b.CouponCode = couponCode
		b.Discount = amount
	}

	if sel.AddWorkshop {
		b.WorkshopPrice = WorkshopPrice(table, role, phase)
	}
	if sel.AddAoaCourse {
		b.CoursePrice = CoursePrice(table, role, phase)
	}
	if sel.AddLifeMembership {
		b.LifeMembershipPrice = LifeMembershipPrice(table, role, phase)
	}

	b.PackageBase = (base - b.Discount) + b.WorkshopPrice + b.CoursePrice + b.LifeMembershipPrice
	b.AccompanyingCharge = sel.AccompanyingPersons * table.AccompanyingPersonCharge

	totalBase := b.PackageBase + b.AccompanyingCharge
	b.GST = roundHalfUp(table.GSTRate * float64(totalBase))
	subtotal := totalBase + b.GST
	b.ProcessingFee = roundHalfUp(table.ProcessingFeeRate * float64(subtotal))
	b.TotalAmount = subtotal + b.ProcessingFee

	return b, nil
}
