package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confreg/config"
	"confreg/models"
)

func table() *config.PricingTable {
	return config.DefaultPricingTable()
}

func TestCalculateWorkshopWithAccompanying(t *testing.T) {
	sel := models.Selections{
		AddWorkshop:         true,
		SelectedWorkshop:    "arthroscopy",
		AccompanyingPersons: 1,
	}

	b, err := Calculate(table(), models.RoleNonAOA, models.PhaseEarlyBird, sel, "")
	require.NoError(t, err)

	assert.Equal(t, 11000, b.BasePrice)
	assert.Equal(t, 2000, b.WorkshopPrice)
	assert.Equal(t, 13000, b.PackageBase)
	assert.Equal(t, 7000, b.AccompanyingCharge)
	assert.Equal(t, 3600, b.GST)
	assert.Equal(t, 460, b.ProcessingFee)
	assert.Equal(t, 24060, b.TotalAmount)
}

func TestCalculateBaseOnly(t *testing.T) {
	b, err := Calculate(table(), models.RoleNonAOA, models.PhaseEarlyBird, models.Selections{}, "")
	require.NoError(t, err)

	assert.Equal(t, 11000, b.PackageBase)
	assert.Equal(t, 1980, b.GST)
	// 1.95% of 12980 is 253.11, rounded down.
	assert.Equal(t, 253, b.ProcessingFee)
	assert.Equal(t, 13233, b.TotalAmount)
}

func TestCalculateIsDeterministic(t *testing.T) {
	sel := models.Selections{AddWorkshop: true, SelectedWorkshop: "spine", AccompanyingPersons: 2}

	first, err := Calculate(table(), models.RoleAOA, models.PhaseRegular, sel, "")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Calculate(table(), models.RoleAOA, models.PhaseRegular, sel, "")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAddOnDerivedFromPackageTotals(t *testing.T) {
	tbl := table()

	for _, role := range []models.Role{models.RoleAOA, models.RoleNonAOA, models.RolePGS} {
		for _, phase := range []models.Phase{models.PhaseEarlyBird, models.PhaseRegular, models.PhaseSpot} {
			combo := tbl.WorkshopCombo[role][phase]
			base := tbl.Base[role][phase]
			want := combo - base
			if combo == 0 || want < 0 {
				want = 0
			}
			assert.Equal(t, want, WorkshopPrice(tbl, role, phase), "role=%s phase=%s", role, phase)
		}
	}
}

func TestWorkshopUnavailableAtSpot(t *testing.T) {
	assert.Zero(t, WorkshopPrice(table(), models.RoleNonAOA, models.PhaseSpot))

	sel := models.Selections{AddWorkshop: true, SelectedWorkshop: "arthroscopy"}
	err := ValidateSelection(table(), models.RoleNonAOA, models.PhaseSpot, sel)
	require.Error(t, err)

	var perr *PricingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeOfferUnavailable, perr.Code)
}

func TestCouponClampedToBase(t *testing.T) {
	tbl := table()
	tbl.Coupons["BIGLY"] = 1_000_000

	b, err := Calculate(tbl, models.RoleNonAOA, models.PhaseEarlyBird, models.Selections{}, "BIGLY")
	require.NoError(t, err)

	assert.Equal(t, b.BasePrice, b.Discount)
	assert.Zero(t, b.PackageBase)
	assert.Zero(t, b.TotalAmount)
}

func TestCouponAppliesBeforeAddOns(t *testing.T) {
	sel := models.Selections{AddWorkshop: true, SelectedWorkshop: "trauma"}

	b, err := Calculate(table(), models.RoleNonAOA, models.PhaseEarlyBird, sel, "FACULTY500")
	require.NoError(t, err)

	assert.Equal(t, 500, b.Discount)
	// (11000 - 500) + 2000
	assert.Equal(t, 12500, b.PackageBase)
}

func TestUnknownCouponRejected(t *testing.T) {
	_, err := Calculate(table(), models.RoleNonAOA, models.PhaseEarlyBird, models.Selections{}, "NOPE")
	require.Error(t, err)

	var perr *PricingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeInvalidCoupon, perr.Code)
}

func TestUnknownRoleRejected(t *testing.T) {
	_, err := Calculate(table(), models.Role("GUEST"), models.PhaseEarlyBird, models.Selections{}, "")
	require.Error(t, err)
}
