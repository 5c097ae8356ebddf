package config

import (
	"log"
	"time"

	"github.com/spf13/viper"

	"confreg/models"
)

// PricingTable is the fee schedule for one event year. All prices are whole
// rupees. Add-ons are stored as the legacy *package totals* for the
// (role, phase) combination, not as increments; the calculator derives the
// incremental add-on price by subtracting the base price. A combo entry of 0
// means the offer is unavailable in that phase.
type PricingTable struct {
	EventYear int    `mapstructure:"event_year"`
	Prefix    string `mapstructure:"prefix"` // registration number prefix, e.g. "AOA2026-"
	Currency  string `mapstructure:"currency"`

	GSTRate           float64 `mapstructure:"gst_rate"`
	ProcessingFeeRate float64 `mapstructure:"processing_fee_rate"`

	AccompanyingPersonCharge int `mapstructure:"accompanying_person_charge"`
	AoaCourseSeatCap         int `mapstructure:"aoa_course_seat_cap"`

	// Phase cutoffs: EARLY_BIRD up to and including EarlyBirdEnds,
	// REGULAR up to and including RegularEnds, SPOT afterwards.
	EarlyBirdEnds time.Time `mapstructure:"early_bird_ends"`
	RegularEnds   time.Time `mapstructure:"regular_ends"`

	Base                map[models.Role]map[models.Phase]int `mapstructure:"base"`
	WorkshopCombo       map[models.Role]map[models.Phase]int `mapstructure:"workshop_combo"`
	CourseCombo         map[models.Role]map[models.Phase]int `mapstructure:"course_combo"`
	LifeMembershipCombo map[models.Role]map[models.Phase]int `mapstructure:"life_membership_combo"`

	// Flat-amount coupon codes, applied to the base price.
	Coupons map[string]int `mapstructure:"coupons"`

	// Accommodation room rates per night, keyed hotel -> room type.
	RoomRates map[string]map[string]int `mapstructure:"room_rates"`
}

// Pricing is the active fee schedule.
var Pricing *PricingTable

// DefaultPricingTable returns the compiled-in schedule for the current event
// year. A pricing.yaml file, when present, replaces it wholesale so a new
// event year never touches calculation logic.
func DefaultPricingTable() *PricingTable {
	return &PricingTable{
		EventYear: 2026,
		Prefix:    "AOA2026-",
		Currency:  "INR",

		GSTRate:           0.18,
		ProcessingFeeRate: 0.0195,

		AccompanyingPersonCharge: 7000,
		AoaCourseSeatCap:         40,

		EarlyBirdEnds: time.Date(2026, time.January, 15, 23, 59, 59, 0, time.UTC),
		RegularEnds:   time.Date(2026, time.February, 20, 23, 59, 59, 0, time.UTC),

		Base: map[models.Role]map[models.Phase]int{
			models.RoleAOA:    {models.PhaseEarlyBird: 9000, models.PhaseRegular: 10500, models.PhaseSpot: 12000},
			models.RoleNonAOA: {models.PhaseEarlyBird: 11000, models.PhaseRegular: 12500, models.PhaseSpot: 14000},
			models.RolePGS:    {models.PhaseEarlyBird: 7000, models.PhaseRegular: 8500, models.PhaseSpot: 10000},
		},
		// Workshop is not sold at SPOT: combo resolves to 0 there.
		WorkshopCombo: map[models.Role]map[models.Phase]int{
			models.RoleAOA:    {models.PhaseEarlyBird: 11000, models.PhaseRegular: 12500, models.PhaseSpot: 0},
			models.RoleNonAOA: {models.PhaseEarlyBird: 13000, models.PhaseRegular: 14500, models.PhaseSpot: 0},
			models.RolePGS:    {models.PhaseEarlyBird: 9000, models.PhaseRegular: 10500, models.PhaseSpot: 0},
		},
		// Certified course add-on is phase-independent in price (1500 over
		// base); SPOT availability is blocked by eligibility, not price.
		CourseCombo: map[models.Role]map[models.Phase]int{
			models.RoleAOA:    {models.PhaseEarlyBird: 10500, models.PhaseRegular: 12000, models.PhaseSpot: 13500},
			models.RoleNonAOA: {models.PhaseEarlyBird: 12500, models.PhaseRegular: 14000, models.PhaseSpot: 15500},
			models.RolePGS:    {models.PhaseEarlyBird: 0, models.PhaseRegular: 0, models.PhaseSpot: 0},
		},
		// Life membership is a NON_AOA offer and is not sold at SPOT.
		LifeMembershipCombo: map[models.Role]map[models.Phase]int{
			models.RoleAOA:    {models.PhaseEarlyBird: 0, models.PhaseRegular: 0, models.PhaseSpot: 0},
			models.RoleNonAOA: {models.PhaseEarlyBird: 26000, models.PhaseRegular: 27500, models.PhaseSpot: 0},
			models.RolePGS:    {models.PhaseEarlyBird: 0, models.PhaseRegular: 0, models.PhaseSpot: 0},
		},

		Coupons: map[string]int{
			"FACULTY500":  500,
			"DELEGATE1K":  1000,
			"ORGANISER2K": 2000,
		},

		RoomRates: map[string]map[string]int{
			"The Grand Meridian": {"standard": 5500, "deluxe": 7500},
			"Hotel Sunway":       {"standard": 3500, "deluxe": 4500},
		},
	}
}

// LoadPricingTable installs the default schedule, overridden by a
// pricing.yaml file when one is present.
func LoadPricingTable() {
	table := DefaultPricingTable()

	v := viper.New()
	v.SetConfigName("pricing")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err == nil {
		if err := v.Unmarshal(table); err != nil {
			log.Fatalf("Failed to parse pricing table: %v", err)
		}
		log.Printf("Loaded pricing table from %s", v.ConfigFileUsed())
	}

	Pricing = table
}
