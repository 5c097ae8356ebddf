package models

// Role is the canonical pricing tier of an attendee.
type Role string

const (
	RoleAOA    Role = "AOA"
	RoleNonAOA Role = "NON_AOA"
	RolePGS    Role = "PGS"
)

// Phase is the coarse time-based pricing tier for a given event year.
type Phase string

const (
	PhaseEarlyBird Phase = "EARLY_BIRD"
	PhaseRegular   Phase = "REGULAR"
	PhaseSpot      Phase = "SPOT"
)

// Selections is the add-on package a user has picked at checkout.
type Selections struct {
	AddWorkshop         bool   `bson:"add_workshop" json:"addWorkshop"`
	AddAoaCourse        bool   `bson:"add_aoa_course" json:"addAoaCourse"`
	AddLifeMembership   bool   `bson:"add_life_membership" json:"addLifeMembership"`
	SelectedWorkshop    string `bson:"selected_workshop,omitempty" json:"selectedWorkshop,omitempty"`
	AccompanyingPersons int    `bson:"accompanying_persons" json:"accompanyingPersons"`
}

// PriceBreakdown is the itemized result of pricing a selection set.
// All amounts are whole rupees.
type PriceBreakdown struct {
	BasePrice           int    `bson:"base_price" json:"basePrice"`
	WorkshopPrice       int    `bson:"workshop_price" json:"workshopPrice"`
	CoursePrice         int    `bson:"course_price" json:"coursePrice"`
	LifeMembershipPrice int    `bson:"life_membership_price" json:"lifeMembershipPrice"`
	AccompanyingCharge  int    `bson:"accompanying_charge" json:"accompanyingCharge"`
	CouponCode          string `bson:"coupon_code,omitempty" json:"couponCode,omitempty"`
	Discount            int    `bson:"discount" json:"discount"`
	PackageBase         int    `bson:"package_base" json:"packageBase"`
	GST                 int    `bson:"gst" json:"gst"`
	ProcessingFee       int    `bson:"processing_fee" json:"processingFee"`
	TotalAmount         int    `bson:"total_amount" json:"totalAmount"`
}
