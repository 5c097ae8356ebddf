package registration

import "confreg/models"

// MergeSticky unions a new selection set with what a paid registration
// already owns. A purchased add-on flag stays true even when the new
// request omits it, so a paid customer cannot be repriced downward by
// resubmitting a narrower selection. Applied only to PAID registrations;
// unpaid ones take the request as-is.
func MergeSticky(owned, requested models.Selections) models.Selections {
	merged := requested
	merged.AddWorkshop = requested.AddWorkshop || owned.AddWorkshop
	merged.AddAoaCourse = requested.AddAoaCourse || owned.AddAoaCourse
	merged.AddLifeMembership = requested.AddLifeMembership || owned.AddLifeMembership

	// Keep the workshop choice that was paid for when the resubmission
	// drops it but the flag is sticky.
	if merged.AddWorkshop && merged.SelectedWorkshop == "" {
		merged.SelectedWorkshop = owned.SelectedWorkshop
	}
	return merged
}
