package pricing

import (
	"strings"

	"confreg/models"
)

// NormalizeRole maps the role strings that appear on profiles and legacy
// imports ("AOA Member", "Non-AOA Member", "Post Graduate Student", ...) to
// the canonical pricing tier. Both the calculator and the eligibility checks
// go through this one function.
func NormalizeRole(raw string) (models.Role, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")

	switch s {
	case "AOA", "AOA MEMBER":
		return models.RoleAOA, true
	case "NON AOA", "NON AOA MEMBER", "NONAOA":
		return models.RoleNonAOA, true
	case "PGS", "PG STUDENT", "POST GRADUATE STUDENT", "POSTGRADUATE STUDENT":
		return models.RolePGS, true
	}
	return "", false
}
