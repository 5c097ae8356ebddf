package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"confreg/models"
)

func TestNormalizeRoleAliases(t *testing.T) {
	cases := map[string]models.Role{
		"AOA":                   models.RoleAOA,
		"aoa member":            models.RoleAOA,
		"Non-AOA":               models.RoleNonAOA,
		"NON_AOA_MEMBER":        models.RoleNonAOA,
		"nonaoa":                models.RoleNonAOA,
		"PGS":                   models.RolePGS,
		"pg student":            models.RolePGS,
		"Postgraduate Student":  models.RolePGS,
		"post graduate student": models.RolePGS,
	}

	for raw, want := range cases {
		got, ok := NormalizeRole(raw)
		assert.True(t, ok, "raw=%q", raw)
		assert.Equal(t, want, got, "raw=%q", raw)
	}
}

func TestNormalizeRoleRejectsUnknown(t *testing.T) {
	_, ok := NormalizeRole("EXHIBITOR")
	assert.False(t, ok)
}
