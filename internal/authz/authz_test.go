package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedMatrix(t *testing.T) {
	type row struct {
		action Action
		admin  bool
		editor bool
		viewer bool
	}
	table := []row{
		{ActionContentRead, true, true, true},
		{ActionContentCreate, true, true, false},
		{ActionContentEdit, true, true, false},
		{ActionContentPublish, true, true, false},
		{ActionContentDelete, true, true, false},
		{ActionTeamRead, true, true, true},
		{ActionTeamInvite, true, false, false},
		{ActionTeamEdit, true, false, false},
		{ActionTeamDeactivate, true, false, false},
	}

	for _, r := range table {
		assert.Equal(t, r.admin, Allowed(RoleAdmin, r.action), "ADMIN %s", r.action)
		assert.Equal(t, r.editor, Allowed(RoleEditor, r.action), "EDITOR %s", r.action)
		assert.Equal(t, r.viewer, Allowed(RoleViewer, r.action), "VIEWER %s", r.action)
	}
}

func TestUnknownRoleDeniedEverything(t *testing.T) {
	actions := []Action{
		ActionContentRead, ActionContentCreate, ActionContentEdit,
		ActionContentPublish, ActionContentDelete,
		ActionTeamRead, ActionTeamInvite, ActionTeamEdit, ActionTeamDeactivate,
	}
	for _, a := range actions {
		assert.False(t, Allowed(Role(""), a), "empty role %s", a)
		assert.False(t, Allowed(Role("SUPERUSER"), a), "unknown role %s", a)
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"ADMIN", "EDITOR", "VIEWER"} {
		role, ok := ParseRole(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, Role(valid), role)
	}

	// Stored roles are uppercase; anything else is rejected, not coerced.
	for _, invalid := range []string{"", "admin", "Admin", "OWNER", " ADMIN"} {
		_, ok := ParseRole(invalid)
		assert.False(t, ok, "%q should not parse", invalid)
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, CanViewContent(RoleViewer))
	assert.False(t, CanEditContent(RoleViewer))
	assert.False(t, CanPublishContent(RoleViewer))
	assert.False(t, CanDeleteContent(RoleViewer))
	assert.True(t, CanViewTeam(RoleViewer))
	assert.False(t, CanManageTeam(RoleViewer))

	assert.True(t, CanEditContent(RoleEditor))
	assert.True(t, CanPublishContent(RoleEditor))
	assert.True(t, CanDeleteContent(RoleEditor))
	assert.False(t, CanManageTeam(RoleEditor))

	assert.True(t, CanManageTeam(RoleAdmin))
}
