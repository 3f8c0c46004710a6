// Package authz holds the tenant role enumeration and the fixed permission
// table. The predicates never touch the database; a role must always come
// from the resolved session, never from client input.
package authz

// Role is a user's role inside a tenant. Closed set.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

// ParseRole validates a stored role string against the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleViewer:
		return Role(s), true
	}
	return "", false
}

// Action is a permissioned operation. Closed set.
type Action string

const (
	ActionContentRead    Action = "content:read"
	ActionContentCreate  Action = "content:create"
	ActionContentEdit    Action = "content:edit"
	ActionContentPublish Action = "content:publish"
	ActionContentDelete  Action = "content:delete"
	ActionTeamRead       Action = "team:read"
	ActionTeamInvite     Action = "team:invite"
	ActionTeamEdit       Action = "team:edit"
	ActionTeamDeactivate Action = "team:deactivate"
)

// grants is the authoritative permission table. A (role, action) pair absent
// from this table is denied; nothing is inherited or computed.
var grants = map[Role]map[Action]bool{
	RoleAdmin: {
		ActionContentRead:    true,
		ActionContentCreate:  true,
		ActionContentEdit:    true,
		ActionContentPublish: true,
		ActionContentDelete:  true,
		ActionTeamRead:       true,
		ActionTeamInvite:     true,
		ActionTeamEdit:       true,
		ActionTeamDeactivate: true,
	},
	RoleEditor: {
		ActionContentRead:    true,
		ActionContentCreate:  true,
		ActionContentEdit:    true,
		ActionContentPublish: true,
		ActionContentDelete:  true,
		ActionTeamRead:       true,
	},
	RoleViewer: {
		ActionContentRead: true,
		ActionTeamRead:    true,
	},
}

// Allowed reports whether the role grants the action. Unknown roles are
// denied everything.
func Allowed(r Role, a Action) bool {
	return grants[r][a]
}

// CanViewContent reports whether the role may read tenant content.
func CanViewContent(r Role) bool { return Allowed(r, ActionContentRead) }

// CanEditContent reports whether the role may create or edit tenant content.
func CanEditContent(r Role) bool { return Allowed(r, ActionContentEdit) }

// CanPublishContent reports whether the role may publish tenant content.
func CanPublishContent(r Role) bool { return Allowed(r, ActionContentPublish) }

// CanDeleteContent reports whether the role may delete tenant content.
func CanDeleteContent(r Role) bool { return Allowed(r, ActionContentDelete) }

// CanViewTeam reports whether the role may list tenant members.
func CanViewTeam(r Role) bool { return Allowed(r, ActionTeamRead) }

// CanManageTeam reports whether the role may invite, edit, or deactivate
// members.
func CanManageTeam(r Role) bool { return Allowed(r, ActionTeamInvite) }
