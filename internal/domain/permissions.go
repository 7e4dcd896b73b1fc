package domain

// PermissionSection identifies one independently gated area of the portal.
type PermissionSection string

const (
	SectionAdmin     PermissionSection = "admin"
	SectionShipments PermissionSection = "shipments"
	SectionUsers     PermissionSection = "users"
	SectionReports   PermissionSection = "reports"
	SectionSupport   PermissionSection = "support"
	SectionSettings  PermissionSection = "settings"
)

// PermissionAction is one CRUD-style action within an object section.
type PermissionAction string

const (
	ActionRead   PermissionAction = "read"
	ActionWrite  PermissionAction = "write"
	ActionDelete PermissionAction = "delete"
)

// SectionSchema declares the shape of one permission section: either a plain
// boolean section (Actions nil) or an object section with a fixed action set.
type SectionSchema struct {
	Boolean bool
	Actions []PermissionAction
}

// PermissionSchema is the fixed schema every Permissions document must match.
// Process-wide constant; never mutated at runtime.
var PermissionSchema = map[PermissionSection]SectionSchema{
	SectionAdmin:     {Boolean: true},
	SectionShipments: {Actions: []PermissionAction{ActionRead, ActionWrite, ActionDelete}},
	SectionUsers:     {Actions: []PermissionAction{ActionRead, ActionWrite, ActionDelete}},
	SectionReports:   {Actions: []PermissionAction{ActionRead, ActionWrite}},
	SectionSupport:   {Actions: []PermissionAction{ActionRead, ActionWrite}},
	SectionSettings:  {Actions: []PermissionAction{ActionRead, ActionWrite}},
}

// SectionOrder lists schema sections in display order.
var SectionOrder = []PermissionSection{
	SectionAdmin,
	SectionShipments,
	SectionUsers,
	SectionReports,
	SectionSupport,
	SectionSettings,
}

// Permissions maps a section key to either a bool (boolean sections) or a
// map[string]bool of actions (object sections). Stored as JSONB.
type Permissions map[string]interface{}

// ProtectedRoleNames are roles that can never be deleted, whatever the caller's
// privilege. Matching is exact and case-sensitive.
var ProtectedRoleNames = []string{"Admin", "Support", "Manager"}

// IsProtectedRole reports whether name is one of the protected role names.
func IsProtectedRole(name string) bool {
	for _, protected := range ProtectedRoleNames {
		if name == protected {
			return true
		}
	}
	return false
}
