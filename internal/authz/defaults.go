package authz

import "github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"

// DefaultRolePermissions returns the seed permission documents for the
// built-in roles. Unlisted roles start from the all-false document.
func DefaultRolePermissions(roleName string) domain.Permissions {
	switch roleName {
	case "Admin":
		return domain.Permissions{
			"admin":     true,
			"shipments": map[string]interface{}{"read": true, "write": true, "delete": true},
			"users":     map[string]interface{}{"read": true, "write": true, "delete": true},
			"reports":   map[string]interface{}{"read": true, "write": true},
			"support":   map[string]interface{}{"read": true, "write": true},
			"settings":  map[string]interface{}{"read": true, "write": true},
		}
	case "Manager":
		return domain.Permissions{
			"admin":     false,
			"shipments": map[string]interface{}{"read": true, "write": true, "delete": false},
			"users":     map[string]interface{}{"read": true, "write": false, "delete": false},
			"reports":   map[string]interface{}{"read": true, "write": true},
			"support":   map[string]interface{}{"read": true, "write": true},
			"settings":  map[string]interface{}{"read": true, "write": false},
		}
	case "Support":
		return domain.Permissions{
			"admin":     false,
			"shipments": map[string]interface{}{"read": true, "write": false, "delete": false},
			"users":     map[string]interface{}{"read": true, "write": false, "delete": false},
			"reports":   map[string]interface{}{"read": false, "write": false},
			"support":   map[string]interface{}{"read": true, "write": true},
			"settings":  map[string]interface{}{"read": false, "write": false},
		}
	case "Dispatcher":
		return domain.Permissions{
			"admin":     false,
			"shipments": map[string]interface{}{"read": true, "write": true, "delete": false},
			"users":     map[string]interface{}{"read": false, "write": false, "delete": false},
			"reports":   map[string]interface{}{"read": false, "write": false},
			"support":   map[string]interface{}{"read": false, "write": false},
			"settings":  map[string]interface{}{"read": false, "write": false},
		}
	default:
		normalized, _ := NormalizePermissions(nil)
		return normalized
	}
}
