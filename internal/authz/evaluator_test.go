package authz

import (
	"testing"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/pkg/errors"
)

func dispatcherPermissions() domain.Permissions {
	return domain.Permissions{
		"admin":     false,
		"shipments": map[string]interface{}{"read": true, "write": true, "delete": false},
		"users":     map[string]interface{}{"read": false, "write": false, "delete": false},
		"reports":   map[string]interface{}{"read": false, "write": false},
		"support":   map[string]interface{}{"read": false, "write": false},
		"settings":  map[string]interface{}{"read": false, "write": false},
	}
}

func TestHasPermissionObjectSection(t *testing.T) {
	perms := dispatcherPermissions()

	granted, err := HasPermission(perms, domain.SectionShipments, domain.ActionWrite)
	if err != nil {
		t.Fatalf("shipments.write: %v", err)
	}
	if !granted {
		t.Fatalf("dispatcher should have shipments.write")
	}

	granted, err = HasPermission(perms, domain.SectionShipments, domain.ActionDelete)
	if err != nil {
		t.Fatalf("shipments.delete: %v", err)
	}
	if granted {
		t.Fatalf("dispatcher should not have shipments.delete")
	}
}

func TestHasPermissionBooleanSection(t *testing.T) {
	perms := domain.Permissions{"admin": true}

	granted, err := HasPermission(perms, domain.SectionAdmin, "")
	if err != nil {
		t.Fatalf("admin: %v", err)
	}
	if !granted {
		t.Fatalf("admin flag should be returned directly")
	}

	// Passing an action to a boolean section is a contract violation.
	if _, err := HasPermission(perms, domain.SectionAdmin, domain.ActionRead); err == nil {
		t.Fatalf("expected schema violation for action on boolean section")
	}
}

func TestHasPermissionMissingKeysDefaultFalse(t *testing.T) {
	granted, err := HasPermission(domain.Permissions{}, domain.SectionShipments, domain.ActionRead)
	if err != nil {
		t.Fatalf("missing section: %v", err)
	}
	if granted {
		t.Fatalf("missing section must default to false")
	}

	granted, err = HasPermission(domain.Permissions{
		"shipments": map[string]interface{}{"read": true},
	}, domain.SectionShipments, domain.ActionDelete)
	if err != nil {
		t.Fatalf("missing action: %v", err)
	}
	if granted {
		t.Fatalf("missing action must default to false")
	}
}

func TestHasPermissionUndeclaredFailsLoudly(t *testing.T) {
	perms := dispatcherPermissions()

	if _, err := HasPermission(perms, "billing", domain.ActionRead); err == nil {
		t.Fatalf("unknown section should fail, not silently return false")
	} else if _, ok := err.(*errors.ErrSchemaViolation); !ok {
		t.Fatalf("unknown section should be a schema violation, got %T", err)
	}

	// reports declares only read/write; delete is undeclared.
	if _, err := HasPermission(perms, domain.SectionReports, domain.ActionDelete); err == nil {
		t.Fatalf("undeclared action should fail, not silently return false")
	}
}

func TestNormalizePermissionsFillsDefaults(t *testing.T) {
	normalized, err := NormalizePermissions(domain.Permissions{
		"shipments": map[string]interface{}{"read": true},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	for section, schema := range domain.PermissionSchema {
		value, ok := normalized[string(section)]
		if !ok {
			t.Fatalf("normalized document missing section %q", section)
		}
		if schema.Boolean {
			if _, ok := value.(bool); !ok {
				t.Fatalf("section %q should be a bool", section)
			}
			continue
		}
		actions, ok := value.(map[string]interface{})
		if !ok {
			t.Fatalf("section %q should be an action map", section)
		}
		if len(actions) != len(schema.Actions) {
			t.Fatalf("section %q should carry all declared actions", section)
		}
	}

	granted, err := HasPermission(normalized, domain.SectionShipments, domain.ActionRead)
	if err != nil || !granted {
		t.Fatalf("normalization must preserve granted flags (granted=%v err=%v)", granted, err)
	}
	granted, err = HasPermission(normalized, domain.SectionShipments, domain.ActionDelete)
	if err != nil || granted {
		t.Fatalf("absent actions must default to false (granted=%v err=%v)", granted, err)
	}
}

func TestNormalizePermissionsIsIdempotent(t *testing.T) {
	first, err := NormalizePermissions(dispatcherPermissions())
	if err != nil {
		t.Fatalf("first normalize: %v", err)
	}
	second, err := NormalizePermissions(first)
	if err != nil {
		t.Fatalf("second normalize: %v", err)
	}
	for key := range first {
		switch want := first[key].(type) {
		case bool:
			if got, ok := second[key].(bool); !ok || got != want {
				t.Fatalf("section %q changed on renormalization", key)
			}
		case map[string]interface{}:
			got, ok := second[key].(map[string]interface{})
			if !ok {
				t.Fatalf("section %q changed type on renormalization", key)
			}
			for action := range want {
				if got[action] != want[action] {
					t.Fatalf("section %q action %q changed on renormalization", key, action)
				}
			}
		}
	}
}

func TestNormalizePermissionsRejectsUnknownKeys(t *testing.T) {
	if _, err := NormalizePermissions(domain.Permissions{"billing": true}); err == nil {
		t.Fatalf("unknown section must be rejected")
	}
	if _, err := NormalizePermissions(domain.Permissions{
		"shipments": map[string]interface{}{"approve": true},
	}); err == nil {
		t.Fatalf("unknown action must be rejected")
	}
	if _, err := NormalizePermissions(domain.Permissions{"admin": "yes"}); err == nil {
		t.Fatalf("wrongly typed section value must be rejected")
	}
}

func TestDefaultRolePermissionsMatchSchema(t *testing.T) {
	for _, name := range []string{"Admin", "Manager", "Support", "Dispatcher", "Unknown"} {
		doc := DefaultRolePermissions(name)
		if _, err := NormalizePermissions(doc); err != nil {
			t.Fatalf("default permissions for %q violate the schema: %v", name, err)
		}
	}

	admin := DefaultRolePermissions("Admin")
	granted, err := HasPermission(admin, domain.SectionAdmin, "")
	if err != nil || !granted {
		t.Fatalf("Admin seed should grant the admin flag")
	}
}
