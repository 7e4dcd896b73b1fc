package domain

import "testing"

func TestIsProtectedRole(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"Admin", true},
		{"Support", true},
		{"Manager", true},
		{"admin", false}, // case-sensitive exact match
		{"Dispatcher", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsProtectedRole(tc.name); got != tc.want {
			t.Fatalf("IsProtectedRole(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPermissionSchemaShape(t *testing.T) {
	if len(PermissionSchema) != len(SectionOrder) {
		t.Fatalf("SectionOrder must cover the whole schema")
	}
	for _, section := range SectionOrder {
		schema, ok := PermissionSchema[section]
		if !ok {
			t.Fatalf("section %q in SectionOrder but not in schema", section)
		}
		if schema.Boolean && len(schema.Actions) != 0 {
			t.Fatalf("boolean section %q must not declare actions", section)
		}
		if !schema.Boolean && len(schema.Actions) == 0 {
			t.Fatalf("object section %q must declare actions", section)
		}
	}
	if !PermissionSchema[SectionAdmin].Boolean {
		t.Fatalf("admin must be the boolean section")
	}
}
