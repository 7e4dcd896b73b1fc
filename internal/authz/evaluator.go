// Package authz answers permission questions against the fixed schema. It is
// a pure evaluator: no state is retained between calls and documents are
// never cached.
package authz

import (
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/pkg/errors"
)

// HasPermission reports whether perms grants action on section.
//
// Boolean sections (admin) take no action: pass action == "". Object sections
// require one of their declared actions. An undeclared section, a non-empty
// action on a boolean section, or an undeclared action on an object section is
// a schema violation and fails loudly rather than silently returning false.
// Missing keys default to false.
func HasPermission(perms domain.Permissions, section domain.PermissionSection, action domain.PermissionAction) (bool, error) {
	schema, ok := domain.PermissionSchema[section]
	if !ok {
		return false, &errors.ErrSchemaViolation{Section: string(section)}
	}

	if schema.Boolean {
		if action != "" {
			return false, &errors.ErrSchemaViolation{
				Section: string(section),
				Action:  string(action),
				Message: "section " + string(section) + " is boolean and takes no action",
			}
		}
		granted, _ := perms[string(section)].(bool)
		return granted, nil
	}

	if !actionDeclared(schema, action) {
		return false, &errors.ErrSchemaViolation{Section: string(section), Action: string(action)}
	}

	actions, ok := perms[string(section)].(map[string]interface{})
	if !ok {
		// Absent or malformed section value: fail closed.
		return false, nil
	}
	granted, _ := actions[string(action)].(bool)
	return granted, nil
}

// NormalizePermissions returns a copy of doc in which every schema section and
// action is present, defaulting absent entries to false. Unknown sections,
// unknown actions, and wrongly typed section values are rejected so that a
// stored document never drifts from the schema. Passing nil yields the
// all-false document. Normalization is idempotent.
func NormalizePermissions(doc domain.Permissions) (domain.Permissions, error) {
	for key, value := range doc {
		schema, ok := domain.PermissionSchema[domain.PermissionSection(key)]
		if !ok {
			return nil, &errors.ErrSchemaViolation{Section: key}
		}
		if schema.Boolean {
			if _, ok := value.(bool); !ok {
				return nil, &errors.ErrSchemaViolation{
					Section: key,
					Message: "section " + key + " must be a boolean",
				}
			}
			continue
		}
		actions, ok := value.(map[string]interface{})
		if !ok {
			return nil, &errors.ErrSchemaViolation{
				Section: key,
				Message: "section " + key + " must be an object of action flags",
			}
		}
		for actionKey, actionValue := range actions {
			if !actionDeclared(schema, domain.PermissionAction(actionKey)) {
				return nil, &errors.ErrSchemaViolation{Section: key, Action: actionKey}
			}
			if _, ok := actionValue.(bool); !ok {
				return nil, &errors.ErrSchemaViolation{
					Section: key,
					Action:  actionKey,
					Message: "action " + actionKey + " in section " + key + " must be a boolean",
				}
			}
		}
	}

	normalized := make(domain.Permissions, len(domain.PermissionSchema))
	for section, schema := range domain.PermissionSchema {
		if schema.Boolean {
			granted, _ := doc[string(section)].(bool)
			normalized[string(section)] = granted
			continue
		}
		existing, _ := doc[string(section)].(map[string]interface{})
		actions := make(map[string]interface{}, len(schema.Actions))
		for _, action := range schema.Actions {
			granted, _ := existing[string(action)].(bool)
			actions[string(action)] = granted
		}
		normalized[string(section)] = actions
	}
	return normalized, nil
}

func actionDeclared(schema domain.SectionSchema, action domain.PermissionAction) bool {
	for _, declared := range schema.Actions {
		if declared == action {
			return true
		}
	}
	return false
}
