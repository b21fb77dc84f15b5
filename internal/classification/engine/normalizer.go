package engine

import (
	"fmt"
	"sort"

	"regent/internal/classification/models"
	dErrors "regent/pkg/domain-errors"
)

// Input is the variable flag bag a caller submits for normalization.
type Input struct {
	Role            string
	InstitutionType string
	UseCaseID       string
	Flags           map[string]any
}

// Normalize turns the flag bag into one canonical, immutable SystemProfile.
//
// Rules:
//   - Role is required and must be a known enum value; violations are
//     field-keyed validation errors, fatal to the call.
//   - Boolean flags must be booleans. A wrongly typed value for a registered
//     field is a validation error, never silently defaulted, because gate and
//     matcher decisions depend on it. An absent flag reads false.
//   - Unregistered flag names are ignored with a warning so callers notice
//     typos without failing the whole classification.
func Normalize(in Input) (models.SystemProfile, []string, error) {
	fieldErrs := map[string]string{}
	var warnings []string

	role := models.Role(in.Role)
	if in.Role == "" {
		fieldErrs["role"] = "role is required"
	} else if !role.IsValid() {
		fieldErrs["role"] = fmt.Sprintf("unknown role %q", in.Role)
	}

	institution := models.InstitutionType(in.InstitutionType)
	if in.InstitutionType == "" {
		institution = models.InstitutionOther
	}

	profile := models.SystemProfile{
		Role:            role,
		InstitutionType: institution,
		UseCaseID:       in.UseCaseID,
	}

	// Sorted iteration keeps warning order deterministic across calls.
	names := make([]string, 0, len(in.Flags))
	for name := range in.Flags {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		raw := in.Flags[name]
		field, known := models.LookupBoolField(name)
		if !known {
			warnings = append(warnings, fmt.Sprintf("unknown profile field %q ignored", name))
			continue
		}
		v, ok := raw.(bool)
		if !ok {
			fieldErrs[name] = fmt.Sprintf("field %q must be a boolean", name)
			continue
		}
		field.Set(&profile, v)
	}

	if len(fieldErrs) > 0 {
		return models.SystemProfile{}, nil, dErrors.NewValidation("invalid system profile", fieldErrs)
	}
	return profile, warnings, nil
}
