package servicedef

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/TykTechnologies/servicemigration/internal/errors"
)

var (
	ErrNoTenant        = errors.NewClassified(errors.ClassStructural, "no tenant service found")
	ErrMultipleTenants = errors.NewClassified(errors.ClassStructural, "more than one tenant service found")
	ErrDuplicateID     = errors.NewClassified(errors.ClassStructural, "duplicate service ID")
	ErrMissingParent   = errors.NewClassified(errors.ClassStructural, "parent service not found")
	ErrCycle           = errors.NewClassified(errors.ClassStructural, "cycle detected in service tree")
	ErrNilService      = errors.NewClassified(errors.ClassStructural, "service is nil")
)

// ValidationResult collects the errors found by a ValidationRuleSet.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

// Append records err and marks the result invalid.
func (v *ValidationResult) Append(err error) {
	v.Errors = append(v.Errors, err)
	v.Valid = false
}

// HasErrors reports whether any rule failed.
func (v ValidationResult) HasErrors() bool {
	return v.ErrorCount() > 0
}

// FirstError returns the first recorded error, or nil.
func (v ValidationResult) FirstError() error {
	if v.ErrorCount() == 0 {
		return nil
	}

	return v.ErrorAt(0)
}

// ErrorAt returns the error at index i, or nil when out of range.
func (v ValidationResult) ErrorAt(i int) error {
	if i < 0 || v.ErrorCount() <= i {
		return nil
	}

	return v.Errors[i]
}

// ErrorCount returns the number of recorded errors.
func (v ValidationResult) ErrorCount() int {
	return len(v.Errors)
}

// Err returns all recorded errors combined, or nil for a valid result.
func (v ValidationResult) Err() error {
	if !v.HasErrors() {
		return nil
	}

	combined := &multierror.Error{ErrorFormat: errors.Formatter}
	for _, err := range v.Errors {
		combined = multierror.Append(combined, err)
	}
	return combined
}

// ValidationRule checks one structural property of a service list.
type ValidationRule interface {
	Validate(services []*Service, validationResult *ValidationResult)
}

// ValidationRuleSet is an ordered list of rules.
type ValidationRuleSet []ValidationRule

// DefaultValidationRuleSet is run on every loaded document.
var DefaultValidationRuleSet = ValidationRuleSet{
	&RuleNoNilServices{},
	&RuleSingleTenant{},
	&RuleUniqueIDs{},
	&RuleParentsExist{},
	&RuleAcyclic{},
}

// Validate runs every rule of the set against services.
func Validate(services []*Service, ruleSet ValidationRuleSet) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: nil,
	}

	for _, rule := range ruleSet {
		rule.Validate(services, &result)
	}

	return result
}

// RuleNoNilServices rejects nil entries. The other rules skip them.
type RuleNoNilServices struct{}

func (r *RuleNoNilServices) Validate(services []*Service, validationResult *ValidationResult) {
	for i, svc := range services {
		if svc == nil {
			validationResult.Append(fmt.Errorf("service %d: %w", i, ErrNilService))
		}
	}
}

// RuleSingleTenant requires exactly one service without a parent.
type RuleSingleTenant struct{}

func (r *RuleSingleTenant) Validate(services []*Service, validationResult *ValidationResult) {
	var roots []string
	for _, svc := range services {
		if svc == nil {
			continue
		}
		if svc.ParentID() == "" {
			roots = append(roots, svc.Name)
		}
	}

	switch len(roots) {
	case 0:
		validationResult.Append(ErrNoTenant)
	case 1:
	default:
		validationResult.Append(fmt.Errorf("%w: %q", ErrMultipleTenants, roots))
	}
}

// RuleUniqueIDs requires identifiers to be unique. Uncommitted services have
// no identifier and are skipped.
type RuleUniqueIDs struct{}

func (r *RuleUniqueIDs) Validate(services []*Service, validationResult *ValidationResult) {
	seen := make(map[string]bool, len(services))
	for _, svc := range services {
		if svc == nil {
			continue
		}
		id := svc.ID()
		if id == "" {
			continue
		}
		if seen[id] {
			validationResult.Append(fmt.Errorf("%w: %s", ErrDuplicateID, id))
			continue
		}
		seen[id] = true
	}
}

// RuleParentsExist requires every parent reference to resolve to a service
// in the list.
type RuleParentsExist struct{}

func (r *RuleParentsExist) Validate(services []*Service, validationResult *ValidationResult) {
	ids := serviceIDs(services)
	for _, svc := range services {
		if svc == nil {
			continue
		}
		parentID := svc.ParentID()
		if parentID == "" || ids[parentID] {
			continue
		}
		validationResult.Append(fmt.Errorf("%w: service %q references %s", ErrMissingParent, svc.Name, parentID))
	}
}

// RuleAcyclic requires every parent chain to end at a root.
type RuleAcyclic struct{}

func (r *RuleAcyclic) Validate(services []*Service, validationResult *ValidationResult) {
	parents := make(map[string]string, len(services))
	for _, svc := range services {
		if svc == nil {
			continue
		}
		if id := svc.ID(); id != "" {
			parents[id] = svc.ParentID()
		}
	}

	reported := make(map[string]bool)
	for _, svc := range services {
		if svc == nil {
			continue
		}
		visited := map[string]bool{}
		for id := svc.ParentID(); id != ""; id = parents[id] {
			if visited[id] {
				if !reported[id] {
					for member := range visited {
						reported[member] = true
					}
					validationResult.Append(fmt.Errorf("%w: service %q", ErrCycle, svc.Name))
				}
				break
			}
			visited[id] = true
		}
	}
}

func serviceIDs(services []*Service) map[string]bool {
	ids := make(map[string]bool, len(services))
	for _, svc := range services {
		if svc != nil && svc.ID() != "" {
			ids[svc.ID()] = true
		}
	}
	return ids
}
