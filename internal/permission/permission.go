// Package permission answers the three form gates from the grants carried in the request context.
package permission

import (
	"context"
	"fmt"
)

// Grant names carried in the "permissions" claim
const (
	GrantAdmin      = "admin"
	GrantCreateForm = "form:create"
)

// EditFormGrant allows reading entries of and saving a form
func EditFormGrant(formID uint) string {
	return fmt.Sprintf("form:edit:%d", formID)
}

// SettingsGrant allows opening the settings of a form
func SettingsGrant(formID uint) string {
	return fmt.Sprintf("form:settings:%d", formID)
}

// Checker gates the mutating and administrative operations
type Checker interface {
	CanCreateForm(ctx context.Context) bool
	CanEditForm(ctx context.Context, formID uint) bool
	CanChangeSettings(ctx context.Context, formID uint) bool
}

type grantsKey struct{}

// WithGrants stores the caller's grants in the context
func WithGrants(ctx context.Context, grants []string) context.Context {
	set := make(map[string]struct{}, len(grants))
	for _, g := range grants {
		set[g] = struct{}{}
	}
	return context.WithValue(ctx, grantsKey{}, set)
}

func has(ctx context.Context, grant string) bool {
	set, ok := ctx.Value(grantsKey{}).(map[string]struct{})
	if !ok {
		return false
	}
	if _, ok := set[GrantAdmin]; ok {
		return true
	}
	_, ok = set[grant]
	return ok
}

// ClaimsChecker checks the grants placed in the context by the auth middleware
type ClaimsChecker struct{}

// NewClaimsChecker creates a Checker backed by token grants
func NewClaimsChecker() *ClaimsChecker {
	return &ClaimsChecker{}
}

func (ClaimsChecker) CanCreateForm(ctx context.Context) bool {
	return has(ctx, GrantCreateForm)
}

func (ClaimsChecker) CanEditForm(ctx context.Context, formID uint) bool {
	return has(ctx, EditFormGrant(formID))
}

func (ClaimsChecker) CanChangeSettings(ctx context.Context, formID uint) bool {
	return has(ctx, SettingsGrant(formID))
}
