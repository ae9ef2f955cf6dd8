package service

import (
	"bytes"
	"strings"

	"gorm.io/datatypes"

	"form-service/internal/domain"
	"form-service/internal/dto"
)

// PlannedField is an incoming field payload with its position in the request
type PlannedField struct {
	Index   int
	Payload dto.FieldPayload
}

// Plan is the create / update / soft-delete split of a field edit
type Plan struct {
	Create     []PlannedField
	Update     []PlannedField
	SoftDelete []uint
}

// Reconcile splits the incoming fields against the ids a form already has.
//
// A payload with an empty name is skipped, but its id still counts as present, so the
// field is neither updated nor deactivated. A payload with a positive id is an update;
// anything else is a create. Every existing id not named by some payload is soft-deleted.
func Reconcile(existing []uint, incoming []dto.FieldPayload) Plan {
	var plan Plan
	present := make(map[uint]struct{}, len(incoming))

	for i, p := range incoming {
		if p.ID > 0 {
			present[p.ID] = struct{}{}
		}
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		if p.ID > 0 {
			plan.Update = append(plan.Update, PlannedField{Index: i, Payload: p})
			continue
		}
		plan.Create = append(plan.Create, PlannedField{Index: i, Payload: p})
	}

	seen := make(map[uint]struct{}, len(existing))
	for _, id := range existing {
		if _, ok := present[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		plan.SoftDelete = append(plan.SoftDelete, id)
	}
	return plan
}

// applyFieldPayload copies the allow-listed attributes onto a field.
// Absent flags keep their current value; a new field starts active.
func applyFieldPayload(f *domain.FormField, p dto.FieldPayload) {
	f.Name = strings.TrimSpace(p.Name)
	f.Type = domain.FieldType(p.Type)
	f.Order = p.Order
	if p.Required != nil {
		f.Required = *p.Required
	}
	if p.Active != nil {
		f.Active = *p.Active
	}
	if p.IndexView != nil {
		f.IndexView = *p.IndexView
	}
	if p.Options != nil {
		trimmed := bytes.TrimSpace(p.Options)
		if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			f.Options = nil
		} else {
			f.Options = datatypes.JSON(trimmed)
		}
	}
}

// newFieldFromPayload builds an unsaved field; a client supplied id is never used
func newFieldFromPayload(formID uint, p dto.FieldPayload) *domain.FormField {
	f := &domain.FormField{FormID: formID, Active: true}
	applyFieldPayload(f, p)
	return f
}
