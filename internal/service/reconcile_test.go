package service

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"form-service/internal/dto"
)

// payloadsFrom builds payloads from generated ids and name flags; id 0 means a new field
func payloadsFrom(ids []uint, named []bool) []dto.FieldPayload {
	payloads := make([]dto.FieldPayload, len(ids))
	for i, id := range ids {
		p := dto.FieldPayload{ID: id, Type: "text"}
		if i < len(named) && named[i] {
			p.Name = "f"
		}
		payloads[i] = p
	}
	return payloads
}

// For any existing id set E and payload list P, the soft-delete set is E minus the ids named in P
func TestProperty_SoftDeleteIsSetDifference(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("toSoftDelete = E \\ ids(P)", prop.ForAll(
		func(existing []uint, incoming []uint, named []bool) bool {
			plan := Reconcile(existing, payloadsFrom(incoming, named))

			inP := map[uint]bool{}
			for _, id := range incoming {
				if id > 0 {
					inP[id] = true
				}
			}
			want := map[uint]bool{}
			for _, id := range existing {
				if !inP[id] {
					want[id] = true
				}
			}

			if len(plan.SoftDelete) != len(want) {
				return false
			}
			for _, id := range plan.SoftDelete {
				if !want[id] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UIntRange(1, 30)),
		gen.SliceOf(gen.UIntRange(0, 30)),
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}

// Payloads with an empty name are never created or updated, and their id is never soft-deleted
func TestProperty_EmptyNamesAreExcluded(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("empty-name payloads have no effect", prop.ForAll(
		func(existing []uint, incoming []uint, named []bool) bool {
			payloads := payloadsFrom(incoming, named)
			plan := Reconcile(existing, payloads)

			for _, pf := range append(append([]PlannedField{}, plan.Create...), plan.Update...) {
				if pf.Payload.Name == "" {
					return false
				}
			}
			deleted := map[uint]bool{}
			for _, id := range plan.SoftDelete {
				deleted[id] = true
			}
			for _, p := range payloads {
				if p.Name == "" && p.ID > 0 && deleted[p.ID] {
					return false
				}
			}
			// every named payload lands in exactly one bucket
			namedCount := 0
			for _, p := range payloads {
				if p.Name != "" {
					namedCount++
				}
			}
			return len(plan.Create)+len(plan.Update) == namedCount
		},
		gen.SliceOf(gen.UIntRange(1, 30)),
		gen.SliceOf(gen.UIntRange(0, 30)),
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}

// Reconciling the same input twice gives the same plan
func TestProperty_ReconcileIsDeterministic(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("same input, same plan", prop.ForAll(
		func(existing []uint, incoming []uint, named []bool) bool {
			payloads := payloadsFrom(incoming, named)
			a := Reconcile(existing, payloads)
			b := Reconcile(existing, payloads)
			return assert.ObjectsAreEqual(a, b)
		},
		gen.SliceOf(gen.UIntRange(1, 20)),
		gen.SliceOf(gen.UIntRange(0, 20)),
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestReconcile_Scenarios(t *testing.T) {
	t.Run("removed field is soft-deleted", func(t *testing.T) {
		plan := Reconcile([]uint{1, 2, 3}, []dto.FieldPayload{
			{ID: 1, Name: "a", Type: "text"},
			{ID: 3, Name: "c", Type: "text"},
		})
		assert.Equal(t, []uint{2}, plan.SoftDelete)
		assert.Len(t, plan.Update, 2)
		assert.Empty(t, plan.Create)
	})

	t.Run("empty name keeps the field", func(t *testing.T) {
		plan := Reconcile([]uint{5}, []dto.FieldPayload{{ID: 5, Name: "  ", Type: "text"}})
		assert.Empty(t, plan.SoftDelete)
		assert.Empty(t, plan.Update)
		assert.Empty(t, plan.Create)
	})

	t.Run("new fields keep their request position", func(t *testing.T) {
		plan := Reconcile(nil, []dto.FieldPayload{
			{Name: "skip"},
			{Name: "", Type: "text"},
			{Name: "b", Type: "text"},
		})
		assert.Equal(t, []int{0, 2}, []int{plan.Create[0].Index, plan.Create[1].Index})
	})

	t.Run("duplicate existing ids are deactivated once", func(t *testing.T) {
		plan := Reconcile([]uint{4, 4}, nil)
		assert.Equal(t, []uint{4}, plan.SoftDelete)
	})
}
