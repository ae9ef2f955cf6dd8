package permission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimsChecker(t *testing.T) {
	checker := NewClaimsChecker()

	tests := []struct {
		name         string
		ctx          context.Context
		wantCreate   bool
		wantEdit7    bool
		wantSettings bool
	}{
		{
			name: "no grants",
			ctx:  context.Background(),
		},
		{
			name:       "create only",
			ctx:        WithGrants(context.Background(), []string{GrantCreateForm}),
			wantCreate: true,
		},
		{
			name:      "edit form 7",
			ctx:       WithGrants(context.Background(), []string{EditFormGrant(7), SettingsGrant(8)}),
			wantEdit7: true,
		},
		{
			name:         "admin",
			ctx:          WithGrants(context.Background(), []string{GrantAdmin}),
			wantCreate:   true,
			wantEdit7:    true,
			wantSettings: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCreate, checker.CanCreateForm(tt.ctx))
			assert.Equal(t, tt.wantEdit7, checker.CanEditForm(tt.ctx, 7))
			assert.Equal(t, tt.wantSettings, checker.CanChangeSettings(tt.ctx, 7))
		})
	}
}

func TestGrantNames(t *testing.T) {
	assert.Equal(t, "form:edit:12", EditFormGrant(12))
	assert.Equal(t, "form:settings:3", SettingsGrant(3))
}
