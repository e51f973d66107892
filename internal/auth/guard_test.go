package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/ahiagboo/internal/datamodels/session"
)

func TestDecide(t *testing.T) {
	buyerOnly := []session.Role{session.RoleBuyer}
	artisanOnly := []session.Role{session.RoleArtisan}

	cases := []struct {
		name     string
		phase    session.Phase
		role     session.Role
		required []session.Role
		path     string
		want     Decision
	}{
		{
			name:  "loading挂起",
			phase: session.PhaseLoading,
			path:  "/checkout",
			want:  Decision{Kind: DecisionPending},
		},
		{
			name:  "authenticating挂起",
			phase: session.PhaseAuthenticating,
			path:  "/checkout",
			want:  Decision{Kind: DecisionPending},
		},
		{
			name:  "未登录跳登录页并带回原路径",
			phase: session.PhaseUnauthenticated,
			path:  "/checkout",
			want:  Decision{Kind: DecisionRedirectLogin, ReturnPath: "/checkout"},
		},
		{
			name:     "未登录时角色要求不影响裁决",
			phase:    session.PhaseUnauthenticated,
			required: artisanOnly,
			path:     "/dashboard",
			want:     Decision{Kind: DecisionRedirectLogin, ReturnPath: "/dashboard"},
		},
		{
			name:  "已登录无角色要求放行",
			phase: session.PhaseAuthenticated,
			role:  session.RoleBuyer,
			path:  "/checkout",
			want:  Decision{Kind: DecisionAllow},
		},
		{
			name:     "角色匹配放行",
			phase:    session.PhaseAuthenticated,
			role:     session.RoleArtisan,
			required: artisanOnly,
			path:     "/dashboard",
			want:     Decision{Kind: DecisionAllow},
		},
		{
			name:     "角色不符跳首页而非登录页",
			phase:    session.PhaseAuthenticated,
			role:     session.RoleBuyer,
			required: artisanOnly,
			path:     "/dashboard",
			want:     Decision{Kind: DecisionRedirectHome},
		},
		{
			name:     "多角色要求命中其一即放行",
			phase:    session.PhaseAuthenticated,
			role:     session.RoleBuyer,
			required: []session.Role{session.RoleArtisan, session.RoleBuyer},
			path:     "/orders/1",
			want:     Decision{Kind: DecisionAllow},
		},
		{
			name:     "买家限定页拦截手艺人",
			phase:    session.PhaseAuthenticated,
			role:     session.RoleArtisan,
			required: buyerOnly,
			path:     "/checkout",
			want:     Decision{Kind: DecisionRedirectHome},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Decide(tc.phase, tc.role, tc.required, tc.path)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecisionKindString(t *testing.T) {
	assert.Equal(t, "allow", DecisionAllow.String())
	assert.Equal(t, "pending", DecisionPending.String())
	assert.Equal(t, "redirect_login", DecisionRedirectLogin.String())
	assert.Equal(t, "redirect_home", DecisionRedirectHome.String())
}
