package auth

import (
	"github.com/example/ahiagboo/internal/datamodels/session"
)

// DecisionKind 路由守卫裁决类型
type DecisionKind int

const (
	// DecisionAllow 放行
	DecisionAllow DecisionKind = iota
	// DecisionPending 会话仍在恢复中，调用方应挂起渲染而不是跳转，
	// 避免启动恢复期间闪一次登录页
	DecisionPending
	// DecisionRedirectLogin 未登录，携带原始路径跳登录页
	DecisionRedirectLogin
	// DecisionRedirectHome 已登录但角色不符，跳回首页
	DecisionRedirectHome
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionAllow:
		return "allow"
	case DecisionPending:
		return "pending"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// Decision 路由守卫裁决。ReturnPath 只在跳登录页时有值，
// 供登录成功后跳回原始页面。
type Decision struct {
	Kind       DecisionKind
	ReturnPath string
}

// Decide 唯一的路由准入判定：纯函数，永不报错，只产出四种裁决之一。
// required 为空表示任何已登录用户均可访问。
func Decide(phase session.Phase, role session.Role, required []session.Role, requestedPath string) Decision {
	switch phase {
	case session.PhaseLoading, session.PhaseAuthenticating:
		return Decision{Kind: DecisionPending}
	case session.PhaseAuthenticated:
		if len(required) == 0 {
			return Decision{Kind: DecisionAllow}
		}
		for _, r := range required {
			if r == role {
				return Decision{Kind: DecisionAllow}
			}
		}
		return Decision{Kind: DecisionRedirectHome}
	default:
		return Decision{Kind: DecisionRedirectLogin, ReturnPath: requestedPath}
	}
}
