package session

import "context"

// Role 用户角色
type Role string

const (
	RoleBuyer   Role = "buyer"
	RoleArtisan Role = "artisan"
)

// Phase 会话所处阶段
type Phase int

const (
	// PhaseLoading 启动恢复中（持久化 token 尚未完成校验），
	// 与 Unauthenticated 严格区分，避免恢复期间误跳登录页
	PhaseLoading Phase = iota
	PhaseUnauthenticated
	PhaseAuthenticating
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// User 上游返回的当前用户
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Session 某个浏览会话当前的认证状态快照。
// 不变量：Phase == PhaseAuthenticated 当且仅当 Token 与 User 同时存在。
type Session struct {
	Phase Phase
	Token string
	User  *User
}

// Credentials 登录凭据
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenSlot 持久化 token 槽位：每个浏览会话一个可覆写的槽，
// 只由会话服务写入（登录/登出/恢复失败），启动恢复时读取。
type TokenSlot interface {
	Get(ctx context.Context, sessionKey string) (string, error)
	Set(ctx context.Context, sessionKey, token string) error
	Delete(ctx context.Context, sessionKey string) error
}
