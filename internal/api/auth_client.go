package api

import (
	"context"
	"net/http"
	"time"

	"github.com/example/ahiagboo/internal/datamodels/session"
)

// AuthClient 调用外部商城的登录/当前用户接口
type AuthClient struct {
	client
}

// NewAuthClient 创建鉴权客户端
func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{client: newClient(baseURL, timeout)}
}

type loginResponse struct {
	Token string        `json:"token"`
	User  *session.User `json:"user"`
}

// Login 提交凭据，成功时返回 token 与用户信息
func (c *AuthClient) Login(ctx context.Context, creds session.Credentials) (string, *session.User, error) {
	var resp loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", creds, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

// CurrentUser 用 bearer token 换当前用户，401/403 代表凭据已失效
func (c *AuthClient) CurrentUser(ctx context.Context, token string) (*session.User, error) {
	var u session.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Revoke 通知服务端注销 token。调用方按 best-effort 处理，失败不阻塞登出。
func (c *AuthClient) Revoke(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}
