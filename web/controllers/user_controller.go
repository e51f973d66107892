package controllers

import (
	"github.com/kataras/iris/v12"

	"github.com/example/ahiagboo/internal/datamodels/session"
	"github.com/example/ahiagboo/internal/service"
)

// UserController 会话接口：登录/登出/当前会话状态
type UserController struct {
	sessions *service.SessionService
}

// NewUserController 构造函数，供路由层复用同一套逻辑。
func NewUserController(sessions *service.SessionService) *UserController {
	return &UserController{sessions: sessions}
}

type sessionView struct {
	Phase string        `json:"phase"`
	User  *session.User `json:"user,omitempty"`
}

func viewOf(s session.Session) sessionView {
	return sessionView{Phase: s.Phase.String(), User: s.User}
}

// GetMe 返回当前会话状态。首次访问会触发一次启动恢复：
// 槽位里的 token 有效则直接回到登录态，失效则静默呈现登出态。
func (c *UserController) GetMe(ctx iris.Context) {
	snap := c.sessions.EnsureRestored(ctx.Request().Context(), sessionKey(ctx))
	ctx.JSON(iris.Map{"code": 0, "data": viewOf(snap)})
}

// PostLogin 处理登录
func (c *UserController) PostLogin(ctx iris.Context) {
	var creds session.Credentials
	if err := ctx.ReadJSON(&creds); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	if creds.Email == "" || creds.Password == "" {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "email and password are required"})
		return
	}

	snap, err := c.sessions.Login(ctx.Request().Context(), sessionKey(ctx), creds)
	if err != nil {
		failWith(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": viewOf(snap)})
}

// PostLogout 处理登出，服务端 revoke 在后台 best-effort 进行
func (c *UserController) PostLogout(ctx iris.Context) {
	snap := c.sessions.Logout(ctx.Request().Context(), sessionKey(ctx))
	ctx.JSON(iris.Map{"code": 0, "data": viewOf(snap)})
}
