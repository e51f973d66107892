package service

import (
	"errors"

	"github.com/example/ahiagboo/internal/api"
)

// 结算/会话核心错误。校验类错误在任何网络调用之前产生。
var (
	// ErrEmptyCart 空购物车直接拒绝，不发起网络请求
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidShipping 收货信息缺失
	ErrInvalidShipping = errors.New("shipping information is incomplete")
	// ErrNotAuthenticated 会话未登录
	ErrNotAuthenticated = errors.New("session is not authenticated")
	// ErrSubmissionInFlight 同一会话已有一笔订单提交在途，立即拒绝而不是排队
	ErrSubmissionInFlight = errors.New("an order submission is already in flight")
	// ErrInvalidCredentials 登录凭据被上游拒绝
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ErrorKind 错误分类，供视图层选择展示方式与状态码
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindAuth
	KindNetwork
	KindConflict
	KindUpstream
)

// Classify 将结算/会话错误归入固定的几类。
// 非 2xx 且非鉴权类的上游响应归为 KindUpstream（带服务端描述），
// 传输层失败归为 KindNetwork。
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrInvalidShipping):
		return KindValidation
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrInvalidCredentials):
		return KindAuth
	case errors.Is(err, ErrSubmissionInFlight):
		return KindConflict
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.IsAuth() {
			return KindAuth
		}
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return KindValidation
		}
		return KindUpstream
	}
	return KindNetwork
}
