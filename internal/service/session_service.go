package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/ahiagboo/internal/api"
	"github.com/example/ahiagboo/internal/auth"
	"github.com/example/ahiagboo/internal/datamodels/session"
)

// AuthAPI 外部鉴权接口
type AuthAPI interface {
	Login(ctx context.Context, creds session.Credentials) (string, *session.User, error)
	CurrentUser(ctx context.Context, token string) (*session.User, error)
	Revoke(ctx context.Context, token string) error
}

// sessionState 单个浏览会话的认证状态机。
// seq 随每次显式操作（登录/登出）递增；异步落地的恢复结果
// 只有在 seq 未变时才允许写回，保证按逻辑顺序而非到达顺序生效。
type sessionState struct {
	seq      uint64
	phase    session.Phase
	token    string
	user     *session.User
	restored bool
}

// SessionService 管理各浏览会话的认证状态。
// token 槽位是唯一跨进程存活的状态，只由本服务写入。
type SessionService struct {
	mu     sync.Mutex
	authc  AuthAPI
	slot   session.TokenSlot
	cache  *auth.UserCache
	states map[string]*sessionState
}

// NewSessionService 创建会话服务。cache 可以为 nil（跳过 current-user 缓存）。
func NewSessionService(authc AuthAPI, slot session.TokenSlot, cache *auth.UserCache) *SessionService {
	return &SessionService{
		authc:  authc,
		slot:   slot,
		cache:  cache,
		states: make(map[string]*sessionState),
	}
}

func (s *SessionService) stateLocked(key string) *sessionState {
	st, ok := s.states[key]
	if !ok {
		// 首次接触：在持久化凭据完成校验前停留在 Loading，
		// 不能和 Unauthenticated 混为一谈
		st = &sessionState{phase: session.PhaseLoading}
		s.states[key] = st
	}
	return st
}

// Current 读取会话快照
func (s *SessionService) Current(key string) session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotSessionLocked(s.stateLocked(key))
}

// EnsureRestored 启动恢复：槽位里有 token 就去上游校验，
// 成功转 Authenticated，任何失败都静默收敛到 Unauthenticated 并清掉槽位
// （过期会话退回登出态是正常结果，不是故障）。恢复结果如果晚于一次显式
// 登录/登出落地，直接丢弃。
func (s *SessionService) EnsureRestored(ctx context.Context, key string) session.Session {
	s.mu.Lock()
	st := s.stateLocked(key)
	if st.restored {
		snap := snapshotSessionLocked(st)
		s.mu.Unlock()
		return snap
	}
	st.restored = true
	st.phase = session.PhaseLoading
	seq := st.seq
	s.mu.Unlock()

	token, err := s.slot.Get(ctx, key)
	if err != nil || token == "" {
		if err != nil {
			zap.L().Warn("read token slot failed", zap.Error(err))
		}
		return s.settleRestore(ctx, key, seq, "", nil)
	}

	// 本地能看出已过期的 token 不再打上游
	if auth.TokenExpired(token, time.Now()) {
		_ = s.slot.Delete(ctx, key)
		return s.settleRestore(ctx, key, seq, "", nil)
	}

	if s.cache != nil {
		if u, ok, err := s.cache.Get(ctx, token); err == nil && ok {
			return s.settleRestore(ctx, key, seq, token, u)
		}
	}

	u, err := s.authc.CurrentUser(ctx, token)
	if err != nil {
		// 凭据失效或网络故障：静默呈现登出态
		zap.L().Debug("session restore failed", zap.Error(err))
		_ = s.slot.Delete(ctx, key)
		if s.cache != nil {
			_ = s.cache.Invalidate(ctx, token)
		}
		return s.settleRestore(ctx, key, seq, "", nil)
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, token, u)
	}
	return s.settleRestore(ctx, key, seq, token, u)
}

// settleRestore 恢复结果落地。seq 已变说明期间发生过显式登录/登出，
// 这份结果作废（last-writer-wins 按逻辑顺序）。
func (s *SessionService) settleRestore(ctx context.Context, key string, seq uint64, token string, u *session.User) session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stateLocked(key)
	if st.seq != seq {
		GetMonitor().RecordRestoreDiscarded()
		return snapshotSessionLocked(st)
	}
	if token != "" && u != nil {
		st.token = token
		st.user = u
		st.phase = session.PhaseAuthenticated
	} else {
		st.token = ""
		st.user = nil
		st.phase = session.PhaseUnauthenticated
	}
	return snapshotSessionLocked(st)
}

// Login 提交凭据。成功后 token 写入槽位并转 Authenticated，
// 失败维持 Unauthenticated 并把错误交给调用方展示。
func (s *SessionService) Login(ctx context.Context, key string, creds session.Credentials) (session.Session, error) {
	s.mu.Lock()
	st := s.stateLocked(key)
	st.seq++
	mySeq := st.seq
	st.restored = true
	st.phase = session.PhaseAuthenticating
	s.mu.Unlock()

	token, u, err := s.authc.Login(ctx, creds)

	s.mu.Lock()
	defer s.mu.Unlock()
	st = s.stateLocked(key)
	if st.seq != mySeq {
		// 等待期间来了更新的显式操作，这次结果作废
		return snapshotSessionLocked(st), nil
	}
	if err != nil {
		st.token = ""
		st.user = nil
		st.phase = session.PhaseUnauthenticated
		GetMonitor().RecordLoginFailure()
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.IsAuth() {
			return snapshotSessionLocked(st), fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.Message)
		}
		return snapshotSessionLocked(st), err
	}

	st.token = token
	st.user = u
	st.phase = session.PhaseAuthenticated
	GetMonitor().RecordLoginSuccess()

	if err := s.slot.Set(ctx, key, token); err != nil {
		// 槽位写失败只影响下次启动的恢复，本次会话照常可用
		zap.L().Warn("persist token slot failed", zap.Error(err))
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, token, u)
	}
	return snapshotSessionLocked(st), nil
}

// Logout 清空会话并删除槽位，立即转 Unauthenticated。
// 服务端 revoke 是 best-effort，不阻塞登出本身。
func (s *SessionService) Logout(ctx context.Context, key string) session.Session {
	s.mu.Lock()
	st := s.stateLocked(key)
	st.seq++
	st.restored = true
	token := st.token
	st.token = ""
	st.user = nil
	st.phase = session.PhaseUnauthenticated
	snap := snapshotSessionLocked(st)
	s.mu.Unlock()

	if err := s.slot.Delete(ctx, key); err != nil {
		zap.L().Warn("clear token slot failed", zap.Error(err))
	}
	if token != "" {
		if s.cache != nil {
			_ = s.cache.Invalidate(ctx, token)
		}
		go func() {
			revokeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.authc.Revoke(revokeCtx, token); err != nil {
				zap.L().Debug("token revoke failed", zap.Error(err))
			}
		}()
	}
	return snap
}

// Drop 浏览会话结束时释放内存状态（槽位保留，下次恢复再用）
func (s *SessionService) Drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, key)
}

func snapshotSessionLocked(st *sessionState) session.Session {
	snap := session.Session{
		Phase: st.phase,
		Token: st.token,
	}
	if st.user != nil {
		u := *st.user
		snap.User = &u
	}
	return snap
}
