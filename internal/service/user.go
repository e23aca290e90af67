package service

import (
	"strings"
	"time"

	"github.com/d7708945/scammail/internal/auth"
	"github.com/d7708945/scammail/internal/metrics"
	"github.com/d7708945/scammail/internal/models"
	"github.com/d7708945/scammail/internal/notify"
	"github.com/d7708945/scammail/internal/store"
)

// VerificationCode 是下发给所有用户的固定验证码。
// 验证码随注册响应直接返回，不走任何短信通道，这是对外行为契约的一部分。
const VerificationCode = "1111"

// UserService 封装注册、验证与令牌解析的业务逻辑。
type UserService struct {
	store    *store.Store
	notifier *notify.Notifier
}

func NewUserService(st *store.Store, n *notify.Notifier) *UserService {
	return &UserService{store: st, notifier: n}
}

// RegisterResult 注册成功后返回的数据。
type RegisterResult struct {
	UserID string `json:"user_id"`
	Code   string `json:"code"`
}

// Register 按手机号注册用户，重复注册返回同一个用户 id。
// 只有真正创建新用户时才上报管理通知，上报失败不影响本次调用。
func (s *UserService) Register(phone string) (*RegisterResult, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	user, created := s.store.FindOrCreateUser(phone)
	if created {
		metrics.RegistrationsTotal.Inc()
		s.notifier.Registration(phone, time.Now().UTC())
	}
	return &RegisterResult{UserID: user.ID, Code: VerificationCode}, nil
}

// VerifyResult 验证成功后返回的数据。
type VerifyResult struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// Verify 校验验证码并把用户置为已验证，重复验证保持成功。
// 未注册的手机号优先返回 ErrNotRegistered，验证码不匹配返回 ErrInvalidCode。
func (s *UserService) Verify(phone, code string) (*VerifyResult, error) {
	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)
	if _, ok := s.store.UserByPhone(phone); !ok {
		return nil, ErrNotRegistered
	}
	if code != VerificationCode {
		return nil, ErrInvalidCode
	}
	user, ok := s.store.MarkVerified(phone)
	if !ok {
		// 用户从不删除，到这里只可能是内部不一致。
		return nil, ErrNotRegistered
	}
	return &VerifyResult{UserID: user.ID, Token: auth.TokenFor(user.ID)}, nil
}

// ResolveToken 解析令牌并返回已验证用户的 id；
// id 不存在或用户未验证时返回 false。
func (s *UserService) ResolveToken(token string) (string, bool) {
	id := auth.UserIDFromToken(token)
	if id == "" || !s.store.IsVerifiedUser(id) {
		return "", false
	}
	return id, true
}

// UserByPhone 暴露给只读查询使用。
func (s *UserService) UserByPhone(phone string) (models.User, bool) {
	return s.store.UserByPhone(phone)
}
