package store

import (
	"sync"
	"time"

	"github.com/d7708945/scammail/internal/models"

	"github.com/google/uuid"
)

// Window 是 Recent 对外暴露的最大消息条数。
const Window = 200

// maxBacklog 限制底层日志长度，超出后丢弃最旧的消息。
// 始终远大于 Window，读窗口语义不受影响。
const maxBacklog = Window * 10

// Store 持有手机号到用户的映射和追加式消息日志，进程生命周期内有效，
// 所有访问经由互斥锁。
type Store struct {
	mu       sync.RWMutex
	users    map[string]*models.User // phone -> user
	messages []models.Message
}

func New() *Store {
	return &Store{users: make(map[string]*models.User)}
}

// FindOrCreateUser 返回 phone 对应的用户，不存在则创建。
// created 指示本次调用是否真正创建了新用户；同一手机号并发注册只会创建一次，
// 后到者拿到先到者的结果。
func (s *Store) FindOrCreateUser(phone string) (user models.User, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[phone]; ok {
		return *u, false
	}
	u := &models.User{ID: uuid.NewString(), Phone: phone}
	s.users[phone] = u
	return *u, true
}

// UserByPhone 按手机号查找用户。
func (s *Store) UserByPhone(phone string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[phone]
	if !ok {
		return models.User{}, false
	}
	return *u, true
}

// MarkVerified 将 phone 对应的用户置为已验证并返回更新后的记录，可重复调用。
func (s *Store) MarkVerified(phone string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[phone]
	if !ok {
		return models.User{}, false
	}
	u.Verified = true
	return *u, true
}

// IsVerifiedUser 判断是否存在 id 对应且已验证的用户。
func (s *Store) IsVerifiedUser(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id && u.Verified {
			return true
		}
	}
	return false
}

// UserCount 返回已注册用户数。
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// AppendMessage 按全局总顺序追加一条消息并返回。
// 时间戳在锁内取得，保证追加顺序上单调不减。
func (s *Store) AppendMessage(userID, text string) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := models.Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	s.messages = append(s.messages, m)
	if len(s.messages) > maxBacklog {
		trimmed := make([]models.Message, maxBacklog)
		copy(trimmed, s.messages[len(s.messages)-maxBacklog:])
		s.messages = trimmed
	}
	return m
}

// Recent 返回最近 Window 条消息，按写入顺序升序；不足 Window 条则全部返回。
func (s *Store) Recent() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := 0
	if len(s.messages) > Window {
		start = len(s.messages) - Window
	}
	out := make([]models.Message, len(s.messages)-start)
	copy(out, s.messages[start:])
	return out
}
