package service

import (
	"strings"

	"github.com/d7708945/scammail/internal/metrics"
	"github.com/d7708945/scammail/internal/models"
	"github.com/d7708945/scammail/internal/store"
	"github.com/d7708945/scammail/internal/ws"
)

// MaxTextRunes 是单条消息保留的最大字符数，超出部分静默截断。
const MaxTextRunes = 2000

// MessageService 封装公共信息流的写入与读取。
// 写路径依赖 UserService 解析令牌，读路径不做鉴权。
type MessageService struct {
	store *store.Store
	users *UserService
	hub   *ws.Hub
}

func NewMessageService(st *store.Store, users *UserService, hub *ws.Hub) *MessageService {
	return &MessageService{store: st, users: users, hub: hub}
}

// Post 校验令牌并把 text 追加到信息流，返回新建的消息。
// text 截断到 MaxTextRunes 个字符后入库；新消息同步推送给订阅者。
func (s *MessageService) Post(token, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if token == "" || text == "" {
		return nil, ErrBadRequest
	}
	userID, ok := s.users.ResolveToken(token)
	if !ok {
		return nil, ErrUnauthorized
	}
	if r := []rune(text); len(r) > MaxTextRunes {
		text = string(r[:MaxTextRunes])
	}
	msg := s.store.AppendMessage(userID, text)
	metrics.MessagesTotal.Inc()
	s.hub.Broadcast(msg)
	return &msg, nil
}

// Recent 返回最近的消息窗口，按接受顺序升序。
func (s *MessageService) Recent() []models.Message {
	return s.store.Recent()
}
