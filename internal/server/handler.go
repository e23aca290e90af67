package server

import (
	"errors"
	"net/http"

	"github.com/d7708945/scammail/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Handler 聚合所有 HTTP handler，依赖注入 service 层。
type Handler struct {
	userSvc *service.UserService
	msgSvc  *service.MessageService
}

func NewHandler(userSvc *service.UserService, msgSvc *service.MessageService) *Handler {
	return &Handler{userSvc: userSvc, msgSvc: msgSvc}
}

// Register 处理手机号注册请求，验证码随响应直接下发。
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone_required"})
		return
	}
	result, err := h.userSvc.Register(req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrPhoneRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone_required"})
			return
		}
		log.Error().Err(err).Msg("register")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "code_sent", "code": result.Code, "user_id": result.UserID})
}

// Verify 处理验证码校验请求，成功后返回访问令牌。
func (h *Handler) Verify(c *gin.Context) {
	var req struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	result, err := h.userSvc.Verify(req.Phone, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotRegistered):
			c.JSON(http.StatusNotFound, gin.H{"error": "not_registered"})
		case errors.Is(err, service.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_code"})
		default:
			log.Error().Err(err).Msg("verify")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": result.Token, "user_id": result.UserID})
}

// ListMessages 返回最近的消息窗口，无需鉴权。
func (h *Handler) ListMessages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": h.msgSvc.Recent()})
}

// PostMessage 处理消息写入请求，令牌经注册表解析后才接受写入。
func (h *Handler) PostMessage(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
		Text  string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	msg, err := h.msgSvc.Post(req.Token, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		case errors.Is(err, service.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		default:
			log.Error().Err(err).Msg("post message")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to post"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": msg})
}
