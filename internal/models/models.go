package models

import "time"

// User 是一条手机号注册记录。Verified 在验证码校验通过后置为 true，
// 此后不再回退；ID 创建时生成，终身不变。
type User struct {
	ID       string `json:"id"`
	Phone    string `json:"phone"`
	Verified bool   `json:"verified"`
}

// Message 是公共信息流中的一条消息，写入后不再修改。
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"ts"`
}
