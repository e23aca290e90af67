package auth

import "strings"

// TokenPrefix 拼在用户 id 前构成访问令牌，是对外行为契约的一部分。
const TokenPrefix = "tok_"

// TokenFor 由用户 id 派生访问令牌。
func TokenFor(userID string) string {
	return TokenPrefix + userID
}

// UserIDFromToken 去掉已知前缀，得到候选用户 id。
// 候选 id 是否对应已验证用户由调用方向注册表查证。
func UserIDFromToken(token string) string {
	return strings.TrimPrefix(token, TokenPrefix)
}
