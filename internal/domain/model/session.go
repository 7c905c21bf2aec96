package model

// 認証状態
type SessionState string

const (
	SessionAnonymous      SessionState = "ANONYMOUS"
	SessionAuthenticating SessionState = "AUTHENTICATING"
	SessionAuthenticated  SessionState = "AUTHENTICATED"
	SessionSigningOut     SessionState = "SIGNING_OUT"
)

// ログインユーザーのプロフィール（認証APIのuser_data）
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"nama_lengkap"`
}

// Session は認証状態の本体。カートの識別とは独立（ゲストカートはSession無し）。
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Authenticated はトークンを保持しているか。
func (s Session) Authenticated() bool {
	return s.Token != ""
}
