package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bonangpanjinur/desawisata/internal/domain/model"
	"github.com/bonangpanjinur/desawisata/internal/notify"
	"github.com/bonangpanjinur/desawisata/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// 既にログイン済み
var ErrAlreadySignedIn = errors.New("already signed in")

// SessionControllerがカートに求める操作。
// CartStoreの内部には触らせない。
type CartReconciler interface {
	ReadLocal() []model.LineItem
	ReplaceLocal(ctx context.Context, items []model.LineItem) error
	ClearLocal(ctx context.Context) error
}

// 認証トークンの差し込み先（APIクライアント）
type TokenSink interface {
	SetToken(token string)
	ClearToken()
}

// SessionController は認証状態の持ち主。
// ログイン時にゲストカートをリモートとマージし、ログアウト時に
// リモート（ベストエフォート）とローカル（無条件）を掃除する。
type SessionController struct {
	authAPI  repository.AuthAPI
	remote   repository.RemoteCart
	storage  repository.SessionStorage
	tokens   TokenSink
	cart     CartReconciler
	notifier notify.Notifier
	log      *zap.Logger

	mu      sync.Mutex
	state   model.SessionState
	session model.Session
}

func NewSessionController(
	authAPI repository.AuthAPI,
	remote repository.RemoteCart,
	storage repository.SessionStorage,
	tokens TokenSink,
	cart CartReconciler,
	notifier notify.Notifier,
	log *zap.Logger,
) *SessionController {
	return &SessionController{
		authAPI:  authAPI,
		remote:   remote,
		storage:  storage,
		tokens:   tokens,
		cart:     cart,
		notifier: notifier,
		log:      log,
		state:    model.SessionAnonymous,
	}
}

// State は現在の認証状態。
func (s *SessionController) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current は現在のセッション。
func (s *SessionController) Current() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// SignIn は資格情報を交換し、成功したらカートを突き合わせる。
// 突き合わせの失敗はログインを妨げない（通知のみ、ゲストカートはそのまま使える）。
func (s *SessionController) SignIn(ctx context.Context, username string, password string) error {
	s.mu.Lock()
	if s.state == model.SessionAuthenticated {
		s.mu.Unlock()
		return ErrAlreadySignedIn
	}
	s.state = model.SessionAuthenticating
	s.mu.Unlock()

	sess, err := s.authAPI.Login(ctx, username, password)
	if err != nil {
		// 資格情報エラー。カートには触らない
		s.mu.Lock()
		s.state = model.SessionAnonymous
		s.mu.Unlock()
		return err
	}

	s.tokens.SetToken(sess.Token)

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	if err := s.storage.Save(ctx, sess); err != nil {
		s.log.Warn("session save failed", zap.Error(err))
	}

	s.reconcileCart(ctx)

	s.mu.Lock()
	s.state = model.SessionAuthenticated
	s.mu.Unlock()

	s.log.Info("signed in", zap.String("username", username))
	return nil
}

// reconcileCart はログイン直後のカート突き合わせ。
// ゲストカートが有ればマージして結果を採用、無ければリモートのカートを採用。
// リモートがマージの正（クライアント側で再マージしない）。
func (s *SessionController) reconcileCart(ctx context.Context) {
	local := s.cart.ReadLocal()

	if len(local) > 0 {
		merged, err := s.remote.Sync(ctx, local)
		if err != nil {
			s.log.Warn("cart merge on sign-in failed", zap.Error(err))
			s.notifier.Error("Gagal sinkronisasi keranjang: " + err.Error())
			return
		}
		if err := s.cart.ReplaceLocal(ctx, merged); err != nil {
			s.log.Warn("cart replace after merge failed", zap.Error(err))
		}
		return
	}

	remote, err := s.remote.Fetch(ctx)
	if err != nil {
		s.log.Warn("cart fetch on sign-in failed", zap.Error(err))
		s.notifier.Error("Gagal mengambil keranjang: " + err.Error())
		return
	}
	if err := s.cart.ReplaceLocal(ctx, remote); err != nil {
		s.log.Warn("cart replace after fetch failed", zap.Error(err))
	}
}

// SignOut はリモートのカートをベストエフォートで消し、
// ローカルのカート・セッション・トークンは必ず消す。
func (s *SessionController) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.state = model.SessionSigningOut
	s.mu.Unlock()

	if err := s.remote.Clear(ctx); err != nil {
		s.log.Warn("remote cart clear on sign-out failed", zap.Error(err))
		s.notifier.Error("Gagal membersihkan keranjang server: " + err.Error())
	}

	s.tokens.ClearToken()
	if err := s.cart.ClearLocal(ctx); err != nil {
		s.log.Warn("local cart clear on sign-out failed", zap.Error(err))
	}
	if err := s.storage.Clear(ctx); err != nil {
		s.log.Warn("session storage clear on sign-out failed", zap.Error(err))
	}

	s.mu.Lock()
	s.session = model.Session{}
	s.state = model.SessionAnonymous
	s.mu.Unlock()

	s.log.Info("signed out")
	return nil
}

// Register は会員登録。カートには触らない。
func (s *SessionController) Register(ctx context.Context, in repository.RegisterInput) error {
	return s.authAPI.Register(ctx, in)
}

// Restore は起動時に保存済みセッションを復元する。
// 期限切れトークンは捨てる（保存も消す）。保存が無ければ匿名のまま。
func (s *SessionController) Restore(ctx context.Context) error {
	sess, err := s.storage.Load(ctx)
	if err != nil {
		return err
	}
	if sess.Token == "" {
		return nil
	}

	if tokenExpired(sess.Token, time.Now()) {
		s.log.Info("stored session expired, discarding")
		if err := s.storage.Clear(ctx); err != nil {
			s.log.Warn("session storage clear failed", zap.Error(err))
		}
		return nil
	}

	s.tokens.SetToken(sess.Token)

	s.mu.Lock()
	s.session = sess
	s.state = model.SessionAuthenticated
	s.mu.Unlock()
	return nil
}

// tokenExpired はJWTのexpだけを見る。署名検証はサーバーの責務。
// expが読めないトークン（不透明トークン等）は有効扱い。
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
