package store

import (
	"context"
	"errors"
	"sync"

	"github.com/bonangpanjinur/desawisata/internal/domain/model"
	"github.com/bonangpanjinur/desawisata/internal/notify"
	"github.com/bonangpanjinur/desawisata/internal/repository"
	"github.com/bonangpanjinur/desawisata/internal/scheduler"

	"go.uber.org/zap"
)

// 数量は1以上
var ErrInvalidQuantity = errors.New("invalid quantity")

// リモート同期して良いか（トークンを持つセッションがあるか）
type AuthState interface {
	Authenticated() bool
}

// 販売者ごとのまとまり（配送オプション選択などで使う）
type SellerGroup struct {
	SellerID   int64
	SellerName string
	Items      []model.LineItem
}

// 販売者不明の明細の受け皿。明細は絶対に落とさない
const UnknownSellerName = "Toko Lain"

// CartStore はカートの正本（メモリ上）を持つ。
// 変更はその場でローカル保存し、ログイン中ならデバウンスしてリモートへ全置換プッシュ。
// リモート失敗でもローカルは巻き戻さない。
type CartStore struct {
	storage  repository.CartStorage
	remote   repository.RemoteCart
	auth     AuthState
	sched    *scheduler.Debouncer
	notifier notify.Notifier
	log      *zap.Logger

	mu    sync.Mutex
	items []model.LineItem
}

func NewCartStore(
	storage repository.CartStorage,
	remote repository.RemoteCart,
	auth AuthState,
	sched *scheduler.Debouncer,
	notifier notify.Notifier,
	log *zap.Logger,
) *CartStore {
	return &CartStore{
		storage:  storage,
		remote:   remote,
		auth:     auth,
		sched:    sched,
		notifier: notifier,
		log:      log,
	}
}

// Restore は起動時にローカル保存からカートを復元する。
func (s *CartStore) Restore(ctx context.Context) error {
	items, err := s.storage.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// AddItem は商品（＋任意のバリエーション）をカートに入れる。
// 同一キー（商品×バリエーション）が既にあれば数量を加算する。
func (s *CartStore) AddItem(ctx context.Context, p model.Product, variation *model.Variation, quantity int64) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	item := model.NewLineItem(p, variation, quantity)

	s.mu.Lock()
	if i := s.indexOfLocked(item.ID); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, item)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.scheduleSync()
	return nil
}

// UpdateQuantity は数量を置き換える。0以下なら削除と同じ。該当無しは何もしない。
func (s *CartStore) UpdateQuantity(ctx context.Context, itemID string, quantity int64) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, itemID)
	}

	s.mu.Lock()
	i := s.indexOfLocked(itemID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.items[i].Quantity = quantity
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.scheduleSync()
	return nil
}

// RemoveItem は明細を取り除く。無くてもエラーにしない（冪等）。
func (s *CartStore) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.scheduleSync()
	return nil
}

// ClearCart はカートを空にする（チェックアウト完了後・ログアウト時）。
// リモートのクリアは呼び出し側の明示操作。ここからはプッシュしない。
func (s *CartStore) ClearCart(ctx context.Context) error {
	s.sched.CancelPending()

	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		s.log.Warn("cart storage clear failed", zap.Error(err))
		s.notifier.Error("Gagal menghapus keranjang lokal: " + err.Error())
	}
	return nil
}

// Items はカートのコピーを返す。
func (s *CartStore) Items() []model.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// TotalPrice はカート合計（単価×数量の総和）。空なら0。
func (s *CartStore) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// TotalItemCount は数量の総和。空なら0。
func (s *CartStore) TotalItemCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// GroupBySeller は販売者ごとに明細をまとめる（出現順を保つ）。
// 販売者が無い明細は「Toko Lain」へ。必ずどこかの組に入る。
func (s *CartStore) GroupBySeller() []SellerGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make([]SellerGroup, 0)
	index := make(map[int64]int)

	for _, item := range s.items {
		sellerID := item.SellerID
		i, ok := index[sellerID]
		if !ok {
			name := UnknownSellerName
			if item.Toko != nil && item.Toko.Name != "" {
				name = item.Toko.Name
			}
			groups = append(groups, SellerGroup{SellerID: sellerID, SellerName: name})
			i = len(groups) - 1
			index[sellerID] = i
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}

// ---- CartReconciler（SessionControllerが使う） ----

// ReadLocal は現在のローカルカートを返す。
func (s *CartStore) ReadLocal() []model.LineItem {
	return s.Items()
}

// ReplaceLocal はローカルカートをマージ結果で丸ごと置き換える。
// 置き換え前の内容のプッシュ予約は意味を失うので取り消す。
func (s *CartStore) ReplaceLocal(ctx context.Context, items []model.LineItem) error {
	s.sched.CancelPending()

	s.mu.Lock()
	s.items = items
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return nil
}

// ClearLocal はローカルカートと保存を空にする。
func (s *CartStore) ClearLocal(ctx context.Context) error {
	return s.ClearCart(ctx)
}

// ---- 内部 ----

func (s *CartStore) indexOfLocked(itemID string) int {
	for i, item := range s.items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (s *CartStore) snapshotLocked() []model.LineItem {
	snapshot := make([]model.LineItem, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

// persist はローカル保存へ同期書き込み。失敗してもメモリ上の正本は生きる。
func (s *CartStore) persist(ctx context.Context, snapshot []model.LineItem) {
	if err := s.storage.Save(ctx, snapshot); err != nil {
		s.log.Warn("cart storage save failed", zap.Error(err))
		s.notifier.Error("Gagal menyimpan keranjang: " + err.Error())
	}
}

// scheduleSync はリモートへの全置換プッシュを予約する。
// 変更の度に予約し直すので、連打は1回のプッシュにまとまる。
func (s *CartStore) scheduleSync() {
	s.sched.Schedule(s.pushRemote)
}

// pushRemote はカート全体をリモートへ送る。
// ゲストは送らない。失敗は通知のみ（ローカルは正のまま）。
func (s *CartStore) pushRemote() {
	if !s.auth.Authenticated() {
		return
	}

	snapshot := s.Items()
	if _, err := s.remote.Sync(context.Background(), snapshot); err != nil {
		s.log.Warn("cart sync failed",
			zap.Int("items", len(snapshot)),
			zap.Error(err))
		s.notifier.Error("Gagal sinkronisasi keranjang: " + err.Error())
		return
	}

	s.log.Debug("cart synced", zap.Int("items", len(snapshot)))
}
