package notify

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Notifier はユーザー向けの非ブロッキング通知（トースト相当）。
// リモート同期の失敗はここに流す。処理は止めない。
type Notifier interface {
	Error(msg string)
	Info(msg string)
}

// WriterNotifier は端末向けの実装。
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "[!] %s\n", msg)
}

func (n *WriterNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "[i] %s\n", msg)
}

// ZapNotifier はログにだけ流す実装（UI側が別にある場合用）。
type ZapNotifier struct {
	log *zap.Logger
}

func NewZapNotifier(log *zap.Logger) *ZapNotifier {
	return &ZapNotifier{log: log}
}

func (n *ZapNotifier) Error(msg string) {
	n.log.Warn("notify", zap.String("message", msg))
}

func (n *ZapNotifier) Info(msg string) {
	n.log.Info("notify", zap.String("message", msg))
}
