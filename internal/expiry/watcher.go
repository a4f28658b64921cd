package expiry

import (
	"context"
	"time"

	"ticket-qr-gate/internal/model"
)

// WatcherConfig 可注入的時間設定；nil 或零值時使用預設
type WatcherConfig struct {
	Window   time.Duration    // 有效時間窗
	Interval time.Duration    // 重算間隔
	Now      func() time.Time // 測試用時鐘
}

func defaultWatcherConfig() WatcherConfig {
	return WatcherConfig{
		Window:   DefaultValidityWindow,
		Interval: DefaultTickInterval,
		Now:      time.Now,
	}
}

// Watcher 單一票券單位的倒數器
// 每個單位獨立倒數、互不影響；重建 Watcher 等於從頭重算，不記憶先前是否過期
type Watcher struct {
	rec      *model.QRRecord
	onExpire func()
	cfg      WatcherConfig
}

// NewWatcher 建立倒數器。onExpire 在進入 Expired 時觸發，整個生命週期最多一次；config 可為 nil
func NewWatcher(rec *model.QRRecord, onExpire func(), config *WatcherConfig) *Watcher {
	cfg := defaultWatcherConfig()
	if config != nil {
		if config.Window > 0 {
			cfg.Window = config.Window
		}
		if config.Interval > 0 {
			cfg.Interval = config.Interval
		}
		if config.Now != nil {
			cfg.Now = config.Now
		}
	}
	return &Watcher{rec: rec, onExpire: onExpire, cfg: cfg}
}

// Run 開始倒數並回傳快照串流
// 進入終態（Scanned、NotGenerated、Expired）後停止計時並關閉串流；ctx 取消時亦停止
func (w *Watcher) Run(ctx context.Context) <-chan Snapshot {
	out := make(chan Snapshot, 1)

	go func() {
		defer close(out)

		snap := Evaluate(w.rec, w.cfg.Window, w.cfg.Now())
		if !w.emit(ctx, out, snap) {
			return
		}
		if snap.IsTerminal() {
			w.fireExpire(snap)
			return
		}

		ticker := time.NewTicker(w.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snap = Evaluate(w.rec, w.cfg.Window, w.cfg.Now())
				if !w.emit(ctx, out, snap) {
					return
				}
				if snap.IsTerminal() {
					w.fireExpire(snap)
					return
				}
			}
		}
	}()

	return out
}

func (w *Watcher) emit(ctx context.Context, out chan<- Snapshot, snap Snapshot) bool {
	select {
	case out <- snap:
		return true
	case <-ctx.Done():
		return false
	}
}

// fireExpire 只在結束狀態為 Expired 時通知；Scanned 永遠不觸發
func (w *Watcher) fireExpire(snap Snapshot) {
	if snap.State == StateExpired && w.onExpire != nil {
		w.onExpire()
	}
}
