package expiry

import (
	"context"
	"sync"
	"time"

	"ticket-qr-gate/internal/model"
)

// Broadcaster 單一共用 ticker，廣播倒數快照給所有訂閱中的票券單位
// 大量單位同時顯示時避免 O(n) 個 timer；各單位的快照仍獨立推導、無跨單位順序要求
type Broadcaster struct {
	cfg WatcherConfig

	mu     sync.Mutex
	subs   map[int]*subscription
	nextID int
}

type subscription struct {
	rec      *model.QRRecord
	onExpire func()
	ch       chan Snapshot
	closed   bool
}

// NewBroadcaster 建立廣播器，config 可為 nil
func NewBroadcaster(config *WatcherConfig) *Broadcaster {
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
	return &Broadcaster{cfg: cfg, subs: make(map[int]*subscription)}
}

// Subscribe 註冊一個單位的倒數，立即收到第一個快照
// 回傳的 cancel 對應單位卸載；訂閱進入終態後自動移除
func (b *Broadcaster) Subscribe(rec *model.QRRecord, onExpire func()) (<-chan Snapshot, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &subscription{
		rec:      rec,
		onExpire: onExpire,
		ch:       make(chan Snapshot, 1),
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = sub

	snap := Evaluate(rec, b.cfg.Window, b.cfg.Now())
	sub.push(snap)
	if snap.IsTerminal() {
		b.finish(id, sub, snap)
	}

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if s, ok := b.subs[id]; ok {
			delete(b.subs, id)
			s.close()
		}
	}
	return sub.ch, cancel
}

// Run 啟動共用 ticker，ctx 取消時停止並關閉所有訂閱
func (b *Broadcaster) Run(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(b.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				b.closeAll()
				return
			case <-ticker.C:
				b.tick()
			}
		}
	}()
}

func (b *Broadcaster) tick() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.cfg.Now()
	for id, sub := range b.subs {
		snap := Evaluate(sub.rec, b.cfg.Window, now)
		sub.push(snap)
		if snap.IsTerminal() {
			b.finish(id, sub, snap)
		}
	}
}

// finish 移除訂閱；Expired 時通知一次（訂閱已移除，不會重複觸發）
func (b *Broadcaster) finish(id int, sub *subscription, snap Snapshot) {
	delete(b.subs, id)
	if snap.State == StateExpired && sub.onExpire != nil {
		sub.onExpire()
	}
	sub.close()
}

func (b *Broadcaster) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, sub := range b.subs {
		delete(b.subs, id)
		sub.close()
	}
}

// push 最新快照覆蓋未讀的舊快照，慢速讀者不會阻塞 ticker
func (s *subscription) push(snap Snapshot) {
	if s.closed {
		return
	}
	select {
	case s.ch <- snap:
	default:
		select {
		case <-s.ch:
		default:
		}
		s.ch <- snap
	}
}

func (s *subscription) close() {
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
