package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "ticket-qr-gate/pkg/app_errors"

	"github.com/redis/go-redis/v9"
)

// RedemptionGuard 核銷防護：同一個 code 只能被領取一次
// 入場口多台設備同時掃到同一張 QR 時，由 Redis 決定誰先到手
type RedemptionGuard interface {
	// 領取：原子性地領取一個 code（使用Lua腳本確保原子性）
	Claim(ctx context.Context, code string, issuedAt time.Time, window time.Duration) (bool, error)
	// 回滾：後續落庫失敗時釋放領取紀錄
	Release(ctx context.Context, code string) error
}

type RedisRedemptionGuardImpl struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRedemptionGuard(client *redis.Client) RedemptionGuard {
	return &RedisRedemptionGuardImpl{
		client: client,
		now:    time.Now,
	}
}

// 領取紀錄的 key
func (g *RedisRedemptionGuardImpl) getClaimKey(code string) string {
	return fmt.Sprintf("qr:%s:claim", code)
}

/*
*

	原子性領取 (使用Lua腳本確保原子性)
	1. 檢查是否已被領取
	2. 檢查有效時間窗是否已過
	3. 寫入領取紀錄，TTL 設為剩餘有效秒數（窗過後自動清掉）
*/
func (g *RedisRedemptionGuardImpl) Claim(ctx context.Context, code string, issuedAt time.Time, window time.Duration) (bool, error) {
	key := g.getClaimKey(code)

	remaining := issuedAt.Add(window).Sub(g.now())
	if remaining <= 0 {
		return false, apperrors.ErrQRExpired
	}
	ttlSeconds := int(remaining / time.Second)
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	script := `
		-- 1. 取得參數
		local claim_key = KEYS[1]
		local ttl = tonumber(ARGV[1])

		-- 2. 檢查是否已被領取
		if redis.call('EXISTS', claim_key) == 1 then
			return -1 -- 錯誤：已被其他掃描領取
		end

		-- 3. 寫入領取紀錄
		redis.call('SET', claim_key, ARGV[2], 'EX', ttl)

		return 1 -- 領取成功
	`

	result, err := g.client.Eval(ctx, script, []string{key}, ttlSeconds, g.now().UTC().Format(time.RFC3339)).Result()
	if err != nil {
		return false, err
	}

	code64, ok := result.(int64)
	if !ok {
		return false, errors.New("unexpected result")
	}

	switch code64 {
	case 1:
		return true, nil
	case -1:
		return false, apperrors.ErrQRAlreadyScanned
	default:
		return false, errors.New("unexpected result")
	}
}

func (g *RedisRedemptionGuardImpl) Release(ctx context.Context, code string) error {
	return g.client.Del(ctx, g.getClaimKey(code)).Err()
}
