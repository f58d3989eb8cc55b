package rand

import "math/rand"

// NewSeeded 再現可能なテスト用にシード固定の乱数源を生成
func NewSeeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Uint64InRange [min, max) からランダム値を取得
// rがnilの場合はパッケージ共有の乱数源(ロック付き)を使うので並行呼び出しも安全。
// 剰余による僅かな偏りは許容する(統計的なばらつきがあれば十分な用途向け)
func Uint64InRange(r *rand.Rand, min uint64, max uint64) uint64 {
	if min >= max {
		panic("min must be < max")
	}

	span := max - min
	if r == nil {
		return rand.Uint64()%span + min
	}
	return r.Uint64()%span + min
}
