package prime

import (
	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	mrand "math/rand"
	"numtheory-pkg/modexp"
	"numtheory-pkg/rand"
	"sort"
)

var (
	// ErrInvalidInput 非自明な因数を持たない入力(n < 2 または素数)のエラー
	ErrInvalidInput = errors.New("n has no non-trivial factor")

	// ErrRetryExhausted ロー法の再試行上限に達した場合のエラー
	ErrRetryExhausted = errors.New("pollard rho retries exhausted")
)

// errDegenerateCycle 1回の試行が縮退サイクル(gcd == n)で終わった場合の内部エラー
var errDegenerateCycle = errors.New("degenerate cycle")

const (
	// brentBatchSize gcdをまとめて取る間隔。毎ステップのgcdは高くつく
	brentBatchSize = 128

	// maxRestarts オフセットcを引き直す回数の上限。無限ループの防止
	maxRestarts = 32
)

// millerRabinWitnesses 64bit全域で決定的になる既知の証人集合
var millerRabinWitnesses = []uint64{2, 325, 9375, 28178, 450775, 9780504, 1795265022}

// IsPrime 決定的Miller-Rabin素数判定。uint64全域で正確
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for _, p := range []uint64{2, 3, 5, 7} {
		if n%p == 0 {
			return n == p
		}
	}

	// n - 1 = d * 2^s に分解
	d := n - 1
	s := 0
	for d&1 == 0 {
		d >>= 1
		s++
	}

	for _, a := range millerRabinWitnesses {
		a %= n
		if a == 0 {
			continue
		}

		x := modexp.ModExp(a, d, n)
		if x == 1 || x == n-1 {
			continue
		}

		composite := true
		for i := 0; i < s-1; i++ {
			x = modexp.MulMod(x, x, n)
			if x == n-1 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}
	return true
}

// Pollard 合成数nの非自明な因数を1つ返す
// n < 2 と素数はErrInvalidInput。偶数はランダム探索せず2を即返す
func Pollard(n uint64) (uint64, error) {
	return pollard(n, nil)
}

// PollardWithSeed シード固定版。同じシードなら同じ因数を返す
func PollardWithSeed(n uint64, seed int64) (uint64, error) {
	return pollard(n, rand.NewSeeded(seed))
}

func pollard(n uint64, rnd *mrand.Rand) (uint64, error) {
	if n < 2 {
		return 0, errors.Wrapf(ErrInvalidInput, "n=%d", n)
	}
	if n&1 == 0 {
		return 2, nil
	}
	if IsPrime(n) {
		return 0, errors.Wrapf(ErrInvalidInput, "n=%d is prime", n)
	}

	var factor uint64
	attempt := 0
	op := func() error {
		attempt++
		d, err := pollardAttempt(n, rnd)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"n":       n,
				"attempt": attempt,
			}).Warn("pollard rho hit a degenerate cycle, retrying with a new offset")
			return err
		}
		factor = d
		return nil
	}

	if err := backoff.Retry(op, backoff.WithMaxRetries(&backoff.ZeroBackOff{}, maxRestarts)); err != nil {
		return 0, errors.Wrapf(ErrRetryExhausted, "n=%d attempts=%d", n, attempt)
	}
	return factor, nil
}

// pollardAttempt Brent変種のロー法を1回実行する
// 反復関数 f(x) = (x*x + c) mod n のcは試行ごとにランダムに選ぶ。
// |x-y| の積qを持ち回り、brentBatchSizeごとにgcd(q, n)を取る。
// gcdがnまで潰れた場合はysから1ステップずつ巻き戻して因数を探し直す
func pollardAttempt(n uint64, rnd *mrand.Rand) (uint64, error) {
	c := rand.Uint64InRange(rnd, 1, n)
	y := rand.Uint64InRange(rnd, 2, n)

	f := func(x uint64) uint64 {
		return addMod(modexp.MulMod(x, x, n), c, n)
	}

	q := uint64(1)
	g := uint64(1)
	r := uint64(1)
	var x, ys uint64

	for g == 1 {
		x = y
		for i := uint64(0); i < r; i++ {
			y = f(y)
		}
		for k := uint64(0); k < r && g == 1; k += brentBatchSize {
			ys = y
			for i := uint64(0); i < min(brentBatchSize, r-k); i++ {
				y = f(y)
				q = modexp.MulMod(q, absDiff(x, y), n)
			}
			g = modexp.Gcd(q, n)
		}
		r *= 2
	}

	if g == n {
		// バッチ内のどこかで因数を踏み越えている。1ステップずつ再走査
		for g == 1 || g == n {
			ys = f(ys)
			g = modexp.Gcd(absDiff(x, ys), n)
			if ys == x {
				// 走査点が合流してしまった。このcでは因数を取り出せない
				return 0, errors.Wrapf(errDegenerateCycle, "c=%d", c)
			}
		}
	}
	return g, nil
}

// Factor nを素因数に分解し昇順で返す。全要素は素数で積は元のnに等しい
// n == 1 は空列。n == 0 はErrInvalidInput
func Factor(n uint64) ([]uint64, error) {
	return factor(n, nil)
}

// FactorWithSeed シード固定版のFactor
func FactorWithSeed(n uint64, seed int64) ([]uint64, error) {
	return factor(n, rand.NewSeeded(seed))
}

func factor(n uint64, rnd *mrand.Rand) ([]uint64, error) {
	if n == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "n=0")
	}

	factors, err := split(n, rnd)
	if err != nil {
		return nil, err
	}

	sort.Slice(factors, func(i, j int) bool { return factors[i] < factors[j] })
	return factors, nil
}

// split 再帰的に因数を割っていく。d = pollard(n) で分割し左右を結合
func split(n uint64, rnd *mrand.Rand) ([]uint64, error) {
	if n == 1 {
		return []uint64{}, nil
	}
	if IsPrime(n) {
		return []uint64{n}, nil
	}

	d, err := pollard(n, rnd)
	if err != nil {
		return nil, err
	}

	left, err := split(d, rnd)
	if err != nil {
		return nil, err
	}
	right, err := split(n/d, rnd)
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

// addMod (a + b) mod n。a, b < n 前提でオーバーフローしない加算
func addMod(a, b, n uint64) uint64 {
	if a >= n-b {
		return a - (n - b)
	}
	return a + b
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
