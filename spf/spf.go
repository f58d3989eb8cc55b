package spf

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"time"
)

var (
	// ErrLimitTooSmall maxLimitが2未満の場合のエラー
	ErrLimitTooSmall = errors.New("maxLimit must be >= 2")

	// ErrOutOfRange [2, maxLimit] の範囲外を問い合わせた場合のエラー
	ErrOutOfRange = errors.New("number is out of range")
)

// Spf 最小素因数(smallest prime factor)の篩テーブル
// spf[k] は k を割り切る最小の素数 (k >= 2)。構築後は不変なので
// 複数goroutineから読み取り共有しても安全
type Spf struct {
	maxLimit int
	spf      []uint64
}

// New [2, maxLimit] の最小素因数を篩で前計算して新規インスタンスを返す
func New(maxLimit int) (*Spf, error) {
	if maxLimit < 2 {
		return nil, errors.Wrapf(ErrLimitTooSmall, "maxLimit=%d", maxLimit)
	}

	start := time.Now()

	spf := make([]uint64, maxLimit+1)
	for i := 2; i <= maxLimit; i++ {
		// 未設定のまま到達した i は素数
		if spf[i] == 0 {
			for j := i; j <= maxLimit; j += i {
				if spf[j] == 0 {
					spf[j] = uint64(i)
				}
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"maxLimit": maxLimit,
		"duration": time.Since(start),
	}).Debug("spf sieve built")

	return &Spf{
		maxLimit: maxLimit,
		spf:      spf,
	}, nil
}

// GetSpf numberの最小素因数を返す。範囲外はErrOutOfRange
func (s *Spf) GetSpf(number uint64) (uint64, error) {
	if number < 2 || number > uint64(s.maxLimit) {
		return 0, errors.Wrapf(ErrOutOfRange, "number=%d maxLimit=%d", number, s.maxLimit)
	}
	return s.spf[number], nil
}

// Factorize 最小素因数で割り続けて素因数分解する。結果は昇順
// 各ステップで残りが最小素因数以下に縮むのでO(log number)
func (s *Spf) Factorize(number uint64) ([]uint64, error) {
	if number < 2 || number > uint64(s.maxLimit) {
		return nil, errors.Wrapf(ErrOutOfRange, "number=%d maxLimit=%d", number, s.maxLimit)
	}

	factors := make([]uint64, 0)
	for number != 1 {
		p := s.spf[number]
		factors = append(factors, p)
		number /= p
	}
	return factors, nil
}
