package comb

import (
	"github.com/cockroachdb/errors"
	"numtheory-pkg/modexp"
)

var (
	// ErrNotPrimeModulus 法が素数でない場合のエラー
	ErrNotPrimeModulus = errors.New("modulus is not prime")

	// ErrInvalidMaxFact maxFactが負の場合のエラー
	ErrInvalidMaxFact = errors.New("maxFact must be >= 0")

	// ErrExceedsMaxFact nが前計算済みテーブルの範囲を超えた場合のエラー
	ErrExceedsMaxFact = errors.New("n exceeds precomputed maxFact")
)

// Comb 階乗・逆階乗テーブルによるMod付き組合せ計算
// 構築後は不変なので複数goroutineから読み取り共有しても安全
type Comb struct {
	modulus uint64
	maxFact int
	fact    []uint64
	invFact []uint64
}

// New 素数modulusの下で 0..maxFact の階乗テーブルを前計算して新規インスタンスを返す
// 逆階乗は fact[maxFact] の逆元を1回だけ求めて降順に埋める。全体でO(maxFact)
func New(modulus uint64, maxFact int) (*Comb, error) {
	if !isPrime(modulus) {
		return nil, errors.Wrapf(ErrNotPrimeModulus, "modulus=%d", modulus)
	}
	if maxFact < 0 {
		return nil, errors.Wrapf(ErrInvalidMaxFact, "maxFact=%d", maxFact)
	}

	fact := make([]uint64, maxFact+1)
	invFact := make([]uint64, maxFact+1)

	fact[0] = 1 % modulus
	for i := 1; i <= maxFact; i++ {
		fact[i] = modexp.MulMod(fact[i-1], uint64(i), modulus)
	}

	inv, err := modexp.ModInv(fact[maxFact], modulus)
	if err != nil {
		// maxFact >= modulus だと階乗がmodで0に潰れて逆元が取れない
		return nil, errors.Errorf("invert fact[%d] error: %w", maxFact, err)
	}
	invFact[maxFact] = inv
	for i := maxFact; i > 0; i-- {
		invFact[i-1] = modexp.MulMod(invFact[i], uint64(i), modulus)
	}

	return &Comb{
		modulus: modulus,
		maxFact: maxFact,
		fact:    fact,
		invFact: invFact,
	}, nil
}

// NCr Mod付き二項係数 C(n, r) = n! / (r! (n-r)!)
// r < 0 または r > n の場合は0。n > maxFact はErrExceedsMaxFact
func (c *Comb) NCr(n, r int) (uint64, error) {
	if n < 0 || n > c.maxFact {
		return 0, errors.Wrapf(ErrExceedsMaxFact, "n=%d maxFact=%d", n, c.maxFact)
	}
	if r < 0 || r > n {
		return 0, nil
	}
	return modexp.MulMod(modexp.MulMod(c.fact[n], c.invFact[r], c.modulus), c.invFact[n-r], c.modulus), nil
}

// NPr Mod付き順列 P(n, r) = n! / r!
// ドメイン規則はNCrと同じ
func (c *Comb) NPr(n, r int) (uint64, error) {
	if n < 0 || n > c.maxFact {
		return 0, errors.Wrapf(ErrExceedsMaxFact, "n=%d maxFact=%d", n, c.maxFact)
	}
	if r < 0 || r > n {
		return 0, nil
	}
	return modexp.MulMod(c.fact[n], c.invFact[r], c.modulus), nil
}

// isPrime 試し割りによる素数判定。法の検証は構築時の1回だけなのでO(sqrt n)で十分
func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for x := uint64(2); x*x <= n; x++ {
		if n%x == 0 {
			return false
		}
	}
	return true
}
