package modexp

import (
	"github.com/cockroachdb/errors"
	"math/bits"
)

// ErrNoInverse 逆元が存在しない場合のエラー (gcd(x, modulus) != 1)
var ErrNoInverse = errors.New("modular inverse does not exist")

// Gcd 最大公約数を求める
func Gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// MulMod (a * b) mod m を128bit中間値で計算しオーバーフローを防ぐ
func MulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// ModExp 冪乗のMod(繰り返し二乗法)
// modulus == 0 の場合はpanicする
func ModExp(base, exponent, modulus uint64) uint64 {
	if modulus == 0 {
		panic("modulus must be > 0")
	}

	result := 1 % modulus
	base = base % modulus

	for exponent > 0 {
		// ビット演算 1桁目を確認
		if exponent&1 == 1 {
			result = MulMod(result, base, modulus)
		}

		base = MulMod(base, base, modulus)

		// 右へ1bitずらす。1101 -> 110
		exponent >>= 1
	}
	return result
}

// ModInv フェルマーの小定理による乗法逆元 x^(modulus-2) mod modulus
// modulusが素数であることは呼び出し側の前提条件。素数以外を渡した場合、
// gcd(x, modulus) != 1 ならErrNoInverseを返すが、互いに素な場合の結果は保証しない。
// modulus == 0 の場合はpanicする
func ModInv(x, modulus uint64) (uint64, error) {
	if modulus == 0 {
		panic("modulus must be > 0")
	}

	if Gcd(x%modulus, modulus) != 1 {
		return 0, errors.Wrapf(ErrNoInverse, "x=%d modulus=%d", x, modulus)
	}
	return ModExp(x, modulus-2, modulus), nil
}
