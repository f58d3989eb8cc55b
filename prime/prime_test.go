package prime

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestIsPrime(t *testing.T) {
	tests := []struct {
		name string
		n    uint64
		want bool
	}{
		{name: "正常: 0は素数でない", n: 0, want: false},
		{name: "正常: 1は素数でない", n: 1, want: false},
		{name: "正常: 2は素数", n: 2, want: true},
		{name: "正常: 3は素数", n: 3, want: true},
		{name: "正常: 偶数は素数でない", n: 100, want: false},
		{name: "正常: 21は素数でない", n: 21, want: false},
		{name: "正常: 10079は素数", n: 10079, want: true},
		{name: "正常: 1000429は素数", n: 1000429, want: true},
		{name: "正常: 1000013は素数でない", n: 1000013, want: false},
		{name: "正常: 1000067は素数でない", n: 1000067, want: false},
		{name: "正常: 1000000007は素数", n: 1000000007, want: true},
		{name: "正常: カーマイケル数561", n: 561, want: false},
		{name: "正常: カーマイケル数41041", n: 41041, want: false},
		{name: "正常: 強擬素数3215031751", n: 3215031751, want: false},
		{name: "正常: 64bit最大の素数", n: 18446744073709551557, want: true},
		{name: "正常: 2^64-1は素数でない", n: 18446744073709551615, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPrime(tt.n))
		})
	}
}

// 小さい範囲は試し割りと突き合わせる
func TestIsPrime_AgainstTrialDivision(t *testing.T) {
	trial := func(n uint64) bool {
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

	for n := uint64(0); n < 3000; n++ {
		assert.Equal(t, trial(n), IsPrime(n), "n=%d", n)
	}
}

func TestPollard(t *testing.T) {
	tests := []struct {
		name string
		n    uint64
	}{
		{name: "正常: 小さい合成数", n: 15},
		{name: "正常: 素数の平方", n: 1000429 * 1000429},
		{name: "正常: 2つの素数の積", n: 239 * 1451},
		{name: "正常: 大きい半素数", n: 1000000007 * 998244353},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Pollard(tt.n)
			assert.NoError(t, err)

			assert.Greater(t, d, uint64(1))
			assert.Less(t, d, tt.n)
			assert.Zero(t, tt.n%d)
		})
	}
}

func TestPollard_EvenInput(t *testing.T) {
	d, err := Pollard(1000429 * 2)
	assert.NoError(t, err)
	assert.Equal(t, uint64(2), d)
}

func TestPollard_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		n    uint64
	}{
		{name: "異常: 0", n: 0},
		{name: "異常: 1", n: 1},
		{name: "異常: 素数", n: 1000000007},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pollard(tt.n)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// 同じシードなら同じ因数に辿り着く
func TestPollardWithSeed_Deterministic(t *testing.T) {
	const n = uint64(239 * 1451 * 1000429)

	first, err := PollardWithSeed(n, 12345)
	assert.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := PollardWithSeed(n, 12345)
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFactor(t *testing.T) {
	tests := []struct {
		name string
		n    uint64
		want []uint64
	}{
		{name: "正常: 1は空列", n: 1, want: []uint64{}},
		{name: "正常: 素数はそのまま", n: 1000000007, want: []uint64{1000000007}},
		{name: "正常: 24の分解", n: 24, want: []uint64{2, 2, 2, 3}},
		{name: "正常: 45の分解", n: 45, want: []uint64{3, 3, 5}},
		{name: "正常: 15006435の分解", n: 15006435, want: []uint64{3, 5, 1000429}},
		{name: "正常: 346789の分解", n: 346789, want: []uint64{239, 1451}},
		{name: "正常: 34486788の分解", n: 34486788, want: []uint64{2, 2, 3, 7, 7, 89, 659}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Factor(tt.n)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFactor_Zero(t *testing.T) {
	_, err := Factor(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// 全要素が素数で、積が元のnに戻ること
func TestFactor_ProductRoundTrip(t *testing.T) {
	for n := uint64(1); n <= 2000; n++ {
		factors, err := Factor(n)
		assert.NoError(t, err, "n=%d", n)

		product := uint64(1)
		for _, f := range factors {
			assert.True(t, IsPrime(f), "n=%d factor=%d", n, f)
			product *= f
		}
		assert.Equal(t, n, product, "n=%d", n)
	}
}

func TestFactor_Ascending(t *testing.T) {
	factors, err := FactorWithSeed(2*2*3*5*5*1451*1000429, 7)
	assert.NoError(t, err)

	for i := 1; i < len(factors); i++ {
		assert.LessOrEqual(t, factors[i-1], factors[i])
	}
}
