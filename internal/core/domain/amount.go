package domain

import (
	"fmt"
	"math"
	"math/big"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
)

const satsPrecision = 8

// Sats is an amount of satoshis. The uint64 range covers the whole finite
// supply of bitcoin; arithmetic is checked and never wraps.
type Sats uint64

// MaxSupply is the amount of satoshis that will ever exist.
const MaxSupply = Sats(btcutil.MaxSatoshi)

// SatsFromBtcutil converts a btcutil amount. Negative amounts are rejected.
func SatsFromBtcutil(amount btcutil.Amount) (Sats, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: negative amount %d", ErrAmountUnderflow, int64(amount))
	}
	return Sats(amount), nil
}

// Add returns s + o or ErrAmountOverflow.
func (s Sats) Add(o Sats) (Sats, error) {
	if s > math.MaxUint64-o {
		return 0, ErrAmountOverflow
	}
	return s + o, nil
}

// Sub returns s - o or ErrAmountUnderflow.
func (s Sats) Sub(o Sats) (Sats, error) {
	if o > s {
		return 0, ErrAmountUnderflow
	}
	return s - o, nil
}

// Mul returns s * n or ErrAmountOverflow.
func (s Sats) Mul(n uint64) (Sats, error) {
	if n != 0 && uint64(s) > math.MaxUint64/n {
		return 0, ErrAmountOverflow
	}
	return Sats(uint64(s) * n), nil
}

// Cmp compares s and o returning -1, 0 or +1.
func (s Sats) Cmp(o Sats) int {
	switch {
	case s < o:
		return -1
	case s > o:
		return 1
	default:
		return 0
	}
}

// ToBtcutil converts the amount to btcutil.Amount, which is signed.
func (s Sats) ToBtcutil() (btcutil.Amount, error) {
	if uint64(s) > math.MaxInt64 {
		return 0, ErrAmountOverflow
	}
	return btcutil.Amount(s), nil
}

// BTC returns the amount denominated in bitcoin.
func (s Sats) BTC() decimal.Decimal {
	return decimal.NewFromBigInt(
		new(big.Int).SetUint64(uint64(s)), -satsPrecision,
	)
}

func (s Sats) String() string {
	return s.BTC().StringFixed(satsPrecision) + " BTC"
}
