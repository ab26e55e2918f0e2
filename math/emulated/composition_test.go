package emulated

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestComposition(t *testing.T) {
	testComposition[Goldilocks](t)
	testComposition[Secp256k1Fp](t)
	testComposition[BN254Fp](t)
	testComposition[BLS12381Fp](t)
}

func testComposition[T FieldParams](t *testing.T) {
	t.Helper()
	var fp T
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("recompose is the inverse of decompose", prop.ForAll(
		func(lo, hi uint64) bool {
			val := new(big.Int).Lsh(new(big.Int).SetUint64(hi), 64)
			val.Add(val, new(big.Int).SetUint64(lo))
			val.Mod(val, fp.Modulus())
			limbs := make([]*big.Int, fp.NbLimbs())
			for i := range limbs {
				limbs[i] = new(big.Int)
			}
			if err := decompose(val, fp.BitsPerLimb(), limbs); err != nil {
				return false
			}
			res := new(big.Int)
			if err := recompose(limbs, fp.BitsPerLimb(), res); err != nil {
				return false
			}
			return res.Cmp(val) == 0
		},
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.Property("limb decomposition stays within limb width", prop.ForAll(
		func(lo, hi uint64) bool {
			val := new(big.Int).Lsh(new(big.Int).SetUint64(hi), 64)
			val.Add(val, new(big.Int).SetUint64(lo))
			val.Mod(val, fp.Modulus())
			limbs := make([]*big.Int, fp.NbLimbs())
			for i := range limbs {
				limbs[i] = new(big.Int)
			}
			if err := decompose(val, fp.BitsPerLimb(), limbs); err != nil {
				return false
			}
			for _, l := range limbs {
				if l.BitLen() > int(fp.BitsPerLimb()) {
					return false
				}
			}
			return true
		},
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.Property("subtraction padding is a multiple of the modulus dominating the limbs", prop.ForAll(
		func(overflow, extra uint8) bool {
			of := uint(overflow % 16)
			nbLimbs := fp.NbLimbs() + uint(extra%3)
			pad := subPadding(fp.Modulus(), fp.BitsPerLimb(), of, nbLimbs)
			total := new(big.Int)
			if err := recompose(pad, fp.BitsPerLimb(), total); err != nil {
				return false
			}
			if new(big.Int).Mod(total, fp.Modulus()).Sign() != 0 {
				return false
			}
			// every padding limb must dominate any subtrahend limb with the
			// given overflow so that limb-wise subtraction never underflows
			minLimb := new(big.Int).Lsh(big.NewInt(1), fp.BitsPerLimb()+of)
			for _, l := range pad {
				if l.Cmp(minLimb) < 0 {
					return false
				}
			}
			return true
		},
		gen.UInt8(),
		gen.UInt8(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSubPaddingZeroModulusPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic with zero modulus")
		}
	}()
	subPadding(big.NewInt(0), 8, 0, 4)
}
