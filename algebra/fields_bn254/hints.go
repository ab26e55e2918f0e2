package fields_bn254

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark/constraint/solver"

	"github.com/consensys/zkecc/math/emulated"
)

func init() {
	solver.RegisterHint(GetHints()...)
}

// GetHints returns all hint functions used in the package.
func GetHints() []solver.Hint {
	return []solver.Hint{
		divE6Hint,
		inverseE6Hint,
		divE12Hint,
		inverseE12Hint,
	}
}

// The circuit tower is coefficient-compatible with the gnark-crypto tower,
// so the hints transfer values without basis conversion.

func setE6(a *bn254.E6, coords []*big.Int) {
	a.B0.A0.SetBigInt(coords[0])
	a.B0.A1.SetBigInt(coords[1])
	a.B1.A0.SetBigInt(coords[2])
	a.B1.A1.SetBigInt(coords[3])
	a.B2.A0.SetBigInt(coords[4])
	a.B2.A1.SetBigInt(coords[5])
}

func getE6(a *bn254.E6, coords []*big.Int) {
	a.B0.A0.BigInt(coords[0])
	a.B0.A1.BigInt(coords[1])
	a.B1.A0.BigInt(coords[2])
	a.B1.A1.BigInt(coords[3])
	a.B2.A0.BigInt(coords[4])
	a.B2.A1.BigInt(coords[5])
}

func setE12(a *bn254.E12, coords []*big.Int) {
	setE6(&a.C0, coords[:6])
	setE6(&a.C1, coords[6:])
}

func getE12(a *bn254.E12, coords []*big.Int) {
	getE6(&a.C0, coords[:6])
	getE6(&a.C1, coords[6:])
}

func inverseE6Hint(nativeMod *big.Int, nativeInputs, nativeOutputs []*big.Int) error {
	return emulated.UnwrapHint(nativeInputs, nativeOutputs,
		func(mod *big.Int, inputs, outputs []*big.Int) error {
			var a, c bn254.E6
			setE6(&a, inputs)
			c.Inverse(&a)
			getE6(&c, outputs)
			return nil
		})
}

func divE6Hint(nativeMod *big.Int, nativeInputs, nativeOutputs []*big.Int) error {
	return emulated.UnwrapHint(nativeInputs, nativeOutputs,
		func(mod *big.Int, inputs, outputs []*big.Int) error {
			var a, b, c bn254.E6
			setE6(&a, inputs[:6])
			setE6(&b, inputs[6:])
			c.Inverse(&b).Mul(&c, &a)
			getE6(&c, outputs)
			return nil
		})
}

func inverseE12Hint(nativeMod *big.Int, nativeInputs, nativeOutputs []*big.Int) error {
	return emulated.UnwrapHint(nativeInputs, nativeOutputs,
		func(mod *big.Int, inputs, outputs []*big.Int) error {
			var a, c bn254.E12
			setE12(&a, inputs)
			c.Inverse(&a)
			getE12(&c, outputs)
			return nil
		})
}

func divE12Hint(nativeMod *big.Int, nativeInputs, nativeOutputs []*big.Int) error {
	return emulated.UnwrapHint(nativeInputs, nativeOutputs,
		func(mod *big.Int, inputs, outputs []*big.Int) error {
			var a, b, c bn254.E12
			setE12(&a, inputs[:12])
			setE12(&b, inputs[12:])
			c.Inverse(&b).Mul(&c, &a)
			getE12(&c, outputs)
			return nil
		})
}
