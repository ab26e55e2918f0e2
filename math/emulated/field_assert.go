package emulated

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// enforceWidthConditional constrains the limb widths of the element if it
// was not built by a method of this field. It returns true if new
// constraints were added. Elements built in-package and compile-time
// constants are already canonical and are skipped.
func (f *Field[T]) enforceWidthConditional(a *Element[T]) (didConstrain bool) {
	if a.internal {
		return false
	}
	if _, aConst := f.constantValue(a); aConst {
		a.internal = true
		return false
	}
	// witness element or raw limbs from the caller
	f.enforceWidth(a, true)
	a.internal = true
	return true
}

// enforceWidth enforces the width of the limbs. When modWidth is true, then
// the limbs are asserted to be the width of the modulus (the highest limb
// may be less than full limb width). Otherwise, every limb is asserted to
// have the full limb width of the field parameter.
func (f *Field[T]) enforceWidth(a *Element[T], modWidth bool) {
	if modWidth && len(a.Limbs) != int(f.fParams.NbLimbs()) {
		panic("enforcing modulus width element with inexact number of limbs")
	}
	for i := range a.Limbs {
		limbNbBits := int(f.fParams.BitsPerLimb())
		if modWidth && i == len(a.Limbs)-1 {
			// take only required bits from the most significant limb
			limbNbBits = ((f.fParams.Modulus().BitLen() - 1) % int(f.fParams.BitsPerLimb())) + 1
		}
		f.checker.Check(a.Limbs[i], limbNbBits)
	}
}

// AssertLimbsEquality asserts that the limbs represent the same integer
// value. This is a strict comparison of the represented integers, not of the
// residues; for equality modulo the field order use [Field.AssertIsEqual].
//
// The equality is proven over two moduli at once: the recompositions must
// agree modulo the native field, and the limbs must agree under a carry
// decomposition modulo a power of two covering the overflow bounds. Under
// the overflow budget of the field the two checks pin the equality over the
// integers.
func (f *Field[T]) AssertLimbsEquality(a, b *Element[T]) {
	f.enforceWidthConditional(a)
	f.enforceWidthConditional(b)
	ba, aConst := f.constantValue(a)
	bb, bConst := f.constantValue(b)
	if aConst && bConst {
		if ba.Cmp(bb) != 0 {
			panic(fmt.Errorf("constant values are different: %s != %s", ba.String(), bb.String()))
		}
		return
	}

	// regroup the limbs to fill the native capacity; with a wide native field
	// this cuts the number of carry decompositions several-fold
	ca, cb, bitsPerLimb := f.compact(a, b)

	// cheap half: the recomposed values must agree modulo the native field
	f.api.AssertIsEqual(f.evalAtBase(ca, bitsPerLimb), f.evalAtBase(cb, bitsPerLimb))

	// carry half: limb-wise comparison lifting the differences to the next
	// limb through range-checked carries
	f.assertLimbsEqualitySlow(ca, cb, bitsPerLimb, max(a.overflow, b.overflow))
}

// evalAtBase returns the native-field recomposition of the limbs at radix
// 2^nbBits.
func (f *Field[T]) evalAtBase(limbs []frontend.Variable, nbBits uint) frontend.Variable {
	var acc frontend.Variable = 0
	for i := range limbs {
		coeff := new(big.Int).Lsh(big.NewInt(1), nbBits*uint(i))
		acc = f.api.Add(acc, f.api.Mul(limbs[i], coeff))
	}
	return acc
}

// assertLimbsEqualitySlow asserts that the two slices of limbs represent the
// same integer value by propagating exact carries limb to limb. This is the
// most costly routine in the package as it decomposes every limb difference.
func (f *Field[T]) assertLimbsEqualitySlow(l, r []frontend.Variable, nbBits, nbCarryBits uint) {
	nbLimbs := max(len(l), len(r))
	maxValue := new(big.Int).Lsh(big.NewInt(1), nbBits+nbCarryBits)
	maxValueShift := new(big.Int).Lsh(big.NewInt(1), nbCarryBits)

	var carry frontend.Variable = 0
	for i := 0; i < nbLimbs; i++ {
		diff := f.api.Add(maxValue, carry)
		if i < len(l) {
			diff = f.api.Add(diff, l[i])
		}
		if i < len(r) {
			diff = f.api.Sub(diff, r[i])
		}
		if i > 0 {
			diff = f.api.Sub(diff, maxValueShift)
		}

		// carry is stored in the bits diff[nbBits:nbBits+nbCarryBits+1]. For
		// equal limbs diff[:nbBits] are zero bits, which the clean right
		// shift enforces.
		carry = f.rsh(diff, int(nbBits), int(nbBits+nbCarryBits+1))
	}
	f.api.AssertIsEqual(carry, maxValueShift)
}

// rsh returns v >> startDigit, enforcing that the dropped bits are zero and
// that the result fits into endDigit-startDigit bits.
func (f *Field[T]) rsh(v frontend.Variable, startDigit, endDigit int) frontend.Variable {
	// if v is a constant, work with the big int value
	if c, ok := f.api.Compiler().ConstantValue(v); ok {
		return new(big.Int).Rsh(c, uint(startDigit))
	}
	shifted, err := f.api.Compiler().NewHint(RightShift, 1, startDigit, v)
	if err != nil {
		panic(fmt.Sprintf("right shift: %v", err))
	}
	f.checker.Check(shifted[0], endDigit-startDigit)
	shift := new(big.Int).Lsh(big.NewInt(1), uint(startDigit))
	composed := f.api.Mul(shifted[0], shift)
	f.api.AssertIsEqual(composed, v)
	return shifted[0]
}

// AssertIsEqual ensures that a is equal to b modulo the field order.
func (f *Field[T]) AssertIsEqual(a, b *Element[T]) {
	f.enforceWidthConditional(a)
	f.enforceWidthConditional(b)
	ba, aConst := f.constantValue(a)
	bb, bConst := f.constantValue(b)
	if aConst && bConst {
		ba.Mod(ba, f.fParams.Modulus())
		bb.Mod(bb, f.fParams.Modulus())
		if ba.Cmp(bb) != 0 {
			panic(fmt.Sprintf("%s != %s", ba, bb))
		}
		return
	}

	diff := f.Sub(b, a)

	// we compute k such that diff / p == k. So essentially, we say "I know
	// an element k such that k*p == diff", hence diff == 0 mod p.
	p := f.Modulus()
	k, err := f.computeQuoHint(diff)
	if err != nil {
		panic(fmt.Sprintf("hint error: %v", err))
	}

	kp := f.reduceAndOp(f.mul, f.mulPreCond, k, p)

	f.AssertLimbsEquality(diff, kp)
}

// AssertIsLessOrEqual ensures that e is less or equal than a. Both inputs
// must be reduced; for a proper bitwise comparison first reduce the element
// using [Field.Reduce] and then assert that its value is less than the
// modulus using [Field.AssertIsInRange].
func (f *Field[T]) AssertIsLessOrEqual(e, a *Element[T]) {
	// we omit conditional width assertion as is done in ToBits below
	if e.overflow+a.overflow > 0 {
		panic("inputs must have 0 overflow")
	}
	eBits := f.ToBits(e)
	aBits := f.ToBits(a)
	ff := func(xbits, ybits []frontend.Variable) []frontend.Variable {
		diff := len(xbits) - len(ybits)
		ybits = append(ybits, make([]frontend.Variable, diff)...)
		for i := len(ybits) - diff; i < len(ybits); i++ {
			ybits[i] = 0
		}
		return ybits
	}
	if len(eBits) > len(aBits) {
		aBits = ff(eBits, aBits)
	} else {
		eBits = ff(aBits, eBits)
	}
	p := make([]frontend.Variable, len(eBits)+1)
	p[len(eBits)] = 1
	for i := len(eBits) - 1; i >= 0; i-- {
		v := f.api.Mul(p[i+1], eBits[i])
		p[i] = f.api.Select(aBits[i], v, p[i+1])
		t := f.api.Select(aBits[i], 0, p[i+1])
		l := f.api.Sub(1, t, eBits[i])
		ll := f.api.Mul(l, eBits[i])
		f.api.AssertIsEqual(ll, 0)
	}
}

// AssertIsInRange ensures that a is less than the emulated modulus. When we
// call [Field.Reduce] then we only ensure that the result is
// width-constrained, but not actually less than the modulus. This means that
// the actual value may be either x or x + p. For arithmetic it is
// sufficient, but for binary comparison it is not. For binary comparison the
// values have both to be below the modulus.
func (f *Field[T]) AssertIsInRange(a *Element[T]) {
	// we omit conditional width assertion as is done in ToBits down the
	// calling stack
	f.AssertIsLessOrEqual(a, f.modulusPrev())
}

// IsZero returns a boolean indicating if the element is strictly zero. The
// method internally reduces the element and asserts that the value is less
// than the modulus, so that zero has a unique limb representation.
func (f *Field[T]) IsZero(a *Element[T]) frontend.Variable {
	ca := f.ReduceStrict(a)
	res := f.api.IsZero(ca.Limbs[0])
	for i := 1; i < len(ca.Limbs); i++ {
		res = f.api.Mul(res, f.api.IsZero(ca.Limbs[i]))
	}
	return res
}
