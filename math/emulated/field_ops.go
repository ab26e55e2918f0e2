package emulated

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// Div computes a/b and returns it. It uses [Inverse]-like hinting and
// requires the modulus to be prime.
func (f *Field[T]) Div(a, b *Element[T]) *Element[T] {
	if !f.fParams.IsPrime() {
		// the hint computes the inverse of the denominator modulo the
		// modulus, which exists in general only for prime moduli
		panic("modulus not a prime")
	}
	f.enforceWidthConditional(a)
	f.enforceWidthConditional(b)
	div, err := f.computeDivisionHint(a.Limbs, b.Limbs)
	if err != nil {
		panic(fmt.Sprintf("compute division: %v", err))
	}
	e := f.PackLimbs(div)
	res := f.Mul(e, b)
	f.AssertIsEqual(res, a)
	return e
}

// Inverse compute 1/a and returns it. It requires the modulus to be prime.
func (f *Field[T]) Inverse(a *Element[T]) *Element[T] {
	if !f.fParams.IsPrime() {
		panic("modulus not a prime")
	}
	f.enforceWidthConditional(a)
	k, err := f.computeInverseHint(a.Limbs)
	if err != nil {
		panic(fmt.Sprintf("compute inverse: %v", err))
	}
	e := f.PackLimbs(k)
	res := f.Mul(e, a)
	one := f.One()
	f.AssertIsEqual(res, one)
	return e
}

// Add computes a+b and returns it. If the result wouldn't fit the overflow
// budget, the narrower operand is reduced first.
func (f *Field[T]) Add(a, b *Element[T]) *Element[T] {
	return f.reduceAndOp(f.add, f.addPreCond, a, b)
}

// AddMutable is as [Field.Add], but replaces the operands with their reduced
// forms when reduction is triggered, saving repeated reductions of the same
// element later.
func (f *Field[T]) AddMutable(a, b *Element[T]) *Element[T] {
	return f.reduceAndOpMutable(f.add, f.addPreCond, a, b)
}

func (f *Field[T]) addPreCond(a, b *Element[T]) (nextOverflow uint, err error) {
	reduceRight := a.overflow < b.overflow
	nextOverflow = max(a.overflow, b.overflow) + 1
	if nextOverflow > f.maxOverflow() {
		err = errOverflow{op: "add", nextOverflow: nextOverflow, maxOverflow: f.maxOverflow(), reduceRight: reduceRight}
	}
	return
}

func (f *Field[T]) add(a, b *Element[T], nextOverflow uint) *Element[T] {
	ba, aConst := f.constantValue(a)
	bb, bConst := f.constantValue(b)
	if aConst && bConst {
		ba.Add(ba, bb).Mod(ba, f.fParams.Modulus())
		return newConstElement[T](ba)
	}

	nbLimbs := max(len(a.Limbs), len(b.Limbs))
	limbs := make([]frontend.Variable, nbLimbs)
	for i := range limbs {
		limbs[i] = frontend.Variable(0)
		if i < len(a.Limbs) {
			limbs[i] = f.api.Add(limbs[i], a.Limbs[i])
		}
		if i < len(b.Limbs) {
			limbs[i] = f.api.Add(limbs[i], b.Limbs[i])
		}
	}
	return f.newInternalElement(limbs, nextOverflow)
}

// Mul computes a*b and returns it. The returned element keeps the limb
// convolution unreduced; use [Field.MulMod] when the result should be
// reduced right away.
func (f *Field[T]) Mul(a, b *Element[T]) *Element[T] {
	return f.reduceAndOp(f.mul, f.mulPreCond, a, b)
}

// MulMod computes a*b and reduces it modulo the field order.
func (f *Field[T]) MulMod(a, b *Element[T]) *Element[T] {
	r := f.Mul(a, b)
	return f.Reduce(r)
}

// MulConst multiplies a by a small constant c. Multiplication by a constant
// scales the limbs in place without a convolution hint, costing only
// c.BitLen() extra overflow bits.
func (f *Field[T]) MulConst(a *Element[T], c *big.Int) *Element[T] {
	switch c.Sign() {
	case -1:
		return f.Neg(f.MulConst(a, new(big.Int).Neg(c)))
	case 0:
		return f.Zero()
	}
	cbl := uint(c.BitLen())
	if cbl > f.maxOverflow() {
		panic(fmt.Sprintf("constant bit length %d exceeds max overflow %d", cbl, f.maxOverflow()))
	}
	f.enforceWidthConditional(a)
	for a.overflow+cbl > f.maxOverflow() {
		a = f.Reduce(a)
	}
	if ba, aConst := f.constantValue(a); aConst {
		ba.Mul(ba, c).Mod(ba, f.fParams.Modulus())
		return newConstElement[T](ba)
	}
	limbs := make([]frontend.Variable, len(a.Limbs))
	for i := range a.Limbs {
		limbs[i] = f.api.Mul(a.Limbs[i], c)
	}
	return f.newInternalElement(limbs, a.overflow+cbl)
}

func (f *Field[T]) mulPreCond(a, b *Element[T]) (nextOverflow uint, err error) {
	reduceRight := a.overflow < b.overflow
	nbResLimbs := nbMultiplicationResLimbs(len(a.Limbs), len(b.Limbs))
	nextOverflow = f.fParams.BitsPerLimb() + uint(math.Log2(float64(2*nbResLimbs-1))) + 1 + a.overflow + b.overflow
	if nextOverflow > f.maxOverflow() {
		err = errOverflow{op: "mul", nextOverflow: nextOverflow, maxOverflow: f.maxOverflow(), reduceRight: reduceRight}
	}
	return
}

func (f *Field[T]) mul(a, b *Element[T], nextOverflow uint) *Element[T] {
	ba, aConst := f.constantValue(a)
	bb, bConst := f.constantValue(b)
	if aConst && bConst {
		ba.Mul(ba, bb).Mod(ba, f.fParams.Modulus())
		return newConstElement[T](ba)
	}

	// mulResult contains the result (out of circuit) of a * b school book
	// multiplication: len(mulResult) == len(a) + len(b) - 1
	mulResult, err := f.computeMultiplicationHint(a.Limbs, b.Limbs)
	if err != nil {
		panic(fmt.Sprintf("multiplication hint: %s", err))
	}

	// the hint output is a free witness; bind it to the in-circuit a and b by
	// checking the polynomial identity (\sum_{i} a_i X^i) * (\sum_i b_i X^i)
	// == (\sum_i z_i X^i) at len(mulResult) points X = 2^c. A degree
	// 2m-2 identity holding at 2m-1 points holds identically.
	w := new(big.Int)
	for c := 1; c <= len(mulResult); c++ {
		w.SetInt64(1) // c^i
		l := a.Limbs[0]
		r := b.Limbs[0]
		o := mulResult[0]

		for i := 1; i < len(mulResult); i++ {
			w.Lsh(w, uint(c))
			if i < len(a.Limbs) {
				l = f.api.Add(l, f.api.Mul(a.Limbs[i], w))
			}
			if i < len(b.Limbs) {
				r = f.api.Add(r, f.api.Mul(b.Limbs[i], w))
			}
			o = f.api.Add(o, f.api.Mul(mulResult[i], w))
		}
		f.api.AssertIsEqual(f.api.Mul(l, r), o)
	}
	return f.newInternalElement(mulResult, nextOverflow)
}

// Reduce reduces a modulo the field order and returns it. The result is
// width-constrained but not proven canonical: its value is in [0, 2p). Use
// [Field.ReduceStrict] where the canonical representative is required.
func (f *Field[T]) Reduce(a *Element[T]) *Element[T] {
	f.enforceWidthConditional(a)
	if a.overflow == 0 {
		// fast path - already reduced, omit reduction.
		return a
	}
	// sanity check
	if _, aConst := f.constantValue(a); aConst {
		panic("trying to reduce a constant, which happen to have an overflow flag set")
	}

	// slow path - use hint to reduce value
	e, err := f.computeRemHint(a)
	if err != nil {
		panic(fmt.Sprintf("reduction hint: %v", err))
	}
	f.AssertIsEqual(e, a)
	return e
}

// ReduceStrict reduces a and additionally asserts that the result is
// strictly less than the modulus, making the limb decomposition canonical.
func (f *Field[T]) ReduceStrict(a *Element[T]) *Element[T] {
	e := f.Reduce(a)
	f.AssertIsInRange(e)
	return e
}

// Sub computes a-b and returns it. The subtraction is performed on padded
// limbs so that no limb underflows.
func (f *Field[T]) Sub(a, b *Element[T]) *Element[T] {
	return f.reduceAndOp(f.sub, f.subPreCond, a, b)
}

// SubMutable is as [Field.Sub], but replaces the operands with their reduced
// forms when reduction is triggered.
func (f *Field[T]) SubMutable(a, b *Element[T]) *Element[T] {
	return f.reduceAndOpMutable(f.sub, f.subPreCond, a, b)
}

func (f *Field[T]) subPreCond(a, b *Element[T]) (nextOverflow uint, err error) {
	reduceRight := a.overflow < b.overflow+2
	nextOverflow = max(b.overflow+2, a.overflow)
	if nextOverflow > f.maxOverflow() {
		err = errOverflow{op: "sub", nextOverflow: nextOverflow, maxOverflow: f.maxOverflow(), reduceRight: reduceRight}
	}
	return
}

func (f *Field[T]) sub(a, b *Element[T], nextOverflow uint) *Element[T] {
	ba, aConst := f.constantValue(a)
	bb, bConst := f.constantValue(b)
	if aConst && bConst {
		ba.Sub(ba, bb).Mod(ba, f.fParams.Modulus())
		return newConstElement[T](ba)
	}

	// first we have to compute padding to ensure that the subtraction does
	// not underflow. The padding is a multiple of the modulus, so the residue
	// is unchanged.
	nbLimbs := max(len(a.Limbs), len(b.Limbs))
	limbs := make([]frontend.Variable, nbLimbs)
	padLimbs := subPadding(f.fParams.Modulus(), f.fParams.BitsPerLimb(), b.overflow, uint(nbLimbs))
	for i := range limbs {
		limbs[i] = frontend.Variable(padLimbs[i])
		if i < len(a.Limbs) {
			limbs[i] = f.api.Add(limbs[i], a.Limbs[i])
		}
		if i < len(b.Limbs) {
			limbs[i] = f.api.Sub(limbs[i], b.Limbs[i])
		}
	}
	return f.newInternalElement(limbs, nextOverflow)
}

// Neg computes -a and returns it.
func (f *Field[T]) Neg(a *Element[T]) *Element[T] {
	return f.Sub(f.Zero(), a)
}

// Select sets e to a if selector == 1 and to b otherwise. The operands may
// have different overflows and limb counts; the result carries the larger of
// the bounds.
func (f *Field[T]) Select(selector frontend.Variable, a, b *Element[T]) *Element[T] {
	f.enforceWidthConditional(a)
	f.enforceWidthConditional(b)
	overflow := max(a.overflow, b.overflow)
	nbLimbs := max(len(a.Limbs), len(b.Limbs))
	e := f.newInternalElement(make([]frontend.Variable, nbLimbs), overflow)
	normalize := func(limbs []frontend.Variable) []frontend.Variable {
		if len(limbs) < nbLimbs {
			tail := make([]frontend.Variable, nbLimbs-len(limbs))
			for i := range tail {
				tail[i] = 0
			}
			return append(limbs, tail...)
		}
		return limbs
	}
	aNormLimbs := normalize(a.Limbs)
	bNormLimbs := normalize(b.Limbs)
	for i := range e.Limbs {
		e.Limbs[i] = f.api.Select(selector, aNormLimbs[i], bNormLimbs[i])
	}
	return e
}

// Lookup2 performs a two-bit lookup between a, b, c, d based on bits b0 and
// b1. Returns a if b0=b1=0, b if b0=1 and b1=0, c if b0=0 and b1=1 and d if
// b0=b1=1.
func (f *Field[T]) Lookup2(b0, b1 frontend.Variable, a, b, c, d *Element[T]) *Element[T] {
	f.enforceWidthConditional(a)
	f.enforceWidthConditional(b)
	f.enforceWidthConditional(c)
	f.enforceWidthConditional(d)
	overflow := max(a.overflow, b.overflow, c.overflow, d.overflow)
	nbLimbs := max(len(a.Limbs), len(b.Limbs), len(c.Limbs), len(d.Limbs))
	e := f.newInternalElement(make([]frontend.Variable, nbLimbs), overflow)
	normalize := func(limbs []frontend.Variable) []frontend.Variable {
		if len(limbs) < nbLimbs {
			tail := make([]frontend.Variable, nbLimbs-len(limbs))
			for i := range tail {
				tail[i] = 0
			}
			return append(limbs, tail...)
		}
		return limbs
	}
	aNormLimbs := normalize(a.Limbs)
	bNormLimbs := normalize(b.Limbs)
	cNormLimbs := normalize(c.Limbs)
	dNormLimbs := normalize(d.Limbs)
	for i := range e.Limbs {
		e.Limbs[i] = f.api.Lookup2(b0, b1, aNormLimbs[i], bNormLimbs[i], cNormLimbs[i], dNormLimbs[i])
	}
	return e
}

// reduceAndOp applies op on the inputs. If the pre-condition check preCond
// errs, then it first reduces the input arguments. The reduction is done
// one-by-one with the element with the highest overflow reduced first.
func (f *Field[T]) reduceAndOp(op func(*Element[T], *Element[T], uint) *Element[T], preCond func(*Element[T], *Element[T]) (uint, error), a, b *Element[T]) *Element[T] {
	f.enforceWidthConditional(a)
	f.enforceWidthConditional(b)
	var nextOverflow uint
	var err error
	var target errOverflow

	for nextOverflow, err = preCond(a, b); errors.As(err, &target); nextOverflow, err = preCond(a, b) {
		if !target.reduceRight {
			a = f.Reduce(a)
		} else {
			b = f.Reduce(b)
		}
	}
	return op(a, b, nextOverflow)
}

func (f *Field[T]) reduceAndOpMutable(op func(*Element[T], *Element[T], uint) *Element[T], preCond func(*Element[T], *Element[T]) (uint, error), a, b *Element[T]) *Element[T] {
	f.enforceWidthConditional(a)
	f.enforceWidthConditional(b)
	var nextOverflow uint
	var err error
	var target errOverflow

	for nextOverflow, err = preCond(a, b); errors.As(err, &target); nextOverflow, err = preCond(a, b) {
		if !target.reduceRight {
			*a = *f.Reduce(a)
		} else {
			*b = *f.Reduce(b)
		}
	}
	return op(a, b, nextOverflow)
}

type errOverflow struct {
	op           string
	nextOverflow uint
	maxOverflow  uint
	reduceRight  bool
}

func (e errOverflow) Error() string {
	return fmt.Sprintf("op %s overflow %d exceeds max %d", e.op, e.nextOverflow, e.maxOverflow)
}
