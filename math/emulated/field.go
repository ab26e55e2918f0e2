package emulated

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/rangecheck"
	"github.com/rs/zerolog"

	"github.com/consensys/zkecc/logger"
)

// Field holds the configuration for non-native field operations over the
// modulus defined by the type parameter. The zero value is invalid, use
// [NewField] for initialising.
//
// All operations on the field take and return pointers to [Element]. The
// elements are immutable from the caller's point of view: operations
// allocate new elements and may replace a passed pointer's target only with
// an equivalent reduced representation.
type Field[T FieldParams] struct {
	fParams T

	api     frontend.API
	checker frontend.Rangechecker

	log zerolog.Logger

	// maxOf is the maximum overflow before the operands must be reduced.
	maxOf     uint
	maxOfOnce sync.Once

	// constants for often used elements n, n-1, 0 and 1. Allocated only once
	nConstOnce     sync.Once
	nConst         *Element[T]
	nprevConstOnce sync.Once
	nprevConst     *Element[T]
	zeroConstOnce  sync.Once
	zeroConst      *Element[T]
	oneConstOnce   sync.Once
	oneConst       *Element[T]
}

// NewField returns an object to be used in-circuit to perform emulated
// arithmetic over the field defined by the type parameter. The operations on
// this type are defined on [Element].
//
// It returns an error if the parametrisation is invalid for the native field
// of the builder: the modulus must fit into the declared limbs and the
// product of two limbs (with an overflow bit) must fit into a native
// element, otherwise the multiplication and carry checks would be unsound.
func NewField[T FieldParams](native frontend.API) (*Field[T], error) {
	f := &Field[T]{
		api: native,
		log: logger.Logger(),
	}

	if f.api == nil {
		return f, errors.New("api is not initialized")
	}
	if f.fParams.Modulus().Cmp(big.NewInt(1)) < 1 {
		return f, errors.New("modulus is less or equal to one")
	}
	if f.fParams.BitsPerLimb() < 3 {
		// even three is way too small, but it should probably work
		return f, errors.New("limbs must be at least three bits wide")
	}
	if uint(f.fParams.Modulus().BitLen()) > f.fParams.NbLimbs()*f.fParams.BitsPerLimb() {
		return f, fmt.Errorf("modulus bit length %d does not fit into %d limbs of %d bits",
			f.fParams.Modulus().BitLen(), f.fParams.NbLimbs(), f.fParams.BitsPerLimb())
	}
	// the widest values we put into a single native element are products of
	// two limbs plus a carry bit. If that does not fit, the limb equality
	// checks do not hold over the integers and the whole construction is
	// unsound for this native field.
	if 2*f.fParams.BitsPerLimb()+1 > uint(f.api.Compiler().FieldBitLen()) {
		return f, fmt.Errorf("native field bit length %d is too small for %d bit limbs",
			f.api.Compiler().FieldBitLen(), f.fParams.BitsPerLimb())
	}

	f.checker = rangecheck.New(native)

	return f, nil
}

// NewElement builds a fixed element from the given value. The value is
// converted with the same rules as [ValueOf]. If the value is already an
// [Element], it is returned as is.
func (f *Field[T]) NewElement(v interface{}) *Element[T] {
	if e, ok := v.(Element[T]); ok {
		return &e
	}
	if e, ok := v.(*Element[T]); ok {
		return e
	}
	c := ValueOf[T](v)
	return &c
}

// Zero returns zero as a constant.
func (f *Field[T]) Zero() *Element[T] {
	f.zeroConstOnce.Do(func() {
		f.zeroConst = newConstElement[T](0)
	})
	return f.zeroConst
}

// One returns one as a constant.
func (f *Field[T]) One() *Element[T] {
	f.oneConstOnce.Do(func() {
		f.oneConst = newConstElement[T](1)
	})
	return f.oneConst
}

// Modulus returns the emulated modulus as a constant. The returned element
// is not reduced (the reduced form of the modulus is zero).
func (f *Field[T]) Modulus() *Element[T] {
	f.nConstOnce.Do(func() {
		f.nConst = newConstElement[T](f.fParams.Modulus())
	})
	return f.nConst
}

// modulusPrev returns modulus-1 as a constant, used as the upper bound of
// canonical representations.
func (f *Field[T]) modulusPrev() *Element[T] {
	f.nprevConstOnce.Do(func() {
		f.nprevConst = newConstElement[T](new(big.Int).Sub(f.fParams.Modulus(), big.NewInt(1)))
	})
	return f.nprevConst
}

// PackLimbs returns an element from the given limbs, after enforcing that
// every limb is at most BitsPerLimb bits wide. Use it to bring externally
// constructed limb vectors into the field.
func (f *Field[T]) PackLimbs(limbs []frontend.Variable) *Element[T] {
	e := f.newInternalElement(limbs, 0)
	f.enforceWidth(e, true)
	return e
}

// packHintLimbs wraps raw hint outputs without the modulus-width top-limb
// restriction. The limb count may differ from NbLimbs (quotients).
func (f *Field[T]) packHintLimbs(limbs []frontend.Variable) *Element[T] {
	e := f.newInternalElement(limbs, 0)
	f.enforceWidth(e, false)
	return e
}

// maxOverflow returns the maximal possible overflow for the element limbs.
// If the overflow of the next operation exceeds it, then the operands must
// first be reduced.
func (f *Field[T]) maxOverflow() uint {
	f.maxOfOnce.Do(func() {
		f.maxOf = uint(f.api.Compiler().FieldBitLen()-1) - f.fParams.BitsPerLimb()
	})
	return f.maxOf
}

// constantValue returns the constant integer value of the element if all its
// limbs are compile-time constants.
func (f *Field[T]) constantValue(v *Element[T]) (*big.Int, bool) {
	var ok bool
	constLimbs := make([]*big.Int, len(v.Limbs))
	for i, l := range v.Limbs {
		if constLimbs[i], ok = f.api.Compiler().ConstantValue(l); !ok {
			return nil, false
		}
	}
	res := new(big.Int)
	if err := recompose(constLimbs, f.fParams.BitsPerLimb(), res); err != nil {
		f.log.Error().Err(err).Msg("recomposing constant")
		return nil, false
	}
	return res, true
}

// compact returns the limbs of the inputs regrouped to fill the native field
// capacity. Wider groups mean fewer carry decompositions in the limb
// equality check.
func (f *Field[T]) compact(a, b *Element[T]) (ac, bc []frontend.Variable, bitsPerLimb uint) {
	maxOverflow := max(a.overflow, b.overflow)
	// subtract one bit as can not potentially use all bits of native field
	// and one bit as a sign bit of the limb difference
	maxNbBits := uint(f.api.Compiler().FieldBitLen()) - 2 - maxOverflow
	groupSize := maxNbBits / f.fParams.BitsPerLimb()
	if groupSize == 0 {
		// no space for regrouping
		return a.Limbs, b.Limbs, f.fParams.BitsPerLimb()
	}
	bitsPerLimb = f.fParams.BitsPerLimb() * groupSize
	ac = f.compactLimbs(a, groupSize, bitsPerLimb)
	bc = f.compactLimbs(b, groupSize, bitsPerLimb)
	return
}

// compactLimbs groups the limbs of the element into wider limbs, groupSize
// original limbs per group.
func (f *Field[T]) compactLimbs(e *Element[T], groupSize, bitsPerLimb uint) []frontend.Variable {
	if f.fParams.BitsPerLimb() == bitsPerLimb {
		return e.Limbs
	}
	nbLimbs := (uint(len(e.Limbs)) + groupSize - 1) / groupSize
	r := make([]frontend.Variable, nbLimbs)
	coeffs := make([]*big.Int, groupSize)
	one := big.NewInt(1)
	for i := range coeffs {
		coeffs[i] = new(big.Int)
		coeffs[i].Lsh(one, f.fParams.BitsPerLimb()*uint(i))
	}
	for i := uint(0); i < nbLimbs; i++ {
		r[i] = frontend.Variable(0)
		for j := uint(0); j < groupSize && i*groupSize+j < uint(len(e.Limbs)); j++ {
			r[i] = f.api.Add(r[i], f.api.Mul(coeffs[j], e.Limbs[i*groupSize+j]))
		}
	}
	return r
}
