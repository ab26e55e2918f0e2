package emulated

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// Element defines an element in the emulated field. The limbs are stored in
// little-endian order: the value represented is
//
//	\sum_{i=0}^{len(Limbs)} Limbs[i] * 2^{BitsPerLimb * i}
//
// The type parameter defines the field this element belongs to.
type Element[T FieldParams] struct {
	// Limbs is the decomposition of the integer value into limbs in the
	// native field. To enforce that the limbs are of expected width, use
	// [Field.PackLimbs] on elements constructed from raw limbs.
	Limbs []frontend.Variable

	// overflow is the number of bits on top of BitsPerLimb which may be
	// carried by every limb. Operations track it so that limbs never wrap
	// around the native modulus; reduction resets it to zero.
	overflow uint

	// internal indicates that the element was constructed by a method of
	// [Field] and its limb widths are already enforced. Elements arriving
	// from the witness or from raw limbs have it unset and get their limbs
	// range-checked on first use.
	internal bool
}

// ValueOf returns an Element[T] from the given constant. The input is
// reduced modulo the field and decomposed into limbs eagerly, so the result
// is usable both as a witness assignment and as an in-circuit constant.
//
// Supported types for the constant are [big.Int], *[big.Int], signed and
// unsigned Go integers, decimal strings, byte slices and any type exposing
// a BigInt(*big.Int) method (which covers gnark-crypto field elements).
func ValueOf[T FieldParams](constant interface{}) Element[T] {
	if constant == nil {
		r := newConstElement[T](big.NewInt(0))
		return *r
	}
	r := newConstElement[T](constant)
	return *r
}

// newConstElement is shorthand for initialising new element using
// [ValueOf] and taking a pointer to it. Only the value-returning variant is
// public as the witness parser does not follow pointers.
func newConstElement[T FieldParams](v interface{}) *Element[T] {
	var fp T
	// convert to big.Int
	bValue := fromInterface(v)
	// mod reduce
	if fp.Modulus().Cmp(&bValue) != 0 {
		bValue.Mod(&bValue, fp.Modulus())
	}
	// decompose into limbs
	blimbs := make([]*big.Int, fp.NbLimbs())
	for i := range blimbs {
		blimbs[i] = new(big.Int)
	}
	if err := decompose(&bValue, fp.BitsPerLimb(), blimbs); err != nil {
		panic(fmt.Errorf("decompose value: %w", err))
	}
	// assign limb values
	limbs := make([]frontend.Variable, len(blimbs))
	for i := range limbs {
		limbs[i] = frontend.Variable(blimbs[i])
	}
	return &Element[T]{
		Limbs:    limbs,
		overflow: 0,
		internal: true,
	}
}

// GnarkInitHook describes how to initialise the element. The frontend calls
// it on zero-value elements during circuit parsing so that the limb slices
// are allocated to the width of the field before wire assignment.
func (e *Element[T]) GnarkInitHook() {
	if e.Limbs == nil {
		*e = ValueOf[T](0)
		e.internal = false // we need to constrain in later.
	}
}

// Initialize implements [schema.Initializable]; gnark's frontend calls it on
// zero-value elements during circuit parsing. It delegates to
// [Element.GnarkInitHook], the field modulus being fixed by the type
// parameter.
func (e *Element[T]) Initialize(*big.Int) {
	e.GnarkInitHook()
}

// newInternalElement sets the limbs and overflow. Given as a function for
// later-possible bookkeeping at construction time.
func (f *Field[T]) newInternalElement(limbs []frontend.Variable, overflow uint) *Element[T] {
	return &Element[T]{Limbs: limbs, overflow: overflow, internal: true}
}

// fromInterface converts the supported constant representations into a
// big.Int. It panics on unsupported types as the conversion happens at
// circuit definition time where there is no error path to the caller.
func fromInterface(input interface{}) big.Int {
	var r big.Int
	switch v := input.(type) {
	case big.Int:
		r.Set(&v)
	case *big.Int:
		r.Set(v)
	case uint8:
		r.SetUint64(uint64(v))
	case uint16:
		r.SetUint64(uint64(v))
	case uint32:
		r.SetUint64(uint64(v))
	case uint64:
		r.SetUint64(v)
	case uint:
		r.SetUint64(uint64(v))
	case int8:
		r.SetInt64(int64(v))
	case int16:
		r.SetInt64(int64(v))
	case int32:
		r.SetInt64(int64(v))
	case int64:
		r.SetInt64(v)
	case int:
		r.SetInt64(int64(v))
	case string:
		if _, ok := r.SetString(v, 10); !ok {
			panic(fmt.Sprintf("unable to parse %q as base-10 integer", v))
		}
	case []byte:
		r.SetBytes(v)
	default:
		if bv, ok := input.(interface{ BigInt(*big.Int) *big.Int }); ok {
			bv.BigInt(&r)
			return r
		}
		panic(fmt.Sprintf("value to *big.Int not supported for type %T", input))
	}
	return r
}
