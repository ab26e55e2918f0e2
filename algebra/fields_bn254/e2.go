package fields_bn254

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark/frontend"

	"github.com/consensys/zkecc/math/emulated"
)

type curveF = emulated.Field[emulated.BN254Fp]
type baseEl = emulated.Element[emulated.BN254Fp]

// E2 is a degree two extension of the BN254 base field with the quadratic
// non-residue u² = -1. An element is A0 + A1·u.
type E2 struct {
	A0, A1 baseEl
}

// Ext2 implements the E2 arithmetic over the emulated base field.
type Ext2 struct {
	api frontend.API
	fp  *curveF
}

// NewExt2 returns a new [Ext2] instance. It panics when the base field
// emulation cannot be initialised over the native field.
func NewExt2(api frontend.API) *Ext2 {
	fp, err := emulated.NewField[emulated.BN254Fp](api)
	if err != nil {
		panic(err)
	}
	return &Ext2{api: api, fp: fp}
}

func (e Ext2) Zero() *E2 {
	z0 := e.fp.Zero()
	z1 := e.fp.Zero()
	return &E2{A0: *z0, A1: *z1}
}

func (e Ext2) One() *E2 {
	z0 := e.fp.One()
	z1 := e.fp.Zero()
	return &E2{A0: *z0, A1: *z1}
}

func (e Ext2) IsZero(z *E2) frontend.Variable {
	b0 := e.fp.IsZero(&z.A0)
	b1 := e.fp.IsZero(&z.A1)
	return e.api.And(b0, b1)
}

func (e Ext2) Add(x, y *E2) *E2 {
	z0 := e.fp.Add(&x.A0, &y.A0)
	z1 := e.fp.Add(&x.A1, &y.A1)
	return &E2{A0: *z0, A1: *z1}
}

func (e Ext2) Sub(x, y *E2) *E2 {
	z0 := e.fp.Sub(&x.A0, &y.A0)
	z1 := e.fp.Sub(&x.A1, &y.A1)
	return &E2{A0: *z0, A1: *z1}
}

func (e Ext2) Neg(x *E2) *E2 {
	z0 := e.fp.Neg(&x.A0)
	z1 := e.fp.Neg(&x.A1)
	return &E2{A0: *z0, A1: *z1}
}

func (e Ext2) Double(x *E2) *E2 {
	two := big.NewInt(2)
	z0 := e.fp.MulConst(&x.A0, two)
	z1 := e.fp.MulConst(&x.A1, two)
	return &E2{A0: *z0, A1: *z1}
}

// Conjugate returns A0 - A1·u.
func (e Ext2) Conjugate(x *E2) *E2 {
	z1 := e.fp.Neg(&x.A1)
	return &E2{A0: x.A0, A1: *z1}
}

// Mul multiplies x and y with the Karatsuba method using three base field
// multiplications.
func (e Ext2) Mul(x, y *E2) *E2 {
	a := e.fp.AddMutable(&x.A0, &x.A1)
	b := e.fp.AddMutable(&y.A0, &y.A1)
	a = e.fp.MulMod(a, b)
	b = e.fp.MulMod(&x.A0, &y.A0)
	c := e.fp.MulMod(&x.A1, &y.A1)
	z1 := e.fp.Sub(a, b)
	z1 = e.fp.Sub(z1, c)
	z0 := e.fp.Sub(b, c)
	return &E2{A0: *z0, A1: *z1}
}

// Square squares x using the complex squaring method with two base field
// multiplications.
func (e Ext2) Square(x *E2) *E2 {
	a := e.fp.AddMutable(&x.A0, &x.A1)
	b := e.fp.SubMutable(&x.A0, &x.A1)
	a = e.fp.MulMod(a, b)
	b = e.fp.MulMod(&x.A0, &x.A1)
	b = e.fp.MulConst(b, big.NewInt(2))
	return &E2{A0: *a, A1: *b}
}

// MulByElement multiplies both coefficients of x by the base field element y.
func (e Ext2) MulByElement(x *E2, y *baseEl) *E2 {
	z0 := e.fp.MulMod(&x.A0, y)
	z1 := e.fp.MulMod(&x.A1, y)
	return &E2{A0: *z0, A1: *z1}
}

// MulByNonResidue multiplies x by the sextic non-residue ξ = 9 + u:
//
//	(9+u)(a0+a1·u) = (9a0-a1) + (9a1+a0)·u
func (e Ext2) MulByNonResidue(x *E2) *E2 {
	nine := big.NewInt(9)
	a := e.fp.MulConst(&x.A0, nine)
	a = e.fp.Sub(a, &x.A1)
	b := e.fp.MulConst(&x.A1, nine)
	b = e.fp.Add(b, &x.A0)
	return &E2{A0: *a, A1: *b}
}

// Inverse computes 1/x through the norm: 1/(a0+a1·u) = (a0-a1·u)/(a0²+a1²).
// The witness solver fails when x is zero.
func (e Ext2) Inverse(x *E2) *E2 {
	t0 := e.fp.MulMod(&x.A0, &x.A0)
	t1 := e.fp.MulMod(&x.A1, &x.A1)
	t0 = e.fp.Add(t0, t1)
	t1 = e.fp.Inverse(t0)
	z0 := e.fp.MulMod(&x.A0, t1)
	z1 := e.fp.MulMod(&x.A1, t1)
	z1 = e.fp.Neg(z1)
	return &E2{A0: *z0, A1: *z1}
}

// Div computes x/y. The witness solver fails when y is zero.
func (e Ext2) Div(x, y *E2) *E2 {
	return e.Mul(x, e.Inverse(y))
}

func (e Ext2) Select(selector frontend.Variable, z1, z0 *E2) *E2 {
	a0 := e.fp.Select(selector, &z1.A0, &z0.A0)
	a1 := e.fp.Select(selector, &z1.A1, &z0.A1)
	return &E2{A0: *a0, A1: *a1}
}

func (e Ext2) Lookup2(s1, s2 frontend.Variable, a, b, c, d *E2) *E2 {
	a0 := e.fp.Lookup2(s1, s2, &a.A0, &b.A0, &c.A0, &d.A0)
	a1 := e.fp.Lookup2(s1, s2, &a.A1, &b.A1, &c.A1, &d.A1)
	return &E2{A0: *a0, A1: *a1}
}

func (e Ext2) AssertIsEqual(x, y *E2) {
	e.fp.AssertIsEqual(&x.A0, &y.A0)
	e.fp.AssertIsEqual(&x.A1, &y.A1)
}

// FromE2 converts a gnark-crypto E2 element into the witness form.
func FromE2(y *bn254.E2) E2 {
	return E2{
		A0: emulated.ValueOf[emulated.BN254Fp](y.A0.BigInt(new(big.Int))),
		A1: emulated.ValueOf[emulated.BN254Fp](y.A1.BigInt(new(big.Int))),
	}
}
