package fields_bn254

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark/frontend"
)

// E12 is a degree two extension of E6 with the quadratic non-residue
// w² = v. An element is C0 + C1·w.
type E12 struct {
	C0, C1 E6
}

// Ext12 implements the E12 arithmetic over the emulated base field.
type Ext12 struct {
	*Ext6
}

// NewExt12 returns a new [Ext12] instance. It panics when the base field
// emulation cannot be initialised over the native field.
func NewExt12(api frontend.API) *Ext12 {
	return &Ext12{Ext6: NewExt6(api)}
}

func (e Ext12) Zero() *E12 {
	z0 := e.Ext6.Zero()
	z1 := e.Ext6.Zero()
	return &E12{C0: *z0, C1: *z1}
}

func (e Ext12) One() *E12 {
	z0 := e.Ext6.One()
	z1 := e.Ext6.Zero()
	return &E12{C0: *z0, C1: *z1}
}

func (e Ext12) IsZero(z *E12) frontend.Variable {
	b0 := e.Ext6.IsZero(&z.C0)
	b1 := e.Ext6.IsZero(&z.C1)
	return e.api.And(b0, b1)
}

func (e Ext12) Add(x, y *E12) *E12 {
	z0 := e.Ext6.Add(&x.C0, &y.C0)
	z1 := e.Ext6.Add(&x.C1, &y.C1)
	return &E12{C0: *z0, C1: *z1}
}

func (e Ext12) Sub(x, y *E12) *E12 {
	z0 := e.Ext6.Sub(&x.C0, &y.C0)
	z1 := e.Ext6.Sub(&x.C1, &y.C1)
	return &E12{C0: *z0, C1: *z1}
}

func (e Ext12) Neg(x *E12) *E12 {
	z0 := e.Ext6.Neg(&x.C0)
	z1 := e.Ext6.Neg(&x.C1)
	return &E12{C0: *z0, C1: *z1}
}

// Conjugate negates the C1 coefficient. For elements of the cyclotomic
// subgroup this is the inverse.
func (e Ext12) Conjugate(x *E12) *E12 {
	z1 := e.Ext6.Neg(&x.C1)
	return &E12{C0: x.C0, C1: *z1}
}

// Mul multiplies x and y with the Karatsuba method using three E6
// multiplications.
func (e Ext12) Mul(x, y *E12) *E12 {
	a := e.Ext6.Add(&x.C0, &x.C1)
	b := e.Ext6.Add(&y.C0, &y.C1)
	a = e.Ext6.Mul(a, b)
	b = e.Ext6.Mul(&x.C0, &y.C0)
	c := e.Ext6.Mul(&x.C1, &y.C1)
	z1 := e.Ext6.Sub(a, b)
	z1 = e.Ext6.Sub(z1, c)
	z0 := e.Ext6.MulByNonResidue(c)
	z0 = e.Ext6.Add(z0, b)
	return &E12{C0: *z0, C1: *z1}
}

// Square squares x with the complex squaring method using three E6
// multiplications.
func (e Ext12) Square(x *E12) *E12 {
	c0 := e.Ext6.Sub(&x.C0, &x.C1)
	c3 := e.Ext6.MulByNonResidue(&x.C1)
	c3 = e.Ext6.Neg(c3)
	c3 = e.Ext6.Add(&x.C0, c3)
	c2 := e.Ext6.Mul(&x.C0, &x.C1)
	c0 = e.Ext6.Mul(c0, c3)
	c0 = e.Ext6.Add(c0, c2)
	z1 := e.Ext6.Double(c2)
	c2 = e.Ext6.MulByNonResidue(c2)
	z0 := e.Ext6.Add(c0, c2)
	return &E12{C0: *z0, C1: *z1}
}

// Inverse computes 1/x with a hint witness checked by x·(1/x) = 1. The
// witness solver fails when x is zero.
func (e Ext12) Inverse(x *E12) *E12 {
	res, err := e.fp.NewHint(inverseE12Hint, 12, e.coords(x)...)
	if err != nil {
		// err is non-nil only for invalid number of inputs
		panic(err)
	}
	inv := e.fromCoords(res)
	one := e.One()
	e.AssertIsEqual(one, e.Mul(inv, x))
	return inv
}

// DivUnchecked computes x/y with a hint witness checked by (x/y)·y = x. The
// result is unconstrained when both x and y are zero.
func (e Ext12) DivUnchecked(x, y *E12) *E12 {
	inputs := append(e.coords(x), e.coords(y)...)
	res, err := e.fp.NewHint(divE12Hint, 12, inputs...)
	if err != nil {
		// err is non-nil only for invalid number of inputs
		panic(err)
	}
	div := e.fromCoords(res)
	e.AssertIsEqual(x, e.Mul(div, y))
	return div
}

func (e Ext12) Select(selector frontend.Variable, z1, z0 *E12) *E12 {
	c0 := e.Ext6.Select(selector, &z1.C0, &z0.C0)
	c1 := e.Ext6.Select(selector, &z1.C1, &z0.C1)
	return &E12{C0: *c0, C1: *c1}
}

func (e Ext12) AssertIsEqual(x, y *E12) {
	e.Ext6.AssertIsEqual(&x.C0, &y.C0)
	e.Ext6.AssertIsEqual(&x.C1, &y.C1)
}

// coords flattens x into its twelve base field coefficients in tower order.
func (e Ext12) coords(x *E12) []*baseEl {
	return []*baseEl{
		&x.C0.B0.A0, &x.C0.B0.A1, &x.C0.B1.A0, &x.C0.B1.A1, &x.C0.B2.A0, &x.C0.B2.A1,
		&x.C1.B0.A0, &x.C1.B0.A1, &x.C1.B1.A0, &x.C1.B1.A1, &x.C1.B2.A0, &x.C1.B2.A1,
	}
}

func (e Ext12) fromCoords(c []*baseEl) *E12 {
	return &E12{
		C0: E6{
			B0: E2{A0: *c[0], A1: *c[1]},
			B1: E2{A0: *c[2], A1: *c[3]},
			B2: E2{A0: *c[4], A1: *c[5]},
		},
		C1: E6{
			B0: E2{A0: *c[6], A1: *c[7]},
			B1: E2{A0: *c[8], A1: *c[9]},
			B2: E2{A0: *c[10], A1: *c[11]},
		},
	}
}

// FromE12 converts a gnark-crypto E12 element into the witness form.
func FromE12(y *bn254.E12) E12 {
	return E12{
		C0: FromE6(&y.C0),
		C1: FromE6(&y.C1),
	}
}
