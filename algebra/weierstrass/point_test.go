package weierstrass

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	fr_bls "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	fr_bn "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/secp256k1"
	fr_secp "github.com/consensys/gnark-crypto/ecc/secp256k1/fr"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"

	"github.com/consensys/zkecc/math/emulated"
)

var testCurve = ecc.BN254

// toyFp is the 17-element base field of the toy curve y² = x³ + 7 over F17.
type toyFp struct{}

func (toyFp) NbLimbs() uint     { return 1 }
func (toyFp) BitsPerLimb() uint { return 5 }
func (toyFp) IsPrime() bool     { return true }
func (toyFp) Modulus() *big.Int { return big.NewInt(17) }

// toyFr is the scalar field of the toy curve. The group has order 18, we use
// the next prime as the emulated scalar modulus.
type toyFr struct{}

func (toyFr) NbLimbs() uint     { return 1 }
func (toyFr) BitsPerLimb() uint { return 5 }
func (toyFr) IsPrime() bool     { return true }
func (toyFr) Modulus() *big.Int { return big.NewInt(19) }

// toyCurveParams returns the parameters of the curve y² = x³ + 7 over F17
// with generator (15, 13) of order 18. The generator multiple table follows
// the [3]g, [5]g, [7]g, [2^i]g layout of the stored curves.
func toyCurveParams() CurveParams {
	toGm := func(pts ...[2]int64) [][2]*big.Int {
		gm := make([][2]*big.Int, len(pts))
		for i, pt := range pts {
			gm[i] = [2]*big.Int{big.NewInt(pt[0]), big.NewInt(pt[1])}
		}
		return gm
	}
	return CurveParams{
		A:  big.NewInt(0),
		B:  big.NewInt(7),
		Gx: big.NewInt(15),
		Gy: big.NewInt(13),
		// [3]g, [5]g, [7]g, [8]g, [16]g
		Gm: toGm([2]int64{8, 3}, [2]int64{6, 6}, [2]int64{10, 15}, [2]int64{1, 12}, [2]int64{2, 7}),
	}
}

func toyPoint(x, y int64) AffinePoint[toyFp] {
	return AffinePoint[toyFp]{
		X:        emulated.ValueOf[toyFp](x),
		Y:        emulated.ValueOf[toyFp](y),
		Infinity: 0,
	}
}

func toyInfinity() AffinePoint[toyFp] {
	return AffinePoint[toyFp]{
		X:        emulated.ValueOf[toyFp](0),
		Y:        emulated.ValueOf[toyFp](0),
		Infinity: 1,
	}
}

// toyRefAdd adds two toy curve points given as (x, y, infinity) triples with
// plain integer arithmetic, independently of the circuit formulas.
func toyRefAdd(p, q [3]int64) [3]int64 {
	const prime = 17
	mod := func(a int64) int64 { return ((a % prime) + prime) % prime }
	inv := func(a int64) int64 {
		r := int64(1)
		for i := 0; i < prime-2; i++ {
			r = mod(r * a)
		}
		return r
	}
	if p[2] == 1 {
		return q
	}
	if q[2] == 1 {
		return p
	}
	if p[0] == q[0] && mod(p[1]+q[1]) == 0 {
		return [3]int64{0, 0, 1}
	}
	var lambda int64
	if p[0] == q[0] {
		lambda = mod(3 * p[0] * p[0] * inv(mod(2*p[1])))
	} else {
		lambda = mod(mod(q[1]-p[1]) * inv(mod(q[0]-p[0])))
	}
	x := mod(lambda*lambda - p[0] - q[0])
	y := mod(lambda*(p[0]-x) - p[1])
	return [3]int64{x, y, 0}
}

func toyRefScalarMul(p [3]int64, s int64) [3]int64 {
	res := [3]int64{0, 0, 1}
	for i := int64(0); i < s; i++ {
		res = toyRefAdd(res, p)
	}
	return res
}

func toyFromRef(p [3]int64) AffinePoint[toyFp] {
	if p[2] == 1 {
		return toyInfinity()
	}
	return toyPoint(p[0], p[1])
}

type NegCircuit[B, S emulated.FieldParams] struct {
	P, Q AffinePoint[B]
}

func (c *NegCircuit[B, S]) Define(api frontend.API) error {
	cr, err := New[B, S](api, toyCurveParams())
	if err != nil {
		return err
	}
	res := cr.Neg(&c.P)
	cr.AssertIsEqual(res, &c.Q)
	return nil
}

func TestNeg(t *testing.T) {
	assert := test.NewAssert(t)
	for _, tc := range []struct {
		name string
		p, q AffinePoint[toyFp]
	}{
		{"generator", toyPoint(15, 13), toyPoint(15, 4)},
		{"order2", toyPoint(3, 0), toyPoint(3, 0)},
		{"infinity", toyInfinity(), toyInfinity()},
	} {
		assert.Run(func(assert *test.Assert) {
			circuit := NegCircuit[toyFp, toyFr]{}
			witness := NegCircuit[toyFp, toyFr]{P: tc.p, Q: tc.q}
			assert.NoError(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
		}, tc.name)
	}
}

type AddCircuit[B, S emulated.FieldParams] struct {
	P, Q, R AffinePoint[B]
}

func (c *AddCircuit[B, S]) Define(api frontend.API) error {
	cr, err := New[B, S](api, toyCurveParams())
	if err != nil {
		return err
	}
	res := cr.Add(&c.P, &c.Q)
	cr.AssertIsEqual(res, &c.R)
	return nil
}

func TestAdd(t *testing.T) {
	assert := test.NewAssert(t)
	for _, tc := range []struct {
		name    string
		p, q, r AffinePoint[toyFp]
	}{
		{"distinct", toyPoint(15, 13), toyPoint(2, 10), toyPoint(8, 3)},
		{"equal operands", toyPoint(15, 13), toyPoint(15, 13), toyPoint(2, 10)},
		{"inverse operands", toyPoint(15, 13), toyPoint(15, 4), toyInfinity()},
		{"double order2", toyPoint(3, 0), toyPoint(3, 0), toyInfinity()},
		{"left infinity", toyInfinity(), toyPoint(2, 10), toyPoint(2, 10)},
		{"right infinity", toyPoint(2, 10), toyInfinity(), toyPoint(2, 10)},
		{"both infinity", toyInfinity(), toyInfinity(), toyInfinity()},
	} {
		assert.Run(func(assert *test.Assert) {
			circuit := AddCircuit[toyFp, toyFr]{}
			witness := AddCircuit[toyFp, toyFr]{P: tc.p, Q: tc.q, R: tc.r}
			assert.NoError(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
		}, tc.name)
	}
}

func TestAddSecp256k1(t *testing.T) {
	assert := test.NewAssert(t)
	_, g := secp256k1.Generators()
	var dbl, sum secp256k1.G1Affine
	dbl.Double(&g)
	sum.Add(&g, &dbl)

	circuit := AddRealCircuit[emulated.Secp256k1Fp, emulated.Secp256k1Fr]{}
	witness := AddRealCircuit[emulated.Secp256k1Fp, emulated.Secp256k1Fr]{
		P: AffinePoint[emulated.Secp256k1Fp]{
			X:        emulated.ValueOf[emulated.Secp256k1Fp](g.X.BigInt(new(big.Int))),
			Y:        emulated.ValueOf[emulated.Secp256k1Fp](g.Y.BigInt(new(big.Int))),
			Infinity: 0,
		},
		Q: AffinePoint[emulated.Secp256k1Fp]{
			X:        emulated.ValueOf[emulated.Secp256k1Fp](dbl.X.BigInt(new(big.Int))),
			Y:        emulated.ValueOf[emulated.Secp256k1Fp](dbl.Y.BigInt(new(big.Int))),
			Infinity: 0,
		},
		R: AffinePoint[emulated.Secp256k1Fp]{
			X:        emulated.ValueOf[emulated.Secp256k1Fp](sum.X.BigInt(new(big.Int))),
			Y:        emulated.ValueOf[emulated.Secp256k1Fp](sum.Y.BigInt(new(big.Int))),
			Infinity: 0,
		},
	}
	assert.NoError(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
}

// AddRealCircuit is [AddCircuit] over a stored curve instead of the toy one.
type AddRealCircuit[B, S emulated.FieldParams] struct {
	P, Q, R AffinePoint[B]
}

func (c *AddRealCircuit[B, S]) Define(api frontend.API) error {
	cr, err := New[B, S](api, GetCurveParams[B]())
	if err != nil {
		return err
	}
	res := cr.Add(&c.P, &c.Q)
	cr.AssertIsEqual(res, &c.R)
	return nil
}

type DoubleCircuit[B, S emulated.FieldParams] struct {
	P, Q AffinePoint[B]
}

func (c *DoubleCircuit[B, S]) Define(api frontend.API) error {
	cr, err := New[B, S](api, toyCurveParams())
	if err != nil {
		return err
	}
	res := cr.Double(&c.P)
	cr.AssertIsEqual(res, &c.Q)
	return nil
}

func TestDouble(t *testing.T) {
	assert := test.NewAssert(t)
	for _, tc := range []struct {
		name string
		p, q AffinePoint[toyFp]
	}{
		{"generator", toyPoint(15, 13), toyPoint(2, 10)},
		{"order2", toyPoint(3, 0), toyInfinity()},
		{"infinity", toyInfinity(), toyInfinity()},
	} {
		assert.Run(func(assert *test.Assert) {
			circuit := DoubleCircuit[toyFp, toyFr]{}
			witness := DoubleCircuit[toyFp, toyFr]{P: tc.p, Q: tc.q}
			assert.NoError(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
		}, tc.name)
	}
}

type OnCurveCircuit[B, S emulated.FieldParams] struct {
	P AffinePoint[B]
}

func (c *OnCurveCircuit[B, S]) Define(api frontend.API) error {
	cr, err := New[B, S](api, toyCurveParams())
	if err != nil {
		return err
	}
	cr.AssertIsOnCurve(&c.P)
	return nil
}

func TestAssertIsOnCurve(t *testing.T) {
	assert := test.NewAssert(t)
	circuit := OnCurveCircuit[toyFp, toyFr]{}

	for _, tc := range []struct {
		name string
		p    AffinePoint[toyFp]
	}{
		{"generator", toyPoint(15, 13)},
		{"order2", toyPoint(3, 0)},
		{"infinity", toyInfinity()},
	} {
		assert.Run(func(assert *test.Assert) {
			witness := OnCurveCircuit[toyFp, toyFr]{P: tc.p}
			assert.NoError(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
		}, tc.name)
	}

	assert.Run(func(assert *test.Assert) {
		witness := OnCurveCircuit[toyFp, toyFr]{P: toyPoint(1, 1)}
		assert.Error(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
	}, "off curve")

	assert.Run(func(assert *test.Assert) {
		// infinity flag with non-zero coordinates violates the normalisation
		p := toyPoint(15, 13)
		p.Infinity = 1
		witness := OnCurveCircuit[toyFp, toyFr]{P: p}
		assert.Error(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
	}, "denormalised infinity")
}

type ScalarMulCircuit[B, S emulated.FieldParams] struct {
	P, Q AffinePoint[B]
	S    emulated.Element[S]

	params CurveParams
}

func (c *ScalarMulCircuit[B, S]) Define(api frontend.API) error {
	cr, err := New[B, S](api, c.params)
	if err != nil {
		return err
	}
	res := cr.ScalarMul(&c.P, &c.S)
	cr.AssertIsEqual(res, &c.Q)
	return nil
}

func TestScalarMul(t *testing.T) {
	assert := test.NewAssert(t)
	for _, tc := range []struct {
		name string
		s    int64
		p, q AffinePoint[toyFp]
	}{
		{"zero scalar", 0, toyPoint(15, 13), toyInfinity()},
		{"one", 1, toyPoint(15, 13), toyPoint(15, 13)},
		{"two", 2, toyPoint(15, 13), toyPoint(2, 10)},
		{"five", 5, toyPoint(15, 13), toyPoint(6, 6)},
		{"into order2", 9, toyPoint(15, 13), toyPoint(3, 0)},
		{"order minus one", 17, toyPoint(15, 13), toyPoint(15, 4)},
		{"full order", 18, toyPoint(15, 13), toyInfinity()},
		{"infinity input", 5, toyInfinity(), toyInfinity()},
	} {
		assert.Run(func(assert *test.Assert) {
			circuit := ScalarMulCircuit[toyFp, toyFr]{params: toyCurveParams()}
			witness := ScalarMulCircuit[toyFp, toyFr]{
				P: tc.p,
				Q: tc.q,
				S: emulated.ValueOf[toyFr](tc.s),
			}
			assert.NoError(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
		}, tc.name)
	}
}

func TestScalarMulWindowWidths(t *testing.T) {
	assert := test.NewAssert(t)
	for _, w := range []uint{1, 2, 3, 5} {
		assert.Run(func(assert *test.Assert) {
			params := toyCurveParams()
			params.Window = w
			circuit := ScalarMulCircuit[toyFp, toyFr]{params: params}
			witness := ScalarMulCircuit[toyFp, toyFr]{
				P: toyPoint(15, 13),
				Q: toyPoint(10, 15),
				S: emulated.ValueOf[toyFr](7),
			}
			assert.NoError(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
		}, fmt.Sprintf("window=%d", w))
	}
}

func TestScalarMulSecp256k1(t *testing.T) {
	assert := test.NewAssert(t)
	_, g := secp256k1.Generators()
	var r fr_secp.Element
	_, err := r.SetRandom()
	assert.NoError(err)
	s := r.BigInt(new(big.Int))
	var res secp256k1.G1Affine
	res.ScalarMultiplication(&g, s)

	circuit := ScalarMulCircuit[emulated.Secp256k1Fp, emulated.Secp256k1Fr]{params: GetSecp256k1Params()}
	witness := ScalarMulCircuit[emulated.Secp256k1Fp, emulated.Secp256k1Fr]{
		P: AffinePoint[emulated.Secp256k1Fp]{
			X:        emulated.ValueOf[emulated.Secp256k1Fp](g.X.BigInt(new(big.Int))),
			Y:        emulated.ValueOf[emulated.Secp256k1Fp](g.Y.BigInt(new(big.Int))),
			Infinity: 0,
		},
		Q: AffinePoint[emulated.Secp256k1Fp]{
			X:        emulated.ValueOf[emulated.Secp256k1Fp](res.X.BigInt(new(big.Int))),
			Y:        emulated.ValueOf[emulated.Secp256k1Fp](res.Y.BigInt(new(big.Int))),
			Infinity: 0,
		},
		S: emulated.ValueOf[emulated.Secp256k1Fr](s),
	}
	assert.NoError(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
}

func TestScalarMulBN254(t *testing.T) {
	assert := test.NewAssert(t)
	_, _, g, _ := bn254.Generators()
	var r fr_bn.Element
	_, err := r.SetRandom()
	assert.NoError(err)
	s := r.BigInt(new(big.Int))
	var res bn254.G1Affine
	res.ScalarMultiplication(&g, s)

	circuit := ScalarMulCircuit[emulated.BN254Fp, emulated.BN254Fr]{params: GetBN254Params()}
	witness := ScalarMulCircuit[emulated.BN254Fp, emulated.BN254Fr]{
		P: AffinePoint[emulated.BN254Fp]{
			X:        emulated.ValueOf[emulated.BN254Fp](g.X.BigInt(new(big.Int))),
			Y:        emulated.ValueOf[emulated.BN254Fp](g.Y.BigInt(new(big.Int))),
			Infinity: 0,
		},
		Q: AffinePoint[emulated.BN254Fp]{
			X:        emulated.ValueOf[emulated.BN254Fp](res.X.BigInt(new(big.Int))),
			Y:        emulated.ValueOf[emulated.BN254Fp](res.Y.BigInt(new(big.Int))),
			Infinity: 0,
		},
		S: emulated.ValueOf[emulated.BN254Fr](s),
	}
	assert.NoError(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
}

func TestScalarMulBLS12381(t *testing.T) {
	assert := test.NewAssert(t)
	_, _, g, _ := bls12381.Generators()
	var r fr_bls.Element
	_, err := r.SetRandom()
	assert.NoError(err)
	s := r.BigInt(new(big.Int))
	var res bls12381.G1Affine
	res.ScalarMultiplication(&g, s)

	circuit := ScalarMulCircuit[emulated.BLS12381Fp, emulated.BLS12381Fr]{params: GetBLS12381Params()}
	witness := ScalarMulCircuit[emulated.BLS12381Fp, emulated.BLS12381Fr]{
		P: AffinePoint[emulated.BLS12381Fp]{
			X:        emulated.ValueOf[emulated.BLS12381Fp](g.X.BigInt(new(big.Int))),
			Y:        emulated.ValueOf[emulated.BLS12381Fp](g.Y.BigInt(new(big.Int))),
			Infinity: 0,
		},
		Q: AffinePoint[emulated.BLS12381Fp]{
			X:        emulated.ValueOf[emulated.BLS12381Fp](res.X.BigInt(new(big.Int))),
			Y:        emulated.ValueOf[emulated.BLS12381Fp](res.Y.BigInt(new(big.Int))),
			Infinity: 0,
		},
		S: emulated.ValueOf[emulated.BLS12381Fr](s),
	}
	assert.NoError(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
}

type ScalarMulBaseCircuit[B, S emulated.FieldParams] struct {
	Q AffinePoint[B]
	S emulated.Element[S]

	params CurveParams
}

func (c *ScalarMulBaseCircuit[B, S]) Define(api frontend.API) error {
	cr, err := New[B, S](api, c.params)
	if err != nil {
		return err
	}
	res := cr.ScalarMulBase(&c.S)
	cr.AssertIsEqual(res, &c.Q)
	return nil
}

func TestScalarMulBase(t *testing.T) {
	assert := test.NewAssert(t)
	for _, tc := range []struct {
		name string
		s    int64
		q    AffinePoint[toyFp]
	}{
		{"zero scalar", 0, toyInfinity()},
		{"one", 1, toyPoint(15, 13)},
		{"two", 2, toyPoint(2, 10)},
		{"five", 5, toyPoint(6, 6)},
		{"six", 6, toyPoint(5, 8)},
		{"full order", 18, toyInfinity()},
	} {
		assert.Run(func(assert *test.Assert) {
			circuit := ScalarMulBaseCircuit[toyFp, toyFr]{params: toyCurveParams()}
			witness := ScalarMulBaseCircuit[toyFp, toyFr]{
				Q: tc.q,
				S: emulated.ValueOf[toyFr](tc.s),
			}
			assert.NoError(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
		}, tc.name)
	}
}

func TestScalarMulBaseSecp256k1(t *testing.T) {
	assert := test.NewAssert(t)
	_, g := secp256k1.Generators()
	var r fr_secp.Element
	_, err := r.SetRandom()
	assert.NoError(err)
	s := r.BigInt(new(big.Int))
	var res secp256k1.G1Affine
	res.ScalarMultiplication(&g, s)

	circuit := ScalarMulBaseCircuit[emulated.Secp256k1Fp, emulated.Secp256k1Fr]{params: GetSecp256k1Params()}
	witness := ScalarMulBaseCircuit[emulated.Secp256k1Fp, emulated.Secp256k1Fr]{
		Q: AffinePoint[emulated.Secp256k1Fp]{
			X:        emulated.ValueOf[emulated.Secp256k1Fp](res.X.BigInt(new(big.Int))),
			Y:        emulated.ValueOf[emulated.Secp256k1Fp](res.Y.BigInt(new(big.Int))),
			Infinity: 0,
		},
		S: emulated.ValueOf[emulated.Secp256k1Fr](s),
	}
	assert.NoError(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
}

type MultiScalarMulCircuit[B, S emulated.FieldParams] struct {
	Points  []AffinePoint[B]
	Scalars []emulated.Element[S]
	Res     AffinePoint[B]
}

func (c *MultiScalarMulCircuit[B, S]) Define(api frontend.API) error {
	cr, err := New[B, S](api, toyCurveParams())
	if err != nil {
		return err
	}
	points := make([]*AffinePoint[B], len(c.Points))
	for i := range c.Points {
		points[i] = &c.Points[i]
	}
	scalars := make([]*emulated.Element[S], len(c.Scalars))
	for i := range c.Scalars {
		scalars[i] = &c.Scalars[i]
	}
	res, err := cr.MultiScalarMul(points, scalars)
	if err != nil {
		return err
	}
	cr.AssertIsEqual(res, &c.Res)
	return nil
}

// TestMultiScalarMul uses the bases [1]g, [2]g, ... and checks Σ [sᵢ][i+1]g
// against the integer reference law.
func TestMultiScalarMul(t *testing.T) {
	assert := test.NewAssert(t)
	g := [3]int64{15, 13, 0}
	for _, tc := range []struct {
		name    string
		scalars []int64
	}{
		{"two points", []int64{2, 3}},
		{"three points", []int64{2, 3, 1}},
		{"zero scalar", []int64{0, 5}},
		{"cancelling to infinity", []int64{2, 8}},
	} {
		points := make([]AffinePoint[toyFp], len(tc.scalars))
		scalars := make([]emulated.Element[toyFr], len(tc.scalars))
		acc := [3]int64{0, 0, 1}
		for i, s := range tc.scalars {
			base := toyRefScalarMul(g, int64(i+1))
			points[i] = toyFromRef(base)
			scalars[i] = emulated.ValueOf[toyFr](s)
			acc = toyRefAdd(acc, toyRefScalarMul(base, s))
		}
		assert.Run(func(assert *test.Assert) {
			circuit := MultiScalarMulCircuit[toyFp, toyFr]{
				Points:  make([]AffinePoint[toyFp], len(tc.scalars)),
				Scalars: make([]emulated.Element[toyFr], len(tc.scalars)),
			}
			witness := MultiScalarMulCircuit[toyFp, toyFr]{
				Points:  points,
				Scalars: scalars,
				Res:     toyFromRef(acc),
			}
			assert.NoError(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
		}, tc.name)
	}
}

type IsEqualCircuit[B, S emulated.FieldParams] struct {
	P, Q     AffinePoint[B]
	Expected frontend.Variable
}

func (c *IsEqualCircuit[B, S]) Define(api frontend.API) error {
	cr, err := New[B, S](api, toyCurveParams())
	if err != nil {
		return err
	}
	api.AssertIsEqual(cr.IsEqual(&c.P, &c.Q), c.Expected)
	return nil
}

func TestIsEqual(t *testing.T) {
	assert := test.NewAssert(t)
	for _, tc := range []struct {
		name     string
		p, q     AffinePoint[toyFp]
		expected int
	}{
		{"equal", toyPoint(15, 13), toyPoint(15, 13), 1},
		{"different", toyPoint(15, 13), toyPoint(2, 10), 0},
		{"negated", toyPoint(15, 13), toyPoint(15, 4), 0},
		{"both infinity", toyInfinity(), toyInfinity(), 1},
	} {
		assert.Run(func(assert *test.Assert) {
			circuit := IsEqualCircuit[toyFp, toyFr]{}
			witness := IsEqualCircuit[toyFp, toyFr]{P: tc.p, Q: tc.q, Expected: tc.expected}
			assert.NoError(test.IsSolved(&circuit, &witness, testCurve.ScalarField()))
		}, tc.name)
	}
}
