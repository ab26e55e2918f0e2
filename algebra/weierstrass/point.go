package weierstrass

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/consensys/zkecc/math/emulated"
)

// defaultWindow is the window width used by [Curve.ScalarMul] when the
// parameters do not set one.
const defaultWindow = 4

// maxWindow bounds the window width: the in-circuit multiple table has 2^w
// entries, so wide windows cost more than the saved doublings.
const maxWindow = 8

// New returns a new [Curve] instance over the base field Base and scalar
// field Scalars defined by the curve parameters params. It returns an error
// if initialising the field emulation fails (for example, when the native
// field is too small) or when the curve parameters are incompatible with the
// fields.
func New[Base, Scalars emulated.FieldParams](api frontend.API, params CurveParams) (*Curve[Base, Scalars], error) {
	ba, err := emulated.NewField[Base](api)
	if err != nil {
		return nil, fmt.Errorf("new base api: %w", err)
	}
	sa, err := emulated.NewField[Scalars](api)
	if err != nil {
		return nil, fmt.Errorf("new scalar api: %w", err)
	}
	window := params.Window
	if window == 0 {
		window = defaultWindow
	}
	if window > maxWindow {
		return nil, fmt.Errorf("window width %d exceeds maximum %d", window, maxWindow)
	}
	emuGm := make([]AffinePoint[Base], len(params.Gm))
	for i, v := range params.Gm {
		emuGm[i] = AffinePoint[Base]{
			X:        emulated.ValueOf[Base](v[0]),
			Y:        emulated.ValueOf[Base](v[1]),
			Infinity: 0,
		}
	}
	Gx := emulated.ValueOf[Base](params.Gx)
	Gy := emulated.ValueOf[Base](params.Gy)
	return &Curve[Base, Scalars]{
		params:    params,
		api:       api,
		baseApi:   ba,
		scalarApi: sa,
		g: AffinePoint[Base]{
			X:        Gx,
			Y:        Gy,
			Infinity: 0,
		},
		gm:     emuGm,
		a:      emulated.ValueOf[Base](params.A),
		b:      emulated.ValueOf[Base](params.B),
		addA:   params.A.Cmp(big.NewInt(0)) != 0,
		window: window,
	}, nil
}

// Curve is an initialised curve which allows performing group operations.
type Curve[Base, Scalars emulated.FieldParams] struct {
	// params is the parameters of the curve
	params CurveParams
	// api is the native api, we construct it ourselves to be sure
	api frontend.API
	// baseApi is the api for point operations
	baseApi *emulated.Field[Base]
	// scalarApi is the api for scalar operations
	scalarApi *emulated.Field[Scalars]

	// g is the generator (base point) of the curve
	g AffinePoint[Base]

	// gm are the pre-computed multiples of the generator of the curve
	gm []AffinePoint[Base]

	a      emulated.Element[Base]
	b      emulated.Element[Base]
	addA   bool
	window uint
}

// AffinePoint represents a point on the elliptic curve in affine
// coordinates, with the point at infinity carried as an explicit boolean
// flag. Points at infinity are normalised to the coordinates (0, 0);
// [Curve.AssertIsOnCurve] enforces the normalisation on witness points.
type AffinePoint[Base emulated.FieldParams] struct {
	X, Y     emulated.Element[Base]
	Infinity frontend.Variable
}

// Generator returns the base point of the curve. The method does not copy
// and modifying the returned element leads to undefined behaviour!
func (c *Curve[B, S]) Generator() *AffinePoint[B] {
	return &c.g
}

// GeneratorMultiples returns the pre-computed multiples of the base point of
// the curve. The method does not copy and modifying the returned element
// leads to undefined behaviour!
func (c *Curve[B, S]) GeneratorMultiples() []AffinePoint[B] {
	return c.gm
}

// Infinity returns the point at infinity in normalised representation.
func (c *Curve[B, S]) Infinity() *AffinePoint[B] {
	zero := c.baseApi.Zero()
	return &AffinePoint[B]{
		X:        *zero,
		Y:        *zero,
		Infinity: 1,
	}
}

// IsZero returns a boolean indicating whether p is the point at infinity.
func (c *Curve[B, S]) IsZero(p *AffinePoint[B]) frontend.Variable {
	c.api.AssertIsBoolean(p.Infinity)
	return p.Infinity
}

// Neg returns the inverse of p. It doesn't modify p. The inverse of the
// point at infinity is itself.
func (c *Curve[B, S]) Neg(p *AffinePoint[B]) *AffinePoint[B] {
	// keep -infinity normalised to (0,0): -0 is 0 so the y coordinate needs
	// no masking
	return &AffinePoint[B]{
		X:        p.X,
		Y:        *c.baseApi.Select(p.Infinity, c.baseApi.Zero(), c.baseApi.Neg(&p.Y)),
		Infinity: p.Infinity,
	}
}

// Select returns p if b == 1 and q otherwise.
func (c *Curve[B, S]) Select(b frontend.Variable, p, q *AffinePoint[B]) *AffinePoint[B] {
	x := c.baseApi.Select(b, &p.X, &q.X)
	y := c.baseApi.Select(b, &p.Y, &q.Y)
	return &AffinePoint[B]{
		X:        *x,
		Y:        *y,
		Infinity: c.api.Select(b, p.Infinity, q.Infinity),
	}
}

// Lookup2 performs a 2-bit lookup between i0, i1, i2, i3 based on bits b0
// and b1. Returns:
//   - i0 if b0=0 and b1=0,
//   - i1 if b0=1 and b1=0,
//   - i2 if b0=0 and b1=1,
//   - i3 if b0=1 and b1=1.
func (c *Curve[B, S]) Lookup2(b0, b1 frontend.Variable, i0, i1, i2, i3 *AffinePoint[B]) *AffinePoint[B] {
	x := c.baseApi.Lookup2(b0, b1, &i0.X, &i1.X, &i2.X, &i3.X)
	y := c.baseApi.Lookup2(b0, b1, &i0.Y, &i1.Y, &i2.Y, &i3.Y)
	return &AffinePoint[B]{
		X:        *x,
		Y:        *y,
		Infinity: c.api.Lookup2(b0, b1, i0.Infinity, i1.Infinity, i2.Infinity, i3.Infinity),
	}
}

// selectFromBits returns table[k] where k is the little-endian integer
// formed by the bits. The table length must be 2^len(bits). The selection is
// a tree of two-bit lookups folded by single-bit selects, so its cost is
// linear in the table size.
func (c *Curve[B, S]) selectFromBits(bits []frontend.Variable, table []*AffinePoint[B]) *AffinePoint[B] {
	if len(table) != 1<<len(bits) {
		panic(fmt.Sprintf("table length %d does not match %d bits", len(table), len(bits)))
	}
	cur := table
	bs := bits
	for len(bs) >= 2 {
		next := make([]*AffinePoint[B], len(cur)/4)
		for i := range next {
			next[i] = c.Lookup2(bs[0], bs[1], cur[4*i], cur[4*i+1], cur[4*i+2], cur[4*i+3])
		}
		cur = next
		bs = bs[2:]
	}
	if len(bs) == 1 {
		return c.Select(bs[0], cur[1], cur[0])
	}
	return cur[0]
}

// AssertIsEqual asserts that p and q are the same point. Points at infinity
// are normalised, so the comparison is coordinate-wise plus the flag.
func (c *Curve[B, S]) AssertIsEqual(p, q *AffinePoint[B]) {
	c.baseApi.AssertIsEqual(&p.X, &q.X)
	c.baseApi.AssertIsEqual(&p.Y, &q.Y)
	c.api.AssertIsEqual(p.Infinity, q.Infinity)
}

// IsEqual returns a boolean indicating whether p and q are the same point.
func (c *Curve[B, S]) IsEqual(p, q *AffinePoint[B]) frontend.Variable {
	xDiff := c.baseApi.Sub(&p.X, &q.X)
	yDiff := c.baseApi.Sub(&p.Y, &q.Y)
	sameCoords := c.api.And(c.baseApi.IsZero(xDiff), c.baseApi.IsZero(yDiff))
	sameInf := c.api.IsZero(c.api.Sub(p.Infinity, q.Infinity))
	return c.api.And(sameCoords, sameInf)
}

// AssertIsOnCurve asserts that p belongs to the curve. It also enforces the
// infinity normalisation: when the flag is set, both coordinates must be
// zero. It doesn't modify p.
func (c *Curve[B, S]) AssertIsOnCurve(p *AffinePoint[B]) {
	c.api.AssertIsBoolean(p.Infinity)

	zero := c.baseApi.Zero()
	// pin the coordinates to zero at infinity
	c.baseApi.AssertIsEqual(c.baseApi.Select(p.Infinity, &p.X, zero), zero)
	c.baseApi.AssertIsEqual(c.baseApi.Select(p.Infinity, &p.Y, zero), zero)

	// for the normalised infinity (0,0) we substitute b = 0 so that the curve
	// equation holds vacuously
	b := c.baseApi.Select(p.Infinity, zero, &c.b)

	left := c.baseApi.Mul(&p.Y, &p.Y)
	right := c.baseApi.Mul(&p.X, c.baseApi.Mul(&p.X, &p.X))
	right = c.baseApi.Add(right, b)
	if c.addA {
		ax := c.baseApi.Mul(&c.a, &p.X)
		right = c.baseApi.Add(right, ax)
	}
	c.baseApi.AssertIsEqual(left, right)
}

// Add adds p and q and returns it. It doesn't modify p nor q.
//
// The addition is complete: p may equal q or -q, and either or both may be
// the point at infinity. All branches of the group law are computed with
// guarded denominators and the result is multiplexed from the branch
// indicators, so no secret-dependent branching occurs.
func (c *Curve[B, S]) Add(p, q *AffinePoint[B]) *AffinePoint[B] {
	c.api.AssertIsBoolean(p.Infinity)
	c.api.AssertIsBoolean(q.Infinity)

	xDiff := c.baseApi.Sub(&q.X, &p.X)
	yDiff := c.baseApi.Sub(&q.Y, &p.Y)
	sameX := c.baseApi.IsZero(xDiff)
	sameY := c.baseApi.IsZero(yDiff)
	// eq: the operands have equal coordinates, take the tangent branch
	eq := c.api.And(sameX, sameY)
	// opposite: same x, different y, so q = -p and the sum is infinity.
	// Note x1 != x2 with y1 = -y2 is NOT exceptional: the chord branch
	// handles it.
	opposite := c.api.And(sameX, c.api.Sub(1, sameY))

	// chord slope (q.y-p.y)/(q.x-p.x), dummy denominator when x coordinates
	// coincide
	chordDen := c.baseApi.Select(sameX, c.baseApi.One(), xDiff)
	λchord := c.baseApi.Div(yDiff, chordDen)

	// tangent slope (3p.x²+a)/(2p.y), dummy denominator when p.y == 0
	xx := c.baseApi.MulMod(&p.X, &p.X)
	num := c.baseApi.MulConst(xx, big.NewInt(3))
	if c.addA {
		num = c.baseApi.Add(num, &c.a)
	}
	yZero := c.baseApi.IsZero(&p.Y)
	tangentDen := c.baseApi.Select(yZero, c.baseApi.One(), c.baseApi.MulConst(&p.Y, big.NewInt(2)))
	λtangent := c.baseApi.Div(num, tangentDen)

	λ := c.baseApi.Select(eq, λtangent, λchord)

	// xr = λ² - p.x - q.x
	λλ := c.baseApi.MulMod(λ, λ)
	xSum := c.baseApi.Add(&p.X, &q.X)
	xr := c.baseApi.Sub(λλ, xSum)
	// yr = λ(p.x - xr) - p.y
	yr := c.baseApi.Sub(&p.X, xr)
	yr = c.baseApi.MulMod(λ, yr)
	yr = c.baseApi.Sub(yr, &p.Y)
	xr = c.baseApi.Reduce(xr)
	yr = c.baseApi.Reduce(yr)

	// the sum is infinity when q = -p, including the doubling of an order-2
	// point (equal coordinates with y = 0)
	resInf := c.api.Or(opposite, c.api.And(eq, yZero))
	zero := c.baseApi.Zero()
	res := &AffinePoint[B]{
		X:        *c.baseApi.Select(resInf, zero, xr),
		Y:        *c.baseApi.Select(resInf, zero, yr),
		Infinity: resInf,
	}

	// identity cases override the computed branch
	res = c.Select(q.Infinity, p, res)
	res = c.Select(p.Infinity, q, res)
	return res
}

// Double doubles p and returns it. It doesn't modify p.
//
// The doubling is complete: the point at infinity and order-2 points (y = 0)
// double to the point at infinity.
func (c *Curve[B, S]) Double(p *AffinePoint[B]) *AffinePoint[B] {
	c.api.AssertIsBoolean(p.Infinity)

	// tangent slope λ = (3p.x²+a)/(2p.y), dummy denominator when p.y == 0
	xx := c.baseApi.MulMod(&p.X, &p.X)
	num := c.baseApi.MulConst(xx, big.NewInt(3))
	if c.addA {
		num = c.baseApi.Add(num, &c.a)
	}
	yZero := c.baseApi.IsZero(&p.Y)
	den := c.baseApi.Select(yZero, c.baseApi.One(), c.baseApi.MulConst(&p.Y, big.NewInt(2)))
	λ := c.baseApi.Div(num, den)

	// xr = λ² - 2p.x
	λλ := c.baseApi.MulMod(λ, λ)
	xr := c.baseApi.Sub(λλ, c.baseApi.MulConst(&p.X, big.NewInt(2)))
	// yr = λ(p.x - xr) - p.y
	yr := c.baseApi.Sub(&p.X, xr)
	yr = c.baseApi.MulMod(λ, yr)
	yr = c.baseApi.Sub(yr, &p.Y)
	xr = c.baseApi.Reduce(xr)
	yr = c.baseApi.Reduce(yr)

	// normalised infinity has y = 0, so yZero covers the input flag as well;
	// keep the flag in the disjunction to be independent of normalisation
	resInf := c.api.Or(p.Infinity, yZero)
	zero := c.baseApi.Zero()
	return &AffinePoint[B]{
		X:        *c.baseApi.Select(resInf, zero, xr),
		Y:        *c.baseApi.Select(resInf, zero, yr),
		Infinity: resInf,
	}
}

// scalarBits returns the canonical little-endian bit decomposition of the
// scalar. The scalar is first reduced below the group order so that the
// decomposition is unique.
func (c *Curve[B, S]) scalarBits(s *emulated.Element[S]) []frontend.Variable {
	var st S
	sr := c.scalarApi.ReduceStrict(s)
	return c.scalarApi.ToBits(sr)[:st.Modulus().BitLen()]
}

// ScalarMul computes [s]p and returns it. It doesn't modify p nor s.
//
// The scalar is processed in fixed windows of the width configured in
// [CurveParams]: an in-circuit table of the multiples [0..2^w)p is built
// with complete additions, and every window selects its multiple through a
// constrained multiplexer. All additions along the accumulation are
// complete, so s may be zero, p may be the point at infinity and no
// assumptions are made about intermediate collisions.
//
// This function doesn't check that p is on the curve. See
// [Curve.AssertIsOnCurve].
func (c *Curve[B, S]) ScalarMul(p *AffinePoint[B], s *emulated.Element[S]) *AffinePoint[B] {
	w := int(c.window)
	sBits := c.scalarBits(s)
	// pad the decomposition to a whole number of windows
	for len(sBits)%w != 0 {
		sBits = append(sBits, 0)
	}
	nbWindows := len(sBits) / w
	table := c.smallMultiples(p)

	// most significant window seeds the accumulator, then w doublings and a
	// table addition per window
	acc := c.selectFromBits(sBits[(nbWindows-1)*w:], table)
	for i := nbWindows - 2; i >= 0; i-- {
		for j := 0; j < w; j++ {
			acc = c.Double(acc)
		}
		t := c.selectFromBits(sBits[i*w:(i+1)*w], table)
		acc = c.Add(acc, t)
	}
	return acc
}

// smallMultiples returns the in-circuit table table[j] = [j]p for j in
// [0, 2^w) where w is the configured window width. The table is built with
// complete additions, so p may be the point at infinity.
func (c *Curve[B, S]) smallMultiples(p *AffinePoint[B]) []*AffinePoint[B] {
	table := make([]*AffinePoint[B], 1<<c.window)
	table[0] = c.Infinity()
	table[1] = p
	for j := 2; j < len(table); j++ {
		if j%2 == 0 {
			table[j] = c.Double(table[j/2])
		} else {
			table[j] = c.Add(table[j-1], p)
		}
	}
	return table
}

// ScalarMulBase computes [s]g and returns it, where g is the fixed curve
// generator. It doesn't modify s.
//
// It computes the standard little-endian fixed-base double-and-add algorithm
// with the points [2^i]g precomputed out of circuit. The bits at positions 1
// and 2 are handled outside of the loop with a two-bit lookup into the
// pre-computed [3]g, [5]g and [7]g points. The additions are complete, so
// s = 0 folds to the point at infinity through the final [g] correction.
func (c *Curve[B, S]) ScalarMulBase(s *emulated.Element[S]) *AffinePoint[B] {
	sBits := c.scalarBits(s)
	g := c.Generator()
	gm := c.GeneratorMultiples()
	if len(gm) < len(sBits) {
		panic(fmt.Sprintf("generator multiple table has %d entries, scalar has %d bits", len(gm), len(sBits)))
	}

	// i = 1, 2
	// gm[0] = 3g, gm[1] = 5g, gm[2] = 7g
	res := c.Lookup2(sBits[1], sBits[2], g, &gm[0], &gm[1], &gm[2])

	for i := 3; i < len(sBits); i++ {
		// gm[i] = [2^i]g
		tmp := c.Add(res, &gm[i])
		res = c.Select(sBits[i], tmp, res)
	}

	// i = 0: subtract the generator when the low bit is unset. The addition
	// is complete, so for s = 0 the accumulator g folds to Add(g, -g) which
	// is the point at infinity.
	tmp := c.Add(res, c.Neg(g))
	res = c.Select(sBits[0], res, tmp)

	return res
}

// MultiScalarMul computes the multi scalar multiplication Σ [s[i]]p[i] and
// returns it. It returns an error when the slice lengths mismatch; empty
// inputs yield the point at infinity. It doesn't modify the inputs.
//
// Every point gets its own table of small multiples but the accumulator
// doublings are shared between the scalars: each window costs w doublings
// plus one multiplexed table addition per point. All additions are complete,
// so any scalar may be zero and any point may be the point at infinity.
//
// This function doesn't check that the points are on the curve. See
// [Curve.AssertIsOnCurve].
func (c *Curve[B, S]) MultiScalarMul(p []*AffinePoint[B], s []*emulated.Element[S]) (*AffinePoint[B], error) {
	if len(p) == 0 {
		return c.Infinity(), nil
	}
	if len(p) != len(s) {
		return nil, fmt.Errorf("mismatching points and scalars slice lengths")
	}
	w := int(c.window)
	tables := make([][]*AffinePoint[B], len(p))
	for i := range p {
		tables[i] = c.smallMultiples(p[i])
	}
	// the scalars share the field, so the padded decompositions have the
	// same window count
	bits := make([][]frontend.Variable, len(s))
	for i := range s {
		bits[i] = c.scalarBits(s[i])
		for len(bits[i])%w != 0 {
			bits[i] = append(bits[i], 0)
		}
	}
	nbWindows := len(bits[0]) / w

	acc := c.selectFromBits(bits[0][(nbWindows-1)*w:], tables[0])
	for i := 1; i < len(p); i++ {
		t := c.selectFromBits(bits[i][(nbWindows-1)*w:], tables[i])
		acc = c.Add(acc, t)
	}
	for k := nbWindows - 2; k >= 0; k-- {
		for j := 0; j < w; j++ {
			acc = c.Double(acc)
		}
		for i := range p {
			t := c.selectFromBits(bits[i][k*w:(k+1)*w], tables[i])
			acc = c.Add(acc, t)
		}
	}
	return acc, nil
}
