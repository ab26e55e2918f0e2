// Package weierstrass implements elliptic curve group operations on short
// Weierstrass curves y² = x³ + ax + b whose base field differs from the
// native field of the circuit. The coordinates are represented with
// non-native field emulation and the group law is complete: every operation
// computes all formula branches and multiplexes the result, so equal
// operands, inverse operands and the point at infinity need no
// special-casing by the caller and no secret-dependent branching.
//
// The point at infinity is carried as an explicit boolean flag on
// [AffinePoint]; points at infinity are normalised to coordinates (0, 0).
//
// Scalar multiplication uses fixed windows over the canonical bit
// decomposition of the scalar with constrained multiplexer lookups into an
// in-circuit table of small multiples. Fixed-base multiplication by the
// curve generator uses tables of generator multiples precomputed out of
// circuit.
package weierstrass
