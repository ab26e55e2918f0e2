// Package emulated implements operations over any modulus inside a circuit
// whose native field is different.
//
// # Emulated arithmetic
//
// The operations in this package are performed on limb-decomposed
// representations of integers: a value is split into w-bit limbs which are
// themselves native field witnesses. Addition and subtraction are performed
// limb-wise without reduction, tracking an overflow bound on every limb so
// that limbs never silently wrap around the native modulus. Multiplication
// computes the schoolbook limb convolution of the operands, with the result
// supplied by a hint and bound to the operands by polynomial-identity checks
// at fixed evaluation points.
//
// Modular reduction proves the identity a = q*p + r for hint-supplied q and
// r. Instead of comparing very wide integers directly, the identity is
// checked over two moduli at once: once modulo the native field (cheap
// recomposition equality) and once modulo a power of two large enough to
// bound both sides (limb-wise carry decomposition with range-checked
// carries). As long as every operand stays below half the native field
// capacity, the two checks together pin the identity over the integers.
//
// A malicious witness (an oversized limb, a remainder outside [0, p), an
// unbalanced reduction identity) does not cause a Go error: it makes the
// emitted constraint system unsatisfiable, which the surrounding proving
// system reports as a proof failure. Configuration errors, by contrast, are
// returned by [NewField] before any constraint is emitted.
//
// The package is generic over the emulated field, parametrized by types
// implementing [FieldParams]. The limb width is a soundness-critical choice:
// [NewField] rejects parametrisations where the product of two fresh limbs
// cannot fit the native field.
package emulated
