// Package fields_bn254 implements the degree 2, 6 and 12 extension field
// tower of the BN254 curve over the non-native emulation of its base field:
//
//	E2  = Fp[u]/(u²+1)
//	E6  = E2[v]/(v³-(9+u))
//	E12 = E6[w]/(w²-v)
//
// The tower matches the out-of-circuit arithmetic of gnark-crypto, so hint
// witnesses map coefficient by coefficient.
package fields_bn254
