package emulated

import (
	"math/big"
)

// FieldParams describes the emulated field characteristics. For a list of
// included built-in parametrisations, see the definitions [Goldilocks],
// [Secp256k1Fp] etc.
type FieldParams interface {
	NbLimbs() uint     // number of limbs to represent field element
	BitsPerLimb() uint // number of bits per limb. Top limb may contain less than limbSize bits.
	IsPrime() bool     // indicates if the modulus is prime
	Modulus() *big.Int // returns modulus. Do not modify.
}

var (
	qGoldilocks   = mustParse("ffffffff00000001", 16)
	qSecp256k1Fp  = mustParse("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", 16)
	qSecp256k1Fr  = mustParse("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	qBN254Fp      = mustParse("30644e72e131a029b85045b68181585d97816a916871ca8d3c208c16d87cfd47", 16)
	qBN254Fr      = mustParse("30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001", 16)
	qBLS12381Fp   = mustParse("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab", 16)
	qBLS12381Fr   = mustParse("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)
)

func mustParse(s string, base int) *big.Int {
	r, ok := new(big.Int).SetString(s, base)
	if !ok {
		panic("invalid modulus literal")
	}
	return r
}

// Goldilocks provides type parametrization for field emulation:
//   - limbs: 1
//   - limb width: 64 bits
//
// The modulus is 0xffffffff00000001.
type Goldilocks struct{}

func (fp Goldilocks) NbLimbs() uint     { return 1 }
func (fp Goldilocks) BitsPerLimb() uint { return 64 }
func (fp Goldilocks) IsPrime() bool     { return true }
func (fp Goldilocks) Modulus() *big.Int { return new(big.Int).Set(qGoldilocks) }

// Secp256k1Fp provides type parametrization for field emulation:
//   - limbs: 4
//   - limb width: 64 bits
//
// The modulus is the base field of the secp256k1 curve.
type Secp256k1Fp struct{}

func (fp Secp256k1Fp) NbLimbs() uint     { return 4 }
func (fp Secp256k1Fp) BitsPerLimb() uint { return 64 }
func (fp Secp256k1Fp) IsPrime() bool     { return true }
func (fp Secp256k1Fp) Modulus() *big.Int { return new(big.Int).Set(qSecp256k1Fp) }

// Secp256k1Fr provides type parametrization for field emulation:
//   - limbs: 4
//   - limb width: 64 bits
//
// The modulus is the scalar field of the secp256k1 curve.
type Secp256k1Fr struct{}

func (fp Secp256k1Fr) NbLimbs() uint     { return 4 }
func (fp Secp256k1Fr) BitsPerLimb() uint { return 64 }
func (fp Secp256k1Fr) IsPrime() bool     { return true }
func (fp Secp256k1Fr) Modulus() *big.Int { return new(big.Int).Set(qSecp256k1Fr) }

// BN254Fp provides type parametrization for field emulation:
//   - limbs: 4
//   - limb width: 64 bits
//
// The modulus is the base field of the BN254 curve.
type BN254Fp struct{}

func (fp BN254Fp) NbLimbs() uint     { return 4 }
func (fp BN254Fp) BitsPerLimb() uint { return 64 }
func (fp BN254Fp) IsPrime() bool     { return true }
func (fp BN254Fp) Modulus() *big.Int { return new(big.Int).Set(qBN254Fp) }

// BN254Fr provides type parametrization for field emulation:
//   - limbs: 4
//   - limb width: 64 bits
//
// The modulus is the scalar field of the BN254 curve.
type BN254Fr struct{}

func (fp BN254Fr) NbLimbs() uint     { return 4 }
func (fp BN254Fr) BitsPerLimb() uint { return 64 }
func (fp BN254Fr) IsPrime() bool     { return true }
func (fp BN254Fr) Modulus() *big.Int { return new(big.Int).Set(qBN254Fr) }

// BLS12381Fp provides type parametrization for field emulation:
//   - limbs: 6
//   - limb width: 64 bits
//
// The modulus is the base field of the BLS12-381 curve.
type BLS12381Fp struct{}

func (fp BLS12381Fp) NbLimbs() uint     { return 6 }
func (fp BLS12381Fp) BitsPerLimb() uint { return 64 }
func (fp BLS12381Fp) IsPrime() bool     { return true }
func (fp BLS12381Fp) Modulus() *big.Int { return new(big.Int).Set(qBLS12381Fp) }

// BLS12381Fr provides type parametrization for field emulation:
//   - limbs: 4
//   - limb width: 64 bits
//
// The modulus is the scalar field of the BLS12-381 curve.
type BLS12381Fr struct{}

func (fp BLS12381Fr) NbLimbs() uint     { return 4 }
func (fp BLS12381Fr) BitsPerLimb() uint { return 64 }
func (fp BLS12381Fr) IsPrime() bool     { return true }
func (fp BLS12381Fr) Modulus() *big.Int { return new(big.Int).Set(qBLS12381Fr) }
