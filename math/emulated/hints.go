package emulated

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
)

func init() {
	solver.RegisterHint(GetHints()...)
}

// GetHints returns all hint functions used in the package.
func GetHints() []solver.Hint {
	return []solver.Hint{
		DivHint,
		InverseHint,
		MultiplicationHint,
		QuoHint,
		RemHint,
		RightShift,
		SqrtHint,
	}
}

// nbMultiplicationResLimbs returns the number of limbs which fit the
// multiplication result.
func nbMultiplicationResLimbs(lenLeft, lenRight int) int {
	res := lenLeft + lenRight - 1
	if res < 0 {
		res = 0
	}
	return res
}

// computeMultiplicationHint packs the inputs for the MultiplicationHint
// hint function.
func (f *Field[T]) computeMultiplicationHint(leftLimbs, rightLimbs []frontend.Variable) (mulLimbs []frontend.Variable, err error) {
	hintInputs := []frontend.Variable{
		f.fParams.BitsPerLimb(),
		len(leftLimbs),
		len(rightLimbs),
	}
	hintInputs = append(hintInputs, leftLimbs...)
	hintInputs = append(hintInputs, rightLimbs...)
	return f.api.Compiler().NewHint(MultiplicationHint, nbMultiplicationResLimbs(len(leftLimbs), len(rightLimbs)), hintInputs...)
}

// MultiplicationHint unpacks the factors and parameters from inputs, computes
// the limb convolution of the factors and stores it in outputs.
func MultiplicationHint(mod *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	if len(inputs) < 3 {
		return errors.New("input must be at least three elements")
	}
	nbBits := int(inputs[0].Int64())
	if 2*nbBits+1 >= mod.BitLen() {
		return errors.New("can not fit multiplication result into limb")
	}
	nbLimbsLeft := int(inputs[1].Int64())
	nbLimbsRight := int(inputs[2].Int64())
	if len(inputs) != 3+nbLimbsLeft+nbLimbsRight {
		return errors.New("input invalid")
	}
	if len(outputs) < nbLimbsLeft+nbLimbsRight-1 {
		return errors.New("can not fit multiplication result into output")
	}
	for _, oi := range outputs {
		if oi == nil {
			return errors.New("output not initialized")
		}
		oi.SetUint64(0)
	}
	tmp := new(big.Int)
	for i := 0; i < nbLimbsLeft; i++ {
		for j := 0; j < nbLimbsRight; j++ {
			outputs[i+j].Add(outputs[i+j], tmp.Mul(inputs[3+i], inputs[3+nbLimbsLeft+j]))
		}
	}
	return nil
}

// computeRemHint packs the inputs for the RemHint hint function, computing
// x mod p for the field modulus.
func (f *Field[T]) computeRemHint(x *Element[T]) (z *Element[T], err error) {
	hintInputs := []frontend.Variable{
		f.fParams.BitsPerLimb(),
		len(x.Limbs),
	}
	p := f.Modulus()
	hintInputs = append(hintInputs, x.Limbs...)
	hintInputs = append(hintInputs, p.Limbs...)
	limbs, err := f.api.Compiler().NewHint(RemHint, int(f.fParams.NbLimbs()), hintInputs...)
	if err != nil {
		return nil, err
	}
	return f.PackLimbs(limbs), nil
}

// RemHint sets z to the remainder x%y for y != 0 and returns z.
func RemHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	nbBits, x, y, err := parseHintDivInputs(inputs)
	if err != nil {
		return err
	}
	r := new(big.Int)
	r.Mod(x, y)
	if err := decompose(r, nbBits, outputs); err != nil {
		return fmt.Errorf("decompose remainder: %w", err)
	}
	return nil
}

// computeQuoHint packs the inputs for the QuoHint hint function, computing
// x / p for the field modulus. The quotient limb count is derived from the
// bound of x, so the limbs may be more than NbLimbs.
func (f *Field[T]) computeQuoHint(x *Element[T]) (z *Element[T], err error) {
	var fp T
	resLen := (uint(len(x.Limbs))*fp.BitsPerLimb() + x.overflow + 1 - // diff total bitlength
		uint(fp.Modulus().BitLen()) + // subtract modulus bitlength
		fp.BitsPerLimb() - 1) / fp.BitsPerLimb() // to round up

	hintInputs := []frontend.Variable{
		f.fParams.BitsPerLimb(),
		len(x.Limbs),
	}
	p := f.Modulus()
	hintInputs = append(hintInputs, x.Limbs...)
	hintInputs = append(hintInputs, p.Limbs...)
	limbs, err := f.api.Compiler().NewHint(QuoHint, int(resLen), hintInputs...)
	if err != nil {
		return nil, err
	}
	return f.packHintLimbs(limbs), nil
}

// QuoHint sets z to the quotient x/y for y != 0 and returns z. If y == 0,
// returns an error. The quotient is discarding the remainder.
func QuoHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	nbBits, x, y, err := parseHintDivInputs(inputs)
	if err != nil {
		return err
	}
	z := new(big.Int)
	z.Div(x, y)
	if err := decompose(z, nbBits, outputs); err != nil {
		return fmt.Errorf("decompose quotient: %w", err)
	}
	return nil
}

// computeInverseHint packs the inputs for the InverseHint hint function.
func (f *Field[T]) computeInverseHint(inLimbs []frontend.Variable) (inverseLimbs []frontend.Variable, err error) {
	hintInputs := []frontend.Variable{
		f.fParams.BitsPerLimb(),
		f.fParams.NbLimbs(),
	}
	p := f.Modulus()
	hintInputs = append(hintInputs, p.Limbs...)
	hintInputs = append(hintInputs, inLimbs...)
	return f.api.Compiler().NewHint(InverseHint, int(f.fParams.NbLimbs()), hintInputs...)
}

// InverseHint computes the inverse x^-1 for the input x and stores it in
// outputs.
func InverseHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	if len(inputs) < 2 {
		return errors.New("input must be at least two elements")
	}
	nbBits := uint(inputs[0].Uint64())
	nbLimbs := int(inputs[1].Int64())
	if len(inputs[2:]) < 2*nbLimbs {
		return errors.New("inputs missing")
	}
	if len(outputs) != nbLimbs {
		return errors.New("result does not fit into output")
	}
	p := new(big.Int)
	if err := recompose(inputs[2:2+nbLimbs], nbBits, p); err != nil {
		return fmt.Errorf("recompose emulated order: %w", err)
	}
	x := new(big.Int)
	if err := recompose(inputs[2+nbLimbs:], nbBits, x); err != nil {
		return fmt.Errorf("recompose value: %w", err)
	}
	if x.ModInverse(x, p) == nil {
		return errors.New("input and modulus not relatively primes")
	}
	if err := decompose(x, nbBits, outputs); err != nil {
		return fmt.Errorf("decompose: %w", err)
	}
	return nil
}

// computeDivisionHint packs the inputs for the DivHint hint function.
func (f *Field[T]) computeDivisionHint(nomLimbs, denomLimbs []frontend.Variable) (divLimbs []frontend.Variable, err error) {
	hintInputs := []frontend.Variable{
		f.fParams.BitsPerLimb(),
		f.fParams.NbLimbs(),
		len(denomLimbs),
		len(nomLimbs),
	}
	p := f.Modulus()
	hintInputs = append(hintInputs, p.Limbs...)
	hintInputs = append(hintInputs, nomLimbs...)
	hintInputs = append(hintInputs, denomLimbs...)
	return f.api.Compiler().NewHint(DivHint, int(f.fParams.NbLimbs()), hintInputs...)
}

// DivHint computes the value z = x/y for inputs x and y and stores z in
// outputs.
func DivHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	if len(inputs) < 4 {
		return errors.New("input must be at least four elements")
	}
	nbBits := uint(inputs[0].Uint64())
	nbLimbs := int(inputs[1].Int64())
	nbDenomLimbs := int(inputs[2].Int64())
	// nominator does not have to be reduced and can be more than nbLimbs.
	// Denominator and order have to be nbLimbs long.
	nbNomLimbs := int(inputs[3].Int64())
	if len(inputs[4:]) != nbLimbs+nbNomLimbs+nbDenomLimbs {
		return errors.New("input length mismatch")
	}
	if len(outputs) != nbLimbs {
		return errors.New("result does not fit into output")
	}
	p := new(big.Int)
	if err := recompose(inputs[4:4+nbLimbs], nbBits, p); err != nil {
		return fmt.Errorf("recompose emulated order: %w", err)
	}
	nominator := new(big.Int)
	if err := recompose(inputs[4+nbLimbs:4+nbLimbs+nbNomLimbs], nbBits, nominator); err != nil {
		return fmt.Errorf("recompose nominator: %w", err)
	}
	denominator := new(big.Int)
	if err := recompose(inputs[4+nbLimbs+nbNomLimbs:], nbBits, denominator); err != nil {
		return fmt.Errorf("recompose denominator: %w", err)
	}
	res := new(big.Int).ModInverse(denominator, p)
	if res == nil {
		return errors.New("no modular inverse")
	}
	res.Mul(res, nominator)
	res.Mod(res, p)
	if err := decompose(res, nbBits, outputs); err != nil {
		return fmt.Errorf("decompose division: %w", err)
	}
	return nil
}

// SqrtHint computes a square root of the input, erroring when the input is
// not a quadratic residue.
func SqrtHint(mod *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	return UnwrapHint(inputs, outputs, func(field *big.Int, inputs, outputs []*big.Int) error {
		if len(inputs) != 1 {
			return errors.New("expecting single input")
		}
		if len(outputs) != 1 {
			return errors.New("expecting single output")
		}
		res := new(big.Int)
		if res.ModSqrt(inputs[0], field) == nil {
			return errors.New("no square root")
		}
		outputs[0].Set(res)
		return nil
	})
}

// RightShift returns the value right-shifted by the shift amount given as
// the first input.
func RightShift(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	if len(inputs) != 2 {
		return errors.New("expecting two inputs")
	}
	if len(outputs) != 1 {
		return errors.New("expecting single output")
	}
	outputs[0].Rsh(inputs[1], uint(inputs[0].Uint64()))
	return nil
}

// Sqrt computes a square root of a, constraining root*root == a. The choice
// between the two roots is fixed by the hint. The circuit is unsatisfiable
// when a is not a quadratic residue.
func (f *Field[T]) Sqrt(a *Element[T]) *Element[T] {
	res, err := f.NewHint(SqrtHint, 1, a)
	if err != nil {
		panic(fmt.Sprintf("compute sqrt: %v", err))
	}
	f.AssertIsEqual(f.Mul(res[0], res[0]), a)
	return res[0]
}

// NewHint allows to call the emulation hint function hf on inputs, expecting
// nbOutputs results. This function splits the emulated elements into limbs
// and packs them with the modulus for the hint function. The corresponding
// recomposition inside the hint is performed by [UnwrapHint], so that the
// hint function body works on integers modulo the emulated field:
//
//	func HintFn(mod *big.Int, inputs, outputs []*big.Int) error {
//	    return emulated.UnwrapHint(inputs, outputs,
//	        func(mod *big.Int, inputs, outputs []*big.Int) error {
//	            // here all inputs and outputs are modulo the emulated field
//	        })
//	}
func (f *Field[T]) NewHint(hf solver.Hint, nbOutputs int, inputs ...*Element[T]) ([]*Element[T], error) {
	nbLimbs := int(f.fParams.NbLimbs())
	nativeInputs := []frontend.Variable{
		f.fParams.BitsPerLimb(),
		nbLimbs,
		len(inputs),
	}
	nativeInputs = append(nativeInputs, f.Modulus().Limbs...)
	for i := range inputs {
		cin := f.Reduce(inputs[i])
		if len(cin.Limbs) > nbLimbs {
			return nil, fmt.Errorf("input %d has %d limbs, expected at most %d", i, len(cin.Limbs), nbLimbs)
		}
		nativeInputs = append(nativeInputs, cin.Limbs...)
		for j := len(cin.Limbs); j < nbLimbs; j++ {
			nativeInputs = append(nativeInputs, 0)
		}
	}
	nativeOutputs, err := f.api.Compiler().NewHint(hf, nbOutputs*nbLimbs, nativeInputs...)
	if err != nil {
		return nil, fmt.Errorf("call hint: %w", err)
	}
	outputs := make([]*Element[T], nbOutputs)
	for i := 0; i < nbOutputs; i++ {
		outputs[i] = f.PackLimbs(nativeOutputs[i*nbLimbs : (i+1)*nbLimbs])
	}
	return outputs, nil
}

// UnwrapHint unwraps the native inputs into nonnative inputs. Then it calls
// the nonnativeHint function with nonnative inputs. After nonnativeHint
// returns, it decomposes the outputs into limbs. It is the counterpart of
// [Field.NewHint].
func UnwrapHint(nativeInputs, nativeOutputs []*big.Int, nonnativeHint solver.Hint) error {
	if len(nativeInputs) < 3 {
		return errors.New("hint wrapper header is 3 elements")
	}
	if !nativeInputs[0].IsInt64() || !nativeInputs[1].IsInt64() || !nativeInputs[2].IsInt64() {
		return errors.New("header must be castable to int64")
	}
	nbBits := uint(nativeInputs[0].Int64())
	nbLimbs := int(nativeInputs[1].Int64())
	nbInputs := int(nativeInputs[2].Int64())
	if len(nativeInputs) != 3+nbLimbs+nbInputs*nbLimbs {
		return errors.New("packed input length mismatch")
	}
	if nbLimbs == 0 || len(nativeOutputs)%nbLimbs != 0 {
		return errors.New("output length not divisible by limb count")
	}
	nonnativeMod := new(big.Int)
	if err := recompose(nativeInputs[3:3+nbLimbs], nbBits, nonnativeMod); err != nil {
		return fmt.Errorf("recompose modulus: %w", err)
	}
	nonnativeInputs := make([]*big.Int, nbInputs)
	for i := range nonnativeInputs {
		nonnativeInputs[i] = new(big.Int)
		if err := recompose(nativeInputs[3+nbLimbs+i*nbLimbs:3+nbLimbs+(i+1)*nbLimbs], nbBits, nonnativeInputs[i]); err != nil {
			return fmt.Errorf("recompose input %d: %w", i, err)
		}
		nonnativeInputs[i].Mod(nonnativeInputs[i], nonnativeMod)
	}
	nonnativeOutputs := make([]*big.Int, len(nativeOutputs)/nbLimbs)
	for i := range nonnativeOutputs {
		nonnativeOutputs[i] = new(big.Int)
	}
	if err := nonnativeHint(nonnativeMod, nonnativeInputs, nonnativeOutputs); err != nil {
		return fmt.Errorf("nonnative hint: %w", err)
	}
	for i := range nonnativeOutputs {
		nonnativeOutputs[i].Mod(nonnativeOutputs[i], nonnativeMod)
		if err := decompose(nonnativeOutputs[i], nbBits, nativeOutputs[i*nbLimbs:(i+1)*nbLimbs]); err != nil {
			return fmt.Errorf("decompose output %d: %w", i, err)
		}
	}
	return nil
}

// parseHintDivInputs parses the inputs to the hint functions QuoHint and
// RemHint.
func parseHintDivInputs(inputs []*big.Int) (uint, *big.Int, *big.Int, error) {
	if len(inputs) < 2 {
		return 0, nil, nil, errors.New("at least 2 inputs required")
	}
	nbBits := uint(inputs[0].Uint64())
	nbLimbs := int(inputs[1].Int64())
	if len(inputs[2:]) < nbLimbs {
		return 0, nil, nil, errors.New("inputs missing")
	}
	x := new(big.Int)
	if err := recompose(inputs[2:2+nbLimbs], nbBits, x); err != nil {
		return 0, nil, nil, fmt.Errorf("recompose x: %w", err)
	}
	y := new(big.Int)
	if err := recompose(inputs[2+nbLimbs:], nbBits, y); err != nil {
		return 0, nil, nil, fmt.Errorf("recompose y: %w", err)
	}
	if y.IsUint64() && y.Uint64() == 0 {
		return 0, nil, nil, errors.New("modulus is zero")
	}
	return nbBits, x, y, nil
}
