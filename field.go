package mldsa

// fieldElement is an integer modulo q, always kept in reduced form [0, q).
type fieldElement uint32

// ringElement is a polynomial with n coefficients in Z_q, in standard
// (non-NTT) domain.
type ringElement [n]fieldElement

// nttElement is the NTT-domain representation of a polynomial: a
// bit-reversal-ordered vector of evaluations at the n primitive 2n-th
// roots of unity mod q. It shares its underlying representation with
// ringElement (both are [n]fieldElement), so the compiler cannot catch a
// domain mix-up; which functions expect which domain is tracked by
// naming and doc comments only.
type nttElement [n]fieldElement

// Montgomery form constants, used throughout field.go and ntt.go so that
// field multiplication never needs a 64-bit division.
const (
	// qInv = q^(-1) mod 2^32
	qInv = 58728449
	// qNegInv = -q^(-1) mod 2^32 = 2^32 - qInv
	qNegInv = 4236238847
	// montR = 2^32 mod q (Montgomery R)
	montR = 4193792
	// montR2 = 2^64 mod q (Montgomery R^2)
	montR2 = 2365951
	// invN = n^(-1) * R^2 mod q, used to rescale after invNTT
	invN = 41978
)

// fieldReduceOnce reduces a value known to be < 2q into [0, q).
func fieldReduceOnce(a uint32) fieldElement {
	// If a >= q, subtract q
	x := a - q
	// If underflow (a < q), x has high bit set
	x += (x >> 31) * q
	return fieldElement(x)
}

// fieldAdd returns (a + b) mod q.
func fieldAdd(a, b fieldElement) fieldElement {
	return fieldReduceOnce(uint32(a) + uint32(b))
}

// fieldSub returns (a - b) mod q.
func fieldSub(a, b fieldElement) fieldElement {
	return fieldReduceOnce(uint32(a) - uint32(b) + q)
}

// fieldReduce performs Montgomery reduction: returns a * R^(-1) mod q
// where a < q * 2^32.
func fieldReduce(a uint64) fieldElement {
	// Montgomery reduction: t = ((a mod 2^32) * qNegInv) mod 2^32
	t := uint32(a) * qNegInv
	// result = (a + t*q) / 2^32
	return fieldReduceOnce(uint32((a + uint64(t)*q) >> 32))
}

// fieldMul returns a * b * R^(-1) mod q (Montgomery multiplication). The
// zetas table (ntt.go) is pre-scaled by R, so the NTT butterflies yield
// plain products; the factor R^(-1) left by nttMul's pointwise products
// is cancelled by the extra factor R in invN, applied at the end of
// invNTT.
func fieldMul(a, b fieldElement) fieldElement {
	return fieldReduce(uint64(a) * uint64(b))
}

// centeredMod maps x in [0, q) to its centered signed representative in
// [-(q-1)/2, (q-1)/2], the "mod±" operator. It underlies the
// infinity-norm checks. The packers (packZ17/packZ19/packT0/packEta2/
// packEta4) do not call it: they compute b minus the standard-domain
// coefficient with fieldSub, which for a coefficient in the declared
// range gives the same value as centering first.
func centeredMod(x fieldElement) int32 {
	v := int32(x)
	if v > int32(qMinus1Div2) {
		v -= q
	}
	return v
}

// polyAdd adds two polynomials coefficient-wise mod q. The type
// parameter lets the same loop serve both ringElement and nttElement,
// since pointwise addition commutes with the NTT.
func polyAdd[T ~[n]fieldElement](a, b T) (c T) {
	for i := range c {
		c[i] = fieldAdd(a[i], b[i])
	}
	return c
}

// polySub subtracts two polynomials coefficient-wise mod q.
func polySub[T ~[n]fieldElement](a, b T) (c T) {
	for i := range c {
		c[i] = fieldSub(a[i], b[i])
	}
	return c
}
