package mldsa

// Params describes the tunable 10-tuple of an ML-DSA parameter set
// (FIPS 204 Table 1), plus the derived quantities and encoded sizes
// computed from it. It is a read-only snapshot for introspection; the
// implementation itself is monomorphized per parameter set (Key44,
// Key65, Key87) rather than driven generically off this struct, since
// Go's type system cannot parametrize fixed-size polynomial arrays on a
// runtime value.
type Params struct {
	// Name is the conventional NIST name for the parameter set.
	Name string

	K, L     int    // matrix dimensions: Â is K x L
	Eta      int    // secret coefficient bound
	Gamma1   int    // mask coefficient range
	Gamma2   uint32 // low-order rounding range
	Tau      int    // number of ±1 coefficients in the challenge
	Omega    int    // maximum hint weight
	Lambda   int    // collision strength of c-tilde, in bits
	Beta     int    // tau * eta, max magnitude of c*s1 or c*s2
	D        int    // dropped bits in Power2Round
	N        int    // polynomial degree

	PublicKeySize  int
	PrivateKeySize int
	SignatureSize  int
}

// Params44 returns the parameter profile for ML-DSA-44 (NIST security
// category 2).
func Params44() Params {
	return Params{
		Name: "ML-DSA-44",
		K: k44, L: l44, Eta: eta2, Gamma1: gamma1Pow17, Gamma2: gamma2QMinus1Div88,
		Tau: tau39, Omega: omega80, Lambda: lambda128, Beta: beta44, D: d, N: n,
		PublicKeySize: PublicKeySize44, PrivateKeySize: PrivateKeySize44, SignatureSize: SignatureSize44,
	}
}

// Params65 returns the parameter profile for ML-DSA-65 (NIST security
// category 3).
func Params65() Params {
	return Params{
		Name: "ML-DSA-65",
		K: k65, L: l65, Eta: eta4, Gamma1: gamma1Pow19, Gamma2: gamma2QMinus1Div32,
		Tau: tau49, Omega: omega55, Lambda: lambda192, Beta: beta65, D: d, N: n,
		PublicKeySize: PublicKeySize65, PrivateKeySize: PrivateKeySize65, SignatureSize: SignatureSize65,
	}
}

// Params87 returns the parameter profile for ML-DSA-87 (NIST security
// category 5).
func Params87() Params {
	return Params{
		Name: "ML-DSA-87",
		K: k87, L: l87, Eta: eta2, Gamma1: gamma1Pow19, Gamma2: gamma2QMinus1Div32,
		Tau: tau60, Omega: omega75, Lambda: lambda256, Beta: beta87, D: d, N: n,
		PublicKeySize: PublicKeySize87, PrivateKeySize: PrivateKeySize87, SignatureSize: SignatureSize87,
	}
}

// AllParams returns the three standardized parameter profiles, in
// ascending order of security strength.
func AllParams() []Params {
	return []Params{Params44(), Params65(), Params87()}
}
