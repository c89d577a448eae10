package mldsa

import "io"

// SignHash is a placeholder for the HashML-DSA pre-hash variant of FIPS
// 204 (Algorithm 4), which signs H_OID(M) under an external hash
// function OID rather than the raw message. That variant is out of
// scope for this implementation; SignHash always returns
// ErrHashVariantUnsupported so that callers doing capability discovery
// (a type switch over signing modes, say) find the method rather than a
// missing symbol.
func (sk *PrivateKey44) SignHash(rand io.Reader, digest []byte, oid []byte, context []byte) ([]byte, error) {
	return nil, ErrHashVariantUnsupported
}

// VerifyHash is the HashML-DSA counterpart to SignHash; see its doc
// comment. It always reports failure.
func (pk *PublicKey44) VerifyHash(sig, digest, oid, context []byte) bool {
	return false
}

// SignHash is the ML-DSA-65 counterpart of PrivateKey44.SignHash.
func (sk *PrivateKey65) SignHash(rand io.Reader, digest []byte, oid []byte, context []byte) ([]byte, error) {
	return nil, ErrHashVariantUnsupported
}

// VerifyHash is the ML-DSA-65 counterpart of PublicKey44.VerifyHash.
func (pk *PublicKey65) VerifyHash(sig, digest, oid, context []byte) bool {
	return false
}

// SignHash is the ML-DSA-87 counterpart of PrivateKey44.SignHash.
func (sk *PrivateKey87) SignHash(rand io.Reader, digest []byte, oid []byte, context []byte) ([]byte, error) {
	return nil, ErrHashVariantUnsupported
}

// VerifyHash is the ML-DSA-87 counterpart of PublicKey44.VerifyHash.
func (pk *PublicKey87) VerifyHash(sig, digest, oid, context []byte) bool {
	return false
}
