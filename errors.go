package mldsa

import "errors"

// Input-shape errors. These are programmer errors, malformed lengths or
// encodings handed to the API, as opposed to a verification failure,
// which is always reported as a plain bool.
var (
	// ErrInvalidSeedLength is returned when a key-generation seed is not
	// exactly SeedSize bytes.
	ErrInvalidSeedLength = errors.New("mldsa: invalid seed length")

	// ErrInvalidPublicKeyLength is returned when an encoded public key
	// does not match the expected size for its parameter set.
	ErrInvalidPublicKeyLength = errors.New("mldsa: invalid public key length")

	// ErrInvalidPrivateKeyLength is returned when an encoded private key
	// does not match the expected size for its parameter set.
	ErrInvalidPrivateKeyLength = errors.New("mldsa: invalid private key length")

	// ErrContextTooLong is returned when a context string exceeds 255
	// bytes, the maximum representable by the one-byte length prefix in
	// the M' framing.
	ErrContextTooLong = errors.New("mldsa: context exceeds 255 bytes")

	// ErrInvalidEncoding is returned when a secret-key polynomial packing
	// contains a coefficient outside its declared bounded range.
	ErrInvalidEncoding = errors.New("mldsa: invalid coefficient encoding")

	// ErrHashVariantUnsupported is returned by the SignHash stub methods,
	// and by Sign/SignMessage when opts names a hash function. The
	// pre-hash variant is out of scope for this implementation; the stub
	// methods exist only so callers can discover and branch on the
	// unsupported mode without a missing-symbol error.
	ErrHashVariantUnsupported = errors.New("mldsa: HashML-DSA pre-hash variant is not implemented")
)
