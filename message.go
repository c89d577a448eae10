package mldsa

// frameMessage builds M' = 0x00 || len(ctx) || ctx || message, the "pure
// ML-DSA" domain-separated framing consumed by signInternal/verifyInternal
// (FIPS 204 Algorithms 2 and 3). The leading zero byte distinguishes this
// framing from the HashML-DSA pre-hash variant's leading 0x01, which this
// module does not implement (see ErrHashVariantUnsupported).
func frameMessage(context, message []byte) ([]byte, error) {
	if len(context) > 255 {
		return nil, ErrContextTooLong
	}
	mPrime := make([]byte, 2+len(context)+len(message))
	mPrime[0] = 0
	mPrime[1] = byte(len(context))
	copy(mPrime[2:], context)
	copy(mPrime[2+len(context):], message)
	return mPrime, nil
}
