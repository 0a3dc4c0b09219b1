package jwt

type noneAlgorithm struct{}

// None returns the unsigned algorithm variant. Its signature is the empty
// byte sequence, so tokens it produces end with a trailing dot and an empty
// third segment.
//
// A Decoder configured to validate signatures refuses tokens carrying this
// algorithm; accepting them requires an explicit
// Builder.DoNotVerifySignature call.
func None() Algorithm {
	return noneAlgorithm{}
}

func (noneAlgorithm) Name() string { return AlgorithmNone }

func (noneAlgorithm) Sign(signingInput []byte) ([]byte, error) {
	return []byte{}, nil
}

func (noneAlgorithm) Verify(signingInput, signature, key []byte) bool {
	return len(signature) == 0
}
