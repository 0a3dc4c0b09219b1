// Package jwt implements an encode/decode/validate engine for signed,
// claim-bearing tokens in the compact three-segment form
// base64url(header).base64url(payload).base64url(signature).
//
// The engine is assembled from explicit collaborators: an Algorithm
// (HMAC, RSA, ECDSA or none), a JSON Serializer, a base64url Codec and a
// clock. Defaults exist for everything except the algorithm and, when
// signature validation is requested, the key set.
//
// Basic usage:
//
//	token, err := jwt.NewBuilder().
//		WithAlgorithm(jwt.HS256(secret)).
//		WithSubject("user-42").
//		WithExpiration(time.Now().Add(15 * time.Minute)).
//		Encode()
//
//	claims, err := jwt.NewBuilder().
//		WithAlgorithm(jwt.HS256(nil)).
//		WithKeys(oldSecret, newSecret).
//		Decode(token)
//
// On decode the algorithm actually used to verify is always the configured
// one: the header's algorithm name is only compared for equality and the
// token is rejected on mismatch, which blocks algorithm-confusion attacks.
// Tokens signed with the none algorithm are refused unless signature
// validation is explicitly disabled.
package jwt
