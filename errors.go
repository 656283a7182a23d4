// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1zkp

import "errors"

var (
	// ErrContextNotBuilt is returned when a context is used before its
	// tables are built or after Clear.
	ErrContextNotBuilt = errors.New("context tables not built")

	// ErrInvalidArgument is returned for nil or mis-sized inputs and
	// out-of-range proof parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrScalarOverflow is returned when a 32-byte input encodes an
	// integer not below the group order.
	ErrScalarOverflow = errors.New("scalar overflows group order")

	// ErrInvalidCommitment is returned when a 33-byte blob is not a
	// valid compressed point on the curve.
	ErrInvalidCommitment = errors.New("invalid commitment")

	// ErrPointAtInfinity is returned when an intermediate computation
	// lands on the point at infinity. The caller's remedy is to retry
	// with a fresh nonce or blinding factor.
	ErrPointAtInfinity = errors.New("result is point at infinity")

	// ErrProofMalformed is returned by the verifier for any structural
	// defect: a set high flag bit, exp over 18, mantissa over 64, a
	// length mismatch, trailing bytes, or nonzero sign-bit padding.
	ErrProofMalformed = errors.New("malformed range proof")

	// ErrProofRejected is returned when a structurally valid proof
	// fails the ring signature check.
	ErrProofRejected = errors.New("range proof rejected")

	// ErrSignFailed is the single error surfaced for any secret-
	// dependent failure while producing a proof. Retry with a
	// different nonce.
	ErrSignFailed = errors.New("range proof generation failed")

	// ErrRewindFailed is the single error surfaced when a proof cannot
	// be rewound with the given nonce.
	ErrRewindFailed = errors.New("range proof rewind failed")
)
