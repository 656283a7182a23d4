// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// isInfinity reports whether p is the point at infinity.
func isInfinity(p *secp256k1.JacobianPoint) bool {
	return (p.X.IsZero() && p.Y.IsZero()) || p.Z.IsZero()
}

// negatePoint sets p to -p in place.
func negatePoint(p *secp256k1.JacobianPoint) {
	p.Y.Normalize()
	p.Y.Negate(1)
	p.Y.Normalize()
}

// addPoint computes r = a + b without aliasing restrictions.
func addPoint(a, b, r *secp256k1.JacobianPoint) {
	var sum secp256k1.JacobianPoint
	secp256k1.AddNonConst(a, b, &sum)
	r.Set(&sum)
}

// doublePoint computes r = 2a without aliasing restrictions.
func doublePoint(a, r *secp256k1.JacobianPoint) {
	var dbl secp256k1.JacobianPoint
	secp256k1.DoubleNonConst(a, &dbl)
	r.Set(&dbl)
}

// serializePoint writes p compressed into a fresh 33-byte slice.
// p must not be the point at infinity.
func serializePoint(p *secp256k1.JacobianPoint) []byte {
	var a secp256k1.JacobianPoint
	a.Set(p)
	a.ToAffine()
	out := make([]byte, 33)
	out[0] = 0x02
	if a.Y.IsOdd() {
		out[0] = 0x03
	}
	a.X.PutBytesUnchecked(out[1:33])
	return out
}

// serializePointInto is serializePoint without the allocation.
func serializePointInto(p *secp256k1.JacobianPoint, out *[33]byte) {
	var a secp256k1.JacobianPoint
	a.Set(p)
	a.ToAffine()
	out[0] = 0x02
	if a.Y.IsOdd() {
		out[0] = 0x03
	}
	a.X.PutBytesUnchecked(out[1:33])
}

// parsePoint decodes a 33-byte compressed point. It rejects anything
// that is not a point on the curve; infinity has no valid encoding.
func parsePoint(b []byte, r *secp256k1.JacobianPoint) error {
	if len(b) != CommitmentSize {
		return ErrInvalidCommitment
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return ErrInvalidCommitment
	}
	pub.AsJacobian(r)
	return nil
}

// zeroBytes overwrites b.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// zeroScalars overwrites every scalar in s.
func zeroScalars(s []secp256k1.ModNScalar) {
	for i := range s {
		s[i].Zero()
	}
}
