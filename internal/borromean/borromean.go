// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package borromean implements the Borromean ring signature used by
// the range proof: nrings concurrent AOS-style ring signatures all
// bound through a single shared challenge e0.
//
// Within ring i the challenges chain as
//
//	e[i][0]   = H(e0 || m || i || 0)
//	R[i][j]   = e[i][j]*P[i][j] + s[i][j]*G
//	e[i][j+1] = H(R[i][j] || m || i || j+1)
//
// and e0 itself is the hash of every ring's final R together with m.
// Forged members use random s values; the one real member per ring
// closes its ring with s = k - e*x.
package borromean

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ErrSign is returned when signing fails; retrying with a fresh nonce
// is the documented remedy. No further detail is exposed because the
// failing branch depends on secret data.
var ErrSign = errors.New("borromean: sign failed")

// hashE derives a ring challenge. e is either the shared challenge e0
// or a serialized 33-byte R point.
func hashE(m, e []byte, ridx, eidx uint32) [32]byte {
	var idx [8]byte
	binary.BigEndian.PutUint32(idx[0:4], ridx)
	binary.BigEndian.PutUint32(idx[4:8], eidx)
	h := sha256.New()
	h.Write(e)
	h.Write(m)
	h.Write(idx[:])
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// isInfinity reports whether p is the point at infinity.
func isInfinity(p *secp256k1.JacobianPoint) bool {
	return (p.X.IsZero() && p.Y.IsZero()) || p.Z.IsZero()
}

// serialize33 writes p in compressed form. p must not be infinity.
func serialize33(p *secp256k1.JacobianPoint, out *[33]byte) {
	var a secp256k1.JacobianPoint
	a.Set(p)
	a.ToAffine()
	out[0] = 0x02
	if a.Y.IsOdd() {
		out[0] = 0x03
	}
	a.X.PutBytesUnchecked(out[1:33])
}

// ecmult computes r = na*pub + ng*G.
func ecmult(r *secp256k1.JacobianPoint, pub *secp256k1.JacobianPoint, na, ng *secp256k1.ModNScalar) {
	var napub, nggen secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(na, pub, &napub)
	secp256k1.ScalarBaseMultNonConst(ng, &nggen)
	secp256k1.AddNonConst(&napub, &nggen, r)
}

// setChallenge loads a hash into a scalar, rejecting the (negligible
// probability) overflow and zero cases the same way the range proof
// does everywhere else.
func setChallenge(ens *secp256k1.ModNScalar, h *[32]byte) bool {
	overflow := ens.SetBytes(h) != 0
	return !overflow && !ens.IsZero()
}

// Sign produces the shared challenge e0 for the given rings,
// overwriting s[count+secidx[i]] for each ring i with the closing
// signature. pubs holds the candidate public keys for all rings
// back to back, rsizes the ring sizes, secidx the index of the real
// member within each ring, sec the secret keys, and k the per-ring
// nonces. m is the 32-byte message binding the rings.
//
// s, k, and sec are secret inputs; the caller owns their zeroization.
func Sign(s []secp256k1.ModNScalar, pubs []secp256k1.JacobianPoint,
	k, sec []secp256k1.ModNScalar, rsizes, secidx []int, m []byte) ([32]byte, error) {

	var e0 [32]byte
	var rgej secp256k1.JacobianPoint
	var ens secp256k1.ModNScalar
	var tmp [33]byte
	defer func() {
		ens.Zero()
		rgej = secp256k1.JacobianPoint{}
		for i := range tmp {
			tmp[i] = 0
		}
	}()

	sha256e0 := sha256.New()
	count := 0
	for i := range rsizes {
		secp256k1.ScalarBaseMultNonConst(&k[i], &rgej)
		if isInfinity(&rgej) {
			return e0, ErrSign
		}
		serialize33(&rgej, &tmp)
		for j := secidx[i] + 1; j < rsizes[i]; j++ {
			h := hashE(m, tmp[:], uint32(i), uint32(j))
			if !setChallenge(&ens, &h) {
				return e0, ErrSign
			}
			// The signing algorithm as a whole is not memory uniform,
			// so the forgeries may leak which members are non-forged
			// through a cache sidechannel. See the constant-time notes
			// in the module's DESIGN.md.
			ecmult(&rgej, &pubs[count+j], &ens, &s[count+j])
			if isInfinity(&rgej) {
				return e0, ErrSign
			}
			serialize33(&rgej, &tmp)
		}
		sha256e0.Write(tmp[:])
		count += rsizes[i]
	}
	sha256e0.Write(m)
	sha256e0.Sum(e0[:0])

	count = 0
	for i := range rsizes {
		h := hashE(m, e0[:], uint32(i), 0)
		if !setChallenge(&ens, &h) {
			return e0, ErrSign
		}
		for j := 0; j < secidx[i]; j++ {
			ecmult(&rgej, &pubs[count+j], &ens, &s[count+j])
			if isInfinity(&rgej) {
				return e0, ErrSign
			}
			serialize33(&rgej, &tmp)
			h = hashE(m, tmp[:], uint32(i), uint32(j+1))
			if !setChallenge(&ens, &h) {
				return e0, ErrSign
			}
		}
		// Close the ring: s = k - e*x.
		sc := &s[count+secidx[i]]
		sc.Mul2(&ens, &sec[i])
		sc.Negate()
		sc.Add(&k[i])
		if sc.IsZero() {
			return e0, ErrSign
		}
		count += rsizes[i]
	}
	return e0, nil
}

// Verify checks e0 against the rings. When evalues is non-nil it must
// have room for every signature slot and receives the per-slot
// challenges, which the rewinder needs to solve the ring equations.
func Verify(evalues []secp256k1.ModNScalar, e0 []byte,
	s []secp256k1.ModNScalar, pubs []secp256k1.JacobianPoint,
	rsizes []int, m []byte) bool {

	var rgej secp256k1.JacobianPoint
	var ens secp256k1.ModNScalar
	var tmp [33]byte

	sha256e0 := sha256.New()
	count := 0
	for i := range rsizes {
		h := hashE(m, e0, uint32(i), 0)
		for j := 0; j < rsizes[i]; j++ {
			if !setChallenge(&ens, &h) {
				return false
			}
			if evalues != nil {
				evalues[count+j].Set(&ens)
			}
			ecmult(&rgej, &pubs[count+j], &ens, &s[count+j])
			if isInfinity(&rgej) {
				return false
			}
			serialize33(&rgej, &tmp)
			if j != rsizes[i]-1 {
				h = hashE(m, tmp[:], uint32(i), uint32(j+1))
			} else {
				sha256e0.Write(tmp[:])
			}
		}
		count += rsizes[i]
	}
	sha256e0.Write(m)
	var final [32]byte
	sha256e0.Sum(final[:0])
	if len(e0) < 32 {
		return false
	}
	for i := 0; i < 32; i++ {
		if final[i] != e0[i] {
			return false
		}
	}
	return true
}
