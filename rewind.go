// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"encoding/binary"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// RewindResult is everything recovered from a proof by its rewind
// nonce: the committed value, the proven range, the blinding factor,
// and any message bytes the prover folded into the proof.
type RewindResult struct {
	Value    uint64
	MinValue uint64
	MaxValue uint64
	Blind    [BlindSize]byte
	Message  []byte
}

// RangeProofRewind verifies proof against commit and then uses nonce
// to recover the committed value, the blinding factor, and up to
// msgCap bytes of embedded message. Recovery is authenticated: the
// commitment is rebuilt from the recovered witness and compared
// bytewise against commit.
func (ctx *Context) RangeProofRewind(nonce, commit, proof []byte, msgCap int) (*RewindResult, error) {
	if len(nonce) < 32 {
		return nil, ErrInvalidArgument
	}
	if msgCap < 0 {
		msgCap = 0
	}
	return ctx.verifyProof(commit, proof, nonce[:32], msgCap)
}

// recoverX solves a ring equation for the secret key: x = (k - s)/e.
func recoverX(x *secp256k1.ModNScalar, k, e, s *secp256k1.ModNScalar) {
	var einv secp256k1.ModNScalar
	x.NegateVal(s)
	x.Add(k)
	einv.InverseValNonConst(e)
	x.Mul(&einv)
	einv.Zero()
}

// recoverK solves the other direction: k = s + x*e.
func recoverK(k *secp256k1.ModNScalar, x, e, s *secp256k1.ModNScalar) {
	var xe secp256k1.ModNScalar
	xe.Mul2(x, e)
	k.Set(s)
	k.Add(&xe)
	xe.Zero()
}

// xor32 folds y into the 32-byte block x in place.
func xor32(x, y []byte) {
	for i := 0; i < 32; i++ {
		x[i] ^= y[i]
	}
}

// rewindInner reconstructs the prover's deterministic stream and
// extracts the witness. ev holds the per-slot challenges retained by
// the Borromean verification, s the proof's signature scalars.
// prefix is the proof's header, which salted the stream.
//
// The mantissa value is located through its marker in one of the last
// ring's two top slots: a set high bit and three matching big-endian
// copies. The blinding factor then falls out of the last ring's
// non-forged slot, and the message bytes out of every remaining slot.
func (ctx *Context) rewindInner(ev, s []secp256k1.ModNScalar, rsizes []int,
	nonce, commit, prefix []byte, msgCap int) (uint64, secp256k1.ModNScalar, []byte, error) {

	rings := len(rsizes)
	var sOrig [maxNPub]secp256k1.ModNScalar
	var sec [maxRings]secp256k1.ModNScalar
	var stmp, blind secp256k1.ModNScalar
	defer zeroScalars(sOrig[:])
	defer zeroScalars(sec[:])
	defer stmp.Zero()

	npub := (rings-1)*4 + rsizes[rings-1]
	prep := make([]byte, 4096)
	defer zeroBytes(prep)

	// Reconstruct the prover's random values. The zero mask makes
	// prep end up holding the raw stream blocks, which is exactly
	// what inverting the prover's XOR requires.
	genrand(sec[:rings], sOrig[:npub], prep, rsizes, nonce, commit, prefix)

	if rings == 1 && rsizes[0] == 1 {
		// A single-member proof carries no value; only the blinding
		// factor can be recovered.
		recoverX(&blind, &sOrig[0], &ev[0], &s[0])
		return 0, blind, nil, nil
	}

	base := (rings - 1) * 4
	var tmp [32]byte
	defer zeroBytes(tmp[:])
	var value uint64
	found := -1
	for j := 0; j < 2; j++ {
		idx := base + rsizes[rings-1] - 1 - j
		s[idx].PutBytes(&tmp)
		xor32(tmp[:], prep[idx*32:])
		if tmp[0]&128 != 0 &&
			string(tmp[8:16]) == string(tmp[16:24]) &&
			string(tmp[16:24]) == string(tmp[24:32]) {
			value = binary.BigEndian.Uint64(tmp[24:32])
			copy(prep[idx*32:], tmp[:])
			found = j
			break
		}
	}
	if found < 0 {
		// No value marker: wrong nonce or a foreign proof.
		return 0, blind, nil, ErrRewindFailed
	}
	skip1 := rsizes[rings-1] - 1 - found
	skip2 := int((value >> (uint(rings-1) * 2)) & 3)
	if skip1 == skip2 {
		// The marker landed in the slot the value says is real.
		return 0, blind, nil, ErrRewindFailed
	}
	skip1 += base
	skip2 += base

	// The non-forged slot identified, recover the blinding factor the
	// same way as the single-member case, then strip the last ring's
	// synthetic blinding share.
	recoverX(&stmp, &sOrig[skip2], &ev[skip2], &s[skip2])
	sec[rings-1].Negate()
	blind.Set(&stmp)
	blind.Add(&sec[rings-1])

	var msg []byte
	if msgCap > 0 {
		msg = make([]byte, 0, msgCap)
		npub = 0
		for i := 0; i < rings; i++ {
			idx := int((value >> (uint(i) * 2)) & 3)
			for j := 0; j < rsizes[i]; j++ {
				if npub == skip1 || npub == skip2 {
					npub++
					continue
				}
				if idx == j {
					// The real member's signature was computed, not
					// drawn; recovering the prover's nonce instead is
					// cheaper than another inversion and carries the
					// same prepad.
					recoverK(&stmp, &sec[i], &ev[npub], &s[npub])
				} else {
					stmp.Set(&s[npub])
				}
				stmp.PutBytes(&tmp)
				xor32(tmp[:], prep[npub*32:])
				take := 32
				if rem := msgCap - len(msg); rem < take {
					take = rem
				}
				msg = append(msg, tmp[:take]...)
				npub++
				if len(msg) == msgCap {
					break
				}
			}
			if len(msg) == msgCap {
				break
			}
		}
	}
	return value, blind, msg, nil
}
