// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/toole-brendan/secp256k1zkp/internal/borromean"
)

// RangeProofMaxMessage returns the message capacity in bytes of a
// proof with the given parameters, or 0 when the parameters are
// invalid or leave no room. Two signature slots are reserved: the
// value marker and the last ring's non-forged member.
func RangeProofMaxMessage(minValue uint64, exp, minBits int, value uint64) int {
	if minValue > value || minBits < 0 || minBits > 64 || exp < -1 || exp > 18 {
		return 0
	}
	p, ok := computeProofParams(exp, minBits, minValue, value)
	if !ok || p.rsizes[p.rings-1] < 2 {
		return 0
	}
	return 32 * (p.npub - 2)
}

// RangeProofSign proves that the value committed to by commit, with
// the given blinding factor, lies in [minValue, minValue + range)
// where the range is shaped by exp and minBits. nonce seeds the
// deterministic randomness; sharing it with an auditor later allows
// the proof to be rewound. message, which may be nil, is folded into
// the forged signature slots and is recoverable by the rewinder; its
// length must not exceed RangeProofMaxMessage for the same
// parameters.
//
// The returned proof is between 65 and 5134 bytes. A failure on the
// secret-dependent path is reported as ErrSignFailed without further
// detail; retrying with a fresh nonce is expected to succeed.
func (ctx *Context) RangeProofSign(minValue uint64, commit, blind, nonce []byte,
	exp, minBits int, value uint64, message []byte) ([]byte, error) {

	if !ctx.isBuilt() {
		return nil, ErrContextNotBuilt
	}
	if len(commit) != CommitmentSize || len(blind) != BlindSize || len(nonce) < 32 {
		return nil, ErrInvalidArgument
	}
	if minValue > value || minBits < 0 || minBits > 64 || exp < -1 || exp > 18 {
		return nil, ErrInvalidArgument
	}
	p, ok := computeProofParams(exp, minBits, minValue, value)
	if !ok {
		return nil, ErrInvalidArgument
	}

	proof := make([]byte, MaxProofSize)
	plen := 0
	flags := byte(0)
	if p.rsizes[0] > 1 {
		flags = 64 | byte(p.exp)
	}
	if p.minValue != 0 {
		flags |= 32
	}
	proof[plen] = flags
	plen++
	if p.rsizes[0] > 1 {
		proof[plen] = byte(p.mantissa - 1)
		plen++
	}
	if p.minValue != 0 {
		binary.BigEndian.PutUint64(proof[plen:], p.minValue)
		plen += 8
	}

	sha256m := sha256.New()
	sha256m.Write(commit)
	sha256m.Write(proof[:plen])

	// The slots holding the value marker and the last ring's real
	// member carry no message bytes: the marker pattern must survive
	// rewinding, and the real member's prepad must stay zero so the
	// recovered nonce matches the blinding solution.
	skip1 := -1
	skip2 := -1
	if p.rsizes[p.rings-1] > 1 {
		idx := p.rsizes[p.rings-1] - 1
		if p.secidx[p.rings-1] == idx {
			idx--
		}
		skip1 = (p.rings-1)*4 + idx
		skip2 = (p.rings-1)*4 + p.secidx[p.rings-1]
	}

	msgCap := 0
	if skip1 >= 0 {
		msgCap = 32 * (p.npub - 2)
	}
	if len(message) > msgCap {
		return nil, ErrInvalidArgument
	}

	prep := make([]byte, 4096)
	defer zeroBytes(prep)
	if len(message) > 0 {
		off := 0
		for i := 0; i < p.rings && off < len(message); i++ {
			for j := 0; j < p.rsizes[i] && off < len(message); j++ {
				slot := i*4 + j
				if slot == skip1 || slot == skip2 {
					continue
				}
				off += copy(prep[slot*32:slot*32+32], message[off:])
			}
		}
	}
	if skip1 >= 0 {
		// Value encoding sidechannel: a set high bit followed by three
		// big-endian copies of the mantissa value.
		idx := skip1 * 32
		for i := 0; i < 8; i++ {
			prep[idx+i] = 0
		}
		prep[idx] = 128
		binary.BigEndian.PutUint64(prep[idx+8:], p.v)
		binary.BigEndian.PutUint64(prep[idx+16:], p.v)
		binary.BigEndian.PutUint64(prep[idx+24:], p.v)
	}

	var sec, k [maxRings]secp256k1.ModNScalar
	var s [maxNPub]secp256k1.ModNScalar
	var stmp secp256k1.ModNScalar
	defer zeroScalars(sec[:])
	defer zeroScalars(k[:])
	defer zeroScalars(s[:])
	defer stmp.Zero()

	rsizes := p.rsizes[:p.rings]
	secidx := p.secidx[:p.rings]
	if !genrand(sec[:p.rings], s[:p.npub], prep, rsizes, nonce[:32], commit, proof[:plen]) {
		return nil, ErrSignFailed
	}
	zeroBytes(prep)

	for i := 0; i < p.rings; i++ {
		// Sign overwrites the non-forged signature; its random value
		// becomes the nonce instead.
		k[i].Set(&s[i*4+secidx[i]])
		s[i*4+secidx[i]].Zero()
	}

	// Genrand returns the last blinding factor as -sum(rest). Adding
	// the commitment's blinding factor makes it the blinding of the
	// last digit commitment, which the verifier computes for itself by
	// subtracting every printed digit from the commitment. That lets
	// the prover skip sending one blinded value.
	overflow := stmp.SetByteSlice(blind)
	if overflow {
		return nil, ErrScalarOverflow
	}
	sec[p.rings-1].Add(&stmp)
	if sec[p.rings-1].IsZero() {
		return nil, ErrSignFailed
	}

	// One sign bit for each blinded value sent; the byte slots double
	// as padding that the verifier requires to be zero.
	signs := proof[plen : plen+(p.rings+6)>>3]
	plen += len(signs)

	pubs := make([]secp256k1.JacobianPoint, p.npub)
	var tmp33 [33]byte
	npub := 0
	for i := 0; i < p.rings; i++ {
		ctx.pedersenEcmult(&pubs[npub], &sec[i], (uint64(p.secidx[i])*p.scale)<<(uint(i)*2))
		if isInfinity(&pubs[npub]) {
			return nil, ErrSignFailed
		}
		if i < p.rings-1 {
			serializePointInto(&pubs[npub], &tmp33)
			sha256m.Write(tmp33[:])
			if tmp33[0] == 3 {
				signs[i>>3] |= 1 << (uint(i) & 7)
			}
			copy(proof[plen:], tmp33[1:33])
			plen += 32
		}
		npub += p.rsizes[i]
	}
	ctx.basis.pubExpand(pubs, p.exp, rsizes)

	// npub now holds the true slot count; the parameter computation
	// over-reserves for the exact-value shape.
	var m [32]byte
	sha256m.Sum(m[:0])
	e0, err := borromean.Sign(s[:npub], pubs[:npub], k[:p.rings], sec[:p.rings], rsizes, secidx, m[:])
	if err != nil {
		return nil, ErrSignFailed
	}
	copy(proof[plen:], e0[:])
	plen += 32
	for i := 0; i < npub; i++ {
		s[i].PutBytesUnchecked(proof[plen:])
		plen += 32
	}
	log.Tracef("Signed %d-ring range proof, %d bytes", p.rings, plen)
	return proof[:plen], nil
}
