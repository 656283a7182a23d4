// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/toole-brendan/secp256k1zkp/internal/borromean"
)

// ProofInfo is the publicly decodable description of a range proof.
type ProofInfo struct {
	Exp      int
	Mantissa int
	MinValue uint64
	MaxValue uint64
}

// proofHeader is the parsed prefix of a proof.
type proofHeader struct {
	offset   int // bytes consumed
	exp      int
	mantissa int
	scale    uint64
	minValue uint64
	maxValue uint64
}

// parseHeader decodes and validates the proof prefix: flags, optional
// mantissa byte, optional 8-byte minimum. Any structural defect is
// ErrProofMalformed.
func parseHeader(proof []byte) (*proofHeader, error) {
	if len(proof) < MinProofSize || proof[0]&128 != 0 {
		return nil, ErrProofMalformed
	}
	h := &proofHeader{exp: -1, scale: 1}
	hasNzRange := proof[0]&64 != 0
	hasMin := proof[0]&32 != 0
	if hasNzRange {
		h.exp = int(proof[0] & 31)
		if h.exp > 18 {
			return nil, ErrProofMalformed
		}
		h.offset++
		h.mantissa = int(proof[h.offset]) + 1
		if h.mantissa > 64 {
			return nil, ErrProofMalformed
		}
		h.maxValue = math.MaxUint64 >> (64 - uint(h.mantissa))
	}
	h.offset++
	for i := 0; i < h.exp; i++ {
		if h.maxValue > math.MaxUint64/10 {
			return nil, ErrProofMalformed
		}
		h.maxValue *= 10
		h.scale *= 10
	}
	if hasMin {
		if len(proof)-h.offset < 8 {
			return nil, ErrProofMalformed
		}
		h.minValue = binary.BigEndian.Uint64(proof[h.offset:])
		h.offset += 8
	}
	if h.maxValue > math.MaxUint64-h.minValue {
		return nil, ErrProofMalformed
	}
	h.maxValue += h.minValue
	return h, nil
}

// RangeProofInfo returns the range and encoding parameters a proof
// claims without verifying it.
func RangeProofInfo(proof []byte) (*ProofInfo, error) {
	h, err := parseHeader(proof)
	if err != nil {
		return nil, err
	}
	return &ProofInfo{
		Exp:      h.exp,
		Mantissa: h.mantissa,
		MinValue: h.minValue,
		MaxValue: h.maxValue,
	}, nil
}

// headerRings derives the ring layout from the mantissa alone, the
// way the verifier must (it does not know the value or the correct
// digit indices).
func headerRings(mantissa int) (rings int, rsizes [maxRings]int, npub int) {
	rings = 1
	rsizes[0] = 1
	npub = 1
	if mantissa != 0 {
		rings = mantissa >> 1
		for i := 0; i < rings; i++ {
			rsizes[i] = 4
		}
		npub = (mantissa >> 1) << 2
		if mantissa&1 == 1 {
			rsizes[rings] = 2
			npub += 2
			rings++
		}
	}
	return rings, rsizes, npub
}

// RangeProofVerify checks proof against commit and returns the proven
// inclusive range [minValue, maxValue].
func (ctx *Context) RangeProofVerify(commit, proof []byte) (uint64, uint64, error) {
	res, err := ctx.verifyProof(commit, proof, nil, 0)
	if err != nil {
		return 0, 0, err
	}
	return res.MinValue, res.MaxValue, nil
}

// verifyProof is the shared §4.7 pipeline. When nonce is non-nil the
// Borromean challenges are retained and the rewind path runs after a
// successful verification, filling in Value, Blind, and up to msgCap
// bytes of Message.
func (ctx *Context) verifyProof(commit, proof, nonce []byte, msgCap int) (*RewindResult, error) {
	if !ctx.isBuilt() {
		return nil, ErrContextNotBuilt
	}
	if len(commit) != CommitmentSize || len(proof) > MaxProofSize {
		return nil, ErrInvalidArgument
	}
	h, err := parseHeader(proof)
	if err != nil {
		return nil, err
	}
	offsetPostHeader := h.offset
	rings, rsizes, npub := headerRings(h.mantissa)

	offset := h.offset
	if len(proof)-offset != 32*(npub+rings-1)+32+(rings+6)>>3 {
		return nil, ErrProofMalformed
	}

	sha256m := sha256.New()
	sha256m.Write(commit)
	sha256m.Write(proof[:offset])

	var signs [31]byte
	for i := 0; i < rings-1; i++ {
		signs[i] = (proof[offset+(i>>3)] >> (uint(i) & 7)) & 1
	}
	offset += (rings + 6) >> 3
	if (rings-1)&7 != 0 {
		// The number of coded blinded points is not a multiple of
		// eight; unused sign bits must be zero to reject mutation.
		if proof[offset-1]>>(uint(rings-1)&7) != 0 {
			return nil, ErrProofMalformed
		}
	}

	pubs := make([]secp256k1.JacobianPoint, npub)
	var accj, c secp256k1.JacobianPoint
	if h.minValue != 0 {
		ctx.pedersenTable.smallMult(&accj, h.minValue)
	}
	var m33 [33]byte
	np := 0
	for i := 0; i < rings-1; i++ {
		m33[0] = 2 + signs[i]
		copy(m33[1:], proof[offset:offset+32])
		if err := parsePoint(m33[:], &c); err != nil {
			return nil, err
		}
		sha256m.Write(m33[:])
		pubs[np].Set(&c)
		addPoint(&accj, &c, &accj)
		offset += 32
		np += rsizes[i]
	}
	negatePoint(&accj)
	if err := parsePoint(commit, &c); err != nil {
		return nil, err
	}
	addPoint(&accj, &c, &pubs[np])
	if isInfinity(&pubs[np]) {
		return nil, ErrProofRejected
	}
	ctx.basis.pubExpand(pubs, h.exp, rsizes[:rings])
	np += rsizes[rings-1]

	e0 := proof[offset : offset+32]
	offset += 32
	s := make([]secp256k1.ModNScalar, npub)
	for i := 0; i < npub; i++ {
		var b [32]byte
		copy(b[:], proof[offset:offset+32])
		if s[i].SetBytes(&b) != 0 {
			return nil, ErrProofMalformed
		}
		offset += 32
	}
	if offset != len(proof) {
		// Extra data found, reject.
		return nil, ErrProofMalformed
	}

	var m [32]byte
	sha256m.Sum(m[:0])
	var evalues []secp256k1.ModNScalar
	if nonce != nil {
		evalues = make([]secp256k1.ModNScalar, npub)
	}
	if !borromean.Verify(evalues, e0, s, pubs, rsizes[:rings], m[:]) {
		return nil, ErrProofRejected
	}

	res := &RewindResult{MinValue: h.minValue, MaxValue: h.maxValue}
	if nonce == nil {
		return res, nil
	}

	// Given the nonce, rewind the witness back to its initial state.
	defer zeroScalars(s)
	defer zeroScalars(evalues)
	vv, blind, msg, err := ctx.rewindInner(evalues, s, rsizes[:rings],
		nonce, commit, proof[:offsetPostHeader], msgCap)
	if err != nil {
		return nil, err
	}
	defer blind.Zero()

	// The mantissa bound was historically unchecked here; enforce it
	// so a forged marker cannot claim a value outside the proven
	// range.
	if h.mantissa > 0 && h.mantissa < 64 && vv>>uint(h.mantissa) != 0 {
		return nil, ErrRewindFailed
	}
	vv = vv*h.scale + h.minValue

	// Rewind apparently successful; only accept it if the commitment
	// can be reconstructed bit for bit.
	var rec secp256k1.JacobianPoint
	defer func() { rec = secp256k1.JacobianPoint{} }()
	ctx.pedersenEcmult(&rec, &blind, vv)
	if isInfinity(&rec) {
		return nil, ErrRewindFailed
	}
	var recSer [33]byte
	serializePointInto(&rec, &recSer)
	for i := 0; i < CommitmentSize; i++ {
		if recSer[i] != commit[i] {
			return nil, ErrRewindFailed
		}
	}

	res.Value = vv
	blind.PutBytes(&res.Blind)
	res.Message = msg
	return res, nil
}
