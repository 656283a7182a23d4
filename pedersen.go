// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// CommitmentSize is the size of a serialized commitment: a
	// compressed secp256k1 point.
	CommitmentSize = 33

	// BlindSize is the size of a blinding factor.
	BlindSize = 32
)

// pedersenEcmult computes rj = sec*G + value*G2.
func (ctx *Context) pedersenEcmult(rj *secp256k1.JacobianPoint, sec *secp256k1.ModNScalar, value uint64) {
	var vj secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(sec, rj)
	ctx.pedersenTable.smallMult(&vj, value)
	addPoint(rj, &vj, rj)
	vj = secp256k1.JacobianPoint{}
}

// PedersenCommit computes the 33-byte commitment blind*G + value*G2.
// blind must be 32 bytes encoding a scalar below the group order.
func (ctx *Context) PedersenCommit(blind []byte, value uint64) ([]byte, error) {
	if !ctx.isBuilt() {
		return nil, ErrContextNotBuilt
	}
	if len(blind) != BlindSize {
		return nil, ErrInvalidArgument
	}
	var sec secp256k1.ModNScalar
	defer sec.Zero()
	if overflow := sec.SetByteSlice(blind); overflow {
		return nil, ErrScalarOverflow
	}

	var rj secp256k1.JacobianPoint
	defer func() { rj = secp256k1.JacobianPoint{} }()
	ctx.pedersenEcmult(&rj, &sec, value)
	if isInfinity(&rj) {
		return nil, ErrPointAtInfinity
	}
	return serializePoint(&rj), nil
}

// SwitchCommit computes the 33-byte switch commitment blind*G3.
func (ctx *Context) SwitchCommit(blind []byte) ([]byte, error) {
	if !ctx.isBuilt() {
		return nil, ErrContextNotBuilt
	}
	if len(blind) != BlindSize {
		return nil, ErrInvalidArgument
	}
	var sec secp256k1.ModNScalar
	defer sec.Zero()
	if overflow := sec.SetByteSlice(blind); overflow {
		return nil, ErrScalarOverflow
	}

	g3 := generatorG3()
	var rj secp256k1.JacobianPoint
	defer func() { rj = secp256k1.JacobianPoint{} }()
	secp256k1.ScalarMultNonConst(&sec, &g3, &rj)
	if isInfinity(&rj) {
		return nil, ErrPointAtInfinity
	}
	return serializePoint(&rj), nil
}

// SwitchSmallMult exposes the switch generator's table multiplier:
// it returns the compressed point gn*G3. It exists for tally-style
// small multiples and for table consistency checks.
func (ctx *Context) SwitchSmallMult(gn uint64) ([]byte, error) {
	if !ctx.isBuilt() {
		return nil, ErrContextNotBuilt
	}
	var rj secp256k1.JacobianPoint
	ctx.switchTable.smallMult(&rj, gn)
	if isInfinity(&rj) {
		return nil, ErrPointAtInfinity
	}
	return serializePoint(&rj), nil
}

// BlindSum returns blinds[0]+...+blinds[npositive-1] minus
// blinds[npositive]+...+blinds[n-1], reduced mod the group order.
// The usual use is computing the final blinding factor that makes a
// set of commitments sum to a public excess.
func (ctx *Context) BlindSum(blinds [][]byte, npositive int) ([]byte, error) {
	if !ctx.isBuilt() {
		return nil, ErrContextNotBuilt
	}
	if npositive < 0 || npositive > len(blinds) {
		return nil, ErrInvalidArgument
	}
	var acc, x secp256k1.ModNScalar
	defer acc.Zero()
	defer x.Zero()
	for i, b := range blinds {
		if len(b) != BlindSize {
			return nil, ErrInvalidArgument
		}
		if overflow := x.SetByteSlice(b); overflow {
			return nil, ErrScalarOverflow
		}
		if i >= npositive {
			x.Negate()
		}
		acc.Add(&x)
	}
	out := make([]byte, BlindSize)
	acc.PutBytesUnchecked(out)
	return out, nil
}

// CommitSum adds the pos commitments, subtracts the neg commitments,
// and returns the serialized result. Fails if any input does not
// parse or the result is the point at infinity.
func (ctx *Context) CommitSum(pos, neg [][]byte) ([]byte, error) {
	if !ctx.isBuilt() {
		return nil, ErrContextNotBuilt
	}
	var accj, add secp256k1.JacobianPoint
	for _, c := range neg {
		if err := parsePoint(c, &add); err != nil {
			return nil, err
		}
		addPoint(&accj, &add, &accj)
	}
	negatePoint(&accj)
	for _, c := range pos {
		if err := parsePoint(c, &add); err != nil {
			return nil, err
		}
		addPoint(&accj, &add, &accj)
	}
	if isInfinity(&accj) {
		return nil, ErrPointAtInfinity
	}
	return serializePoint(&accj), nil
}

// VerifyTally reports whether sum(pos) - sum(neg) - excess*G2 is the
// point at infinity, i.e. whether the commitment sets balance to the
// public excess. Inputs are public; malformed commitments simply
// fail the check.
func (ctx *Context) VerifyTally(pos, neg [][]byte, excess int64) bool {
	if !ctx.isBuilt() {
		return false
	}
	var accj, add secp256k1.JacobianPoint
	if excess != 0 {
		// Sign-preserving absolute value: multiply the magnitude,
		// negate the point when the excess was negative.
		neg64 := excess < 0
		ex := uint64(excess)
		if neg64 {
			ex = uint64(-excess)
		}
		ctx.pedersenTable.smallMult(&accj, ex)
		if neg64 {
			negatePoint(&accj)
		}
	}
	for _, c := range neg {
		if err := parsePoint(c, &add); err != nil {
			return false
		}
		addPoint(&accj, &add, &accj)
	}
	negatePoint(&accj)
	for _, c := range pos {
		if err := parsePoint(c, &add); err != nil {
			return false
		}
		addPoint(&accj, &add, &accj)
	}
	return isInfinity(&accj)
}
