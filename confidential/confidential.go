// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package confidential wires the commitment and range-proof engine
// into the output shape a confidential transaction actually carries:
// a 33-byte Pedersen commitment plus a range proof, with balance
// verification across sets of outputs and auditor rewinding through a
// shared nonce.
package confidential

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/blake2b"

	secp256k1zkp "github.com/toole-brendan/secp256k1zkp"
)

const (
	// CommitmentSize is the size of a Pedersen commitment in bytes
	// (33 bytes, compressed point).
	CommitmentSize = secp256k1zkp.CommitmentSize

	// BlindingFactorSize is the size of a blinding factor in bytes.
	BlindingFactorSize = secp256k1zkp.BlindSize
)

var (
	// ErrInvalidCommitment is returned when a commitment is malformed.
	ErrInvalidCommitment = errors.New("invalid commitment")

	// ErrBalanceMismatch is returned when a transaction's commitments
	// do not balance to the declared excess.
	ErrBalanceMismatch = errors.New("commitments do not balance")

	// curveOrder is the secp256k1 group order.
	curveOrder = btcec.S256().N
)

// BlindingFactor is a secret scalar hiding the value of a commitment.
type BlindingFactor [BlindingFactorSize]byte

// GenerateBlindingFactor creates a cryptographically secure random
// blinding factor below the group order.
func GenerateBlindingFactor() (*BlindingFactor, error) {
	var bf BlindingFactor
	if _, err := rand.Read(bf[:]); err != nil {
		return nil, fmt.Errorf("failed to generate blinding factor: %w", err)
	}
	blindInt := new(big.Int).SetBytes(bf[:])
	if blindInt.Cmp(curveOrder) >= 0 {
		blindInt.Mod(blindInt, curveOrder)
		blindInt.FillBytes(bf[:])
	}
	return &bf, nil
}

// Bytes returns the blinding factor as a fresh slice.
func (bf *BlindingFactor) Bytes() []byte {
	out := make([]byte, BlindingFactorSize)
	copy(out, bf[:])
	return out
}

// Zero overwrites the blinding factor.
func (bf *BlindingFactor) Zero() {
	*bf = BlindingFactor{}
}

// Output is one confidential transaction output: a commitment to its
// value and a proof that the value is in range.
type Output struct {
	Commitment []byte
	Proof      []byte
}

// NewOutput commits to value with the given blinding factor and
// attaches a range proof seeded by nonce. message, which may be nil,
// rides along inside the proof for the holder of the nonce.
func NewOutput(ctx *secp256k1zkp.Context, value uint64, blind *BlindingFactor,
	nonce []byte, message []byte) (*Output, error) {

	commit, err := ctx.PedersenCommit(blind[:], value)
	if err != nil {
		return nil, fmt.Errorf("failed to create commitment: %w", err)
	}
	proof, err := ctx.RangeProofSign(0, commit, blind[:], nonce, 0, 0, value, message)
	if err != nil {
		return nil, fmt.Errorf("failed to create range proof: %w", err)
	}
	return &Output{Commitment: commit, Proof: proof}, nil
}

// Verify checks the output's range proof and returns the proven
// value range.
func (o *Output) Verify(ctx *secp256k1zkp.Context) (uint64, uint64, error) {
	if len(o.Commitment) != CommitmentSize {
		return 0, 0, ErrInvalidCommitment
	}
	return ctx.RangeProofVerify(o.Commitment, o.Proof)
}

// Rewind recovers the output's value, blinding factor, and embedded
// message using the proving nonce.
func (o *Output) Rewind(ctx *secp256k1zkp.Context, nonce []byte, msgCap int) (*secp256k1zkp.RewindResult, error) {
	if len(o.Commitment) != CommitmentSize {
		return nil, ErrInvalidCommitment
	}
	return ctx.RangeProofRewind(nonce, o.Commitment, o.Proof, msgCap)
}

// Hash returns the double-SHA256 hash committing to the whole output.
func (o *Output) Hash() chainhash.Hash {
	buf := make([]byte, 0, len(o.Commitment)+len(o.Proof))
	buf = append(buf, o.Commitment...)
	buf = append(buf, o.Proof...)
	return chainhash.DoubleHashH(buf)
}

// VerifyBalance checks that the input commitments minus the output
// commitments equal the public excess: the confidential analogue of
// "inputs = outputs + fee".
func VerifyBalance(ctx *secp256k1zkp.Context, inputs, outputs []*Output, excess int64) error {
	pos := make([][]byte, 0, len(inputs))
	for _, in := range inputs {
		pos = append(pos, in.Commitment)
	}
	neg := make([][]byte, 0, len(outputs))
	for _, out := range outputs {
		neg = append(neg, out.Commitment)
	}
	if !ctx.VerifyTally(pos, neg, excess) {
		return ErrBalanceMismatch
	}
	return nil
}

// SharedNonce derives a rewind nonce from an ECDH shared secret so a
// sender and an auditor holding the counterpart key can both rewind
// an output's proof. The compressed shared point is run through
// BLAKE2b-256.
func SharedNonce(priv *btcec.PrivateKey, pub *btcec.PublicKey) [32]byte {
	var point, result btcec.JacobianPoint
	pub.AsJacobian(&point)
	btcec.ScalarMultNonConst(&priv.Key, &point, &result)
	result.ToAffine()
	shared := btcec.NewPublicKey(&result.X, &result.Y)
	return blake2b.Sum256(shared.SerializeCompressed())
}
