// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// The two auxiliary generators. G2 is the sha256 of the uncompressed
// DER encoding of G, lifted to the curve; G3 is the sha256 of the hex
// digest of that hash, lifted likewise. Both x-coordinates are fixed
// protocol constants; no discrete log relative to G is known for
// either point.
const (
	generatorG2Hex = "50929b74c1a04954b78b4b6035e97a5e078a5a0f28ec96d547bfee9ace803ac0"
	generatorG3Hex = "b860f56795fc03f3c21685383d1b5a2f2954f49b7e398b8d2a0193933621155f"
)

// numsSeed is interpreted directly as an x-coordinate. Nobody knows a
// scalar for the resulting point, which is what makes it a safe
// blinding term for the precomputed tables.
var numsSeed = []byte("The scalar for this x is unknown")

// liftX decodes a 32-byte x-coordinate into the curve point with the
// requested y parity. It panics when x is not on the curve, so it is
// reserved for the fixed protocol constants.
func liftX(x []byte, odd bool) secp256k1.JacobianPoint {
	var p secp256k1.JacobianPoint
	if overflow := p.X.SetByteSlice(x); overflow {
		panic("secp256k1zkp: generator x overflows field")
	}
	valid := secp256k1.DecompressY(&p.X, odd, &p.Y)
	if !valid {
		panic("secp256k1zkp: generator x not on curve")
	}
	p.Y.Normalize()
	p.Z.SetInt(1)
	return p
}

// mustDecodeHex is a build-time helper for the generator constants.
func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// generatorG2 returns the value generator as a fresh Jacobian point.
func generatorG2() secp256k1.JacobianPoint {
	return liftX(mustDecodeHex(generatorG2Hex), false)
}

// generatorG3 returns the switch generator as a fresh Jacobian point.
func generatorG3() secp256k1.JacobianPoint {
	return liftX(mustDecodeHex(generatorG3Hex), false)
}

// numsPoint returns the nothing-up-my-sleeve point, whitened with G2
// so the x-coordinates appearing in the tables are uniformly
// distributed. Both auxiliary tables use this same point.
func numsPoint() secp256k1.JacobianPoint {
	nums := liftX(numsSeed, false)
	g2 := generatorG2()
	var out secp256k1.JacobianPoint
	secp256k1.AddNonConst(&nums, &g2, &out)
	return out
}
