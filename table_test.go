// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
)

// testCtx is shared by the package tests; a built context is
// read-only so sharing is safe.
var testCtx = NewContext()

// scalarFromUint64 loads a small value into a scalar.
func scalarFromUint64(v uint64) *secp256k1.ModNScalar {
	var b [32]byte
	binary.BigEndian.PutUint64(b[24:], v)
	s := new(secp256k1.ModNScalar)
	s.SetBytes(&b)
	return s
}

// naiveAuxMult computes v*H the slow, obviously correct way.
func naiveAuxMult(h *secp256k1.JacobianPoint, v uint64) secp256k1.JacobianPoint {
	var r secp256k1.JacobianPoint
	if v == 0 {
		return r
	}
	secp256k1.ScalarMultNonConst(scalarFromUint64(v), h, &r)
	return r
}

func TestGeneratorConstants(t *testing.T) {
	g2 := generatorG2()
	require.Equal(t, "02"+generatorG2Hex, hex.EncodeToString(serializePoint(&g2)))

	g3 := generatorG3()
	require.Equal(t, "02"+generatorG3Hex, hex.EncodeToString(serializePoint(&g3)))
}

func TestSmallMultMatchesScalarMult(t *testing.T) {
	g2 := generatorG2()
	g3 := generatorG3()
	values := []uint64{
		1, 2, 3, 15, 16, 17, 255, 256, 65535, 65537,
		1 << 31, 1 << 32, 1<<63 - 1, 1 << 63, 1<<64 - 1,
		0xdeadbeefcafebabe,
	}
	for _, v := range values {
		var got secp256k1.JacobianPoint
		testCtx.pedersenTable.smallMult(&got, v)
		want := naiveAuxMult(&g2, v)
		require.Equal(t, serializePoint(&want), serializePoint(&got),
			"pedersen table disagrees at %d", v)

		testCtx.switchTable.smallMult(&got, v)
		want = naiveAuxMult(&g3, v)
		require.Equal(t, serializePoint(&want), serializePoint(&got),
			"switch table disagrees at %d", v)
	}
}

func TestSmallMultZero(t *testing.T) {
	var r secp256k1.JacobianPoint
	testCtx.pedersenTable.smallMult(&r, 0)
	require.True(t, isInfinity(&r), "0*G2 must telescope to infinity")
}

func TestBasisStrata(t *testing.T) {
	g2 := generatorG2()
	var ge secp256k1.JacobianPoint
	for e := 0; e < 19; e++ {
		nrings := (basisOffsets[e+1] - basisOffsets[e]) / 3
		scale := uint64(1)
		for i := 0; i < e; i++ {
			scale *= 10
		}
		for i := 0; i < nrings; i++ {
			for j := 1; j <= 3; j++ {
				// Skip combinations that do not fit in 64 bits; the
				// basis holds them but the checker cannot express
				// them as a uint64 multiple.
				shifted := uint64(j) << (uint(i) * 2)
				if shifted>>(uint(i)*2) != uint64(j) || shifted > (1<<64-1)/scale {
					continue
				}
				testCtx.basis[basisOffsets[e]+i*3+j-1].load(&ge)
				want := naiveAuxMult(&g2, shifted*scale)
				negatePoint(&want)
				require.Equal(t, serializePoint(&want), serializePoint(&ge),
					"basis mismatch at exp=%d ring=%d digit=%d", e, i, j)
			}
		}
	}
}

func TestTableRowsTelescope(t *testing.T) {
	// Summing column 0 of every row (the all-zero digit pattern) is
	// exactly smallMult(0); anything else would mean the nums blinding
	// terms fail to cancel.
	var acc, p secp256k1.JacobianPoint
	for j := 0; j < 16; j++ {
		testCtx.pedersenTable[j][0].load(&p)
		addPoint(&acc, &p, &acc)
	}
	require.True(t, isInfinity(&acc))
}
