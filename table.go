// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"crypto/subtle"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// geStorage is an affine point in storage form: the normalized
// big-endian x followed by the normalized big-endian y. The flat byte
// layout is what makes the constant-time select below possible.
type geStorage [64]byte

// store converts an affine point (Z must be 1, coordinates
// normalized) into storage form.
func (s *geStorage) store(p *secp256k1.JacobianPoint) {
	p.X.PutBytesUnchecked(s[0:32])
	p.Y.PutBytesUnchecked(s[32:64])
}

// load converts storage form back into a Jacobian point with Z = 1.
func (s *geStorage) load(p *secp256k1.JacobianPoint) {
	p.X.SetByteSlice(s[0:32])
	p.Y.SetByteSlice(s[32:64])
	p.Z.SetInt(1)
}

// cmov copies src into s iff yes is 1, in constant time.
func (s *geStorage) cmov(src *geStorage, yes int) {
	subtle.ConstantTimeCopy(yes, s[:], src[:])
}

// genTable is the 16x16 precomputed multiplication table for one
// auxiliary generator H: table[j][i] = numsbase_j + i*16^j*H, where
// the numsbase_j blinding terms sum to zero across all rows.
type genTable [16][16]geStorage

// toAffineAllVar converts points to affine in place with a single
// field inversion shared through the usual product ladder. All points
// must be finite. Variable time; used only during table construction
// on public data.
func toAffineAllVar(points []secp256k1.JacobianPoint) {
	n := len(points)
	if n == 0 {
		return
	}
	prefix := make([]secp256k1.FieldVal, n)
	var acc secp256k1.FieldVal
	acc.SetInt(1)
	for i := range points {
		points[i].X.Normalize()
		points[i].Y.Normalize()
		points[i].Z.Normalize()
		prefix[i].Set(&acc)
		acc.Mul(&points[i].Z)
	}
	var inv secp256k1.FieldVal
	inv.Set(&acc)
	inv.Inverse()
	for i := n - 1; i >= 0; i-- {
		var zinv, zinv2, zinv3 secp256k1.FieldVal
		zinv.Mul2(&inv, &prefix[i])
		inv.Mul(&points[i].Z)
		zinv2.SquareVal(&zinv)
		zinv3.Mul2(&zinv2, &zinv)
		points[i].X.Mul(&zinv2)
		points[i].X.Normalize()
		points[i].Y.Mul(&zinv3)
		points[i].Y.Normalize()
		points[i].Z.SetInt(1)
	}
}

// buildGenTable precomputes the 256-entry table for generator gen.
// Row j covers the j-th base-16 digit of a 64-bit scalar; the rows'
// nums blinding terms telescope to zero so a full 16-row accumulation
// leaves only the value contribution.
func buildGenTable(gen *secp256k1.JacobianPoint) *genTable {
	numsGej := numsPoint()

	precj := make([]secp256k1.JacobianPoint, 256)
	var gbase, numsbase secp256k1.JacobianPoint
	// gbase walks 16^j*H, numsbase walks 2^j*nums.
	gbase.Set(gen)
	numsbase.Set(&numsGej)
	for j := 0; j < 16; j++ {
		// Row j: numsbase, numsbase + gbase, ..., numsbase + 15*gbase.
		precj[j*16].Set(&numsbase)
		for i := 1; i < 16; i++ {
			addPoint(&precj[j*16+i-1], &gbase, &precj[j*16+i])
		}
		for i := 0; i < 4; i++ {
			doublePoint(&gbase, &gbase)
		}
		doublePoint(&numsbase, &numsbase)
		if j == 14 {
			// The final row's blinding is (1 - 2^15)*nums so the row
			// sum cancels exactly.
			negatePoint(&numsbase)
			addPoint(&numsbase, &numsGej, &numsbase)
		}
	}
	toAffineAllVar(precj)

	t := new(genTable)
	for j := 0; j < 16; j++ {
		for i := 0; i < 16; i++ {
			t[j][i].store(&precj[j*16+i])
		}
	}
	return t
}

// clone returns a deep copy of the table.
func (t *genTable) clone() *genTable {
	c := new(genTable)
	*c = *t
	return c
}

// clear overwrites the table contents.
func (t *genTable) clear() {
	*t = genTable{}
}

// smallMult sets r to gn*H for the table's generator H. The lookup
// walks all 16 columns of every row and combines them with a masked
// move so neither the memory addresses nor the branches depend on gn.
func (t *genTable) smallMult(r *secp256k1.JacobianPoint, gn uint64) {
	var adds geStorage
	var add secp256k1.JacobianPoint
	*r = secp256k1.JacobianPoint{}
	for j := 0; j < 16; j++ {
		bits := int32((gn >> (uint(j) * 4)) & 15)
		for i := int32(0); i < 16; i++ {
			adds.cmov(&t[j][i], subtle.ConstantTimeEq(i, bits))
		}
		adds.load(&add)
		addPoint(r, &add, r)
	}
	add = secp256k1.JacobianPoint{}
	adds = geStorage{}
}
