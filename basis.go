// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// basisOffsets partitions the basis into 19 strata, one per decimal
// exponent. Stratum e begins at basisOffsets[e] and provides, for each
// ring i, the three non-zero digit points j*4^i*10^e*(-G2), j in 1..3.
var basisOffsets = [20]int{
	0, 96, 189, 276, 360, 438, 510, 579, 642,
	699, 753, 801, 843, 882, 915, 942, 966, 984,
	996, 1005,
}

const basisSize = 1005

// rangeBasis is the fixed public basis used to expand each ring's
// blinded digit commitment into the full candidate set.
type rangeBasis [basisSize]geStorage

// buildRangeBasis fills the basis. Within a stratum the generator
// walks in (g, 2g, 3g) triples, doubling into the next triple's base;
// between strata the base is multiplied by ten.
func buildRangeBasis() *rangeBasis {
	precj := make([]secp256k1.JacobianPoint, basisSize)

	// The digit points subtract value from the last ring's commitment,
	// so the whole basis is built over -G2.
	one := generatorG2()
	negatePoint(&one)

	var gj secp256k1.JacobianPoint
	pos := 0
	for i := 0; i < 19; i++ {
		pmax := basisOffsets[i+1]
		gj.Set(&one)
		for pos < pmax {
			precj[pos].Set(&gj)
			pos++
			doublePoint(&gj, &precj[pos])
			pos++
			addPoint(&precj[pos-1], &gj, &precj[pos])
			pos++
			if pos < pmax-1 {
				doublePoint(&precj[pos-2], &gj)
			}
		}
		if i < 18 {
			// one *= 10 for the next stratum.
			doublePoint(&one, &gj)
			one.Set(&gj)
			doublePoint(&gj, &gj)
			doublePoint(&gj, &gj)
			addPoint(&one, &gj, &one)
		}
	}
	toAffineAllVar(precj)

	b := new(rangeBasis)
	for i := 0; i < basisSize; i++ {
		b[i].store(&precj[i])
	}
	return b
}

// clone returns a deep copy of the basis.
func (b *rangeBasis) clone() *rangeBasis {
	c := new(rangeBasis)
	*c = *b
	return c
}

// clear overwrites the basis contents.
func (b *rangeBasis) clear() {
	*b = rangeBasis{}
}

// pubExpand fills in the non-printed candidate public keys: for each
// ring i, pubs[npub+j] = pubs[npub] + basis[stratum + i*3 + j - 1] for
// every non-zero digit j. The stratum bakes in both the negation of
// G2 and the 10^exp scale, so a plain addition suffices.
func (b *rangeBasis) pubExpand(pubs []secp256k1.JacobianPoint, exp int, rsizes []int) {
	if exp < 0 {
		exp = 0
	}
	basis := b[basisOffsets[exp]:]
	var ge secp256k1.JacobianPoint
	npub := 0
	for i := range rsizes {
		for j := 1; j < rsizes[i]; j++ {
			basis[i*3+j-1].load(&ge)
			addPoint(&pubs[npub], &ge, &pubs[npub+j])
		}
		npub += rsizes[i]
	}
}
