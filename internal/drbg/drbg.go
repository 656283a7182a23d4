// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package drbg implements the RFC6979 HMAC-SHA256 deterministic byte
// stream used to derive the per-ring blinding scalars, the forged
// signature scalars, and the rewind prepad of a range proof.
//
// The generator matches RFC6979 section 3.2 up to and including step g:
// the key is mixed in with the 0x00 and 0x01 domain separator rounds,
// and every Generate call after the first is preceded by the retry
// round K = HMAC(K, V || 0x00), V = HMAC(K, V). Callers that need the
// "try again" behavior of RFC6979 simply call Generate again.
package drbg

import (
	"crypto/hmac"
	"crypto/sha256"
)

// HMACSHA256 is a deterministic byte stream seeded with arbitrary
// bytes. It is not safe for concurrent use.
type HMACSHA256 struct {
	v     [32]byte
	k     [32]byte
	retry bool
}

// New returns a generator seeded with key.
func New(key []byte) *HMACSHA256 {
	g := &HMACSHA256{}
	for i := range g.v {
		g.v[i] = 0x01
	}
	// g.k is already all zero.

	mac := hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	mac.Write([]byte{0x00})
	mac.Write(key)
	mac.Sum(g.k[:0])

	mac = hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	mac.Sum(g.v[:0])

	mac = hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	mac.Write([]byte{0x01})
	mac.Write(key)
	mac.Sum(g.k[:0])

	mac = hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	mac.Sum(g.v[:0])

	return g
}

// Generate fills out with the next bytes of the stream.
func (g *HMACSHA256) Generate(out []byte) {
	if g.retry {
		mac := hmac.New(sha256.New, g.k[:])
		mac.Write(g.v[:])
		mac.Write([]byte{0x00})
		mac.Sum(g.k[:0])

		mac = hmac.New(sha256.New, g.k[:])
		mac.Write(g.v[:])
		mac.Sum(g.v[:0])
	}
	for len(out) > 0 {
		mac := hmac.New(sha256.New, g.k[:])
		mac.Write(g.v[:])
		mac.Sum(g.v[:0])
		n := copy(out, g.v[:])
		out = out[n:]
	}
	g.retry = true
}

// Zeroize overwrites the generator state. The generator must not be
// used afterwards.
func (g *HMACSHA256) Zeroize() {
	for i := range g.v {
		g.v[i] = 0
		g.k[i] = 0
	}
	g.retry = false
}
