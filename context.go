// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"time"
)

// Context owns the precomputed tables shared by every operation: the
// G2 Pedersen table, the G3 switch table, and the range-proof basis.
// A built context is immutable and may be shared across goroutines
// for commit, sign, verify, and rewind. Clear and Clone must not run
// concurrently with any other use of the same context.
type Context struct {
	pedersenTable *genTable
	switchTable   *genTable
	basis         *rangeBasis
}

// NewContext builds the tables and returns a ready context. Building
// performs a few thousand group operations; callers are expected to
// build once per process and share.
func NewContext() *Context {
	start := time.Now()
	g2 := generatorG2()
	g3 := generatorG3()
	ctx := &Context{
		pedersenTable: buildGenTable(&g2),
		switchTable:   buildGenTable(&g3),
		basis:         buildRangeBasis(),
	}
	log.Debugf("Context tables built in %v", time.Since(start))
	return ctx
}

// isBuilt reports whether the context still owns its tables.
func (ctx *Context) isBuilt() bool {
	return ctx != nil && ctx.pedersenTable != nil &&
		ctx.switchTable != nil && ctx.basis != nil
}

// Clone returns an independent deep copy of a built context. The two
// contexts can then be cleared independently.
func (ctx *Context) Clone() *Context {
	if !ctx.isBuilt() {
		return &Context{}
	}
	return &Context{
		pedersenTable: ctx.pedersenTable.clone(),
		switchTable:   ctx.switchTable.clone(),
		basis:         ctx.basis.clone(),
	}
}

// Clear overwrites and releases the tables, returning the context to
// its unbuilt state. Every subsequent operation on it fails with
// ErrContextNotBuilt.
func (ctx *Context) Clear() {
	if ctx == nil {
		return
	}
	if ctx.pedersenTable != nil {
		ctx.pedersenTable.clear()
		ctx.pedersenTable = nil
	}
	if ctx.switchTable != nil {
		ctx.switchTable.clear()
		ctx.switchTable = nil
	}
	if ctx.basis != nil {
		ctx.basis.clear()
		ctx.basis = nil
	}
	log.Tracef("Context cleared")
}
