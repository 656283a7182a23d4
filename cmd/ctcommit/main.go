// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// ctcommit is a small operator tool around the secp256k1zkp library:
// it creates Pedersen commitments and range proofs from hex inputs
// and verifies, rewinds, or inspects existing proofs.
//
// Examples:
//
//	ctcommit --value=5 --blind=<64 hex> commit
//	ctcommit --value=5 --blind=<hex> --nonce=<hex> sign
//	ctcommit --commit=<66 hex> --proof=<hex> verify
//	ctcommit --commit=<hex> --proof=<hex> --nonce=<hex> rewind
//	ctcommit --proof=<hex> info
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/toole-brendan/secp256k1zkp"
)

type config struct {
	Value    uint64 `long:"value" description:"Value to commit to"`
	MinValue uint64 `long:"minvalue" description:"Public minimum value of the proven range"`
	Blind    string `long:"blind" description:"Blinding factor (64 hex characters)"`
	Nonce    string `long:"nonce" description:"Proof/rewind nonce (64 hex characters)"`
	Commit   string `long:"commit" description:"Commitment (66 hex characters)"`
	Proof    string `long:"proof" description:"Range proof (hex)"`
	Message  string `long:"message" description:"Message to embed in the proof (hex)"`
	Exp      int    `long:"exp" default:"0" description:"Decimal exponent, -1 for an exact-value proof"`
	MinBits  int    `long:"minbits" default:"0" description:"Minimum bits of range to prove"`
	MsgCap   int    `long:"msgcap" default:"256" description:"Maximum message bytes to recover on rewind"`
	Debug    bool   `long:"debug" description:"Enable debug logging"`
	LogFile  string `long:"logfile" description:"Write logs to this file (rotated)"`
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "ctcommit: "+format+"\n", args...)
	os.Exit(1)
}

func decodeHexOpt(name, val string, wantLen int) []byte {
	b, err := hex.DecodeString(val)
	if err != nil {
		fatalf("--%s: invalid hex: %v", name, err)
	}
	if wantLen > 0 && len(b) != wantLen {
		fatalf("--%s: need %d bytes, got %d", name, wantLen, len(b))
	}
	return b
}

func main() {
	cfg := &config{}
	parser := flags.NewParser(cfg, flags.Default)
	parser.Usage = "[OPTIONS] commit|sign|verify|rewind|info"
	rest, err := parser.Parse()
	if err != nil {
		os.Exit(1)
	}
	if len(rest) != 1 {
		fatalf("exactly one command required: commit, sign, verify, rewind or info")
	}
	cleanup := setupLogging(cfg)
	defer cleanup()

	cmd := rest[0]
	if cmd == "info" {
		info, err := secp256k1zkp.RangeProofInfo(decodeHexOpt("proof", cfg.Proof, 0))
		if err != nil {
			fatalf("info: %v", err)
		}
		fmt.Printf("exp=%d mantissa=%d min=%d max=%d\n",
			info.Exp, info.Mantissa, info.MinValue, info.MaxValue)
		return
	}

	ctx := secp256k1zkp.NewContext()
	defer ctx.Clear()

	switch cmd {
	case "commit":
		blind := decodeHexOpt("blind", cfg.Blind, 32)
		commit, err := ctx.PedersenCommit(blind, cfg.Value)
		if err != nil {
			fatalf("commit: %v", err)
		}
		fmt.Printf("%x\n", commit)

	case "sign":
		blind := decodeHexOpt("blind", cfg.Blind, 32)
		nonce := decodeHexOpt("nonce", cfg.Nonce, 32)
		var message []byte
		if cfg.Message != "" {
			message = decodeHexOpt("message", cfg.Message, 0)
		}
		commit := []byte(nil)
		if cfg.Commit != "" {
			commit = decodeHexOpt("commit", cfg.Commit, 33)
		} else {
			commit, err = ctx.PedersenCommit(blind, cfg.Value)
			if err != nil {
				fatalf("commit: %v", err)
			}
		}
		proof, err := ctx.RangeProofSign(cfg.MinValue, commit, blind, nonce,
			cfg.Exp, cfg.MinBits, cfg.Value, message)
		if err != nil {
			fatalf("sign: %v", err)
		}
		fmt.Printf("commit=%x\nproof=%x\n", commit, proof)

	case "verify":
		commit := decodeHexOpt("commit", cfg.Commit, 33)
		proof := decodeHexOpt("proof", cfg.Proof, 0)
		minv, maxv, err := ctx.RangeProofVerify(commit, proof)
		if err != nil {
			fatalf("verify: %v", err)
		}
		fmt.Printf("OK min=%d max=%d\n", minv, maxv)

	case "rewind":
		commit := decodeHexOpt("commit", cfg.Commit, 33)
		proof := decodeHexOpt("proof", cfg.Proof, 0)
		nonce := decodeHexOpt("nonce", cfg.Nonce, 32)
		res, err := ctx.RangeProofRewind(nonce, commit, proof, cfg.MsgCap)
		if err != nil {
			fatalf("rewind: %v", err)
		}
		fmt.Printf("value=%d min=%d max=%d blind=%x message=%x\n",
			res.Value, res.MinValue, res.MaxValue, res.Blind[:], res.Message)

	default:
		fatalf("unknown command %q", cmd)
	}
}
