// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	"github.com/toole-brendan/secp256k1zkp"
)

// logWriter duplicates log output to stderr and, when configured, a
// rotating log file.
type logWriter struct {
	rotator *rotator.Rotator
}

func (w *logWriter) Write(p []byte) (int, error) {
	os.Stderr.Write(p)
	if w.rotator != nil {
		w.rotator.Write(p)
	}
	return len(p), nil
}

// setupLogging wires the library logger to stderr and an optional
// rotated log file. The returned function flushes and closes the
// rotator.
func setupLogging(cfg *config) func() {
	if !cfg.Debug && cfg.LogFile == "" {
		return func() {}
	}
	w := &logWriter{}
	if cfg.LogFile != "" {
		r, err := rotator.New(cfg.LogFile, 10*1024, false, 3)
		if err != nil {
			fatalf("failed to create log rotator: %v", err)
		}
		w.rotator = r
	}
	backend := btclog.NewBackend(w)
	logger := backend.Logger("CTCM")
	level := btclog.LevelInfo
	if cfg.Debug {
		level = btclog.LevelTrace
	}
	logger.SetLevel(level)
	secp256k1zkp.UseLogger(logger)
	return func() {
		if w.rotator != nil {
			w.rotator.Close()
		}
	}
}
