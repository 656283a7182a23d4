// Copyright (c) 2025 The secp256k1zkp developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"encoding/hex"
	"math"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// randBlind deterministically fills a valid blinding factor.
func randBlind(rng *mrand.Rand) []byte {
	b := make([]byte, BlindSize)
	rng.Read(b)
	// Clear the top byte so the scalar can never overflow the order;
	// plenty of entropy remains for tests.
	b[0] = 0
	return b
}

func TestPedersenCommitBasics(t *testing.T) {
	rng := mrand.New(mrand.NewSource(1))

	t.Run("UnitBlindZeroValue", func(t *testing.T) {
		// With blind = 1 and value = 0 the commitment is just the
		// curve generator.
		blind := make([]byte, BlindSize)
		blind[31] = 1
		commit, err := testCtx.PedersenCommit(blind, 0)
		require.NoError(t, err)
		require.Equal(t,
			"0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
			hex.EncodeToString(commit))
		assert.True(t, testCtx.VerifyTally([][]byte{commit}, [][]byte{commit}, 0))
	})

	t.Run("Deterministic", func(t *testing.T) {
		blind := randBlind(rng)
		c1, err := testCtx.PedersenCommit(blind, 12345)
		require.NoError(t, err)
		c2, err := testCtx.PedersenCommit(blind, 12345)
		require.NoError(t, err)
		require.Equal(t, c1, c2)
		c3, err := testCtx.PedersenCommit(blind, 12346)
		require.NoError(t, err)
		require.NotEqual(t, c1, c3)
	})

	t.Run("RejectsOverflowBlind", func(t *testing.T) {
		blind := make([]byte, BlindSize)
		for i := range blind {
			blind[i] = 0xff
		}
		_, err := testCtx.PedersenCommit(blind, 1)
		require.ErrorIs(t, err, ErrScalarOverflow)
	})

	t.Run("RejectsBadSizes", func(t *testing.T) {
		_, err := testCtx.PedersenCommit(make([]byte, 31), 1)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("BoundaryValues", func(t *testing.T) {
		for _, v := range []uint64{0, 1, math.MaxUint32, 1 << 32, 1<<63 - 1, 1 << 63, math.MaxUint64} {
			blind := randBlind(rng)
			commit, err := testCtx.PedersenCommit(blind, v)
			require.NoError(t, err)
			require.Len(t, commit, CommitmentSize)
		}
	})
}

func TestSwitchCommit(t *testing.T) {
	rng := mrand.New(mrand.NewSource(2))
	blind := randBlind(rng)
	s1, err := testCtx.SwitchCommit(blind)
	require.NoError(t, err)
	require.Len(t, s1, CommitmentSize)
	s2, err := testCtx.SwitchCommit(blind)
	require.NoError(t, err)
	require.Equal(t, s1, s2)

	// Small blinding factors must agree with the switch table.
	small := make([]byte, BlindSize)
	small[31] = 9
	s3, err := testCtx.SwitchCommit(small)
	require.NoError(t, err)
	s4, err := testCtx.SwitchSmallMult(9)
	require.NoError(t, err)
	require.Equal(t, s3, s4)
}

// TestVerifyTally pins down fixed tally cases: a shared blinding
// factor cancels, so pure value arithmetic decides the outcome.
func TestVerifyTally(t *testing.T) {
	rng := mrand.New(mrand.NewSource(3))
	blind := randBlind(rng)
	values := []uint64{math.MaxInt64, 0, 1}
	commits := make([][]byte, 3)
	var err error
	for i, v := range values {
		commits[i], err = testCtx.PedersenCommit(blind, v)
		require.NoError(t, err)
	}
	// commits[1] is value 0, commits[2] value 1, commits[0] MaxInt64.
	one := [][]byte{commits[1]}
	two := [][]byte{commits[2]}
	big := [][]byte{commits[0]}

	assert.True(t, testCtx.VerifyTally(one, two, -1))
	assert.True(t, testCtx.VerifyTally(two, one, 1))
	assert.True(t, testCtx.VerifyTally(big, big, 0))
	assert.True(t, testCtx.VerifyTally(big, one, math.MaxInt64))
	assert.True(t, testCtx.VerifyTally(one, one, 0))
	assert.True(t, testCtx.VerifyTally(one, big, -math.MaxInt64))
	assert.False(t, testCtx.VerifyTally(one, two, 0))
	assert.False(t, testCtx.VerifyTally(big, one, math.MaxInt64-1))
}

// TestTallyExactness: a random split of random values whose blinding
// factors are completed by BlindSum must tally exactly, and any
// excess perturbation must not.
func TestTallyExactness(t *testing.T) {
	rng := mrand.New(mrand.NewSource(4))
	for iter := 0; iter < 10; iter++ {
		inputs := int(rng.Int31n(8)) + 1
		outputs := int(rng.Int31n(8)) + 2
		total := inputs + outputs

		values := make([]uint64, total)
		var totalv int64
		for i := 0; i < inputs; i++ {
			room := int64(math.MaxInt64) - totalv
			if room < 1 {
				room = 1
			}
			values[i] = uint64(rng.Int63n(room))
			totalv += int64(values[i])
		}
		for i := 0; i < outputs-1; i++ {
			values[inputs+i] = uint64(rng.Int63n(totalv + 1))
			totalv -= int64(values[inputs+i])
		}
		values[total-1] = uint64(totalv) >> uint(rng.Int31n(2))
		totalv -= int64(values[total-1])

		blinds := make([][]byte, total)
		for i := 0; i < total-1; i++ {
			blinds[i] = randBlind(rng)
		}
		last, err := testCtx.BlindSum(blinds[:total-1], inputs)
		require.NoError(t, err)
		blinds[total-1] = last

		commits := make([][]byte, total)
		for i := 0; i < total; i++ {
			commits[i], err = testCtx.PedersenCommit(blinds[i], values[i])
			require.NoError(t, err)
		}
		require.True(t, testCtx.VerifyTally(commits[:inputs], commits[inputs:], totalv))
		require.False(t, testCtx.VerifyTally(commits[:inputs], commits[inputs:], totalv+1))
	}
}

// TestBlindSumZeroProperty checks with random shapes that appending
// the BlindSum completion to the negative side always cancels the
// whole set.
func TestBlindSumZeroProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		npositive := rapid.IntRange(0, n).Draw(t, "npositive")
		rng := mrand.New(mrand.NewSource(rapid.Int64().Draw(t, "seed")))

		blinds := make([][]byte, n)
		for i := range blinds {
			blinds[i] = randBlind(rng)
		}
		sum, err := testCtx.BlindSum(blinds, npositive)
		if err != nil {
			t.Fatalf("BlindSum: %v", err)
		}
		// sum = pos - neg, so listing it as an extra negative entry
		// must cancel everything.
		all := append(append([][]byte{}, blinds...), sum)
		zero, err := testCtx.BlindSum(all, npositive)
		if err != nil {
			t.Fatalf("BlindSum: %v", err)
		}
		for _, b := range zero {
			if b != 0 {
				t.Fatalf("expected zero sum, got %x", zero)
			}
		}
	})
}

// TestCommitSum: committing to the completed blinding factor with
// value zero balances a three-way commitment sum against its value
// excess.
func TestCommitSum(t *testing.T) {
	rng := mrand.New(mrand.NewSource(5))
	r1, r2, r3 := randBlind(rng), randBlind(rng), randBlind(rng)
	v1, v2, v3 := uint64(1000), uint64(500), uint64(300)

	out, err := testCtx.BlindSum([][]byte{r1, r2, r3}, 2)
	require.NoError(t, err)
	czero, err := testCtx.PedersenCommit(out, 0)
	require.NoError(t, err)

	c1, err := testCtx.PedersenCommit(r1, v1)
	require.NoError(t, err)
	c2, err := testCtx.PedersenCommit(r2, v2)
	require.NoError(t, err)
	c3, err := testCtx.PedersenCommit(r3, v3)
	require.NoError(t, err)

	sum, err := testCtx.CommitSum([][]byte{c1, c2}, [][]byte{c3})
	require.NoError(t, err)

	// c1 + c2 - c3 commits to v1+v2-v3 under the completed blinding,
	// so the tally against the zero-value commitment must balance.
	excess := int64(v1 + v2 - v3)
	require.True(t, testCtx.VerifyTally([][]byte{sum}, [][]byte{czero}, excess))
	require.False(t, testCtx.VerifyTally([][]byte{sum}, [][]byte{czero}, excess+1))
}

func TestBlindSumRejectsOverflow(t *testing.T) {
	bad := make([]byte, BlindSize)
	for i := range bad {
		bad[i] = 0xff
	}
	_, err := testCtx.BlindSum([][]byte{bad}, 1)
	require.ErrorIs(t, err, ErrScalarOverflow)
}

func TestCommitSumRejectsGarbage(t *testing.T) {
	garbage := make([]byte, CommitmentSize)
	_, err := testCtx.CommitSum([][]byte{garbage}, nil)
	require.ErrorIs(t, err, ErrInvalidCommitment)
}
