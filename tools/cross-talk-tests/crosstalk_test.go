package main

import (
	"regexp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPattern(t *testing.T) {
	re := regexp.MustCompile(runPattern([]string{"TestScene", "TestStore"}))
	assert.True(t, re.MatchString("TestScene"))
	assert.True(t, re.MatchString("TestStore"))
	assert.False(t, re.MatchString("TestSceneRegistry"))
	assert.False(t, re.MatchString("TestTracker"))
}

func TestReduce(t *testing.T) {
	victim := []string{"TestTilemapRegistry"}
	suite := []string{"TestA", "TestB", "TestC", "TestD", "TestE"}

	t.Run("finds the culprit", func(t *testing.T) {
		culprit := func(_, suite []string) bool {
			return slices.Contains(suite, "TestD")
		}
		got, err := reduce(victim, suite, culprit)
		require.NoError(t, err)
		assert.Equal(t, []string{"TestD"}, got)
	})

	t.Run("stops when neither half reproduces", func(t *testing.T) {
		pair := func(_, suite []string) bool {
			return slices.Contains(suite, "TestA") && slices.Contains(suite, "TestE")
		}
		got, err := reduce(victim, suite, pair)
		require.NoError(t, err)
		assert.Equal(t, suite, got)
	})

	t.Run("nothing to reduce", func(t *testing.T) {
		_, err := reduce(victim, suite, func(_, _ []string) bool { return false })
		assert.ErrorIs(t, err, errNoRepro)
	})
}
