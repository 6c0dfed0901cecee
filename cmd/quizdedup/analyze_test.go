package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebtf/quizdedup/internal/config"
)

func TestApplyAnalyzeOverrides(t *testing.T) {
	cfg := config.Default()

	applyAnalyzeOverrides(analyzeCmd, cfg)
	assert.Equal(t, config.DefaultDuplicateThreshold, cfg.DuplicateThreshold, "absent flags leave defaults alone")
	assert.Equal(t, config.DefaultNearDuplicateThreshold, cfg.NearDuplicateThreshold)

	require.NoError(t, analyzeCmd.Flags().Set("threshold", "0.9"))
	require.NoError(t, analyzeCmd.Flags().Set("near-threshold", "0"))
	applyAnalyzeOverrides(analyzeCmd, cfg)

	assert.Equal(t, 0.9, cfg.DuplicateThreshold)
	assert.Equal(t, 0.0, cfg.NearDuplicateThreshold, "an explicit zero near threshold is applied, not dropped")
	assert.NoError(t, cfg.Validate(), "zero is a legal near-duplicate cutoff")
}
