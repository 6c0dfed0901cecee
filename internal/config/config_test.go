package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultDuplicateThreshold, cfg.DuplicateThreshold)
	assert.Equal(t, DefaultNearDuplicateThreshold, cfg.NearDuplicateThreshold)
	assert.Equal(t, 3, cfg.MergeMinSize)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "near above duplicate",
			mutate:  func(c *Config) { c.NearDuplicateThreshold = 0.9; c.DuplicateThreshold = 0.8 },
			wantErr: true,
		},
		{
			name:    "duplicate above one",
			mutate:  func(c *Config) { c.DuplicateThreshold = 1.5 },
			wantErr: true,
		},
		{
			name:    "duplicate zero",
			mutate:  func(c *Config) { c.DuplicateThreshold = 0 },
			wantErr: true,
		},
		{
			name:    "negative near threshold",
			mutate:  func(c *Config) { c.NearDuplicateThreshold = -0.1 },
			wantErr: true,
		},
		{
			name:    "merge min size below two",
			mutate:  func(c *Config) { c.MergeMinSize = 1 },
			wantErr: true,
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Workers = -1 },
			wantErr: true,
		},
		{
			name:   "equal thresholds are fine",
			mutate: func(c *Config) { c.NearDuplicateThreshold = 0.85 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestThresholds(t *testing.T) {
	cfg := Default()
	th := cfg.Thresholds()

	assert.Equal(t, cfg.DuplicateThreshold, th.Duplicate)
	assert.Equal(t, cfg.NearDuplicateThreshold, th.NearDuplicate)
}
