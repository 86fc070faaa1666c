package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrievalConfig_PoolSize(t *testing.T) {
	tests := []struct {
		name string
		topK int
		want int
	}{
		{"default K hits multiplier", 8, 32},
		{"small K hits floor", 4, 30},
		{"large K", 20, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRetrievalConfig()
			cfg.TopK = tt.topK
			assert.Equal(t, tt.want, cfg.PoolSize())
		})
	}
}

func TestRetrievalConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultRetrievalConfig().Validate())

	bad := DefaultRetrievalConfig()
	bad.TopK = 0
	assert.Error(t, bad.Validate())

	bad = DefaultRetrievalConfig()
	bad.MaxAnswerTokens = -1
	assert.Error(t, bad.Validate())
}
