package interactive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmonad/gmd-deploy/internal/domain"
	"github.com/gmonad/gmd-deploy/internal/domain/config"
)

func TestSelectNetwork_WithoutPrompt(t *testing.T) {
	ctx := context.Background()

	t.Run("single network is returned directly", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{})
		name, err := s.SelectNetwork(ctx, []string{"monadTestnet"}, "Select network")
		require.NoError(t, err)
		assert.Equal(t, "monadTestnet", name)
	})

	t.Run("no networks", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{})
		_, err := s.SelectNetwork(ctx, nil, "Select network")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNoNetwork))
	})

	t.Run("non-interactive lists choices", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
		_, err := s.SelectNetwork(ctx, []string{"anvil", "monadTestnet"}, "Select network")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNoNetwork))
		assert.Contains(t, err.Error(), "anvil, monadTestnet")
	})
}

func TestFuzzySearch(t *testing.T) {
	items := []string{"anvil", "monadTestnet", "sepolia"}
	search := createFuzzySearchFunc(items)

	tests := []struct {
		input string
		want  []bool
	}{
		{"", []bool{true, true, true}},
		{"monad", []bool{false, true, false}},
		{"mtn", []bool{false, true, false}},
		{"SEP", []bool{false, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			for i := range items {
				assert.Equal(t, tt.want[i], search(tt.input, i), items[i])
			}
		})
	}
}
