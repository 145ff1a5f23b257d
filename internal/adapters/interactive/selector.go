package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"

	"github.com/gmonad/gmd-deploy/internal/domain"
	"github.com/gmonad/gmd-deploy/internal/domain/config"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectNetwork asks the user to pick one of the configured networks
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []string, prompt string) (string, error) {
	if len(networks) == 0 {
		return "", fmt.Errorf("%w: deploy.toml declares no [networks]", domain.ErrNoNetwork)
	}
	if len(networks) == 1 {
		return networks[0], nil
	}
	if s.config.NonInteractive {
		return "", fmt.Errorf("%w: pass --network (one of %s)", domain.ErrNoNetwork, strings.Join(networks, ", "))
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:     prompt,
		Items:     networks,
		Templates: templates,
		Size:      10,
		Searcher:  createFuzzySearchFunc(networks),
	}

	_, selected, err := promptSelect.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", fmt.Errorf("selection cancelled")
		}
		return "", fmt.Errorf("selection failed: %w", err)
	}

	return selected, nil
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var _ usecase.NetworkSelector = (*SelectorAdapter)(nil)
