// Package prefs persists user interface preferences.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/v-s-abhishek/PickList/internal/store"
	"github.com/v-s-abhishek/PickList/internal/ui"
)

// Theme returns the stored theme name, or ui.DefaultTheme when none (or
// an unknown one) is stored.
func Theme(ctx context.Context, s store.Store) (string, error) {
	data, ok, err := s.Load(ctx, store.KeyTheme)
	if err != nil {
		return ui.DefaultTheme, fmt.Errorf("load theme: %w", err)
	}
	if !ok {
		return ui.DefaultTheme, nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil || !ui.Known(name) {
		return ui.DefaultTheme, nil
	}
	return name, nil
}

// SetTheme stores name after checking it is a known theme.
func SetTheme(ctx context.Context, s store.Store, name string) error {
	if !ui.Known(name) {
		return fmt.Errorf("unknown theme %q", name)
	}
	data, err := json.Marshal(name)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.Save(ctx, store.KeyTheme, data); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
