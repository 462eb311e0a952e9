package main

import (
	"errors"
	"testing"

	"github.com/pthm-cable/ecosim/config"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name      string
		ticks     int
		order     string
		wantTicks int
		wantErr   bool
	}{
		{"defaults kept", 0, "", 200, false},
		{"positive ticks", 50, "", 50, false},
		{"shuffled order", 0, config.OrderShuffled, 200, false},
		{"negative ticks", -5, "", -5, true},
		{"unknown order", 10, "sideways", 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			err := applyOverrides(cfg, tt.ticks, tt.order)
			if tt.wantErr {
				if !errors.Is(err, config.ErrInvalidConfig) {
					t.Fatalf("error = %v, want ErrInvalidConfig", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Run.Ticks != tt.wantTicks {
				t.Errorf("run.ticks = %d, want %d", cfg.Run.Ticks, tt.wantTicks)
			}
		})
	}
}
