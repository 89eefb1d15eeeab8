package telemetry

import (
	"context"
	"testing"
)

func TestNewLogger_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LoggingConfig
		wantErr bool
	}{
		{
			name:    "defaults",
			cfg:     DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "json to stdout",
			cfg:     LoggingConfig{Level: "debug", Format: "json", Output: "stdout"},
			wantErr: false,
		},
		{
			name:    "bad level",
			cfg:     LoggingConfig{Level: "loud"},
			wantErr: true,
		},
		{
			name:    "bad format",
			cfg:     LoggingConfig{Format: "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLogger(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromContext_Default(t *testing.T) {
	logger := FromContext(context.Background())
	if logger == nil {
		t.Fatal("expected a usable default logger")
	}
	// Must not panic when used.
	logger.Debug("default logger smoke test")
}

func TestFromContext_RoundTrip(t *testing.T) {
	base, err := NewLogger(LoggingConfig{Level: "info", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	component := base.NewComponentLogger("state")
	ctx := component.WithContext(context.Background())

	got := FromContext(ctx)
	if got != component {
		t.Fatal("expected the logger attached to the context")
	}
}
