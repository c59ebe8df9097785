package config_test

import (
	"testing"

	"github.com/vertag/vertag/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "debug", level: "debug"},
		{name: "case insensitive", level: "INFO"},
		{name: "warn", level: "warn"},
		{name: "error", level: "error"},
		{name: "unknown level", level: "verbose", wantErr: true},
		{name: "empty level", level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &config.Logger{Level: tt.level}

			result, err := logger.Configure()
			if (err != nil) != tt.wantErr {
				t.Errorf("Configure() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && result == nil {
				t.Error("Configure() returned nil logger for valid input")
			}
		})
	}
}

func TestLogger_Configure_JSONFormat(t *testing.T) {
	for _, jsonMode := range []bool{true, false} {
		logger := &config.Logger{Level: "info", JSON: jsonMode}

		result, err := logger.Configure()
		if err != nil {
			t.Fatalf("Configure() unexpected error = %v", err)
		}
		if result == nil {
			t.Fatal("Configure() returned nil logger")
		}

		result.Info("test log message", "json", jsonMode)
	}
}
