package main

import (
	"testing"
	"time"

	"fmiopen/pkg/fmi/properties"
)

func TestParseTimeFlag(t *testing.T) {
	got, err := parseTimeFlag("")
	if err != nil {
		t.Fatalf("empty flag must not error: %v", err)
	}
	if got != nil {
		t.Errorf("empty flag must yield nil, got %v", got)
	}

	got, err = parseTimeFlag("2025-06-01T12:00:00Z")
	if err != nil {
		t.Fatalf("parseTimeFlag failed: %v", err)
	}
	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if _, err := parseTimeFlag("yesterday"); err == nil {
		t.Error("expected error for non-RFC3339 input")
	}
}

func TestSplitParams(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"t2m", []string{"t2m"}},
		{"t2m,rh,ws_10min", []string{"t2m", "rh", "ws_10min"}},
		{" t2m , rh ", []string{"t2m", "rh"}},
		{"t2m,,rh", []string{"t2m", "rh"}},
	}
	for _, tt := range tests {
		got := splitParams(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitParams(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitParams(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		in   string
		want properties.Scope
	}{
		{"all", properties.ScopeAll},
		{"", properties.ScopeAll},
		{"observations", properties.ScopeObservations},
		{"forecasts", properties.ScopeForecasts},
	}
	for _, tt := range tests {
		got, err := parseScope(tt.in)
		if err != nil {
			t.Errorf("parseScope(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseScope(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := parseScope("everything"); err == nil {
		t.Error("expected error for unknown scope")
	}
}
