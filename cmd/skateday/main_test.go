package main

import "testing"

func TestNeedsStorage(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{"init", false},
		{"status", false},
		{"db set-connection <connection-string>", false},
		{"db clear-connection", false},
		{"remote login", false},
		{"remote register", false},
		{"remote push", true},
		{"remote pull", true},
		{"tui", true},
		{"day show", true},
		{"habit add <name>", true},
		{"backup restore <backup-file>", true},
		{"doctor", true},
	}
	for _, tt := range tests {
		if got := needsStorage(tt.command); got != tt.want {
			t.Errorf("needsStorage(%q) = %v, want %v", tt.command, got, tt.want)
		}
	}
}
