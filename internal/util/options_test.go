package util

import (
	"reflect"
	"testing"
)

func TestOptionsRoundTrip(t *testing.T) {
	options := []string{"البحر الأحمر", "B", "C"}

	encoded, err := EncodeOptions(options)
	if err != nil {
		t.Fatalf("EncodeOptions: %v", err)
	}
	if got := DecodeOptions(encoded); !reflect.DeepEqual(got, options) {
		t.Errorf("round trip = %v, want %v", got, options)
	}
}

func TestEncodeOptionsEmpty(t *testing.T) {
	for _, options := range [][]string{nil, {}} {
		encoded, err := EncodeOptions(options)
		if err != nil {
			t.Fatalf("EncodeOptions(%v): %v", options, err)
		}
		if encoded != "" {
			t.Errorf("EncodeOptions(%v) = %q, want empty", options, encoded)
		}
	}
}

func TestDecodeOptionsNeverFails(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty column", ""},
		{"malformed json", "{not json"},
		{"wrong shape", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeOptions(tt.raw)
			if got == nil || len(got) != 0 {
				t.Errorf("DecodeOptions(%q) = %v, want empty list", tt.raw, got)
			}
		})
	}
}
