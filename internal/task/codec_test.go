package task

import (
	"testing"

	"taredo/internal/errors"
)

func TestFormatDeps(t *testing.T) {
	if got := FormatDeps(nil); got != "-" {
		t.Errorf("FormatDeps(nil) = %q, want %q", got, "-")
	}
	if got := FormatDeps([]int{3}); got != "3" {
		t.Errorf("FormatDeps([3]) = %q, want %q", got, "3")
	}
	if got := FormatDeps([]int{3, 1, 7}); got != "3,1,7" {
		t.Errorf("FormatDeps([3 1 7]) = %q, want %q", got, "3,1,7")
	}
}

func TestParseDeps(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"-", nil, false},
		{"", nil, false},
		{"  ", nil, false},
		{"3", []int{3}, false},
		{"3,1,7", []int{3, 1, 7}, false},
		{"3, 1 , 7", []int{3, 1, 7}, false},
		{"3,x", nil, true},
		{"3,,7", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseDeps(tt.in)
		if tt.wantErr {
			if !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("ParseDeps(%q) error = %v, want ErrInvalidInput", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDeps(%q) error = %v", tt.in, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseDeps(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseDeps(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}
