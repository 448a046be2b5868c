package model_test

import (
	"errors"
	"testing"

	"github.com/shawn0818/lebron-bot/internal/model"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"PT12M34.56S", 755},
		{"PT12M34.00S", 754},
		{"PT00M00.00S", 0},
		{"PT05M", 300},
		{"PT30.5S", 31},
		{"PT48M", 2880},
	}
	for _, tc := range cases {
		got, err := model.ParseDuration(tc.input)
		if err != nil {
			t.Fatalf("ParseDuration(%q): unexpected error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestParseDuration_Malformed(t *testing.T) {
	for _, input := range []string{"12:34", "PT12M34S56", "P12M", "34.56S", "garbage"} {
		_, err := model.ParseDuration(input)
		if err == nil {
			t.Fatalf("ParseDuration(%q): expected error", input)
		}
		var derr *model.DurationError
		if !errors.As(err, &derr) {
			t.Fatalf("ParseDuration(%q): expected DurationError, got %T", input, err)
		}
		if derr.Input != input {
			t.Errorf("DurationError.Input = %q, want %q", derr.Input, input)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{755, "12:35"},
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{-10, "00:00"},
	}
	for _, tc := range cases {
		if got := model.FormatClock(tc.seconds); got != tc.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
