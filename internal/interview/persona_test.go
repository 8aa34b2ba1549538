package interview

import (
	"strings"
	"testing"
)

func TestPersonaInstruction(t *testing.T) {
	if got := PersonaInstruction(IntensityCalm); !strings.Contains(got, "warm") {
		t.Errorf("CALM persona unexpected: %q", got)
	}
	if got := PersonaInstruction(IntensityStrict); !strings.Contains(got, "no-nonsense") {
		t.Errorf("STRICT persona unexpected: %q", got)
	}
	if got := PersonaInstruction(IntensityAggressive); !strings.Contains(got, "pressure") {
		t.Errorf("AGGRESSIVE persona unexpected: %q", got)
	}
}

func TestPersonaInstruction_UnknownFallsBackToCalm(t *testing.T) {
	for _, intensity := range []Intensity{"", "RUDE", "calm"} {
		if got := PersonaInstruction(intensity); got != PersonaInstruction(IntensityCalm) {
			t.Errorf("PersonaInstruction(%q) should fall back to CALM, got %q", intensity, got)
		}
	}
}
