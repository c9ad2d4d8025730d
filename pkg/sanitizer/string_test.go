package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim spaces", "  Sala de Reunião  ", "Sala de Reunião"},
		{"multiple spaces between words", "Sala    A", "Sala A"},
		{"tabs and newlines", "Sala\t\nA", "Sala A"},
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"control characters dropped", "note\x00 here\x07", "note here"},
		{"preserve special characters", " Café & Spa™ ", "Café & Spa™"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := TrimAndNormalize(got); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ana.Souza@Example.COM "); got != "ana.souza@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestSanitizeSpaceType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Meeting Room", "meeting_room"},
		{"  quadra--poliesportiva ", "quadra_poliesportiva"},
		{"Auditório 2", "auditório_2"},
		{"___", ""},
	}
	for _, tt := range tests {
		if got := SanitizeSpaceType(tt.input); got != tt.want {
			t.Errorf("SanitizeSpaceType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeCPF(t *testing.T) {
	if got := SanitizeCPF("123.456.789-09"); got != "12345678909" {
		t.Errorf("SanitizeCPF() = %q", got)
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" Member@Club.org ", "member@club.org"},
		{" 6f1c2a ", "6f1c2a"},
		{"ABC-123", "ABC-123"},
	}
	for _, tt := range tests {
		if got := SanitizeIdentifier(tt.input); got != tt.want {
			t.Errorf("SanitizeIdentifier(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
