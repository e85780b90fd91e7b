package harness

import "testing"

func TestEvaluate_ExactMatch(t *testing.T) {
	oc := Evaluate("42", "42")
	if !oc.Passed() {
		t.Errorf("Verdict = %q, want passed", oc.Verdict)
	}
}

func TestEvaluate_TrailingWhitespaceIgnored(t *testing.T) {
	// Differing trailing newlines and spaces must not fail a test.
	for _, pair := range [][2]string{
		{"42\n", "42"},
		{"42", "42\n"},
		{"42 \t\r\n", "42"},
		{"a\nb\n", "a\nb"},
		{"", "\n"},
	} {
		if oc := Evaluate(pair[0], pair[1]); !oc.Passed() {
			t.Errorf("Evaluate(%q, %q) = %q, want passed", pair[0], pair[1], oc.Verdict)
		}
	}
}

func TestEvaluate_LeadingWhitespaceSignificant(t *testing.T) {
	oc := Evaluate(" 42", "42")
	if oc.Verdict != Mismatch {
		t.Errorf("Verdict = %q, want mismatch", oc.Verdict)
	}
}

func TestEvaluate_InternalWhitespaceSignificant(t *testing.T) {
	oc := Evaluate("a  b", "a b")
	if oc.Verdict != Mismatch {
		t.Errorf("Verdict = %q, want mismatch", oc.Verdict)
	}
}

func TestEvaluate_MismatchCarriesTrimmedActual(t *testing.T) {
	oc := Evaluate("wrong\n", "right")
	if oc.Verdict != Mismatch {
		t.Fatalf("Verdict = %q, want mismatch", oc.Verdict)
	}
	if oc.Actual != "wrong" {
		t.Errorf("Actual = %q, want %q", oc.Actual, "wrong")
	}
	if oc.Detail != "output mismatch" {
		t.Errorf("Detail = %q, want %q", oc.Detail, "output mismatch")
	}
}
