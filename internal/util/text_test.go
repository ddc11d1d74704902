package util

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"M 10", "M10"},
		{"M-10", "M10"},
		{"m10", "M10"},
		{"DIN 933", "DIN933"},
		{"  a.b/c  ", "ABC"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizePreserveSpace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"M-10 x 50", "M 10 x 50"},
		{"hex bolt, zinc", "HEX BOLT  ZINC"},
		{"  A2-70  ", "A2 70"},
	}
	for _, c := range cases {
		got := NormalizePreserveSpace(c.in)
		if Normalize(got) != Normalize(c.want) {
			t.Errorf("NormalizePreserveSpace(%q) = %q", c.in, got)
		}
	}
}

func TestTokenInText(t *testing.T) {
	cases := []struct {
		token string
		text  string
		want  bool
	}{
		{"M10", "HEX BOLT M-10 X 50", true},
		{"M 10", "HEX BOLT M10 X 50", true},
		{"DIN 933", "BOLT DIN933 GR 8.8", true},
		{"M12", "HEX BOLT M10 X 50", false},
		{"", "anything", false},
		{"ZINC", "zinc plated", true},
	}
	for _, c := range cases {
		if got := TokenInText(c.token, c.text); got != c.want {
			t.Errorf("TokenInText(%q, %q) = %v, want %v", c.token, c.text, got, c.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList("8.8, 10.9; 12.9 ,")
	want := []string{"8.8", "10.9", "12.9"}
	if len(got) != len(want) {
		t.Fatalf("SplitList: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Dedupe: got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dedupe[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
