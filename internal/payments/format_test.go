package payments

import "testing"

func TestMaskCard(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"4111111111111111", "**** **** **** 1111"},
		{"1234", "**** 1234"},
		{"", ""},
	}
	for _, c := range cases {
		if got := MaskCard(c.in); got != c.want {
			t.Errorf("MaskCard(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMaskEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"customer@example.com", "c***@example.com"},
		{"not-an-email", "not-an-email"},
		{"@example.com", "@example.com"},
	}
	for _, c := range cases {
		if got := MaskEmail(c.in); got != c.want {
			t.Errorf("MaskEmail(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
