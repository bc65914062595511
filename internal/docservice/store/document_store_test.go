package store

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"docs/handbook.md", "docs/handbook.md"},
		{"/docs/handbook.md", "docs/handbook.md"},
		{"docs/handbook.md/", "docs/handbook.md"},
		{"  docs/handbook.md ", "docs/handbook.md"},
		{"docs//policies///leave.md", "docs/policies/leave.md"},
		{"//", ""},
	}
	for _, tc := range cases {
		if got := NormalizePath(tc.in); got != tc.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
