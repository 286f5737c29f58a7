package handler

import "testing"

func TestCleanKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"/report.pdf", "datasheets/report.pdf", true},
		{"report.pdf", "datasheets/report.pdf", true},
		{"/sub/dir/report.pdf", "datasheets/sub/dir/report.pdf", true},
		{"/a/../report.pdf", "datasheets/report.pdf", true},
		// Rooted path.Clean strips leading "..", so traversal attempts
		// collapse into keys under the prefix instead of escaping it.
		{"/../secrets.pdf", "datasheets/secrets.pdf", true},
		{"/../../etc/passwd", "datasheets/etc/passwd", true},
		{"", "", false},
		{"/", "", false},
		{"/..", "", false},
	}

	for _, c := range cases {
		got, ok := cleanKey("datasheets", c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("cleanKey(datasheets, %q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
