package version

import "testing"

func TestString(t *testing.T) {
	saved := [3]string{Version, CommitHash, BuildDate}
	defer func() { Version, CommitHash, BuildDate = saved[0], saved[1], saved[2] }()

	Version, CommitHash, BuildDate = "dev", "unknown", "unknown"
	if got := String(); got != "covidboard dev" {
		t.Fatalf("String() = %q, want %q", got, "covidboard dev")
	}

	Version, CommitHash, BuildDate = "v1.2.0", "0123456789abcdef", "2021-05-03"
	if got, want := String(), "covidboard v1.2.0 (0123456) built 2021-05-03"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
