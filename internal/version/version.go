// Package version holds build-time metadata injected via ldflags.
package version

// These variables are set at build time using -ldflags:
//
//	-X 'github.com/plumsirawit/the-researcher-covid-bot/internal/version.Version=...'
//	-X 'github.com/plumsirawit/the-researcher-covid-bot/internal/version.CommitHash=...'
//	-X 'github.com/plumsirawit/the-researcher-covid-bot/internal/version.BuildDate=...'
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

const shortHashLen = 7

// String returns "covidboard <version> (<commit>) built <date>", leaving out
// the parts that were not injected.
func String() string {
	s := "covidboard " + Version
	if known(CommitHash) {
		hash := CommitHash
		if len(hash) > shortHashLen {
			hash = hash[:shortHashLen]
		}
		s += " (" + hash + ")"
	}
	if known(BuildDate) {
		s += " built " + BuildDate
	}
	return s
}

func known(v string) bool {
	return v != "" && v != "unknown"
}
