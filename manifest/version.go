package manifest

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
)

// Manifest format versions understood by this package.
const (
	MinSupportedVersion = "1.0.0"
	MaxTestedVersion    = "1.0.0"
)

// SupportedRange returns the minimum and maximum manifest versions supported.
func SupportedRange() (min, max string) {
	return MinSupportedVersion, MaxTestedVersion
}

var versionRe = regexp.MustCompile(`^(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)$`)

type version [3]int

func parseVersion(s string) (version, error) {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return version{}, fmt.Errorf("invalid version %q: must be MAJOR.MINOR.PATCH", s)
	}
	var v version
	for i := range v {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
		v[i] = n
	}
	return v, nil
}

func (v version) compare(o version) int {
	for i := range v {
		if c := cmp.Compare(v[i], o[i]); c != 0 {
			return c
		}
	}
	return 0
}

var minSupported, maxTested = mustVersion(MinSupportedVersion), mustVersion(MaxTestedVersion)

func mustVersion(s string) version {
	v, err := parseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("manifest: %v", err))
	}
	return v
}

// IsSupportedVersion reports whether v is within the supported range.
func IsSupportedVersion(v string) (bool, error) {
	parsed, err := parseVersion(v)
	if err != nil {
		return false, err
	}
	return parsed.compare(minSupported) >= 0 && parsed.compare(maxTested) <= 0, nil
}
