package fritzbox

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var assignmentPattern = regexp.MustCompile(`^[^=]+=[^=]+$`)

// ParseAssignment parses a DEVICE=PROFILE argument. Exactly one '=' with a
// non-empty key and value is accepted.
func ParseAssignment(s string) (Assignment, error) {
	if !assignmentPattern.MatchString(s) {
		return Assignment{}, fmt.Errorf("invalid format: '%s' (expected DEVICE=PROFILE)", s)
	}
	device, profile, _ := strings.Cut(s, "=")
	return Assignment{DeviceKey: device, ProfileKey: profile}, nil
}

// ParseAssignmentArgs parses every argument, stopping at the first invalid one
func ParseAssignmentArgs(args []string) ([]Assignment, error) {
	assignments := make([]Assignment, 0, len(args))
	for _, arg := range args {
		a, err := ParseAssignment(arg)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL without query
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("invalid URL %q: must not contain a query or fragment", raw)
	}
	return nil
}
