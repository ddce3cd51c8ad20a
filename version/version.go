// Package version implements the SDK version gate.
//
// Migration scripts declare the SDK contract they were written against with
// Require. A major version change is breaking in either direction. Minor and
// bugfix releases are additive, so a newer running SDK satisfies an older
// requirement while a requirement ahead of the running SDK cannot be met.
//
// When minor and bugfix differ in opposite directions the pair is compared
// lexicographically: 1.2.0 satisfies a requirement of 1.1.9.
package version

import (
	"fmt"

	pkgver "github.com/hashicorp/go-version"

	"github.com/TykTechnologies/servicemigration/internal/errors"
)

// APIVersion is the version of the SDK contract implemented by this module.
const APIVersion = "1.1.1"

var (
	// ErrIncompatible is returned when the running SDK cannot satisfy a requirement.
	ErrIncompatible = errors.NewClassified(errors.ClassVersion, "SDK version incompatible with requirement")

	// ErrMalformed is returned for version strings that can't be parsed.
	ErrMalformed = errors.NewClassified(errors.ClassVersion, "malformed version")
)

// Triple is a parsed major.minor.bugfix version.
type Triple struct {
	Major, Minor, Bugfix int
}

// String returns the dotted form of the version.
func (t Triple) String() string {
	return fmt.Sprintf("%d.%d.%d", t.Major, t.Minor, t.Bugfix)
}

// Satisfies reports whether a running version t meets the requirement req.
func (t Triple) Satisfies(req Triple) bool {
	if t.Major != req.Major {
		return false
	}
	if t.Minor != req.Minor {
		return t.Minor > req.Minor
	}
	return t.Bugfix >= req.Bugfix
}

// Parse parses a version string into a Triple. Missing minor or bugfix
// segments are treated as zero. More than three segments, prerelease tags
// and build metadata are rejected.
func Parse(raw string) (Triple, error) {
	v, err := pkgver.NewSemver(raw)
	if err != nil {
		return Triple{}, fmt.Errorf("%w %q: %v", ErrMalformed, raw, err)
	}

	segments := v.Segments()
	if len(segments) > 3 {
		return Triple{}, fmt.Errorf("%w %q: more than three segments", ErrMalformed, raw)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return Triple{}, fmt.Errorf("%w %q: prerelease and metadata are not supported", ErrMalformed, raw)
	}

	return Triple{
		Major:  segments[0],
		Minor:  segments[1],
		Bugfix: segments[2],
	}, nil
}

// Require fails if the running SDK does not satisfy required.
func Require(required string) error {
	return Check(APIVersion, required)
}

// Check fails if the running version does not satisfy required.
func Check(running, required string) error {
	run, err := Parse(running)
	if err != nil {
		return err
	}

	req, err := Parse(required)
	if err != nil {
		return err
	}

	if !run.Satisfies(req) {
		return fmt.Errorf("%w: running %s, required %s", ErrIncompatible, run, req)
	}

	return nil
}
