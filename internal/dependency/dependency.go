package dependency

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrMalformedCoordinate indicates a coordinate that is not group:artifact:version[:classifier]
	ErrMalformedCoordinate = errors.New("malformed dependency coordinate")

	// ErrEmptyDirective indicates a directive marker with no coordinates after it
	ErrEmptyDirective = errors.New("dependency directive has no coordinates")
)

// fieldRe restricts coordinate fields to characters Maven accepts in ids and version ranges.
var fieldRe = regexp.MustCompile(`^[A-Za-z0-9_.\-+\[\](),]+$`)

// Dependency is a single external library reference declared in source.
// Values are comparable, so == is structural equality.
type Dependency struct {
	Group      string `json:"group"`
	Artifact   string `json:"artifact"`
	Version    string `json:"version"`
	Classifier string `json:"classifier,omitempty"`
}

// ParseCoordinate parses "group:artifact:version" or "group:artifact:version:classifier".
func ParseCoordinate(s string) (Dependency, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return Dependency{}, fmt.Errorf("%w: %q: expected group:artifact:version[:classifier]", ErrMalformedCoordinate, s)
	}

	for i, part := range parts {
		if !fieldRe.MatchString(part) {
			return Dependency{}, fmt.Errorf("%w: %q: invalid %s field", ErrMalformedCoordinate, s, fieldNames[i])
		}
	}

	dep := Dependency{
		Group:    parts[0],
		Artifact: parts[1],
		Version:  parts[2],
	}
	if len(parts) == 4 {
		dep.Classifier = parts[3]
	}
	return dep, nil
}

var fieldNames = [...]string{"group", "artifact", "version", "classifier"}

// String returns the coordinate form of the dependency.
func (d Dependency) String() string {
	s := d.Group + ":" + d.Artifact + ":" + d.Version
	if d.Classifier != "" {
		s += ":" + d.Classifier
	}
	return s
}

// Key returns group:artifact, the identity downstream resolvers use to detect conflicts.
func (d Dependency) Key() string {
	return d.Group + ":" + d.Artifact
}
