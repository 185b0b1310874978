package links

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cratelink/pkg/errors"
)

// Destination is the kind of link to open. The zero value is [Canonical].
type Destination int

const (
	Canonical Destination = iota
	Homepage
	Documentation
	Repository
)

// Destinations lists every destination in display order.
var Destinations = []Destination{Canonical, Homepage, Documentation, Repository}

var destinationNames = [...]string{
	Canonical:     "crate",
	Homepage:      "homepage",
	Documentation: "documentation",
	Repository:    "repository",
}

var destinationLabels = [...]string{
	Canonical:     "Crate",
	Homepage:      "Homepage",
	Documentation: "Documentation",
	Repository:    "Repository",
}

// aliases is consulted only when parsing user input. Keys are lowercase.
var aliases = map[string]Destination{
	"c":             Canonical,
	"crate":         Canonical,
	"canonical":     Canonical,
	"h":             Homepage,
	"homepage":      Homepage,
	"d":             Documentation,
	"documentation": Documentation,
	"r":             Repository,
	"repository":    Repository,
}

// ParseDestination converts user input to a Destination.
// Matching is case-insensitive and accepts full names and the single-letter
// shorthands c, h, d and r; "canonical" is accepted as a synonym of "crate".
// An empty string yields [Canonical].
func ParseDestination(s string) (Destination, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return Canonical, nil
	}
	if d, ok := aliases[key]; ok {
		return d, nil
	}
	return Canonical, errors.New(errors.ErrCodeInvalidInput,
		"unknown link %q (want one of: %s)", s, strings.Join(Names(), ", "))
}

// Names returns the canonical name of every destination.
func Names() []string {
	names := make([]string, len(Destinations))
	for i, d := range Destinations {
		names[i] = d.String()
	}
	return names
}

// String returns the lowercase name, e.g. "documentation".
func (d Destination) String() string {
	if !d.valid() {
		return fmt.Sprintf("Destination(%d)", int(d))
	}
	return destinationNames[d]
}

// Label returns the capitalized display label, e.g. "Documentation".
func (d Destination) Label() string {
	if !d.valid() {
		return d.String()
	}
	return destinationLabels[d]
}

// Set implements pflag.Value so a Destination can back a command-line flag.
func (d *Destination) Set(s string) error {
	parsed, err := ParseDestination(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Type implements pflag.Value.
func (d *Destination) Type() string { return "link" }

func (d Destination) valid() bool {
	return d >= Canonical && d <= Repository
}
