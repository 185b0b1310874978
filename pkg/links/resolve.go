package links

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/matzehuels/cratelink/pkg/errors"
	"github.com/matzehuels/cratelink/pkg/integrations/crates"
)

// DefaultSiteURL is the crates.io web root canonical links are built on.
const DefaultSiteURL = "https://crates.io"

// MissingLinkError reports that a crate does not publish the requested link.
// Field is the lowercase link name: "homepage", "documentation" or
// "repository".
type MissingLinkError struct {
	Field string
}

func (e *MissingLinkError) Error() string {
	return e.Field + " link not set"
}

// Message returns the sentence shown to the user.
func (e *MissingLinkError) Message() string {
	return fmt.Sprintf("The %s link isn't set for that crate.", e.Field)
}

// Link is a published link of a crate.
type Link struct {
	Destination Destination
	URL         string
}

// Resolver resolves links against a fixed crates.io web root.
type Resolver struct {
	siteURL string
}

// NewResolver returns a Resolver building canonical links on siteURL.
// An empty siteURL selects [DefaultSiteURL].
func NewResolver(siteURL string) *Resolver {
	if siteURL == "" {
		siteURL = DefaultSiteURL
	}
	return &Resolver{siteURL: strings.TrimRight(siteURL, "/")}
}

// CanonicalURL returns the crates.io page of the named crate.
func (r *Resolver) CanonicalURL(name string) string {
	return r.siteURL + "/crates/" + name
}

// Resolve returns the link of info selected by dest.
//
// The canonical link is always available. For the other destinations the
// registry value is returned unchanged when set; otherwise the error is
// coded MISSING_LINK, its user message is "The {field} link isn't set for
// that crate." and it wraps a [*MissingLinkError].
func (r *Resolver) Resolve(info *crates.CrateInfo, dest Destination) (string, error) {
	if info == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "no crate information to resolve")
	}
	if dest == Canonical {
		return r.CanonicalURL(info.Name), nil
	}
	if !dest.valid() {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown link %s", dest)
	}
	if link := field(info, dest); link != nil {
		return *link, nil
	}
	missing := &MissingLinkError{Field: dest.String()}
	return "", errors.Wrap(errors.ErrCodeMissingLink, missing, "%s", missing.Message())
}

// Available returns the canonical link followed by every published link,
// in [Destinations] order.
func (r *Resolver) Available(info *crates.CrateInfo) []Link {
	if info == nil {
		return nil
	}
	out := []Link{{Destination: Canonical, URL: r.CanonicalURL(info.Name)}}
	for _, d := range Destinations[1:] {
		if link := field(info, d); link != nil {
			out = append(out, Link{Destination: d, URL: *link})
		}
	}
	return out
}

// Summary renders the published links of info on one line as
// "Label: value" pairs joined by ", ", always in the order Homepage,
// Documentation, Repository. When none is published it returns a sentence
// naming the crate and its canonical page instead.
func (r *Resolver) Summary(info *crates.CrateInfo) string {
	if info == nil {
		return ""
	}
	var parts []string
	for _, d := range Destinations[1:] {
		if link := field(info, d); link != nil {
			parts = append(parts, d.Label()+": "+*link)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("No links found for crate '%s'. Browse %s to inspect it manually.",
			info.Name, r.CanonicalURL(info.Name))
	}
	return strings.Join(parts, ", ")
}

// Resolve is shorthand for NewResolver(siteURL).Resolve(info, dest).
func Resolve(info *crates.CrateInfo, dest Destination, siteURL string) (string, error) {
	return NewResolver(siteURL).Resolve(info, dest)
}

// Summary is shorthand for NewResolver(siteURL).Summary(info).
func Summary(info *crates.CrateInfo, siteURL string) string {
	return NewResolver(siteURL).Summary(info)
}

// Available is shorthand for NewResolver(siteURL).Available(info).
func Available(info *crates.CrateInfo, siteURL string) []Link {
	return NewResolver(siteURL).Available(info)
}

// MissingField returns the link name carried by a MISSING_LINK error.
func MissingField(err error) (string, bool) {
	var m *MissingLinkError
	if stderrors.As(err, &m) {
		return m.Field, true
	}
	return "", false
}

func field(info *crates.CrateInfo, d Destination) *string {
	switch d {
	case Homepage:
		return info.Homepage
	case Documentation:
		return info.Documentation
	case Repository:
		return info.Repository
	}
	return nil
}
