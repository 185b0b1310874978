// Package links maps crate metadata to the single link a user asked for.
//
// A [Destination] names one of the four links a crate can have: its
// canonical crates.io page, homepage, documentation or repository. The
// canonical page is derived from the crate name; the other three come from
// the registry and may each be missing.
//
// [Resolve] picks the link for a destination, returning a
// [*MissingLinkError] when the crate does not publish it. [Summary] renders
// every published link on one line for diagnostics.
//
// Everything here is pure: no I/O, no logging.
package links
