// Package pkg provides the libraries behind cratelink, which opens a crate's
// crates.io page, homepage, documentation or repository.
//
// # Overview
//
// The pkg directory is organized by stage:
//
//  1. [integrations] - HTTP client and the crates.io registry client
//  2. [links] - Destination parsing and link resolution
//  3. [launch] - Handing a link to the browser
//  4. [pipeline] - Orchestration (fetch → resolve → dispatch)
//
// Supporting packages: [config] (TOML settings), [manifest] (Cargo.toml),
// [errors] (coded errors), [observability] (hooks) and [buildinfo].
//
// # Architecture
//
// The data flow of one invocation:
//
//	crate name (argument or Cargo.toml)
//	         ↓
//	    [integrations/crates] package (GET /api/v1/crates/{name})
//	         ↓
//	    [links] package (pick the requested link)
//	         ↓
//	    [launch] package (browser or stdout)
//
// # Quick Start
//
//	client := crates.NewClient()
//	info, err := client.FetchCrate(ctx, "serde")
//	if err != nil {
//	    return err
//	}
//	url, err := links.Resolve(info, links.Documentation, links.DefaultSiteURL)
//	if err != nil {
//	    return err
//	}
//	return launch.NewBrowser(nil).Open(url)
//
// [integrations]: github.com/matzehuels/cratelink/pkg/integrations
// [links]: github.com/matzehuels/cratelink/pkg/links
// [launch]: github.com/matzehuels/cratelink/pkg/launch
// [pipeline]: github.com/matzehuels/cratelink/pkg/pipeline
// [config]: github.com/matzehuels/cratelink/pkg/config
// [manifest]: github.com/matzehuels/cratelink/pkg/manifest
// [errors]: github.com/matzehuels/cratelink/pkg/errors
// [observability]: github.com/matzehuels/cratelink/pkg/observability
// [buildinfo]: github.com/matzehuels/cratelink/pkg/buildinfo
// [integrations/crates]: github.com/matzehuels/cratelink/pkg/integrations/crates
package pkg
