// Package crates provides an HTTP client for the crates.io API.
//
// # Overview
//
// This package fetches the link metadata of a crate from crates.io
// (https://crates.io), the Rust community's package registry.
//
// # Usage
//
//	client := crates.NewClient()
//
//	info, err := client.FetchCrate(ctx, "serde")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(info.Name)
//
// # CrateInfo
//
// [Client.FetchCrate] unwraps the {"crate": {...}} envelope and returns a
// [CrateInfo] with the crate name and its optional homepage, documentation
// and repository links.
//
// # Testing
//
// The API root is injectable with [WithBaseURL], so tests point the client
// at an httptest server.
//
// # User-Agent
//
// The client includes a User-Agent header as requested by crates.io policy.
package crates
