// Package integrations provides the HTTP plumbing shared by registry API
// clients.
//
// # Overview
//
// Registry-specific clients live in subpackages (currently [crates]) and
// embed [Client], which performs a single GET, applies default headers and
// decodes the JSON body. Failures are reported as coded errors from
// [errors]:
//
//   - TRANSPORT: DNS, connect, timeout or cancellation
//   - BAD_STATUS: any non-2xx response; [StatusCode] recovers the status
//   - DECODE: a 2xx body that is not the expected JSON shape
//
// There is no caching and no retry: one failed request is final.
//
// [crates]: github.com/matzehuels/cratelink/pkg/integrations/crates
// [errors]: github.com/matzehuels/cratelink/pkg/errors
package integrations
