// Package slotstore defines the slot-addressed key-value substrate that
// store-backed containers are built on, together with a set of
// interchangeable backends.
//
// The substrate exposes fixed-width "slots" addressed by opaque 32-byte
// keys inside named domains. There are no range queries and no nested
// namespaces; containers that need structure derive their keys
// deterministically (see package segaddr).
//
// Backends:
//   - Memory: in-process map, the canonical test double.
//   - Local: file-per-slot on the local file system, with optional at-rest
//     compression.
//   - s3, minio, dynamo, badgerstore (subpackages): remote and embedded
//     persistent backends.
//
// Decorators such as RateLimited wrap any Store without changing its
// semantics.
package slotstore
