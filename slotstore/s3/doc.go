// Package s3 provides an AWS S3 backed slot store.
//
// Each slot is one S3 object. Offset reads map to ranged GETs; offset
// writes are read-modify-write of the whole object, so prefer whole-slot
// writes where the access pattern allows. Single-writer discipline per
// slot is the caller's responsibility, exactly as with every other
// slotstore backend.
package s3
