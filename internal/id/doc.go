// Package id provides the identifier generation used to correlate logs and
// metrics without revealing who a visitor is.
//
// It produces three kinds of opaque identifiers:
//
//   - SessionID: a UUID v4 in canonical text form, generated once per session
//   - Short: the first six characters of a session ID, for compact log lines
//   - RequestID: "r_" followed by the first eight characters of a fresh UUID,
//     issued for every inbound request and unrelated to the session
//
// None of these values are derived from user attributes. They come from a
// random source only, so they carry no personally identifying information.
//
// The package-level functions use Default, a process-wide Generator backed by
// github.com/google/uuid (crypto/rand). Tests and embedders that need a
// deterministic source can build their own with NewGenerator.
package id
