// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides CBOR encoding for the shell's on-disk state
// records (currently the backend provision record). Encoding is
// deterministic: the same logical record always produces identical
// bytes. Consumers import only this package, not the CBOR library
// directly.
package codec
