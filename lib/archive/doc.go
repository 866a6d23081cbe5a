// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive unpacks the packaged backend template on first run.
//
// Packaged desktop builds ship the pristine backend tree as a single
// compressed tar archive in the bundled-resources directory. The
// first launch on a machine extracts it into the per-user data
// directory, producing the writable copy the backend then runs from.
// The compression algorithm is chosen by the packaging step and
// detected here from the file extension; zstd is the default, with
// lz4 and gzip accepted for packaging pipelines that prefer them.
//
// Extraction validates every entry name so a tampered archive cannot
// write outside the destination directory.
//
// The package also provides BLAKE3 content hashing of the archive
// itself, recorded in the provision record so a packaging problem
// ("which template produced this tree?") can be diagnosed after the
// fact.
package archive
