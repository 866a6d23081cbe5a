// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/deadball-project/deadball-desktop/lib/codec"
)

// provisionRecordName is the provision record file inside the data
// directory, next to the extracted backend copy.
const provisionRecordName = "provision.cbor"

// ProvisionRecord documents a first-run template extraction: which
// archive produced the writable backend copy, its content digest, and
// when. Resolution never reads it — the data-copy probe is a plain
// existence check — but a user report containing the record pins down
// exactly which packaged build provisioned the machine.
type ProvisionRecord struct {
	// Archive is the absolute path of the template archive that was
	// extracted.
	Archive string `cbor:"archive"`

	// Digest is the hex-encoded BLAKE3 digest of the archive. Empty
	// when hashing failed (the extraction itself succeeded).
	Digest string `cbor:"digest,omitempty"`

	// Timestamp is when the extraction completed, UTC.
	Timestamp time.Time `cbor:"timestamp"`
}

// WriteProvisionRecord atomically writes the provision record into
// dataDir: written to a temporary file, fsynced, renamed into place.
// A reader never sees a partial record.
func WriteProvisionRecord(dataDir string, record ProvisionRecord) error {
	data, err := codec.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling provision record: %w", err)
	}

	path := filepath.Join(dataDir, provisionRecordName)
	temporaryPath := path + ".tmp"

	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating temporary provision record: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary provision record: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary provision record: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary provision record: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming provision record into place: %w", err)
	}
	return nil
}

// ReadProvisionRecord reads the provision record from dataDir. When
// the record does not exist the returned error wraps os.ErrNotExist.
func ReadProvisionRecord(dataDir string) (ProvisionRecord, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, provisionRecordName))
	if err != nil {
		return ProvisionRecord{}, err
	}

	var record ProvisionRecord
	if err := codec.Unmarshal(data, &record); err != nil {
		return ProvisionRecord{}, fmt.Errorf("parsing provision record: %w", err)
	}
	return record, nil
}
