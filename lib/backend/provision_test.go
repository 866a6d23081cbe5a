// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"os"
	"testing"
	"time"
)

func TestProvisionRecordRoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	record := ProvisionRecord{
		Archive:   "/opt/deadball/resources/backend.tar.zst",
		Digest:    "00112233",
		Timestamp: time.Date(2026, 5, 2, 18, 4, 0, 0, time.UTC),
	}

	if err := WriteProvisionRecord(dataDir, record); err != nil {
		t.Fatalf("WriteProvisionRecord: %v", err)
	}

	got, err := ReadProvisionRecord(dataDir)
	if err != nil {
		t.Fatalf("ReadProvisionRecord: %v", err)
	}
	if got.Archive != record.Archive || got.Digest != record.Digest {
		t.Errorf("round trip = %+v, want %+v", got, record)
	}
	if !got.Timestamp.Equal(record.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, record.Timestamp)
	}
}

func TestReadProvisionRecordMissing(t *testing.T) {
	if _, err := ReadProvisionRecord(t.TempDir()); !os.IsNotExist(err) {
		t.Errorf("error = %v, want not-exist", err)
	}
}

func TestWriteProvisionRecordLeavesNoTemporary(t *testing.T) {
	dataDir := t.TempDir()
	record := ProvisionRecord{Archive: "a.tar.zst", Timestamp: time.Now()}
	if err := WriteProvisionRecord(dataDir, record); err != nil {
		t.Fatalf("WriteProvisionRecord: %v", err)
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "provision.cbor" {
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		t.Errorf("data dir contents = %v, want only provision.cbor", names)
	}
}
