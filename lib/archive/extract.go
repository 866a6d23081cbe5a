// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the compression wrapped around the template
// tar stream. The packaging step chooses the algorithm; the shell
// detects it from the archive file name.
type Compression uint8

const (
	// CompressionNone is a bare tar stream (.tar).
	CompressionNone Compression = iota

	// CompressionGzip is gzip (.tar.gz, .tgz). Kept for packaging
	// steps that only have stock tar available.
	CompressionGzip

	// CompressionLZ4 is LZ4 frame compression (.tar.lz4). Fast
	// decode, moderate ratio.
	CompressionLZ4

	// CompressionZstd is zstd (.tar.zst). The packaging default:
	// the backend tree is mostly Python source, which zstd compresses
	// well at negligible decode cost on first run.
	CompressionZstd
)

// String returns the human-readable name of a compression algorithm.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// DetectCompression maps an archive file name to its compression
// algorithm. Unrecognized extensions are treated as bare tar.
func DetectCompression(path string) Compression {
	switch {
	case strings.HasSuffix(path, ".tar.zst"):
		return CompressionZstd
	case strings.HasSuffix(path, ".tar.lz4"):
		return CompressionLZ4
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// Extract unpacks the template archive at archivePath into destDir,
// creating destDir if needed. Entry names are validated so the
// archive cannot write outside destDir (absolute names and ".."
// traversal are rejected). Regular files, directories, and symlinks
// are supported; other entry types are skipped.
//
// Extraction is not transactional: a failure partway leaves a partial
// tree behind. Callers treat any error as "this archive did not
// produce a usable copy" and must not hand out destDir.
func Extract(archivePath, destDir string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer file.Close()

	reader, closeReader, err := decompressingReader(file, DetectCompression(archivePath))
	if err != nil {
		return fmt.Errorf("opening %s decompressor: %w", DetectCompression(archivePath), err)
	}
	defer closeReader()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating destination %s: %w", destDir, err)
	}

	tarReader := tar.NewReader(reader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}

		target, err := securePath(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(header.Mode)|0700); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("creating parent of %s: %w", target, err)
			}
			if err := writeFile(target, tarReader, os.FileMode(header.Mode)); err != nil {
				return err
			}

		case tar.TypeSymlink:
			if err := validateLinkTarget(destDir, target, header.Linkname); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("creating parent of %s: %w", target, err)
			}
			// Remove any entry left by a previous partial extraction;
			// os.Symlink fails on an existing path.
			os.Remove(target)
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf("creating symlink %s: %w", target, err)
			}

		default:
			// Devices, FIFOs, hard links: nothing in a backend tree
			// needs them, and extracting them widens the attack
			// surface of a shipped archive.
		}
	}
}

// decompressingReader wraps raw in the decompressor for the given
// algorithm. The returned close function releases decompressor
// resources (not the underlying file).
func decompressingReader(raw io.Reader, compression Compression) (io.Reader, func(), error) {
	switch compression {
	case CompressionNone:
		return raw, func() {}, nil

	case CompressionGzip:
		reader, err := gzip.NewReader(raw)
		if err != nil {
			return nil, nil, err
		}
		return reader, func() { reader.Close() }, nil

	case CompressionLZ4:
		return lz4.NewReader(raw), func() {}, nil

	case CompressionZstd:
		reader, err := zstd.NewReader(raw)
		if err != nil {
			return nil, nil, err
		}
		return reader, reader.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported compression: %d", compression)
	}
}

// securePath joins an archive entry name onto destDir, rejecting
// names that would land outside it.
func securePath(destDir, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("archive entry %q has an absolute path", name)
	}
	target := filepath.Join(destDir, name)
	if target != destDir && !strings.HasPrefix(target, destDir+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes the destination", name)
	}
	return target, nil
}

// validateLinkTarget rejects symlink entries whose target resolves
// outside destDir. linkPath is where the symlink itself will live;
// linkname is the (possibly relative) target stored in the archive.
func validateLinkTarget(destDir, linkPath, linkname string) error {
	if filepath.IsAbs(linkname) {
		return fmt.Errorf("symlink %q has an absolute target %q", linkPath, linkname)
	}
	resolved := filepath.Join(filepath.Dir(linkPath), linkname)
	if resolved != destDir && !strings.HasPrefix(resolved, destDir+string(os.PathSeparator)) {
		return fmt.Errorf("symlink %q target %q escapes the destination", linkPath, linkname)
	}
	return nil
}

func writeFile(target string, content io.Reader, mode os.FileMode) error {
	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", target, err)
	}
	return nil
}
