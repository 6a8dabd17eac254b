package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// BackupTimestampLayout names backup files down to the second.
const BackupTimestampLayout = "20060102-150405"

// BackupFile copies src to a timestamped sibling (src.bak-20060102-150405)
// and verifies the copy before reporting success. It returns the backup path.
func BackupFile(src string) (string, error) {
	dst := src + ".bak-" + time.Now().UTC().Format(BackupTimestampLayout)
	if err := CopyFileVerified(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// CopyFileVerified streams src to dst, then re-reads dst from disk and
// compares size and SHA256 against what was written. The check covers the
// bytes that actually landed, not the buffer that was sent. dst is removed
// on any mismatch.
func CopyFileVerified(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	hasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(out, hasher), in)
	if err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("close %s: %w", dst, err)
	}

	sum, size, err := hashFile(dst)
	if err != nil {
		_ = os.Remove(dst)
		return err
	}
	if size != written {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: wrote %d bytes, read back %d", written, size)
	}
	if !bytes.Equal(sum, hasher.Sum(nil)) {
		_ = os.Remove(dst)
		return errors.New("copy hash mismatch: file corrupted during copy")
	}
	return nil
}

func hashFile(path string) ([]byte, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reopen %s: %w", path, err)
	}
	defer f.Close()

	hasher := sha256.New()
	size, err := io.Copy(hasher, f)
	if err != nil {
		return nil, 0, fmt.Errorf("hash %s: %w", path, err)
	}
	return hasher.Sum(nil), size, nil
}
