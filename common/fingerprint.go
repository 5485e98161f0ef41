package common

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"gocloud.dev/blob"
)

// FingerprintFile generates a SHA-1 hash of a file stored in a blob.Bucket instance. Fingerprints
// are used to skip photographs that have already been converted in a given run.
func FingerprintFile(ctx context.Context, bucket *blob.Bucket, path string) (string, error) {

	fh, err := bucket.NewReader(ctx, path, nil)

	if err != nil {
		return "", fmt.Errorf("Failed to open %s for reading, %w", path, err)
	}

	defer fh.Close()

	return fingerprint(fh)
}

// HashFile generates a SHA-1 hash of a file on the local filesystem.
func HashFile(path string) (string, error) {

	fh, err := os.Open(path)

	if err != nil {
		return "", err
	}

	defer fh.Close()

	return fingerprint(fh)
}

func fingerprint(fh io.Reader) (string, error) {

	// h := sha256.New()
	h := sha1.New()

	_, err := io.Copy(h, fh)

	if err != nil {
		return "", err
	}

	hash := h.Sum(nil)
	return hex.EncodeToString(hash[:]), nil
}
