package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// copyBufferSize bounds memory while streaming large files through the hash.
const copyBufferSize = 32 * 1024

// algorithms is the fixed registry of supported digest algorithms. The set
// is explicit rather than discovered so behavior is identical on every
// platform. Names are lowercase; Lookup folds case before matching.
var algorithms = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
	"sha3-256": func() hash.Hash {
		return sha3.New256()
	},
	"sha3-512": func() hash.Hash {
		return sha3.New512()
	},
	"blake2b-256": func() hash.Hash {
		h, _ := blake2b.New256(nil) // never fails with a nil key
		return h
	},
	"blake2b-512": func() hash.Hash {
		h, _ := blake2b.New512(nil)
		return h
	},
	"blake3": func() hash.Hash {
		return blake3.New()
	},
}

// Default is the algorithm used when none is configured.
const Default = "sha256"

// UnknownAlgorithmError is returned when an algorithm name is not in the registry.
type UnknownAlgorithmError struct {
	Name string
}

func (this *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported algorithm %q (supported: %s)", this.Name, strings.Join(Supported(), ", "))
}

// Supported returns the registered algorithm names, sorted.
func Supported() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupported reports whether name (case-insensitive) is a registered algorithm.
func IsSupported(name string) bool {
	_, ok := algorithms[strings.ToLower(name)]
	return ok
}

// New returns a fresh hash for the named algorithm.
func New(name string) (hash.Hash, error) {
	ctor, ok := algorithms[strings.ToLower(name)]
	if !ok {
		return nil, &UnknownAlgorithmError{Name: name}
	}
	return ctor(), nil
}

// Size returns the digest length in bytes for the named algorithm.
func Size(name string) (int, error) {
	h, err := New(name)
	if err != nil {
		return 0, err
	}
	return h.Size(), nil
}

// Sum streams r through the named algorithm and returns the lowercase hex digest.
func Sum(r io.Reader, algorithm string) (string, error) {
	h, err := New(algorithm)
	if err != nil {
		return "", err
	}

	buf := make([]byte, copyBufferSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// File computes the digest of the file at path with the named algorithm.
// The file is read once, in chunks, and closed before the digest is finalized.
func File(path, algorithm string) (string, error) {
	// Reject an unknown algorithm before touching the file.
	if _, err := New(algorithm); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sum, err := Sum(f, algorithm)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return sum, nil
}

// Match compares two hex digests case-insensitively, ignoring surrounding
// whitespace. It does not require either value to be well-formed hex.
func Match(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ValidHex reports whether s is a well-formed hex digest of the named
// algorithm's output size.
func ValidHex(s, algorithm string) bool {
	s = strings.TrimSpace(s)
	size, err := Size(algorithm)
	if err != nil {
		return false
	}
	if len(s) != size*2 {
		return false
	}
	_, err = hex.DecodeString(s)
	return err == nil
}
