package tessa

import (
	"fmt"
	"os"
	"strings"

	"github.com/gur-shatz/tessa/internal/digest"
	"github.com/gur-shatz/tessa/internal/sumfile"
)

// Exit codes for the tessa binary.
const (
	ExitOK       = 0 // match, or successful generation
	ExitMismatch = 1 // verified mismatch
	ExitError    = 2 // operational error
)

// Verdict is the outcome of a single invocation.
type Verdict int

const (
	VerdictGenerated Verdict = iota // no expected value, digest printed
	VerdictMatch
	VerdictMismatch
)

func (this Verdict) String() string {
	switch this {
	case VerdictGenerated:
		return "generated"
	case VerdictMatch:
		return "match"
	case VerdictMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Request describes one digest computation or verification.
type Request struct {
	FilePath  string
	Algorithm string // empty: digest.Default
	Expected  string // expected hex digest; empty means generate-only
	SumFile   string // checksum manifest to read Expected from instead
}

// Result is the outcome of a Request.
type Result struct {
	FilePath  string
	Algorithm string
	Digest    string // computed, lowercase hex
	Expected  string // resolved expected value, if any
	Size      int64  // file size in bytes
	Verdict   Verdict
}

// Run computes the digest of the requested file and, when an expected value
// is available, compares the two case-insensitively. The file is read once;
// nothing is retried or persisted.
func Run(req Request) (Result, error) {
	res := Result{
		FilePath:  req.FilePath,
		Algorithm: strings.ToLower(req.Algorithm),
	}
	if res.Algorithm == "" {
		res.Algorithm = digest.Default
	}
	if !digest.IsSupported(res.Algorithm) {
		return res, &digest.UnknownAlgorithmError{Name: req.Algorithm}
	}

	expected := strings.TrimSpace(req.Expected)
	if req.SumFile != "" {
		found, err := sumfile.Lookup(req.SumFile, req.FilePath)
		if err != nil {
			return res, err
		}
		expected = strings.TrimSpace(found)
	}

	// Reject a malformed expected value before hashing anything.
	if expected != "" && !digest.ValidHex(expected, res.Algorithm) {
		return res, fmt.Errorf("expected value %q is not a valid %s digest", expected, res.Algorithm)
	}
	res.Expected = expected

	info, err := os.Stat(req.FilePath)
	if err != nil {
		return res, fmt.Errorf("stat %s: %w", req.FilePath, err)
	}
	if info.IsDir() {
		return res, fmt.Errorf("%s is a directory, not a file", req.FilePath)
	}
	res.Size = info.Size()

	sum, err := digest.File(req.FilePath, res.Algorithm)
	if err != nil {
		return res, err
	}
	res.Digest = sum

	switch {
	case expected == "":
		res.Verdict = VerdictGenerated
	case digest.Match(sum, expected):
		res.Verdict = VerdictMatch
	default:
		res.Verdict = VerdictMismatch
	}
	return res, nil
}

// ExitCode maps a Result and error to the process exit code.
func ExitCode(res Result, err error) int {
	if err != nil {
		return ExitError
	}
	if res.Verdict == VerdictMismatch {
		return ExitMismatch
	}
	return ExitOK
}

// SumLine renders the result as a checksum-manifest-compatible line.
func (this Result) SumLine() string {
	return sumfile.FormatEntry(this.Digest, this.FilePath)
}

// Mascot is the banner printed before the report.
const Mascot = `
 (\_/)
 ( ^_^)
 / >🥕   Tessa is checking your file...
`
