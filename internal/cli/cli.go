package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/gur-shatz/tessa/internal/digest"
)

// Command represents what tessa should do.
type Command int

const (
	CommandVerify      Command = iota // default: hash the file, compare if expected given
	CommandInit                       // generate tessa config file
	CommandAlgos                      // list supported algorithms
	CommandInteractive                // no file flag: prompt for inputs
)

// Config holds the parsed tessa invocation.
type Config struct {
	Command    Command
	FilePath   string
	Expected   string
	SumFile    string
	Algorithm  string
	Generate   bool
	ConfigFile string
	Quiet      bool
	NoColor    bool
	Verbose    bool
}

// Parse parses command-line arguments into a Config.
//
// Format:
//
//	tessa -f <file> [-e <hex> | --sum <manifest> | -g] [-a <algo>]
//	tessa init [-c <file>]
//	tessa algos
//	tessa
//
// Without -f (and without a subcommand) tessa falls back to the interactive
// prompt sequence.
func Parse(args []string) (Config, error) {
	cfg := Config{}

	fs := flag.NewFlagSet("tessa", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.FilePath, "f", "", "")
	fs.StringVar(&cfg.FilePath, "file", "", "")
	fs.StringVar(&cfg.Expected, "e", "", "")
	fs.StringVar(&cfg.Expected, "expected", "", "")
	fs.StringVar(&cfg.SumFile, "sum", "", "")
	fs.StringVar(&cfg.Algorithm, "a", "", "")
	fs.StringVar(&cfg.Algorithm, "algo", "", "")
	fs.BoolVar(&cfg.Generate, "g", false, "")
	fs.BoolVar(&cfg.Generate, "generate", false, "")
	fs.StringVar(&cfg.ConfigFile, "c", "", "")
	fs.StringVar(&cfg.ConfigFile, "config", "", "")
	fs.BoolVar(&cfg.Quiet, "q", false, "")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "")
	fs.BoolVar(&cfg.Verbose, "v", false, "")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "")

	fs.Usage = func() {
		fmt.Fprint(fs.Output(), Usage())
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			fmt.Print(Usage())
			return cfg, err
		}
		return cfg, err
	}

	remaining := fs.Args()

	if len(remaining) > 0 {
		switch remaining[0] {
		case "init":
			// Parse stops at the subcommand word, so flags written after
			// it ("tessa init -c my.yaml") are still unparsed here.
			if err := fs.Parse(remaining[1:]); err != nil {
				if err == flag.ErrHelp {
					fmt.Print(Usage())
				}
				return cfg, err
			}
			if extra := fs.Args(); len(extra) > 0 {
				return cfg, fmt.Errorf("unexpected argument %q after init", extra[0])
			}
			cfg.Command = CommandInit
			return cfg, nil
		case "algos":
			if len(remaining) > 1 {
				return cfg, fmt.Errorf("unexpected argument %q after algos", remaining[1])
			}
			cfg.Command = CommandAlgos
			return cfg, nil
		default:
			return cfg, fmt.Errorf("unknown subcommand %q\n\n%s", remaining[0], Usage())
		}
	}

	if err := validate(&cfg); err != nil {
		return cfg, err
	}

	if cfg.FilePath == "" {
		cfg.Command = CommandInteractive
		return cfg, nil
	}

	cfg.Command = CommandVerify
	return cfg, nil
}

// validate rejects flag combinations that cannot be satisfied.
func validate(cfg *Config) error {
	sources := 0
	if cfg.Expected != "" {
		sources++
	}
	if cfg.SumFile != "" {
		sources++
	}
	if cfg.Generate {
		sources++
	}
	if sources > 1 {
		return fmt.Errorf("-e, --sum and -g are mutually exclusive")
	}

	if cfg.FilePath == "" {
		// Scripted flags without a file make no sense; only a bare
		// invocation falls back to the interactive prompts.
		if cfg.Expected != "" || cfg.SumFile != "" || cfg.Generate || cfg.Algorithm != "" {
			return fmt.Errorf("-e, --sum, -g and -a require -f <file>")
		}
	}

	if cfg.Algorithm != "" && !digest.IsSupported(cfg.Algorithm) {
		return &digest.UnknownAlgorithmError{Name: cfg.Algorithm}
	}

	return nil
}

// Usage returns the help text for tessa.
func Usage() string {
	return `tessa - file digest verification

Usage:
  tessa -f <file> -e <hex>       Verify the file against an expected digest
  tessa -f <file> --sum <sums>   Verify against a checksum manifest entry
  tessa -f <file> -g             Print the file's digest (generate-only)
  tessa init [-c <file>]         Generate a default config file
  tessa algos                    List supported algorithms
  tessa                          Interactive prompt sequence

Flags:
  -f, --file <path>       File to hash
  -e, --expected <hex>    Expected digest (case-insensitive)
  --sum <manifest>        Checksum manifest to read the expected digest from
  -a, --algo <name>       Digest algorithm (default: sha256)
  -g, --generate          Generate-only, skip comparison
  -c, --config <file>     Config file path (default: tessa.yaml)
  -q, --quiet             Print the digest only, no banner or report
  --no-color              Disable ANSI colors
  -v, --verbose           Verbose output
  -h, --help              Show this help

Exit codes:
  0   Match, or successful generation
  1   Verified mismatch
  2   Operational error (bad file, unknown algorithm, malformed input)

Algorithms:
  ` + strings.Join(digest.Supported(), ", ") + `

Config file (tessa.yaml):
  defaults:
    algorithm: sha256
  output:
    color: auto            # auto | always | never
    mascot: true
`
}
