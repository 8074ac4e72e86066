package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/gur-shatz/tessa/internal/digest"
)

// Inputs are the values gathered from an interactive session.
type Inputs struct {
	FilePath  string
	Algorithm string
	Expected  string // empty means generate-only
}

// IsInteractive reports whether stdin is a terminal, i.e. whether falling
// back to the prompt sequence makes sense.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ErrAborted is returned when the user cancels the prompt sequence.
var ErrAborted = errors.New("aborted")

// Gather runs the interactive prompt sequence: file path (with filesystem
// completion), algorithm (empty accepts the default), expected digest
// (empty means generate-only). ^C or EOF aborts with ErrAborted.
func Gather(defaultAlgorithm string) (Inputs, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "file> ",
		AutoComplete:    &pathCompleter{},
		InterruptPrompt: "^C",
	})
	if err != nil {
		return Inputs{}, fmt.Errorf("open terminal: %w", err)
	}
	defer rl.Close()

	var in Inputs

	for in.FilePath == "" {
		line, err := readLine(rl, "file> ")
		if err != nil {
			return Inputs{}, err
		}
		in.FilePath = strings.TrimSpace(line)
	}

	for {
		line, err := readLine(rl, fmt.Sprintf("algorithm [%s]> ", defaultAlgorithm))
		if err != nil {
			return Inputs{}, err
		}
		name := strings.TrimSpace(line)
		if name == "" {
			in.Algorithm = defaultAlgorithm
			break
		}
		if digest.IsSupported(name) {
			in.Algorithm = name
			break
		}
		fmt.Printf("unsupported algorithm %q (supported: %s)\n", name, strings.Join(digest.Supported(), ", "))
	}

	line, err := readLine(rl, "expected digest (empty to generate)> ")
	if err != nil {
		return Inputs{}, err
	}
	in.Expected = strings.TrimSpace(line)

	return in, nil
}

func readLine(rl *readline.Instance, promptText string) (string, error) {
	rl.SetPrompt(promptText)
	line, err := rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return line, nil
}

// pathCompleter completes filesystem paths for the file prompt.
type pathCompleter struct{}

func (this *pathCompleter) Do(line []rune, pos int) ([][]rune, int) {
	word := string(line[:pos])
	if i := strings.LastIndexAny(word, " \t"); i >= 0 {
		word = word[i+1:]
	}
	return Complete(word)
}

// Complete returns the completion suffixes for a partial path and the length
// of the prefix being completed. Directories gain a trailing separator.
func Complete(partial string) ([][]rune, int) {
	dir, base := filepath.Split(partial)
	scanDir := dir
	if scanDir == "" {
		scanDir = "."
	}

	entries, err := os.ReadDir(scanDir)
	if err != nil {
		return nil, len(base)
	}

	var candidates [][]rune
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		suffix := name[len(base):]
		if entry.IsDir() {
			suffix += string(os.PathSeparator)
		}
		candidates = append(candidates, []rune(suffix))
	}
	return candidates, len(base)
}
