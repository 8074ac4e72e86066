package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gur-shatz/tessa/internal/cli"
	"github.com/gur-shatz/tessa/internal/color"
	"github.com/gur-shatz/tessa/internal/digest"
	"github.com/gur-shatz/tessa/internal/log"
	"github.com/gur-shatz/tessa/internal/prompt"
	"github.com/gur-shatz/tessa/pkg/config"
	"github.com/gur-shatz/tessa/pkg/tessa"
)

func main() {
	color.Init()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := cli.Parse(args)
	if err != nil {
		if err == flag.ErrHelp {
			return tessa.ExitOK
		}
		log.Error("%v", err)
		return tessa.ExitError
	}

	log.Init(cfg.Verbose)

	// The flag must take effect before any dispatch that prints.
	if cfg.NoColor {
		color.Force(false)
	}

	// init and algos need nothing from the config file.
	switch cfg.Command {
	case cli.CommandInit:
		if err := runInit(cfg.ConfigFile); err != nil {
			log.Error("%v", err)
			return tessa.ExitError
		}
		return tessa.ExitOK
	case cli.CommandAlgos:
		for _, name := range digest.Supported() {
			fmt.Println(name)
		}
		return tessa.ExitOK
	}

	settings, err := tessa.LoadSettings(cfg.ConfigFile)
	if err != nil {
		log.Error("%v", err)
		return tessa.ExitError
	}

	applyColorMode(cfg, settings)

	switch cfg.Command {
	case cli.CommandInteractive:
		if !prompt.IsInteractive() {
			fmt.Fprint(os.Stderr, cli.Usage())
			return tessa.ExitError
		}
		in, err := prompt.Gather(settings.Defaults.Algorithm)
		if err != nil {
			log.Error("%v", err)
			return tessa.ExitError
		}
		cfg.FilePath = in.FilePath
		cfg.Algorithm = in.Algorithm
		cfg.Expected = in.Expected
	}

	return verify(cfg, settings)
}

func verify(cfg cli.Config, settings tessa.Settings) int {
	req := tessa.Request{
		FilePath:  cfg.FilePath,
		Algorithm: cfg.Algorithm,
		Expected:  cfg.Expected,
		SumFile:   cfg.SumFile,
	}
	if req.Algorithm == "" {
		req.Algorithm = settings.Defaults.Algorithm
	}

	res, err := tessa.Run(req)
	if err != nil {
		log.Error("%v", err)
		return tessa.ExitCode(res, err)
	}

	render(res, cfg.Quiet, settings.Output.Mascot)
	return tessa.ExitCode(res, nil)
}

func render(res tessa.Result, quiet, mascot bool) {
	if quiet {
		fmt.Println(res.Digest)
		return
	}

	if mascot {
		fmt.Print(color.Cyan(tessa.Mascot))
	}

	log.Field("Algorithm", res.Algorithm)
	log.Field("File", res.FilePath)
	log.Field("Size", fmt.Sprintf("%d bytes", res.Size))
	if res.Expected != "" {
		log.Field("Expected", res.Expected)
	}
	log.Field("Actual", res.Digest)
	fmt.Println()

	switch res.Verdict {
	case tessa.VerdictMatch:
		log.Success("Hashes match. Integrity verified.")
	case tessa.VerdictMismatch:
		log.Fail("Hash mismatch. File may be corrupted or altered.")
	default:
		fmt.Println(res.SumLine())
	}
}

func runInit(configPath string) error {
	if configPath == "" {
		configPath = tessa.DefaultConfigFilename
	}
	configPath = config.ResolveYAMLPath(configPath)

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists (remove it first to regenerate)", configPath)
	}

	if err := os.WriteFile(configPath, []byte(tessa.DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("write %s: %w", configPath, err)
	}

	log.Success("Created %s", configPath)
	return nil
}

// applyColorMode reconciles the config's color setting with the --no-color
// flag. The flag always wins.
func applyColorMode(cfg cli.Config, settings tessa.Settings) {
	if cfg.NoColor {
		color.Force(false)
		return
	}
	switch settings.Output.Color {
	case "always":
		color.Force(true)
	case "never":
		color.Force(false)
	}
}
