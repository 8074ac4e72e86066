package tessa_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gur-shatz/tessa/internal/sumfile"
	"github.com/gur-shatz/tessa/pkg/tessa"
)

var _ = Describe("Tessa", func() {
	var tmpDir string

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	write := func(name string, content []byte) string {
		path := filepath.Join(tmpDir, name)
		Expect(os.WriteFile(path, content, 0644)).To(Succeed())
		return path
	}

	Describe("Run", func() {
		It("generates a digest when no expected value is given", func() {
			path := write("release.bin", []byte("payload"))
			res, err := tessa.Run(tessa.Request{FilePath: path})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Verdict).To(Equal(tessa.VerdictGenerated))
			Expect(res.Algorithm).To(Equal("sha256"))
			Expect(res.Digest).To(MatchRegexp("^[0-9a-f]{64}$"))
			Expect(res.Size).To(Equal(int64(len("payload"))))
		})

		It("matches when the generated digest is fed back as expected", func() {
			path := write("release.bin", []byte("payload"))
			first, err := tessa.Run(tessa.Request{FilePath: path})
			Expect(err).NotTo(HaveOccurred())

			second, err := tessa.Run(tessa.Request{FilePath: path, Expected: first.Digest})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Verdict).To(Equal(tessa.VerdictMatch))
			Expect(tessa.ExitCode(second, nil)).To(Equal(tessa.ExitOK))
		})

		It("matches an uppercase expected value", func() {
			path := write("release.bin", []byte("payload"))
			first, err := tessa.Run(tessa.Request{FilePath: path})
			Expect(err).NotTo(HaveOccurred())

			second, err := tessa.Run(tessa.Request{FilePath: path, Expected: strings.ToUpper(first.Digest)})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Verdict).To(Equal(tessa.VerdictMatch))
		})

		It("reports a mismatch after the file changes", func() {
			path := write("release.bin", []byte("payload"))
			first, err := tessa.Run(tessa.Request{FilePath: path})
			Expect(err).NotTo(HaveOccurred())

			Expect(os.WriteFile(path, []byte("qayload"), 0644)).To(Succeed())
			second, err := tessa.Run(tessa.Request{FilePath: path, Expected: first.Digest})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Verdict).To(Equal(tessa.VerdictMismatch))
			Expect(tessa.ExitCode(second, nil)).To(Equal(tessa.ExitMismatch))
		})

		It("rejects a malformed expected value without hashing", func() {
			path := write("release.bin", []byte("payload"))
			_, err := tessa.Run(tessa.Request{FilePath: path, Expected: "not-hex"})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("not a valid"))
		})

		It("rejects an unknown algorithm", func() {
			path := write("release.bin", []byte("payload"))
			res, err := tessa.Run(tessa.Request{FilePath: path, Algorithm: "rot13"})
			Expect(err).To(HaveOccurred())
			Expect(tessa.ExitCode(res, err)).To(Equal(tessa.ExitError))
		})

		It("rejects a nonexistent file", func() {
			res, err := tessa.Run(tessa.Request{FilePath: filepath.Join(tmpDir, "nope.bin")})
			Expect(err).To(HaveOccurred())
			Expect(tessa.ExitCode(res, err)).To(Equal(tessa.ExitError))
		})

		It("rejects a directory", func() {
			res, err := tessa.Run(tessa.Request{FilePath: tmpDir})
			Expect(err).To(HaveOccurred())
			Expect(tessa.ExitCode(res, err)).To(Equal(tessa.ExitError))
		})

		It("resolves the expected value from a checksum manifest", func() {
			path := write("release.bin", []byte("payload"))
			first, err := tessa.Run(tessa.Request{FilePath: path})
			Expect(err).NotTo(HaveOccurred())

			manifest := write("sums.txt", []byte(sumfile.FormatEntry(first.Digest, "release.bin")+"\n"))
			second, err := tessa.Run(tessa.Request{FilePath: path, SumFile: manifest})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Verdict).To(Equal(tessa.VerdictMatch))
		})

		It("fails when the manifest has no entry for the file", func() {
			path := write("release.bin", []byte("payload"))
			manifest := write("sums.txt", []byte("aabbcc  other.bin\n"))
			_, err := tessa.Run(tessa.Request{FilePath: path, SumFile: manifest})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SumLine", func() {
		It("renders digest and path", func() {
			path := write("release.bin", []byte("payload"))
			res, err := tessa.Run(tessa.Request{FilePath: path})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.SumLine()).To(Equal(res.Digest + "  " + path))
		})
	})

	Describe("LoadSettings", func() {
		It("returns built-in defaults when no config exists", func() {
			settings, err := tessa.LoadSettings(filepath.Join(tmpDir, "absent.yaml"))
			// Explicit path that doesn't exist is an error; the defaults
			// still come back populated for the caller's error report.
			Expect(err).To(HaveOccurred())
			Expect(settings.Defaults.Algorithm).To(Equal("sha256"))
		})

		It("overlays config values on the defaults", func() {
			path := filepath.Join(tmpDir, "tessa.yaml")
			Expect(os.WriteFile(path, []byte("defaults:\n  algorithm: blake3\noutput:\n  mascot: false\n"), 0644)).To(Succeed())

			settings, err := tessa.LoadSettings(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(settings.Defaults.Algorithm).To(Equal("blake3"))
			Expect(settings.Output.Mascot).To(BeFalse())
			Expect(settings.Output.Color).To(Equal("auto"))
		})

		It("rejects an invalid color mode", func() {
			path := filepath.Join(tmpDir, "tessa.yaml")
			Expect(os.WriteFile(path, []byte("output:\n  color: rainbow\n"), 0644)).To(Succeed())

			_, err := tessa.LoadSettings(path)
			Expect(err).To(HaveOccurred())
		})

		It("rejects an unknown default algorithm", func() {
			path := filepath.Join(tmpDir, "tessa.yaml")
			Expect(os.WriteFile(path, []byte("defaults:\n  algorithm: rot13\n"), 0644)).To(Succeed())

			_, err := tessa.LoadSettings(path)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("rot13"))
		})
	})
})
