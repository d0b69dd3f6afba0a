//go:build integration

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2"
)

// buildBinary compiles crate into a temp dir and returns its path
func buildBinary(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "crate_test")
	buildCmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\n%s", err, out)
	}
	return bin
}

// isolatedEnv returns an environment with no crate settings and HOME in a temp dir
func isolatedEnv(t *testing.T) []string {
	t.Helper()
	return []string{"HOME=" + t.TempDir(), "PATH=" + os.Getenv("PATH")}
}

// TestTagCommand tags a file end to end through the CLI
func TestTagCommand(t *testing.T) {
	bin := buildBinary(t)
	dir := t.TempDir()

	mp3 := filepath.Join(dir, "Song.mp3")
	if err := os.WriteFile(mp3, append([]byte{0xff, 0xfb, 0x90, 0x64}, make([]byte, 60)...), 0644); err != nil {
		t.Fatal(err)
	}
	lyrics := filepath.Join(dir, "Song_lyrics.txt")
	if err := os.WriteFile(lyrics, []byte("words"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.Command(bin, "tag", mp3, "--title", "Song", "--artist", "Band", "--lyrics", lyrics)
	cmd.Dir = dir
	cmd.Env = isolatedEnv(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("tag command failed: %v\n%s", err, out)
	}

	tag, err := id3v2.Open(mp3, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("failed to open tag: %v", err)
	}
	defer tag.Close()

	if tag.Title() != "Song" || tag.Artist() != "Band" {
		t.Errorf("got %q by %q", tag.Title(), tag.Artist())
	}
	if n := len(tag.GetFrames(tag.CommonID("Unsynchronised lyrics/text transcription"))); n != 1 {
		t.Errorf("expected 1 lyrics frame, got %d", n)
	}
}

// TestRunRequiresConfig checks that run refuses to start without a music dir
func TestRunRequiresConfig(t *testing.T) {
	bin := buildBinary(t)

	cmd := exec.Command(bin, "run")
	cmd.Dir = t.TempDir()
	cmd.Env = isolatedEnv(t)
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected run to fail without configuration, got:\n%s", output)
	}
	if !strings.Contains(string(output), "output directory is not configured") {
		t.Errorf("unexpected output:\n%s", output)
	}
}

// TestRunRejectsPlaceholderDir checks the sample .env value is not accepted
func TestRunRejectsPlaceholderDir(t *testing.T) {
	bin := buildBinary(t)
	dir := t.TempDir()

	env := "NAVIDROME_MUSIC_DIR=/path/to/your/navidrome/music\n" +
		"LASTFM_USERNAME=user\nLASTFM_PASSWORD=pass\nGENIUS_API_KEY=key\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.Command(bin, "run")
	cmd.Dir = dir
	cmd.Env = isolatedEnv(t)
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected run to fail with placeholder dir, got:\n%s", output)
	}
	if strings.Contains(string(output), "username and password") {
		t.Errorf("credentials from .env were not loaded:\n%s", output)
	}
}

// TestVersionFlag checks the binary starts at all
func TestVersionFlag(t *testing.T) {
	bin := buildBinary(t)

	output, err := exec.Command(bin, "--version").CombinedOutput()
	if err != nil {
		t.Fatalf("--version failed: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "crate version") {
		t.Errorf("unexpected version output: %s", output)
	}
}
