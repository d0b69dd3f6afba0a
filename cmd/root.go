/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var (
	logFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crate",
	Short: "Download your Last.fm recommendations into a music library",
	Long: `crate fills a music library with the tracks Last.fm recommends to you.

It logs into Last.fm in a browser driven over WebDriver, reads the
recommended tracks feed, downloads each track's audio with yt-dlp, looks
up cover art and lyrics on Genius, and writes ID3 tags into the MP3s.

Configuration is read from ~/.config/crate/config.yaml, a .env file in the
working directory, and the environment (NAVIDROME_MUSIC_DIR,
LASTFM_USERNAME, LASTFM_PASSWORD, GENIUS_API_KEY, ...).`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}
