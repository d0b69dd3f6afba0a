package cmd

import (
	"fmt"

	"github.com/jfmyers9/crate/internal/config"
	"github.com/jfmyers9/crate/internal/tagger"
	"github.com/spf13/cobra"
)

// tagCmd represents the tag command
var tagCmd = &cobra.Command{
	Use:   "tag FILE",
	Short: "Write ID3 tags into an MP3",
	Long: `Write title, artist and optionally album, cover art and lyrics into an
MP3 file in place, exactly as the run command does after a download.

Existing cover and lyrics frames are replaced unless tags.append_frames
is set in the config (or CRATE_TAGS_APPEND=true).`,
	Args: cobra.ExactArgs(1),
	RunE: runTag,
}

func init() {
	rootCmd.AddCommand(tagCmd)

	tagCmd.Flags().String("title", "", "Track title (required)")
	tagCmd.Flags().String("artist", "", "Track artist (required)")
	tagCmd.Flags().String("album", "", "Album title")
	tagCmd.Flags().String("cover", "", "Path to a JPEG cover image")
	tagCmd.Flags().String("lyrics", "", "Path to a lyrics text file")
	_ = tagCmd.MarkFlagRequired("title")
	_ = tagCmd.MarkFlagRequired("artist")
}

func runTag(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	tags := tagger.Tags{}
	tags.Title, _ = cmd.Flags().GetString("title")
	tags.Artist, _ = cmd.Flags().GetString("artist")
	tags.Album, _ = cmd.Flags().GetString("album")
	tags.CoverPath, _ = cmd.Flags().GetString("cover")
	tags.LyricsPath, _ = cmd.Flags().GetString("lyrics")

	path := args[0]
	if err := tagger.New(tagger.Config{AppendFrames: cfg.Tags.AppendFrames}).Write(path, tags); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Tagged %s\n", path)
	return nil
}
