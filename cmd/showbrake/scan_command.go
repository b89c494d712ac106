package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"showbrake/internal/disc"
	"showbrake/internal/episode"
	"showbrake/internal/ripping"
)

type scanReport struct {
	Disc       *disc.Disc `json:"disc"`
	Suggestion string     `json:"suggestion"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan [volume]",
		Short: "Scan a disc and suggest episode descriptors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var volume string
			if len(args) == 1 {
				volume = args[0]
			}
			scanned, err := ctx.scanVolume(cmd.Context(), volume)
			if err != nil {
				return err
			}
			suggestion := episode.Suggest(scanned, ctx.segmentOptions())

			if jsonOutput {
				return writeJSON(cmd, scanReport{Disc: scanned, Suggestion: suggestion})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", scanned.Path, scanned.MediaType)
			if scanned.TitleCount() == 0 {
				fmt.Fprintln(out, "No titles found")
				return nil
			}
			fmt.Fprintln(out, ripping.RenderBreakdown(scanned))
			if strings.TrimSpace(suggestion) == "" {
				fmt.Fprintln(out, "No episode suggestion")
				return nil
			}
			fmt.Fprintf(out, "Suggested episodes: %s\n", suggestion)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the scanned disc as JSON")
	return cmd
}
