package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"showbrake/internal/episode"
	"showbrake/internal/ripping"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var show string
	var season int
	var firstEpisode int

	cmd := &cobra.Command{
		Use:   "plan <volume> <descriptor>...",
		Short: "Check episode descriptors against a disc and show the files they produce",
		Example: "  showbrake plan /Volumes/SHOW_S1_D1 1.1-3 1.4-6 --show \"The Show\" --season 2\n" +
			"  showbrake plan /Volumes/SHOW_S1_D1 \"2 3 4\"",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if season < 1 || firstEpisode < 1 {
				return errors.New("season and episode must be at least 1")
			}
			input := strings.Join(strings.Fields(strings.Join(args[1:], " ")), " ")

			scanned, err := ctx.scanVolume(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			descriptors, err := episode.ParseAndValidate(input, scanned)
			if err != nil {
				var rangeErr *episode.RangeError
				if errors.As(err, &rangeErr) {
					return fmt.Errorf("invalid descriptor %s: %s", rangeErr.Token, rangeErr.Reason)
				}
				return fmt.Errorf("invalid descriptors %q: %w", input, err)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			episodes := ripping.PlanEpisodes(scanned, descriptors, show, season, firstEpisode, cfg.Paths.OutputDir)
			fmt.Fprintln(cmd.OutOrStdout(), ripping.RenderPlan(episodes))
			return nil
		},
	}

	cmd.Flags().StringVar(&show, "show", "", "Show name used for file names")
	cmd.Flags().IntVar(&season, "season", 1, "Season number")
	cmd.Flags().IntVar(&firstEpisode, "episode", 1, "Number of the first episode")
	return cmd
}
