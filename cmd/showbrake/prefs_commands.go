package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"showbrake/internal/prefs"
)

func newPrefsCommand(ctx *commandContext) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or clear answers remembered from previous sessions",
	}
	prefsCmd.AddCommand(newPrefsShowCommand(ctx))
	prefsCmd.AddCommand(newPrefsResetCommand(ctx))
	return prefsCmd
}

func newPrefsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List remembered answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := prefs.Open(cmd.Context(), cfg.Paths.StateDir)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Entries(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No remembered answers")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				updated := ""
				if !entry.UpdatedAt.IsZero() {
					updated = entry.UpdatedAt.Local().Format(time.DateTime)
				}
				rows = append(rows, []string{string(entry.Key), entry.Value, updated})
			}
			fmt.Fprintln(out, renderTable([]string{"Key", "Value", "Updated"}, rows, nil))
			return nil
		},
	}
}

func newPrefsResetCommand(ctx *commandContext) *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget remembered answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if purge {
				if err := prefs.Purge(cfg.Paths.StateDir); err != nil {
					return err
				}
				fmt.Fprintln(out, "Preferences database removed")
				return nil
			}

			store, err := prefs.Open(cmd.Context(), cfg.Paths.StateDir)
			if err != nil {
				return err
			}
			defer store.Close()
			removed, err := store.Reset(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Cleared %d remembered answer(s)\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Delete the preferences database file instead of clearing rows")
	return cmd
}
