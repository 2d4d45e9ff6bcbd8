package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subscan/internal/project"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var srtPath string

	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Export a saved run as an SRT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if srtPath == "" {
				return fmt.Errorf("--srt output path is required")
			}
			return ctx.withStore(func(store *project.Store) error {
				cues, err := store.Cues(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := writeSRTFile(srtPath, cues); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cues to %s\n", len(cues), srtPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&srtPath, "srt", "o", "", "Output SRT file path")
	return cmd
}
