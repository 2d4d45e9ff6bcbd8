package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"subscan/internal/project"
	"subscan/internal/qc"
	"subscan/internal/subtitles"
)

func newQCCommand(ctx *commandContext) *cobra.Command {
	var srtPath string

	cmd := &cobra.Command{
		Use:   "qc [run-id]",
		Short: "Check cues against readability and timing limits",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var cues []subtitles.Cue
			switch {
			case srtPath != "":
				file, err := os.Open(srtPath)
				if err != nil {
					return fmt.Errorf("open srt file: %w", err)
				}
				defer file.Close()
				cues, err = subtitles.ReadSRT(file)
				if err != nil {
					return err
				}
			case len(args) == 1:
				err := ctx.withStore(func(store *project.Store) error {
					loaded, err := store.Cues(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					cues = loaded
					return nil
				})
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("provide a run id or --srt file")
			}

			issues := qc.Check(cues, cfg.QCLimits())
			out := cmd.OutOrStdout()
			if len(issues) == 0 {
				fmt.Fprintf(out, "No issues in %d cues.\n", len(cues))
				return nil
			}

			rows := make([][]string, 0, len(issues))
			for _, issue := range issues {
				rows = append(rows, []string{
					strconv.Itoa(issue.CueIndex),
					string(issue.Severity),
					issue.Rule,
					issue.Message,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Cue", "Severity", "Rule", "Message"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d issues in %d cues.\n", len(issues), len(cues))
			return nil
		},
	}

	cmd.Flags().StringVar(&srtPath, "srt", "", "Check an SRT file instead of a saved run")
	return cmd
}
