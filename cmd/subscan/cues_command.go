package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subscan/internal/project"
	"subscan/internal/subtitles"
)

func newCuesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cues <run-id>",
		Short: "Show the cues recorded for a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *project.Store) error {
				cues, err := store.Cues(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(cues) == 0 {
					fmt.Fprintln(out, "Run has no cues.")
					return nil
				}

				rows := make([][]string, 0, len(cues))
				for _, cue := range cues {
					rows = append(rows, []string{
						strconv.Itoa(cue.Index),
						subtitles.FormatTimestamp(cue.StartMS),
						subtitles.FormatTimestamp(cue.EndMS),
						strings.ReplaceAll(cue.Text, "\n", " / "),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Start", "End", "Text"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}
