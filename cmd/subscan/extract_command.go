package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"subscan/internal/extractor"
	"subscan/internal/ocr"
	"subscan/internal/project"
	"subscan/internal/subtitles"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var videoPath string
	var srtPath string
	var save bool

	cmd := &cobra.Command{
		Use:   "extract <detections.jsonl>",
		Short: "Run the cue pipeline over per-frame OCR detections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			frames, err := ocr.ReadFramesFile(args[0])
			if err != nil {
				return err
			}

			opts := extractor.Options{
				Segment: cfg.SegmentOptions(),
				Cluster: cfg.ClusterConfig(),
			}
			result, err := extractor.Run(frames, opts, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Frames: %d  Candidates: %d  Cues: %d\n",
				result.FrameCount, result.CandidateCount, len(result.Cues))

			if srtPath != "" {
				if err := writeSRTFile(srtPath, result.Cues); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", srtPath)
			}

			if save {
				video := strings.TrimSpace(videoPath)
				if video == "" {
					video = args[0]
				}
				return ctx.withStore(func(store *project.Store) error {
					run, err := store.SaveRun(cmd.Context(), video, result.Cues)
					if err != nil {
						return fmt.Errorf("save run: %w", err)
					}
					fmt.Fprintf(out, "Saved run %s\n", run.ID)
					return nil
				})
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&videoPath, "video", "", "Source video path recorded with the run")
	cmd.Flags().StringVarP(&srtPath, "srt", "o", "", "Write the cues to this SRT file")
	cmd.Flags().BoolVar(&save, "save", false, "Record the run in the local store")
	return cmd
}

func writeSRTFile(path string, cues []subtitles.Cue) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create srt file: %w", err)
	}
	defer file.Close()
	if err := subtitles.WriteSRT(file, cues); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close srt file: %w", err)
	}
	return nil
}
