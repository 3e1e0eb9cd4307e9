package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/glint-vision/chromafind/internal/detector"
	"github.com/glint-vision/chromafind/internal/utils"
)

const (
	outputFormatJSON = "json"
	outputFormatText = "text"
)

// detectCmd represents the detect command.
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect circular color markers in image files",
	Long: `Run marker detection on one or more image files.

Supported formats: JPEG, PNG, BMP, TIFF

Examples:
  chromafind detect frame.png
  chromafind detect *.jpg --format json
  chromafind detect frame.png --overlay annotated.png --draw-rejected`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}

		cfg := GetConfig()

		format := cfg.Output.Format
		outputFile := cfg.Output.File
		overlayPath := cfg.Output.OverlayPath
		maxPoints := cfg.Output.MaxPoints

		if format != outputFormatText && format != outputFormatJSON {
			return fmt.Errorf("invalid output format: %s (must be one of: %s)",
				format, strings.Join([]string{outputFormatText, outputFormatJSON}, ", "))
		}
		if maxPoints < 0 {
			return fmt.Errorf("invalid max points: %d (must be >= 0)", maxPoints)
		}
		if overlayPath != "" && len(args) > 1 {
			return errors.New("--overlay works with a single input file")
		}

		detection := cfg.Detection
		if drawRejected, _ := cmd.Flags().GetBool("draw-rejected"); drawRejected {
			detection.Debug.DrawRejected = true
		}

		finder, err := detector.NewFinder(detection)
		if err != nil {
			return fmt.Errorf("invalid detection configuration: %w", err)
		}

		var out strings.Builder
		for _, path := range args {
			if !utils.IsSupportedImage(path) {
				return fmt.Errorf("unsupported image file: %s", path)
			}

			img, meta, err := utils.LoadImage(path)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", path, err)
			}

			result, err := finder.Find(img)
			if err != nil {
				return fmt.Errorf("detection failed for %s: %w", path, err)
			}

			if overlayPath != "" {
				debug := detector.RenderDebug(img, result, detection.Debug)
				if debug == nil {
					return fmt.Errorf("overlay rendering failed for %s", path)
				}
				if err := utils.SaveImage(debug.Overlay, overlayPath); err != nil {
					return fmt.Errorf("failed to write overlay: %w", err)
				}
			}

			switch format {
			case outputFormatJSON:
				if err := appendJSONResult(&out, result, meta.Width, meta.Height, maxPoints); err != nil {
					return err
				}
			default:
				appendTextResult(&out, path, result, maxPoints)
			}
		}

		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(out.String()), 0o600); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out.String())
		return err
	},
}

// appendJSONResult serializes one run, trimming accepted centers to the
// configured cap.
func appendJSONResult(out *strings.Builder, result *detector.RunResult, width, height, maxPoints int) error {
	payload, err := result.ToJSON(width, height)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if maxPoints > 0 {
		var doc detector.RunResultJSON
		if err := json.Unmarshal(payload, &doc); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		if len(doc.AcceptedCenters) > maxPoints {
			doc.AcceptedCenters = doc.AcceptedCenters[:maxPoints]
		}
		payload, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}
	out.Write(payload)
	out.WriteString("\n")
	return nil
}

// appendTextResult writes the human-readable summary for one frame.
func appendTextResult(out *strings.Builder, path string, result *detector.RunResult, maxPoints int) {
	fmt.Fprintf(out, "%s: %d accepted / %d candidates (score %.3f, coverage %.4f)\n",
		path, result.AcceptedCount, result.RawCandidateCount, result.Score, result.SceneMaskCoverage)

	emitted := 0
	for _, det := range result.Detections {
		if maxPoints > 0 && emitted >= maxPoints {
			break
		}
		state := "accepted"
		if !det.Metrics.Accepted {
			state = "rejected"
		}
		fmt.Fprintf(out, "  (%d,%d) r=%.1f score=%.3f circ=%.3f fill=%.3f ring=%.3f %s\n",
			det.Center.X, det.Center.Y, det.Radius,
			det.Metrics.Score, det.Metrics.Circularity, det.Metrics.CenterFillRatio,
			det.Metrics.RingSupportRatio, state)
		emitted++
	}
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringP("format", "f", "text", "output format (text, json)")
	detectCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	detectCmd.Flags().String("overlay", "", "write an annotated overlay image to this path")
	detectCmd.Flags().Int("max-points", 0, "cap emitted detections and centers (0 = all)")
	detectCmd.Flags().Bool("draw-rejected", false, "include rejected candidates in the overlay")

	_ = viper.BindPFlag("output.format", detectCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.file", detectCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("output.overlay_path", detectCmd.Flags().Lookup("overlay"))
	_ = viper.BindPFlag("output.max_points", detectCmd.Flags().Lookup("max-points"))
}
