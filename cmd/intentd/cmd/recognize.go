package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/intentd/internal/app"
	"github.com/corey/intentd/internal/domain/entity"
	"github.com/corey/intentd/internal/domain/recognizer"
)

var (
	recognizeJSON      bool
	recognizeMode      string
	recognizeFuzzy     bool
	recognizeThreshold float64
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize [text...]",
	Short: "Recognize entities in a query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRecognize,
}

func init() {
	recognizeCmd.Flags().BoolVar(&recognizeJSON, "json", false, "emit the full result as JSON")
	recognizeCmd.Flags().StringVar(&recognizeMode, "mode", "longest", "overlap resolution: longest or priority")
	recognizeCmd.Flags().BoolVar(&recognizeFuzzy, "fuzzy", false, "enable fuzzy enhancement")
	recognizeCmd.Flags().Float64Var(&recognizeThreshold, "threshold", 0, "fuzzy confidence threshold (default 0.8)")
}

func runRecognize(cmd *cobra.Command, args []string) error {
	a, err := app.New(appConfig())
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer a.Stop()

	opts := recognizer.Options{Fuzzy: recognizeFuzzy, Threshold: recognizeThreshold}
	switch recognizeMode {
	case "longest":
	case "priority":
		opts.Mode = entity.ModePriority
	default:
		return fmt.Errorf("unknown mode %q", recognizeMode)
	}

	res := a.Recognizer.Recognize(strings.Join(args, " "), opts)
	if recognizeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Println(res.TaggedText)
	for _, e := range res.Entities {
		fmt.Printf("  %-13s %q", e.Type, e.Text)
		if e.Metadata.DisplayName != e.Text {
			fmt.Printf(" -> %s", e.Metadata.DisplayName)
		}
		fmt.Printf(" (%.2f, %s)\n", e.Confidence, e.Metadata.Source)
	}
	for _, s := range res.Suggestions {
		fmt.Printf("  did you mean %q for %q? (%.2f)\n", s.Candidate, s.Input, s.Confidence)
	}
	if res.Error != "" {
		fmt.Fprintf(os.Stderr, "error: %s\n", res.Error)
	}
	return nil
}
