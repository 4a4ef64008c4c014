package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/intentd/internal/app"
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Show artifact provenance and cache state",
	RunE:  runArtifacts,
}

func runArtifacts(cmd *cobra.Command, args []string) error {
	a, err := app.New(appConfig())
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer a.Stop()

	st := a.ArtifactStatus()
	fmt.Printf("source:   %s\n", st.Source)
	fmt.Printf("patterns: %d\n", st.Recognizer.Patterns)
	if st.Cache != nil {
		fmt.Printf("cache:    present=%t fresh=%t size=%dB\n", st.Cache.Present, st.Cache.Fresh, st.Cache.SizeBytes)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(st.Updates)
}
