package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-converter/internal/report"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the conversion modes",
	Long: `Modes lists each conversion mode with its label, accent, export
extension, and the fields its result reports. The configured mode is
marked with *.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		report.WriteModes(cmd.OutOrStdout(), cfg.Mode)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
}
