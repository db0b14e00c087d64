package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AnyUserName/altprint-cli/internal/fingerprint"
	"github.com/AnyUserName/altprint-cli/internal/library"
)

var (
	requestLang   string
	requestIndent bool

	reportAuthor string
	reportSHA256 string
	reportReason string
)

var requestCmd = &cobra.Command{
	Use:   "request <image>",
	Short: "Print the alt-library search request body for an image",
	Long: `Fingerprints the image with the alt-text-org profile and prints
{"searches": {"sha256": ..., "dct": [...]}, "language": ...}
ready to POST to the library's fetch endpoint.`,
	Args: cobra.ExactArgs(1),
	RunE: runRequest,
}

var reportRequestCmd = &cobra.Command{
	Use:   "report-request",
	Short: "Print the body for reporting a library entry",
	Args:  cobra.NoArgs,
	RunE:  runReportRequest,
}

func init() {
	requestCmd.Flags().StringVarP(&requestLang, "lang", "l", library.DefaultLanguage, "description language")
	requestCmd.Flags().BoolVar(&requestIndent, "indent", false, "pretty-print the JSON")
	rootCmd.AddCommand(requestCmd)

	reportRequestCmd.Flags().StringVar(&reportAuthor, "author", "", "author uuid of the entry (required)")
	reportRequestCmd.Flags().StringVar(&reportSHA256, "sha256", "", "digest the entry is stored under (required)")
	reportRequestCmd.Flags().StringVar(&reportReason, "reason", "", "why the entry is wrong (required)")
	reportRequestCmd.Flags().StringVarP(&requestLang, "lang", "l", library.DefaultLanguage, "description language")
	reportRequestCmd.Flags().BoolVar(&requestIndent, "indent", false, "pretty-print the JSON")
	rootCmd.AddCommand(reportRequestCmd)
}

func runRequest(cmd *cobra.Command, args []string) error {
	fp, err := fingerprintFile(cmd, args[0], fingerprint.DefaultParams)
	if err != nil {
		return err
	}
	req, err := library.NewSearch(fp, requestLang)
	if err != nil {
		return err
	}
	return writeJSON(cmd, req, requestIndent)
}

func runReportRequest(cmd *cobra.Command, _ []string) error {
	req, err := library.NewReport(reportAuthor, reportSHA256, requestLang, reportReason)
	if err != nil {
		return err
	}
	return writeJSON(cmd, req, requestIndent)
}
