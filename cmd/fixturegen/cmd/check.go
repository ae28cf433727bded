package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/teranos/fixturegen/errors"
)

// CheckCmd validates corpus invariants without touching the disk.
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate corpus invariants without writing anything",
	Long: `Validate corpus invariants without writing anything.

Generation runs against a copy-on-write view of the base directory: files
already on disk are seen (and skipped) normally, but every write lands in
memory and is discarded. The invariant report is identical to what a real
run would produce.

Exit codes:
  0 - Invariants hold
  1 - Invariant mismatch or path collision

Examples:
  fixturegen check                   # Check all languages
  fixturegen check --lang go         # One language`,
	RunE: runCheck,
}

func init() {
	CheckCmd.Flags().StringVarP(&generateBaseDir, "base-dir", "d", "", "Directory holding the corpus roots (default from config)")
	CheckCmd.Flags().StringSliceVarP(&generateLangs, "lang", "l", nil, "Languages to check (default: all)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	// Reads hit the real tree, writes land in memory.
	fs := afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(afero.NewOsFs()), afero.NewMemMapFs())

	report, err := executeRun(cmd, fs)
	if err != nil {
		return err
	}

	if report.Passed() {
		pterm.Success.Printfln("✓ corpus invariants hold")
		return nil
	}

	for _, result := range report.Results {
		if result.Validation != nil {
			for _, failure := range result.Validation.Failures() {
				pterm.Error.Printfln("%s: %s (%s)", result.Language, failure.Label, failure.Detail)
			}
		}
		for _, msg := range result.Errors {
			pterm.Error.Printfln("%s: %s", result.Language, msg)
		}
	}
	return errors.New("corpus invariants failed")
}
