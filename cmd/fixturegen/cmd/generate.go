package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/teranos/fixturegen/corpus"
	"github.com/teranos/fixturegen/errors"
	"github.com/teranos/fixturegen/webapp"
)

var (
	generateBaseDir  string
	generateLangs    []string
	generateParallel bool
	generateFormat   string
)

// GenerateCmd emits the corpus to disk.
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Emit the benchmark corpus for the selected languages",
	Long: `Emit the benchmark corpus for the selected languages.

Each language gets its own root directory (webapp_go, webapp_py, ...) under
the base directory. Files already on disk are never touched; re-running
against a populated tree is a no-op.

Examples:
  fixturegen generate                        # All languages into ./
  fixturegen generate --lang go,ruby         # Two languages
  fixturegen generate --base-dir fixtures/   # Custom corpus location
  fixturegen generate --format yaml          # Machine-readable report`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateBaseDir, "base-dir", "d", "", "Directory holding the corpus roots (default from config)")
	GenerateCmd.Flags().StringSliceVarP(&generateLangs, "lang", "l", nil, "Languages to generate (default: all)")
	GenerateCmd.Flags().BoolVar(&generateParallel, "parallel", false, "One worker per language")
	GenerateCmd.Flags().StringVar(&generateFormat, "format", "", "Report format: text, json, yaml (default from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	report, err := executeRun(cmd, afero.NewOsFs())
	if err != nil {
		return err
	}

	if err := renderReport(cmd, report); err != nil {
		return err
	}
	if !report.Passed() {
		return errors.New("corpus invariants failed; see report")
	}
	return nil
}

// executeRun resolves config and flags, then runs generation over fs.
func executeRun(cmd *cobra.Command, fs afero.Fs) (*corpus.RunReport, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	baseDir := cfg.BaseDir
	if generateBaseDir != "" {
		baseDir = generateBaseDir
	}
	langs := cfg.Languages
	if len(generateLangs) > 0 {
		langs = generateLangs
	}

	emitters, err := corpus.EmittersFor(langs)
	if err != nil {
		return nil, err
	}

	runner := &corpus.Runner{
		Registry: webapp.NewRegistry(),
		Fs:       fs,
		BaseDir:  baseDir,
		MinFanIn: cfg.Generation.MinFanIn,
		Parallel: cfg.Generation.Parallel || generateParallel,
	}
	return runner.Run(cmd.Context(), emitters)
}

// renderReport prints the run report in the configured format.
func renderReport(cmd *cobra.Command, report *corpus.RunReport) error {
	format := generateFormat
	if format == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		format = cfg.Report.Format
	}

	switch format {
	case "json":
		return report.EncodeJSON(os.Stdout)
	case "yaml":
		return report.EncodeYAML(os.Stdout)
	case "", "text":
		renderTextReport(report)
		return nil
	default:
		return errors.Newf("unknown report format %q (supported: text, json, yaml)", format)
	}
}

func renderTextReport(report *corpus.RunReport) {
	rows := pterm.TableData{
		{"Language", "Root", "Written", "Skipped", "Collisions", "Invariants"},
	}
	for _, result := range report.Results {
		status := pterm.Green("ok")
		if !result.Passed() {
			status = pterm.Red("FAIL")
		}
		rows = append(rows, []string{
			result.Language,
			result.Root,
			pterm.Sprintf("%d", result.Written),
			pterm.Sprintf("%d", result.Skipped),
			pterm.Sprintf("%d", result.Collisions),
			status,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	for _, result := range report.Results {
		if result.Validation == nil {
			continue
		}
		for _, failure := range result.Validation.Failures() {
			pterm.Error.Printfln("%s: %s (%s)", result.Language, failure.Label, failure.Detail)
		}
		for _, msg := range result.Errors {
			pterm.Warning.Printfln("%s: %s", result.Language, msg)
		}
	}

	if report.Passed() {
		pterm.Success.Printfln("corpus invariants hold (run %s)", report.RunID)
	}
}
