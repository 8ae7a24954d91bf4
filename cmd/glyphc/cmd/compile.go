package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/glyphlang/glyphc/internal/backend"
	"github.com/glyphlang/glyphc/pkg/glyphc"
)

var (
	jobs           int
	emitResolved   bool
	linkerPath     string
	llcPath        string
	compileVerbose bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [files...]",
	Short: "Compile Glyph source files",
	Long: `Compile one or more Glyph source files. All files are lexed, parsed
and export-collected in parallel; each file then resolves its body
against the union of every file's exports.

Examples:
  # Compile a single file
  glyphc compile main.gly

  # Compile several units with an explicit worker count
  glyphc compile -j 4 main.gly util.gly

  # Dump the resolved statements instead of invoking the backend
  glyphc compile --emit main.gly`,
	Args: cobra.MinimumNArgs(1),
	RunE: compileFiles,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "worker count (default: hardware parallelism)")
	compileCmd.Flags().BoolVar(&emitResolved, "emit", false, "dump resolved statements instead of invoking the backend")
	compileCmd.Flags().StringVar(&linkerPath, "linker", "", "path to the object linker")
	compileCmd.Flags().StringVar(&llcPath, "llc", "", "path to the LLVM static compiler")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func compileFiles(_ *cobra.Command, args []string) error {
	opts := glyphc.Options{Jobs: jobs}
	if compileVerbose {
		opts.Verbose = os.Stderr
		fmt.Fprintf(os.Stderr, "compiling %d unit(s) on %d worker(s)\n", len(args), workerCount())
	}
	if emitResolved {
		opts.Adapter = &backend.StubAdapter{Out: os.Stdout}
	}

	paths := backend.DefaultLinkerPaths("")
	if linkerPath != "" {
		paths.Linker = linkerPath
	}
	if llcPath != "" {
		paths.LLC = llcPath
	}
	_ = paths // handed to the external link step once a real backend is wired

	result := glyphc.Compile(args, opts)
	if errs := result.Errors(); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		return fmt.Errorf("compilation failed with %d error(s)", len(errs))
	}
	for _, err := range result.BackendErrors {
		fmt.Fprintln(os.Stderr, err)
	}
	if len(result.BackendErrors) > 0 {
		return fmt.Errorf("code generation failed with %d error(s)", len(result.BackendErrors))
	}
	return nil
}

func workerCount() int {
	if jobs > 0 {
		return jobs
	}
	return runtime.NumCPU()
}
