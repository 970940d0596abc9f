package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"latch/internal/diagfmt"
	"latch/internal/driver"
	"latch/internal/observ"
	"latch/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [latch.toml|directory]",
	Short: "Analyze the project's design libraries",
	Long:  `Load the libraries named by latch.toml, resolve their exported names and report diagnostics`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("snapshot", false, "write the export snapshot next to the manifest")
}

// locateManifest resolves the optional positional argument to a manifest
// path: an explicit file is taken as-is, a directory (or no argument) starts
// an upward search for latch.toml.
func locateManifest(arg string) (string, error) {
	start := arg
	if start == "" {
		var err error
		if start, err = os.Getwd(); err != nil {
			return "", err
		}
	}
	st, err := os.Stat(start)
	if err != nil {
		return "", err
	}
	if !st.IsDir() {
		return start, nil
	}
	path, ok, err := project.FindLatchToml(start)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no latch.toml found in %s or any parent directory", start)
	}
	return path, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	var arg string
	if len(args) == 1 {
		arg = args[0]
	}
	manifestPath, err := locateManifest(arg)
	if err != nil {
		return err
	}

	m, err := project.Load(manifestPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", manifestPath, err)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return err
	}
	writeSnapshot, err := cmd.Flags().GetBool("snapshot")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	traceScore, err := cmd.Root().PersistentFlags().GetBool("trace-score")
	if err != nil {
		return err
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	color.NoColor = !useColor

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	timer := observ.NewTimer()

	loadPhase := timer.Begin("load")
	sess, err := driver.NewSession(cmd.Context(), m, driver.Options{
		MaxDiagnostics: maxDiagnostics,
		TraceScore:     traceScore,
	})
	if err != nil {
		return err
	}
	timer.End(loadPhase, fmt.Sprintf("%d files", len(sess.Loaded)))

	// Snapshot runs the export query for every registered library and fills
	// the bag with whatever diagnostics that produces.
	resolvePhase := timer.Begin("resolve")
	snap := sess.Board.Snapshot()
	timer.End(resolvePhase, fmt.Sprintf("%d libraries", len(snap.Libraries)))
	sess.Bag.Sort()

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, sess.Bag, sess.Files, diagfmt.PrettyOpts{
			Color:     useColor,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
		if !quiet {
			for _, lib := range snap.Libraries {
				fmt.Fprintf(os.Stdout, "library %s: %d units, %d exports\n",
					lib.Name, lib.Units, len(lib.Exports))
			}
		}
	case "json":
		err := diagfmt.JSON(os.Stdout, sess.Bag, sess.Files, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		})
		if err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if writeSnapshot {
		path, err := sess.WriteSnapshot(m.Root)
		if err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		if !quiet {
			fmt.Fprintf(os.Stdout, "snapshot written to %s\n", path)
		}
	}

	if showTimings && !quiet {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if sess.Bag.HasErrors() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // diagnostics already printed
	}
	return nil
}
