// Copyright © 2025 The lispindent authors

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/luthersystems/lispindent/indent"
	"github.com/luthersystems/lispindent/reindent"
)

var (
	fmtWrite    bool
	fmtDiff     bool
	fmtList     bool
	fmtWatch    bool
	fmtExcludes []string
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [files...]",
	Short: "Reindent source files",
	Long: `Reindent source files line by line.

Each line's indentation is recomputed from its surrounding syntax exactly
as the editor integration would on a newline; nothing beyond leading
whitespace is changed, and lines inside multi-line strings are left alone.

With no files, reads from stdin and writes to stdout.
With files, prints reindented output to stdout unless -w is given.

Modes:
  (default)   Print reindented code to stdout
  -w          Write result back to source file
  -d          Display a diff of changes
  -l          List files that would be changed
  --watch     With -w, keep running and reindent files as they change

Examples:
  lispindent fmt file.lisp             Print reindented output
  lispindent fmt -w file.lisp          Reindent in place
  lispindent fmt -w src/...            Reindent all lisp files under src
  lispindent fmt -d file.lisp          Show what would change
  lispindent fmt -l *.lisp             List files needing reindentation
  cat file.lisp | lispindent fmt       Reindent from stdin`,
	Run: func(cmd *cobra.Command, args []string) {
		eng, err := newEngine()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if fmtWatch {
			fmtWrite = true
		}

		if len(args) == 0 {
			if err := fmtStdin(eng); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}

		expanded, err := expandArgs(args, fmtExcludes)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		exitCode := 0
		for _, path := range expanded {
			changed, err := fmtFile(path, eng)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				exitCode = 1
			} else if fmtList && changed {
				exitCode = 1
			}
		}

		if fmtWatch {
			if err := watchFiles(expanded, eng); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
		os.Exit(exitCode)
	},
}

func fmtStdin(eng *indent.Engine) error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	out := reindent.File(string(src), eng)
	_, err = io.WriteString(os.Stdout, out)
	return err
}

func fmtFile(path string, eng *indent.Engine) (bool, error) {
	src, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	out := reindent.File(string(src), eng)

	changed := string(src) != out

	if fmtList {
		if changed {
			fmt.Println(path)
		}
		return changed, nil
	}

	if fmtDiff {
		if changed {
			printUnifiedDiff(path, string(src), out)
		}
		return changed, nil
	}

	if fmtWrite {
		if !changed {
			return false, nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return false, fmt.Errorf("%s: %w", path, err)
		}
		return true, os.WriteFile(path, []byte(out), info.Mode().Perm())
	}

	// Default: print to stdout
	_, err = io.WriteString(os.Stdout, out)
	return changed, err
}

// watchFiles reindents each file in place whenever it is written.  Runs
// until interrupted.
func watchFiles(paths []string, eng *indent.Engine) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close() //nolint:errcheck // best-effort cleanup

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
	log.Printf("watching %d files", len(paths))

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if changed, err := fmtFile(ev.Name, eng); err != nil {
				log.Printf("%s: %v", ev.Name, err)
			} else if changed {
				log.Printf("reindented %s", ev.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}

func printUnifiedDiff(path string, original, formatted string) {
	// Simple line-by-line diff output
	fmt.Printf("--- %s\n", path)
	fmt.Printf("+++ %s\n", path)

	origLines := splitLines(original)
	fmtLines := splitLines(formatted)

	i, j := 0, 0
	for i < len(origLines) || j < len(fmtLines) {
		if i < len(origLines) && j < len(fmtLines) && origLines[i] == fmtLines[j] {
			fmt.Printf(" %s\n", origLines[i])
			i++
			j++
		} else if i < len(origLines) {
			fmt.Printf("-%s\n", origLines[i])
			i++
		} else {
			fmt.Printf("+%s\n", fmtLines[j])
			j++
		}
	}
}

func splitLines(data string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(data); i++ {
		if data[i] == '\n' {
			lines = append(lines, data[start:i])
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false,
		"Write result to (source) file instead of stdout.")
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false,
		"Display diffs instead of rewriting files.")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false,
		"List files whose indentation differs from lispindent's.")
	fmtCmd.Flags().BoolVar(&fmtWatch, "watch", false,
		"Keep running and reindent files in place as they change (implies -w).")
	fmtCmd.Flags().StringArrayVar(&fmtExcludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
}
