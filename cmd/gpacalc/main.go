// Command gpacalc computes a GPA from the command line.
//
//	gpacalc Math=95 CS=85
//	gpacalc -xlsx courses.xlsx
//	printf 'Math,95\nCS,85\n' | gpacalc
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/portfolio-backend/internal/gpa"
	"github.com/stemsi/portfolio-backend/internal/importer"
	"github.com/stemsi/portfolio-backend/internal/logger"
	"github.com/stemsi/portfolio-backend/internal/model"
	"golang.org/x/term"
)

func main() {
	var (
		xlsxPath string
		asJSON   bool
		logLevel string
	)
	flag.StringVar(&xlsxPath, "xlsx", "", "Read courses from an .xlsx file (column A name, column B marks)")
	flag.BoolVar(&asJSON, "json", false, "Print the result as JSON")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level written to stderr")
	flag.Parse()

	log := logger.New(os.Stderr, logLevel, "pretty")

	entries, err := collect(xlsxPath, flag.Args(), log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	res, err := gpa.Compute(entries)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := printResult(os.Stdout, res, asJSON); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// collect picks the input source: an xlsx file, positional arguments or stdin.
func collect(xlsxPath string, args []string, log zerolog.Logger) ([]gpa.CourseEntry, error) {
	switch {
	case xlsxPath != "":
		log.Debug().Str("file", xlsxPath).Msg("Reading spreadsheet")
		f, err := os.Open(xlsxPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return importer.ReadCourses(f)

	case len(args) > 0:
		log.Debug().Int("args", len(args)).Msg("Reading arguments")
		return parseArgs(args)

	default:
		var prompt io.Writer
		if term.IsTerminal(int(os.Stdin.Fd())) {
			prompt = os.Stderr
		}
		return readLines(os.Stdin, prompt)
	}
}

// parseArgs reads "name=marks" pairs. The last '=' separates the two so
// course names may contain one.
func parseArgs(args []string) ([]gpa.CourseEntry, error) {
	entries := make([]gpa.CourseEntry, 0, len(args))
	for i, arg := range args {
		idx := strings.LastIndex(arg, "=")
		if idx < 0 {
			return nil, fmt.Errorf("argument %q: expected name=marks", arg)
		}
		e, err := gpa.ParseEntry(i, arg[:idx], arg[idx+1:])
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// readLines reads "name,marks" lines until EOF or an empty line. Prompts go
// to prompt when it is non-nil.
func readLines(r io.Reader, prompt io.Writer) ([]gpa.CourseEntry, error) {
	if prompt != nil {
		fmt.Fprintln(prompt, "Enter one course per line as name,marks. Finish with an empty line.")
	}

	var entries []gpa.CourseEntry
	sc := bufio.NewScanner(r)
	for {
		if prompt != nil {
			fmt.Fprintf(prompt, "course %d> ", len(entries)+1)
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			if prompt != nil {
				break
			}
			continue
		}

		idx := strings.LastIndex(line, ",")
		if idx < 0 {
			return nil, fmt.Errorf("line %q: expected name,marks", line)
		}
		e, err := gpa.ParseEntry(len(entries), line[:idx], line[idx+1:])
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, sc.Err()
}

func printResult(w io.Writer, res gpa.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(model.NewGPAResponse(res))
	}
	_, err := fmt.Fprintf(w, "GPA:            %s\nClassification: %s\nCourses:        %d\n",
		res.Display(), res.Classification, res.CourseCount)
	return err
}
