package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
)

// Lines of preamble (name, channels, dependencies header) before the actual
// package list in an environment-definition file.
const headerLines = 4

// reqexport converts an environment-definition file into a plain dependency
// list by stripping version pins.
func main() {
	inPath := flag.String("in", "environment.yml", "Path to environment-definition file")
	outPath := flag.String("out", "requirements.txt", "Path to write the plain dependency list")
	flag.Parse()

	if err := run(*inPath, *outPath); err != nil {
		log.Fatal(err)
	}
}

func run(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		if line <= headerLines {
			continue
		}
		if _, err := fmt.Fprintln(w, stripPin(scanner.Text())); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}
	return w.Flush()
}

// stripPin drops everything after the last version separator, so
// "  - numpy=1.26.4=py312h..." becomes "  - numpy=1.26.4" and unpinned lines
// pass through unchanged.
func stripPin(line string) string {
	if i := strings.LastIndex(line, "="); i >= 0 {
		return line[:i]
	}
	return line
}
