// Command pdfsteg hides and recovers payloads inside the dictionary key
// order of a PDF file.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/benedoc-inc/pdfsteg/internal/config"
	"github.com/benedoc-inc/pdfsteg/pdfval/pwrite"
	"github.com/benedoc-inc/pdfsteg/steg"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "PANIC: %v\n", r)
			os.Exit(1)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "write":
		return cmdWrite(stdout, stderr, args[1:])
	case "read":
		return cmdRead(stdout, stderr, args[1:])
	case "capacity":
		return cmdCapacity(stdout, stderr, args[1:])
	case "-h", "--help", "help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "pdfsteg: unknown command %q\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfsteg <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  write    --in=<pdf> --payload=<file> --out=<pdf> [--pdf-version=1.6] [--write-mode=compact|clean]")
	fmt.Fprintln(w, "                                                      Hide a payload")
	fmt.Fprintln(w, "  read     --in=<pdf> [--out=<file>]                  Recover a hidden payload")
	fmt.Fprintln(w, "  capacity --in=<pdf>                                 Report carrying capacity in bytes")
}

type commonFlags struct {
	in         string
	logPath    string
	verbose    bool
	configPath string
}

func bindCommon(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.StringVar(&c.in, "in", "", "Path to the input PDF file")
	fs.StringVar(&c.logPath, "log", "", "Path to log file (default stderr)")
	fs.BoolVar(&c.verbose, "verbose", false, "Enable verbose logging")
	fs.StringVar(&c.configPath, "config", "", "Path to a JSONC config file")
	return c
}

func setupLogging(c *commonFlags) (*os.File, error) {
	if c.logPath == "" {
		log.SetOutput(os.Stderr)
		return nil, nil
	}
	f, err := os.Create(c.logPath)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}

func cmdWrite(stdout, stderr io.Writer, args []string) int {
	fs := flag.NewFlagSet("write", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c := bindCommon(fs)
	payloadPath := fs.String("payload", "", "Path to the file whose bytes should be hidden")
	outPath := fs.String("out", "", "Path to write the resulting PDF")
	writeMode := fs.String("write-mode", "", `Dictionary whitespace layout: "compact" or "clean"`)
	pdfVersion := fs.String("pdf-version", "", `PDF header version to stamp on the output, e.g. "1.6"`)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "pdfsteg write: %v\n", err)
		return 1
	}
	if c.in == "" || *payloadPath == "" || *outPath == "" {
		fmt.Fprintln(stderr, "pdfsteg write: --in, --payload and --out are required")
		return 1
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "pdfsteg write: %v\n", err)
		return 1
	}
	if !fs.Changed("verbose") && cfg.Verbose {
		c.verbose = true
	}
	mode := resolveWriteMode(*writeMode, cfg)
	version := resolveVersion(*pdfVersion, cfg)

	logFile, err := setupLogging(c)
	if err != nil {
		fmt.Fprintf(stderr, "pdfsteg write: %v\n", err)
		return 1
	}
	if logFile != nil {
		defer logFile.Close()
	}

	pdfBytes, err := os.ReadFile(c.in)
	if err != nil {
		fmt.Fprintf(stderr, "pdfsteg write: reading %s: %v\n", c.in, err)
		return 1
	}
	payload, err := os.ReadFile(*payloadPath)
	if err != nil {
		fmt.Fprintf(stderr, "pdfsteg write: reading %s: %v\n", *payloadPath, err)
		return 1
	}

	if c.verbose {
		log.Printf("input: %s (%d bytes)", c.in, len(pdfBytes))
		log.Printf("payload: %s (%d bytes)", *payloadPath, len(payload))
	}

	out, err := steg.WriteWithOptions(pdfBytes, payload, steg.Options{
		Mode:    mode,
		Version: version,
		Verbose: c.verbose,
	})
	if err != nil {
		var stegErr *steg.StegError
		if errors.As(err, &stegErr) && stegErr.Code == steg.ErrCodeCapacity {
			fmt.Fprintf(stderr, "The PDF file doesn't have sufficient capacity to hold all given data. "+
				"The file can hold at most %d hidden bytes\n", stegErr.CapacityBytes)
			return 2
		}
		fmt.Fprintf(stderr, "pdfsteg write: %v\n", err)
		return 1
	}

	if err := atomic.WriteFile(*outPath, bytes.NewReader(out)); err != nil {
		fmt.Fprintf(stderr, "pdfsteg write: writing %s: %v\n", *outPath, err)
		return 1
	}

	if c.verbose {
		log.Printf("wrote %s (%d bytes)", *outPath, len(out))
	}
	fmt.Fprintf(stdout, "wrote %d bytes to %s\n", len(out), *outPath)
	return 0
}

func cmdRead(stdout, stderr io.Writer, args []string) int {
	fs := flag.NewFlagSet("read", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c := bindCommon(fs)
	outPath := fs.String("out", "", "Path to write the recovered payload (default stdout)")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "pdfsteg read: %v\n", err)
		return 1
	}
	if c.in == "" {
		fmt.Fprintln(stderr, "pdfsteg read: --in is required")
		return 1
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "pdfsteg read: %v\n", err)
		return 1
	}
	if !fs.Changed("verbose") && cfg.Verbose {
		c.verbose = true
	}

	logFile, err := setupLogging(c)
	if err != nil {
		fmt.Fprintf(stderr, "pdfsteg read: %v\n", err)
		return 1
	}
	if logFile != nil {
		defer logFile.Close()
	}

	pdfBytes, err := os.ReadFile(c.in)
	if err != nil {
		fmt.Fprintf(stderr, "pdfsteg read: reading %s: %v\n", c.in, err)
		return 1
	}

	payload, warnings, err := steg.Read(pdfBytes)
	if err != nil {
		fmt.Fprintf(stderr, "pdfsteg read: %v\n", err)
		return 1
	}
	for _, w := range warnings {
		if c.verbose {
			log.Print(w.String())
		}
	}

	if *outPath == "" {
		if _, err := stdout.Write(payload); err != nil {
			fmt.Fprintf(stderr, "pdfsteg read: %v\n", err)
			return 1
		}
		return 0
	}

	if err := atomic.WriteFile(*outPath, bytes.NewReader(payload)); err != nil {
		fmt.Fprintf(stderr, "pdfsteg read: writing %s: %v\n", *outPath, err)
		return 1
	}
	fmt.Fprintf(stdout, "recovered %d bytes to %s\n", len(payload), *outPath)
	return 0
}

func cmdCapacity(stdout, stderr io.Writer, args []string) int {
	fs := flag.NewFlagSet("capacity", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c := bindCommon(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "pdfsteg capacity: %v\n", err)
		return 1
	}
	if c.in == "" {
		fmt.Fprintln(stderr, "pdfsteg capacity: --in is required")
		return 1
	}

	pdfBytes, err := os.ReadFile(c.in)
	if err != nil {
		fmt.Fprintf(stderr, "pdfsteg capacity: reading %s: %v\n", c.in, err)
		return 1
	}

	n, err := steg.Capacity(pdfBytes)
	if err != nil {
		fmt.Fprintf(stderr, "pdfsteg capacity: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "%d\n", n)
	return 0
}

func resolveWriteMode(flagVal string, cfg config.Config) pwrite.Mode {
	mode := cfg.WriteMode
	if flagVal != "" {
		mode = config.WriteMode(flagVal)
	}
	if mode == config.WriteModeClean {
		return pwrite.ModeClean
	}
	return pwrite.ModeCompact
}

// resolveVersion prefers an explicit --pdf-version flag, falling back to the
// config file's pdf_version (which itself defaults to "1.6").
func resolveVersion(flagVal string, cfg config.Config) string {
	if flagVal != "" {
		return flagVal
	}
	return cfg.PDFVersion
}
