// CLAUDE:SUMMARY Entry point for the docproc CLI — process/translate/summarize/keypoints/compare subcommands, optional MCP stdio mode.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hazyhaar/docproc/docpipe"
	"github.com/hazyhaar/docproc/pipeline"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to a YAML config file")
	mcpMode := flag.Bool("mcp", false, "serve MCP tools over stdio instead of running a subcommand")
	flag.Usage = printUsage
	flag.Parse()

	// Logging goes to stderr: stdout carries command output, and in MCP
	// stdio mode it carries the protocol stream.
	logger := newLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := pipeline.LoadConfig(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	cfg.Logger = logger
	applyEnvOverrides(cfg)

	p, err := pipeline.New(*cfg)
	if err != nil {
		slog.Error("init pipeline", "error", err)
		os.Exit(1)
	}

	if *mcpMode {
		runMCP(ctx, p)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "process":
		cmdProcess(ctx, p, args[1:])
	case "translate":
		cmdTranslate(ctx, p, args[1:])
	case "summarize":
		cmdSummarize(ctx, p, args[1:])
	case "keypoints":
		cmdKeypoints(ctx, p, args[1:])
	case "compare":
		cmdCompare(ctx, p, args[1:])
	case "formats":
		cmdFormats()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `docproc — document text extraction and analysis

usage:
  docproc [-config path] process    <file>
  docproc [-config path] translate  <target-language> <file|->
  docproc [-config path] summarize  <file|->
  docproc [-config path] keypoints  <file|->
  docproc [-config path] compare    <left-file> <right-file>
  docproc formats
  docproc [-config path] -mcp

process    Extracts text, tables and language from a document, as JSON.
translate  Translates the document text into the target language.
summarize  Produces an extractive summary of the document text.
keypoints  Lists the key points of the document text.
compare    Reports line-level differences between two text files.
formats    Lists the supported document formats.
-mcp       Serves the same operations as MCP tools over stdio.

A "-" file argument reads the text from stdin.
`)
}

func newLogger() *slog.Logger {
	var lvl slog.Level
	switch env("LOG_LEVEL", "info") {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// applyEnvOverrides lets the environment override config file values, so
// containerized deployments can skip the file entirely.
func applyEnvOverrides(cfg *pipeline.Config) {
	if v := os.Getenv("OCR_REMOTE_ENDPOINT"); v != "" {
		cfg.OCR.Enabled = true
		cfg.OCR.RemoteEndpoint = v
	}
	if v := os.Getenv("OCR_REMOTE_API_KEY"); v != "" {
		cfg.OCR.RemoteAPIKey = v
	}
	if v := os.Getenv("LIBRETRANSLATE_URL"); v != "" {
		cfg.Translate.LibreTranslateURL = v
	}
}

func runMCP(ctx context.Context, p *pipeline.Pipeline) {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "docproc",
		Version: "1.0.0",
	}, nil)
	p.RegisterMCP(srv)

	slog.Info("MCP stdio serving")
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		slog.Error("MCP stdio", "error", err)
		os.Exit(1)
	}
}

func cmdProcess(ctx context.Context, p *pipeline.Pipeline, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "process requires a file path")
		os.Exit(1)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", args[0], err)
		os.Exit(1)
	}
	res, err := p.Process(ctx, data, filepath.Base(args[0]))
	if err != nil {
		fail(err)
	}
	printJSON(res)
}

func cmdTranslate(ctx context.Context, p *pipeline.Pipeline, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "translate requires a target language and a file path")
		os.Exit(1)
	}
	text := readText(args[1])
	printEnvelope(p.Translate(ctx, text, args[0]))
}

func cmdSummarize(ctx context.Context, p *pipeline.Pipeline, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "summarize requires a file path")
		os.Exit(1)
	}
	printEnvelope(p.Summarize(ctx, readText(args[0])))
}

func cmdKeypoints(ctx context.Context, p *pipeline.Pipeline, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "keypoints requires a file path")
		os.Exit(1)
	}
	printEnvelope(p.BulletPoints(ctx, readText(args[0])))
}

func cmdCompare(ctx context.Context, p *pipeline.Pipeline, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "compare requires two file paths")
		os.Exit(1)
	}
	printEnvelope(p.Compare(ctx, readText(args[0]), readText(args[1])))
}

func cmdFormats() {
	for _, f := range docpipe.SupportedFormats() {
		fmt.Println(f)
	}
}

// readText reads a text argument: a file path, or stdin when the
// argument is "-".
func readText(arg string) string {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read stdin: %v\n", err)
			os.Exit(1)
		}
		return string(data)
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", arg, err)
		os.Exit(1)
	}
	return string(data)
}

func fail(err error) {
	switch {
	case errors.Is(err, pipeline.ErrUnsupportedFormat):
		fmt.Fprintf(os.Stderr, "unsupported format: %v\n", err)
	case errors.Is(err, pipeline.ErrInputTooLarge):
		fmt.Fprintf(os.Stderr, "input too large: %v\n", err)
	case errors.Is(err, pipeline.ErrEmptyInput):
		fmt.Fprintln(os.Stderr, "input is empty")
	default:
		fmt.Fprintf(os.Stderr, "processing failed: %v\n", err)
	}
	os.Exit(1)
}

func printEnvelope(e *pipeline.Envelope) {
	printJSON(e)
	if !e.Success {
		os.Exit(1)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		os.Exit(1)
	}
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
