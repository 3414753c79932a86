package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/lingo/internal/cli"
	"horse.fit/lingo/internal/config"
	"horse.fit/lingo/internal/detect"
	"horse.fit/lingo/internal/language"
	"horse.fit/lingo/internal/llm"
	"horse.fit/lingo/internal/logging"
	"horse.fit/lingo/internal/reader"
)

const (
	outputFormatTable = "table"
	outputFormatJSON  = "json"
)

func runDetect(args []string) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	text := fs.String("text", "", "Text to detect (reads stdin when empty and --url is unset)")
	pageURL := fs.String("url", "", "Fetch this URL and detect the language of its readable text")
	syncOnly := fs.Bool("sync", false, "Heuristic-only detection; never loads models or calls the network")
	output := fs.String("output", outputFormatTable, "Output format: table or json")
	timeout := fs.Duration("timeout", 30*time.Second, "Overall deadline for the detection run")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	format, err := parseOutputFormat(*output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sample, err := resolveInput(ctx, *text, *pageURL)
	if err != nil {
		logger.Error().Err(err).Msg("could not resolve detection input")
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		return 1
	}

	detector := newDetector(cfg, logger)

	var result detect.Result
	if *syncOnly {
		result = detector.DetectLocal(sample)
	} else {
		result = detector.Detect(ctx, sample)
	}

	if err := printResult(os.Stdout, result, format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return 1
	}
	return 0
}

// newDetector wires the configured providers into a detection engine.
// Shared by the detect and serve commands.
func newDetector(cfg *config.Config, logger zerolog.Logger) *detect.Detector {
	opts := cfg.DetectorOptions()
	opts.Logger = logger

	if cfg.StatisticalEnabled {
		opts.Subword = detect.NewLinguaProvider()
	}
	if cfg.RemoteConfigured() {
		opts.Chat = llm.NewClient(llm.Options{
			Endpoint: cfg.RemoteEndpoint,
			APIKey:   cfg.RemoteAPIKey,
			Model:    cfg.RemoteModel,
			Timeout:  cfg.RemoteTimeout,
		})
	}

	return detect.New(opts)
}

func resolveInput(ctx context.Context, text, pageURL string) (string, error) {
	if strings.TrimSpace(pageURL) != "" {
		return reader.FetchSnippet(ctx, pageURL, reader.FetchOptions{})
	}
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return "", fmt.Errorf("no input text: pass --text, --url, or pipe text on stdin")
	}
	return string(raw), nil
}

func parseOutputFormat(raw string) (string, error) {
	format := strings.TrimSpace(strings.ToLower(raw))
	switch format {
	case "", outputFormatTable:
		return outputFormatTable, nil
	case outputFormatJSON:
		return outputFormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected table or json)", raw)
	}
}

func printResult(w io.Writer, result detect.Result, format string) error {
	if format == outputFormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "LANGUAGE\t%s (%s)\n", language.Name(result.Language), result.Language)
	fmt.Fprintf(tw, "CONFIDENCE\t%.2f\n", result.Confidence)
	fmt.Fprintf(tw, "METHOD\t%s\n", result.Method)
	if result.Reasoning != "" {
		fmt.Fprintf(tw, "REASONING\t%s\n", result.Reasoning)
	}
	return tw.Flush()
}
