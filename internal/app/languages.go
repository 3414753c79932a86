package app

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"horse.fit/lingo/internal/language"
)

func runLanguages(args []string) int {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	output := fs.String("output", outputFormatTable, "Output format: table or json")

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

	codes := language.Supported()

	if format == outputFormatJSON {
		type item struct {
			Code       language.Code `json:"code"`
			Name       string        `json:"name"`
			NativeName string        `json:"native_name"`
		}
		items := make([]item, 0, len(codes))
		for _, code := range codes {
			items = append(items, item{code, language.Name(code), language.NativeName(code)})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
			return 1
		}
		return 0
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tNATIVE")
	for _, code := range codes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", code, language.Name(code), language.NativeName(code))
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return 1
	}
	return 0
}
