package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/stefan-korn/csv2geojson"

	"github.com/jessevdk/go-flags"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Input        string   `short:"i" long:"in" description:"Input CSV file path. Reads from stdin if empty"`
	Output       string   `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Format       string   `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Name         string   `short:"n" long:"name" description:"FeatureCollection name"`
	GeoColumns   []string `short:"g" long:"geo-column" description:"Coordinate column, longitude first. Repeatable"`
	Delimiter    string   `short:"d" long:"delimiter" description:"CSV field delimiter" default:","`
	HeaderOffset int      `short:"H" long:"header-offset" description:"Zero-based index of the header row"`
	LatLonOrder  bool     `short:"l" long:"latlon-order" description:"Treat a single combined column as latitude first"`
	BBox         bool     `short:"b" long:"bbox" description:"Compute the collection bounding box"`
	Compact      bool     `short:"c" long:"compact" description:"Minify JSON output"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Read Input
	var inputData []byte
	var err error

	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
			os.Exit(1)
		}
	} else {
		inputData, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	convOpts := csv2geojson.Options{
		Name:         opts.Name,
		GeoColumns:   opts.GeoColumns,
		HeaderOffset: opts.HeaderOffset,
		LatLonOrder:  opts.LatLonOrder,
	}
	if opts.Delimiter != "" {
		r, _ := utf8.DecodeRuneInString(opts.Delimiter)
		convOpts.Delimiter = r
	}

	fc, err := csv2geojson.Convert(bytes.NewReader(inputData), convOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting CSV: %v\n", err)
		os.Exit(1)
	}

	if opts.BBox {
		fc.ComputeBBox()
	}

	// marshal
	var outputData []byte
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(fc)
	} else {
		outputData, err = json.MarshalIndent(fc, "", "  ")
		if err == nil && opts.Compact {
			m := minify.New()
			m.AddFunc("application/json", mjson.Minify)
			outputData, err = m.Bytes("application/json", outputData)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, outputData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully converted %d features to %s (format: %s)\n", len(fc.Features), opts.Output, opts.Format)
	} else {
		fmt.Println(string(outputData))
	}
}
