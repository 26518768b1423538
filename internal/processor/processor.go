// Package processor executes the conversion jobs from the configuration.
package processor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/stefan-korn/csv2geojson"
	"github.com/stefan-korn/csv2geojson/internal/config"

	"github.com/rs/zerolog/log"
)

// ProcessJob converts a single CSV input, local file or remote URL,
// into a GeoJSON file. Existing output files are kept unless force is
// set.
func ProcessJob(client *http.Client, job config.Job, defaults []string, force bool) error {
	destFile := job.OutputPath()
	if destFile == "" {
		return errors.New("cannot derive output path from input, set output explicitly")
	}

	// Check if file exists
	if _, err := os.Stat(destFile); err == nil {
		if !force {
			log.Debug().Str("job", job.DisplayName()).Str("output", destFile).Msg("Output file exists, skipping")
			return nil
		}
	}

	log.Info().
		Str("job", job.DisplayName()).
		Str("input", job.Input).
		Msg("Processing conversion")

	var src io.ReadCloser
	var err error
	if job.IsRemote() {
		src, err = fetchCSV(client, job.Input)
	} else {
		src, err = os.Open(job.Input)
	}
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	fc, err := csv2geojson.Convert(src, job.Options(defaults))
	if err != nil {
		return err
	}

	if job.BBox {
		fc.ComputeBBox()
	}

	log.Info().
		Str("job", job.DisplayName()).
		Str("output", destFile).
		Int("features", len(fc.Features)).
		Msg("Conversion finished")

	return saveGeoJSON(filepath.Dir(destFile), destFile, fc)
}

// fetchCSV downloads a remote CSV input.
func fetchCSV(client *http.Client, url string) (io.ReadCloser, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// saveGeoJSON marshals the feature collection and writes it to disk.
func saveGeoJSON(dir, path string, fc csv2geojson.FeatureCollection) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	return json.NewEncoder(f).Encode(fc)
}
