package main

import (
	"net/http"
	"os"
	"time"

	"github.com/stefan-korn/csv2geojson/internal/config"
	"github.com/stefan-korn/csv2geojson/internal/logger"
	"github.com/stefan-korn/csv2geojson/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string   `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Limit      []string `short:"l" long:"limit"  env:"LIMIT_NAMES" description:"Limit processing to specific job names"`
	Force      bool     `short:"f" long:"force"  description:"Force overwrite of existing files"`
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

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Shared client for remote inputs
	client := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
		Timeout: 15 * time.Second,
	}

	// Filter jobs if limit is set
	jobsToProcess := cfg.Conversions
	if len(opts.Limit) > 0 {
		jobsToProcess = make([]config.Job, 0)
		availableJobs := make(map[string]config.Job)
		for _, job := range cfg.Conversions {
			availableJobs[job.DisplayName()] = job
		}

		seen := make(map[string]bool)

		for _, limitName := range opts.Limit {
			if seen[limitName] {
				continue
			}
			seen[limitName] = true

			if job, ok := availableJobs[limitName]; ok {
				jobsToProcess = append(jobsToProcess, job)
			} else {
				log.Error().
					Str("name", limitName).
					Msg("Job specified in --limit not found in configuration")
			}
		}
	}

	log.Info().
		Int("jobs_total", len(cfg.Conversions)).
		Int("jobs_queued", len(jobsToProcess)).
		Msg("Starting loader")

	failed := 0
	for _, job := range jobsToProcess {
		if err := processor.ProcessJob(client, job, cfg.DefaultGeoColumns, opts.Force); err != nil {
			failed++
			log.Error().Err(err).Str("job", job.DisplayName()).Msg("Failed to process conversion")
		}
	}

	if failed > 0 {
		log.Error().Int("failed", failed).Msg("Loader finished with errors")
		os.Exit(1)
	}

	log.Info().Msg("Loader finished successfully")
}
