package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/contactkeval/bsm-pricer/internal/config"
	"github.com/contactkeval/bsm-pricer/internal/logger"
	"github.com/contactkeval/bsm-pricer/internal/prompt"
	"github.com/contactkeval/bsm-pricer/internal/recorder"
	"github.com/contactkeval/bsm-pricer/internal/report"
)

const banner = "Black-Scholes Option Pricing Model\n\n"

// errNonFinitePrice marks a formula result of NaN or Inf, e.g. from a NaN input.
var errNonFinitePrice = errors.New("price is not a finite number")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("bsm-pricer", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to YAML config (default $BSM_CONFIG, otherwise none)")
	verbosity := fs.Int("v", -1, "log verbosity 0-4, overrides config")
	asJSON := fs.Bool("json", false, "print the quote as JSON instead of a sentence")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		return err
	}
	if *verbosity >= 0 {
		cfg.Log.Verbosity = *verbosity
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	logger.SetVerbosity(cfg.Log.Verbosity)

	rec, err := recorder.Open(cfg.History.SQLitePath)
	if err != nil {
		logger.Warnf("quote history disabled: %v", err)
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	if _, err := io.WriteString(stdout, banner); err != nil {
		return err
	}

	col := prompt.New(stdin, stdout)
	col.Expressions = cfg.Input.Expressions

	in, err := col.Inputs()
	if err != nil {
		return fmt.Errorf("collect inputs: %w", err)
	}

	if cfg.Pricing.StrictInputs {
		if err := in.Validate(); err != nil {
			return err
		}
	}

	q, err := in.Price()
	if err != nil {
		return fmt.Errorf("price option: %w", err)
	}
	logger.Debugf("priced %s S=%g K=%g T=%g r=%g sigma=%g -> %g", q.Type, q.S, q.K, q.T, q.R, q.Sigma, q.Price)

	if math.IsNaN(q.Price) || math.IsInf(q.Price, 0) {
		return fmt.Errorf("%w: S=%g K=%g T=%g sigma=%g", errNonFinitePrice, q.S, q.K, q.T, q.Sigma)
	}

	if err := rec.RecordQuote(&q); err != nil {
		logger.Warnf("record quote: %v", err)
	}

	if *asJSON {
		return report.WriteJSON(stdout, q)
	}
	return report.WriteText(stdout, q)
}
