package main

import (
	"fmt"

	"handlescan/internal/config"
	"handlescan/internal/scanner"
	"handlescan/pkg/prober/httpprober"
)

// newEngine builds the HTTP probe client from cfg and the scan engine on top of it.
func newEngine(cfg *config.Config, options scanner.Options) (*scanner.Engine, error) {
	client, err := httpprober.New(httpprober.Options{
		Timeout:       cfg.Scanner.Timeout,
		RedirectLimit: cfg.Scanner.RedirectLimit,
		UserAgent:     cfg.Scanner.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create probe client: %w", err)
	}

	engine, err := scanner.New(client, options)
	if err != nil {
		return nil, fmt.Errorf("could not create scan engine: %w", err)
	}

	return engine, nil
}
