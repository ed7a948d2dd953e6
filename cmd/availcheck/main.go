package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotelavail/internal/adapters/availclient"
	"hotelavail/internal/adapters/availxml"
	"hotelavail/internal/adapters/observability"
	"hotelavail/internal/app"
	"hotelavail/internal/domain"
	"hotelavail/internal/shared"
)

// availcheck runs AvailRQ documents through the availability pipeline, either
// in-process or against a deployed gateway, and writes the JSON responses.
// One document prints to stdout; several are processed concurrently and each
// response lands next to its source file.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	endpoint := flag.String("endpoint", "", "base URL of a running gateway; empty checks in-process")
	flag.Parse()
	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: availcheck [-endpoint URL] <request.xml> [more.xml ...]  (- reads stdin)")
		os.Exit(2)
	}

	check := localCheck(cfg)
	if *endpoint != "" {
		client, err := availclient.New(*endpoint, 5)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize gateway client")
		}
		check = client.Availability
	}

	log.Info().
		Str("endpoint", *endpoint).
		Int("workers", cfg.Workers).
		Int("documents", len(paths)).
		Msg("availcheck starting")

	// a single document goes straight to stdout
	if len(paths) == 1 {
		body, err := runOne(ctx, check, paths[0])
		if err != nil {
			log.Fatal().Str("doc", paths[0]).Err(err).Msg("check failed")
		}
		fmt.Println(string(body))
		return
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, p := range paths {
		p := p

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.Release(int64(1))

			body, err := runOne(ctx, check, path)
			if err != nil {
				log.Warn().Str("doc", path).Err(err).Msg("check failed")
				return
			}
			out := outPath(path)
			if err := os.WriteFile(out, append(body, '\n'), 0o644); err != nil {
				log.Warn().Str("doc", path).Err(err).Msg("write response failed")
				return
			}
			log.Info().Str("doc", path).Str("out", out).Msg("check ok")
		}(p)
	}

	wg.Wait()
	log.Info().Msg("availcheck completed")
}

type checkFunc func(ctx context.Context, doc []byte) ([]byte, error)

// localCheck runs the full pipeline in-process with caching disabled.
func localCheck(cfg shared.Config) checkFunc {
	rules := domain.DefaultRules()
	rules.EnforceChildAccompaniment = cfg.EnforceChildAccompaniment
	svc := app.NewAvailabilityService(availxml.New(), rules, nil, 0)
	return func(ctx context.Context, doc []byte) ([]byte, error) {
		body, err := svc.AvailabilityJSON(ctx, doc)
		if body != nil {
			// a rendered rejection still counts as a completed check
			return body, nil
		}
		return nil, err
	}
}

func runOne(ctx context.Context, check checkFunc, path string) ([]byte, error) {
	doc, err := readDoc(path)
	if err != nil {
		return nil, err
	}
	return check(ctx, doc)
}

func readDoc(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func outPath(path string) string {
	return strings.TrimSuffix(path, ".xml") + ".response.json"
}
