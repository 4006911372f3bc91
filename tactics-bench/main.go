package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// tactics-bench drives the backend over HTTP and checks that the search
// agent finds the expected move in a set of tactical positions.

type scenario struct {
	Name     string
	Category string
	Position string
	Color    string
	Depth    int
	// Expected from/to in algebraic coordinates. ExpectAny lists
	// alternatives when several moves are equally correct.
	ExpectFrom string
	ExpectTo   string
	ExpectAny  [][2]string
}

type analyzeRequest struct {
	Position string `json:"position"`
	Color    string `json:"color"`
	Depth    int    `json:"depth"`
}

type analyzeResponse struct {
	Found bool `json:"found"`
	Move  struct {
		Piece      string `json:"piece"`
		From       string `json:"from"`
		To         string `json:"to"`
		Captured   string `json:"captured"`
		GivesCheck bool   `json:"gives_check"`
	} `json:"move"`
	Checkmate bool  `json:"checkmate"`
	Stalemate bool  `json:"stalemate"`
	ElapsedMs int64 `json:"elapsed_ms"`
}

type benchResult struct {
	Scenario  scenario
	Passed    bool
	Got       string
	ElapsedMs int64
	Err       error
}

func scenarios() []scenario {
	return []scenario{
		{
			// Qb3 mates immediately even though Qxd1 wins a rook.
			Name:       "mate_over_material",
			Category:   "mate_in_one",
			Position:   "k.../..../..K./.Q.r",
			Color:      "white",
			Depth:      3,
			ExpectFrom: "b1",
			ExpectTo:   "b3",
		},
		{
			// The mate shortcut fires without any lookahead to spare.
			Name:       "mate_in_one_shallow",
			Category:   "mate_in_one",
			Position:   "k.../..../..K./.Q.r",
			Color:      "white",
			Depth:      1,
			ExpectFrom: "b1",
			ExpectTo:   "b3",
		},
		{
			// The undefended black queen on d3 is a free capture for the rook.
			Name:       "free_queen_capture",
			Category:   "free_material",
			Position:   "..../R..q/..../K..k",
			Color:      "white",
			Depth:      2,
			ExpectFrom: "a3",
			ExpectTo:   "d3",
		},
		{
			// The rook on c4 hangs to the queen and cannot be recaptured.
			Name:       "queen_takes_hanging_rook",
			Category:   "free_material",
			Position:   "k.r./..../..Q./K...",
			Color:      "white",
			Depth:      2,
			ExpectFrom: "c2",
			ExpectTo:   "c4",
		},
		{
			// The queen is attacked by the rook on b4; taking it both saves
			// the queen and wins material.
			Name:       "attacked_queen_takes_rook",
			Category:   "threat_response",
			Position:   ".r.k/..../.Q../K...",
			Color:      "white",
			Depth:      2,
			ExpectFrom: "b2",
			ExpectTo:   "b4",
		},
	}
}

type bench struct {
	client  *http.Client
	baseURL string
	logger  *log.Logger
}

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:8080", "backend base URL")
		concurrency = flag.Int("concurrency", 2, "scenarios analyzed in parallel")
		timeout     = flag.Duration("timeout", 2*time.Minute, "per-request timeout")
	)
	flag.Parse()

	b := &bench{
		client:  &http.Client{Timeout: *timeout},
		baseURL: *baseURL,
		logger:  log.New(os.Stderr, "[tactics-bench] ", log.LstdFlags),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.waitForBackend(ctx); err != nil {
		b.logger.Fatalf("backend not reachable at %s: %v", b.baseURL, err)
	}

	failed, err := b.run(ctx, *concurrency)
	if err != nil {
		b.logger.Fatalf("bench aborted: %v", err)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func (b *bench) run(ctx context.Context, concurrency int) (int, error) {
	all := scenarios()
	b.logger.Printf("running %d scenarios, concurrency %d", len(all), concurrency)

	g, ctx := errgroup.WithContext(ctx)

	jobs := make(chan scenario)
	results := make(chan benchResult)

	g.Go(func() error {
		defer close(jobs)
		for _, sc := range all {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- sc:
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for sc := range jobs {
				res := b.runScenario(ctx, sc)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case results <- res:
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	var failed int
	byCategory := map[string][2]int{}
	g.Go(func() error {
		for res := range results {
			counts := byCategory[res.Scenario.Category]
			counts[1]++
			switch {
			case res.Err != nil:
				failed++
				b.logger.Printf("ERROR %-28s %v", res.Scenario.Name, res.Err)
			case res.Passed:
				counts[0]++
				b.logger.Printf("PASS  %-28s %s (%dms)", res.Scenario.Name, res.Got, res.ElapsedMs)
			default:
				failed++
				b.logger.Printf("FAIL  %-28s got %s, want %s", res.Scenario.Name, res.Got, wantString(res.Scenario))
			}
			byCategory[res.Scenario.Category] = counts
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return failed, err
	}
	for category, counts := range byCategory {
		b.logger.Printf("%s: %d/%d", category, counts[0], counts[1])
	}
	b.logger.Printf("done, %d failed", failed)
	return failed, nil
}

func (b *bench) runScenario(ctx context.Context, sc scenario) benchResult {
	resp, err := b.analyze(ctx, analyzeRequest{Position: sc.Position, Color: sc.Color, Depth: sc.Depth})
	if err != nil {
		return benchResult{Scenario: sc, Err: err}
	}
	if !resp.Found {
		return benchResult{Scenario: sc, Got: "no move", ElapsedMs: resp.ElapsedMs}
	}
	got := fmt.Sprintf("%s%s", resp.Move.From, resp.Move.To)
	return benchResult{
		Scenario:  sc,
		Passed:    moveMatches(sc, resp.Move.From, resp.Move.To),
		Got:       got,
		ElapsedMs: resp.ElapsedMs,
	}
}

func moveMatches(sc scenario, from, to string) bool {
	if len(sc.ExpectAny) > 0 {
		for _, want := range sc.ExpectAny {
			if from == want[0] && to == want[1] {
				return true
			}
		}
		return false
	}
	return from == sc.ExpectFrom && to == sc.ExpectTo
}

func wantString(sc scenario) string {
	if len(sc.ExpectAny) > 0 {
		var parts []string
		for _, want := range sc.ExpectAny {
			parts = append(parts, want[0]+want[1])
		}
		return fmt.Sprintf("one of %v", parts)
	}
	return sc.ExpectFrom + sc.ExpectTo
}

func (b *bench) analyze(ctx context.Context, payload analyzeRequest) (analyzeResponse, error) {
	var out analyzeResponse
	body, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/analyze", bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := b.client.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return out, fmt.Errorf("analyze returned %d: %s", resp.StatusCode, data)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

func (b *bench) waitForBackend(ctx context.Context) error {
	deadline := time.Now().Add(10 * time.Second)
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/api/ping", nil)
		if err != nil {
			return err
		}
		resp, err := b.client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		if time.Now().After(deadline) {
			if err == nil {
				err = fmt.Errorf("ping returned %d", resp.StatusCode)
			}
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}
