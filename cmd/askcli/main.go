// Command askcli is a terminal client for the filings Q&A service: ask a
// single question, or replay a JSONL file of questions against a running
// instance to eyeball answer quality and latency.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var (
	serverURL   string
	timeoutSecs int
	concurrency int
	ratePerSec  float64
	showContext bool
)

var rootCmd = &cobra.Command{
	Use:           "askcli",
	Short:         "Client for the filings Q&A service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAsk(cmd.Context(), args[0])
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch [file.jsonl]",
	Short: "Replay a JSONL file of questions and report latencies",
	Long: `Each line of the input file is a JSON object with a "query" field.
Questions run concurrently, bounded by --concurrency and --rate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:9020", "Q&A service base URL")
	rootCmd.PersistentFlags().IntVar(&timeoutSecs, "timeout", 90, "per-question timeout in seconds")
	askCmd.Flags().BoolVar(&showContext, "contexts", false, "print the retrieved filing excerpts")
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "max in-flight questions")
	batchCmd.Flags().Float64Var(&ratePerSec, "rate", 2.0, "max questions started per second")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Answer      string `json:"answer"`
	RetrievalID string `json:"retrieval_id"`
	Contexts    []struct {
		Ticker     string  `json:"ticker"`
		FilingType string  `json:"filing_type"`
		FilingYear int     `json:"filing_year"`
		ItemLabel  string  `json:"item_label"`
		Page       int     `json:"page"`
		Score      float64 `json:"score"`
	} `json:"contexts"`
}

func ask(ctx context.Context, client *http.Client, question string) (*chatResponse, time.Duration, error) {
	body, err := json.Marshal(chatRequest{Query: question})
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, elapsed, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, elapsed, fmt.Errorf("failed to decode response: %w", err)
	}
	return &parsed, elapsed, nil
}

func runAsk(ctx context.Context, question string) error {
	client := &http.Client{Timeout: time.Duration(timeoutSecs) * time.Second}

	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	resp, elapsed, err := ask(ctx, client, question)
	if err != nil {
		return err
	}

	fmt.Println(boldCyan("Answer:"))
	fmt.Println(resp.Answer)
	fmt.Println()
	fmt.Println(faint(fmt.Sprintf("retrieval_id=%s elapsed=%s", resp.RetrievalID, elapsed.Round(time.Millisecond))))

	if showContext {
		fmt.Println()
		fmt.Println(boldCyan("Contexts:"))
		for i, c := range resp.Contexts {
			fmt.Printf("%2d. %s %d %s %s p.%d (score %.2f)\n",
				i+1, c.Ticker, c.FilingYear, c.FilingType, c.ItemLabel, c.Page, c.Score)
		}
	}
	return nil
}

type batchResult struct {
	question string
	elapsed  time.Duration
	err      error
}

func runBatch(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer file.Close()

	var questions []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var req chatRequest
		if err := json.Unmarshal(line, &req); err != nil {
			return fmt.Errorf("malformed line %q: %w", scanner.Text(), err)
		}
		if req.Query == "" {
			continue
		}
		questions = append(questions, req.Query)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions found in %s", path)
	}

	client := &http.Client{Timeout: time.Duration(timeoutSecs) * time.Second}
	limiter := rate.NewLimiter(rate.Limit(ratePerSec), 1)

	results := make([]batchResult, len(questions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, q := range questions {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}
			_, elapsed, err := ask(gctx, client, q)
			results[i] = batchResult{question: q, elapsed: elapsed, err: err}
			// Individual failures go into the report, not the group error.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printReport(results)
	return nil
}

func printReport(results []batchResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	var latencies []time.Duration
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Printf("%s %s: %v\n", red("FAIL"), truncate(r.question, 60), r.err)
			continue
		}
		latencies = append(latencies, r.elapsed)
		fmt.Printf("%s %s (%s)\n", green("OK  "), truncate(r.question, 60), r.elapsed.Round(time.Millisecond))
	}

	fmt.Println()
	fmt.Printf("total=%d ok=%d failed=%d\n", len(results), len(latencies), failed)
	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		var sum time.Duration
		for _, l := range latencies {
			sum += l
		}
		p50 := latencies[len(latencies)/2]
		p95 := latencies[(len(latencies)*95)/100]
		fmt.Printf("latency avg=%s p50=%s p95=%s\n",
			(sum / time.Duration(len(latencies))).Round(time.Millisecond),
			p50.Round(time.Millisecond),
			p95.Round(time.Millisecond))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
