// README: Check cases for the trip-planning API: envelope contract, optional ledger/counters, and load.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

// expectation describes what a single HTTP check must observe.
type expectation struct {
	status      int
	message     string
	contentType string
	body        string
	rawBody     bool
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	plan := base + "/api/plan-trip"
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "ledger not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "counters not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: statusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: statusFail, Note: "ledger not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "ledger not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: statusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: statusPass}
			},
		},

		httpCase("Health: GET /", http.MethodGet, base+"/", "", "",
			expectation{status: 200, body: `"status":"online"`}),
		httpCase("Routing: unknown path -> 404", http.MethodGet, base+"/api/nope", "", "",
			expectation{status: 404, message: "Endpoint not found. Use POST /api/plan-trip"}),
		httpCase("Routing: GET plan-trip -> 405", http.MethodGet, plan, "", "",
			expectation{status: 405, message: "Method not allowed. Use POST request."}),
		httpCase("CORS: preflight", http.MethodOptions, plan, "", "",
			expectation{status: 204, rawBody: true}),
		httpCase("Validation: wrong content type -> 400", http.MethodPost, plan, "text/plain", `{"destination":"Paris"}`,
			expectation{status: 400, message: "Content-Type must be application/json"}),
		httpCase("Validation: body not an object -> 400", http.MethodPost, plan, "application/json", `[1,2]`,
			expectation{status: 400, message: "Request body must be a JSON object"}),
		httpCase("Validation: missing fields -> 400", http.MethodPost, plan, "application/json", `{"destination":"Paris"}`,
			expectation{status: 400, message: "Missing required fields: travelers, duration"}),
		httpCase("Validation: empty body -> 400", http.MethodPost, plan, "application/json", `{}`,
			expectation{status: 400, message: "Missing required fields: destination, travelers, duration"}),
		{
			Name: "Generate: one itinerary (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Generate {
					return Result{Status: statusSkip, Note: "generate=false"}
				}
				return generateOnce(ctx, r, plan)
			},
		},
		{
			Name: "Perf: validation throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, plan, `{"destination":"Paris"}`)
			},
		},
	}
}

func httpCase(name, method, url, contentType, body string, want expectation) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if body != "" {
				reader = strings.NewReader(body)
			}
			req, err := http.NewRequestWithContext(ctx, method, url, reader)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			if contentType != "" {
				req.Header.Set("Content-Type", contentType)
			}
			if method == http.MethodOptions {
				req.Header.Set("Origin", "http://bench.local")
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}

			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			raw, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			latency := time.Since(start)

			if resp.StatusCode != want.status {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d want=%d", resp.StatusCode, want.status)}
			}
			if want.rawBody {
				return Result{Status: statusPass, Latency: latency}
			}
			if want.body != "" && !strings.Contains(string(raw), want.body) {
				return Result{Status: statusFail, Latency: latency, Note: "body missing " + want.body}
			}
			if want.message != "" {
				var env struct {
					Error      bool   `json:"error"`
					Message    string `json:"message"`
					StatusCode int    `json:"statusCode"`
				}
				if err := json.Unmarshal(raw, &env); err != nil {
					return Result{Status: statusFail, Latency: latency, Note: "envelope: " + err.Error()}
				}
				if !env.Error || env.Message != want.message || env.StatusCode != want.status {
					return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("envelope=%+v", env)}
				}
			}
			return Result{Status: statusPass, Latency: latency}
		},
	}
}

func generateOnce(ctx context.Context, r *Runner, url string) Result {
	payload := `{"destination":"Kyoto","travelers":"2 adults","duration":"4 days","interests":["food","temples"]}`
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(payload))
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	defer resp.Body.Close()
	latency := time.Since(start)

	var out struct {
		Success  bool `json:"success"`
		Metadata struct {
			InputTokens   int    `json:"inputTokens"`
			OutputTokens  int    `json:"outputTokens"`
			EstimatedCost string `json:"estimatedCost"`
			Model         string `json:"model"`
		} `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{Status: statusFail, Latency: latency, Note: err.Error()}
	}
	if resp.StatusCode != http.StatusOK || !out.Success {
		return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
	}
	return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("model=%s in=%d out=%d cost=%s",
		out.Metadata.Model, out.Metadata.InputTokens, out.Metadata.OutputTokens, out.Metadata.EstimatedCost)}
}

func perfLoad(ctx context.Context, r *Runner, url, payload string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(payload))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					errCount.Add(1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
