// Package searxng provides a web-search tool backed by a SearXNG instance.
//
// SearXNG is a self-hosted metasearch engine; this tool queries its JSON API
// and renders results as "title: url : snippet" lines for the agent's
// observation.
package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iterbot/iterbot"
	"github.com/iterbot/iterbot/schema"
)

// Defaults for the search tool.
const (
	DefaultBaseURL    = "http://127.0.0.1:8080/search"
	DefaultNumResults = 4
)

// ToolName is the name the tool registers under.
const ToolName = "search_web"

// Config configures the search tool.
type Config struct {
	// BaseURL is the SearXNG search endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// NumResults bounds how many results are rendered. Defaults to
	// DefaultNumResults.
	NumResults int

	// Engines restricts the search to the named engines. Empty lets SearXNG
	// pick.
	Engines []string

	// HTTPClient is the client used for requests. Defaults to a client with
	// a 15s timeout.
	HTTPClient *http.Client
}

// paramsSchema validates arguments before a search runs, so a bad
// num_results or engines value is reported to the model precisely instead of
// being silently ignored.
var paramsSchema = schema.MustCompile(schema.Object(map[string]*schema.Property{
	"query":          schema.String("Search query to execute"),
	"url":            schema.String("Search API endpoint URL"),
	"num_results":    schema.Integer("Maximum number of results").Min(1),
	"search_engines": schema.StringArray("Search engine names to use"),
}, "query"))

// New creates the search_web tool.
func New(cfg Config) iterbot.Tool {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.NumResults <= 0 {
		cfg.NumResults = DefaultNumResults
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}

	params := []iterbot.Param{
		{Name: "query"},
		{Name: "url", Default: cfg.BaseURL, HasDefault: true},
		{Name: "num_results", Default: cfg.NumResults, HasDefault: true},
		{Name: "search_engines", Default: []string{}, HasDefault: true},
	}

	return iterbot.NewToolFunc(ToolName, params,
		func(ctx context.Context, args map[string]any) (any, error) {
			return search(ctx, cfg, args)
		}).WithSchema(paramsSchema)
}

// result is one entry of SearXNG's JSON response.
type result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

func search(ctx context.Context, cfg Config, args map[string]any) (string, error) {
	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("query must not be empty")
	}

	endpoint := cfg.BaseURL
	if v, ok := args["url"].(string); ok && v != "" {
		endpoint = v
	}
	numResults := cfg.NumResults
	if v, ok := args["num_results"].(float64); ok && int(v) > 0 {
		numResults = int(v)
	}
	engines := cfg.Engines
	if v, ok := args["search_engines"].([]any); ok {
		engines = nil
		for _, e := range v {
			if s, ok := e.(string); ok {
				engines = append(engines, s)
			}
		}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("num_results", fmt.Sprintf("%d", numResults))
	if len(engines) > 0 {
		params.Set("engines", strings.Join(engines, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not reach SearXNG at %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("SearXNG returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var payload struct {
		Results []result `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(payload.Results) == 0 {
		return "No results found.", nil
	}
	if len(payload.Results) > numResults {
		payload.Results = payload.Results[:numResults]
	}

	lines := make([]string, 0, len(payload.Results))
	for _, r := range payload.Results {
		lines = append(lines, fmt.Sprintf("%s: %s : %s", orDefault(r.Title, "No title"),
			orDefault(r.URL, "No URL"), orDefault(r.Content, "No content")))
	}
	return strings.Join(lines, "\n"), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
