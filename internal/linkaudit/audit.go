// Package linkaudit checks whether the absolute links of a page
// configuration are reachable. Problems are reported as warnings; an
// unreachable link never makes a configuration invalid.
package linkaudit

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Bahjat/page-composer/backend/internal/model"
)

const maxLinks = 1000

// Link is an absolute URL found in a section.
type Link struct {
	Section model.SectionID
	Path    string
	URL     string
}

// Result is the outcome of checking one link. Status is zero when no
// response was received.
type Result struct {
	Link
	Status int
	Err    error
}

// Reachable reports whether the link answered with a non-error status.
func (r Result) Reachable() bool {
	return r.Err == nil && r.Status > 0 && r.Status < 400
}

// Auditor checks links with a bounded number of concurrent requests.
type Auditor struct {
	client      *http.Client
	concurrency int
}

// New returns an Auditor that refuses private and reserved addresses and
// does not follow redirects.
func New(concurrency int) *Auditor {
	return newAuditor(concurrency, &http.Transport{
		DialContext:         publicOnlyDialer().DialContext,
		MaxConnsPerHost:     concurrency,
		MaxIdleConnsPerHost: concurrency,
		IdleConnTimeout:     90 * time.Second,
	})
}

func newAuditor(concurrency int, transport http.RoundTripper) *Auditor {
	return &Auditor{
		concurrency: max(concurrency, 1),
		client: &http.Client{
			Timeout:   5 * time.Second,
			Transport: transport,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Collect returns the distinct absolute http(s) links of cfg in section
// order. Relative paths and anchors are skipped.
func Collect(cfg *model.PageConfig) []Link {
	var links []Link
	seen := make(map[string]bool)

	for _, s := range cfg.Sections {
		if s.Props == nil {
			continue
		}
		tree, err := model.EncodeProps(s.Props)
		if err != nil {
			continue
		}
		collect(tree, "", func(path, url string) {
			if seen[url] || len(links) >= maxLinks {
				return
			}
			seen[url] = true
			links = append(links, Link{Section: s.ID, Path: path, URL: url})
		})
	}
	return links
}

func collect(v any, path string, add func(path, url string)) {
	switch val := v.(type) {
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(val)) {
			child := k
			if path != "" {
				child = path + "." + k
			}
			if s, ok := val[k].(string); ok && (k == "href" || k == "src") && isAbsolute(s) {
				add(child, s)
				continue
			}
			collect(val[k], child, add)
		}
	case []any:
		for i, item := range val {
			collect(item, fmt.Sprintf("%s[%d]", path, i), add)
		}
	}
}

func isAbsolute(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Check requests every link and returns one result per link, in input order.
func (a *Auditor) Check(ctx context.Context, links []Link) []Result {
	results := make([]Result, len(links))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, l := range links {
		g.Go(func() error {
			status, err := a.probe(ctx, l.URL)
			results[i] = Result{Link: l, Status: status, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Audit checks the links of cfg and describes every unreachable one.
func (a *Auditor) Audit(ctx context.Context, cfg *model.PageConfig) []string {
	var warnings []string
	for _, r := range a.Check(ctx, Collect(cfg)) {
		if r.Reachable() {
			continue
		}
		reason := fmt.Sprintf("HTTP %d", r.Status)
		if r.Err != nil {
			reason = r.Err.Error()
		}
		warnings = append(warnings, fmt.Sprintf("section %s: link %s at %s is unreachable (%s)", r.Section, r.URL, r.Path, reason))
	}
	return warnings
}

// probe sends HEAD and retries with GET when the server refuses HEAD.
func (a *Auditor) probe(ctx context.Context, url string) (int, error) {
	status, err := a.do(ctx, http.MethodHead, url)
	if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusForbidden) {
		return a.do(ctx, http.MethodGet, url)
	}
	return status, err
}

func (a *Auditor) do(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return 0, err
	}
	_ = resp.Body.Close()
	return resp.StatusCode, nil
}
