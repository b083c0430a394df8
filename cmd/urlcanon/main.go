// Command urlcanon exposes the urlcanon library's operations from the
// command line: canonicalize, resolve, replace, rebase, register standard
// schemes, and crawl a starting set of pages for every URL they reference.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"runtime/pprof"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/martin-sucha/urlcanon"
	"github.com/martin-sucha/urlcanon/rewrite"
	"github.com/martin-sucha/urlcanon/urlrebase"
	"github.com/tdewolff/parse/v2"
	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"
)

func main() {
	app := &cli.App{
		Name:  "urlcanon",
		Usage: "canonicalize, resolve, and rewrite URLs",
		Commands: []*cli.Command{
			canonCommand(),
			resolveCommand(),
			replaceCommand(),
			rebaseCommand(),
			schemeCommand(),
			linksCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func canonCommand() *cli.Command {
	return &cli.Command{
		Name:      "canon",
		Usage:     "print the canonical form of a URL",
		ArgsUsage: "url",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "also print component byte ranges"},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 1 {
				return fmt.Errorf("urlcanon canon: expected a url argument")
			}
			out, parsed, err := urlcanon.Canonicalize([]byte(c.Args().First()))
			if err != nil {
				return fmt.Errorf("canonicalize: %w", err)
			}
			fmt.Println(string(out))
			if c.Bool("verbose") {
				printParsed(out, parsed)
			}
			return nil
		},
	}
}

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "resolve a reference URL against a base URL",
		ArgsUsage: "base ref",
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 2 {
				return fmt.Errorf("urlcanon resolve: expected base and ref arguments")
			}
			base, baseParsed, err := urlcanon.Canonicalize([]byte(c.Args().Get(0)))
			if err != nil {
				return fmt.Errorf("canonicalize base: %w", err)
			}
			out, _, err := urlcanon.ResolveRelativeURL(base, baseParsed, []byte(c.Args().Get(1)))
			if err != nil {
				return fmt.Errorf("resolve: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func replaceCommand() *cli.Command {
	var scheme, username, password, host, port, path, query, ref string
	var clearUsername, clearPassword, clearPort, clearQuery, clearRef bool
	return &cli.Command{
		Name:      "replace",
		Usage:     "canonicalize a URL with some components overridden",
		ArgsUsage: "url",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scheme", Destination: &scheme},
			&cli.StringFlag{Name: "username", Destination: &username},
			&cli.StringFlag{Name: "password", Destination: &password},
			&cli.StringFlag{Name: "host", Destination: &host},
			&cli.StringFlag{Name: "port", Destination: &port},
			&cli.StringFlag{Name: "path", Destination: &path},
			&cli.StringFlag{Name: "query", Destination: &query},
			&cli.StringFlag{Name: "ref", Destination: &ref},
			&cli.BoolFlag{Name: "clear-username", Destination: &clearUsername},
			&cli.BoolFlag{Name: "clear-password", Destination: &clearPassword},
			&cli.BoolFlag{Name: "clear-port", Destination: &clearPort},
			&cli.BoolFlag{Name: "clear-query", Destination: &clearQuery},
			&cli.BoolFlag{Name: "clear-ref", Destination: &clearRef},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 1 {
				return fmt.Errorf("urlcanon replace: expected a url argument")
			}
			orig, parsed, err := urlcanon.Canonicalize([]byte(c.Args().First()))
			if err != nil {
				return fmt.Errorf("canonicalize: %w", err)
			}
			repl := urlcanon.Replacements{}
			applyFlag(c, "scheme", scheme, &repl.Scheme)
			applyFlag(c, "host", host, &repl.Host)
			applyFlag(c, "path", path, &repl.Path)
			applyClearableFlag(c, "username", username, clearUsername, &repl.Username)
			applyClearableFlag(c, "password", password, clearPassword, &repl.Password)
			applyClearableFlag(c, "port", port, clearPort, &repl.Port)
			applyClearableFlag(c, "query", query, clearQuery, &repl.Query)
			applyClearableFlag(c, "ref", ref, clearRef, &repl.Ref)

			out, _, err := urlcanon.ReplaceComponents(orig, parsed, repl)
			if err != nil {
				return fmt.Errorf("replace: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func applyFlag(c *cli.Context, name, value string, r *urlcanon.ComponentReplacement) {
	if c.IsSet(name) {
		*r = urlcanon.SetValue(value)
	}
}

func applyClearableFlag(c *cli.Context, name, value string, clear bool, r *urlcanon.ComponentReplacement) {
	if clear {
		*r = urlcanon.ClearValue()
		return
	}
	if c.IsSet(name) {
		*r = urlcanon.SetValue(value)
	}
}

func rebaseCommand() *cli.Command {
	return &cli.Command{
		Name:      "rebase",
		Usage:     "rewrite a URL from one base to another",
		ArgsUsage: "url old-base new-base",
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 3 {
				return fmt.Errorf("urlcanon rebase: expected url, old-base, and new-base arguments")
			}
			out, err := urlrebase.Rebase(
				[]byte(c.Args().Get(0)),
				[]byte(c.Args().Get(1)),
				[]byte(c.Args().Get(2)),
			)
			if err != nil {
				return fmt.Errorf("rebase: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func schemeCommand() *cli.Command {
	return &cli.Command{
		Name:  "scheme",
		Usage: "manage the process-wide standard scheme registry",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "register scheme as standard for the rest of this process",
				ArgsUsage: "scheme",
				Action: func(c *cli.Context) error {
					if c.Args().Len() < 1 {
						return fmt.Errorf("urlcanon scheme add: expected a scheme argument")
					}
					urlcanon.AddStandardScheme(c.Args().First())
					return nil
				},
			},
			{
				Name:      "is-standard",
				Usage:     "report whether scheme is registered as standard",
				ArgsUsage: "scheme",
				Action: func(c *cli.Context) error {
					if c.Args().Len() < 1 {
						return fmt.Errorf("urlcanon scheme is-standard: expected a scheme argument")
					}
					fmt.Println(urlcanon.IsStandardScheme([]byte(c.Args().First())))
					return nil
				},
			},
		},
	}
}

func linksCommand() *cli.Command {
	return &cli.Command{
		Name:      "links",
		Usage:     "fetch pages and print every canonical URL they link to",
		ArgsUsage: "url [url...]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "workers", Value: 4},
			&cli.Float64Flag{Name: "rate", Value: 5, Usage: "max fetches per second"},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 1 {
				return fmt.Errorf("urlcanon links: expected at least one url argument")
			}
			f := &fetcher{
				client:  http.Client{Timeout: 30 * time.Second},
				limiter: rate.NewLimiter(rate.Limit(c.Float64("rate")), 1),
			}
			found := f.run(c.Args().Slice(), c.Int("workers"))
			sort.Strings(found)
			for _, u := range found {
				fmt.Println(u)
			}
			return nil
		},
	}
}

// fetcher crawls a fixed initial set of pages one level deep (it does not
// follow discovered links) and collects every canonical URL they reference,
// throttled by a shared rate.Limiter. Grounded on scraper.Scraper's
// worker-pool shape (channel-fed workers, pprof.Do labels per worker), but
// simplified to a single fixed batch instead of an open work queue since
// URL extraction — not recursive crawling — is what this command
// showcases.
type fetcher struct {
	client  http.Client
	limiter *rate.Limiter
}

func (f *fetcher) run(seedURLs []string, workerCount int) []string {
	tasks := make(chan string)
	results := make(chan []string)

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		labels := pprof.Labels("urlcanon-links-worker", strconv.Itoa(i))
		go pprof.Do(context.Background(), labels, func(ctx context.Context) {
			defer wg.Done()
			for rawURL := range tasks {
				urls, err := f.fetchAndExtract(ctx, rawURL)
				if err != nil {
					log.Printf("links: %s: %v", rawURL, err)
					continue
				}
				results <- urls
			}
		})
	}

	go func() {
		defer close(tasks)
		for _, u := range seedURLs {
			tasks <- u
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	seen := make(map[string]struct{})
	for urls := range results {
		for _, u := range urls {
			seen[u] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for u := range seen {
		out = append(out, u)
	}
	return out
}

func (f *fetcher) fetchAndExtract(ctx context.Context, rawURL string) ([]string, error) {
	base, baseParsed, err := urlcanon.Canonicalize([]byte(rawURL))
	if err != nil {
		return nil, fmt.Errorf("canonicalize seed url: %w", err)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, string(base), nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || !rewrite.IsSupportedMediaType(mediaType, params) {
		return nil, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var discovered []string
	rewriter := func(rawRef string) (string, error) {
		out, _, err := urlcanon.ResolveRelativeURL(base, baseParsed, []byte(strings.TrimSpace(rawRef)))
		if err != nil {
			return "", rewrite.ErrNotModified
		}
		discovered = append(discovered, string(out))
		return "", rewrite.ErrNotModified
	}

	var sb strings.Builder
	if err := rewrite.Document(mediaType, params, parse.NewInputBytes(body), &sb, rewriter); err != nil {
		return nil, err
	}
	return discovered, nil
}

func printParsed(buf []byte, p urlcanon.Parsed) {
	print1 := func(name string, c urlcanon.Component) {
		if !c.IsValid() {
			fmt.Printf("  %-8s <absent>\n", name)
			return
		}
		fmt.Printf("  %-8s %q [%d,%d)\n", name, c.Slice(buf), c.Begin, c.End())
	}
	print1("scheme", p.Scheme)
	print1("username", p.Username)
	print1("password", p.Password)
	print1("host", p.Host)
	print1("port", p.Port)
	print1("path", p.Path)
	print1("query", p.Query)
	print1("ref", p.Ref)
}
