package crawler

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/port"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

const userAgent = "versus-web-cache-warmer/1.0"

// skipPaths - статика, JSON API и служебные адреса прогревать не нужно
var skipPaths = regexp.MustCompile(`/(static|api)/|/healthz|[?&]enviado=`)

// Config - параметры обхода
type Config struct {
	StartURL    string
	MaxDepth    int
	Parallelism int
	Delay       time.Duration
	// MaxPages - ограничение на число запросов, 0 - без ограничения
	MaxPages int
}

// Report - итог обхода
type Report struct {
	Visited  int
	Statuses map[int]int
	Failures []string
}

// SiteWarmer обходит собственный сайт по ссылкам одного хоста, чтобы каждая
// страница прошла через кэш ответов CMS.
type SiteWarmer struct {
	cfg      Config
	start    *url.URL
	hostname string
}

func NewSiteWarmer(cfg Config) (*SiteWarmer, error) {
	start, err := url.Parse(cfg.StartURL)
	if err != nil || start.Hostname() == "" {
		return nil, fmt.Errorf("invalid start url %q", cfg.StartURL)
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	return &SiteWarmer{cfg: cfg, start: start, hostname: start.Hostname()}, nil
}

func (w *SiteWarmer) collector(ctx context.Context) (*colly.Collector, error) {
	options := []colly.CollectorOption{
		colly.AllowedDomains(w.hostname),
		colly.UserAgent(userAgent),
		colly.DisallowedURLFilters(skipPaths),
		colly.StdlibContext(ctx),
		colly.Async(true),
	}
	if w.cfg.MaxDepth > 0 {
		options = append(options, colly.MaxDepth(w.cfg.MaxDepth))
	}
	c := colly.NewCollector(options...)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: w.cfg.Parallelism,
		Delay:       w.cfg.Delay,
	}); err != nil {
		return nil, fmt.Errorf("failed to set limit rule: %w", err)
	}
	extensions.Referer(c)
	return c, nil
}

// Warm обходит сайт и возвращает статистику по ответам.
func (w *SiteWarmer) Warm(ctx context.Context) (*Report, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SiteWarmer",
		"start_url": w.start.String(),
	})

	c, err := w.collector(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		requests int
		report   = &Report{Statuses: make(map[int]int)}
	)

	c.OnRequest(func(r *colly.Request) {
		mu.Lock()
		defer mu.Unlock()
		if w.cfg.MaxPages > 0 && requests >= w.cfg.MaxPages {
			r.Abort()
			return
		}
		requests++
	})

	c.OnResponse(func(r *colly.Response) {
		mu.Lock()
		report.Visited++
		report.Statuses[r.StatusCode]++
		mu.Unlock()
		logger.Debug("Page warmed", port.Fields{"url": r.Request.URL.String(), "status_code": r.StatusCode})
	})

	c.OnError(func(r *colly.Response, err error) {
		mu.Lock()
		report.Visited++
		report.Statuses[r.StatusCode]++
		report.Failures = append(report.Failures, r.Request.URL.String())
		mu.Unlock()
		logger.Warn("Page failed", port.Fields{
			"url":         r.Request.URL.String(),
			"status_code": r.StatusCode,
			"error":       err.Error(),
		})
	})

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		// ошибки Visit - уже посещенные и чужие адреса, это нормально
		_ = e.Request.Visit(href)
	})

	logger.Info("Cache warm-up started", nil)
	if err := c.Visit(w.start.String()); err != nil {
		return nil, fmt.Errorf("failed to visit start url: %w", err)
	}
	c.Wait()

	sort.Strings(report.Failures)
	logger.Info("Cache warm-up finished", port.Fields{
		"visited":  report.Visited,
		"failures": len(report.Failures),
	})

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}
