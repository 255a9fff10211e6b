package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samvad-hq/atlas-client/internal/collector"
	"github.com/samvad-hq/atlas-client/internal/config"
	"github.com/samvad-hq/atlas-client/internal/logger"
	"github.com/samvad-hq/atlas-client/internal/storage"
	"github.com/samvad-hq/atlas-client/pkg/atlas"
	"github.com/samvad-hq/atlas-client/pkg/httpclient"
	"github.com/samvad-hq/atlas-client/pkg/publishers"
	"github.com/samvad-hq/atlas-client/pkg/queries"
)

const userAgent = "atlas-client/1.0"

// Collector represents the collector runtime. It manages the collection loop,
// coordinating between saved queries, the collector service and publishers. It
// also owns the digest store and the optional metrics endpoint.
type Collector struct {
	cfg             *config.Config
	queryReg        *queries.Registry
	fanout          *publishers.Fanout
	service         *collector.Service
	collectInterval time.Duration
	log             logger.Logger
	store           storage.Store
	metrics         *http.Server
}

// NewAtlasClient builds an Atlas client from application config.
func NewAtlasClient(cfg *config.Config, log logger.Logger) *atlas.Client {
	transport := httpclient.NewRestyClient(httpclient.Options{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: userAgent,
		Debug:     cfg.HTTPDebug,
	})
	opts := []atlas.Option{atlas.WithHTTPClient(transport)}
	if log != nil {
		opts = append(opts, atlas.WithLogger(log))
	}
	return atlas.NewClient(atlas.Config{APIKey: cfg.AtlasAPIKey, BaseURL: cfg.AtlasBaseURL}, opts...)
}

// NewCollector builds a collector runtime from config files.
func NewCollector(ctx context.Context, cfg *config.Config, log logger.Logger) (*Collector, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	queryReg, err := queries.LoadRegistry(cfg.QueriesFile)
	if err != nil {
		return nil, fmt.Errorf("load queries registry: %w", err)
	}
	enabledQueries := queryReg.Enabled()
	queryIDs := make([]string, 0, len(enabledQueries))
	for _, q := range enabledQueries {
		queryIDs = append(queryIDs, q.ID)
	}
	log.InfoObj("queries registry loaded", "queries_meta", map[string]any{
		"count": len(queryIDs),
		"ids":   queryIDs,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients, log)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		DigestTTL:       cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"digest_ttl_seconds":       int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	client := NewAtlasClient(cfg, log)

	return &Collector{
		cfg:             cfg,
		queryReg:        queryReg,
		fanout:          fanout,
		service:         collector.NewService(client, fanout, log, store),
		collectInterval: cfg.CollectInterval,
		log:             log,
		store:           store,
		metrics:         newMetricsServer(cfg.MetricsAddr),
	}, nil
}

// newMetricsServer returns nil when addr is empty.
func newMetricsServer(addr string) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Run starts the collection loop until the context is cancelled.
func (c *Collector) Run(ctx context.Context) error {
	if c == nil || c.service == nil {
		return fmt.Errorf("collector is not initialized")
	}
	defer c.shutdown()
	c.serveMetrics()

	qs := c.queryReg.Enabled()
	if len(qs) == 0 {
		c.log.WarnObj("no queries enabled; collector idle", "queries_file", c.cfg.QueriesFile)
		<-ctx.Done()
		return nil
	}

	c.log.InfoObj("collector loop starting", "collector_state", map[string]any{
		"queries_count":    len(qs),
		"publishers_count": c.fanout.Size(),
		"collect_interval": c.collectInterval.String(),
	})

	if err := c.runOnce(ctx, qs); err != nil {
		c.log.ErrorObj("initial collection failed", "error", err.Error())
	}

	ticker := time.NewTicker(c.collectInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.InfoObj("collector loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := c.runOnce(ctx, qs); err != nil {
				c.log.ErrorObj("scheduled collection failed", "error", err.Error())
			}
		}
	}
}

// runOnce performs a single collection pass across all enabled queries.
func (c *Collector) runOnce(ctx context.Context, qs []queries.Query) error {
	start := time.Now()
	c.log.InfoObj("collection started", "collect_meta", map[string]any{
		"queries_count": len(qs),
		"started_at":    start.UTC(),
	})
	if err := c.service.Run(ctx, qs); err != nil {
		return err
	}
	c.log.InfoObj("collection completed", "collect_meta", map[string]any{
		"queries_count": len(qs),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return nil
}

func (c *Collector) serveMetrics() {
	if c.metrics == nil {
		return
	}
	go func() {
		c.log.InfoObj("metrics endpoint listening", "metrics_addr", c.metrics.Addr)
		if err := c.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.log.ErrorObj("metrics server failed", "error", err.Error())
		}
	}()
}

// shutdown releases the metrics server, the store and the publishers, logging failures.
func (c *Collector) shutdown() {
	if c.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := c.metrics.Shutdown(ctx); err != nil {
			c.log.ErrorObj("metrics shutdown failed", "error", err.Error())
		}
		cancel()
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			c.log.ErrorObj("storage close failed", "error", err.Error())
		}
	}
	if c.fanout != nil {
		if err := c.fanout.Close(); err != nil {
			c.log.ErrorObj("publishers close failed", "error", err.Error())
		}
	}
}
