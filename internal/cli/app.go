package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/collapseloader/collapse/internal/branding"
	"github.com/collapseloader/collapse/internal/cache"
	"github.com/collapseloader/collapse/internal/catalog"
	"github.com/collapseloader/collapse/internal/config"
	"github.com/collapseloader/collapse/internal/custom"
	"github.com/collapseloader/collapse/internal/manifest"
	"github.com/collapseloader/collapse/internal/network"
	"github.com/collapseloader/collapse/internal/registry"
	"github.com/collapseloader/collapse/internal/retrieval"
	"github.com/collapseloader/collapse/internal/source"
	"github.com/collapseloader/collapse/internal/userdata"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the set of collaborators a command works with. Only the parts a
// command asks for are constructed.
type app struct {
	root   string
	opts   config.Options
	cache  *cache.Store
	custom *custom.Store

	servers *network.Servers
	catalog *catalog.Manager
	engine  *retrieval.Engine
}

// newLocalApp resolves settings and local stores without touching the network.
func newLocalApp() (*app, error) {
	root, err := userdata.EnsureRoot()
	if err != nil {
		return nil, err
	}
	opts, err := config.Current()
	if err != nil {
		return nil, err
	}
	if flagTimeout > 0 {
		opts.Timeout = flagTimeout
	}
	if flagAPIURL != "" {
		opts.APIURL = flagAPIURL
	}

	store := custom.NewStore(root)
	if err := store.Load(); err != nil {
		return nil, err
	}

	return &app{
		root:   root,
		opts:   opts,
		cache:  cache.NewStore(userdata.CachePath(root), cache.WithVersion(branding.Version())),
		custom: store,
	}, nil
}

// newOnlineApp connects and loads the catalog.
func newOnlineApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	a, err := connect(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if err := a.catalog.Initialize(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// connect probes servers and wires the catalog and engine. The catalog is
// left empty.
func connect(ctx context.Context, cmd *cobra.Command) (*app, error) {
	a, err := newLocalApp()
	if err != nil {
		return nil, err
	}
	a.probe(ctx)

	a.catalog = catalog.New(
		source.NewAPI(a.servers.Web(),
			source.WithLogger(logger.Named("source")),
			source.WithTimeout(a.opts.RequestTimeout())),
		a.cache,
		catalog.WithCustom(a.custom),
		catalog.WithPolicy(registry.Policy{
			ShowHidden:  a.opts.ShowHiddenClients,
			SortEnabled: a.opts.SortClients,
		}),
		catalog.WithLogger(logger.Named("catalog")),
	)

	transport := network.NewHTTPTransport(network.WithLogger(logger.Named("http")))
	a.engine = retrieval.New(a.root, a.servers.CDN(), transport,
		retrieval.WithLogger(logger.Named("retrieval")),
		retrieval.WithProgress(newProgress(cmd.ErrOrStderr()).Update))
	return a, nil
}

func (a *app) probe(ctx context.Context) {
	web := a.opts.WebServers
	if a.opts.APIURL != "" {
		web = []string{a.opts.APIURL}
	}
	a.servers = network.NewServers(a.opts.CDNServers, web, a.opts.RequestTimeout(), logger.Named("servers"))

	start := time.Now()
	a.servers.Probe(ctx)
	logger.Debug("server probe finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("cdn", a.servers.CDN()),
		zap.String("web", a.servers.Web()))
}

// lookup resolves a client by name, or by ID when the argument is "#<id>".
func (a *app) lookup(query string) (manifest.Descriptor, error) {
	var id int
	if _, err := fmt.Sscanf(query, "#%d", &id); err == nil {
		if d, ok := a.catalog.Get(id); ok {
			return d, nil
		}
		return manifest.Descriptor{}, fmt.Errorf("no client with id %d", id)
	}
	if d, ok := a.catalog.Find(query); ok {
		return d, nil
	}
	return manifest.Descriptor{}, fmt.Errorf("no client matching %q", query)
}
