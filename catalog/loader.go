package catalog

import (
	"context"
	"sync"

	"github.com/0xletuss/67foodstreet/api"
	"github.com/0xletuss/67foodstreet/core"
)

// productLister is the slice of the api client the loader needs.
type productLister interface {
	ListProducts(ctx context.Context, category string) ([]api.Product, error)
}

// Loader fetches the catalog once per view and keeps the result for
// client-side filtering. Bounded retry-with-delay happens one layer down in
// the api client's read path; the loader owns the cached list, the error
// state a view renders with a manual-retry control, and staleness handling
// for superseded fetches.
type Loader struct {
	client productLister
	logger core.Logger

	mu         sync.Mutex
	products   []api.Product
	loadErr    error
	loaded     bool
	generation int
}

func NewLoader(client productLister, logger core.Logger) *Loader {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Loader{
		client: client,
		logger: logger,
	}
}

// Load fetches the product list unless a previous load already succeeded.
func (l *Loader) Load(ctx context.Context) ([]api.Product, error) {
	l.mu.Lock()
	if l.loaded {
		products := l.products
		l.mu.Unlock()
		return products, nil
	}
	l.mu.Unlock()
	return l.Reload(ctx)
}

// Reload always refetches; it backs the manual-retry control. Each call
// bumps a generation counter; if a slower superseded fetch finishes after a
// newer one, its result is discarded instead of clobbering fresher state.
func (l *Loader) Reload(ctx context.Context) ([]api.Product, error) {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.mu.Unlock()

	products, err := l.client.ListProducts(ctx, "")

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		// A newer reload finished first; keep its state.
		return l.products, l.loadErr
	}
	if err != nil {
		l.logger.Error("Catalog load failed", map[string]interface{}{
			"error": err.Error(),
		})
		l.loadErr = err
		l.loaded = false
		return nil, err
	}
	l.products = products
	l.loadErr = nil
	l.loaded = true
	return products, nil
}

// Products returns the last successful load, or nil with the load error.
func (l *Loader) Products() ([]api.Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.products, l.loadErr
}
