// Package hub provides the registry that resolves (kind, code) pairs to
// calendar adapters. A Hub is an explicit, injectable object — there is no
// package-level singleton — so tests and services construct isolated
// registries with New.
package hub

import (
	"fmt"
	"sync"
	"time"

	"bizcal/internal/calendar"
	"bizcal/internal/domain"
	"bizcal/internal/source"
)

// AlpacaCredentials configures the optional remote exchange source used
// when no embedded session table exists for a MIC code.
type AlpacaCredentials struct {
	APIKey    string
	APISecret string
	BaseURL   string
}

// Hub caches constructed base adapters by (kind, code). Base adapters are
// built lazily on first lookup and reused for the life of the Hub; there is
// no eviction. Override-wrapped and combined adapters are never cached —
// they are cheap to build and their identity is call-site-scoped.
type Hub struct {
	mu     sync.Mutex
	cache  map[domain.Key]calendar.Adapter
	alpaca *AlpacaCredentials

	// Horizon requested from the remote exchange source.
	remoteStart, remoteEnd time.Time
}

// Option configures a Hub.
type Option func(*Hub)

// WithAlpaca enables falling back to the Alpaca trading-calendar API for
// exchange codes without an embedded table. The session window [start, end]
// is fetched once per code, at construction.
func WithAlpaca(creds AlpacaCredentials, start, end time.Time) Option {
	return func(h *Hub) {
		h.alpaca = &creds
		h.remoteStart, h.remoteEnd = start, end
	}
}

// New constructs an empty registry.
func New(opts ...Option) *Hub {
	h := &Hub{cache: make(map[domain.Key]calendar.Adapter)}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Get resolves a base adapter, constructing and caching it on first use.
// Concurrent first-time lookups for the same key are serialized; failed
// constructions are not cached and not retried here.
func (h *Hub) Get(kind domain.Kind, code string) (calendar.Adapter, error) {
	key := domain.NewKey(kind, code)

	h.mu.Lock()
	defer h.mu.Unlock()

	if a, ok := h.cache[key]; ok {
		return a, nil
	}

	a, err := h.build(key)
	if err != nil {
		return nil, err
	}
	h.cache[key] = a
	return a, nil
}

func (h *Hub) build(key domain.Key) (calendar.Adapter, error) {
	switch key.Kind {
	case domain.KindExchange:
		ex, err := source.NewExchange(key.Code)
		if err == nil || h.alpaca == nil {
			return ex, err
		}
		return source.NewAlpacaExchange(key.Code,
			h.alpaca.APIKey, h.alpaca.APISecret, h.alpaca.BaseURL,
			h.remoteStart, h.remoteEnd)
	case domain.KindCountry:
		return source.NewCountry(key.Code)
	case domain.KindRFR:
		return source.NewRFR(key.Code)
	}
	return nil, fmt.Errorf("%w: kind %q", domain.ErrUnknownCalendar, key.Kind)
}

// Combine resolves every key through Get and merges the results under mode.
// The composite itself is never cached.
func (h *Hub) Combine(keys []domain.Key, mode calendar.Mode) (calendar.Adapter, error) {
	if len(keys) < 2 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrEmptyCombination, len(keys))
	}
	adapters := make([]calendar.Adapter, 0, len(keys))
	for _, k := range keys {
		a, err := h.Get(k.Kind, k.Code)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return calendar.Combine(adapters, mode)
}

// WithOverrides resolves a base adapter and wraps it with per-date
// overrides. The wrapper is never cached; the cached base is untouched.
func (h *Hub) WithOverrides(kind domain.Kind, code string, addHolidays, removeHolidays []time.Time) (calendar.Adapter, error) {
	base, err := h.Get(kind, code)
	if err != nil {
		return nil, err
	}
	return calendar.WithOverrides(base, addHolidays, removeHolidays), nil
}

// Cached returns the keys currently resolved, mainly for diagnostics.
func (h *Hub) Cached() []domain.Key {
	h.mu.Lock()
	defer h.mu.Unlock()
	keys := make([]domain.Key, 0, len(h.cache))
	for k := range h.cache {
		keys = append(keys, k)
	}
	return keys
}
