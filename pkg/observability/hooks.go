// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. The atlas root command registers
// logging hooks before each command runs; libraries call them as events happen.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetRegistryHooks(&myRegistryHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	// ... rebuild and flush ...
//	observability.Render().OnSync(len(intent), time.Since(start), err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the canvas renderer.
type RenderHooks interface {
	// OnSync records one rebuild-and-flush pass that declared elements shapes.
	OnSync(elements int, duration time.Duration, err error)

	// OnPlace records an entity placed at a World position.
	OnPlace(entity, x, y int)
}

// =============================================================================
// Registry Hooks
// =============================================================================

// RegistryHooks receives events from the card registry.
type RegistryHooks interface {
	// OnIngest records one card import attempt. key is empty on failure.
	OnIngest(key string, err error)

	// OnCull records a card dropped because its folders are gone.
	OnCull(key string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnSync(int, time.Duration, error) {}
func (NoopRenderHooks) OnPlace(int, int, int)            {}

// NoopRegistryHooks is a no-op implementation of RegistryHooks.
type NoopRegistryHooks struct{}

func (NoopRegistryHooks) OnIngest(string, error) {}
func (NoopRegistryHooks) OnCull(string)          {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks   RenderHooks   = NoopRenderHooks{}
	registryHooks RegistryHooks = NoopRegistryHooks{}
	hooksMu       sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetRegistryHooks registers custom registry hooks.
// This should be called once at application startup before any imports.
func SetRegistryHooks(h RegistryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		registryHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Registry returns the registered registry hooks.
func Registry() RegistryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return registryHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	registryHooks = NoopRegistryHooks{}
}
