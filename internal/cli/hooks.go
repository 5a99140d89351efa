package cli

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/patchboard/atlas/pkg/observability"
)

// logHooks reports render and registry events as debug lines.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.RenderHooks   = logHooks{}
	_ observability.RegistryHooks = logHooks{}
)

func (h logHooks) OnSync(elements int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("sync failed", "elements", elements, "took", d.Round(time.Microsecond), "err", err)
		return
	}
	h.logger.Debug("sync", "elements", elements, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnPlace(entity, x, y int) {
	h.logger.Debug("placed", "entity", entity, "x", x, "y", y)
}

func (h logHooks) OnIngest(key string, err error) {
	if err != nil {
		h.logger.Debug("ingest failed", "err", err)
		return
	}
	h.logger.Debug("ingested", "key", key)
}

func (h logHooks) OnCull(key string) {
	h.logger.Debug("culled", "key", key)
}

// registerHooks routes observability events to l.
func registerHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetRenderHooks(h)
	observability.SetRegistryHooks(h)
}
