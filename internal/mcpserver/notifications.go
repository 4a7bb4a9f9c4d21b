package mcpserver

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aellingwood/iconforge/internal/watch"
)

// startWatcher notifies subscribed clients when the source logo changes on
// disk, so they can re-read its dimensions or regenerate.
func (s *IconServer) startWatcher(ctx context.Context) {
	w := watch.NewWatcher([]string{s.cfg.Source}, s.cfg.Watch.Debounce, func() {
		_ = s.server.ResourceUpdated(ctx, &mcp.ResourceUpdatedNotificationParams{
			URI: uriSource,
		})
	})

	go func() {
		<-ctx.Done()
		w.Stop()
	}()
	go func() {
		// Best effort: the server works without change notifications.
		if err := w.Start(); err != nil {
			log.Printf("warning: source watcher stopped: %v", err)
		}
	}()
}
