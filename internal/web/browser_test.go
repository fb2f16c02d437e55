//go:build e2e

package web

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/goserg/rosterserver/internal/config"
	"github.com/goserg/rosterserver/internal/metrics"
	"github.com/goserg/rosterserver/internal/service"
	"github.com/goserg/rosterserver/internal/storage/mem"
)

// TestBrowserListPage needs a local Chrome: go test -tags e2e ./internal/web/
func TestBrowserListPage(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	cfg := config.Server{UpdateMode: config.UpdateModeLenient}
	rec := metrics.NewRecorder()
	ps := service.New(mem.New(), cfg, l, rec)
	_, err := ps.Seed(context.Background(), service.DemoPlayers)
	require.NoError(t, err)
	server, err := New(ps, cfg, l, rec)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = server.Listener(ln) }()
	t.Cleanup(func() { _ = server.Shutdown() })

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var rows []*cdp.Node
	err = chromedp.Run(ctx,
		chromedp.Navigate("http://"+ln.Addr().String()+"/"),
		chromedp.WaitVisible("tr.player", chromedp.ByQuery),
		chromedp.Nodes("tr.player", &rows, chromedp.ByQueryAll),
	)
	require.NoError(t, err)
	require.Len(t, rows, len(service.DemoPlayers))
}
