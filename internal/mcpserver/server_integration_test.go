package mcpserver_test

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aellingwood/iconforge/internal/config"
	"github.com/aellingwood/iconforge/internal/mcpserver"
)

// newTestConfig writes a source logo into a temporary project and returns a
// config pointing at it.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Source = filepath.Join(dir, "icons", "logo.png")
	cfg.OutputDir = filepath.Join(dir, "res")

	if err := os.MkdirAll(filepath.Dir(cfg.Source), 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 128, 96))
	for y := 0; y < 96; y++ {
		for x := 0; x < 128; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 20, G: 160, B: 90, A: 255})
		}
	}
	f, err := os.Create(cfg.Source)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return cfg
}

// newTestClient starts an IconServer and connects a test client.
// Returns the client session and a cleanup function.
func newTestClient(t *testing.T, cfg *config.Config) (*mcp.ClientSession, func()) {
	t.Helper()
	return newTestClientWithOptions(t, cfg, nil)
}

func newTestClientWithOptions(t *testing.T, cfg *config.Config, opts *mcp.ClientOptions) (*mcp.ClientSession, func()) {
	t.Helper()

	srv := mcpserver.New(cfg, "test")

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0"}, opts)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connecting client: %v", err)
	}

	cleanup := func() {
		session.Close()
		cancel()
		select {
		case <-serverDone:
		case <-time.After(2 * time.Second):
		}
	}

	return session, cleanup
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool returned no content")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want *mcp.TextContent", result.Content[0])
	}
	return text.Text
}

func TestIntegration_Initialize(t *testing.T) {
	session, cleanup := newTestClient(t, newTestConfig(t))
	defer cleanup()

	res := session.InitializeResult()
	if res == nil || res.ServerInfo == nil {
		t.Fatal("expected initialize result with server info")
	}
	if res.ServerInfo.Name != "iconforge" {
		t.Errorf("server name = %q; want iconforge", res.ServerInfo.Name)
	}
}

func TestIntegration_ListResources(t *testing.T) {
	session, cleanup := newTestClient(t, newTestConfig(t))
	defer cleanup()

	result, err := session.ListResources(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListResources: %v", err)
	}

	uris := make(map[string]bool)
	for _, r := range result.Resources {
		uris[r.URI] = true
	}
	for _, uri := range []string{
		"iconforge://config",
		"iconforge://plan",
		"iconforge://source",
		"iconforge://generate/status",
	} {
		if !uris[uri] {
			t.Errorf("expected resource %q not found in list", uri)
		}
	}
}

func TestIntegration_ConfigResource(t *testing.T) {
	cfg := newTestConfig(t)
	session, cleanup := newTestClient(t, cfg)
	defer cleanup()

	result, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "iconforge://config"})
	if err != nil {
		t.Fatalf("ReadResource: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &got); err != nil {
		t.Fatalf("parsing config JSON: %v", err)
	}
	if got["source"] != cfg.Source {
		t.Errorf("source = %v; want %q", got["source"], cfg.Source)
	}
	if got["outputDir"] != cfg.OutputDir {
		t.Errorf("outputDir = %v; want %q", got["outputDir"], cfg.OutputDir)
	}
}

func TestIntegration_SourceResource(t *testing.T) {
	session, cleanup := newTestClient(t, newTestConfig(t))
	defer cleanup()

	result, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "iconforge://source"})
	if err != nil {
		t.Fatalf("ReadResource: %v", err)
	}

	var got mcpserver.SourceInfo
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &got); err != nil {
		t.Fatalf("parsing source JSON: %v", err)
	}
	if !got.Exists || got.Width != 128 || got.Height != 96 {
		t.Errorf("source info = %+v; want existing 128x96", got)
	}
}

func TestIntegration_GetIconPlan(t *testing.T) {
	cfg := newTestConfig(t)
	session, cleanup := newTestClient(t, cfg)
	defer cleanup()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_icon_plan",
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("CallTool get_icon_plan: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", result.Content)
	}

	var out mcpserver.GetIconPlanOutput
	if err := json.Unmarshal([]byte(toolText(t, result)), &out); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(out.Targets) != 15 {
		t.Fatalf("targets = %d; want 15", len(out.Targets))
	}
	if out.SafeZoneUnits != 66 || out.ForegroundUnits != 108 {
		t.Errorf("units = %d/%d; want 66/108", out.SafeZoneUnits, out.ForegroundUnits)
	}

	last := out.Targets[14]
	if last.Size != 432 || last.SafeZoneSize != 264 || last.SafeZoneOffset != 84 {
		t.Errorf("xxxhdpi foreground = %+v; want 432 canvas, 264 safe zone at 84", last)
	}
	want := filepath.Join(cfg.OutputDir, "mipmap-xxxhdpi", "ic_launcher_foreground.png")
	if last.Path != want {
		t.Errorf("path = %q; want %q", last.Path, want)
	}
}

func TestIntegration_GenerateIcons(t *testing.T) {
	cfg := newTestConfig(t)
	session, cleanup := newTestClient(t, cfg)
	defer cleanup()

	ctx := context.Background()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "generate_icons",
		Arguments: map[string]any{"compression": "speed"},
	})
	if err != nil {
		t.Fatalf("CallTool generate_icons: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", result.Content)
	}

	var out mcpserver.GenerateIconsOutput
	if err := json.Unmarshal([]byte(toolText(t, result)), &out); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if !out.Success {
		t.Fatalf("generation failed: %s", out.Error)
	}
	if len(out.Files) != 15 {
		t.Errorf("files = %d; want 15", len(out.Files))
	}
	for _, f := range out.Files {
		if _, err := os.Stat(f.Path); err != nil {
			t.Errorf("reported file %s missing: %v", f.Path, err)
		}
	}

	status, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "iconforge://generate/status"})
	if err != nil {
		t.Fatalf("ReadResource status: %v", err)
	}
	var st mcpserver.GenerateStatus
	if err := json.Unmarshal([]byte(status.Contents[0].Text), &st); err != nil {
		t.Fatalf("parsing status: %v", err)
	}
	if st.LastRun == nil || !st.LastRun.Success || st.LastRun.Files != 15 {
		t.Errorf("last run = %+v; want successful run with 15 files", st.LastRun)
	}
}

func TestIntegration_GenerateIcons_MissingSource(t *testing.T) {
	cfg := newTestConfig(t)
	session, cleanup := newTestClient(t, cfg)
	defer cleanup()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "generate_icons",
		Arguments: map[string]any{"source": filepath.Join(t.TempDir(), "missing.png")},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}

	var out mcpserver.GenerateIconsOutput
	if err := json.Unmarshal([]byte(toolText(t, result)), &out); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if out.Success {
		t.Error("expected failure for missing source")
	}
	if out.Error == "" {
		t.Error("expected error message")
	}
	if _, err := os.Stat(cfg.OutputDir); !os.IsNotExist(err) {
		t.Error("nothing should be written when the source is missing")
	}
}

func TestIntegration_GenerateIcons_InvalidCompression(t *testing.T) {
	session, cleanup := newTestClient(t, newTestConfig(t))
	defer cleanup()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "generate_icons",
		Arguments: map[string]any{"compression": "ultra"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for invalid compression")
	}
}

func TestIntegration_SourceUpdatedNotification(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Watch.Debounce = 20 * time.Millisecond

	updated := make(chan string, 10)
	session, cleanup := newTestClientWithOptions(t, cfg, &mcp.ClientOptions{
		ResourceUpdatedHandler: func(ctx context.Context, req *mcp.ResourceUpdatedNotificationRequest) {
			updated <- req.Params.URI
		},
	})
	defer cleanup()

	ctx := context.Background()
	if err := session.Subscribe(ctx, &mcp.SubscribeParams{URI: "iconforge://source"}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	// The source watcher starts alongside the server; keep touching the
	// logo until it reports the change.
	data, err := os.ReadFile(cfg.Source)
	if err != nil {
		t.Fatal(err)
	}
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(250 * time.Millisecond)
	defer tick.Stop()
	for {
		if err := os.WriteFile(cfg.Source, data, 0o644); err != nil {
			t.Fatal(err)
		}
		select {
		case uri := <-updated:
			if uri != "iconforge://source" {
				t.Fatalf("updated URI = %q; want iconforge://source", uri)
			}
			return
		case <-deadline:
			t.Fatal("no resource update for the source logo")
		case <-tick.C:
		}
	}
}

func TestIntegration_SubscribeUnknownResource(t *testing.T) {
	session, cleanup := newTestClient(t, newTestConfig(t))
	defer cleanup()

	err := session.Subscribe(context.Background(), &mcp.SubscribeParams{URI: "iconforge://nope"})
	if err == nil {
		t.Error("expected error subscribing to an unknown resource")
	}
}
