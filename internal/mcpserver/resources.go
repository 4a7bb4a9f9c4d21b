package mcpserver

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aellingwood/iconforge/internal/generate"
	"github.com/aellingwood/iconforge/internal/icon"
)

const (
	uriConfig = "iconforge://config"
	uriPlan   = "iconforge://plan"
	uriSource = "iconforge://source"
	uriStatus = "iconforge://generate/status"
)

func (s *IconServer) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriConfig,
		Name:        "Configuration",
		Description: "Resolved iconforge configuration",
		MIMEType:    "application/json",
	}, s.handleConfigResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriPlan,
		Name:        "Icon Plan",
		Description: "Every launcher, round and adaptive foreground icon with its density, pixel size and output path",
		MIMEType:    "application/json",
	}, s.handlePlanResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriSource,
		Name:        "Source Logo",
		Description: "Path and dimensions of the configured source logo",
		MIMEType:    "application/json",
	}, s.handleSourceResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriStatus,
		Name:        "Generation Status",
		Description: "Last generation result: timestamp, duration, file count, error",
		MIMEType:    "application/json",
	}, s.handleStatusResource)
}

func jsonResource(uri, data string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: "application/json", Text: data},
		},
	}
}

func marshalResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return jsonResource(uri, string(b)), nil
}

func (s *IconServer) handleConfigResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return marshalResource(req.Params.URI, s.cfg.View())
}

func (s *IconServer) handlePlanResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return marshalResource(req.Params.URI, planOutput(s.cfg.OutputDir))
}

func (s *IconServer) handleSourceResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return marshalResource(req.Params.URI, sourceInfo(s.cfg.Source))
}

func (s *IconServer) handleStatusResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	status := GenerateStatus{LastRun: s.lastRun}
	s.mu.Unlock()
	return marshalResource(req.Params.URI, status)
}

func planOutput(outputDir string) GetIconPlanOutput {
	plan := icon.NewPlan(outputDir)
	targets := make([]TargetInfo, len(plan))
	for i, t := range plan {
		targets[i] = TargetInfo{
			Density: t.Density,
			Kind:    t.Kind,
			Size:    t.Size,
			Path:    t.Path,
		}
		if t.Kind == icon.KindForeground {
			targets[i].SafeZoneSize, targets[i].SafeZoneOffset = icon.SafeZone(t.Size)
		}
	}
	return GetIconPlanOutput{
		OutputDir:       outputDir,
		SafeZoneUnits:   icon.SafeZoneUnits,
		ForegroundUnits: icon.ForegroundUnits,
		Targets:         targets,
	}
}

func sourceInfo(path string) SourceInfo {
	info := SourceInfo{Path: path}
	img, err := generate.LoadSource(path)
	if err != nil {
		info.Exists = !errors.Is(err, generate.ErrSourceNotFound)
		info.Error = err.Error()
		return info
	}
	info.Exists = true
	info.Width = img.Bounds().Dx()
	info.Height = img.Bounds().Dy()
	return info
}
