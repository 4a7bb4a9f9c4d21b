package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aellingwood/iconforge/internal/generate"
)

func (s *IconServer) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_icon_plan",
		Description: "List every Android launcher icon iconforge writes: launcher and round icons plus adaptive-icon foregrounds for mdpi through xxxhdpi, with pixel sizes, output paths and the 66/108 safe-zone geometry of each foreground.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(false),
			Title:         "Get Icon Plan",
		},
	}, s.handleGetIconPlan)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_icons",
		Description: "Regenerate all 15 Android launcher icons from the source logo. Overwrites existing files in the res/ directory. Returns the files written, or the error that aborted the run.",
		Annotations: &mcp.ToolAnnotations{
			DestructiveHint: ptr(true),
			IdempotentHint:  true,
			OpenWorldHint:   ptr(false),
			Title:           "Generate Icons",
		},
	}, s.handleGenerateIcons)
}

func (s *IconServer) handleGetIconPlan(ctx context.Context, req *mcp.CallToolRequest, input GetIconPlanInput) (*mcp.CallToolResult, GetIconPlanOutput, error) {
	outputDir := input.OutputDir
	if outputDir == "" {
		outputDir = s.cfg.OutputDir
	}
	return nil, planOutput(outputDir), nil
}

func (s *IconServer) handleGenerateIcons(ctx context.Context, req *mcp.CallToolRequest, input GenerateIconsInput) (*mcp.CallToolResult, GenerateIconsOutput, error) {
	cfg := *s.cfg
	cfg.WithOverrides(map[string]any{
		"source":      input.Source,
		"outputDir":   input.OutputDir,
		"compression": input.Compression,
	})
	if err := cfg.Validate(); err != nil {
		return errorResult(fmt.Errorf("invalid arguments: %w", err)), GenerateIconsOutput{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	result, genErr := generate.NewGenerator(&cfg, generate.Options{}).Generate(ctx)

	out := GenerateIconsOutput{
		Source:    cfg.Source,
		OutputDir: cfg.OutputDir,
		Files:     []generate.File{},
	}
	if genErr != nil {
		out.Error = genErr.Error()
		out.DurationMs = time.Since(start).Milliseconds()
	} else {
		out.Success = true
		out.DurationMs = result.Duration.Milliseconds()
		out.SourceWidth = result.SourceWidth
		out.SourceHeight = result.SourceHeight
		out.Files = result.Files
	}

	s.lastRun = &RunDetail{
		Timestamp:  time.Now(),
		DurationMs: out.DurationMs,
		Success:    out.Success,
		Files:      len(out.Files),
		OutputDir:  out.OutputDir,
		Error:      out.Error,
	}

	_ = s.server.ResourceUpdated(ctx, &mcp.ResourceUpdatedNotificationParams{URI: uriStatus})

	return nil, out, nil
}
