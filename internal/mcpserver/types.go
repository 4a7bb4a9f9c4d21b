// Package mcpserver implements an MCP (Model Context Protocol) server for
// iconforge, exposing the icon plan, the resolved configuration and icon
// generation to MCP clients.
package mcpserver

import (
	"time"

	"github.com/aellingwood/iconforge/internal/generate"
	"github.com/aellingwood/iconforge/internal/icon"
)

// TargetInfo describes one planned icon file.
type TargetInfo struct {
	Density string    `json:"density"`
	Kind    icon.Kind `json:"kind"`
	Size    int       `json:"size"`
	Path    string    `json:"path"`
	// Safe-zone geometry, set for adaptive foregrounds only.
	SafeZoneSize   int `json:"safeZoneSize,omitempty"`
	SafeZoneOffset int `json:"safeZoneOffset,omitempty"`
}

// SourceInfo describes the configured source logo.
type SourceInfo struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

// GetIconPlanInput is the input for the get_icon_plan tool.
type GetIconPlanInput struct {
	OutputDir string `json:"outputDir,omitempty" jsonschema:"Override the Android res/ directory the plan is rooted at"`
}

// GetIconPlanOutput is the output from the get_icon_plan tool.
type GetIconPlanOutput struct {
	OutputDir       string       `json:"outputDir"`
	SafeZoneUnits   int          `json:"safeZoneUnits"`
	ForegroundUnits int          `json:"foregroundUnits"`
	Targets         []TargetInfo `json:"targets"`
}

// GenerateIconsInput is the input for the generate_icons tool.
type GenerateIconsInput struct {
	Source      string `json:"source,omitempty"      jsonschema:"Override the source logo path"`
	OutputDir   string `json:"outputDir,omitempty"   jsonschema:"Override the Android res/ directory"`
	Compression string `json:"compression,omitempty" jsonschema:"PNG compression: default, best, speed or none"`
}

// GenerateIconsOutput is the output from the generate_icons tool.
type GenerateIconsOutput struct {
	Success      bool            `json:"success"`
	DurationMs   int64           `json:"durationMs"`
	Source       string          `json:"source"`
	SourceWidth  int             `json:"sourceWidth,omitempty"`
	SourceHeight int             `json:"sourceHeight,omitempty"`
	OutputDir    string          `json:"outputDir"`
	Files        []generate.File `json:"files"`
	Error        string          `json:"error,omitempty"`
}

// GenerateStatus holds the last generation result.
type GenerateStatus struct {
	LastRun *RunDetail `json:"lastRun"`
}

// RunDetail describes a completed generation run.
type RunDetail struct {
	Timestamp  time.Time `json:"timestamp"`
	DurationMs int64     `json:"durationMs"`
	Success    bool      `json:"success"`
	Files      int       `json:"files"`
	OutputDir  string    `json:"outputDir"`
	Error      string    `json:"error,omitempty"`
}
