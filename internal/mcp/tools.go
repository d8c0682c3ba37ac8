package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition names a tool and describes it for clients.
type ToolDefinition struct {
	Name        string
	Description string
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		{Name: "clone_website", Description: "Generate a React + Tailwind component that recreates a website from a description, a URL and/or a screenshot data URI. Blocks until generation settles and returns the stored project."},
		{Name: "list_projects", Description: "List generated projects, newest first, without code"},
		{Name: "get_project", Description: "Get a project including its code and design analysis"},
		{Name: "delete_project", Description: "Delete a project"},
		{Name: "get_state", Description: "Get the current phase, view and active project"},
		{Name: "render_code", Description: "Render a project's code as highlighted HTML"},
		{Name: "render_preview", Description: "Render a project's code as a standalone sandboxed preview document"},
		{Name: "get_recent_activity", Description: "List recent clone and delete activity, newest first"},
	}
}

func registerTools(server *sdkmcp.Server, h *Handler) {
	descriptions := make(map[string]string)
	for _, def := range buildToolCatalog() {
		descriptions[def.Name] = def.Description
	}

	addTool(server, "clone_website", descriptions, h.CloneWebsite)
	addTool(server, "list_projects", descriptions, h.ListProjects)
	addTool(server, "get_project", descriptions, h.GetProject)
	addTool(server, "delete_project", descriptions, h.DeleteProject)
	addTool(server, "get_state", descriptions, h.GetState)
	addTool(server, "render_code", descriptions, h.RenderCode)
	addTool(server, "render_preview", descriptions, h.RenderPreview)
	addTool(server, "get_recent_activity", descriptions, h.GetRecentActivity)
}

func addTool[In any](server *sdkmcp.Server, name string, descriptions map[string]string, fn func(context.Context, In) (any, error)) {
	tool := &sdkmcp.Tool{Name: name, Description: descriptions[name]}
	sdkmcp.AddTool(server, tool, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		out, err := fn(ctx, in)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolResult(out)
	})
}

func toolResult(out any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(out)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func toolError(err error) *sdkmcp.CallToolResult {
	payload := any(map[string]string{"code": "INTERNAL", "message": err.Error()})
	if apiErr, ok := err.(*APIError); ok {
		payload = apiErr
	}
	data, _ := json.Marshal(payload)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
