package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `cloneai turns a website description, URL or screenshot into a single React + Tailwind component named ClonedWebsite.

Workflow:
1) clone_website with a description, url and/or image_url (data URI). It blocks until generation settles.
2) list_projects / get_project to browse what is stored (newest first).
3) render_code for highlighted HTML, render_preview for a sandboxed preview document.
4) get_state to see the phase (idle, analyzing, success, error); get_recent_activity for failure details.

Only one generation runs at a time; a second clone_website while one is in flight fails with CLONE_IN_FLIGHT.

Docs: cloneai://docs/index
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "cloneai://docs/index",
		Name:        "docs_index",
		Title:       "cloneai docs index",
		Description: "Tools, project fields and error codes.",
		Content: `# cloneai

## Projects

| Field | Meaning |
|---|---|
| id | random id |
| name | the url, else the first 20 characters of the description, else "New Clone" |
| description, url, imageUrl | the inputs |
| code | generated component source |
| analysis | the model's design notes |
| timestamp | creation time, Unix milliseconds |

Projects cannot be edited. Delete and clone again instead.

## Preview

render_preview returns a full HTML document that loads React 18, Babel and
Tailwind from CDNs. Host it in an iframe with ` + "`sandbox=\"allow-scripts\"`" + `;
rendering faults show "Error rendering: ..." inside the document.

## Errors

- EMPTY_REQUEST: description, url and image_url were all empty.
- CLONE_IN_FLIGHT: another generation has not finished.
- CLONE_FAILED: generation or storage failed. The message is always the same;
  get_recent_activity with type clone_failed has the detail.
- PROJECT_NOT_FOUND: unknown id.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
