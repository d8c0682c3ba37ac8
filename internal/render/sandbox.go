package render

import (
	"regexp"
	"strings"
	"text/template"
)

// SandboxAttr is the iframe sandbox value for previews: scripts run, but
// the document gets an opaque origin (no host storage, cookies or DOM)
// and may not navigate the top frame, submit forms or open popups.
const SandboxAttr = "allow-scripts"

// SandboxCSP is sent with a standalone preview response so the document
// is isolated even when opened outside the host iframe.
const SandboxCSP = "sandbox " + SandboxAttr

var scriptClose = regexp.MustCompile(`(?i)</script`)

var sandboxTemplate = template.Must(template.New("sandbox").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <script src="https://cdn.tailwindcss.com"></script>
    <script src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
    <script src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
    <script src="https://unpkg.com/@babel/standalone/babel.min.js"></script>
    <link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap" rel="stylesheet">
    <style>
      body { font-family: 'Inter', sans-serif; margin: 0; padding: 0; }
    </style>
  </head>
  <body>
    <div id="preview-root"></div>
    <script type="text/babel">
      const { useState, useEffect, useMemo, useCallback, useRef } = React;

{{.Code}}

      class Root extends React.Component {
        constructor(props) {
          super(props);
          this.state = { error: null };
        }
        static getDerivedStateFromError(error) {
          return { error };
        }
        render() {
          if (this.state.error) {
            return <div className="p-8 text-red-500">Error rendering: {String(this.state.error.message || this.state.error)}</div>;
          }
          try {
            return <ClonedWebsite />;
          } catch (e) {
            return <div className="p-8 text-red-500">Error rendering: {e.message}</div>;
          }
        }
      }

      const root = ReactDOM.createRoot(document.getElementById('preview-root'));
      root.render(<Root />);
    </script>
  </body>
</html>
`))

// PrepareComponent strips the module export wrapper so the component is a
// plain declaration in the preview script. Only the first occurrence of
// each pattern is rewritten. A "</script" sequence is escaped so the code
// cannot terminate the host script element.
func PrepareComponent(code string) string {
	code = strings.Replace(code, "export default ClonedWebsite;", "", 1)
	code = strings.Replace(code, "export const ClonedWebsite", "const ClonedWebsite", 1)
	return scriptClose.ReplaceAllStringFunc(code, func(m string) string {
		return "<\\/" + m[2:]
	})
}

// SandboxDocument builds a self-contained HTML document that mounts the
// generated ClonedWebsite component. Render faults show an inline message
// instead of escaping the document.
func SandboxDocument(code string) string {
	var b strings.Builder
	// The template only interpolates a string, so Execute cannot fail.
	_ = sandboxTemplate.Execute(&b, struct{ Code string }{Code: PrepareComponent(code)})
	return b.String()
}
