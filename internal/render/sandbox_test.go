package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrepareComponent_StripsExports(t *testing.T) {
	code := "export const ClonedWebsite = () => <div>Hi</div>;\nexport default ClonedWebsite;"
	out := PrepareComponent(code)
	require.Equal(t, "const ClonedWebsite = () => <div>Hi</div>;\n", out)
}

func TestPrepareComponent_OnlyFirstOccurrence(t *testing.T) {
	code := "export default ClonedWebsite;\nconst ClonedWebsite = () => <p>export default ClonedWebsite;</p>;"
	out := PrepareComponent(code)
	require.Equal(t, "\nconst ClonedWebsite = () => <p>export default ClonedWebsite;</p>;", out)
}

func TestPrepareComponent_NeutralizesScriptClose(t *testing.T) {
	out := PrepareComponent(`const a = "</script><script>alert(1)</SCRIPT>";`)
	require.NotContains(t, strings.ToLower(out), "</script")
	require.Contains(t, out, `<\/script>`)
	require.Contains(t, out, `<\/SCRIPT>`)
}

func TestSandboxDocument(t *testing.T) {
	doc := SandboxDocument("export default ClonedWebsite;\nconst ClonedWebsite = () => <div>Hi</div>;")

	require.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	require.Contains(t, doc, "const ClonedWebsite = () => <div>Hi</div>;")
	require.NotContains(t, doc, "export default ClonedWebsite;")
	require.Contains(t, doc, `<div id="preview-root"></div>`)
	require.Contains(t, doc, "ReactDOM.createRoot(document.getElementById('preview-root'))")
	require.Contains(t, doc, "Error rendering:")
	require.Contains(t, doc, "getDerivedStateFromError")
	require.Contains(t, doc, `<script type="text/babel">`)
	require.Equal(t, 1, strings.Count(doc, `<script type="text/babel">`))
}

func TestSandboxPolicy(t *testing.T) {
	require.Equal(t, "allow-scripts", SandboxAttr)
	require.NotContains(t, SandboxAttr, "allow-same-origin")
	require.NotContains(t, SandboxAttr, "allow-top-navigation")
	require.Equal(t, "sandbox allow-scripts", SandboxCSP)
}
