package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/mod/modfile"

	"github.com/ldemailly/sbomdeps/graph"
	"github.com/ldemailly/sbomdeps/sbom"
)

const sampleGoMod = `module example.com/widget

go 1.22

require (
	fortio.org/log v1.17.2
	golang.org/x/mod v0.24.0 // indirect
)
`

func parseGoMod(t *testing.T) *modfile.File {
	t.Helper()
	mf, err := modfile.Parse("go.mod", []byte(sampleGoMod), nil)
	require.NoError(t, err)
	return mf
}

func TestBuildDocument(t *testing.T) {
	t.Parallel()

	doc := buildDocument(parseGoMod(t))

	require.Equal(t, "example.com/widget", doc.Name)
	require.Equal(t, []sbom.Package{
		{SPDXID: "SPDXRef-example.com-widget", Name: "example.com/widget"},
		{SPDXID: "SPDXRef-fortio.org-log", Name: "fortio.org/log", VersionInfo: "v1.17.2"},
		{SPDXID: "SPDXRef-golang.org-x-mod", Name: "golang.org/x/mod", VersionInfo: "v0.24.0"},
	}, doc.Packages, "indirect requirements are included")
	require.Equal(t, []sbom.Relationship{
		{SPDXElementID: "SPDXRef-fortio.org-log", RelationshipType: sbom.RelationshipDependencyOf, RelatedSPDXElement: "SPDXRef-example.com-widget"},
		{SPDXElementID: "SPDXRef-golang.org-x-mod", RelationshipType: sbom.RelationshipDependencyOf, RelatedSPDXElement: "SPDXRef-example.com-widget"},
	}, doc.Relationships)
}

func TestBuildDocumentFeedsGraph(t *testing.T) {
	t.Parallel()

	g := graph.Build(buildDocument(parseGoMod(t)))

	require.Equal(t, []string{"SPDXRef-fortio.org-log", "SPDXRef-golang.org-x-mod"},
		g.Adj["SPDXRef-example.com-widget"])
	require.Empty(t, g.Placeholders)
}

func TestSPDXID(t *testing.T) {
	t.Parallel()

	require.Equal(t, "SPDXRef-fortio.org-log", spdxID("fortio.org/log"))
	require.Equal(t, "SPDXRef-example.com-foo-bar", spdxID("example.com/foo_bar"))
	require.Equal(t, "SPDXRef-widget", spdxID("widget"))
}
