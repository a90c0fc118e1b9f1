package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ldemailly/sbomdeps/sbom"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Both services embed libfoo; the second copy of the package must be
	// dropped while both relationship edges survive.
	svcA := &sbom.Document{
		Packages: []sbom.Package{
			{SPDXID: "SPDXRef-svca", Name: "svca"},
			{SPDXID: "SPDXRef-libfoo", Name: "libfoo", VersionInfo: "1.0"},
		},
		Relationships: []sbom.Relationship{
			{SPDXElementID: "SPDXRef-libfoo", RelationshipType: sbom.RelationshipDependencyOf, RelatedSPDXElement: "SPDXRef-svca"},
		},
	}
	svcB := &sbom.Document{
		Packages: []sbom.Package{
			{SPDXID: "SPDXRef-svcb", Name: "svcb"},
			{SPDXID: "SPDXRef-libfoo", Name: "libfoo", VersionInfo: "2.0"}, // loses to svca's copy
		},
		Relationships: []sbom.Relationship{
			{SPDXElementID: "SPDXRef-libfoo", RelationshipType: sbom.RelationshipDependencyOf, RelatedSPDXElement: "SPDXRef-svcb"},
		},
	}

	// --- Act ---
	merged := merge([]input{{name: "svca", doc: svcA}, {name: "svcb", doc: svcB}})

	// --- Assert ---
	require.Equal(t, "svca+svcb", merged.Name)
	require.Equal(t, "SPDX-2.3", merged.SPDXVersion)
	require.Equal(t, []string{"Tool: sbomjoin"}, merged.CreationInfo.Creators)
	require.Equal(t, []sbom.Package{
		{SPDXID: "SPDXRef-svca", Name: "svca"},
		{SPDXID: "SPDXRef-libfoo", Name: "libfoo", VersionInfo: "1.0"},
		{SPDXID: "SPDXRef-svcb", Name: "svcb"},
	}, merged.Packages)
	require.Len(t, merged.Relationships, 2)
}

func TestMergeEmpty(t *testing.T) {
	t.Parallel()

	merged := merge(nil)
	require.Empty(t, merged.Packages)
	require.Empty(t, merged.Relationships)
	require.Equal(t, "", merged.Name)
}
