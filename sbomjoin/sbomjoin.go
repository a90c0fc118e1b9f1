// Merge several SPDX SBOM documents into one: packages are merged by SPDXID
// (first definition wins), relationships are concatenated as-is. Useful to
// analyze a whole fleet as a single dependency graph with sbomdeps.

package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"fortio.org/cli"
	"fortio.org/log"

	"github.com/ldemailly/sbomdeps/sbom"
)

var output = flag.String("o", "", "Output file for the merged SBOM (default stdout)")

// input is one document to merge, with the display name contributed to the
// merged document's name (the document's own name, or the filename when the
// document carries none).
type input struct {
	name string
	doc  *sbom.Document
}

// merge combines the inputs into a fresh SPDX-2.3 document. Packages keep
// their first definition across inputs, relationships are concatenated,
// duplicates and all: the analysis dedups names and tolerates parallel edges.
func merge(inputs []input) *sbom.Document {
	merged := &sbom.Document{
		SPDXVersion: "SPDX-2.3",
		DataLicense: "CC0-1.0",
		SPDXID:      "SPDXRef-DOCUMENT",
		CreationInfo: &sbom.CreationInfo{
			Created:  time.Now().UTC().Format(time.RFC3339),
			Creators: []string{"Tool: sbomjoin"},
		},
		Packages:      []sbom.Package{},
		Relationships: []sbom.Relationship{},
	}
	seen := make(map[string]bool)
	names := make([]string, 0, len(inputs))
	for _, in := range inputs {
		names = append(names, in.name)
		for _, pkg := range in.doc.Packages {
			if seen[pkg.SPDXID] {
				log.LogVf("Skipping duplicate package %s from %s", pkg.SPDXID, in.name)
				continue
			}
			seen[pkg.SPDXID] = true
			merged.Packages = append(merged.Packages, pkg)
		}
		merged.Relationships = append(merged.Relationships, in.doc.Relationships...)
	}
	merged.Name = strings.Join(names, "+")
	return merged
}

func main() {
	cli.ArgsHelp = "sbom1.spdx.json [sbom2.spdx.json...]"
	cli.MinArgs = 1
	cli.MaxArgs = -1 // Any number of documents
	cli.Main()

	inputs := make([]input, 0, len(flag.Args()))
	for _, filename := range flag.Args() {
		log.Infof("Merging %s", filename)
		doc, err := sbom.Load(filename)
		if err != nil {
			log.Fatalf("Unable to load %s: %v", filename, err)
		}
		name := doc.Name
		if name == "" {
			name = filename
		}
		inputs = append(inputs, input{name: name, doc: doc})
	}
	merged := merge(inputs)

	if *output == "" {
		if err := sbom.Write(os.Stdout, merged); err != nil {
			log.Fatalf("Unable to write merged SBOM: %v", err)
		}
		return
	}
	if err := sbom.Save(*output, merged); err != nil {
		log.Fatalf("Unable to write merged SBOM: %v", err)
	}
	log.Infof("Merged %d documents (%d packages, %d relationships) into %s",
		len(inputs), len(merged.Packages), len(merged.Relationships), *output)
}
