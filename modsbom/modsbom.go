// Generate a minimal SPDX SBOM from a go.mod file: one package per required
// module plus the main module itself, and one DEPENDENCY_OF relationship per
// requirement. The output feeds straight into sbomdeps.

package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"fortio.org/cli"
	"fortio.org/log"
	"golang.org/x/mod/modfile"

	"github.com/ldemailly/sbomdeps/sbom"
)

var output = flag.String("o", "", "Output file for the SBOM (default stdout)")

func main() {
	cli.ArgsHelp = "go.mod"
	cli.MinArgs = 1
	cli.MaxArgs = 1
	cli.Main()
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Unable to read %s: %v", path, err)
	}
	mf, err := modfile.Parse(path, data, nil)
	if err != nil {
		log.Fatalf("Unable to parse %s: %v", path, err)
	}
	if mf.Module == nil || mf.Module.Mod.Path == "" {
		log.Fatalf("No module path in %s", path)
	}
	doc := buildDocument(mf)
	log.Infof("Module %s: %d requirements", mf.Module.Mod.Path, len(mf.Require))

	if *output == "" {
		if err = sbom.Write(os.Stdout, doc); err != nil {
			log.Fatalf("Unable to write SBOM: %v", err)
		}
		return
	}
	if err = sbom.Save(*output, doc); err != nil {
		log.Fatalf("Unable to write SBOM: %v", err)
	}
	log.Infof("SBOM saved to %s", *output)
}

// buildDocument maps the requirements of one go.mod onto SPDX: the main
// module is the dependent of every requirement, indirect ones included.
func buildDocument(mf *modfile.File) *sbom.Document {
	rootPath := mf.Module.Mod.Path
	rootID := spdxID(rootPath)
	doc := &sbom.Document{
		SPDXVersion: "SPDX-2.3",
		DataLicense: "CC0-1.0",
		SPDXID:      "SPDXRef-DOCUMENT",
		Name:        rootPath,
		CreationInfo: &sbom.CreationInfo{
			Created:  time.Now().UTC().Format(time.RFC3339),
			Creators: []string{"Tool: modsbom"},
		},
		Packages:      []sbom.Package{{SPDXID: rootID, Name: rootPath}},
		Relationships: []sbom.Relationship{},
	}
	for _, req := range mf.Require {
		doc.Packages = append(doc.Packages, sbom.Package{
			SPDXID:      spdxID(req.Mod.Path),
			Name:        req.Mod.Path,
			VersionInfo: req.Mod.Version,
		})
		doc.Relationships = append(doc.Relationships, sbom.Relationship{
			SPDXElementID:      spdxID(req.Mod.Path),
			RelationshipType:   sbom.RelationshipDependencyOf,
			RelatedSPDXElement: rootID,
		})
	}
	return doc
}

// spdxID derives a valid SPDX element id (letters, digits, '.' and '-' only)
// from a module path.
func spdxID(modPath string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-':
			return r
		}
		return '-'
	}, modPath)
	return "SPDXRef-" + mapped
}
