// Package sbom reads and writes SPDX JSON software bill-of-materials
// documents, reduced to the fields the dependency analysis needs.
package sbom

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/log"
	"github.com/klauspost/compress/gzip"
)

const (
	// RelationshipDependencyOf is the SPDX relationship type consumed by the
	// graph builder: the subject (spdxElementId) is a dependency of the
	// object (relatedSpdxElement).
	RelationshipDependencyOf = "DEPENDENCY_OF"
	// DocumentRootPrefix marks synthetic document-root packages (as emitted
	// by the GitHub dependency-graph exporter); they are not real components.
	DocumentRootPrefix = "SPDXRef-DocumentRoot"
)

// Document is an SPDX JSON document. Fields we don't analyze are dropped on
// decode; the ones kept are enough to re-emit a usable document (sbomjoin,
// modsbom).
type Document struct {
	SPDXVersion       string         `json:"spdxVersion,omitempty"`
	DataLicense       string         `json:"dataLicense,omitempty"`
	SPDXID            string         `json:"SPDXID,omitempty"`
	Name              string         `json:"name,omitempty"`
	DocumentNamespace string         `json:"documentNamespace,omitempty"`
	CreationInfo      *CreationInfo  `json:"creationInfo,omitempty"`
	Packages          []Package      `json:"packages"`
	Relationships     []Relationship `json:"relationships"`
}

type CreationInfo struct {
	Created  string   `json:"created,omitempty"`
	Creators []string `json:"creators,omitempty"`
}

// Package is one component record. Name is optional and falls back to the
// SPDXID in the graph builder.
type Package struct {
	SPDXID           string `json:"SPDXID"`
	Name             string `json:"name,omitempty"`
	VersionInfo      string `json:"versionInfo,omitempty"`
	DownloadLocation string `json:"downloadLocation,omitempty"`
}

// Relationship is one relationship record between two SPDX elements.
type Relationship struct {
	SPDXElementID      string `json:"spdxElementId"`
	RelationshipType   string `json:"relationshipType"`
	RelatedSPDXElement string `json:"relatedSpdxElement"`
}

// Load reads an SPDX JSON document from a file, transparently decompressing
// gzip input (sniffed from the magic bytes, so both sbom.json and
// sbom.json.gz work without a flag).
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SBOM: %w", err)
	}
	defer f.Close()
	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		log.LogVf("Input %s is gzip compressed", path)
		zr, zerr := gzip.NewReader(br)
		if zerr != nil {
			return nil, fmt.Errorf("failed to open gzip input %s: %w", path, zerr)
		}
		defer zr.Close()
		return Parse(zr)
	}
	return Parse(br)
}

// Parse decodes an SPDX JSON document. A document with neither packages nor
// relationships is rejected: it may be valid JSON but it isn't an SBOM we
// can do anything with.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse SPDX JSON: %w", err)
	}
	if doc.Packages == nil && doc.Relationships == nil {
		return nil, errors.New("not an SPDX document: no packages or relationships")
	}
	return &doc, nil
}

// Write emits the document as indented JSON.
func Write(w io.Writer, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal SPDX document: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Save writes the document to a file.
func Save(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err = Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
