// sbomdeps analyzes an SPDX SBOM: which components depend on which, which
// display names are claimed by several distinct components, which components
// are most depended upon, and which ones sit on circular dependency chains.
// It prints a report and writes Graphviz dot files: the full dependency
// graph plus one highlighted subgraph per detected cycle.
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"fortio.org/cli"
	"fortio.org/log"

	"github.com/ldemailly/sbomdeps/graph"
	"github.com/ldemailly/sbomdeps/sbom"
)

var (
	githubFlag  = flag.Bool("github", false, "Treat the argument as a GitHub owner/repo and fetch its dependency-graph SBOM")
	noCacheFlag = flag.Bool("no-cache", false, "Bypass the on-disk cache for GitHub SBOM fetches")
	levelsFlag  = flag.Bool("levels", false, "Also print dependency levels (leaves first, cycles flagged)")
	noDotFlag   = flag.Bool("no-dot", false, "Skip writing .dot graph files")
	dotOnlyFlag = flag.Bool("dot-only", false, "Only write .dot graph files, skip the report")
)

func main() {
	cli.ArgsHelp = "sbom.spdx.json (a file, or owner/repo with -github)"
	cli.MinArgs = 1
	cli.MaxArgs = 1
	cli.Main()
	arg := flag.Arg(0)

	doc, stem := loadDocument(arg)
	g := graph.Build(doc)
	cycles := g.Cycles()

	out := os.Stdout
	if !*dotOnlyFlag {
		printDependencies(out, g)
		printDuplicates(out, g)
		printFrequencies(out, g)
		printCycles(out, g, cycles)
		if *levelsFlag {
			printLevels(out, g)
		}
	}
	if !*noDotFlag {
		writeArtifacts(out, g, cycles, stem)
	}
}

// loadDocument reads the SBOM from a file, or fetches it from the GitHub
// dependency-graph API with -github. It also returns the stem used to name
// the .dot artifacts.
func loadDocument(arg string) (*sbom.Document, string) {
	if *githubFlag {
		ctx := context.Background()
		cacheDir := ""
		if !*noCacheFlag {
			var err error
			if cacheDir, err = sbom.DefaultCacheDir(); err != nil {
				log.Warnf("Cache disabled: %v", err)
			}
		}
		fetcher := &sbom.GitHubFetcher{
			Client:   sbom.NewGitHubClient(ctx),
			CacheDir: cacheDir,
			NoCache:  *noCacheFlag,
		}
		doc, err := fetcher.SBOM(ctx, arg)
		if err != nil {
			log.Fatalf("Unable to fetch SBOM for %s: %v", arg, err)
		}
		return doc, strings.ReplaceAll(arg, "/", "_")
	}
	doc, err := sbom.Load(arg)
	if err != nil {
		log.Fatalf("Unable to load SBOM %s: %v", arg, err)
	}
	return doc, dotStem(arg)
}
