// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command portscan walks a ports tree and lints every Makefile it
// finds with a small worker pool, logging one line per finding to a
// timestamped run directory and maintaining portscan-latest/
// portscan-previous symlinks the way a CI sweep tool keeps its last
// few runs around for comparison. The fleet/sandboxing machinery a
// production scanner would have (remote workers, progress UI,
// incremental re-scan) is out of scope; this is a best-effort single-
// host sweep so the CLI named in the interface list is runnable.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"

	portfmt "github.com/stesser/portfmt"
)

type scanResult struct {
	path     string
	findings []portfmt.Finding
	err      error
}

func scanWorker(paths <-chan string, results chan<- scanResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for path := range paths {
		p := portfmt.NewParserFromFile(path)
		if err := p.Err(); err != nil {
			results <- scanResult{path: path, err: err}
			continue
		}
		var all []portfmt.Finding
		for _, pass := range []portfmt.Edit{
			portfmt.LintBsdPort{}, portfmt.LintClones{},
			portfmt.LintCommentedPortrevision{}, portfmt.LintOrder{},
		} {
			findings, err := p.ApplyEdit(pass)
			if err != nil {
				results <- scanResult{path: path, err: err}
				p.Release()
				continue
			}
			all = append(all, findings...)
		}
		results <- scanResult{path: path, findings: all}
		p.Release()
	}
}

func findMakefiles(root string) ([]string, error) {
	var out []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && info.Name() == "Makefile" {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

func relinkLatest(logDir, runDir string) {
	prev, err := os.Readlink(filepath.Join(logDir, "portscan-latest"))
	if err == nil {
		os.Remove(filepath.Join(logDir, "portscan-previous"))
		os.Symlink(prev, filepath.Join(logDir, "portscan-previous"))
	}
	os.Remove(filepath.Join(logDir, "portscan-latest"))
	os.Symlink(runDir, filepath.Join(logDir, "portscan-latest"))
}

func main() {
	var workers int
	var logDir string

	cmd := &cobra.Command{
		Use:   "portscan <ports-tree>",
		Short: "lint every Makefile under a ports tree with a worker pool",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			treeRoot := args[0]
			makefiles, err := findMakefiles(treeRoot)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}

			if logDir == "" {
				logDir = filepath.Join(os.TempDir(), "portscan")
			}
			runDir := filepath.Join(logDir, "run-"+strconv.FormatInt(time.Now().Unix(), 10))
			if err := os.MkdirAll(runDir, 0755); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			logFile, err := os.Create(filepath.Join(runDir, "findings.log"))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			defer logFile.Close()
			w := bufio.NewWriter(logFile)
			defer w.Flush()

			paths := make(chan string)
			results := make(chan scanResult)
			var wg sync.WaitGroup
			if workers < 1 {
				workers = 1
			}
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go scanWorker(paths, results, &wg)
			}
			go func() {
				for _, mf := range makefiles {
					paths <- mf
				}
				close(paths)
			}()
			go func() {
				wg.Wait()
				close(results)
			}()

			for r := range results {
				if r.err != nil {
					fmt.Fprintf(w, "E %s: %v\n", r.path, r.err)
					continue
				}
				for _, f := range r.findings {
					fmt.Fprintf(w, "C %s:%d: %s\n", r.path, f.Line, f.Message)
				}
			}

			relinkLatest(logDir, runDir)
			fmt.Printf("scanned %d Makefiles, log at %s\n", len(makefiles), runDir)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 4, "number of concurrent scan workers")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory to write run logs under (default: a temp dir)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
