// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

// iconinverter batch-inverts the perceived brightness of icon assets (SVG,
// ICO and common raster formats) while preserving hue and saturation. The
// output directory mirrors the input directory's relative structure.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	iconinverter "github.com/satori5555/IconInverter"
	"github.com/satori5555/IconInverter/internal/config"
	"github.com/satori5555/IconInverter/internal/logging"

	_ "golang.org/x/image/webp"
)

var supportedExts = map[string]bool{
	".svg":  true,
	".ico":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	in := flag.String("in", "", "input directory (prompts if empty and not configured)")
	out := flag.String("out", "", "output directory, mirrors the input structure")
	workers := flag.Int("workers", 8, "number of parallel workers")
	logLevel := flag.String("log-level", "info", "logging level: debug, info, warn, error")
	flag.Parse()

	logging.SetLevel(*logLevel)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	inDir := *in
	if inDir == "" {
		inDir = cfg.InputPath
	}
	outDir := *out
	if outDir == "" {
		outDir = cfg.OutputPath
	}

	// The original tool prompts for directories when started bare; keep
	// that so it can be run by double-click-and-type users.
	if inDir == "" {
		inDir = prompt("Input directory: ")
	}
	if outDir == "" {
		outDir = prompt("Output directory: ")
	}
	if inDir == "" || outDir == "" {
		return errors.New("both an input and an output directory are required")
	}

	if _, err := os.Stat(inDir); err != nil {
		return err
	}

	nWorkers := *workers
	if nWorkers <= 0 {
		nWorkers = 1
	}
	if cfg.Workers > 0 && !flagWasSet("workers") {
		nWorkers = cfg.Workers
	}

	files, err := findAssetFiles(inDir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", inDir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported image assets found in %s", inDir)
	}
	logging.Info("Found %d asset file(s) in %s", len(files), inDir)

	jobs := make(chan string, nWorkers)
	results := make(chan error, len(files))

	for w := 0; w < nWorkers; w++ {
		go func() {
			for path := range jobs {
				err := processFile(path, inDir, outDir)
				if err != nil {
					logging.Error("skipped %s: %v", path, err)
				} else {
					logging.Info("Processed: %s", path)
				}
				results <- err
			}
		}()
	}

	for _, f := range files {
		jobs <- f
	}
	close(jobs)

	failed := 0
	for range files {
		if <-results != nil {
			failed++
		}
	}
	if failed > 0 {
		logging.Warn("%d of %d file(s) could not be processed", failed, len(files))
	}
	logging.Info("Done.")
	return nil
}

func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func prompt(label string) string {
	fmt.Print(label)
	sc := bufio.NewScanner(os.Stdin)
	if sc.Scan() {
		return strings.TrimSpace(sc.Text())
	}
	return ""
}

// findAssetFiles walks dir recursively and returns every file with a
// supported extension.
func findAssetFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if supportedExts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		} else {
			logging.Debug("unsupported file type, ignoring: %s", path)
		}
		return nil
	})
	return files, err
}

// processFile inverts one file. Per-file failures are returned to the
// worker, logged, and never halt the batch.
func processFile(path, inDir, outDir string) error {
	outPath, err := outputPath(path, inDir, outDir)
	if err != nil {
		return err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	var out []byte
	switch ext {
	case ".svg":
		out, err = iconinverter.InvertSVG(b)
	case ".ico":
		out, err = iconinverter.Process(b, iconinverter.Options{Warnf: func(format string, args ...any) {
			logging.Warn("%s: "+format, append([]any{path}, args...)...)
		}})
	case ".webp":
		// No WebP encoder is available; emit a PNG next to where the
		// WebP would have gone.
		out, err = iconinverter.InvertRaster(b, "png")
		outPath = strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".png"
	default:
		out, err = iconinverter.InvertRaster(b, strings.TrimPrefix(ext, "."))
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outPath, out, 0o644)
}

// outputPath maps an input file to its mirror location under outDir,
// preserving the path relative to inDir.
func outputPath(path, inDir, outDir string) (string, error) {
	rel, err := filepath.Rel(inDir, path)
	if err != nil {
		return "", err
	}
	return filepath.Join(outDir, rel), nil
}
