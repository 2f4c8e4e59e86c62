// Command affidavit-batch reads GPC PDFs from disk and writes one Affidavit of
// Service per defendant plus a manifest into an output directory.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/docx"
	"gpcaffidavit/internal/manifest"
	"gpcaffidavit/internal/parser"
	_ "gpcaffidavit/internal/parser/claude"
	_ "gpcaffidavit/internal/parser/gemini"
	_ "gpcaffidavit/internal/parser/openai"
	"gpcaffidavit/internal/service"
	"gpcaffidavit/internal/template"
	"gpcaffidavit/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	v := config.New()

	out := pflag.StringP("out", "o", "affidavits", "Directory the affidavits and manifest are written to")
	zipped := pflag.Bool("zip", false, "Also write the whole batch as affidavits.zip")
	pflag.String("strategy", v.GetString("template.strategy"), "Template fill strategy: contentcontrol or placeholder")
	pflag.String("template-source", v.GetString("template.source"), "Template source: builtin, file or s3")
	pflag.String("template-file", v.GetString("template.file_name"), "Template file name (file source)")
	pflag.String("template-paths", v.GetString("template.search_paths"), "Comma-separated directories searched for the template")
	pflag.String("name-style", v.GetString("template.name_style"), "Party name style: court or verbatim")
	pflag.String("provider", v.GetString("parser.provider"), fmt.Sprintf("Extraction provider %v", parser.Providers()))
	model := pflag.String("model", "", "Extraction model (provider default when empty)")
	pflag.String("log-level", v.GetString("log.level"), "Log level (debug, info)")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <gpc.pdf|dir>...\n\nOptions:\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	_ = v.BindPFlag("template.strategy", pflag.Lookup("strategy"))
	_ = v.BindPFlag("template.source", pflag.Lookup("template-source"))
	_ = v.BindPFlag("template.file_name", pflag.Lookup("template-file"))
	_ = v.BindPFlag("template.search_paths", pflag.Lookup("template-paths"))
	_ = v.BindPFlag("template.name_style", pflag.Lookup("name-style"))
	_ = v.BindPFlag("parser.provider", pflag.Lookup("provider"))
	_ = v.BindPFlag("log.level", pflag.Lookup("log-level"))
	// A different provider must not inherit the default model of another.
	if pflag.Lookup("model").Changed || pflag.Lookup("provider").Changed {
		v.Set("parser.default_model", *model)
	}

	if pflag.NArg() == 0 {
		pflag.Usage()
		return fmt.Errorf("no input PDFs given")
	}

	cfg := config.FromViper(v)
	if cfg.Log.Debug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	// Local runs have no per-request cap on batch size.
	cfg.Upload.MaxBatchFiles = 0

	files, err := collectPDFs(pflag.Args())
	if err != nil {
		return err
	}

	batch, err := newBatchService(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := batch.Process(ctx, files)
	if err != nil {
		return fmt.Errorf("processing batch: %w", err)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	written := 0
	used := map[string]bool{}
	for _, item := range result.Items {
		for _, a := range item.Affidavits {
			name := freeName(used, a.FileName)
			if err := os.WriteFile(filepath.Join(*out, name), a.Content, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", name, err)
			}
			written++
		}
	}

	csv, err := manifest.CSV(result.Items)
	if err != nil {
		return fmt.Errorf("building manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(*out, "manifest.csv"), csv, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if *zipped {
		if err := os.WriteFile(filepath.Join(*out, "affidavits.zip"), result.Bundle, 0o644); err != nil {
			return fmt.Errorf("writing bundle: %w", err)
		}
	}

	log.Printf("Batch %s: %d file(s), %d completed, %d failed, %d affidavit(s) written to %s",
		result.ID, result.Counts.Total, result.Counts.Completed, result.Counts.Failed, written, *out)
	for _, item := range result.Items {
		if item.Error != "" {
			log.Printf("  %s: %s", item.FileName, item.Error)
		}
	}
	if result.Counts.Failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", result.Counts.Failed, result.Counts.Total)
	}
	return nil
}

func newBatchService(cfg *config.Config) (service.BatchService, error) {
	extractor, err := parser.NewFromConfig(&cfg.Parser)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize parser: %w", err)
	}
	ev, err := validator.NewExtractionValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to compile extraction schema: %w", err)
	}
	if cfg.Template.Source == "s3" {
		return nil, fmt.Errorf("template source s3 is only supported by the server")
	}
	source, err := template.NewSource(&cfg.Template, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize template source: %w", err)
	}
	filler, err := docx.NewFiller(cfg.Template.Strategy)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize template filler: %w", err)
	}

	extraction := service.NewExtractionService(extractor, ev, cfg.Upload)
	affidavits := service.NewAffidavitService(source, filler, cfg.Template)
	return service.NewBatchService(extraction, affidavits, nil, cfg.S3, cfg.Upload), nil
}

// collectPDFs expands directories to the .pdf files directly inside them and
// reads every file, in argument order.
func collectPDFs(args []string) ([]service.BatchFile, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}

	files := make([]service.BatchFile, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, service.BatchFile{FileName: filepath.Base(p), Data: data})
	}
	return files, nil
}

// freeName returns name, or name with a numeric suffix if it was already used.
func freeName(used map[string]bool, name string) string {
	candidate := name
	ext := filepath.Ext(name)
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n, ext)
	}
	used[candidate] = true
	return candidate
}
