// Command planner validates and exports a stored draft without the HTTP
// server.
//
//	planner validate -in rascunho.json
//	planner export -in rascunho.json -format docx -out ./saida
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"uece-planner/config"
	"uece-planner/internal/form"
	"uece-planner/internal/render"
	"uece-planner/internal/service"
	applogger "uece-planner/pkg/logger"
)

const usage = `uso:
  planner validate -in <rascunho.json>
  planner export -in <rascunho.json> -format <docx|pdf|html|xlsx|ics> [-out <dir>]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "erro: %v\n", err)
		var vf *service.ValidationFailure
		if errors.As(err, &vf) {
			printViolations(vf.Result)
		}
		os.Exit(1)
	}
}

func readDraft(path string) (*form.Draft, error) {
	if path == "" {
		return nil, errors.New("informe o rascunho com -in")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler %s: %w", path, err)
	}
	d, err := form.DecodeDraft(b)
	if err != nil {
		return nil, fmt.Errorf("falha ao interpretar %s: %w", path, err)
	}
	return d, nil
}

// ────────────────────── validate ──────────────────────

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	in := fs.String("in", "", "arquivo JSON do rascunho")
	asJSON := fs.Bool("json", false, "imprime o resultado em JSON")
	fs.Parse(args)

	d, err := readDraft(*in)
	if err != nil {
		return err
	}

	res := form.Validate(d)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	}
	if !res.Valid {
		return &service.ValidationFailure{Result: res}
	}
	if !*asJSON {
		fmt.Println("rascunho válido")
	}
	return nil
}

func printViolations(res form.ValidationResult) {
	for _, v := range res.Violations {
		fmt.Fprintf(os.Stderr, "  %s: %s (%s)\n", v.Path, v.Field, v.Reason)
	}
}

// ────────────────────── export ──────────────────────

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	in := fs.String("in", "", "arquivo JSON do rascunho")
	format := fs.String("format", string(render.FormatDOCX), "formato: docx, pdf, html, xlsx ou ics")
	out := fs.String("out", ".", "diretório de saída")
	configPath := fs.String("config", "", "caminho do arquivo de configuração")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	d, err := readDraft(*in)
	if err != nil {
		return err
	}

	var converter render.Converter
	if render.Format(*format) == render.FormatPDF {
		wk, err := render.NewWkhtmltopdfConverter(cfg.Export.PDF.WkhtmltopdfPath, cfg.Export.PDF.DPI)
		if err != nil {
			return err
		}
		converter = wk
	}

	renderers := render.NewRegistry(render.Options{
		SupportEmail: cfg.Export.SupportEmail,
		Location:     cfg.Export.Location(),
		Converter:    converter,
	})
	exporter := service.NewExportService(
		service.NewDraftSource(d),
		form.NewDocumentBuilder(cfg.Export.DropHiddenValues),
		renderers,
		logger.Named("export"),
	)

	exp, err := exporter.Export(context.Background(), render.Format(*format))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("falha ao criar %s: %w", *out, err)
	}
	path := filepath.Join(*out, filepath.Base(exp.Filename))
	if err := os.WriteFile(path, exp.Buffer.Bytes(), 0o644); err != nil {
		return fmt.Errorf("falha ao gravar %s: %w", path, err)
	}

	logger.Info("arquivo gerado", zap.String("path", path))
	fmt.Println(path)
	return nil
}
