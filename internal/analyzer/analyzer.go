package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/language"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/source"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/structural"
)

// Conversion strategies.
const (
	StrategyLines = "lines"
	StrategyAST   = "ast"
)

// ConverterConfig defines the lean configuration required by Convert.
type ConverterConfig interface {
	Strategy() string
	Workers() int
	WrapperPrologueLength() int
	Strict() bool
}

// FileReader loads the source of a script. It returns the path the source was found at,
// which becomes the path of the file coverage.
type FileReader interface {
	ReadSource(scriptPath string) (resolved string, text string, err error)
}

// Failure is a script that could not be converted. No partial coverage is kept for it.
type Failure struct {
	URL string
	Err error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.URL, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Result is the outcome of a conversion run.
type Result struct {
	Coverage model.CoverageMap
	Failures []*Failure
	// Skipped lists the urls of scripts with no readable source, such as node: builtins.
	Skipped []string
}

// errSkipped marks a script that is left out without being a failure.
var errSkipped = errors.New("script has no loadable source")

// Convert turns V8 script coverages into Istanbul file coverage. Scripts are converted
// independently by up to cfg.Workers() goroutines; the result does not depend on scheduling.
// Scripts that resolve to the same path, e.g. from several processes, are merged.
//
// A script that fails is recorded in Result.Failures and logged, unless cfg.Strict() is set,
// in which case the first failure aborts the run and is returned.
func Convert(ctx context.Context, scripts []model.ScriptCoverage, cfg ConverterConfig, reader FileReader) (*Result, error) {
	converter := &converter{
		strategy:   cfg.Strategy(),
		normalizer: NewOffsetNormalizer(cfg.WrapperPrologueLength()),
		reader:     reader,
	}

	files := make([]*model.FileCoverage, len(scripts))
	errs := make([]error, len(scripts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Workers()))
	for i := range scripts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fc, err := converter.convertScript(gctx, scripts[i])
			if err != nil && !errors.Is(err, errSkipped) && cfg.Strict() {
				return &Failure{URL: scripts[i].URL, Err: err}
			}
			files[i], errs[i] = fc, err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Coverage: make(model.CoverageMap)}
	for i, fc := range files {
		switch err := errs[i]; {
		case errors.Is(err, errSkipped):
			slog.Debug("Skipping script without loadable source", "url", scripts[i].URL)
			result.Skipped = append(result.Skipped, scripts[i].URL)
		case err != nil:
			slog.Warn("Could not convert script coverage", "url", scripts[i].URL, "error", err)
			result.Failures = append(result.Failures, &Failure{URL: scripts[i].URL, Err: err})
		default:
			MergeInto(result.Coverage, fc)
		}
	}

	slog.Info("Converted V8 coverage", "scripts", len(scripts), "files", len(result.Coverage),
		"skipped", len(result.Skipped), "failures", len(result.Failures))
	return result, nil
}

type converter struct {
	strategy   string
	normalizer OffsetNormalizer
	reader     FileReader
}

// convertScript converts a single script. It only reads its arguments, so it is safe to run
// for many scripts at once.
func (c *converter) convertScript(ctx context.Context, script model.ScriptCoverage) (*model.FileCoverage, error) {
	scriptURL := ParseScriptURL(script.URL)

	path, text := scriptURL.Path, ""
	switch {
	case script.Source != nil:
		text = *script.Source
		if path == "" {
			path = script.ScriptID
		}
	case !scriptURL.Loadable:
		return nil, errSkipped
	default:
		resolved, content, err := c.reader.ReadSource(scriptURL.Path)
		if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}
		path, text = resolved, content
	}

	if err := model.ValidateScript(script); err != nil {
		return nil, err
	}

	if c.strategy == StrategyAST {
		fc, err := c.correlate(ctx, path, text, scriptURL.Kind, script.Functions)
		if !errors.Is(err, language.ErrNotSupported) {
			return fc, err
		}
		slog.Debug("No syntax tree for file, using line coverage", "file", path)
	}

	s := NewScript(path, text, scriptURL.Kind, c.normalizer)
	s.ApplyCoverage(script.Functions)
	return s.ToFileCoverage(), nil
}

func (c *converter) correlate(ctx context.Context, path, text string, kind ModuleKind, functions []model.FunctionCoverage) (*model.FileCoverage, error) {
	processor := language.FindProcessorForFile(path)
	root, err := processor.Parse(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("parsing %s as %s: %w", path, processor.Name(), err)
	}

	index := source.NewLineIndex(text)
	normalized, err := c.normalizer.NormalizeFunctions(kind, index.EOF(), functions)
	if err != nil {
		return nil, err
	}
	opts := structural.Options{WrappedProgram: kind == CommonJS && c.normalizer.Shift(kind) > 0}
	return structural.Correlate(path, root, normalized, index, opts)
}
