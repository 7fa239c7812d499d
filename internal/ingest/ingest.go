// Package ingest loads leader reports from disk and request bodies.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/huangsam/leaderlens/schema"
)

// ErrInvalidReport is wrapped by every validation failure.
var ErrInvalidReport = errors.New("invalid report")

// ErrNoInputs is returned when no report paths were given or a pattern matched nothing.
var ErrNoInputs = errors.New("no report files found")

// Batch is a set of loaded reports together with the file each one came from.
type Batch struct {
	Reports []schema.InputReport
	Sources []string
}

// rawLeader keeps the score optional so that a missing score is detected.
type rawLeader struct {
	Name  string   `json:"name"`
	Score *float64 `json:"score"`
}

// rawReport mirrors schema.InputReport with presence checks.
type rawReport struct {
	Title             string          `json:"title"`
	Date              string          `json:"date"`
	Leaders           *[]rawLeader    `json:"leaders"`
	AdditionalMetrics *schema.Metrics `json:"additionalMetrics"`
}

// LoadReports reads every report named by paths, keeping argument order.
// A path may be a file, a directory (its *.json files in lexical order) or a glob.
func LoadReports(ctx context.Context, paths []string) ([]schema.InputReport, error) {
	batch, err := LoadBatch(ctx, paths)
	if err != nil {
		return nil, err
	}
	return batch.Reports, nil
}

// LoadBatch is LoadReports that also keeps the source file of each report.
func LoadBatch(ctx context.Context, paths []string) (*Batch, error) {
	files, err := ResolvePaths(paths)
	if err != nil {
		return nil, err
	}

	batch := &Batch{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		reports, err := loadFile(file)
		if err != nil {
			return nil, err
		}
		for range reports {
			batch.Sources = append(batch.Sources, file)
		}
		batch.Reports = append(batch.Reports, reports...)
	}
	return batch, nil
}

// ResolvePaths expands files, directories and globs into an ordered file list.
func ResolvePaths(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, ErrNoInputs
	}

	var files []string
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		expanded, err := expandPath(p)
		if err != nil {
			return nil, err
		}
		files = append(files, expanded...)
	}
	if len(files) == 0 {
		return nil, ErrNoInputs
	}
	return files, nil
}

func expandPath(p string) ([]string, error) {
	info, err := os.Stat(p)
	switch {
	case err == nil && info.IsDir():
		matches, err := filepath.Glob(filepath.Join(p, "*.json"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		return matches, nil
	case err == nil:
		return []string{p}, nil
	case strings.ContainsAny(p, "*?["):
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoInputs, p)
		}
		sort.Strings(matches)
		return matches, nil
	default:
		return nil, fmt.Errorf("cannot read %s: %w", p, err)
	}
}

func loadFile(path string) ([]schema.InputReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		reports, err := DecodeReports(bytes.NewReader(trimmed))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return reports, nil
	}
	report, err := DecodeReport(bytes.NewReader(trimmed))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return []schema.InputReport{report}, nil
}

// DecodeReport decodes and validates a single JSON report.
func DecodeReport(r io.Reader) (schema.InputReport, error) {
	var raw rawReport
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return schema.InputReport{}, fmt.Errorf("%w: %v", ErrInvalidReport, err)
	}
	return convert(raw)
}

// DecodeReports decodes and validates a JSON array of reports.
func DecodeReports(r io.Reader) ([]schema.InputReport, error) {
	var raws []rawReport
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReport, err)
	}
	reports := make([]schema.InputReport, 0, len(raws))
	for i, raw := range raws {
		report, err := convert(raw)
		if err != nil {
			return nil, fmt.Errorf("report %d: %w", i, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func convert(raw rawReport) (schema.InputReport, error) {
	if raw.Leaders == nil {
		return schema.InputReport{}, fmt.Errorf("%w: leaders must be an array", ErrInvalidReport)
	}
	report := schema.InputReport{
		Title:             raw.Title,
		Date:              raw.Date,
		Leaders:           make([]schema.LeaderEntry, 0, len(*raw.Leaders)),
		AdditionalMetrics: raw.AdditionalMetrics,
	}
	for i, l := range *raw.Leaders {
		if l.Score == nil {
			return schema.InputReport{}, fmt.Errorf("%w: leader %d (%q) has no score", ErrInvalidReport, i, l.Name)
		}
		report.Leaders = append(report.Leaders, schema.LeaderEntry{Name: l.Name, Score: *l.Score})
	}
	if err := Validate(report); err != nil {
		return schema.InputReport{}, err
	}
	return report, nil
}

// Validate checks the structural rules of a report that are not enforced by decoding.
func Validate(report schema.InputReport) error {
	if strings.TrimSpace(report.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidReport)
	}
	if strings.TrimSpace(report.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidReport)
	}
	if report.Leaders == nil {
		return fmt.Errorf("%w: leaders must be an array", ErrInvalidReport)
	}
	for i, l := range report.Leaders {
		if strings.TrimSpace(l.Name) == "" {
			return fmt.Errorf("%w: leader %d has an empty name", ErrInvalidReport, i)
		}
		if math.IsNaN(l.Score) || math.IsInf(l.Score, 0) {
			return fmt.Errorf("%w: leader %q has a non-finite score", ErrInvalidReport, l.Name)
		}
	}
	if report.AdditionalMetrics != nil {
		for p := report.AdditionalMetrics.Oldest(); p != nil; p = p.Next() {
			if math.IsNaN(p.Value.Number) || math.IsInf(p.Value.Number, 0) {
				return fmt.Errorf("%w: metric %q has a non-finite value", ErrInvalidReport, p.Key)
			}
		}
	}
	return nil
}
