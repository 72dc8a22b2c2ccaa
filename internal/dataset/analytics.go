package dataset

// analytics.go is the aggregation façade: it pulls raw column values out
// of a dataset and hands them to the stats package. All numeric meaning
// lives there; this file only resolves names and owner scope.

import (
	"context"
	"fmt"

	"sheetsight/internal/classify"
	"sheetsight/internal/stats"
)

// ColumnStats computes numeric statistics over one column.
func (s *Service) ColumnStats(ctx context.Context, name, column, ownerID string) (*stats.ColumnStats, error) {
	schema, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	values, err := s.columnValues(ctx, schema, column, ownerID, true)
	if err != nil {
		return nil, err
	}

	result, err := stats.Describe(values)
	if err != nil {
		return nil, fmt.Errorf("%w: column %q of %s", err, column, schema.DisplayName())
	}
	return result, nil
}

// CrossTab builds a year-by-category count table. classifierKind names
// one of the registered classifiers: admission, school, or region.
func (s *Service) CrossTab(ctx context.Context, name, yearColumn, categoryColumn, classifierKind, ownerID string) (*stats.CrossTab, error) {
	labeler, ok := classify.Lookup(classifierKind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClassifier, classifierKind)
	}

	schema, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	pairs, err := s.pairValues(ctx, schema, yearColumn, categoryColumn, ownerID)
	if err != nil {
		return nil, err
	}
	return stats.Tabulate(pairs, labeler), nil
}

// SubjectAverages computes per-year means for several subject columns.
func (s *Service) SubjectAverages(ctx context.Context, name, yearColumn string, subjectColumns []string, ownerID string) (*stats.SubjectAverages, error) {
	schema, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	columns := append([]string{yearColumn}, subjectColumns...)
	rows, err := s.multiColumnValues(ctx, schema, columns, ownerID)
	if err != nil {
		return nil, err
	}
	return stats.SubjectYearlyAverages(subjectColumns, rows), nil
}

// YearlyCounts tallies rows per year, split by gender when genderColumn
// is non-empty.
func (s *Service) YearlyCounts(ctx context.Context, name, yearColumn, genderColumn, ownerID string) (*stats.YearlyCounts, error) {
	schema, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	// Both columns read unfiltered so the slices stay row-aligned.
	years, err := s.columnValues(ctx, schema, yearColumn, ownerID, false)
	if err != nil {
		return nil, err
	}

	var genders []string
	if genderColumn != "" {
		genders, err = s.columnValues(ctx, schema, genderColumn, ownerID, false)
		if err != nil {
			return nil, err
		}
	}
	return stats.CountByYear(years, genders), nil
}

// TopSchools ranks the most frequent school names, with a per-year
// breakdown when yearColumn is non-empty.
func (s *Service) TopSchools(ctx context.Context, name, schoolColumn, yearColumn, ownerID string) (*stats.SchoolRanking, error) {
	schema, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	names, err := s.columnValues(ctx, schema, schoolColumn, ownerID, false)
	if err != nil {
		return nil, err
	}

	var years []string
	if yearColumn != "" {
		years, err = s.columnValues(ctx, schema, yearColumn, ownerID, false)
		if err != nil {
			return nil, err
		}
	}
	return stats.RankSchools(names, years), nil
}
