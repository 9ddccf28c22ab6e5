// Package corpus reads labelled training text from CSV and Parquet files.
package corpus

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/verity/internal/domain"
)

// DefaultColumn is the text column read when none is given.
const DefaultColumn = "text"

// Dataset is a labelled corpus. Labels[i] is the class of Texts[i]: 1 for FAKE, 0 for REAL.
type Dataset struct {
	Texts  []string
	Labels []int
}

// Len returns the number of samples.
func (d Dataset) Len() int { return len(d.Texts) }

// Counts returns the number of FAKE and REAL samples.
func (d Dataset) Counts() (fakeN, realN int) {
	for _, y := range d.Labels {
		if y == domain.LabelFake.Class() {
			fakeN++
		} else {
			realN++
		}
	}
	return fakeN, realN
}

// ReadTexts reads the named column of a .csv or .parquet file.
// Blank texts are skipped; duplicates are dropped keeping the first occurrence.
func ReadTexts(path, column string) ([]string, error) {
	if column == "" {
		column = DefaultColumn
	}

	var (
		texts []string
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		texts, err = readCSV(path, column)
	case ".parquet":
		texts, err = readParquet(path, column)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", domain.ErrInvalidCorpus, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return dedupe(texts), nil
}

// Load reads the fake and real corpora concurrently and concatenates them, fake first.
func Load(ctx context.Context, fakePath, realPath, column string) (Dataset, error) {
	var fakeTexts, realTexts []string

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		texts, err := ReadTexts(fakePath, column)
		if err != nil {
			return fmt.Errorf("read fake corpus %s: %w", fakePath, err)
		}
		fakeTexts = texts
		return nil
	})
	g.Go(func() error {
		texts, err := ReadTexts(realPath, column)
		if err != nil {
			return fmt.Errorf("read real corpus %s: %w", realPath, err)
		}
		realTexts = texts
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}

	if len(fakeTexts) == 0 || len(realTexts) == 0 {
		return Dataset{}, fmt.Errorf("%w: %d fake and %d real texts, both must be non-empty",
			domain.ErrInvalidCorpus, len(fakeTexts), len(realTexts))
	}

	n := len(fakeTexts) + len(realTexts)
	ds := Dataset{Texts: make([]string, 0, n), Labels: make([]int, 0, n)}
	for _, t := range fakeTexts {
		ds.Texts = append(ds.Texts, t)
		ds.Labels = append(ds.Labels, domain.LabelFake.Class())
	}
	for _, t := range realTexts {
		ds.Texts = append(ds.Texts, t)
		ds.Labels = append(ds.Labels, domain.LabelReal.Class())
	}
	return ds, nil
}

func dedupe(texts []string) []string {
	seen := make(map[string]struct{}, len(texts))
	out := texts[:0]
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
