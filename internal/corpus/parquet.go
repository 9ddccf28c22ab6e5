package corpus

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/verity/internal/domain"
)

const rowBatch = 1000

// readParquet reads one string column of a Parquet file through the generic row reader.
func readParquet(path, column string) ([]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: open parquet: %w", domain.ErrInvalidCorpus, err)
	}

	idx := -1
	for i, p := range pf.Schema().Columns() {
		if len(p) > 0 && p[0] == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: column %q not found in parquet schema", domain.ErrInvalidCorpus, column)
	}

	var texts []string
	for _, rg := range pf.RowGroups() {
		rows := parquet.NewRowGroupReader(rg)
		buf := make([]parquet.Row, rowBatch)

		for {
			n, readErr := rows.ReadRows(buf)
			for i := 0; i < n; i++ {
				for _, v := range buf[i] {
					if v.Column() == idx && !v.IsNull() {
						texts = append(texts, v.String())
					}
				}
			}

			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				return nil, fmt.Errorf("read rows: %w", readErr)
			}
		}
	}
	return texts, nil
}
