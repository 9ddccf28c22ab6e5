package redis

import (
	"context"
	"slices"
	"strconv"

	"github.com/kailas-cloud/verity/internal/db"
)

// XAdd appends an entry with a server-generated ID. Fields are written in key order.
func (s *Store) XAdd(ctx context.Context, stream string, maxLen int64, fields map[string]string) (string, error) {
	if len(fields) == 0 {
		return "", &db.Error{Op: db.OpXAdd, Err: db.ErrEmptyEntry}
	}

	args := make([]string, 0, 4+2*len(fields))
	if maxLen > 0 {
		args = append(args, "MAXLEN", "~", strconv.FormatInt(maxLen, 10))
	}
	args = append(args, "*")

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}

	cmd := s.b().Arbitrary("XADD").Keys(stream).Args(args...).Build()
	id, err := s.do(ctx, cmd).ToString()
	if err != nil {
		return "", &db.Error{Op: db.OpXAdd, Err: err}
	}
	return id, nil
}

// XLen returns the number of entries in a stream. A missing stream has length 0.
func (s *Store) XLen(ctx context.Context, stream string) (int64, error) {
	cmd := s.b().Xlen().Key(stream).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpXLen, Err: err}
	}
	return n, nil
}
