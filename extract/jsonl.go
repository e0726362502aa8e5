// Package extract provides record sources feeding a step chain.
package extract

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/goccy/go-json"
	graft "github.com/graftdata/graft"
)

// JSONL streams records from newline-delimited JSON. Blank lines are
// skipped; a line that fails to decode terminates the stream with a parse
// error carrying the line number. The reader is consumed once.
func JSONL(r io.Reader) graft.Stream {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &jsonlStream{sc: sc}
}

type jsonlStream struct {
	sc   *bufio.Scanner
	line int
	err  error
}

func (s *jsonlStream) Next(ctx context.Context) (graft.Item, error) {
	if s.err != nil {
		return graft.Item{}, s.err
	}
	if err := ctx.Err(); err != nil {
		s.err = err
		return graft.Item{}, err
	}
	for s.sc.Scan() {
		s.line++
		text := strings.TrimSpace(s.sc.Text())
		if text == "" {
			continue
		}
		var r graft.Record
		if err := json.Unmarshal([]byte(text), &r); err != nil {
			s.err = graft.Issues{{
				Code:    graft.CodeParseError,
				Message: "invalid JSON line",
				Cause:   err,
				Params:  map[string]any{"line": s.line},
			}}
			return graft.Item{}, s.err
		}
		return graft.RecordItem(r), nil
	}
	if err := s.sc.Err(); err != nil {
		s.err = err
		return graft.Item{}, err
	}
	s.err = io.EOF
	return graft.Item{}, io.EOF
}
