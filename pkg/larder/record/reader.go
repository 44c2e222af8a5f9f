// Package record streams logical CSV records from recipe exports.
//
// Exports contain quoted fields with embedded newlines, so a logical record
// may span several physical lines. The reader joins lines until the number
// of double quotes seen in the pending record is even, then splits it into
// fields. The first record is the header and is never emitted.
package record

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

const bom = "\xef\xbb\xbf"

// Record is one logical CSV record.
type Record struct {
	Line   int // physical line the record starts on (1-based)
	Fields []string
}

// Reader reads records lazily from an underlying stream. It is single-pass:
// records consumed by one iteration are gone for the next.
type Reader struct {
	// Comma is the field delimiter (default ',').
	Comma byte

	br     *bufio.Reader
	line   int
	header []string
	done   bool
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		Comma: ',',
		br:    bufio.NewReaderSize(r, 64*1024),
	}
}

// Header returns the header fields once the first record has been read.
func (r *Reader) Header() []string {
	return r.header
}

// Records yields data records in order. Rows narrower than the header are
// padded with empty fields. A read error is yielded once and ends the
// sequence.
func (r *Reader) Records() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		if r.done {
			return
		}

		var (
			buf     strings.Builder
			pending bool
			quotes  int
			start   int
		)

		for {
			line, err := r.br.ReadString('\n')
			if line != "" {
				r.line++
				if r.line == 1 {
					line = strings.TrimPrefix(line, bom)
				}
				line = strings.TrimSuffix(line, "\n")
				line = strings.TrimSuffix(line, "\r")

				if pending {
					buf.WriteByte('\n')
				} else {
					start = r.line
					pending = true
				}
				buf.WriteString(line)
				quotes += strings.Count(line, `"`)

				if quotes%2 == 0 {
					text := buf.String()
					buf.Reset()
					pending = false
					quotes = 0
					if rec, ok := r.record(text, start); ok && !yield(rec, nil) {
						return
					}
				}
			}

			if err == io.EOF {
				r.done = true
				// An unbalanced tail is still a record; its last field
				// simply runs to the end of input.
				if pending {
					if rec, ok := r.record(buf.String(), start); ok {
						yield(rec, nil)
					}
				}
				return
			}
			if err != nil {
				r.done = true
				yield(Record{Line: r.line}, err)
				return
			}
		}
	}
}

// record turns one logical line into a Record. It reports false for the
// header and for blank lines.
func (r *Reader) record(text string, start int) (Record, bool) {
	if r.header == nil {
		r.header = SplitFields(text, r.Comma)
		return Record{}, false
	}
	if strings.TrimSpace(text) == "" {
		return Record{}, false
	}

	fields := SplitFields(text, r.Comma)
	for len(fields) < len(r.header) {
		fields = append(fields, "")
	}
	return Record{Line: start, Fields: fields}, true
}

// SplitFields splits one logical record on delim. Delimiters inside double
// quotes are literal and a doubled quote inside quotes is an escaped quote.
func SplitFields(text string, delim byte) []string {
	var (
		fields []string
		cur    strings.Builder
		inQ    bool
	)

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inQ {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					cur.WriteByte('"')
					i++
				} else {
					inQ = false
				}
			} else {
				cur.WriteByte(c)
			}
			continue
		}

		switch c {
		case '"':
			inQ = true
		case delim:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}
