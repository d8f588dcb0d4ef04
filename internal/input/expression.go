package input

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Expression file column names.
const (
	ColRefseqID       = "refseq_id"
	ColTrueExpression = "true_expression"
	ColRawExpression  = "raw_expression"
)

// ParseError describes a malformed line in an expression file.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expression file line %d: %s", e.Line, e.Message)
}

// ExpressionReader reads per-transcript bias-corrected expression values
// from a tab-separated file. The header line names the columns; refseq_id
// and true_expression are required, raw_expression is optional. Lines
// starting with # are skipped and gzipped files are detected by magic bytes.
type ExpressionReader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int

	refseqCol int
	trueCol   int
	rawCol    int

	// Unknown counts transcript ids not present in the input store.
	Unknown int
}

// NewExpressionReader opens an expression file. Use "-" for stdin.
func NewExpressionReader(path string) (*ExpressionReader, error) {
	if path == "-" {
		return NewExpressionReaderFrom(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open expression file: %w", err)
	}

	r := &ExpressionReader{file: file}

	buf := make([]byte, 2)
	if _, err := file.Read(buf); err != nil {
		file.Close()
		return nil, fmt.Errorf("read expression header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek expression file: %w", err)
	}

	// gzip magic number
	if buf[0] == 0x1f && buf[1] == 0x8b {
		r.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		r.reader = bufio.NewReader(r.gzipReader)
	} else {
		r.reader = bufio.NewReader(file)
	}

	if err := r.parseHeader(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// NewExpressionReaderFrom creates a reader from an io.Reader (e.g. stdin).
func NewExpressionReaderFrom(src io.Reader) (*ExpressionReader, error) {
	r := &ExpressionReader{reader: bufio.NewReader(src)}
	if err := r.parseHeader(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases the underlying file handles.
func (r *ExpressionReader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

func (r *ExpressionReader) parseHeader() error {
	r.refseqCol, r.trueCol, r.rawCol = -1, -1, -1
	for {
		line, err := r.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return &ParseError{Line: r.lineNumber, Message: "no header line found"}
			}
			return fmt.Errorf("read header: %w", err)
		}
		r.lineNumber++
		line = strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		for i, name := range strings.Split(line, "\t") {
			switch name {
			case ColRefseqID:
				r.refseqCol = i
			case ColTrueExpression:
				r.trueCol = i
			case ColRawExpression:
				r.rawCol = i
			}
		}
		if r.refseqCol < 0 || r.trueCol < 0 {
			return &ParseError{
				Line:    r.lineNumber,
				Message: fmt.Sprintf("header must contain %s and %s columns", ColRefseqID, ColTrueExpression),
			}
		}
		return nil
	}
}

// ReadAll reads every row into the input store. Rows whose transcript id is
// not present in the store are counted in Unknown and skipped.
func (r *ExpressionReader) ReadAll(in *Input) error {
	for {
		line, err := r.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("read expression line: %w", err)
		}
		atEOF := err == io.EOF
		if line != "" || !atEOF {
			r.lineNumber++
		}

		line = strings.TrimRight(line, "\r\n")
		if line != "" && !strings.HasPrefix(line, "#") {
			if perr := r.parseLine(line, in); perr != nil {
				return perr
			}
		}

		if atEOF {
			return nil
		}
	}
}

func (r *ExpressionReader) parseLine(line string, in *Input) error {
	fields := strings.Split(line, "\t")
	maxCol := r.refseqCol
	if r.trueCol > maxCol {
		maxCol = r.trueCol
	}
	if len(fields) <= maxCol {
		return &ParseError{Line: r.lineNumber, Message: "too few columns"}
	}

	refseqID := fields[r.refseqCol]
	ri, ok := in.RefseqInputs[refseqID]
	if !ok {
		r.Unknown++
		return nil
	}

	trueExpr, err := strconv.ParseFloat(fields[r.trueCol], 64)
	if err != nil {
		return &ParseError{
			Line:    r.lineNumber,
			Message: fmt.Sprintf("bad %s value %q", ColTrueExpression, fields[r.trueCol]),
		}
	}
	ri.TrueExpression = trueExpr

	if r.rawCol >= 0 && r.rawCol < len(fields) && fields[r.rawCol] != "" {
		raw, err := strconv.ParseFloat(fields[r.rawCol], 64)
		if err != nil {
			return &ParseError{
				Line:    r.lineNumber,
				Message: fmt.Sprintf("bad %s value %q", ColRawExpression, fields[r.rawCol]),
			}
		}
		ri.RawExpression = raw
	}

	return nil
}
