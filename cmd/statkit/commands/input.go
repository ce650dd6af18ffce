package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

const (
	stdinPath  = "-"
	stdinLabel = "stdin"

	commentMarker = '#'
	pairColumns   = 2

	initialLineBuffer = 64 * 1024
	maxLineSize       = 64 * 1024 * 1024
)

// Input errors.
var (
	ErrNoValues      = errors.New("input holds no values")
	ErrInvalidNumber = errors.New("invalid number")
	ErrPairColumns   = errors.New("each line must hold exactly two values")
)

// inputPaths returns args, or stdin when there are none.
func inputPaths(args []string) []string {
	if len(args) == 0 {
		return []string{stdinPath}
	}

	return args
}

// labelFor names the data set read from path unless label is set.
func labelFor(label, path string) string {
	if label != "" {
		return label
	}

	if path == stdinPath {
		return stdinLabel
	}

	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == stdinPath {
		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	return f, nil
}

// readValues reads every number at path.
func readValues(path string, stdin io.Reader) ([]float64, error) {
	r, err := openInput(path, stdin)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	values, err := parseValues(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return values, nil
}

// readPairs reads two columns of numbers at path.
func readPairs(path string, stdin io.Reader) (xs, ys []float64, err error) {
	r, err := openInput(path, stdin)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	xs, ys, err = parsePairs(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return xs, ys, nil
}

// parseValues reads numbers separated by whitespace, commas or semicolons.
// Text after '#' on a line is ignored.
func parseValues(r io.Reader) ([]float64, error) {
	var values []float64

	err := scanLines(r, func(line int, fields []string) error {
		for _, field := range fields {
			v, err := parseNumber(line, field)
			if err != nil {
				return err
			}

			values = append(values, v)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return nil, ErrNoValues
	}

	return values, nil
}

// parsePairs reads one x, y pair per non-empty line.
func parsePairs(r io.Reader) (xs, ys []float64, err error) {
	err = scanLines(r, func(line int, fields []string) error {
		if len(fields) != pairColumns {
			return fmt.Errorf("%w: line %d has %d", ErrPairColumns, line, len(fields))
		}

		x, err := parseNumber(line, fields[0])
		if err != nil {
			return err
		}

		y, err := parseNumber(line, fields[1])
		if err != nil {
			return err
		}

		xs = append(xs, x)
		ys = append(ys, y)

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if len(xs) == 0 {
		return nil, nil, ErrNoValues
	}

	return xs, ys, nil
}

// scanLines calls fn with the fields of every line that has any.
func scanLines(r io.Reader, fn func(line int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialLineBuffer), maxLineSize)

	line := 0

	for scanner.Scan() {
		line++

		text := scanner.Text()
		if i := strings.IndexRune(text, commentMarker); i >= 0 {
			text = text[:i]
		}

		fields := strings.FieldsFunc(text, isSeparator)
		if len(fields) == 0 {
			continue
		}

		err := fn(line, fields)
		if err != nil {
			return err
		}
	}

	err := scanner.Err()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	return nil
}

func isSeparator(r rune) bool {
	return r == ',' || r == ';' || unicode.IsSpace(r)
}

// parseNumber parses a finite number. NaN and infinities are rejected.
func parseNumber(line int, field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: line %d: %q", ErrInvalidNumber, line, field)
	}

	return v, nil
}
