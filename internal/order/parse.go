package order

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
	"a couple": 2, "a couple of": 2, "couple": 2, "couple of": 2, "a dozen": 12, "dozen": 12,
}

var (
	reLeadingQty  = regexp.MustCompile(`^(?i)(?:x\s*)?(\d{1,3})(?:\s*(?:x\b|\*)\s*|\s+)(.+)$`)
	reTrailingQty = regexp.MustCompile(`^(?i)(.*?)\s+(?:x\s*(\d{1,3})|(\d{1,3})\s*x)$`)
)

// ParseLine reads a spoken or typed order line with an optional quantity:
// "2 lattes", "2x latte", "x2 latte", "latte x2", "two lattes". Without a
// quantity the line counts as one.
func ParseLine(text string) RequestedLine {
	s := strings.Join(strings.Fields(text), " ")
	if s == "" {
		return RequestedLine{Quantity: 1}
	}

	if m := reLeadingQty.FindStringSubmatch(s); m != nil && strings.TrimSpace(m[2]) != "" {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return RequestedLine{Name: strings.TrimSpace(m[2]), Quantity: n}
		}
	}
	if m := reTrailingQty.FindStringSubmatch(s); m != nil {
		digits := m[2] + m[3]
		if n, err := strconv.Atoi(digits); err == nil && n > 0 && m[1] != "" {
			return RequestedLine{Name: m[1], Quantity: n}
		}
	}

	lower := strings.ToLower(s)
	best := ""
	for phrase := range numberWords {
		if (lower == phrase || strings.HasPrefix(lower, phrase+" ")) && len(phrase) > len(best) {
			best = phrase
		}
	}
	if best != "" && len(s) > len(best) {
		return RequestedLine{Name: strings.TrimSpace(s[len(best):]), Quantity: numberWords[best]}
	}
	return RequestedLine{Name: s, Quantity: 1}
}

// LoadLines decodes a YAML or JSON list of requested lines. Each element is
// either a mapping with name, quantity, priceHint and id, or a bare string
// parsed with ParseLine.
func LoadLines(r io.Reader) ([]RequestedLine, error) {
	var lines []RequestedLine
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&lines); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("order: decode lines: %w", err)
	}
	return lines, nil
}

// LoadLinesFile reads requested lines from a file, or from stdin when path
// is "-".
func LoadLinesFile(path string, stdin io.Reader) ([]RequestedLine, error) {
	if path == "-" {
		return LoadLines(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("order: open %q: %w", path, err)
	}
	defer f.Close()
	return LoadLines(f)
}
