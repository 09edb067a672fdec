package problem

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"momex/moments"
	"momex/symmath"
)

// Line-oriented interchange format. Four labelled sections, one entry per
// line, blank lines between entries tolerated. Moments are bracketed
// integer tuples.

const (
	sectionLHS       = "LHS:"
	sectionRHS       = "RHS of equations:"
	sectionConstants = "Constants:"
	sectionMoments   = "List of moments:"
)

// MissingSectionError reports an absent required section header.
type MissingSectionError struct{ Section string }

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("problem: missing section %q", e.Section)
}

// WriteTo writes the problem in the interchange format.
func (p *ODEProblem) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString(sectionLHS + "\n")
	for _, e := range p.lhs {
		b.WriteString(e.String() + "\n")
	}
	b.WriteString("\n" + sectionRHS + "\n")
	for _, e := range p.rhs {
		b.WriteString(e.String() + "\n")
	}
	b.WriteString("\n" + sectionConstants + "\n")
	for _, c := range p.constants {
		b.WriteString(c + "\n")
	}
	b.WriteString("\n" + sectionMoments + "\n")
	for _, m := range p.moms {
		b.WriteString(formatMoment(m) + "\n")
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// String renders the problem in the interchange format.
func (p *ODEProblem) String() string {
	var b strings.Builder
	if _, err := p.WriteTo(&b); err != nil {
		return ""
	}
	return b.String()
}

func formatMoment(ix moments.Index) string {
	parts := make([]string, len(ix))
	for i, v := range ix {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Parse reads a problem from the interchange format. Every section header
// must be present; entries may be separated by blank lines.
func Parse(r io.Reader) (*ODEProblem, error) {
	known := map[string]bool{
		sectionLHS:       true,
		sectionRHS:       true,
		sectionConstants: true,
		sectionMoments:   true,
	}
	sections := map[string][]string{}
	var current string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.HasSuffix(line, ":") {
			header := strings.TrimSpace(line)
			if !known[header] {
				return nil, fmt.Errorf("problem: unknown section header %q", header)
			}
			current = header
			sections[current] = nil
			continue
		}
		if current == "" || strings.TrimSpace(line) == "" {
			continue
		}
		sections[current] = append(sections[current], strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("problem: reading input: %w", err)
	}

	for _, required := range []string{sectionLHS, sectionRHS, sectionConstants, sectionMoments} {
		if _, ok := sections[required]; !ok {
			return nil, &MissingSectionError{Section: strings.TrimSuffix(required, ":")}
		}
	}

	lhs, err := parseExprLines(sections[sectionLHS], "LHS")
	if err != nil {
		return nil, err
	}
	rhs, err := parseExprLines(sections[sectionRHS], "RHS")
	if err != nil {
		return nil, err
	}
	moms := make([]moments.Index, 0, len(sections[sectionMoments]))
	for _, line := range sections[sectionMoments] {
		ix, err := parseMoment(line)
		if err != nil {
			return nil, err
		}
		moms = append(moms, ix)
	}
	return New(lhs, rhs, sections[sectionConstants], moms)
}

func parseExprLines(lines []string, what string) ([]symmath.Expr, error) {
	out := make([]symmath.Expr, 0, len(lines))
	for i, line := range lines {
		e, err := symmath.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("problem: %s entry %d: %w", what, i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func parseMoment(line string) (moments.Index, error) {
	body := strings.TrimSpace(line)
	if !strings.HasPrefix(body, "[") || !strings.HasSuffix(body, "]") {
		return nil, fmt.Errorf("problem: malformed moment %q", line)
	}
	body = strings.Trim(body, "[]")
	fields := strings.FieldsFunc(body, func(r rune) bool { return r == ',' || r == ' ' })
	out := make(moments.Index, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("problem: malformed moment %q: %w", line, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("problem: empty moment %q", line)
	}
	return out, nil
}
