package model

import "strings"

const (
	DefaultTitle          = "Summary"
	DefaultInsightsHeader = "Key Insights"

	titlePrefix  = "title:"
	headerPrefix = "insightsheader:"
)

// SummaryDocument is the structured projection of a raw summary buffer. It is
// re-derived in full from the buffer on every update and holds no state of
// its own.
type SummaryDocument struct {
	Title          string   `json:"title"`
	InsightsHeader string   `json:"insights_header"`
	KeyPoints      []string `json:"key_points"`
}

type lineKind int

const (
	lineOther lineKind = iota
	lineTitle
	lineHeader
	lineBullet
)

// classifyLine assigns one of the four line kinds and returns the line's
// payload with surrounding whitespace stripped. Title and header prefixes are
// matched case-insensitively at the start of the raw line; bullets may be
// indented.
func classifyLine(line string) (lineKind, string) {
	lower := strings.ToLower(line)
	switch {
	case strings.HasPrefix(lower, titlePrefix):
		return lineTitle, strings.TrimSpace(line[len(titlePrefix):])
	case strings.HasPrefix(lower, headerPrefix):
		return lineHeader, strings.TrimSpace(line[len(headerPrefix):])
	}
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "*") {
		return lineBullet, strings.TrimSpace(trimmed[1:])
	}
	return lineOther, trimmed
}

type summaryScan struct {
	title     string
	hasTitle  bool
	header    string
	hasHeader bool
	points    []string
}

func scanSummary(text string) summaryScan {
	var s summaryScan
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kind, value := classifyLine(line)
		switch kind {
		case lineTitle:
			if !s.hasTitle {
				s.title, s.hasTitle = value, true
			}
		case lineHeader:
			if !s.hasHeader {
				s.header, s.hasHeader = value, true
			}
		case lineBullet:
			// A bare '*' yields an empty key point. Mid-stream that
			// is a point whose content has not arrived yet, so it is
			// kept.
			s.points = append(s.points, value)
		}
	}
	return s
}

// ParseSummary derives a SummaryDocument from the accumulated raw buffer.
// Safe to call on any prefix of a growing stream and idempotent for a given
// buffer value. An empty buffer yields the zero document; placeholders apply
// only when the buffer has content but no matching line.
func ParseSummary(text string) SummaryDocument {
	if strings.TrimSpace(text) == "" {
		return SummaryDocument{}
	}
	s := scanSummary(text)
	doc := SummaryDocument{
		Title:          DefaultTitle,
		InsightsHeader: DefaultInsightsHeader,
		KeyPoints:      s.points,
	}
	if s.hasTitle {
		doc.Title = s.title
	}
	if s.hasHeader {
		doc.InsightsHeader = s.header
	}
	return doc
}

// ExportSummary renders the raw buffer as plain text for clipboard use:
// title, a blank line, the insights header when there are key points, then
// one bullet per point. Lines without a parsed value are omitted rather than
// replaced by placeholders.
func ExportSummary(text string) string {
	if text == "" {
		return ""
	}
	s := scanSummary(text)
	parts := make([]string, 0, len(s.points)+2)
	if s.title != "" {
		parts = append(parts, s.title)
	}
	if s.header != "" && len(s.points) > 0 {
		parts = append(parts, "\n"+s.header)
	}
	for _, point := range s.points {
		parts = append(parts, "• "+point)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
