// Package render splits assistant replies into prose and fenced code blocks
// and draws them for the terminal.
package render

import (
	"regexp"
	"strings"
)

// DefaultLanguage labels a fence that names no language.
const DefaultLanguage = "javascript"

var (
	fenceRegex     = regexp.MustCompile("(?s)```.*?```")
	codeBlockRegex = regexp.MustCompile("(?s)^```(\\w+)?\\n(.*?)```$")
)

type Kind int

const (
	KindText Kind = iota
	KindCode
)

// Segment is a run of prose or one fenced code block.
type Segment struct {
	Kind     Kind
	Text     string // prose, for KindText
	Language string // for KindCode
	Code     string // trimmed body, for KindCode
}

func TextSegment(text string) Segment {
	return Segment{Kind: KindText, Text: text}
}

func CodeSegment(language, code string) Segment {
	return Segment{Kind: KindCode, Language: language, Code: code}
}

// Split cuts text at every fenced block. Empty prose between fences is
// dropped. A fence without a newline after its tag stays prose.
func Split(text string) []Segment {
	var segments []Segment

	last := 0
	for _, loc := range fenceRegex.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, TextSegment(text[last:loc[0]]))
		}
		segments = append(segments, parseFence(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, TextSegment(text[last:]))
	}

	return segments
}

func parseFence(part string) Segment {
	m := codeBlockRegex.FindStringSubmatch(part)
	if m == nil {
		return TextSegment(part)
	}
	language := m[1]
	if language == "" {
		language = DefaultLanguage
	}
	return CodeSegment(language, strings.TrimSpace(m[2]))
}

// CodeBlocks returns the code segments in order.
func CodeBlocks(segments []Segment) []Segment {
	var blocks []Segment
	for _, s := range segments {
		if s.Kind == KindCode {
			blocks = append(blocks, s)
		}
	}
	return blocks
}

// LastCode returns the body of the last code block in text.
func LastCode(text string) (string, bool) {
	blocks := CodeBlocks(Split(text))
	if len(blocks) == 0 {
		return "", false
	}
	return blocks[len(blocks)-1].Code, true
}
