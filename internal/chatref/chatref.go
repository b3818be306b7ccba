// Package chatref parses the [REF:id] markers the companion embeds in its
// replies to cite diary entries and liberation sessions. Parsing is kept
// separate from rendering so callers can link, strip or display references
// however they need.
package chatref

import "regexp"

// Kind distinguishes plain text from a reference segment.
type Kind int

const (
	KindText Kind = iota
	KindRef
)

// Segment is one piece of a parsed message: either literal text or a
// reference to a journal record by id.
type Segment struct {
	Kind  Kind
	Text  string // set for KindText
	RefID string // set for KindRef
}

var refPattern = regexp.MustCompile(`\[REF:([^\]\s]+)\]`)

// Parse splits content into an ordered sequence of text and reference
// segments. Content without markers yields a single text segment; empty
// content yields no segments.
func Parse(content string) []Segment {
	if content == "" {
		return nil
	}

	var segments []Segment
	last := 0
	for _, match := range refPattern.FindAllStringSubmatchIndex(content, -1) {
		start, end := match[0], match[1]
		if start > last {
			segments = append(segments, Segment{Kind: KindText, Text: content[last:start]})
		}
		segments = append(segments, Segment{Kind: KindRef, RefID: content[match[2]:match[3]]})
		last = end
	}
	if last < len(content) {
		segments = append(segments, Segment{Kind: KindText, Text: content[last:]})
	}
	return segments
}

// RefIDs returns just the referenced ids, in order of appearance.
func RefIDs(content string) []string {
	var ids []string
	for _, seg := range Parse(content) {
		if seg.Kind == KindRef {
			ids = append(ids, seg.RefID)
		}
	}
	return ids
}

// Strip removes every reference marker, leaving the surrounding text.
func Strip(content string) string {
	return refPattern.ReplaceAllString(content, "")
}
