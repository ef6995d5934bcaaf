package document

import (
	"fmt"
	"strings"
)

// Edit mirrors the one piece of a protocol.TextDocumentContentChangeEvent
// this server cares about. HasRange false means "full replacement": set
// content to Text outright. HasRange true means an incremental splice at
// [StartLine:StartChar, EndLine:EndChar).
//
// Positions here are LSP's 0-based (line, character); character is a UTF-16
// code unit offset into the line, per LSP's default (and, since this server
// negotiates no positionEncodingKind, only) PositionEncodingKind. Apply
// converts that UTF-16 offset to a UTF-8 byte offset itself via
// offsetForPosition — there is no implicit UTF-8 assumption here.
type Edit struct {
	HasRange   bool
	StartLine  int
	StartChar  int
	EndLine    int
	EndChar    int
	Text       string
}

// Apply applies a single Edit to text and returns the resulting text.
func Apply(text string, e Edit) (string, error) {
	if !e.HasRange {
		return e.Text, nil
	}

	startOffset, err := offsetForPosition(text, e.StartLine, e.StartChar)
	if err != nil {
		return "", fmt.Errorf("invalid start position: %w", err)
	}
	endOffset, err := offsetForPosition(text, e.EndLine, e.EndChar)
	if err != nil {
		return "", fmt.Errorf("invalid end position: %w", err)
	}
	if endOffset < startOffset {
		return "", fmt.Errorf("edit end offset %d precedes start offset %d", endOffset, startOffset)
	}

	var b strings.Builder
	b.WriteString(text[:startOffset])
	b.WriteString(e.Text)
	b.WriteString(text[endOffset:])
	return b.String(), nil
}

// offsetForPosition resolves a 0-based (line, character) LSP position to a
// byte offset in text: '\n' bytes locate the start of the target line, then
// utf16OffsetToByteOffset converts the UTF-16 character offset within that
// line to a byte offset.
func offsetForPosition(text string, line, character int) (int, error) {
	if line < 0 || character < 0 {
		return 0, fmt.Errorf("negative position (%d, %d)", line, character)
	}

	offset := 0
	currentLine := 0

	for currentLine < line {
		idx := strings.IndexByte(text[offset:], '\n')
		if idx < 0 {
			return 0, fmt.Errorf("line %d out of range", line)
		}
		offset += idx + 1
		currentLine++
	}

	lineEnd := strings.IndexByte(text[offset:], '\n')
	var lineText string
	if lineEnd < 0 {
		lineText = text[offset:]
	} else {
		lineText = text[offset : offset+lineEnd]
	}

	byteOffset, err := utf16OffsetToByteOffset(lineText, character)
	if err != nil {
		return 0, fmt.Errorf("character %d on line %d: %w", character, line, err)
	}

	return offset + byteOffset, nil
}

// utf16OffsetToByteOffset converts a 0-based UTF-16 code unit offset within
// line (a single line's bytes, no trailing newline) to the matching UTF-8
// byte offset. A rune outside the Basic Multilingual Plane is one rune but
// two UTF-16 code units (a surrogate pair), so byte offset and UTF-16 offset
// diverge for any line containing one — treating character as a byte offset
// instead, as a naive implementation would, silently corrupts edits on such
// lines.
func utf16OffsetToByteOffset(line string, units int) (int, error) {
	if units == 0 {
		return 0, nil
	}

	seen := 0
	for byteOffset, r := range line {
		if seen == units {
			return byteOffset, nil
		}
		width := 1
		if r > 0xFFFF {
			width = 2
		}
		if seen+width > units {
			// units lands inside the surrogate pair this rune would occupy;
			// a conformant client never sends such a position, but report
			// the rune's start rather than split it.
			return byteOffset, nil
		}
		seen += width
	}

	if seen == units {
		return len(line), nil
	}
	return 0, fmt.Errorf("utf-16 offset %d exceeds line length (%d units)", units, seen)
}
