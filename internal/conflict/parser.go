package conflict

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/matsen/medrec/internal/medicine"
	"github.com/matsen/medrec/internal/storage"
)

type marker int

const (
	noMarker marker = iota
	startMarker
	separatorMarker
	endMarker
)

func markerOf(line string) marker {
	switch {
	case strings.HasPrefix(line, "<<<<<<<"):
		return startMarker
	case strings.HasPrefix(line, "======="):
		return separatorMarker
	case strings.HasPrefix(line, ">>>>>>>"):
		return endMarker
	}
	return noMarker
}

type section int

const (
	inClean section = iota
	inOurs
	inTheirs
)

// Parse splits a conflicted JSONL file into clean lines and conflict regions.
// Medicine lines inside regions are decoded; clean lines are kept as text.
func Parse(r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, storage.MaxJSONLLineCapacity), storage.MaxJSONLLineCapacity)

	result := &ParseResult{}
	state := inClean
	lineNum := 0

	var region Region
	var ours, theirs []numberedLine

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		m := markerOf(line)

		switch state {
		case inClean:
			switch m {
			case startMarker:
				region = Region{StartLine: lineNum}
				ours, theirs = nil, nil
				state = inOurs
			case separatorMarker, endMarker:
				return nil, ParseError{Line: lineNum, Message: "conflict marker outside conflict region"}
			default:
				result.CleanLines = append(result.CleanLines, CleanLine{LineNum: lineNum, Content: line})
			}

		case inOurs:
			switch m {
			case separatorMarker:
				state = inTheirs
			case startMarker:
				return nil, ParseError{Line: lineNum, Message: "nested conflict markers not allowed"}
			case endMarker:
				return nil, ParseError{Line: lineNum, Message: "end marker before separator"}
			default:
				ours = append(ours, numberedLine{lineNum, line})
			}

		case inTheirs:
			switch m {
			case endMarker:
				region.EndLine = lineNum
				var err error
				if region.Ours, err = decodeLines(ours); err != nil {
					return nil, err
				}
				if region.Theirs, err = decodeLines(theirs); err != nil {
					return nil, err
				}
				result.Conflicts = append(result.Conflicts, region)
				state = inClean
			case startMarker:
				return nil, ParseError{Line: lineNum, Message: "nested conflict markers not allowed"}
			case separatorMarker:
				return nil, ParseError{Line: lineNum, Message: "duplicate separator in conflict region"}
			default:
				theirs = append(theirs, numberedLine{lineNum, line})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if state != inClean {
		return nil, ParseError{Line: lineNum, Message: "unterminated conflict region at end of file"}
	}

	return result, nil
}

// ParseString parses conflicted content held in memory.
func ParseString(content string) (*ParseResult, error) {
	return Parse(strings.NewReader(content))
}

type numberedLine struct {
	num  int
	text string
}

func decodeLines(lines []numberedLine) ([]medicine.Medicine, error) {
	var meds []medicine.Medicine
	for _, l := range lines {
		text := strings.TrimSpace(l.text)
		if text == "" {
			continue
		}
		var m medicine.Medicine
		if err := json.Unmarshal([]byte(text), &m); err != nil {
			return nil, ParseError{Line: l.num, Message: "invalid JSON: " + err.Error()}
		}
		meds = append(meds, m)
	}
	return meds, nil
}

// Assemble rebuilds the catalogue in file order, replacing each conflict
// region with resolved[i]. Clean lines that are not valid JSON are reported
// as errors rather than dropped.
func Assemble(result *ParseResult, resolved [][]medicine.Medicine) ([]medicine.Medicine, error) {
	if len(resolved) != len(result.Conflicts) {
		return nil, fmt.Errorf("expected %d resolved regions, got %d", len(result.Conflicts), len(resolved))
	}

	var meds []medicine.Medicine
	clean := result.CleanLines
	next := 0

	flushBefore := func(line int) error {
		for next < len(clean) && clean[next].LineNum < line {
			decoded, err := decodeLines([]numberedLine{{clean[next].LineNum, clean[next].Content}})
			if err != nil {
				return err
			}
			meds = append(meds, decoded...)
			next++
		}
		return nil
	}

	for i, region := range result.Conflicts {
		if err := flushBefore(region.StartLine); err != nil {
			return nil, err
		}
		meds = append(meds, resolved[i]...)
	}
	if err := flushBefore(int(^uint(0) >> 1)); err != nil {
		return nil, err
	}

	return meds, nil
}
