package render

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	headingRe     = regexp.MustCompile(`^(#{1,3})\s+(.+)$`)
	ruleRe        = regexp.MustCompile(`^-{3,}$`)
	unorderedRe   = regexp.MustCompile(`^[-*]\s+(.+)$`)
	orderedItemRe = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

// lineKind is the closed set of classifications a single input line can take.
type lineKind interface {
	isLineKind()
}

type tableRowLine struct{ cells []string }

type headingLine struct {
	level int
	text  string
}

type ruleLine struct{}

type listItemLine struct {
	ordered bool
	text    string
}

type blankLine struct{}

type paragraphLine struct{ text string }

func (tableRowLine) isLineKind()  {}
func (headingLine) isLineKind()   {}
func (ruleLine) isLineKind()      {}
func (listItemLine) isLineKind()  {}
func (blankLine) isLineKind()     {}
func (paragraphLine) isLineKind() {}

// classify assigns a line to exactly one kind. The first matching rule wins:
// table row, heading, rule, unordered item, ordered item, blank, paragraph.
func classify(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "|") {
		return tableRowLine{cells: splitCells(trimmed)}
	}
	if m := headingRe.FindStringSubmatch(trimmed); m != nil {
		return headingLine{level: len(m[1]), text: strings.TrimSpace(m[2])}
	}
	if ruleRe.MatchString(trimmed) {
		return ruleLine{}
	}
	if m := unorderedRe.FindStringSubmatch(trimmed); m != nil {
		return listItemLine{text: m[1]}
	}
	if m := orderedItemRe.FindStringSubmatch(trimmed); m != nil {
		return listItemLine{ordered: true, text: m[1]}
	}
	if trimmed == "" {
		return blankLine{}
	}
	return paragraphLine{text: line}
}

// splitCells strips one leading and one trailing pipe and splits the rest.
func splitCells(trimmed string) []string {
	inner := strings.TrimPrefix(trimmed, "|")
	inner = strings.TrimSuffix(inner, "|")
	cells := strings.Split(inner, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// blockState holds the pending multi-line construct. At most one of the list
// and table buffers is open at a time.
type blockState struct {
	listOpen bool
	ordered  bool
	items    []string
	table    [][]string
}

// RenderPlainText renders prose (no card payloads) into HTML blocks.
func RenderPlainText(text string) string {
	if text == "" {
		return ""
	}
	var out strings.Builder
	out.Grow(len(text) * 2)
	var st blockState
	for _, raw := range strings.Split(text, "\n") {
		st = st.step(&out, classify(strings.TrimSuffix(raw, "\r")))
	}
	st.flushList(&out)
	st.flushTable(&out)
	return out.String()
}

func (st blockState) step(out *strings.Builder, l lineKind) blockState {
	if row, ok := l.(tableRowLine); ok {
		st = st.flushList(out)
		st.table = append(st.table, row.cells)
		return st
	}
	st = st.flushTable(out)

	switch l := l.(type) {
	case headingLine:
		st = st.flushList(out)
		lvl := strconv.Itoa(l.level)
		out.WriteString("<h" + lvl + ">" + FormatInline(l.text) + "</h" + lvl + ">")
	case ruleLine:
		st = st.flushList(out)
		out.WriteString("<hr>")
	case listItemLine:
		if st.listOpen && st.ordered != l.ordered {
			st = st.flushList(out)
		}
		if !st.listOpen {
			st.listOpen = true
			st.ordered = l.ordered
		}
		st.items = append(st.items, FormatInline(l.text))
	case blankLine:
		st = st.flushList(out)
		out.WriteString("<br>")
	case paragraphLine:
		st = st.flushList(out)
		out.WriteString("<p>" + FormatInline(l.text) + "</p>")
	}
	return st
}

func (st blockState) flushList(out *strings.Builder) blockState {
	if !st.listOpen {
		return st
	}
	tag := "ul"
	if st.ordered {
		tag = "ol"
	}
	out.WriteString("<" + tag + ">")
	for _, it := range st.items {
		out.WriteString("<li>" + it + "</li>")
	}
	out.WriteString("</" + tag + ">")
	return blockState{table: st.table}
}

func (st blockState) flushTable(out *strings.Builder) blockState {
	if len(st.table) == 0 {
		return st
	}
	writeTable(out, st.table)
	st.table = nil
	return st
}

// writeTable emits rows[0] as the header. rows[1] is always taken to be the
// separator and dropped, even when it holds data; rows[2:] form the body.
func writeTable(out *strings.Builder, rows [][]string) {
	header := rows[0]
	var body [][]string
	if len(rows) > 2 {
		body = rows[2:]
	}

	out.WriteString("<table><thead><tr>")
	for _, c := range header {
		out.WriteString("<th>" + FormatInline(c) + "</th>")
	}
	out.WriteString("</tr></thead><tbody>")
	for _, row := range body {
		out.WriteString("<tr>")
		for i := 0; i < len(header) || i < len(row); i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			out.WriteString("<td>" + FormatInline(cell) + "</td>")
		}
		out.WriteString("</tr>")
	}
	out.WriteString("</tbody></table>")
}
