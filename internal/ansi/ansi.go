// Package ansi decodes terminal escape sequences embedded in command output
// into styled text spans. Lines are decoded exactly once, when they enter an
// output buffer; rendering and search both work from the decoded form.
package ansi

import (
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// Style describes the visual attributes of a span of text. Colors are
// lipgloss-compatible strings: "0".."255" for palette colors, "#rrggbb" for
// truecolor, and "" for the terminal default.
type Style struct {
	Bold      bool
	Faint     bool
	Italic    bool
	Underline bool
	FG        string
	BG        string
}

// IsZero reports whether the style carries no attributes.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Span is a run of text sharing a single style.
type Span struct {
	Text  string
	Style Style
}

// parser states for the decode state machine
const (
	stateGround = iota
	stateEscape
	stateCSI
	stateOSC
)

// Decode splits raw into styled spans. SGR sequences (reset, bold, faint,
// italic, underline, standard/bright/256-palette/truecolor foreground and
// background) update the running style; every other escape sequence is
// consumed without producing visible output. Decode never fails: malformed
// sequences are dropped and decoding resumes with the following text.
//
// Plain text with no escapes decodes to a single span equal to the input.
func Decode(raw string) []Span {
	var (
		spans  []Span
		run    strings.Builder
		style  Style
		state  = stateGround
		params strings.Builder
	)
	flush := func() {
		if run.Len() > 0 {
			spans = append(spans, Span{Text: run.String(), Style: style})
			run.Reset()
		}
	}

	for i := 0; i < len(raw); i++ {
		b := raw[i]
		switch state {
		case stateGround:
			if b == 0x1b {
				state = stateEscape
			} else {
				run.WriteByte(b)
			}
		case stateEscape:
			switch b {
			case '[':
				state = stateCSI
				params.Reset()
			case ']':
				state = stateOSC
			default:
				// two-byte escape (charset designation etc.); drop it
				state = stateGround
			}
		case stateCSI:
			if b >= 0x40 && b <= 0x7e {
				if b == 'm' {
					flush()
					style = applySGR(style, params.String())
				}
				state = stateGround
			} else {
				params.WriteByte(b)
			}
		case stateOSC:
			// terminated by BEL or ST (ESC \)
			if b == 0x07 {
				state = stateGround
			} else if b == 0x1b && i+1 < len(raw) && raw[i+1] == '\\' {
				i++
				state = stateGround
			}
		}
	}
	flush()
	return spans
}

// Strip removes every escape sequence from raw, returning the text a
// terminal would actually display. Search runs against this form.
func Strip(raw string) string {
	return xansi.Strip(raw)
}

// applySGR folds one semicolon-separated SGR parameter list into style.
// Unknown parameters are skipped so a partially supported sequence still
// applies what it can.
func applySGR(style Style, raw string) Style {
	params := parseParams(raw)
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			style = Style{}
		case p == 1:
			style.Bold = true
		case p == 2:
			style.Faint = true
		case p == 3:
			style.Italic = true
		case p == 4:
			style.Underline = true
		case p == 22:
			style.Bold = false
			style.Faint = false
		case p == 23:
			style.Italic = false
		case p == 24:
			style.Underline = false
		case p >= 30 && p <= 37:
			style.FG = strconv.Itoa(p - 30)
		case p == 38:
			var color string
			color, i = extendedColor(params, i)
			if color != "" {
				style.FG = color
			}
		case p == 39:
			style.FG = ""
		case p >= 40 && p <= 47:
			style.BG = strconv.Itoa(p - 40)
		case p == 48:
			var color string
			color, i = extendedColor(params, i)
			if color != "" {
				style.BG = color
			}
		case p == 49:
			style.BG = ""
		case p >= 90 && p <= 97:
			style.FG = strconv.Itoa(p - 90 + 8)
		case p >= 100 && p <= 107:
			style.BG = strconv.Itoa(p - 100 + 8)
		}
	}
	return style
}

// extendedColor consumes a 38/48 color specification starting at params[i]
// and returns the color along with the index of the last consumed parameter.
// Returns "" when the specification is truncated or uses an unknown mode.
func extendedColor(params []int, i int) (string, int) {
	if i+1 >= len(params) {
		return "", len(params) - 1
	}
	switch params[i+1] {
	case 5: // 256-color palette
		if i+2 >= len(params) {
			return "", len(params) - 1
		}
		n := params[i+2]
		if n < 0 || n > 255 {
			return "", i + 2
		}
		return strconv.Itoa(n), i + 2
	case 2: // truecolor
		if i+4 >= len(params) {
			return "", len(params) - 1
		}
		r, g, b := params[i+2], params[i+3], params[i+4]
		if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
			return "", i + 4
		}
		return "#" + hexByte(r) + hexByte(g) + hexByte(b), i + 4
	}
	return "", i + 1
}

func hexByte(v int) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[v>>4], digits[v&0xf]})
}

// parseParams converts a raw SGR parameter string into integers. Empty
// parameters default to 0 per the SGR specification; anything non-numeric
// poisons only its own slot.
func parseParams(raw string) []int {
	if raw == "" {
		return []int{0}
	}
	parts := strings.Split(raw, ";")
	params := make([]int, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			params = append(params, 0)
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			params = append(params, -1)
			continue
		}
		params = append(params, n)
	}
	return params
}
