package gemini

import (
	"strings"

	"github.com/tidwall/gjson"
)

const (
	// hijackGuard is prepended by the endpoint to stop the body being evaluated as script.
	hijackGuard = ")]}'"
	// frameTag marks the batch entry that carries the generated answer.
	frameTag  = "wrb.fr"
	codeFence = "```"
)

// Decode extracts the answer text from a raw StreamGenerate response body.
//
// Only the first line after the hijack guard is read. It must be a JSON array containing
// a ["wrb.fr", _, "<json>", ...] entry whose embedded JSON has the fragment list at index 4.
// The first fragment with usable text wins. When that text holds a fenced code block
// (at least two fences), only the trimmed text after the last fence is returned.
//
// Decode never fails: any deviation from that shape yields "".
func Decode(raw string) string {
	raw = strings.TrimPrefix(raw, hijackGuard)
	line, _, _ := strings.Cut(strings.TrimSpace(raw), "\n")
	if !gjson.Valid(line) {
		return ""
	}
	root := gjson.Parse(line)
	if !root.IsArray() {
		return ""
	}
	for _, frame := range root.Array() {
		if text, ok := frameText(frame); ok {
			return text
		}
	}
	return ""
}

func frameText(frame gjson.Result) (string, bool) {
	if !frame.IsArray() {
		return "", false
	}
	items := frame.Array()
	if len(items) < 3 || items[0].Type != gjson.String || items[0].Str != frameTag {
		return "", false
	}
	payload := items[2]
	if payload.Type != gjson.String || payload.Str == "" || !gjson.Valid(payload.Str) {
		return "", false
	}
	inner := gjson.Parse(payload.Str)
	if !inner.IsArray() {
		return "", false
	}
	body := inner.Array()
	if len(body) <= 4 || !body[4].IsArray() {
		return "", false
	}
	for _, fragment := range body[4].Array() {
		if text, ok := fragmentText(fragment); ok {
			return text, true
		}
	}
	return "", false
}

func fragmentText(fragment gjson.Result) (string, bool) {
	if !fragment.IsArray() {
		return "", false
	}
	parts := fragment.Array()
	if len(parts) < 2 {
		return "", false
	}
	candidate := parts[1]
	if candidate.IsArray() {
		if wrapped := candidate.Array(); len(wrapped) > 0 {
			candidate = wrapped[0]
		}
	}
	if candidate.Type != gjson.String || strings.TrimSpace(candidate.Str) == "" {
		return "", false
	}
	text := candidate.Str
	if strings.Contains(text, codeFence) {
		if segments := strings.Split(text, codeFence); len(segments) >= 3 {
			return strings.TrimSpace(segments[len(segments)-1]), true
		}
	}
	return text, true
}
