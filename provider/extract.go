package provider

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ShapeMatcher recognises one response shape and returns its reply text.
// Matchers are pure: they never mutate the result and never panic.
type ShapeMatcher func(resp gjson.Result) (string, bool)

// ReplyMatchers lists the recognised Gemini-style response shapes in
// priority order. The first matcher that returns ok wins.
var ReplyMatchers = []ShapeMatcher{
	MatchCandidates,
	MatchOutputList,
	MatchOutputText,
	MatchBareText,
}

// ExtractReply pulls the assistant text out of a generateContent response
// using ReplyMatchers. When no shape matches it returns the compact JSON of
// the whole response, so the result is never empty.
func ExtractReply(body []byte) string {
	return ExtractWith(body, ReplyMatchers)
}

// ExtractWith is ExtractReply with a caller-supplied matcher list.
func ExtractWith(body []byte, matchers []ShapeMatcher) string {
	if !gjson.ValidBytes(body) {
		if s := strings.TrimSpace(string(body)); s != "" {
			return s
		}
		return "{}"
	}

	resp := gjson.ParseBytes(body)
	for _, match := range matchers {
		if text, ok := match(resp); ok {
			return text
		}
	}

	if dump := strings.TrimSpace(string(pretty.Ugly(body))); dump != "" {
		return dump
	}
	return "{}"
}

// MatchCandidates handles {"candidates":[{"content":{"parts":[{"text":...}]}}]}
// and the older {"candidates":[{"output":"..."}]} shape.
func MatchCandidates(resp gjson.Result) (string, bool) {
	first := resp.Get("candidates.0")
	if !first.Exists() {
		return "", false
	}
	if text := joinTexts(first.Get("content.parts.#.text")); text != "" {
		return text, true
	}
	if out := first.Get("output"); out.Type == gjson.String && out.Str != "" {
		return out.Str, true
	}
	return "", false
}

// MatchOutputList handles {"output":[{"content":[{"text":...}]}]} as well as
// output entries that carry text directly.
func MatchOutputList(resp gjson.Result) (string, bool) {
	output := resp.Get("output")
	if !output.IsArray() {
		return "", false
	}

	var sb strings.Builder
	for _, item := range output.Array() {
		if content := item.Get("content"); content.IsArray() {
			sb.WriteString(joinTexts(content.Get("#.text")))
			continue
		}
		if text := item.Get("text"); text.Type == gjson.String {
			sb.WriteString(text.Str)
		}
	}

	if sb.Len() == 0 {
		return "", false
	}
	return sb.String(), true
}

// MatchOutputText handles {"output_text":"..."}.
func MatchOutputText(resp gjson.Result) (string, bool) {
	return stringField(resp, "output_text")
}

// MatchBareText handles {"text":"..."}.
func MatchBareText(resp gjson.Result) (string, bool) {
	return stringField(resp, "text")
}

func stringField(resp gjson.Result, path string) (string, bool) {
	field := resp.Get(path)
	if field.Type != gjson.String || field.Str == "" {
		return "", false
	}
	return field.Str, true
}

func joinTexts(texts gjson.Result) string {
	if !texts.IsArray() {
		return ""
	}
	var sb strings.Builder
	for _, t := range texts.Array() {
		if t.Type == gjson.String {
			sb.WriteString(t.Str)
		}
	}
	return sb.String()
}
