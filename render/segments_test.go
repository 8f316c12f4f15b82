package render

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Segment
	}{
		{
			name:  "round trip",
			input: "a ```js\ncode\n``` b",
			want:  []Segment{TextSegment("a "), CodeSegment("js", "code"), TextSegment(" b")},
		},
		{
			name:  "plain text",
			input: "just words",
			want:  []Segment{TextSegment("just words")},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "default language",
			input: "```\n  x := 1  \n```",
			want:  []Segment{CodeSegment(DefaultLanguage, "x := 1")},
		},
		{
			name:  "adjacent blocks drop empty prose",
			input: "```go\na\n``````py\nb\n```",
			want:  []Segment{CodeSegment("go", "a"), CodeSegment("py", "b")},
		},
		{
			name:  "no newline after tag stays prose",
			input: "see ```inline``` here",
			want:  []Segment{TextSegment("see "), TextSegment("```inline```"), TextSegment(" here")},
		},
		{
			name:  "unterminated fence",
			input: "start ```go\nfmt.Println()",
			want:  []Segment{TextSegment("start ```go\nfmt.Println()")},
		},
		{
			name:  "multiline body",
			input: "Try:\n```python\nfor i in range(3):\n    print(i)\n```\nDone.",
			want: []Segment{
				TextSegment("Try:\n"),
				CodeSegment("python", "for i in range(3):\n    print(i)"),
				TextSegment("\nDone."),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q)\n got  %+v\n want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCodeBlocksAndLastCode(t *testing.T) {
	text := "```go\nfirst\n```\nmiddle\n```sh\nsecond\n```"
	blocks := CodeBlocks(Split(text))
	if len(blocks) != 2 || blocks[0].Code != "first" || blocks[1].Code != "second" {
		t.Fatalf("unexpected blocks %+v", blocks)
	}

	if code, ok := LastCode(text); !ok || code != "second" {
		t.Errorf("LastCode = %q, %v", code, ok)
	}
	if _, ok := LastCode("no code here"); ok {
		t.Error("expected no code block")
	}
}

func TestRenderIncludesContent(t *testing.T) {
	out := Message("Intro paragraph\n```go\nfmt.Println(\"hi\")\n```\nOutro", 60)

	for _, want := range []string{"Intro", "go", `fmt.Println("hi")`, "Outro"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderNarrowWidth(t *testing.T) {
	if out := Render([]Segment{CodeSegment("js", "x")}, 0); !strings.Contains(out, "x") {
		t.Errorf("expected code body, got %q", out)
	}
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.text = text
	return f.err
}

func TestCopyCmd(t *testing.T) {
	cb := &fakeClipboard{}
	msg := CopyCmd(cb, "echo hi")()

	copied, ok := msg.(CopiedMsg)
	if !ok {
		t.Fatalf("expected CopiedMsg, got %T", msg)
	}
	if copied.Err != nil || copied.Code != "echo hi" || cb.text != "echo hi" {
		t.Errorf("unexpected copy result %+v (clipboard %q)", copied, cb.text)
	}

	failing := &fakeClipboard{err: errors.New("no display")}
	if msg := CopyCmd(failing, "x")().(CopiedMsg); msg.Err == nil {
		t.Error("expected clipboard error")
	}
}
