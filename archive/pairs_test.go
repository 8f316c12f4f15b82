package archive

import (
	"encoding/json"
	"peermind/model"
	"reflect"
	"strings"
	"testing"
)

func TestPairs(t *testing.T) {
	tests := []struct {
		name     string
		messages []model.Message
		want     []Pair
	}{
		{
			name:     "empty",
			messages: nil,
			want:     nil,
		},
		{
			name: "alternating",
			messages: []model.Message{
				{Role: "user", Content: "q1"},
				{Role: "assistant", Content: "a1"},
				{Role: "user", Content: "q2"},
				{Role: "assistant", Content: "a2"},
			},
			want: []Pair{{"q1", "a1"}, {"q2", "a2"}},
		},
		{
			name: "trailing user turn dropped",
			messages: []model.Message{
				{Role: "user", Content: "q1"},
				{Role: "assistant", Content: "a1"},
				{Role: "user", Content: "q2"},
			},
			want: []Pair{{"q1", "a1"}},
		},
		{
			name: "leading assistant ignored",
			messages: []model.Message{
				{Role: "assistant", Content: "welcome"},
				{Role: "user", Content: "q1"},
				{Role: "assistant", Content: "a1"},
			},
			want: []Pair{{"q1", "a1"}},
		},
		{
			name: "consecutive users share the next reply",
			messages: []model.Message{
				{Role: "user", Content: "q1"},
				{Role: "user", Content: "q2"},
				{Role: "assistant", Content: "a"},
			},
			want: []Pair{{"q1", "a"}, {"q2", "a"}},
		},
		{
			name: "other roles skipped during lookahead",
			messages: []model.Message{
				{Role: "user", Content: "q1"},
				{Role: "system", Content: "note"},
				{Role: "assistant", Content: "a1"},
			},
			want: []Pair{{"q1", "a1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pairs(tt.messages)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Pairs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Every alternating transcript keeps its exchanges in order with nothing lost.
func TestPairsPreservesOrderAndContent(t *testing.T) {
	for n := 1; n <= 20; n++ {
		var messages []model.Message
		for i := 0; i < n; i++ {
			messages = append(messages,
				model.Message{Role: "user", Content: string(rune('a'+i)) + " question"},
				model.Message{Role: "assistant", Content: string(rune('a'+i)) + " answer"},
			)
		}

		pairs := Pairs(messages)
		if len(pairs) != n {
			t.Fatalf("n=%d: expected %d pairs, got %d", n, n, len(pairs))
		}
		for i, p := range pairs {
			if p.User != messages[2*i].Content || p.Assistant != messages[2*i+1].Content {
				t.Errorf("n=%d pair %d = %+v, want %q/%q", n, i, p, messages[2*i].Content, messages[2*i+1].Content)
			}
		}
	}
}

func TestFormatText(t *testing.T) {
	got := FormatText([]Pair{{"hi", "hello"}, {"bye", "see you"}})
	want := "Conversation 1:\nUser: hi\nAssistant: hello\n\nConversation 2:\nUser: bye\nAssistant: see you"
	if got != want {
		t.Errorf("FormatText() = %q, want %q", got, want)
	}
	if FormatText(nil) != "" {
		t.Error("expected empty text for no pairs")
	}
}

func TestFormatJSON(t *testing.T) {
	got, err := FormatJSON([]Pair{{"hi", "hello"}}, 1700000000000)
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Pairs     []Pair `json:"pairs"`
		Timestamp int64  `json:"timestamp"`
	}
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", got, err)
	}
	if decoded.Timestamp != 1700000000000 || len(decoded.Pairs) != 1 || decoded.Pairs[0].Assistant != "hello" {
		t.Errorf("unexpected payload %+v", decoded)
	}

	empty, err := FormatJSON(nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid([]byte(empty)) || !strings.Contains(empty, `"pairs": []`) {
		t.Errorf("expected empty pairs array, got %q", empty)
	}
}
