package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "arabic content",
			content: "ما هي حقوق الموظف؟",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestPassage_ID(t *testing.T) {
	a := &Passage{Content: "employees are entitled to annual leave"}
	b := &Passage{Content: "employees are entitled to annual leave", Score: 0.93}

	if a.ID() != b.ID() {
		t.Errorf("Passage.ID() should depend only on content")
	}
	if a.ID() != IDFromContent(a.Content) {
		t.Errorf("Passage.ID() should equal IDFromContent of the content")
	}
}
