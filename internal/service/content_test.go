package service

import (
	"testing"
)

func items(contentType ContentType, positions ...int) []CourseContentItem {
	out := make([]CourseContentItem, len(positions))
	for i, p := range positions {
		out[i] = CourseContentItem{Type: contentType, Position: p}
	}
	return out
}

func TestMergeByPositionOrdersAcrossLists(t *testing.T) {
	merged := MergeByPosition(
		items(ContentChapter, 1, 4),
		items(ContentQuiz, 2),
		items(ContentHomework, 3),
	)

	want := []int{1, 2, 3, 4}
	if len(merged) != len(want) {
		t.Fatalf("merged = %d items, want %d", len(merged), len(want))
	}
	for i, item := range merged {
		if item.Position != want[i] {
			t.Errorf("merged[%d].Position = %d, want %d", i, item.Position, want[i])
		}
	}
}

func TestMergeByPositionTieOrder(t *testing.T) {
	// On equal positions, chapters come before quizzes before homeworks
	merged := MergeByPosition(
		items(ContentChapter, 5),
		items(ContentQuiz, 5),
		items(ContentHomework, 5),
	)

	wantTypes := []ContentType{ContentChapter, ContentQuiz, ContentHomework}
	for i, item := range merged {
		if item.Type != wantTypes[i] {
			t.Errorf("merged[%d].Type = %s, want %s", i, item.Type, wantTypes[i])
		}
	}
}

func TestMergeByPositionStableWithinList(t *testing.T) {
	list := []CourseContentItem{
		{Type: ContentChapter, Position: 2, ID: 10},
		{Type: ContentChapter, Position: 2, ID: 11},
	}
	merged := MergeByPosition(list, nil, nil)
	if merged[0].ID != 10 || merged[1].ID != 11 {
		t.Errorf("within-list order changed: %v, %v", merged[0].ID, merged[1].ID)
	}
}

func TestMergeByPositionEmptyInputs(t *testing.T) {
	if got := MergeByPosition(nil, nil); len(got) != 0 {
		t.Errorf("merged = %d items, want 0", len(got))
	}
	if got := MergeByPosition(items(ContentQuiz, 1)); len(got) != 1 {
		t.Errorf("merged = %d items, want 1", len(got))
	}
}
