package repository

import (
	"context"
	"testing"

	"onetask-api/internal/models"
)

func createNote(t *testing.T, repo *NotesRepository, note *models.Note) *models.Note {
	t.Helper()
	if note.Tags == nil {
		note.Tags = []string{}
	}
	if note.Attachments == nil {
		note.Attachments = []string{}
	}
	created, err := repo.Create(context.Background(), note)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	return created
}

func TestNoteListFilters(t *testing.T) {
	repo := NewNotesRepository(newTestParams(t))
	ctx := context.Background()
	folder := "f-1"

	createNote(t, repo, &models.Note{
		BaseDocument: models.BaseDocument{UserID: "u-1"},
		Title:        "Grocery List",
		Content:      "milk, eggs",
		Tags:         []string{"home"},
		FolderID:     &folder,
	})
	createNote(t, repo, &models.Note{
		BaseDocument: models.BaseDocument{UserID: "u-1"},
		Title:        "Meeting notes",
		Content:      "quarterly review with GROCERY team",
		Tags:         []string{"work"},
		IsPinned:     true,
	})
	createNote(t, repo, &models.Note{
		BaseDocument: models.BaseDocument{UserID: "u-1"},
		Title:        "Ideas",
		Content:      "build a birdhouse",
		Tags:         []string{"home"},
	})

	// Case-insensitive substring search matches title and content.
	found, err := repo.List(ctx, "u-1", NoteFilters{Search: "grocery"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("search: got %d notes, want 2", len(found))
	}

	pinned := true
	found, err = repo.List(ctx, "u-1", NoteFilters{Pinned: &pinned})
	if err != nil {
		t.Fatalf("pinned filter: %v", err)
	}
	if len(found) != 1 || found[0].Title != "Meeting notes" {
		t.Errorf("pinned filter: %+v", found)
	}

	found, err = repo.List(ctx, "u-1", NoteFilters{Tag: "home"})
	if err != nil {
		t.Fatalf("tag filter: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("tag filter: got %d notes, want 2", len(found))
	}

	found, err = repo.List(ctx, "u-1", NoteFilters{FolderID: &folder})
	if err != nil {
		t.Fatalf("folder filter: %v", err)
	}
	if len(found) != 1 || found[0].Title != "Grocery List" {
		t.Errorf("folder filter: %+v", found)
	}
}

func TestFolderListByParent(t *testing.T) {
	repo := NewFoldersRepository(newTestParams(t))
	ctx := context.Background()

	root, err := repo.Create(ctx, &models.Folder{
		BaseDocument: models.BaseDocument{UserID: "u-1"},
		Name:         "Projects",
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if _, err := repo.Create(ctx, &models.Folder{
		BaseDocument: models.BaseDocument{UserID: "u-1"},
		Name:         "Archive",
	}); err != nil {
		t.Fatalf("create sibling: %v", err)
	}
	if _, err := repo.Create(ctx, &models.Folder{
		BaseDocument: models.BaseDocument{UserID: "u-1"},
		Name:         "2025",
		ParentID:     &root.ID,
	}); err != nil {
		t.Fatalf("create child: %v", err)
	}

	top, err := repo.ListByParent(ctx, "u-1", nil)
	if err != nil {
		t.Fatalf("top-level: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("top-level: got %d folders, want 2", len(top))
	}

	children, err := repo.ListByParent(ctx, "u-1", &root.ID)
	if err != nil {
		t.Fatalf("children: %v", err)
	}
	if len(children) != 1 || children[0].Name != "2025" {
		t.Errorf("children: %+v", children)
	}
}
