package repository

import (
	"context"
	"strings"

	"onetask-api/internal/models"
)

// NoteFilters narrows a user's note listing. All matching happens in
// memory over the user's own documents.
type NoteFilters struct {
	FolderID *string
	Tag      string
	Pinned   *bool
	Search   string
}

// NotesRepository extends the generic document repository with note
// listing filters.
type NotesRepository struct {
	*Repository[*models.Note]
}

func NewNotesRepository(p Params) *NotesRepository {
	return &NotesRepository{newRepository(p, models.DocumentTypeNote, models.NoteFromRecord)}
}

// List applies folder, tag, pinned and search filters over the user's
// notes. Search is a case-insensitive substring match against title and
// content.
func (r *NotesRepository) List(ctx context.Context, userID string, filters NoteFilters) ([]*models.Note, error) {
	notes, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Note, 0, len(notes))
	for _, note := range notes {
		if !matchesNoteFilters(note, filters) {
			continue
		}
		out = append(out, note)
	}
	return out, nil
}

func matchesNoteFilters(note *models.Note, filters NoteFilters) bool {
	if filters.FolderID != nil {
		if note.FolderID == nil || *note.FolderID != *filters.FolderID {
			return false
		}
	}
	if filters.Pinned != nil && note.IsPinned != *filters.Pinned {
		return false
	}
	if filters.Tag != "" {
		found := false
		for _, tag := range note.Tags {
			if tag == filters.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filters.Search != "" {
		needle := strings.ToLower(filters.Search)
		if !strings.Contains(strings.ToLower(note.Title), needle) &&
			!strings.Contains(strings.ToLower(note.Content), needle) {
			return false
		}
	}
	return true
}

// FoldersRepository extends the generic document repository with
// parent-scoped listing.
type FoldersRepository struct {
	*Repository[*models.Folder]
}

func NewFoldersRepository(p Params) *FoldersRepository {
	return &FoldersRepository{newRepository(p, models.DocumentTypeFolder, models.FolderFromRecord)}
}

// ListByParent returns the user's folders under one parent; a nil
// parent selects top-level folders.
func (r *FoldersRepository) ListByParent(ctx context.Context, userID string, parentID *string) ([]*models.Folder, error) {
	folders, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Folder, 0, len(folders))
	for _, folder := range folders {
		switch {
		case parentID == nil && folder.ParentID != nil:
			continue
		case parentID != nil && (folder.ParentID == nil || *folder.ParentID != *parentID):
			continue
		}
		out = append(out, folder)
	}
	return out, nil
}
