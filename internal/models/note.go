package models

import (
	"go.uber.org/multierr"

	"onetask-api/internal/docstore"
)

// Note is a free-form document, optionally grouped into a folder.
type Note struct {
	BaseDocument
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	IsPinned    bool     `json:"is_pinned"`
	FolderID    *string  `json:"folder_id,omitempty"`
	Attachments []string `json:"attachments"`
}

func (n *Note) Base() *BaseDocument { return &n.BaseDocument }
func (n *Note) Type() DocumentType  { return DocumentTypeNote }

func (n *Note) ToRecord() docstore.Record {
	rec := baseRecord(&n.BaseDocument, DocumentTypeNote)
	rec["title"] = n.Title
	rec["content"] = n.Content
	rec["tags"] = n.Tags
	rec["is_pinned"] = n.IsPinned
	rec["attachments"] = n.Attachments
	if n.FolderID != nil {
		rec["folder_id"] = *n.FolderID
	}
	return rec
}

func NoteFromRecord(rec docstore.Record) (*Note, error) {
	base, err := baseFromRecord(rec, DocumentTypeNote)
	if err != nil {
		return nil, err
	}
	title, err := requireString(rec, "title")
	if err != nil {
		return nil, err
	}

	return &Note{
		BaseDocument: base,
		Title:        title,
		Content:      getString(rec, "content"),
		Tags:         getStringSlice(rec, "tags"),
		IsPinned:     getBool(rec, "is_pinned"),
		FolderID:     getStringPtr(rec, "folder_id"),
		Attachments:  getStringSlice(rec, "attachments"),
	}, nil
}

type CreateNoteRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	IsPinned    bool     `json:"is_pinned"`
	FolderID    *string  `json:"folder_id"`
	Attachments []string `json:"attachments"`
	UserID      string   `json:"user_id"`
}

func (r *CreateNoteRequest) Validate() error {
	var err error
	if r.Title == "" {
		err = multierr.Append(err, requiredFieldError("title"))
	}
	if r.UserID == "" {
		err = multierr.Append(err, requiredFieldError("user_id"))
	}
	return err
}

func (r *CreateNoteRequest) ToNote() *Note {
	note := &Note{
		BaseDocument: BaseDocument{UserID: r.UserID},
		Title:        r.Title,
		Content:      r.Content,
		Tags:         r.Tags,
		IsPinned:     r.IsPinned,
		FolderID:     r.FolderID,
		Attachments:  r.Attachments,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	if note.Attachments == nil {
		note.Attachments = []string{}
	}
	return note
}

type UpdateNoteRequest struct {
	Title       *string  `json:"title"`
	Content     *string  `json:"content"`
	Tags        []string `json:"tags"`
	IsPinned    *bool    `json:"is_pinned"`
	FolderID    *string  `json:"folder_id"`
	Attachments []string `json:"attachments"`
}

func (r *UpdateNoteRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return invalidFieldError("title", "")
	}
	return nil
}

func (r *UpdateNoteRequest) Updates() map[string]any {
	updates := map[string]any{}
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Content != nil {
		updates["content"] = *r.Content
	}
	if r.Tags != nil {
		updates["tags"] = r.Tags
	}
	if r.IsPinned != nil {
		updates["is_pinned"] = *r.IsPinned
	}
	if r.FolderID != nil {
		updates["folder_id"] = *r.FolderID
	}
	if r.Attachments != nil {
		updates["attachments"] = r.Attachments
	}
	return updates
}

// Folder provides single-level grouping for notes.
type Folder struct {
	BaseDocument
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
}

func (f *Folder) Base() *BaseDocument { return &f.BaseDocument }
func (f *Folder) Type() DocumentType  { return DocumentTypeFolder }

func (f *Folder) ToRecord() docstore.Record {
	rec := baseRecord(&f.BaseDocument, DocumentTypeFolder)
	rec["name"] = f.Name
	if f.ParentID != nil {
		rec["parent_id"] = *f.ParentID
	}
	return rec
}

func FolderFromRecord(rec docstore.Record) (*Folder, error) {
	base, err := baseFromRecord(rec, DocumentTypeFolder)
	if err != nil {
		return nil, err
	}
	name, err := requireString(rec, "name")
	if err != nil {
		return nil, err
	}

	return &Folder{
		BaseDocument: base,
		Name:         name,
		ParentID:     getStringPtr(rec, "parent_id"),
	}, nil
}

type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
	UserID   string  `json:"user_id"`
}

func (r *CreateFolderRequest) Validate() error {
	var err error
	if r.Name == "" {
		err = multierr.Append(err, requiredFieldError("name"))
	}
	if r.UserID == "" {
		err = multierr.Append(err, requiredFieldError("user_id"))
	}
	return err
}

func (r *CreateFolderRequest) ToFolder() *Folder {
	return &Folder{
		BaseDocument: BaseDocument{UserID: r.UserID},
		Name:         r.Name,
		ParentID:     r.ParentID,
	}
}

type UpdateFolderRequest struct {
	Name     *string `json:"name"`
	ParentID *string `json:"parent_id"`
}

func (r *UpdateFolderRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return invalidFieldError("name", "")
	}
	return nil
}

func (r *UpdateFolderRequest) Updates() map[string]any {
	updates := map[string]any{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.ParentID != nil {
		updates["parent_id"] = *r.ParentID
	}
	return updates
}
