package models

type Note struct {
	ID      int64  `json:"id"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// NewNote is the input for creating a note.
type NewNote struct {
	Subject string
	Content string
}

// NotePatch carries the fields to overwrite on update. A nil field is left
// untouched.
type NotePatch struct {
	Subject *string
	Content *string
}

// Empty reports whether p changes nothing.
func (p NotePatch) Empty() bool {
	return p.Subject == nil && p.Content == nil
}

// Apply overwrites the fields set in p.
func (p NotePatch) Apply(note *Note) {
	if p.Subject != nil {
		note.Subject = *p.Subject
	}
	if p.Content != nil {
		note.Content = *p.Content
	}
}
