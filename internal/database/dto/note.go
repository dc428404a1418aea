// Package dto decodes request bodies into note inputs. Decoding keeps apart a
// field that is absent, a field that is JSON null, an empty string and a body
// that is not JSON at all; the update path depends on that distinction.
package dto

import (
	"bytes"
	"fmt"
	"notesapi/internal/database/models"
	"notesapi/internal/errs"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

const (
	FieldSubject = "subject"
	FieldContent = "content"
)

const msgIncomplete = "incomplete data: 'subject' and 'content' fields are required"

// DecodeCreateNote parses a create body. Both fields must be present and
// non-null strings; empty strings are accepted.
func DecodeCreateNote(body []byte) (models.NewNote, error) {
	doc, _, err := parseObject(body)
	if err != nil {
		// a missing or unreadable body is reported like missing fields
		return models.NewNote{}, errs.NewValidation(msgIncomplete)
	}
	subject := doc.Get(FieldSubject)
	content := doc.Get(FieldContent)
	if !present(subject) || !present(content) {
		return models.NewNote{}, errs.NewValidation(msgIncomplete)
	}
	var in models.NewNote
	if in.Subject, err = stringField(FieldSubject, subject); err != nil {
		return models.NewNote{}, err
	}
	if in.Content, err = stringField(FieldContent, content); err != nil {
		return models.NewNote{}, err
	}
	return in, nil
}

// DecodeNotePatch parses an update body. Any subset of the fields may be
// present; fields that are present must be strings.
func DecodeNotePatch(body []byte) (models.NotePatch, error) {
	doc, keys, err := parseObject(body)
	if err != nil {
		return models.NotePatch{}, err
	}
	if keys == 0 {
		return models.NotePatch{}, errs.NewValidation("request body is empty")
	}

	var patch models.NotePatch
	if res := doc.Get(FieldSubject); res.Exists() {
		s, err := stringField(FieldSubject, res)
		if err != nil {
			return models.NotePatch{}, err
		}
		patch.Subject = &s
	}
	if res := doc.Get(FieldContent); res.Exists() {
		s, err := stringField(FieldContent, res)
		if err != nil {
			return models.NotePatch{}, err
		}
		patch.Content = &s
	}
	return patch, nil
}

// parseObject returns the body as a JSON object and its number of keys. A
// note field may appear at most once; gjson would otherwise silently keep the
// first occurrence.
func parseObject(body []byte) (gjson.Result, int, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return gjson.Result{}, 0, errs.NewValidation("request body is empty")
	}
	// gjson does not check string encoding
	if !gjson.ValidBytes(body) || !utf8.Valid(body) {
		return gjson.Result{}, 0, errs.NewValidation("request body is not valid JSON")
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return gjson.Result{}, 0, errs.NewValidation("request body must be a JSON object")
	}

	keys := 0
	seen := make(map[string]bool, 2)
	var dup string
	doc.ForEach(func(key, _ gjson.Result) bool {
		keys++
		if key.Str == FieldSubject || key.Str == FieldContent {
			if seen[key.Str] {
				dup = key.Str
				return false
			}
			seen[key.Str] = true
		}
		return true
	})
	if dup != "" {
		return gjson.Result{}, 0, errs.NewValidation(fmt.Sprintf("duplicate '%s' field", dup))
	}
	return doc, keys, nil
}

func present(res gjson.Result) bool {
	return res.Exists() && res.Type != gjson.Null
}

func stringField(name string, res gjson.Result) (string, error) {
	if res.Type != gjson.String {
		return "", errs.NewValidation(fmt.Sprintf("'%s' must be a string", name))
	}
	// the body buffer is reused by the server once the handler returns
	return strings.Clone(res.Str), nil
}
