package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// Form is a multipart/form-data body. Fields keep insertion order.
type Form struct {
	fields []formField
	files  []FormFile
}

type formField struct {
	name  string
	value string
}

// FormFile is a file part of a Form.
type FormFile struct {
	Field    string
	Filename string
	Content  io.Reader
}

func NewForm() *Form {
	return &Form{}
}

// Set appends a text field.
func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// File appends a file part.
func (f *Form) File(field, filename string, content io.Reader) *Form {
	f.files = append(f.files, FormFile{Field: field, Filename: filename, Content: content})
	return f
}

// Value returns the first value of a text field.
func (f *Form) Value(name string) (string, bool) {
	for _, fld := range f.fields {
		if fld.name == name {
			return fld.value, true
		}
	}
	return "", false
}

// HasFile reports whether a file part exists for field.
func (f *Form) HasFile(field string) bool {
	for _, file := range f.files {
		if file.Field == field {
			return true
		}
	}
	return false
}

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", fld.name, err)
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
