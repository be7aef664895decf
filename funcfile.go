package aeroki

import (
	"fmt"
	"os"
	"strings"
)

// Keywords framing a function definition file.
const (
	FunctionHeader = "ฟังก์ชัน"
	FunctionFooter = "จบฟังก์ชัน"
)

// FunctionFile is a named function body saved as a .aerofunc file.
type FunctionFile struct {
	Name string
	Body string
}

// Validate trims both fields and reports the first one left empty.
func (f *FunctionFile) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Body = strings.TrimSpace(f.Body)
	if f.Name == "" {
		return ErrEmptyFunctionName
	}
	if f.Body == "" {
		return ErrEmptyFunctionBody
	}
	return nil
}

// Render returns the file contents.
func (f FunctionFile) Render() string {
	return fmt.Sprintf("%s %s\n%s\n%s\n", FunctionHeader, f.Name, f.Body, FunctionFooter)
}

// DefaultFileName is the name offered in the save dialog.
func (f FunctionFile) DefaultFileName() string {
	return f.Name + FunctionExtension
}

// SavedMessage is shown after a successful save.
func (f FunctionFile) SavedMessage() string {
	return fmt.Sprintf("%s '%s' ถูกบันทึกแล้ว", FunctionHeader, f.Name)
}

// WriteFile validates f and writes it to path.
func (f *FunctionFile) WriteFile(path string) error {
	if err := f.Validate(); err != nil {
		return err
	}
	path = WithDefaultExtension(path, FunctionExtension)
	if err := os.WriteFile(path, []byte(f.Render()), 0o644); err != nil {
		return fmt.Errorf("save function %s: %w", path, err)
	}
	return nil
}

// ParseFunctionFile reads back a file produced by Render.
func ParseFunctionFile(content string) (FunctionFile, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) < 2 {
		return FunctionFile{}, ErrNotFunctionFile
	}

	header := strings.TrimSpace(lines[0])
	if !strings.HasPrefix(header, FunctionHeader) {
		return FunctionFile{}, ErrNotFunctionFile
	}
	name := strings.TrimSpace(strings.TrimPrefix(header, FunctionHeader))
	if strings.TrimSpace(lines[len(lines)-1]) != FunctionFooter {
		return FunctionFile{}, ErrNotFunctionFile
	}

	f := FunctionFile{
		Name: name,
		Body: strings.Join(lines[1:len(lines)-1], "\n"),
	}
	if err := f.Validate(); err != nil {
		return FunctionFile{}, err
	}
	return f, nil
}

// LoadFunctionFile reads and parses path.
func LoadFunctionFile(path string) (FunctionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FunctionFile{}, fmt.Errorf("open function %s: %w", path, err)
	}
	f, err := ParseFunctionFile(string(data))
	if err != nil {
		return FunctionFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
