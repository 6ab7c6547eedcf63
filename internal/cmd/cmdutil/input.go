package cmdutil

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// InputOptions says where a command reads its document from.
type InputOptions struct {
	File     string    // path, or "-" for stdin
	Stdin    io.Reader // used for "-" and when piped
	Editor   bool      // force the editor
	Template string    // initial editor content
	Ext      string    // temp file extension for the editor, e.g. ".md"
}

// ReadInput reads from the file, then from piped stdin, and otherwise
// opens an editor.
func ReadInput(opts InputOptions) (string, error) {
	if opts.Editor {
		return OpenEditor(opts.Template, opts.Ext)
	}

	if opts.File == "-" {
		return readAll(opts.Stdin)
	}

	// Read from file
	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}

	// Check if stdin has data
	if IsPiped(opts.Stdin) {
		return readAll(opts.Stdin)
	}

	// Open editor
	return OpenEditor(opts.Template, opts.Ext)
}

func readAll(r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("no input: stdin is not available")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// OpenEditor lets the user write a document in $EDITOR, $VISUAL or vi.
func OpenEditor(template, ext string) (string, error) {
	if ext == "" {
		ext = ".html"
	}
	tmpfile, err := os.CreateTemp("", "rtdoc-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.WriteString(template); err != nil {
		tmpfile.Close()
		return "", err
	}
	tmpfile.Close()

	editor := EditorCommand()
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], tmpfile.Name())...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor failed: %w", err)
	}

	data, err := os.ReadFile(tmpfile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited content: %w", err)
	}

	content := strings.TrimSpace(string(data))
	if content == "" || content == strings.TrimSpace(template) {
		return "", fmt.Errorf("no content provided (or content unchanged)")
	}

	return content, nil
}

// EditorCommand returns the editor to run.
func EditorCommand() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := strings.TrimSpace(os.Getenv(env)); e != "" {
			return e
		}
	}
	return "vi"
}

// FormatFromPath guesses a document format from a file extension. It
// returns "" when the extension does not tell.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return "markdown"
	case ".json":
		return "json"
	case ".html", ".htm", ".xhtml":
		return "html"
	}
	return ""
}
