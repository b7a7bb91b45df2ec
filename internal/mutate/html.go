package mutate

import "os"

// HTMLEditor patches HTML documents by literal anchor, same discipline as
// XMLEditor.
type HTMLEditor struct{}

// Read returns the document at path.
func (HTMLEditor) Read(path string) ([]byte, error) {
	return readFile(path)
}

// HasContent reports whether the document contains marker.
func (HTMLEditor) HasContent(path, marker string) (bool, error) {
	return hasContent(path, marker)
}

// InjectBefore inserts snippet immediately before anchor (typically
// "</head>" or "</body>"). Idempotent: a document already containing
// snippet is left untouched.
func (e HTMLEditor) InjectBefore(path, anchor, snippet string) error {
	present, err := e.HasContent(path, snippet)
	if err != nil {
		return err
	}
	if present {
		return nil
	}

	data, err := e.Read(path)
	if err != nil {
		return err
	}

	content, err := insertBefore(string(data), anchor, snippet)
	if err != nil {
		return err
	}

	return os.WriteFile(path, []byte(content), 0644)
}

// InjectAfter inserts snippet immediately after anchor (typically an
// opening tag like "<body>").
func (e HTMLEditor) InjectAfter(path, anchor, snippet string) error {
	present, err := e.HasContent(path, snippet)
	if err != nil {
		return err
	}
	if present {
		return nil
	}

	data, err := e.Read(path)
	if err != nil {
		return err
	}

	content, err := insertAfter(string(data), anchor, snippet)
	if err != nil {
		return err
	}

	return os.WriteFile(path, []byte(content), 0644)
}
