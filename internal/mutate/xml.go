package mutate

import "os"

// XMLEditor patches XML manifests and plists by literal anchor. No XML
// parsing happens here: a structural parser would turn "anchor missing"
// failures into "document invalid" failures, which is the wrong taxonomy
// for files this tool only decorates.
type XMLEditor struct{}

// Read returns the document at path.
func (XMLEditor) Read(path string) ([]byte, error) {
	return readFile(path)
}

// HasContent reports whether the document contains marker.
func (XMLEditor) HasContent(path, marker string) (bool, error) {
	return hasContent(path, marker)
}

// InjectBeforeClose inserts snippet immediately before closingTag (e.g.
// "</manifest>"). A document already containing snippet is left untouched.
func (e XMLEditor) InjectBeforeClose(path, closingTag, snippet string) error {
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

	content, err := insertBefore(string(data), closingTag, snippet)
	if err != nil {
		return err
	}

	return os.WriteFile(path, []byte(content), 0644)
}
