package io

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/erdiagram/pkg/errors"
	"github.com/matzehuels/erdiagram/pkg/model"
)

// ReadJSON decodes a diagram document from r.
//
// Unknown keys are ignored and missing element sizes take the model
// defaults. The decoded diagram is checked with [model.Diagram.Validate].
//
// ReadJSON returns an error with code INVALID_FORMAT when the JSON is
// malformed and INVALID_DIAGRAM when the diagram breaks a structural
// invariant; the latter wraps the model sentinel, so errors.Is works with
// e.g. [model.ErrDuplicateEntityID]. ReadJSON does not close r.
func ReadJSON(r io.Reader) (model.Diagram, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return model.Diagram{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode diagram")
	}
	d := doc.toModel()
	if err := d.Validate(); err != nil {
		return model.Diagram{}, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "invalid diagram %q", d.Name)
	}
	return d, nil
}

// Unmarshal decodes a diagram document from data.
func Unmarshal(data []byte) (model.Diagram, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ImportJSON reads the JSON file at path.
//
// A missing file yields FILE_NOT_FOUND, other open failures IO_ERROR;
// decoding errors are those of [ReadJSON].
func ImportJSON(path string) (model.Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return model.Diagram{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return model.Diagram{}, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
