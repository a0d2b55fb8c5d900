// Package io provides JSON import and export for ER diagrams.
//
// # JSON Format
//
// A diagram document mirrors [model.Diagram] field for field:
//
//	{
//	  "name": "School",
//	  "entities": [
//	    {
//	      "id": "student", "name": "Student",
//	      "x": 0, "y": 0, "width": 140, "height": 70,
//	      "attributes": [
//	        {"id": "a1", "name": "id", "type": "KEY", "x": 0, "y": 0, "isPrimaryKey": true}
//	      ],
//	      "documentation": "", "isWeak": false
//	    }
//	  ],
//	  "relationships": [
//	    {
//	      "id": "enrolls", "name": "Enrolls",
//	      "x": 150, "y": 100, "width": 120, "height": 120,
//	      "attributes": [],
//	      "connections": [{"entityId": "student", "cardinality": "ONE_MANY"}],
//	      "documentation": ""
//	    }
//	  ],
//	  "notes": [{"id": "n1", "text": "draft", "x": 500, "y": 500, "width": 210, "height": 155}],
//	  "documentation": ""
//	}
//
// Cardinalities and attribute types are written as their upper-case names.
// Attribute "x" and "y" hold the marker's offset from its owner's center;
// an offset of exactly (0, 0) means the marker sits in its default slot.
//
// Missing sizes decode to the model defaults and unknown keys are ignored,
// so documents written by older versions still load.
//
// # Import
//
// Use [ImportJSON] to read a diagram from a file path, or [ReadJSON] to read
// from any io.Reader. Both validate the decoded diagram with
// [model.Diagram.Validate]. Failures are [errors.Error] values with the
// codes FILE_NOT_FOUND, INVALID_FORMAT, INVALID_DIAGRAM or IO_ERROR.
//
// # Export
//
// Use [ExportJSON] to write a diagram to a file, [WriteJSON] to write to
// any io.Writer, or [Marshal] for the bytes. Output is indented with two
// spaces.
//
// [errors.Error]: github.com/matzehuels/erdiagram/pkg/errors.Error
package io
