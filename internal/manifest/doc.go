// Package manifest loads the input manifest and resolves file keys to
// concrete source paths.
//
// # Manifest shape
//
// The manifest is a JSON (or YAML) object with an "_inputs" list; every
// other top-level key maps a file key to a path or a list of paths:
//
//	{
//	  "_inputs": [
//	    {"id": "t1w", "datatype": "58c33bcee13a50849b25879a",
//	     "meta": {"subject": "01"}, "keys": ["t1"]}
//	  ],
//	  "t1": "../5f1b/output/t1.nii.gz",
//	  "dwi": ["../a/dwi.nii.gz", "../b/dwi.nii.gz"]
//	}
//
// # Multi-valued keys
//
// A key that maps to a list is shared by several inputs. Resolve hands the
// entries out in manifest order, one per referencing input, so no two inputs
// ever receive the same file.
package manifest
