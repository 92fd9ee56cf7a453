package diagfmt

import (
	"codinglint/internal/diag"
	"codinglint/internal/source"
)

// sampleBag builds a file set with two files and their sorted findings.
func sampleBag() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSetWithBase("/home/user/project")
	bad := fs.AddVirtual("/home/user/project/pkg/bad.py", []byte("#!/usr/bin/env python\n# coding: cp1252\n"))
	missing := fs.AddVirtual("/home/user/project/missing.py", []byte("x = 1\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.CodingUnknownEncoding, diag.At(2, 0), diag.CodingUnknownEncoding.Title()).InFile(bad).WithOrigin("coding"))
	bag.Add(diag.New(diag.SevWarning, diag.CodingNotFound, diag.At(1, 0), diag.CodingNotFound.Title()).InFile(missing).WithOrigin("coding"))
	bag.Sort()
	return bag, fs
}
