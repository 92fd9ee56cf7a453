// Package coding checks PEP 263 encoding declarations ("coding magic
// comments").
//
// Only the first two physical lines of a file are inspected. Depending on
// configuration the checker reports a missing declaration (C101), a
// declaration naming an encoding outside the allow-list (C102) or any
// declaration at all (C103). A file produces at most one diagnostic.
//
// Options are parsed once per process into an immutable Config; checkers
// share it without locking.
package coding
