// File: pkg/bundle/extensions.go
package bundle

import (
	"path/filepath"
	"strings"
)

// ExtensionSet is an ordered, read-only set of extension tags.
type ExtensionSet struct {
	tags  []string
	index map[string]struct{}
}

// SupportedExtensions is the set of source extensions recognized by default.
var SupportedExtensions = NewExtensionSet("c", "cs", "cpp", "h", "java", "asm", "sql", "css", "html", "js", "py")

// NewExtensionSet builds a set from tags, normalizing each with NormalizeTag.
// Duplicates and empty tags are dropped; first occurrence wins the position.
func NewExtensionSet(tags ...string) ExtensionSet {
	s := ExtensionSet{index: make(map[string]struct{}, len(tags))}
	for _, t := range tags {
		t = NormalizeTag(t)
		if t == "" {
			continue
		}
		if _, ok := s.index[t]; ok {
			continue
		}
		s.index[t] = struct{}{}
		s.tags = append(s.tags, t)
	}
	return s
}

// Contains reports whether tag is in the set.
func (s ExtensionSet) Contains(tag string) bool {
	_, ok := s.index[tag]
	return ok
}

// Tags returns a copy of the tags in set order.
func (s ExtensionSet) Tags() []string {
	return append([]string(nil), s.tags...)
}

// Len returns the number of tags.
func (s ExtensionSet) Len() int {
	return len(s.tags)
}

// Intersect keeps the members of s that also appear in tags, in s's order.
func (s ExtensionSet) Intersect(tags []string) ExtensionSet {
	want := NewExtensionSet(tags...)
	var kept []string
	for _, t := range s.tags {
		if want.Contains(t) {
			kept = append(kept, t)
		}
	}
	return NewExtensionSet(kept...)
}

// NormalizeTag lowercases a tag and strips surrounding space and one leading dot.
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, ".")
	return strings.ToLower(tag)
}

// ExtensionTag returns the extension tag of path: the lowercase extension
// without its leading dot, or "" when the name has no extension.
func ExtensionTag(path string) string {
	return NormalizeTag(filepath.Ext(path))
}
