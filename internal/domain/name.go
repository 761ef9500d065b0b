package domain

import "strings"

// NameTriple holds a structured person name in Latin script. First and
// Surname are expected for a complete patient record; Middle is optional.
type NameTriple struct {
	First   string
	Middle  string
	Surname string
}

// DevanagariNames holds the Devanagari rendering of a NameTriple,
// field for field.
type DevanagariNames struct {
	First   string
	Middle  string
	Surname string
}

// IsEmpty reports whether no field carries a value.
func (n DevanagariNames) IsEmpty() bool {
	return strings.TrimSpace(n.First) == "" &&
		strings.TrimSpace(n.Middle) == "" &&
		strings.TrimSpace(n.Surname) == ""
}

// Merge fills empty fields of n from derived without touching fields that
// already hold a value. A Devanagari name an operator typed by hand is never
// overwritten by a machine-derived one.
func (n DevanagariNames) Merge(derived DevanagariNames) DevanagariNames {
	out := n
	if strings.TrimSpace(out.First) == "" {
		out.First = derived.First
	}
	if strings.TrimSpace(out.Middle) == "" {
		out.Middle = derived.Middle
	}
	if strings.TrimSpace(out.Surname) == "" {
		out.Surname = derived.Surname
	}
	return out
}
