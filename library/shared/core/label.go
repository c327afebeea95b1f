package core

import "strings"

// Label restricts which borrowers may take a book.
type Label string

const (
	LabelGeneral     Label = "general"
	LabelForChildren Label = "for-children"

	legacyLabelForChildren = "for children"
)

// ParseLabel accepts the canonical label values and the legacy spelling "for children".
// Matching ignores case and surrounding whitespace.
func ParseLabel(value string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(LabelGeneral):
		return LabelGeneral, nil
	case string(LabelForChildren), legacyLabelForChildren:
		return LabelForChildren, nil
	default:
		return "", ErrUnknownLabel
	}
}

// LabelOrDefault parses value and falls back to LabelGeneral for anything unknown.
func LabelOrDefault(value string) Label {
	label, err := ParseLabel(value)
	if err != nil {
		return LabelGeneral
	}

	return label
}

func (l Label) String() string {
	return string(l)
}
