// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package nixdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Section is a part of a doc comment introduced by a level-1 heading.
type Section struct {
	// Heading is the heading text without the leading "# ", as written.
	Heading string `json:"heading"`
	// Content is the trimmed section body.
	Content string `json:"content"`
}

// Kind returns the semantic kind of the section.
func (s Section) Kind() Kind { return Classify(s.Heading) }

// Tag identifies a recognized section kind.
type Tag uint8

// Section tags.
const (
	TagUnknown Tag = iota
	TagType
	TagArguments
	TagExample
	TagExamples
	TagNote
	TagNotes
	TagWarning
	TagDeprecated
)

var tagNames = [...]string{
	TagUnknown:    "Unknown",
	TagType:       "Type",
	TagArguments:  "Arguments",
	TagExample:    "Example",
	TagExamples:   "Examples",
	TagNote:       "Note",
	TagNotes:      "Notes",
	TagWarning:    "Warning",
	TagDeprecated: "Deprecated",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", t)
}

// headings maps lowercased headings to their tags.
var headings = map[string]Tag{
	"type":       TagType,
	"arguments":  TagArguments,
	"args":       TagArguments,
	"example":    TagExample,
	"examples":   TagExamples,
	"note":       TagNote,
	"notes":      TagNotes,
	"warning":    TagWarning,
	"warnings":   TagWarning,
	"caution":    TagWarning,
	"deprecated": TagDeprecated,
}

// Kind is the semantic kind of a section, derived from its heading.
//
// Headings outside the recognized set have Tag [TagUnknown] and carry the
// lowercased heading in Text.
type Kind struct {
	Tag  Tag
	Text string
}

// Classify returns the kind of a section with the given heading. Matching is
// case-insensitive.
func Classify(heading string) Kind {
	h := strings.ToLower(heading)
	if tag, ok := headings[h]; ok {
		return Kind{Tag: tag}
	}
	return Kind{Tag: TagUnknown, Text: h}
}

// IsKnown reports whether k is one of the recognized section kinds.
func (k Kind) IsKnown() bool { return k.Tag != TagUnknown }

func (k Kind) String() string {
	if k.Tag == TagUnknown {
		return fmt.Sprintf("Unknown(%q)", k.Text)
	}
	return k.Tag.String()
}

// MarshalJSON encodes a recognized kind as its tag name and an unknown kind
// as {"Unknown": text}.
func (k Kind) MarshalJSON() ([]byte, error) {
	if k.Tag == TagUnknown {
		return json.Marshal(map[string]string{"Unknown": k.Text})
	}
	return json.Marshal(k.Tag.String())
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (k *Kind) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(b), []byte("{")) {
		var v struct {
			Unknown *string `json:"Unknown"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		if v.Unknown == nil {
			return fmt.Errorf("nixdoc: invalid section kind %s", b)
		}
		*k = Kind{Tag: TagUnknown, Text: *v.Unknown}
		return nil
	}

	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	for tag, tn := range tagNames {
		if tag != int(TagUnknown) && tn == name {
			*k = Kind{Tag: Tag(tag)}
			return nil
		}
	}
	return fmt.Errorf("nixdoc: unknown section kind %q", name)
}

// Argument is a function argument listed in the Arguments section as
// "- [name] description".
type Argument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Example is a fenced code block from an Example or Examples section.
type Example struct {
	// Language is the info string of the opening fence, or empty.
	Language string `json:"language,omitempty"`
	Code     string `json:"code"`
}

// WarningKind is the category of a [Warning].
type WarningKind uint8

// Warning kinds.
const (
	// EmptySection means a section heading has no body.
	EmptySection WarningKind = iota + 1
	// UnknownSection means a section heading is not a recognized name.
	UnknownSection
)

func (k WarningKind) String() string {
	switch k {
	case EmptySection:
		return "EmptySection"
	case UnknownSection:
		return "UnknownSection"
	}
	return fmt.Sprintf("WarningKind(%d)", k)
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (k WarningKind) MarshalText() ([]byte, error) {
	switch k {
	case EmptySection, UnknownSection:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("nixdoc: invalid warning kind %d", k)
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (k *WarningKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "EmptySection":
		*k = EmptySection
	case "UnknownSection":
		*k = UnknownSection
	default:
		return fmt.Errorf("nixdoc: unknown warning kind %q", b)
	}
	return nil
}

// Warning is a non-fatal problem found while parsing.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

func (w Warning) String() string { return w.Message }
