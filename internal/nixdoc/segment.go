// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package nixdoc

import (
	"fmt"
	"strings"
)

const headingPrefix = "# "

// segment splits normalized content into the description and the sections
// introduced by level-1 headings. Lines inside fenced code blocks are never
// headings.
func segment(content string) (desc string, sections []Section, warnings []Warning) {
	sections = []Section{}
	warnings = []Warning{}

	var (
		descLines []string
		body      []string
		heading   string
		inSection bool
		fences    fenceTracker
	)

	flush := func() {
		sec := Section{
			Heading: heading,
			Content: strings.TrimSpace(strings.Join(body, "\n")),
		}
		if sec.Content == "" {
			warnings = append(warnings, Warning{
				Kind:    EmptySection,
				Message: fmt.Sprintf("section '%s' has no content", heading),
			})
		}
		sections = append(sections, sec)
		body = body[:0]
	}

	for _, line := range lines(content) {
		// Fence state is updated first, so a fence line is never a heading.
		fences.step(line)

		if !fences.inBlock() {
			if rest, ok := strings.CutPrefix(line, headingPrefix); ok {
				if h := strings.TrimSpace(rest); h != "" {
					if inSection {
						flush()
					}
					heading, inSection = h, true
					continue
				}
			}
		}

		if inSection {
			body = append(body, line)
		} else {
			descLines = append(descLines, line)
		}
	}
	if inSection {
		flush()
	}

	return strings.TrimSpace(strings.Join(descLines, "\n")), sections, warnings
}
