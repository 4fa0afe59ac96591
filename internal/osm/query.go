// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package osm

import (
	"fmt"
	"strings"
)

// composeTagQuery builds an Overpass QL query selecting both node
// (point) and way (area) elements carrying the tag inside the area
// filter. Ways are asked to report a representative center coordinate,
// and the element count is capped server-side.
func composeTagQuery(tag Tag, filter AreaFilter, cap, timeoutSeconds int) string {
	selector := tagSelector(tag)
	return fmt.Sprintf(
		"[out:json][timeout:%d];(node%s%s;way%s%s;);out center %d;",
		timeoutSeconds, selector, filter.clause, selector, filter.clause, cap,
	)
}

// composeFallbackQuery builds the name-substring query used when tag
// queries yield too few results. The match is case-insensitive and
// scoped to the same area filter.
func composeFallbackQuery(nameText string, filter AreaFilter, cap, timeoutSeconds int) string {
	selector := fmt.Sprintf(`["name"~"%s",i]`, escapeRegex(nameText))
	return fmt.Sprintf(
		"[out:json][timeout:%d];(node%s%s;way%s%s;);out center %d;",
		timeoutSeconds, selector, filter.clause, selector, filter.clause, cap,
	)
}

// tagSelector renders a Tag as an Overpass element filter:
// ["key"="value"] for pairs, ["key"] for bare keys.
func tagSelector(tag Tag) string {
	if key, value, ok := strings.Cut(string(tag), "="); ok {
		return fmt.Sprintf("[%q=%q]", key, value)
	}
	return fmt.Sprintf("[%q]", string(tag))
}

// escapeRegex neutralizes characters that are special in Overpass's
// POSIX regex syntax so free text matches literally.
func escapeRegex(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '.', '*', '+', '?', '(', ')', '[', ']', '{', '}', '^', '$', '|', '"':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
