// Package i18n defines the languages ecohome supports.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.MustParse("en-US"),
	language.MustParse("pt-BR"),
}

var matcher = language.NewMatcher(supported)

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return supported[0]
}

// ParseTag parses value and maps it onto a supported tag.
// The bool is false for blank or unparseable input.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	return MatchTags([]language.Tag{tag}), true
}

// MatchTags returns the best supported tag for the preferred list.
func MatchTags(preferred []language.Tag) language.Tag {
	_, index, confidence := matcher.Match(preferred...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[index]
}
