package templates

import (
	"strings"

	platformi18n "github.com/ecohome/ecohome/internal/platform/i18n"
	webi18n "github.com/ecohome/ecohome/internal/services/web/platform/i18n"
	"github.com/ecohome/ecohome/internal/services/web/routepath"
	"golang.org/x/text/language"
)

// LanguageOption represents a supported language option in the UI.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// LanguageOptions returns supported language options with active selection.
func LanguageOptions(page PageContext) []LanguageOption {
	active := normalizeTag(page.Lang)
	current := page.Path
	if strings.TrimSpace(current) == "" {
		current = routepath.Root
	}
	if page.RawQuery != "" {
		current += "?" + page.RawQuery
	}
	tags := platformi18n.SupportedTags()
	options := make([]LanguageOption, 0, len(tags))
	for _, tag := range tags {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  languageLabel(page.Loc, tag),
			URL:    routepath.WithQuery(current, webi18n.LangParam, tag.String()),
			Active: tag == active,
		})
	}
	return options
}

func languageLabel(loc Localizer, tag language.Tag) string {
	key := "core.lang." + strings.ToLower(strings.ReplaceAll(tag.String(), "-", "_"))
	return T(loc, key)
}

func normalizeTag(value string) language.Tag {
	if tag, ok := platformi18n.ParseTag(value); ok {
		return tag
	}
	return platformi18n.DefaultTag()
}
