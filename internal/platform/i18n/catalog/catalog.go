// Package catalog loads localized message catalogs and registers them with
// golang.org/x/text/message.
//
// Catalogs live under locales/<locale>/<namespace>.yaml. Keys are unique per
// locale across namespaces; keys starting with "core." belong to the core
// namespace.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

type localeCatalog struct {
	namespaces map[string]map[string]string
	messages   map[string]string
}

// Bundle contains all locale catalogs.
type Bundle struct {
	locales map[string]*localeCatalog
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadAndRegisterEmbedded()

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads catalog files embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads catalog files from the provided filesystem.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]*localeCatalog{}}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := bundle.addFile(p, file); err != nil {
			return nil, err
		}
	}

	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return bundle, nil
}

func (b *Bundle) addFile(p string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(p))
	namespaceFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))

	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", p)
	}
	if locale != localeFromPath {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, locale, localeFromPath)
	}
	namespace := strings.TrimSpace(file.Namespace)
	if namespace == "" {
		return fmt.Errorf("catalog %s: namespace is required", p)
	}
	if namespace != namespaceFromPath {
		return fmt.Errorf("catalog %s: namespace %q must match filename namespace %q", p, namespace, namespaceFromPath)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages are required", p)
	}

	catalog, ok := b.locales[locale]
	if !ok {
		catalog = &localeCatalog{namespaces: map[string]map[string]string{}, messages: map[string]string{}}
		b.locales[locale] = catalog
	}
	if _, exists := catalog.namespaces[namespace]; exists {
		return fmt.Errorf("catalog %s: namespace %q already defined for locale %q", p, namespace, locale)
	}

	namespaceMessages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		if strings.HasPrefix(key, "core.") && namespace != "core" {
			return fmt.Errorf("catalog %s: key %q must be defined in core namespace", p, key)
		}
		if _, exists := catalog.messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, locale)
		}
		catalog.messages[key] = value
		namespaceMessages[key] = value
	}
	catalog.namespaces[namespace] = namespaceMessages
	return nil
}

// Register registers all catalog messages with x/text/message. Each locale
// is also registered under its base language so "pt" resolves to "pt-BR".
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, confidence := tag.Base(); confidence != language.No {
			if baseTag, err := language.Parse(base.String()); err == nil && baseTag != tag {
				tags = append(tags, baseTag)
			}
		}
		messages := b.locales[locale].messages
		for _, key := range sortedKeys(messages) {
			for _, registerTag := range tags {
				if err := message.SetString(registerTag, key, messages[key]); err != nil {
					return fmt.Errorf("register %s %q: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns all available locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Message returns one message value with base-locale fallback.
func (b *Bundle) Message(locale string, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	if catalog, ok := b.locales[strings.TrimSpace(locale)]; ok {
		if value, exists := catalog.messages[key]; exists {
			return value, true
		}
	}
	if catalog, ok := b.locales[BaseLocale]; ok {
		value, exists := catalog.messages[key]
		return value, exists
	}
	return "", false
}

// NamespaceMessages returns a copy of one namespace's messages for a locale.
func (b *Bundle) NamespaceMessages(locale string, namespace string) map[string]string {
	out := map[string]string{}
	if b == nil {
		return out
	}
	catalog, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		return out
	}
	for key, value := range catalog.namespaces[strings.TrimSpace(namespace)] {
		out[key] = value
	}
	return out
}

// MissingKeys lists base-locale keys that locale does not define.
func (b *Bundle) MissingKeys(locale string) []string {
	if b == nil {
		return nil
	}
	base, ok := b.locales[BaseLocale]
	if !ok {
		return nil
	}
	target := b.locales[strings.TrimSpace(locale)]
	var missing []string
	for _, key := range sortedKeys(base.messages) {
		if target == nil {
			missing = append(missing, key)
			continue
		}
		if _, ok := target.messages[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func sortedKeys(messages map[string]string) []string {
	keys := make([]string, 0, len(messages))
	for key := range messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func mustLoadAndRegisterEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}
