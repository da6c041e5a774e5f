package catalog

import (
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	t.Parallel()

	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range []string{BaseLocale, "pt-BR"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
	}
	if got := len(bundle.NamespaceMessages(BaseLocale, "onboarding")); got == 0 {
		t.Fatal("expected en-US onboarding namespace messages")
	}
}

func TestEmbeddedLocalesCoverBaseKeys(t *testing.T) {
	t.Parallel()

	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range bundle.Locales() {
		if missing := bundle.MissingKeys(locale); len(missing) > 0 {
			t.Fatalf("locale %s is missing keys: %v", locale, missing)
		}
	}
}

func TestLoadFromFSRejectsCoreKeyOutsideCoreNamespace(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFS(fstest.MapFS{
		"locales/en-US/web.yaml": {Data: []byte("locale: en-US\nnamespace: web\nmessages:\n  core.bad: nope\n")},
		"locales/en-US/core.yaml": {Data: []byte("locale: en-US\nnamespace: core\nmessages:\n  core.good: ok\n")},
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFS(fstest.MapFS{
		"locales/en-US/core.yaml": {Data: []byte("locale: en-US\nnamespace: core\nmessages:\n  a.key: a\n")},
		"locales/en-US/web.yaml":  {Data: []byte("locale: en-US\nnamespace: web\nmessages:\n  a.key: b\n")},
	})
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFS(fstest.MapFS{
		"locales/en-US/core.yaml": {Data: []byte("locale: pt-BR\nnamespace: core\nmessages:\n  a.key: a\n")},
	})
	if err == nil {
		t.Fatal("expected locale mismatch error")
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	t.Parallel()

	bundle, err := LoadFromFS(fstest.MapFS{
		"locales/en-US/core.yaml": {Data: []byte("locale: en-US\nnamespace: core\nmessages:\n  core.hello: Hello\n  core.bye: Bye\n")},
		"locales/pt-BR/core.yaml": {Data: []byte("locale: pt-BR\nnamespace: core\nmessages:\n  core.hello: Olá\n")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, _ := bundle.Message("pt-BR", "core.hello"); got != "Olá" {
		t.Fatalf("Message(pt-BR, hello) = %q", got)
	}
	if got, ok := bundle.Message("pt-BR", "core.bye"); !ok || got != "Bye" {
		t.Fatalf("Message(pt-BR, bye) = %q, %t", got, ok)
	}
	if missing := bundle.MissingKeys("pt-BR"); len(missing) != 1 || missing[0] != "core.bye" {
		t.Fatalf("MissingKeys(pt-BR) = %v", missing)
	}
}

func TestDefaultRegistersPrinterMessages(t *testing.T) {
	t.Parallel()

	Default()
	printer := message.NewPrinter(language.MustParse("pt-BR"))
	if got := printer.Sprintf("onboarding.action.next"); got != "Próximo" {
		t.Fatalf("pt-BR next = %q, want %q", got, "Próximo")
	}
	printer = message.NewPrinter(language.MustParse("en-US"))
	if got := printer.Sprintf("onboarding.progress_percent", 75); got != "75% complete" {
		t.Fatalf("en-US progress = %q", got)
	}
}
