package prefs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/yllada/gpg-manager/common"
)

// SystemDefaultLanguage is the label of the "" locale code.
const SystemDefaultLanguage = "System Default"

// CatalogLocales lists the translation catalogs installed in Dir. A catalog
// named gpg-manager_<code>.po provides locale <code>.
type CatalogLocales struct {
	Dir string
}

// NewCatalogLocales lists catalogs below appDir/locales.
func NewCatalogLocales(appDir string) CatalogLocales {
	return CatalogLocales{Dir: filepath.Join(appDir, common.LocalesDirName)}
}

// Languages implements common.LocaleLister. The result always contains the
// "" entry; an unreadable directory yields only that entry.
func (c CatalogLocales) Languages() map[string]string {
	langs := map[string]string{"": SystemDefaultLanguage}

	pattern := filepath.Join(c.Dir, common.LocaleFilePrefix+"*"+common.LocaleFileExt)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		common.LogWarn("Failed to list locales in %s: %v", c.Dir, err)
		return langs
	}
	for _, m := range matches {
		if info, err := os.Stat(m); err != nil || info.IsDir() {
			continue
		}
		code := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), common.LocaleFilePrefix), common.LocaleFileExt)
		if code == "" {
			continue
		}
		langs[code] = LanguageName(code)
	}
	return langs
}

// LanguageName names a locale in its own language followed by the code,
// for example "Deutsch (de)". Codes that do not parse are returned as is.
func LanguageName(code string) string {
	if code == "" {
		return SystemDefaultLanguage
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return code
	}
	name := display.Self.Name(tag)
	if name == "" {
		return code
	}
	return name + " (" + code + ")"
}

// SortedCodes returns the codes of langs with "" first and the rest in
// lexical order.
func SortedCodes(langs map[string]string) []string {
	codes := make([]string, 0, len(langs))
	for code := range langs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
