package settings

import "sort"

// Persisted settings keys. Keys are stable across versions.
const (
	KeyRememberPassword  = "general/rememberPassword"
	KeyConfirmImportKeys = "general/confirmImportKeys"
	KeyKeySave           = "keys/keySave"
	KeyLanguage          = "int/lang"

	KeyParseMime      = "mime/parsemime"
	KeyParseQP        = "mime/parseQP"
	KeyOpenAttachment = "mime/openAttachment"

	KeyIconSize   = "toolbar/iconsize"
	KeyIconStyle  = "toolbar/iconstyle"
	KeyWindowSave = "window/windowSave"

	KeyDefaultKeyServer = "keyserver/defaultKeyServer"
	KeyKeyServerList    = "keyserver/keyServerList"

	KeySteganography = "advanced/steganography"

	KeyKeyDBPath = "gpgpaths/keydbpath"
)

var schema = map[string]Kind{
	KeyRememberPassword:  KindBool,
	KeyConfirmImportKeys: KindBool,
	KeyKeySave:           KindBool,
	KeyLanguage:          KindString,
	KeyParseMime:         KindBool,
	KeyParseQP:           KindBool,
	KeyOpenAttachment:    KindBool,
	KeyIconSize:          KindSize,
	KeyIconStyle:         KindInt,
	KeyWindowSave:        KindBool,
	KeyDefaultKeyServer:  KindString,
	KeyKeyServerList:     KindStringList,
	KeySteganography:     KindBool,
	KeyKeyDBPath:         KindString,
}

// KindOf returns the declared kind of a known key.
func KindOf(key string) (Kind, bool) {
	kind, ok := schema[key]
	return kind, ok
}

// KnownKeys returns every declared key in lexical order.
func KnownKeys() []string {
	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
