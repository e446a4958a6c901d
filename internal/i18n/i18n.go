// Package i18n holds the dialogue string tables and per-language keyword
// sets for French, English and Arabic.
package i18n

import "strings"

// Language is a supported dialogue language code.
type Language string

const (
	French  Language = "fr"
	English Language = "en"
	Arabic  Language = "ar"
)

// Parse maps a config/user language code to a Language, reporting whether
// the code is supported. Codes are matched case-insensitively.
func Parse(code string) (Language, bool) {
	switch l := Language(strings.ToLower(code)); l {
	case French, English, Arabic:
		return l, true
	}
	return French, false
}

// SpeechTag returns the BCP-47 tag handed to the speech capabilities.
func (l Language) SpeechTag() string {
	switch l {
	case English:
		return "en-US"
	case Arabic:
		return "ar-SA"
	default:
		return "fr-FR"
	}
}

// Name returns the French display name, used by the always-French
// language-selection confirmation.
func (l Language) Name() string {
	switch l {
	case English:
		return "anglais"
	case Arabic:
		return "arabe"
	default:
		return "français"
	}
}

var yesWords = map[Language][]string{
	French:  {"oui", "ouvre", "ouvrir", "camera", "cam", "caméra", "ok", "d'accord", "accord"},
	English: {"yes", "yeah", "yep", "sure", "ok", "okay", "open", "camera", "cam"},
	Arabic:  {"نعم", "أجل", "طيب", "حسناً", "موافق", "افتح", "كاميرا"},
}

var noWords = map[Language][]string{
	French:  {"non", "annuler", "stop", "passer", "pas"},
	English: {"no", "nope", "cancel", "skip", "pass"},
	Arabic:  {"لا", "إلغاء", "توقف", "تخطي"},
}

var closeWords = map[Language][]string{
	French:  {"fermer", "close", "arrete", "arreter", "ferme"},
	English: {"close", "shut", "stop", "end"},
	Arabic:  {"إغلاق", "أغلق", "توقف", "أوقف"},
}

var confirmWords = map[Language][]string{
	French:  {"confirmer", "confirme", "oui", "valider", "valide", "d'accord", "ok", "envoyer"},
	English: {"confirm", "yes", "validate", "ok", "okay", "send"},
	Arabic:  {"تأكيد", "نعم", "أرسل", "موافق"},
}

var cancelWords = map[Language][]string{
	French:  {"annuler", "annule", "non", "stop", "abandonner"},
	English: {"cancel", "no", "stop", "abort"},
	Arabic:  {"إلغاء", "لا", "توقف"},
}

// YesWords returns the affirmative keyword set for a language.
func YesWords(l Language) []string { return yesWords[l] }

// NoWords returns the negative keyword set for a language.
func NoWords(l Language) []string { return noWords[l] }

// CloseWords returns the close-the-camera keyword set for a language.
func CloseWords(l Language) []string { return closeWords[l] }

// ConfirmWords returns the transaction-confirm keyword set for a language.
func ConfirmWords(l Language) []string { return confirmWords[l] }

// CancelWords returns the transaction-cancel keyword set for a language.
func CancelWords(l Language) []string { return cancelWords[l] }

// languageNames maps normalized spoken names to languages. Spellings with
// and without diacritics both appear because recognizers differ on accents.
var languageNames = []struct {
	keyword string
	lang    Language
}{
	{"francais", French},
	{"français", French},
	{"french", French},
	{"anglais", English},
	{"english", English},
	{"arabe", Arabic},
	{"arabic", Arabic},
}

// MatchLanguageName scans normalized text for a spoken language name.
func MatchLanguageName(normalized string) (Language, bool) {
	for _, entry := range languageNames {
		if strings.Contains(normalized, entry.keyword) {
			return entry.lang, true
		}
	}
	return French, false
}
