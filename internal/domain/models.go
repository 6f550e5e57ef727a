// Package domain contains the core domain types for the voice translator.
package domain

const (
	// TargetLangChinese is the only target language the capture flow requests.
	TargetLangChinese = "ZH"

	// RecognitionLang is the fixed speech recognition language.
	RecognitionLang = "en-US"

	// ConversationKey is the storage key holding the whole conversation log.
	ConversationKey = "conversation"
)

// TranslateRequest is the body accepted by the proxy's /translate endpoint.
type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

// Translation is a single entry of a provider translation result.
type Translation struct {
	DetectedSourceLanguage string `json:"detected_source_language,omitempty"`
	Text                   string `json:"text"`
}

// TranslationResult is the provider response shape relayed by the proxy.
// The proxy forwards the raw body, this type is only used to check it and
// by clients reading it.
type TranslationResult struct {
	Translations []Translation `json:"translations"`
}

// Turn is one captured utterance and its optional translation.
// An empty Computer means the utterance is displayed as spoken.
type Turn struct {
	User     string `json:"user"`
	Computer string `json:"computer,omitempty"`
}

// Translated reports whether the turn carries a translation.
func (t Turn) Translated() bool {
	return t.Computer != ""
}

// Log is the ordered conversation history, oldest first.
type Log []Turn
