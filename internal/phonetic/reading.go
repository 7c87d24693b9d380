package phonetic

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Reader produces the kana reading of Japanese text
type Reader interface {
	Reading(text string) string
}

// KagomeReader reads kanji through the kagome morphological analyzer with
// the IPA dictionary. The dictionary is loaded on first use.
type KagomeReader struct {
	once sync.Once
	tok  *tokenizer.Tokenizer
	err  error
}

// NewKagomeReader creates a reader; loading is deferred until Reading
func NewKagomeReader() *KagomeReader {
	return &KagomeReader{}
}

func (k *KagomeReader) load() {
	k.once.Do(func() {
		t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
		if err != nil {
			k.err = fmt.Errorf("loading kagome tokenizer: %w", err)
			return
		}
		k.tok = t
	})
}

// Err reports a dictionary load failure, if any
func (k *KagomeReader) Err() error {
	k.load()
	return k.err
}

// Reading returns the hiragana reading of text. Text without kanji is
// returned unchanged (after kana folding); tokens the dictionary does not
// know keep their surface form.
func (k *KagomeReader) Reading(text string) string {
	if !HasHan(text) {
		return KatakanaToHiragana(text)
	}
	k.load()
	if k.tok == nil {
		return ""
	}
	var b strings.Builder
	for _, tok := range k.tok.Tokenize(text) {
		reading, ok := tok.Reading()
		if !ok || reading == "" || reading == "*" {
			b.WriteString(tok.Surface)
			continue
		}
		b.WriteString(reading)
	}
	return KatakanaToHiragana(b.String())
}
