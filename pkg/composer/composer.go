// Package composer implements a reference pre-conversion keystroke buffer: a
// romaji-to-kana accumulator satisfying converter.Composer. It is the
// reference Composer collaborator a host process wires into a
// converter.SessionConverter; package converter never imports this package
// (it depends only on the Composer interface in pkg/converter/interfaces.go).
package composer

import "strings"

// romajiTable maps common romaji syllables to their hiragana rendering,
// applied greedily (longest match first) as InsertCharacterPreedit receives
// characters one at a time. This is a small illustrative subset, not a
// complete romaji transliteration table.
var romajiTable = map[string]string{
	"kya": "きゃ", "kyu": "きゅ", "kyo": "きょ",
	"sha": "しゃ", "shu": "しゅ", "sho": "しょ",
	"cha": "ちゃ", "chu": "ちゅ", "cho": "ちょ",
	"nya": "にゃ", "nyu": "にゅ", "nyo": "にょ",
	"ka": "か", "ki": "き", "ku": "く", "ke": "け", "ko": "こ",
	"sa": "さ", "shi": "し", "su": "す", "se": "せ", "so": "そ",
	"ta": "た", "chi": "ち", "tsu": "つ", "te": "て", "to": "と",
	"na": "な", "ni": "に", "nu": "ぬ", "ne": "ね", "no": "の",
	"ha": "は", "hi": "ひ", "fu": "ふ", "he": "へ", "ho": "ほ",
	"ma": "ま", "mi": "み", "mu": "む", "me": "め", "mo": "も",
	"ya": "や", "yu": "ゆ", "yo": "よ",
	"ra": "ら", "ri": "り", "ru": "る", "re": "れ", "ro": "ろ",
	"wa": "わ", "wo": "を", "nn": "ん", "n": "ん",
	"ga": "が", "gi": "ぎ", "gu": "ぐ", "ge": "げ", "go": "ご",
	"za": "ざ", "ji": "じ", "zu": "ず", "ze": "ぜ", "zo": "ぞ",
	"da": "だ", "di": "ぢ", "du": "づ", "de": "で", "do": "ど",
	"ba": "ば", "bi": "び", "bu": "ぶ", "be": "べ", "bo": "ぼ",
	"pa": "ぱ", "pi": "ぴ", "pu": "ぷ", "pe": "ぺ", "po": "ぽ",
	"a": "あ", "i": "い", "u": "う", "e": "え", "o": "お",
}

// Composer accumulates raw romaji keystrokes and exposes both the raw
// (unconverted) buffer and its best-effort kana rendering.
type Composer struct {
	raw        []rune // unconverted keystrokes, as typed
	sourceText string
}

// New returns an empty Composer.
func New() *Composer { return &Composer{} }

// kana renders the current raw buffer into hiragana, greedily matching the
// longest romaji syllable at each position and passing through anything
// unmatched (digits, punctuation, already-kana input) verbatim.
func (c *Composer) kana() string {
	s := string(c.raw)
	var b strings.Builder
	for i := 0; i < len(s); {
		matched := false
		for l := 3; l >= 1; l-- {
			if i+l > len(s) {
				continue
			}
			if kana, ok := romajiTable[s[i:i+l]]; ok {
				b.WriteString(kana)
				i += l
				matched = true
				break
			}
		}
		if !matched {
			r := []rune(s[i:])[0]
			b.WriteRune(r)
			i += len(string(r))
		}
	}
	return b.String()
}

// GetQueryForConversion returns the kana reading to hand the engine for a
// full conversion.
func (c *Composer) GetQueryForConversion() string { return c.kana() }

// GetQueryForPrediction returns the kana reading to hand the engine for
// suggestion/prediction; identical to the conversion query for this
// reference Composer, which has no distinct partial-word heuristics.
func (c *Composer) GetQueryForPrediction() string { return c.kana() }

// GetStringForSubmission returns the kana rendering to commit verbatim.
func (c *Composer) GetStringForSubmission() string { return c.kana() }

// InsertCharacterPreedit appends one keystroke to the raw buffer.
func (c *Composer) InsertCharacterPreedit(ch string) {
	c.raw = append(c.raw, []rune(ch)...)
}

// DeleteAt removes the rune at position pos of the kana-rendered reading,
// mapped back onto the raw buffer on a best-effort basis: since romaji
// syllables don't align 1:1 with raw keystrokes, this reference Composer
// simply removes from the raw buffer at the same position, which is exact
// for unconverted (ASCII passthrough) input and approximate once multi-rune
// romaji syllables are involved.
func (c *Composer) DeleteAt(pos int) {
	if pos < 0 || pos >= len(c.raw) {
		return
	}
	c.raw = append(c.raw[:pos], c.raw[pos+1:]...)
}

// GetLength returns the number of runes in the kana-rendered reading.
func (c *Composer) GetLength() int { return len([]rune(c.kana())) }

// Reset clears the buffer and recorded source text.
func (c *Composer) Reset() {
	c.raw = nil
	c.sourceText = ""
}

// SetSourceText records the surface text a reverse conversion recovered this
// buffer from.
func (c *Composer) SetSourceText(text string) { c.sourceText = text }

// SourceText returns the recorded reverse-conversion source text, if any.
func (c *Composer) SourceText() string { return c.sourceText }

// Empty reports whether the buffer holds no keystrokes.
func (c *Composer) Empty() bool { return len(c.raw) == 0 }
