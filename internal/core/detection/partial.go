package detection

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minPartialLength = 4
	minLengthRatio   = 0.70
)

// IsValidPartialMatch 判斷兩個標籤的部分比對是否可信。
// 較短字串以完整單字出現在較長字串中即可接受，否則長度比例需達 0.70。
// 任一字串少於 4 個字元時一律拒絕。
func IsValidPartialMatch(a, b string) bool {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la < minPartialLength || lb < minPartialLength {
		return false
	}

	shorter, longer := a, b
	ls, ll := la, lb
	if la > lb {
		shorter, longer = b, a
		ls, ll = lb, la
	}

	if containsWord(longer, shorter) {
		return true
	}

	return float64(ls)/float64(ll) >= minLengthRatio
}

// containsWord 檢查 word 是否以完整單字出現在 s 中
func containsWord(s, word string) bool {
	if word == "" {
		return false
	}
	for offset := 0; offset <= len(s)-len(word); {
		i := strings.Index(s[offset:], word)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(word)
		if wordBoundary(s, start, word, true) && wordBoundary(s, end, word, false) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		offset = start + size
	}
	return false
}

// wordBoundary 與正規表示式 \b 相同的判斷：邊界兩側恰好一側為單字字元
func wordBoundary(s string, pos int, word string, leading bool) bool {
	var inner rune
	if leading {
		inner, _ = utf8.DecodeRuneInString(word)
	} else {
		inner, _ = utf8.DecodeLastRuneInString(word)
	}

	outerIsWord := false
	if leading && pos > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:pos])
		outerIsWord = isWordRune(r)
	}
	if !leading && pos < len(s) {
		r, _ := utf8.DecodeRuneInString(s[pos:])
		outerIsWord = isWordRune(r)
	}
	return isWordRune(inner) != outerIsWord
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
