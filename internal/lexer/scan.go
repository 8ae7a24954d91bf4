package lexer

import "unicode"

// classMask is a bitmask over the three basic-token candidate classes
// tracked during scanning.
type classMask uint8

const (
	classWord classMask = 1 << iota
	classNumber
	classOperator
)

func (m classMask) popcount() int {
	n := 0
	for _, b := range [...]classMask{classWord, classNumber, classOperator} {
		if m&b != 0 {
			n++
		}
	}
	return n
}

func (m classMask) only() classMask {
	for _, b := range [...]classMask{classWord, classNumber, classOperator} {
		if m == b {
			return b
		}
	}
	return 0
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isNumberStart(r rune) bool {
	return isDigit(r) || r == '.'
}

func isNumberContinue(r rune) bool {
	return isDigit(r) || r == '.' || r == 'x' || r == 'b'
}

var operatorChars = map[rune]bool{
	'.': true, '+': true, '-': true, '!': true, '?': true,
	'*': true, '/': true, '%': true, '=': true, '<': true, '>': true,
}

func isOperatorChar(r rune) bool { return operatorChars[r] }

// startMask classifies the first character of a basic token. Only '.' is a
// legitimate start-of-token overlap (Number and Operator both claim it);
// every other starting character belongs to at most one class.
func startMask(r rune) classMask {
	var m classMask
	if isIdentStart(r) {
		m |= classWord
	}
	if isNumberStart(r) {
		m |= classNumber
	}
	if isOperatorChar(r) {
		m |= classOperator
	}
	return m
}

// continueMask classifies a character for the purpose of extending an
// in-progress basic token (identifier-inner/number-inner widen the set
// accepted relative to startMask).
func continueMask(r rune) classMask {
	var m classMask
	if isIdentContinue(r) {
		m |= classWord
	}
	if isNumberContinue(r) {
		m |= classNumber
	}
	if isOperatorChar(r) {
		m |= classOperator
	}
	return m
}

// nonSymbolOperatorText maps operator text to Operator for every operator that
// is not keyword-spelled (`and`, `or`, `as` are resolved separately once a
// run has been classified as a Word).
var nonSymbolOperatorText = func() map[string]Operator {
	m := make(map[string]Operator)
	for op, info := range operatorTable {
		if !info.isKeyword {
			m[info.text] = op
		}
	}
	return m
}()
