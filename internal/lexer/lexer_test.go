package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func classesOf(t *testing.T, source string) []Class {
	toks, err := New(source).Tokenize()
	assert.NoError(t, err)
	classes := make([]Class, len(toks))
	for i, tok := range toks {
		classes[i] = tok.Class
	}
	return classes
}

func Test_Tokenize_classSequence(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []Class
	}{
		{name: "let with int literal", input: "let x = 42", expect: []Class{
			ClassLet, ClassIdent, ClassAssign, ClassInt, ClassEOF,
		}},
		{name: "print string literal", input: `print "hi"`, expect: []Class{
			ClassPrint, ClassString, ClassEOF,
		}},
		{name: "set literal", input: "{1, 2, 3}", expect: []Class{
			ClassLBrace, ClassInt, ClassComma, ClassInt, ClassComma, ClassInt, ClassRBrace, ClassEOF,
		}},
		{name: "lambda", input: `\x -> x`, expect: []Class{
			ClassBackslash, ClassIdent, ClassArrow, ClassIdent, ClassEOF,
		}},
		{name: "loadFrom path", input: `loadFrom path "g.dot"`, expect: []Class{
			ClassLoadFrom, ClassPath, ClassString, ClassEOF,
		}},
		{name: "operators", input: "a && b || c ++ d == e", expect: []Class{
			ClassIdent, ClassAnd, ClassIdent, ClassOr, ClassIdent, ClassConcat,
			ClassIdent, ClassEqual, ClassIdent, ClassEOF,
		}},
		{name: "statement separator slash", input: "let x = 1 / print x", expect: []Class{
			ClassLet, ClassIdent, ClassAssign, ClassInt, ClassSlash, ClassPrint, ClassIdent, ClassEOF,
		}},
		{name: "line comment is skipped", input: "let x = 1 // a comment\nprint x", expect: []Class{
			ClassLet, ClassIdent, ClassAssign, ClassInt, ClassPrint, ClassIdent, ClassEOF,
		}},
		{name: "map on", input: "map f on s", expect: []Class{
			ClassMap, ClassIdent, ClassOn, ClassIdent, ClassEOF,
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, classesOf(t, tc.input))
		})
	}
}

func Test_Tokenize_stringEscapes(t *testing.T) {
	toks, err := New(`"a\nb\"c"`).Tokenize()
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("a\nb\"c", toks[0].Text)
}

func Test_Tokenize_unterminatedStringErrors(t *testing.T) {
	_, err := New(`"unterminated`).Tokenize()
	assert.Error(t, err)
}

func Test_Tokenize_unexpectedCharacterErrors(t *testing.T) {
	_, err := New("@").Tokenize()
	assert.Error(t, err)
}
