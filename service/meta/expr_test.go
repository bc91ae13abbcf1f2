package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnvExpr(t *testing.T) {
	t.Setenv("FOO", "bar")
	t.Setenv("A", "1")
	t.Setenv("B", "2")
	t.Setenv("X", "x")

	var testCases = []struct {
		description string
		input       string
		expect      string
	}{
		{description: "no expressions", input: "just a plain string", expect: "just a plain string"},
		{description: "single expression", input: "value is ${env.FOO}", expect: "value is bar"},
		{description: "multiple expressions", input: "${env.A}-${env.B}-${env.A}", expect: "1-2-1"},
		{description: "unset variable becomes empty", input: "unset=${env.FLOWHISTORY_NOTSET}-end", expect: "unset=-end"},
		{description: "missing closing brace", input: "start ${env.X and ${env.FLOWHISTORY_NOTSET} end", expect: "start ${env.X and  end"},
		{description: "prefix only", input: "oops ${env.} done", expect: "oops  done"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, expandEnvExpr(testCase.input), testCase.description)
	}
}
