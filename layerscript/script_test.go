package layerscript_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/layercore/layerscript"
)

func TestWeightScriptEvalsSimpleExpression(t *testing.T) {
	t.Parallel()

	s, err := layerscript.Compile("2 + 3")
	assert.Nil(t, err)

	w, err := s.Eval(layerscript.EdgeContext{Tail: "a", Head: "b"})
	assert.Nil(t, err)
	assert.Equal(t, 5, w)
}

func TestWeightScriptCanReadAttrs(t *testing.T) {
	t.Parallel()

	s, err := layerscript.Compile("attrs.weight * 2")
	assert.Nil(t, err)

	w, err := s.Eval(layerscript.EdgeContext{
		Tail:  "a",
		Head:  "b",
		Attrs: map[string]interface{}{"weight": 4},
	})
	assert.Nil(t, err)
	assert.Equal(t, 8, w)
}

func TestWeightScriptRejectsNonPositiveResult(t *testing.T) {
	t.Parallel()

	s, err := layerscript.Compile("0")
	assert.Nil(t, err)

	_, err = s.Eval(layerscript.EdgeContext{Tail: "a", Head: "b"})
	assert.NotNil(t, err)
}

func TestWeightScriptSurfacesRuntimeErrors(t *testing.T) {
	t.Parallel()

	s, err := layerscript.Compile("undefinedFunction()")
	assert.Nil(t, err)

	_, err = s.Eval(layerscript.EdgeContext{Tail: "a", Head: "b"})
	assert.NotNil(t, err)
}

func TestCompileRejectsInvalidSyntax(t *testing.T) {
	t.Parallel()

	_, err := layerscript.Compile("function (")
	assert.NotNil(t, err)
}
