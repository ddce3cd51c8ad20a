package reflect

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testStruct struct {
	Name      string
	Limit     int
	Array     []string
	Map       map[string]string
	SubStruct *subStruct
}

type subStruct struct {
	SubMap map[string]string
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty(json.RawMessage(nil)))
	assert.False(t, IsEmpty(json.RawMessage("null")))

	assert.True(t, IsEmpty(testStruct{}))
	assert.True(t, IsEmpty(testStruct{Array: make([]string, 0), Map: make(map[string]string), SubStruct: &subStruct{}}))
	assert.False(t, IsEmpty(testStruct{Name: "redis"}))
	assert.False(t, IsEmpty(testStruct{Limit: 1}))
	assert.False(t, IsEmpty(testStruct{Array: []string{"a"}}))
	assert.False(t, IsEmpty(testStruct{SubStruct: &subStruct{SubMap: map[string]string{"a": "b"}}}))
}
