package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerValue_IsEmpty(t *testing.T) {
	assert.True(t, AnswerValue{}.IsEmpty())
	assert.True(t, MapValue(map[string]string{"adl": ""}).IsEmpty(), "all-blank entries count as empty")

	assert.False(t, TextValue("x").IsEmpty())
	assert.False(t, OptionValue("0").IsEmpty())
	assert.False(t, NumberValue(0).IsEmpty(), "an entered zero is still an answer")
	assert.False(t, BoolValue(false).IsEmpty(), "a touched checkbox is still an answer")
	assert.False(t, MapValue(map[string]string{"adl": "1"}).IsEmpty())
}

func TestAssessmentAnswers_Clone(t *testing.T) {
	original := AssessmentAnswers{
		"num":  NumberValue(2),
		"bool": BoolValue(true),
		"map":  MapValue(map[string]string{"adl": "1"}),
	}

	clone := original.Clone()
	*clone["num"].Number = 9
	*clone["bool"].Checked = false
	clone["map"].Entries["adl"] = "5"

	assert.Equal(t, float64(2), *original.Get("num").Number)
	assert.True(t, original.Get("bool").IsSelected())
	assert.Equal(t, "1", original.Get("map").Entries["adl"])
}

func TestFieldSet(t *testing.T) {
	s := NewFieldSet("a", "b")
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))

	s.Add("c")
	assert.True(t, s.Contains("c"))
	assert.ElementsMatch(t, []string{"a", "b", "c"}, s.Keys())

	assert.True(t, s.Equal(NewFieldSet("c", "b", "a")))
	assert.False(t, s.Equal(NewFieldSet("a", "b")))
}
