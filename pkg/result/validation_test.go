package result

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type person struct {
	Name string
	Age  int
}

func Test_FromValidationsEmptyIsSuccess(t *testing.T) {
	v := person{Name: "Ana", Age: 30}

	r := FromValidations(nil, v)
	got, ok := r.Value()
	assert.True(t, r.Succeeded())
	assert.True(t, ok)
	assert.Equal(t, v, got)

	r = FromValidations([]Verdict{}, v)
	assert.True(t, r.Succeeded())
}

func Test_FromValidationsJoinsFailuresInOrder(t *testing.T) {
	verdicts := []Verdict{
		{Valid: true, Message: ""},
		{Valid: false, Message: "A"},
		{Valid: false, Message: "B"},
	}

	r := FromValidations(verdicts, 5)

	assert.True(t, r.HasError())
	assert.Equal(t, "A"+Delimiter+"B", r.Message())
	assert.Equal(t, 0, r.ValueOr(0))
}

func Test_FromValidationsAllPass(t *testing.T) {
	for _, n := range []int{1, 10, 1000} {
		verdicts := make([]Verdict, n)
		for i := range verdicts {
			verdicts[i] = Pass()
		}

		r := FromValidations(verdicts, "payload")
		got, ok := r.Value()
		assert.True(t, r.Succeeded(), "verdicts: %d", n)
		assert.True(t, ok)
		assert.Equal(t, "payload", got)
	}
}

func Test_FromValidationsScenario(t *testing.T) {
	verdicts := []Verdict{
		{Valid: false, Message: "Name is required"},
		{Valid: true, Message: ""},
		{Valid: false, Message: "Age must be positive"},
	}

	r := FromValidations[*person](verdicts, nil)

	assert.True(t, r.HasError())
	assert.Equal(t, "Name is required\nAge must be positive", r.Message())

	v, ok := r.Value()
	assert.False(t, ok)
	assert.Nil(t, v)
}

func Test_FromValidationsKeepsDuplicates(t *testing.T) {
	r := Validate(Invalid("same"), Invalid("same"))

	assert.Equal(t, "same\nsame", r.Message())
	assert.Len(t, r.Failures(), 2)
}

func Test_FromValidationsKeepsFields(t *testing.T) {
	p := person{Age: -1}
	r := FromValidations([]Verdict{
		Check(p.Name != "", "name", "name is required"),
		Check(p.Age > 0, "age", "age must be positive"),
	}, p)

	assert.Equal(t, []Violation{
		{Field: "name", Message: "name is required"},
		{Field: "age", Message: "age must be positive"},
	}, r.Failures())
}

func Test_FromValidationsBlankMessagesGetDefaults(t *testing.T) {
	r := Validate(
		Verdict{Valid: false, Field: "email"},
		Verdict{Valid: false, Message: "   "},
	)

	assert.True(t, r.HasError())
	assert.Equal(t, "email is invalid\nvalidation failed", r.Message())
	assert.NotEmpty(t, strings.TrimSpace(r.Message()))
}

func Test_FromValidationsDoesNotAliasInput(t *testing.T) {
	verdicts := []Verdict{Invalid("first")}
	r := Validate(verdicts...)

	verdicts[0].Message = "changed"

	assert.Equal(t, "first", r.Message())
	assert.Equal(t, "first", r.Failures()[0].Message)
}
