package result

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID      string          `dynamodbav:"Id"`
	Outcome Result[payload] `dynamodbav:"Outcome"`
}

func Test_DynamoDBRoundTrip(t *testing.T) {
	p := payload{ID: "trx-1", Tags: []string{"food"}, Total: 30000}

	cases := []Result[payload]{
		Ok(p),
		Fail[payload]("no bank matched"),
		FromError[payload](errors.New("throttled")),
		FromValidations([]Verdict{InvalidField("account", "account is required"), Invalid("B")}, p),
	}

	for _, c := range cases {
		av, err := attributevalue.MarshalMap(item{ID: "1", Outcome: c})
		require.NoError(t, err)

		var decoded item
		require.NoError(t, attributevalue.UnmarshalMap(av, &decoded))

		assert.Equal(t, "1", decoded.ID)
		assert.True(t, Equal(c, decoded.Outcome), "round trip of %v gave %v", c, decoded.Outcome)
	}
}

func Test_DynamoDBShape(t *testing.T) {
	av, err := Fail[int]("nope").MarshalDynamoDBAttributeValue()
	require.NoError(t, err)

	m, ok := av.(*types.AttributeValueMemberM)
	require.True(t, ok)
	assert.Equal(t, &types.AttributeValueMemberBOOL{Value: false}, m.Value["succeeded"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "nope"}, m.Value["errorMessage"])
	assert.NotContains(t, m.Value, "value")

	av, err = Success().MarshalDynamoDBAttributeValue()
	require.NoError(t, err)
	m = av.(*types.AttributeValueMemberM)
	assert.Len(t, m.Value, 1)
}

func Test_DynamoDBRejectsMalformed(t *testing.T) {
	cases := map[string]types.AttributeValue{
		"not a map": &types.AttributeValueMemberS{Value: "ok"},
		"missing succeeded": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"errorMessage": &types.AttributeValueMemberS{Value: "x"},
		}},
		"succeeded with message": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"succeeded":    &types.AttributeValueMemberBOOL{Value: true},
			"errorMessage": &types.AttributeValueMemberS{Value: "x"},
		}},
		"failed without message": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"succeeded": &types.AttributeValueMemberBOOL{Value: false},
		}},
		"failed with value": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"succeeded":    &types.AttributeValueMemberBOOL{Value: false},
			"errorMessage": &types.AttributeValueMemberS{Value: "x"},
			"value":        &types.AttributeValueMemberN{Value: "1"},
		}},
		"failures not joined": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"succeeded":    &types.AttributeValueMemberBOOL{Value: false},
			"errorMessage": &types.AttributeValueMemberS{Value: "x"},
			"validationFailures": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
					"message": &types.AttributeValueMemberS{Value: "y"},
				}},
			}},
		}},
		"succeeded of wrong type": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"succeeded": &types.AttributeValueMemberS{Value: "true"},
		}},
	}

	for name, av := range cases {
		t.Run(name, func(t *testing.T) {
			var r Result[int]
			err := r.UnmarshalDynamoDBAttributeValue(av)

			require.Error(t, err)
			assert.True(t, ErrMalformed.Has(err), "unexpected error: %v", err)
		})
	}
}

func Test_DynamoDBNullValueIsZero(t *testing.T) {
	av := &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
		"succeeded": &types.AttributeValueMemberBOOL{Value: true},
		"value":     &types.AttributeValueMemberNULL{Value: true},
	}}

	var r Result[*payload]
	require.NoError(t, r.UnmarshalDynamoDBAttributeValue(av))

	v, ok := r.Value()
	assert.True(t, ok)
	assert.Nil(t, v)
}
