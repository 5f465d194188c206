package result

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	succeededAttr  = "succeeded"
	messageAttr    = "errorMessage"
	valueAttr      = "value"
	violationsAttr = "validationFailures"
)

// MarshalDynamoDBAttributeValue stores the result as a map attribute with the
// same fields as its JSON form. The cause is not stored.
func (r Result[T]) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	m := map[string]types.AttributeValue{
		succeededAttr: &types.AttributeValueMemberBOOL{Value: !r.failed},
	}

	if r.failed {
		m[messageAttr] = &types.AttributeValueMemberS{Value: r.message}

		if len(r.violations) > 0 {
			av, err := attributevalue.Marshal(r.violations)
			if err != nil {
				return nil, err
			}
			m[violationsAttr] = av
		}
	} else if hasPayload(r.value) {
		av, err := attributevalue.Marshal(r.value)
		if err != nil {
			return nil, err
		}
		m[valueAttr] = av
	}

	return &types.AttributeValueMemberM{Value: m}, nil
}

// UnmarshalDynamoDBAttributeValue applies the same validation as
// UnmarshalJSON.
func (r *Result[T]) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	m, ok := av.(*types.AttributeValueMemberM)
	if !ok {
		return ErrMalformed.New("expected a map attribute, got %T", av)
	}

	var rec record

	switch s := m.Value[succeededAttr].(type) {
	case nil:
	case *types.AttributeValueMemberBOOL:
		succeeded := s.Value
		rec.succeeded = &succeeded
	default:
		return ErrMalformed.New("succeeded is %T, not a bool", s)
	}

	switch msg := m.Value[messageAttr].(type) {
	case nil, *types.AttributeValueMemberNULL:
	case *types.AttributeValueMemberS:
		text := msg.Value
		rec.message = &text
	default:
		return ErrMalformed.New("errorMessage is %T, not a string", msg)
	}

	if fs, ok := m.Value[violationsAttr]; ok {
		if err := attributevalue.Unmarshal(fs, &rec.violations); err != nil {
			return ErrMalformed.Wrap(err)
		}
	}

	valueAV, present := m.Value[valueAttr]
	_, isNull := valueAV.(*types.AttributeValueMemberNULL)
	rec.hasValue = present && !isNull

	decoded, err := assemble(rec, func(v *T) error {
		return attributevalue.Unmarshal(valueAV, v)
	})
	if err != nil {
		return err
	}

	*r = decoded
	return nil
}
