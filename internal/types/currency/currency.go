package currency

import "fmt"

type Amount struct {
	Code   string  `json:"code"   dynamodbav:"Code"`
	Number float64 `json:"number" dynamodbav:"Number"`
}

func (a Amount) String() string {
	return fmt.Sprintf("$%.2f %s", a.Number, a.Code)
}
