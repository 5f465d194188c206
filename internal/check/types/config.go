package types

type Config struct {
	Credentials
	Timezone          string `json:"timezone"`
	Region            string `json:"region"`
	OutcomesTable     string `json:"outcomes_table"`
	NotificationLimit int    `json:"notification_limit"`
}

type Credentials struct {
	Twilio
}

type Twilio struct {
	AccountSid string `json:"twilio-account-sid"`
	AuthToken  string `json:"twilio-auth-token"`
	FromNumber string `json:"twilio-from-number"`
	ToNumber   string `json:"twilio-to-number"`
}
