package ses

// Config holds the AWS client settings for the SES v2 API.
// Every field is optional; unset values fall back to the AWS SDK default
// chain (environment, shared config files, IAM roles). Nothing is validated
// locally, invalid values surface from the SDK.
type Config struct {
	Region       string `env:"AWS_SES_REGION"`
	AccessKeyID  string `env:"AWS_SES_ACCESS_KEY_ID"`
	SecretKey    string `env:"AWS_SES_SECRET_ACCESS_KEY"`
	SessionToken string `env:"AWS_SES_SESSION_TOKEN"`
	Endpoint     string `env:"AWS_SES_ENDPOINT"`     // custom endpoint, e.g. a local SES emulator
	MaxAttempts  int    `env:"AWS_SES_MAX_ATTEMPTS"` // SDK retry attempts; 0 keeps the SDK default
}
