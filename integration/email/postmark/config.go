package postmark

// Config holds Postmark API credentials and delivery defaults.
type Config struct {
	ServerToken   string `env:"POSTMARK_SERVER_TOKEN,required"`
	AccountToken  string `env:"POSTMARK_ACCOUNT_TOKEN"`
	MessageStream string `env:"POSTMARK_MESSAGE_STREAM" envDefault:"outbound"`
	TrackOpens    bool   `env:"POSTMARK_TRACK_OPENS" envDefault:"true"`
	TrackLinks    string `env:"POSTMARK_TRACK_LINKS" envDefault:"HtmlOnly"` // None, HtmlAndText, HtmlOnly, TextOnly
}
