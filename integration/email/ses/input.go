package ses

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/dmitrymomot/mailer/core/email"
)

// BuildInput maps msg onto a SendEmail request:
//
//   - Content.Raw.Data carries the serialized message
//   - FromEmailAddress is the message sender, sent even when empty
//   - Destination.ToAddresses is always set; cc and bcc only when non-empty
//   - ReplyToAddresses is set only when non-empty
//
// No other header is inspected. SES rejects empty destination sub-lists,
// which is why empty cc/bcc/reply-to stay nil.
func BuildInput(msg email.Outgoing) (*sesv2.SendEmailInput, error) {
	dest, err := email.ResolveDestination(msg)
	if err != nil {
		return nil, errors.Join(email.ErrInvalidParams, err)
	}

	raw, err := msg.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize message: %w", email.ErrInvalidParams, err)
	}

	input := &sesv2.SendEmailInput{
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
		FromEmailAddress: aws.String(msg.SenderAddress()),
		Destination: &types.Destination{
			ToAddresses:  addressList(dest.To),
			CcAddresses:  optionalAddressList(dest.Cc),
			BccAddresses: optionalAddressList(dest.Bcc),
		},
		ReplyToAddresses: optionalAddressList(msg.ReplyToAddresses()),
	}
	return input, nil
}

// addressList copies addrs into a non-nil slice so the field is always present.
func addressList(addrs []string) []string {
	return append(make([]string, 0, len(addrs)), addrs...)
}

func optionalAddressList(addrs []string) []string {
	if len(addrs) == 0 {
		return nil
	}
	return addressList(addrs)
}
