package retryjob

import (
	jsoniter "github.com/json-iterator/go"

	"venuebook/internal/pkg/errs"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Payload schemas form a tagged union keyed by JobType. Each handler owns
// its schema; the queue itself treats payloads as opaque bytes.

// CleanupOrphanedBlobPayload names an artifact a failed two-phase write
// left behind in the object store.
type CleanupOrphanedBlobPayload struct {
	URL string `json:"url"`
}

// SendResponseEmailPayload carries what the mailer needs to deliver a
// customer response link.
type SendResponseEmailPayload struct {
	BookingID     string `json:"booking_id"`
	CustomerEmail string `json:"customer_email"`
	ResponseToken string `json:"response_token"`
}

func EncodePayload(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode job payload")
	}
	return data, nil
}

func DecodePayload(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return errs.Wrap(err, "failed to decode job payload")
	}
	return nil
}
