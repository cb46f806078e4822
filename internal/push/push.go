package push

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jklemm/hearthside/internal/model"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// ErrEndpointGone is returned when the push service reports the endpoint
// no longer exists (410 Gone or 404 Not Found). The subscription should be
// removed from the registry.
var ErrEndpointGone = errors.New("push endpoint gone")

const deliveryTimeout = 10 * time.Second

// Outcome classifies one delivery attempt.
type Outcome int

const (
	OutcomeDelivered Outcome = iota
	OutcomePermanentFailure
	OutcomeTransientFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomePermanentFailure:
		return "permanent_failure"
	case OutcomeTransientFailure:
		return "transient_failure"
	}
	return "unknown"
}

// Payload is the JSON sent to the push service and unpacked by the
// client-side notification renderer.
type Payload struct {
	Title string      `json:"title"`
	Body  string      `json:"body"`
	Icon  string      `json:"icon,omitempty"`
	Badge string      `json:"badge,omitempty"`
	Tag   string      `json:"tag"`
	Data  PayloadData `json:"data"`
}

// PayloadData carries the deep link opened on click and the notification type.
type PayloadData struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Config holds VAPID configuration. All three fields are required to send.
type Config struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subscriber      string // contact mailto: or https: URL sent to the push service
}

// Valid reports whether the config is complete enough to send pushes.
func (c Config) Valid() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != "" && c.Subscriber != ""
}

// Service sends web push notifications and classifies delivery outcomes.
type Service struct {
	cfg    Config
	client *http.Client
}

// NewService creates a push service with VAPID credentials.
func NewService(cfg Config) *Service {
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: deliveryTimeout},
	}
}

// VAPIDPublicKey returns the VAPID public key for client-side subscription.
func (s *Service) VAPIDPublicKey() string {
	return s.cfg.VAPIDPublicKey
}

// Deliver sends a payload to one subscription endpoint.
//
// A 410 or 404 from the push service means the endpoint is permanently
// dead and the caller must remove the subscription. Every other non-2xx
// status, network error, or timeout is transient; the caller logs it and
// the next scheduler tick retries naturally.
func (s *Service) Deliver(sub *model.PushSubscription, payload Payload) (Outcome, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return OutcomeTransientFailure, fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := webpush.SendNotification(data, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dhKey,
			Auth:   sub.AuthKey,
		},
	}, &webpush.Options{
		HTTPClient:      s.client,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		Subscriber:      s.cfg.Subscriber,
		TTL:             86400,
	})
	if err != nil {
		return OutcomeTransientFailure, fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusGone, resp.StatusCode == http.StatusNotFound:
		return OutcomePermanentFailure, ErrEndpointGone
	case resp.StatusCode >= 400:
		return OutcomeTransientFailure, fmt.Errorf("push service returned %d", resp.StatusCode)
	}

	return OutcomeDelivered, nil
}

// GenerateVAPIDKeys generates a new ECDSA P-256 key pair for VAPID.
func GenerateVAPIDKeys() (publicKey, privateKey string, err error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("generate ECDSA key: %w", err)
	}

	pubBytes := elliptic.Marshal(elliptic.P256(), key.PublicKey.X, key.PublicKey.Y)
	publicKey = base64.RawURLEncoding.EncodeToString(pubBytes)
	privateKey = base64.RawURLEncoding.EncodeToString(key.D.Bytes())

	return publicKey, privateKey, nil
}
