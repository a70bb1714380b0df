package mail

import (
	"context"

	"github.com/formrelay/formrelay/internal/logger"
	"github.com/formrelay/formrelay/internal/relay"
)

// Transport is one concrete mechanism for delivering an email. Implementations
// make exactly one outbound call per Send and keep no state between calls.
type Transport interface {
	// Name returns the transport identifier (e.g. "mailgun", "smtp")
	Name() string
	// SpoofsFrom reports whether this route sends with the submitter's own
	// address on the From header. SMTP routes always send as the configured
	// service account.
	SpoofsFrom() bool
	// Send delivers the message and returns the provider's message id, when
	// one is available.
	Send(ctx context.Context, msg relay.OutboundEmail) (string, error)
}

// Dispatcher invokes a transport once per submission and maps the outcome
// to a uniform DispatchResult. No retries.
type Dispatcher struct {
	transport Transport
	log       *logger.Logger
}

// NewDispatcher creates a Dispatcher around the selected transport
func NewDispatcher(t Transport, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		transport: t,
		log:       log.WithTransport(t.Name()),
	}
}

// Name returns the underlying transport name
func (d *Dispatcher) Name() string {
	return d.transport.Name()
}

// SpoofsFrom reports the underlying transport's From semantics
func (d *Dispatcher) SpoofsFrom() bool {
	return d.transport.SpoofsFrom()
}

// Dispatch performs the single send attempt
func (d *Dispatcher) Dispatch(ctx context.Context, msg relay.OutboundEmail) relay.DispatchResult {
	id, err := d.transport.Send(ctx, msg)
	if err != nil {
		result := relay.Failure(err)
		d.log.Error().
			Err(err).
			Str("kind", string(result.Kind)).
			Msg("send failed")
		return result
	}

	d.log.Info().Str("message_id", id).Msg("email relayed")
	return relay.Success(id)
}
