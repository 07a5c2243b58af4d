package messaging

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mcpfinanceiro/backend/internal/domain/tenant"
)

// Dispatch kinds, used for logging and failure accounting.
const (
	KindPaymentCode     = "payment_code"
	KindPaymentLink     = "payment_link"
	KindInspectionVideo = "inspection_video"
)

// dispatchTimeout bounds each outbound send independently of the caller, who
// has already moved on by the time the send runs.
const dispatchTimeout = 15 * time.Second

// FailureObserver counts dispatch failures per kind. Implementations must be
// safe for concurrent use. A nil observer disables accounting.
type FailureObserver interface {
	ObserveDispatchFailure(ctx context.Context, kind string)
}

// Dispatcher fires chat messages asynchronously. Every send runs on its own
// goroutine with its own deadline; failures are logged and counted but never
// reported back, so a dead chat provider cannot block or fail a resolution.
type Dispatcher struct {
	chat     *ChatClient
	logger   *zap.Logger
	observer FailureObserver
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher over the given chat client.
func NewDispatcher(chat *ChatClient, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{chat: chat, logger: logger}
}

// WithObserver attaches a failure observer and returns the dispatcher.
func (d *Dispatcher) WithObserver(obs FailureObserver) *Dispatcher {
	d.observer = obs
	return d
}

// SendPaymentCode pushes the machine-payable code as a plain text message.
func (d *Dispatcher) SendPaymentCode(creds tenant.ChannelCredentials, phone, code string) {
	d.dispatch(KindPaymentCode, creds, Message{Text: code, To: phone})
}

// SendPaymentLink pushes the boleto document as a file attachment.
func (d *Dispatcher) SendPaymentLink(creds tenant.ChannelCredentials, phone, link string) {
	d.dispatch(KindPaymentLink, creds, Message{Text: captionPaymentLink, To: phone, FileURL: link})
}

// SendInspectionVideo pushes the inspection walkthrough video.
func (d *Dispatcher) SendInspectionVideo(creds tenant.ChannelCredentials, phone, videoURL string) {
	d.dispatch(KindInspectionVideo, creds, Message{Text: captionPaymentLink, To: phone, FileURL: videoURL})
}

// Wait blocks until all in-flight dispatches finish. Used in tests and during
// shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(kind string, creds tenant.ChannelCredentials, msg Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := d.chat.SendMessage(ctx, creds, msg); err != nil {
			d.logger.Warn("Media dispatch failed",
				zap.String("kind", kind),
				zap.Error(err))
			if d.observer != nil {
				d.observer.ObserveDispatchFailure(ctx, kind)
			}
		}
	}()
}
