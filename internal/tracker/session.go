package tracker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// defaultFrameInterval is the render cadence while a tween is active.
const defaultFrameInterval = 50 * time.Millisecond

// Session ties a Poller to an Animator for one tracked code and owns the
// teardown of both. Frames stop flowing, and the channel closes, once the
// shipment reaches a terminal status or Stop is called.
type Session struct {
	poller        *Poller
	frameInterval time.Duration
	cancel        context.CancelFunc
}

func NewSession(fetcher Fetcher, pollInterval time.Duration, log zerolog.Logger) *Session {
	return &Session{
		poller:        NewPoller(fetcher, pollInterval, log),
		frameInterval: defaultFrameInterval,
	}
}

// Start begins polling the given code and returns the frame stream. The
// stream closes on terminal status, on Stop, or when ctx is cancelled; after
// the close nothing touches session state.
func (s *Session) Start(ctx context.Context, code string) <-chan Frame {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	snapshots := s.poller.Run(ctx, code)
	frames := make(chan Frame)

	go func() {
		defer close(frames)

		animator := NewAnimator()
		ticker := time.NewTicker(s.frameInterval)
		defer ticker.Stop()

		emit := func(f Frame) bool {
			select {
			case frames <- f:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-snapshots:
				if !ok {
					// Polling ended. Let the final tween settle,
					// then emit the resting frame and finish.
					s.drainTween(ctx, animator, emit)
					return
				}
				animator.Feed(snap, time.Now())
				if !emit(animator.FrameAt(time.Now())) {
					return
				}
			case now := <-ticker.C:
				frame := animator.FrameAt(now)
				if frame.State == StateMoving {
					if !emit(frame) {
						return
					}
				}
			}
		}
	}()

	return frames
}

// Stop cancels the polling loop and any in-flight animation.
func (s *Session) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Session) drainTween(ctx context.Context, animator *Animator, emit func(Frame) bool) {
	ticker := time.NewTicker(s.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			frame := animator.FrameAt(now)
			if !emit(frame) {
				return
			}
			if frame.State != StateMoving {
				return
			}
		}
	}
}
