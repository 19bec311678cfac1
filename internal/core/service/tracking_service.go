package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hiptrack/shipment-tracker/internal/api/metrics"
	"github.com/hiptrack/shipment-tracker/internal/core/domain"
	"github.com/hiptrack/shipment-tracker/internal/core/ports"
	"github.com/hiptrack/shipment-tracker/internal/core/simulation"
)

// TrackingService implements the read-reconcile-write cycle: every read
// recomputes the simulated state, returns it immediately, and flushes any
// drift to the record store in the background.
type TrackingService struct {
	repo     ports.ShipmentRepository
	writer   ports.ProgressWriter
	notifier ports.Notifier
	dedup    ports.NotificationDedup
	logger   zerolog.Logger

	now func() time.Time
}

func NewTrackingService(
	repo ports.ShipmentRepository,
	writer ports.ProgressWriter,
	notifier ports.Notifier,
	dedup ports.NotificationDedup,
	logger zerolog.Logger,
) *TrackingService {
	return &TrackingService{
		repo:     repo,
		writer:   writer,
		notifier: notifier,
		dedup:    dedup,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetTracking returns the reconciled view for a code. The response never
// waits on persistence: when the derived state differs from the stored
// record, a write-behind entry is enqueued and any eventual store failure
// is logged by the writer, not surfaced here.
func (s *TrackingService) GetTracking(ctx context.Context, code string) (*ports.TrackingView, error) {
	shipment, err := s.repo.FindByCode(ctx, normalizeCode(code))
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrShipmentNotFound) {
			result = "not_found"
		}
		metrics.TrackingReadsTotal.WithLabelValues(result).Inc()
		return nil, fmt.Errorf("get tracking: %w", err)
	}

	now := s.now()
	rec := simulation.Reconcile(shipment, now)

	if rec.ShouldPersist {
		s.writer.Enqueue(ports.ProgressUpdate{
			ID:       shipment.ID,
			Code:     shipment.Code,
			Status:   rec.Status,
			Progress: rec.Progress,
			Position: rec.Position,
			At:       now,
		})
	}

	view := *shipment
	view.Status = rec.Status
	view.Progress = rec.Progress
	view.Current = rec.Position

	metrics.TrackingReadsTotal.WithLabelValues("ok").Inc()

	return &ports.TrackingView{
		Shipment:         view,
		DistanceProgress: simulation.DistanceProgress(view.Origin, view.Dest, view.Current, rec.Progress),
		ArrivalAt:        arrivalAt(shipment),
	}, nil
}

// PatchTracking applies the narrow tracking-side override. The update is
// keyed by the record's internal id. A changed admin comment triggers the
// receiver notification; notification failures never fail the patch.
func (s *TrackingService) PatchTracking(ctx context.Context, code string, input ports.TrackingPatchInput) (*domain.Shipment, error) {
	shipment, err := s.repo.FindByCode(ctx, normalizeCode(code))
	if err != nil {
		return nil, fmt.Errorf("patch tracking: %w", err)
	}

	patch := ports.ShipmentPatch{UpdatedAt: s.now()}
	empty := true

	if input.Status != nil {
		status := domain.ShipmentStatus(*input.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("patch tracking: %w: %q", domain.ErrInvalidStatus, *input.Status)
		}
		patch.Status = &status
		empty = false
	}
	if input.CurrentLat != nil || input.CurrentLng != nil {
		current := coordinatesOrZero(shipment.Current)
		if input.CurrentLat != nil {
			current.Lat = *input.CurrentLat
		}
		if input.CurrentLng != nil {
			current.Lng = *input.CurrentLng
		}
		patch.Current = &current
		empty = false
	}
	if input.Progress != nil {
		patch.Progress = input.Progress
		empty = false
	}

	var newComment string
	notify := false
	if input.AdminComment != nil {
		newComment = strings.TrimSpace(*input.AdminComment)
		if newComment == "" {
			patch.ClearAdminComment = true
		} else {
			patch.AdminComment = &newComment
		}
		notify = newComment != "" && newComment != shipment.AdminComment && shipment.Receiver.Email != ""
		empty = false
	}

	if empty {
		return nil, domain.ErrEmptyPatch
	}

	updated, err := s.repo.UpdateByID(ctx, shipment.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("patch tracking: %w", err)
	}

	if notify {
		s.sendCommentNotification(ctx, shipment.Receiver.Email, shipment.Code, newComment)
	}

	return updated, nil
}

// SimulateMovement runs one reconciliation pass outside of a read and
// persists it synchronously. Used for server-driven ticking.
func (s *TrackingService) SimulateMovement(ctx context.Context, code string) (*ports.SimulationResult, error) {
	shipment, err := s.repo.FindByCode(ctx, normalizeCode(code))
	if err != nil {
		return nil, fmt.Errorf("simulate movement: %w", err)
	}

	if shipment.Status != domain.StatusInTransit {
		return &ports.SimulationResult{
			Code:      shipment.Code,
			Performed: false,
			Message:   "shipment is not in transit",
			Progress:  shipment.Progress,
			Status:    shipment.Status,
		}, nil
	}

	if shipment.Origin == nil || shipment.Dest == nil {
		return nil, fmt.Errorf("simulate movement: %w", domain.ErrMissingCoordinates)
	}

	now := s.now()
	rec := simulation.Reconcile(shipment, now)

	patch := ports.ShipmentPatch{
		Status:    &rec.Status,
		Progress:  &rec.Progress,
		Current:   rec.Position,
		UpdatedAt: now,
	}
	if _, err := s.repo.UpdateByID(ctx, shipment.ID, patch); err != nil {
		return nil, fmt.Errorf("simulate movement: %w", err)
	}

	metrics.SimulationTicksTotal.Inc()
	s.logger.Info().
		Str("code", shipment.Code).
		Float64("progress", rec.Progress).
		Str("status", string(rec.Status)).
		Msg("simulation tick applied")

	result := &ports.SimulationResult{
		Code:      shipment.Code,
		Performed: true,
		Progress:  rec.Progress,
		Status:    rec.Status,
	}
	if rec.Position != nil {
		result.Position = *rec.Position
	}
	return result, nil
}

// sendCommentNotification delivers the admin-comment email, suppressing
// repeats of an identical comment. Every outcome is logged; none propagates.
func (s *TrackingService) sendCommentNotification(ctx context.Context, toEmail, code, comment string) {
	if s.notifier == nil {
		return
	}

	if s.dedup != nil {
		sent, err := s.dedup.AlreadySent(ctx, code, comment)
		if err != nil {
			s.logger.Warn().Err(err).Str("code", code).Msg("notification dedup check failed, sending anyway")
		} else if sent {
			metrics.NotificationsTotal.WithLabelValues("deduplicated").Inc()
			return
		}
	}

	if err := s.notifier.NotifyAdminComment(ctx, toEmail, code, comment); err != nil {
		metrics.NotificationsTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("code", code).Msg("admin comment notification failed")
		return
	}

	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	if s.dedup != nil {
		if err := s.dedup.MarkSent(ctx, code, comment); err != nil {
			s.logger.Warn().Err(err).Str("code", code).Msg("failed to mark notification as sent")
		}
	}
	s.logger.Info().Str("code", code).Str("to", toEmail).Msg("admin comment notification sent")
}

func arrivalAt(s *domain.Shipment) time.Time {
	if s.EstimatedHours <= 0 {
		return time.Time{}
	}
	return s.CreatedAt.Add(time.Duration(s.EstimatedHours * float64(time.Hour)))
}

func coordinatesOrZero(c *domain.Coordinates) domain.Coordinates {
	if c == nil {
		return domain.Coordinates{}
	}
	return *c
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
