package receipts

import (
	"context"
	"strings"
)

// Workflow actions. Every mutation follows the same shape: check the
// caller's permission first, re-read the receipt to verify its current
// status, post the action, then fetch the receipt again so the caller sees
// the backend's authoritative state rather than a locally patched copy.

// Approve moves a PENDING receipt to APPROVED.
func (s *Service) Approve(ctx context.Context, id int64) (Receipt, error) {
	return s.transition(ctx, id, s.perms.Approve, "approve", StatusPending, nil)
}

// Reject moves a PENDING receipt to REJECTED. A non-empty reason is
// mandatory and is checked before any backend call.
func (s *Service) Reject(ctx context.Context, id int64, reason string) (Receipt, error) {
	if err := s.require(ctx, s.perms.Reject); err != nil {
		return Receipt{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Receipt{}, ErrReasonRequired
	}
	return s.act(ctx, id, "reject", StatusPending, map[string]string{"reason": reason})
}

// Cancel moves a PENDING receipt to CANCELLED.
func (s *Service) Cancel(ctx context.Context, id int64) (Receipt, error) {
	return s.transition(ctx, id, s.perms.Cancel, "cancel", StatusPending, nil)
}

// Confirm completes a receipt: imports become IMPORTED, exports become
// EXPORTED, and stock levels move on the backend. Supplier receipts must be
// APPROVED first; internal and staff receipts confirm straight from PENDING.
func (s *Service) Confirm(ctx context.Context, id int64) (Receipt, error) {
	return s.transition(ctx, id, s.perms.Confirm, "confirm", s.kind.confirmFrom(), nil)
}

// Delete removes a PENDING receipt. Anything past PENDING is part of the
// audit trail and can only be cancelled or rejected, never deleted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.require(ctx, s.perms.Delete); err != nil {
		return err
	}
	current, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != StatusPending {
		return ErrInvalidTransition
	}
	return s.port.Delete(ctx, id)
}

func (s *Service) transition(ctx context.Context, id int64, permission, action string, from Status, body any) (Receipt, error) {
	if err := s.require(ctx, permission); err != nil {
		return Receipt{}, err
	}
	return s.act(ctx, id, action, from, body)
}

func (s *Service) act(ctx context.Context, id int64, action string, from Status, body any) (Receipt, error) {
	current, err := s.fetch(ctx, id)
	if err != nil {
		return Receipt{}, err
	}
	if current.Status != from {
		return Receipt{}, ErrInvalidTransition
	}
	if _, err := s.port.Act(ctx, id, action, body); err != nil {
		return Receipt{}, err
	}
	return s.fetch(ctx, id)
}
