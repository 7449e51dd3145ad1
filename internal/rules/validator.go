package rules

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"dealbridge/internal/domain"
)

// Actor identifies who is invoking an action.
type Actor struct {
	ID   uuid.UUID
	Role domain.UserRole
}

// Payload carries action parameters. Only reject uses it today.
type Payload struct {
	Reason string
}

// Snapshot is the slice of an entity the validator needs to decide a
// transition. BuyerID is zero for proposals.
type Snapshot struct {
	Kind     EntityKind
	Status   string
	SellerID uuid.UUID
	BuyerID  uuid.UUID
}

// Outcome describes the state change a successful validation produced. The
// lifecycle service applies it; the validator itself never touches storage.
type Outcome struct {
	NewStatus string
	Removed   bool

	StampSubmitted  bool
	StampReviewed   bool
	StampInterested bool
	StampNDASigned  bool
	StampCancelled  bool

	// SetRejectionReason holds the trimmed reason on reject;
	// ClearRejectionReason is set on resubmit.
	SetRejectionReason   *string
	ClearRejectionReason bool
}

// Validate decides whether actor may apply action to the entity in snap.
// It is deterministic and synchronous: the same inputs always yield the same
// decision.
func Validate(snap Snapshot, action Action, actor Actor, payload Payload) (*Outcome, error) {
	tr, ok := lookup(snap.Kind, snap.Status, action)
	if !ok {
		return nil, InvalidTransition(fmt.Sprintf("action %q is not allowed from status %q", action, snap.Status))
	}

	if err := checkPermission(tr.Allowed, snap, actor); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(payload.Reason)
	if tr.NeedsReason && reason == "" {
		return nil, Invalid(fmt.Sprintf("action %q requires a non-empty reason", action))
	}

	out := &Outcome{
		NewStatus: tr.To,
		Removed:   tr.Removes,
	}

	switch action {
	case ActionSubmit:
		out.StampSubmitted = true
	case ActionApprove:
		out.StampReviewed = true
	case ActionReject:
		out.StampReviewed = true
		out.SetRejectionReason = &reason
	case ActionResubmit:
		out.ClearRejectionReason = true
	case ActionExpressInterest:
		out.StampInterested = true
	case ActionSignNDA:
		out.StampNDASigned = true
	case ActionDecline:
		out.StampCancelled = true
	}

	return out, nil
}

func checkPermission(perm Permission, snap Snapshot, actor Actor) error {
	switch perm {
	case PermSeller:
		if actor.ID != snap.SellerID {
			return Forbidden("only the owning seller may perform this action")
		}
	case PermSellerOrAdmin:
		if actor.ID != snap.SellerID && actor.Role != domain.RoleAdmin {
			return Forbidden("only the owning seller or an admin may perform this action")
		}
	case PermAdmin:
		if actor.Role != domain.RoleAdmin {
			return Forbidden("only an admin may perform this action")
		}
	case PermTargetBuyer:
		if actor.ID != snap.BuyerID {
			return Forbidden("only the targeted buyer may perform this action")
		}
	}
	return nil
}

func SnapshotOfProposal(p *domain.Proposal) Snapshot {
	return Snapshot{
		Kind:     KindProposal,
		Status:   string(p.Status),
		SellerID: p.SellerID,
	}
}

func SnapshotOfCase(c *domain.Case) Snapshot {
	return Snapshot{
		Kind:     KindCase,
		Status:   string(c.Status),
		SellerID: c.SellerID,
		BuyerID:  c.BuyerID,
	}
}
