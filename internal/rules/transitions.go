// Package rules holds the lifecycle and visibility rules for proposals and
// cases: which status transitions are legal, who may trigger them, and which
// fields each viewer gets to see. Everything in this package is pure; loading
// and persisting entities belongs to the lifecycle service.
package rules

import (
	"dealbridge/internal/domain"
)

type EntityKind string

const (
	KindProposal EntityKind = "proposal"
	KindCase     EntityKind = "case"
)

type Action string

const (
	// Proposal actions.
	ActionSubmit   Action = "submit"
	ActionDelete   Action = "delete"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionArchive  Action = "archive"
	ActionResubmit Action = "resubmit"

	// Case actions.
	ActionExpressInterest Action = "express_interest"
	ActionDecline         Action = "decline"
	ActionSignNDA         Action = "sign_nda"
	ActionAdvance         Action = "advance"
	ActionComplete        Action = "complete"
)

// Permission names who may invoke a transition. Ownership is checked by exact
// id match, admin by role.
type Permission int

const (
	PermSeller Permission = iota
	PermSellerOrAdmin
	PermAdmin
	PermTargetBuyer
)

type Transition struct {
	To      string
	Removes bool
	Allowed Permission
	// NeedsReason marks actions whose payload must carry a non-empty reason.
	NeedsReason bool
}

var proposalTransitions = map[domain.ProposalStatus]map[Action]Transition{
	domain.ProposalDraft: {
		ActionSubmit: {To: string(domain.ProposalUnderReview), Allowed: PermSeller},
		ActionDelete: {Removes: true, Allowed: PermSeller},
	},
	domain.ProposalUnderReview: {
		ActionApprove: {To: string(domain.ProposalApproved), Allowed: PermAdmin},
		ActionReject:  {To: string(domain.ProposalRejected), Allowed: PermAdmin, NeedsReason: true},
	},
	domain.ProposalApproved: {
		ActionArchive: {To: string(domain.ProposalArchived), Allowed: PermSellerOrAdmin},
	},
	domain.ProposalRejected: {
		ActionResubmit: {To: string(domain.ProposalDraft), Allowed: PermSeller},
		ActionDelete:   {Removes: true, Allowed: PermSeller},
	},
	// archived is terminal.
}

var caseTransitions = map[domain.CaseStatus]map[Action]Transition{
	domain.CaseCreated: {
		ActionExpressInterest: {To: string(domain.CaseInterested), Allowed: PermTargetBuyer},
		ActionDecline:         {To: string(domain.CaseCancelled), Allowed: PermTargetBuyer},
	},
	domain.CaseInterested: {
		ActionSignNDA: {To: string(domain.CaseNDASigned), Allowed: PermTargetBuyer},
		ActionDecline: {To: string(domain.CaseCancelled), Allowed: PermTargetBuyer},
	},
	// The post-NDA progression is driven by the platform operators, not by a
	// party action in the product UI.
	domain.CaseNDASigned: {
		ActionAdvance: {To: string(domain.CaseInNegotiation), Allowed: PermAdmin},
	},
	domain.CaseInNegotiation: {
		ActionComplete: {To: string(domain.CaseCompleted), Allowed: PermAdmin},
	},
	// completed and cancelled are terminal.
}

// ActionRule pairs an action with who may invoke it, as exposed by
// AllowedActions.
type ActionRule struct {
	Action  Action
	Allowed Permission
}

// AllowedActions lists the legal actions from a given status. The status is
// passed as its string form so one entry point serves both entity kinds.
func AllowedActions(kind EntityKind, status string) []ActionRule {
	var out []ActionRule
	switch kind {
	case KindProposal:
		for action, tr := range proposalTransitions[domain.ProposalStatus(status)] {
			out = append(out, ActionRule{Action: action, Allowed: tr.Allowed})
		}
	case KindCase:
		for action, tr := range caseTransitions[domain.CaseStatus(status)] {
			out = append(out, ActionRule{Action: action, Allowed: tr.Allowed})
		}
	}
	return out
}

func lookup(kind EntityKind, status string, action Action) (Transition, bool) {
	switch kind {
	case KindProposal:
		tr, ok := proposalTransitions[domain.ProposalStatus(status)][action]
		return tr, ok
	case KindCase:
		tr, ok := caseTransitions[domain.CaseStatus(status)][action]
		return tr, ok
	default:
		return Transition{}, false
	}
}
