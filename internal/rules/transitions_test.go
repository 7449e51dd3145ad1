package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dealbridge/internal/domain"
	"dealbridge/internal/rules"
)

func actionsOf(ruleSet []rules.ActionRule) []rules.Action {
	var out []rules.Action
	for _, r := range ruleSet {
		out = append(out, r.Action)
	}
	return out
}

func TestAllowedActions_Proposal(t *testing.T) {
	t.Run("Draft", func(t *testing.T) {
		actions := actionsOf(rules.AllowedActions(rules.KindProposal, string(domain.ProposalDraft)))
		assert.ElementsMatch(t, []rules.Action{rules.ActionSubmit, rules.ActionDelete}, actions)
	})

	t.Run("UnderReview", func(t *testing.T) {
		actions := actionsOf(rules.AllowedActions(rules.KindProposal, string(domain.ProposalUnderReview)))
		assert.ElementsMatch(t, []rules.Action{rules.ActionApprove, rules.ActionReject}, actions)
	})

	t.Run("Approved", func(t *testing.T) {
		actions := actionsOf(rules.AllowedActions(rules.KindProposal, string(domain.ProposalApproved)))
		assert.ElementsMatch(t, []rules.Action{rules.ActionArchive}, actions)
	})

	t.Run("Rejected", func(t *testing.T) {
		actions := actionsOf(rules.AllowedActions(rules.KindProposal, string(domain.ProposalRejected)))
		assert.ElementsMatch(t, []rules.Action{rules.ActionResubmit, rules.ActionDelete}, actions)
	})

	t.Run("Archived is terminal", func(t *testing.T) {
		assert.Empty(t, rules.AllowedActions(rules.KindProposal, string(domain.ProposalArchived)))
	})
}

func TestAllowedActions_Case(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		actions := actionsOf(rules.AllowedActions(rules.KindCase, string(domain.CaseCreated)))
		assert.ElementsMatch(t, []rules.Action{rules.ActionExpressInterest, rules.ActionDecline}, actions)
	})

	t.Run("Interested", func(t *testing.T) {
		actions := actionsOf(rules.AllowedActions(rules.KindCase, string(domain.CaseInterested)))
		assert.ElementsMatch(t, []rules.Action{rules.ActionSignNDA, rules.ActionDecline}, actions)
	})

	t.Run("NDASigned", func(t *testing.T) {
		actions := actionsOf(rules.AllowedActions(rules.KindCase, string(domain.CaseNDASigned)))
		assert.ElementsMatch(t, []rules.Action{rules.ActionAdvance}, actions)
	})

	t.Run("InNegotiation", func(t *testing.T) {
		actions := actionsOf(rules.AllowedActions(rules.KindCase, string(domain.CaseInNegotiation)))
		assert.ElementsMatch(t, []rules.Action{rules.ActionComplete}, actions)
	})

	t.Run("Terminal states", func(t *testing.T) {
		assert.Empty(t, rules.AllowedActions(rules.KindCase, string(domain.CaseCompleted)))
		assert.Empty(t, rules.AllowedActions(rules.KindCase, string(domain.CaseCancelled)))
	})
}

func TestAllowedActions_UnknownStatus(t *testing.T) {
	assert.Empty(t, rules.AllowedActions(rules.KindProposal, "bogus"))
	assert.Empty(t, rules.AllowedActions(rules.KindCase, "bogus"))
}
