package rules_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealbridge/internal/domain"
	"dealbridge/internal/rules"
)

func proposalSnap(status domain.ProposalStatus, sellerID uuid.UUID) rules.Snapshot {
	return rules.Snapshot{
		Kind:     rules.KindProposal,
		Status:   string(status),
		SellerID: sellerID,
	}
}

func caseSnap(status domain.CaseStatus, sellerID, buyerID uuid.UUID) rules.Snapshot {
	return rules.Snapshot{
		Kind:     rules.KindCase,
		Status:   string(status),
		SellerID: sellerID,
		BuyerID:  buyerID,
	}
}

func TestValidate_ProposalTransitions(t *testing.T) {
	sellerID := uuid.New()
	seller := rules.Actor{ID: sellerID, Role: domain.RoleSeller}
	admin := rules.Actor{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("seller submits draft", func(t *testing.T) {
		out, err := rules.Validate(proposalSnap(domain.ProposalDraft, sellerID), rules.ActionSubmit, seller, rules.Payload{})

		require.NoError(t, err)
		assert.Equal(t, string(domain.ProposalUnderReview), out.NewStatus)
		assert.True(t, out.StampSubmitted)
		assert.False(t, out.Removed)
	})

	t.Run("submit from approved is invalid", func(t *testing.T) {
		_, err := rules.Validate(proposalSnap(domain.ProposalApproved, sellerID), rules.ActionSubmit, seller, rules.Payload{})

		assert.True(t, rules.IsKind(err, rules.KindInvalidTransition))
	})

	t.Run("non-owner cannot submit", func(t *testing.T) {
		other := rules.Actor{ID: uuid.New(), Role: domain.RoleSeller}
		_, err := rules.Validate(proposalSnap(domain.ProposalDraft, sellerID), rules.ActionSubmit, other, rules.Payload{})

		assert.True(t, rules.IsKind(err, rules.KindForbidden))
	})

	t.Run("admin cannot submit on behalf of seller", func(t *testing.T) {
		_, err := rules.Validate(proposalSnap(domain.ProposalDraft, sellerID), rules.ActionSubmit, admin, rules.Payload{})

		assert.True(t, rules.IsKind(err, rules.KindForbidden))
	})

	t.Run("admin approves", func(t *testing.T) {
		out, err := rules.Validate(proposalSnap(domain.ProposalUnderReview, sellerID), rules.ActionApprove, admin, rules.Payload{})

		require.NoError(t, err)
		assert.Equal(t, string(domain.ProposalApproved), out.NewStatus)
		assert.True(t, out.StampReviewed)
	})

	t.Run("seller cannot approve own proposal", func(t *testing.T) {
		_, err := rules.Validate(proposalSnap(domain.ProposalUnderReview, sellerID), rules.ActionApprove, seller, rules.Payload{})

		assert.True(t, rules.IsKind(err, rules.KindForbidden))
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		_, err := rules.Validate(proposalSnap(domain.ProposalUnderReview, sellerID), rules.ActionReject, admin, rules.Payload{})
		assert.True(t, rules.IsKind(err, rules.KindValidation))

		_, err = rules.Validate(proposalSnap(domain.ProposalUnderReview, sellerID), rules.ActionReject, admin, rules.Payload{Reason: "   "})
		assert.True(t, rules.IsKind(err, rules.KindValidation))
	})

	t.Run("reject stores trimmed reason", func(t *testing.T) {
		out, err := rules.Validate(proposalSnap(domain.ProposalUnderReview, sellerID), rules.ActionReject, admin, rules.Payload{Reason: "  too thin  "})

		require.NoError(t, err)
		assert.Equal(t, string(domain.ProposalRejected), out.NewStatus)
		require.NotNil(t, out.SetRejectionReason)
		assert.Equal(t, "too thin", *out.SetRejectionReason)
		assert.True(t, out.StampReviewed)
	})

	t.Run("resubmit clears reason", func(t *testing.T) {
		out, err := rules.Validate(proposalSnap(domain.ProposalRejected, sellerID), rules.ActionResubmit, seller, rules.Payload{})

		require.NoError(t, err)
		assert.Equal(t, string(domain.ProposalDraft), out.NewStatus)
		assert.True(t, out.ClearRejectionReason)
	})

	t.Run("delete removes the entity", func(t *testing.T) {
		out, err := rules.Validate(proposalSnap(domain.ProposalDraft, sellerID), rules.ActionDelete, seller, rules.Payload{})

		require.NoError(t, err)
		assert.True(t, out.Removed)

		out, err = rules.Validate(proposalSnap(domain.ProposalRejected, sellerID), rules.ActionDelete, seller, rules.Payload{})
		require.NoError(t, err)
		assert.True(t, out.Removed)
	})

	t.Run("delete of submitted proposal is invalid", func(t *testing.T) {
		_, err := rules.Validate(proposalSnap(domain.ProposalUnderReview, sellerID), rules.ActionDelete, seller, rules.Payload{})

		assert.True(t, rules.IsKind(err, rules.KindInvalidTransition))
	})

	t.Run("archive by seller or admin", func(t *testing.T) {
		_, err := rules.Validate(proposalSnap(domain.ProposalApproved, sellerID), rules.ActionArchive, seller, rules.Payload{})
		assert.NoError(t, err)

		_, err = rules.Validate(proposalSnap(domain.ProposalApproved, sellerID), rules.ActionArchive, admin, rules.Payload{})
		assert.NoError(t, err)

		stranger := rules.Actor{ID: uuid.New(), Role: domain.RoleBuyer}
		_, err = rules.Validate(proposalSnap(domain.ProposalApproved, sellerID), rules.ActionArchive, stranger, rules.Payload{})
		assert.True(t, rules.IsKind(err, rules.KindForbidden))
	})
}

func TestValidate_CaseTransitions(t *testing.T) {
	sellerID := uuid.New()
	buyerID := uuid.New()
	buyer := rules.Actor{ID: buyerID, Role: domain.RoleBuyer}
	seller := rules.Actor{ID: sellerID, Role: domain.RoleSeller}
	admin := rules.Actor{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("buyer expresses interest", func(t *testing.T) {
		out, err := rules.Validate(caseSnap(domain.CaseCreated, sellerID, buyerID), rules.ActionExpressInterest, buyer, rules.Payload{})

		require.NoError(t, err)
		assert.Equal(t, string(domain.CaseInterested), out.NewStatus)
		assert.True(t, out.StampInterested)
	})

	t.Run("seller cannot act as buyer", func(t *testing.T) {
		_, err := rules.Validate(caseSnap(domain.CaseCreated, sellerID, buyerID), rules.ActionExpressInterest, seller, rules.Payload{})

		assert.True(t, rules.IsKind(err, rules.KindForbidden))
	})

	t.Run("another buyer cannot act on the case", func(t *testing.T) {
		other := rules.Actor{ID: uuid.New(), Role: domain.RoleBuyer}
		_, err := rules.Validate(caseSnap(domain.CaseCreated, sellerID, buyerID), rules.ActionExpressInterest, other, rules.Payload{})

		assert.True(t, rules.IsKind(err, rules.KindForbidden))
	})

	t.Run("buyer declines from created and interested", func(t *testing.T) {
		out, err := rules.Validate(caseSnap(domain.CaseCreated, sellerID, buyerID), rules.ActionDecline, buyer, rules.Payload{})
		require.NoError(t, err)
		assert.Equal(t, string(domain.CaseCancelled), out.NewStatus)
		assert.True(t, out.StampCancelled)

		out, err = rules.Validate(caseSnap(domain.CaseInterested, sellerID, buyerID), rules.ActionDecline, buyer, rules.Payload{})
		require.NoError(t, err)
		assert.Equal(t, string(domain.CaseCancelled), out.NewStatus)
	})

	t.Run("buyer signs NDA only after interest", func(t *testing.T) {
		_, err := rules.Validate(caseSnap(domain.CaseCreated, sellerID, buyerID), rules.ActionSignNDA, buyer, rules.Payload{})
		assert.True(t, rules.IsKind(err, rules.KindInvalidTransition))

		out, err := rules.Validate(caseSnap(domain.CaseInterested, sellerID, buyerID), rules.ActionSignNDA, buyer, rules.Payload{})
		require.NoError(t, err)
		assert.Equal(t, string(domain.CaseNDASigned), out.NewStatus)
		assert.True(t, out.StampNDASigned)
	})

	t.Run("advance and complete are admin only", func(t *testing.T) {
		_, err := rules.Validate(caseSnap(domain.CaseNDASigned, sellerID, buyerID), rules.ActionAdvance, buyer, rules.Payload{})
		assert.True(t, rules.IsKind(err, rules.KindForbidden))

		out, err := rules.Validate(caseSnap(domain.CaseNDASigned, sellerID, buyerID), rules.ActionAdvance, admin, rules.Payload{})
		require.NoError(t, err)
		assert.Equal(t, string(domain.CaseInNegotiation), out.NewStatus)

		out, err = rules.Validate(caseSnap(domain.CaseInNegotiation, sellerID, buyerID), rules.ActionComplete, admin, rules.Payload{})
		require.NoError(t, err)
		assert.Equal(t, string(domain.CaseCompleted), out.NewStatus)
	})

	t.Run("no action leaves a terminal state", func(t *testing.T) {
		for _, status := range []domain.CaseStatus{domain.CaseCompleted, domain.CaseCancelled} {
			for _, action := range []rules.Action{rules.ActionExpressInterest, rules.ActionDecline, rules.ActionSignNDA, rules.ActionAdvance, rules.ActionComplete} {
				_, err := rules.Validate(caseSnap(status, sellerID, buyerID), action, admin, rules.Payload{})
				assert.True(t, rules.IsKind(err, rules.KindInvalidTransition), "expected %s from %s to be invalid", action, status)
			}
		}
	})

	t.Run("decline after NDA is invalid", func(t *testing.T) {
		_, err := rules.Validate(caseSnap(domain.CaseNDASigned, sellerID, buyerID), rules.ActionDecline, buyer, rules.Payload{})

		assert.True(t, rules.IsKind(err, rules.KindInvalidTransition))
	})
}

func TestValidate_PermissionCheckedAfterExistence(t *testing.T) {
	// An action missing from the table reports invalid transition even for an
	// actor who would lack permission anyway.
	stranger := rules.Actor{ID: uuid.New(), Role: domain.RoleBuyer}
	_, err := rules.Validate(proposalSnap(domain.ProposalArchived, uuid.New()), rules.ActionSubmit, stranger, rules.Payload{})

	assert.True(t, rules.IsKind(err, rules.KindInvalidTransition))
}
