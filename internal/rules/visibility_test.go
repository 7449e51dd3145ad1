package rules_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealbridge/internal/domain"
	"dealbridge/internal/rules"
)

func TestProjectProposal(t *testing.T) {
	sellerID := uuid.New()
	reason := "numbers do not add up"
	p := &domain.Proposal{
		ID:              uuid.New(),
		SellerID:        sellerID,
		Title:           "SaaS analytics platform",
		BriefContent:    "Profitable B2B SaaS, 40 customers",
		DetailedContent: "ARR 1.2M, churn 2%, full financials attached",
		Status:          domain.ProposalRejected,
		RejectionReason: &reason,
	}

	t.Run("stranger sees public tier only", func(t *testing.T) {
		stranger := rules.Actor{ID: uuid.New(), Role: domain.RoleBuyer}
		view := rules.ProjectProposal(p, stranger, false)

		assert.Equal(t, p.Title, view.Title)
		assert.Equal(t, p.BriefContent, view.BriefContent)
		assert.Equal(t, p.Status, view.Status)
		assert.Nil(t, view.DetailedContent)
		assert.Nil(t, view.RejectionReason)
	})

	t.Run("owner sees everything", func(t *testing.T) {
		owner := rules.Actor{ID: sellerID, Role: domain.RoleSeller}
		view := rules.ProjectProposal(p, owner, false)

		require.NotNil(t, view.DetailedContent)
		assert.Equal(t, p.DetailedContent, *view.DetailedContent)
		require.NotNil(t, view.RejectionReason)
		assert.Equal(t, reason, *view.RejectionReason)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		admin := rules.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
		view := rules.ProjectProposal(p, admin, false)

		assert.NotNil(t, view.DetailedContent)
		assert.NotNil(t, view.RejectionReason)
	})

	t.Run("nda unlocked buyer sees detail but not rejection reason", func(t *testing.T) {
		buyer := rules.Actor{ID: uuid.New(), Role: domain.RoleBuyer}
		view := rules.ProjectProposal(p, buyer, true)

		require.NotNil(t, view.DetailedContent)
		assert.Equal(t, p.DetailedContent, *view.DetailedContent)
		assert.Nil(t, view.RejectionReason)
	})
}

func TestProjectCase(t *testing.T) {
	seller := &domain.User{ID: uuid.New(), FullName: "Sam Seller", Email: "sam@example.com"}
	buyer := &domain.User{ID: uuid.New(), FullName: "Blair Buyer", Email: "blair@example.com"}
	p := &domain.Proposal{
		ID:              uuid.New(),
		SellerID:        seller.ID,
		Title:           "Logistics brokerage",
		BriefContent:    "Regional freight brokerage, 12 staff",
		DetailedContent: "Client list and margins in data room",
		Status:          domain.ProposalApproved,
	}
	newCase := func(status domain.CaseStatus) *domain.Case {
		return &domain.Case{
			ID:         uuid.New(),
			ProposalID: p.ID,
			SellerID:   seller.ID,
			BuyerID:    buyer.ID,
			Status:     status,
		}
	}

	sellerActor := rules.Actor{ID: seller.ID, Role: domain.RoleSeller}
	buyerActor := rules.Actor{ID: buyer.ID, Role: domain.RoleBuyer}
	adminActor := rules.Actor{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("stranger gets no view", func(t *testing.T) {
		stranger := rules.Actor{ID: uuid.New(), Role: domain.RoleBuyer}
		_, ok := rules.ProjectCase(newCase(domain.CaseCreated), p, seller, buyer, stranger)

		assert.False(t, ok)
	})

	t.Run("buyer before NDA sees brief only", func(t *testing.T) {
		view, ok := rules.ProjectCase(newCase(domain.CaseInterested), p, seller, buyer, buyerActor)

		require.True(t, ok)
		assert.Equal(t, p.Title, view.Title)
		assert.Equal(t, p.BriefContent, view.BriefContent)
		assert.Nil(t, view.DetailedContent)
		assert.Nil(t, view.Contact)
	})

	t.Run("buyer after NDA sees detail and contact", func(t *testing.T) {
		view, ok := rules.ProjectCase(newCase(domain.CaseNDASigned), p, seller, buyer, buyerActor)

		require.True(t, ok)
		require.NotNil(t, view.DetailedContent)
		assert.Equal(t, p.DetailedContent, *view.DetailedContent)
		require.NotNil(t, view.Contact)
		assert.Equal(t, seller.Email, view.Contact.SellerEmail)
		assert.Equal(t, buyer.Email, view.Contact.BuyerEmail)
	})

	t.Run("seller always sees detail, contact only post NDA", func(t *testing.T) {
		view, ok := rules.ProjectCase(newCase(domain.CaseCreated), p, seller, buyer, sellerActor)
		require.True(t, ok)
		assert.NotNil(t, view.DetailedContent)
		assert.Nil(t, view.Contact)

		view, ok = rules.ProjectCase(newCase(domain.CaseInNegotiation), p, seller, buyer, sellerActor)
		require.True(t, ok)
		assert.NotNil(t, view.Contact)
	})

	t.Run("admin sees detail but never contact", func(t *testing.T) {
		view, ok := rules.ProjectCase(newCase(domain.CaseCompleted), p, seller, buyer, adminActor)

		require.True(t, ok)
		assert.NotNil(t, view.DetailedContent)
		assert.Nil(t, view.Contact)
	})

	t.Run("cancelled case discloses nothing extra to buyer", func(t *testing.T) {
		view, ok := rules.ProjectCase(newCase(domain.CaseCancelled), p, seller, buyer, buyerActor)

		require.True(t, ok)
		assert.Nil(t, view.DetailedContent)
		assert.Nil(t, view.Contact)
	})
}

func TestContentUnlocked(t *testing.T) {
	assert.False(t, rules.ContentUnlocked(domain.CaseCreated))
	assert.False(t, rules.ContentUnlocked(domain.CaseInterested))
	assert.False(t, rules.ContentUnlocked(domain.CaseCancelled))
	assert.True(t, rules.ContentUnlocked(domain.CaseNDASigned))
	assert.True(t, rules.ContentUnlocked(domain.CaseInNegotiation))
	assert.True(t, rules.ContentUnlocked(domain.CaseCompleted))
}
