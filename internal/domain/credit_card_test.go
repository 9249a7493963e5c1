package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook-api/internal/domain"
)

func TestNewCreditCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		ownerID      int64
		issuanceBank string
		number       string
		expectedErr  error
	}{
		{
			name:         "valid card",
			ownerID:      1,
			issuanceBank: "DBS",
			number:       "4111-1111",
		},
		{
			name:         "empty issuance bank",
			ownerID:      1,
			issuanceBank: "",
			number:       "4111-1111",
			expectedErr:  domain.ErrCardBankEmpty,
		},
		{
			name:         "empty number",
			ownerID:      1,
			issuanceBank: "DBS",
			number:       "",
			expectedErr:  domain.ErrCardNumberEmpty,
		},
		{
			name:         "missing owner",
			ownerID:      0,
			issuanceBank: "DBS",
			number:       "4111-1111",
			expectedErr:  domain.ErrCardOwnerEmpty,
		},
		{
			name:         "negative owner",
			ownerID:      -1,
			issuanceBank: "DBS",
			number:       "4111-1111",
			expectedErr:  domain.ErrCardOwnerEmpty,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			card, err := domain.NewCreditCard(tc.ownerID, tc.issuanceBank, tc.number)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Nil(t, card)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.ownerID, card.OwnerID)
			assert.Equal(t, tc.issuanceBank, card.IssuanceBank)
			assert.Equal(t, tc.number, card.Number)
			assert.Zero(t, card.ID, "the store assigns IDs")
		})
	}
}
