package registry

import (
	"testing"

	"github.com/goyibnazarovasliddin/letters-registery/models"

	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    models.LetterStatus
		to      models.LetterStatus
		wantErr bool
	}{
		{name: "draft stays draft", from: models.StatusDraft, to: models.StatusDraft},
		{name: "draft to registered", from: models.StatusDraft, to: models.StatusRegistered},
		{name: "registered stays registered", from: models.StatusRegistered, to: models.StatusRegistered},
		{name: "registered back to draft", from: models.StatusRegistered, to: models.StatusDraft, wantErr: true},
		{name: "unknown target", from: models.StatusDraft, to: "ARCHIVED", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Transition(tc.from, tc.to)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidState)
				return
			}
			require.NoError(t, err)
		})
	}
}
