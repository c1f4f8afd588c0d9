package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Visibility
		action  func(*Cell) error
		want    Visibility
		wantErr error
	}{
		{name: "flag hidden", from: Hidden, action: (*Cell).toggleFlag, want: Flagged},
		{name: "unflag", from: Flagged, action: (*Cell).toggleFlag, want: Hidden},
		{name: "flag questioned", from: Questioned, action: (*Cell).toggleFlag, want: Flagged},
		{name: "flag revealed", from: Revealed, action: (*Cell).toggleFlag, want: Revealed, wantErr: ErrIllegalOperation},
		{name: "question hidden", from: Hidden, action: (*Cell).toggleQuestion, want: Questioned},
		{name: "question flagged", from: Flagged, action: (*Cell).toggleQuestion, want: Questioned},
		{name: "unquestion", from: Questioned, action: (*Cell).toggleQuestion, want: Hidden},
		{name: "question revealed", from: Revealed, action: (*Cell).toggleQuestion, want: Revealed, wantErr: ErrIllegalOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := &Cell{Visibility: tt.from}

			err := tt.action(cell)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.want, cell.Visibility)
		})
	}
}

func TestCell_Reveal(t *testing.T) {
	tests := []struct {
		name        string
		from        Visibility
		wantChanged bool
		wantErr     bool
	}{
		{name: "hidden", from: Hidden, wantChanged: true},
		{name: "revealed", from: Revealed},
		{name: "flagged", from: Flagged, wantErr: true},
		{name: "questioned", from: Questioned, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := &Cell{Visibility: tt.from}

			changed, err := cell.reveal()
			assert.Equal(t, tt.wantChanged, changed)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIllegalOperation)
				assert.Equal(t, tt.from, cell.Visibility)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, Revealed, cell.Visibility)
		})
	}
}
