// Package board implements the pure column re-arrangement algorithm used by
// the workspace service. It knows nothing about callers, persistence, or
// transport; it only rewrites an ordered column set.
package board

import (
	"errors"

	"workspace-board-api/internal/domain"
)

var (
	// ErrInvalidColumn reports a move referencing a column id outside the
	// board's fixed column set
	ErrInvalidColumn = errors.New("invalid column id")
	// ErrIndexOutOfRange reports a source index outside the source column
	ErrIndexOutOfRange = errors.New("card index out of range")
)

// Plan computes the column arrangement after moving the card at fromIndex of
// column fromID to position toIndex of column toID. The input is never
// modified; a fresh column set is returned.
//
// The destination index is clamped to the destination column's length rather
// than rejected: a concurrent edit by another client can legitimately shrink
// the destination between the caller reading the board and the move being
// applied, and appending is always a sane outcome of that race.
func Plan(columns []domain.Column, fromID, toID string, fromIndex, toIndex int) ([]domain.Column, error) {
	fromCol := indexOf(columns, fromID)
	toCol := indexOf(columns, toID)
	if fromCol < 0 || toCol < 0 {
		return nil, ErrInvalidColumn
	}

	if fromIndex < 0 || fromIndex >= len(columns[fromCol].Cards) {
		return nil, ErrIndexOutOfRange
	}

	// Self-move to the same slot is a no-op
	if fromID == toID && fromIndex == toIndex {
		return clone(columns), nil
	}

	next := clone(columns)

	card := next[fromCol].Cards[fromIndex]
	next[fromCol].Cards = append(next[fromCol].Cards[:fromIndex], next[fromCol].Cards[fromIndex+1:]...)

	insertAt := toIndex
	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(next[toCol].Cards) {
		insertAt = len(next[toCol].Cards)
	}

	dst := next[toCol].Cards
	dst = append(dst, domain.Card{})
	copy(dst[insertAt+1:], dst[insertAt:])
	dst[insertAt] = card
	next[toCol].Cards = dst

	return next, nil
}

func indexOf(columns []domain.Column, id string) int {
	for i := range columns {
		if columns[i].ID == id {
			return i
		}
	}
	return -1
}

// clone deep-copies the column set so Plan stays side-effect free
func clone(columns []domain.Column) []domain.Column {
	next := make([]domain.Column, len(columns))
	for i, col := range columns {
		cards := make([]domain.Card, len(col.Cards))
		copy(cards, col.Cards)
		next[i] = domain.Column{ID: col.ID, Title: col.Title, Cards: cards}
	}
	return next
}
