package board

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workspace-board-api/internal/domain"
)

func testColumns() []domain.Column {
	return []domain.Column{
		{ID: "to-read", Title: "To Read", Cards: []domain.Card{
			{ID: "card-1", BookID: "book-1", Title: "First"},
			{ID: "card-2", BookID: "book-2", Title: "Second"},
			{ID: "card-3", BookID: "book-3", Title: "Third"},
		}},
		{ID: "reading", Title: "Reading", Cards: []domain.Card{
			{ID: "card-4", BookID: "book-4", Title: "Fourth"},
		}},
		{ID: "cited", Title: "Cited", Cards: []domain.Card{}},
	}
}

func TestPlan_MoveBetweenColumns(t *testing.T) {
	columns := testColumns()

	next, err := Plan(columns, "to-read", "reading", 0, 1)
	require.NoError(t, err)

	assert.Len(t, next[0].Cards, 2)
	assert.Len(t, next[1].Cards, 2)
	assert.Equal(t, "card-4", next[1].Cards[0].ID)
	assert.Equal(t, "card-1", next[1].Cards[1].ID)
	assert.Equal(t, "card-2", next[0].Cards[0].ID)
}

func TestPlan_MoveWithinColumn(t *testing.T) {
	columns := testColumns()

	next, err := Plan(columns, "to-read", "to-read", 0, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"card-2", "card-3", "card-1"}, cardIDs(next[0]))
}

func TestPlan_MoveToEmptyColumn(t *testing.T) {
	columns := testColumns()

	next, err := Plan(columns, "reading", "cited", 0, 0)
	require.NoError(t, err)

	assert.Empty(t, next[1].Cards)
	assert.Equal(t, "card-4", next[2].Cards[0].ID)
}

func TestPlan_ClampsDestinationIndex(t *testing.T) {
	columns := testColumns()

	// Destination index far past the end appends
	next, err := Plan(columns, "to-read", "reading", 1, 99)
	require.NoError(t, err)
	assert.Equal(t, "card-2", next[1].Cards[len(next[1].Cards)-1].ID)

	// Negative destination index prepends
	next, err = Plan(columns, "to-read", "reading", 1, -5)
	require.NoError(t, err)
	assert.Equal(t, "card-2", next[1].Cards[0].ID)
}

func TestPlan_SelfMoveSameSlotIsNoOp(t *testing.T) {
	columns := testColumns()

	next, err := Plan(columns, "to-read", "to-read", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, cardIDs(columns[0]), cardIDs(next[0]))
}

func TestPlan_UnknownColumn(t *testing.T) {
	columns := testColumns()

	_, err := Plan(columns, "missing", "reading", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidColumn)

	_, err = Plan(columns, "to-read", "missing", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestPlan_SourceIndexOutOfRange(t *testing.T) {
	columns := testColumns()

	_, err := Plan(columns, "to-read", "reading", 3, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = Plan(columns, "to-read", "reading", -1, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = Plan(columns, "cited", "reading", 0, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestPlan_DoesNotMutateInput(t *testing.T) {
	columns := testColumns()
	before := cardIDs(columns[0])

	_, err := Plan(columns, "to-read", "reading", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, before, cardIDs(columns[0]))
}

// Every accepted move preserves the multiset of cards: nothing is lost,
// nothing is duplicated, regardless of indices chosen.
func TestProperty_MoveConservesCards(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	columnIDs := []string{"to-read", "reading", "cited"}

	properties.Property("moves conserve the card multiset", prop.ForAll(
		func(sizes []int, fromCol, toCol, fromIndex, toIndex int) bool {
			columns := make([]domain.Column, len(columnIDs))
			total := 0
			for i, id := range columnIDs {
				n := sizes[i]
				cards := make([]domain.Card, n)
				for j := 0; j < n; j++ {
					total++
					cards[j] = domain.Card{
						ID:     fmt.Sprintf("card-%d-%d", i, j),
						BookID: fmt.Sprintf("book-%d-%d", i, j),
					}
				}
				columns[i] = domain.Column{ID: id, Cards: cards}
			}

			next, err := Plan(columns, columnIDs[fromCol%3], columnIDs[toCol%3], fromIndex, toIndex)
			if err != nil {
				// Rejection is fine; conservation only applies to accepted moves
				return err == ErrIndexOutOfRange || err == ErrInvalidColumn
			}

			seen := make(map[string]int)
			count := 0
			for _, col := range next {
				for _, card := range col.Cards {
					seen[card.ID]++
					count++
				}
			}
			if count != total {
				return false
			}
			for _, n := range seen {
				if n != 1 {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(3, gen.IntRange(0, 8)),
		gen.IntRange(0, 2),
		gen.IntRange(0, 2),
		gen.IntRange(-2, 10),
		gen.IntRange(-2, 10),
	))

	properties.TestingRun(t)
}

// Any in-range source index with any destination index is accepted: the
// destination is clamped, never rejected.
func TestProperty_DestinationIndexNeverRejected(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("in-range source with any destination succeeds", prop.ForAll(
		func(toIndex int) bool {
			columns := testColumns()
			next, err := Plan(columns, "to-read", "reading", 0, toIndex)
			if err != nil {
				return false
			}
			pos := toIndex
			if pos < 0 {
				pos = 0
			}
			if pos > 1 {
				pos = 1
			}
			return next[1].Cards[pos].ID == "card-1"
		},
		gen.IntRange(-100, 100),
	))

	properties.TestingRun(t)
}

func cardIDs(col domain.Column) []string {
	ids := make([]string, len(col.Cards))
	for i, card := range col.Cards {
		ids[i] = card.ID
	}
	return ids
}
