package deck

import (
	"errors"
	"testing"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "unicode suits",
			input: "5♠,5♣,5♦,J♥",
			expected: []Card{
				{Rank: Five, Suit: Spades},
				{Rank: Five, Suit: Clubs},
				{Rank: Five, Suit: Diamonds},
				{Rank: Jack, Suit: Hearts},
			},
		},
		{
			name:  "ascii with spaces",
			input: "AS 10h qd Kc",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: Ten, Suit: Hearts},
				{Rank: Queen, Suit: Diamonds},
				{Rank: King, Suit: Clubs},
			},
		},
		{
			name:     "ten as T",
			input:    "Ts",
			expected: []Card{{Rank: Ten, Suit: Spades}},
		},
		{
			name:    "invalid rank",
			input:   "1s",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "5x",
			wantErr: true,
		},
		{
			name:    "rank too high",
			input:   "11h",
			wantErr: true,
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCards() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCard) {
					t.Errorf("expected ErrInvalidCard, got %v", err)
				}
				return
			}
			if !cardsEqual(got, tt.expected) {
				t.Errorf("ParseCards() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewCardValidation(t *testing.T) {
	if _, err := NewCard(Rank(0), Spades); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("rank 0 should be rejected, got %v", err)
	}
	if _, err := NewCard(Rank(14), Spades); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("rank 14 should be rejected, got %v", err)
	}
	if _, err := NewCard(Ace, Suit(4)); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("suit 4 should be rejected, got %v", err)
	}
	card, err := NewCard(King, Clubs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.String() != "K♣" {
		t.Errorf("expected K♣, got %s", card)
	}
}

func TestCardValues(t *testing.T) {
	tests := []struct {
		rank    Rank
		value   int
		ordinal int
		str     string
	}{
		{Ace, 1, 1, "A"},
		{Two, 2, 2, "2"},
		{Nine, 9, 9, "9"},
		{Ten, 10, 10, "10"},
		{Jack, 10, 11, "J"},
		{Queen, 10, 12, "Q"},
		{King, 10, 13, "K"},
	}

	for _, tt := range tests {
		c := Card{Rank: tt.rank, Suit: Hearts}
		if c.Value() != tt.value {
			t.Errorf("%s: Value() = %d, want %d", c, c.Value(), tt.value)
		}
		if c.Ordinal() != tt.ordinal {
			t.Errorf("%s: Ordinal() = %d, want %d", c, c.Ordinal(), tt.ordinal)
		}
		if tt.rank.String() != tt.str {
			t.Errorf("Rank.String() = %q, want %q", tt.rank.String(), tt.str)
		}
	}
}

func TestMustParseCard(t *testing.T) {
	if c := MustParseCard("J♦"); c != (Card{Rank: Jack, Suit: Diamonds}) {
		t.Errorf("MustParseCard() = %v", c)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParseCard() should panic on invalid input")
		}
	}()
	MustParseCard("invalid")
}

func TestJoin(t *testing.T) {
	got := Join(MustParseCards("5s,10h,Jc"))
	if got != "5♠,10♥,J♣" {
		t.Errorf("Join() = %q", got)
	}
	if Join(nil) != "" {
		t.Error("Join(nil) should be empty")
	}
}

func cardsEqual(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
