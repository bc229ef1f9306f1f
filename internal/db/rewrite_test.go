package db

import "testing"

func TestRewrite(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT id FROM expenses",
			want:  "SELECT id FROM expenses",
		},
		{
			name:  "single placeholder",
			query: "SELECT id FROM expenses WHERE id = ?",
			want:  "SELECT id FROM expenses WHERE id = $1",
		},
		{
			name:  "multiple placeholders numbered left to right",
			query: "INSERT INTO expenses (amount, owner) VALUES (?, ?)",
			want:  "INSERT INTO expenses (amount, owner) VALUES ($1, $2)",
		},
		{
			name:  "question mark inside string literal untouched",
			query: "SELECT * FROM expenses WHERE description = 'what?' AND owner = ?",
			want:  "SELECT * FROM expenses WHERE description = 'what?' AND owner = $1",
		},
		{
			name:  "escaped quote does not end the literal",
			query: "SELECT * FROM expenses WHERE description = 'it''s?' AND owner = ?",
			want:  "SELECT * FROM expenses WHERE description = 'it''s?' AND owner = $1",
		},
		{
			name:  "placeholders on both sides of a literal",
			query: "UPDATE expenses SET category = ?, description = 'a?b' WHERE id = ?",
			want:  "UPDATE expenses SET category = $1, description = 'a?b' WHERE id = $2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rewrite(tt.query); got != tt.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestIsInsert(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"INSERT INTO expenses (amount) VALUES (?)", true},
		{"  insert into categories (name) values (?)", true},
		{"\n\tInsert Into subcategories (name) VALUES (?)", true},
		{"UPDATE expenses SET amount = ?", false},
		{"DELETE FROM expenses WHERE id = ?", false},
		{"SELECT * FROM expenses", false},
	}

	for _, tt := range tests {
		if got := isInsert(tt.query); got != tt.want {
			t.Errorf("isInsert(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
