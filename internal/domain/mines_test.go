package domain_test

import (
	"errors"
	"testing"

	"github.com/doeshing/minebot/internal/domain"
)

func TestSafeCellQuota(t *testing.T) {
	for m := domain.MinMines; m <= domain.MaxMines; m++ {
		want := 2
		switch {
		case m <= 3:
			want = 4
		case m <= 6:
			want = 3
		}
		if got := domain.SafeCellQuota(domain.MineCount(m)); got != want {
			t.Errorf("SafeCellQuota(%d) = %d, want %d", m, got, want)
		}
	}
}

// TestParseMineCount tests validation of the /predict argument
func TestParseMineCount(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    domain.MineCount
		wantErr error
		wantMsg string
	}{
		{name: "lower bound", arg: "1", want: 1},
		{name: "upper bound", arg: "24", want: 24},
		{name: "surrounding spaces", arg: " 7 ", want: 7},
		{name: "empty", arg: "", wantErr: domain.ErrInvalidMineCount, wantMsg: domain.MsgInvalidMineCount},
		{name: "not a number", arg: "abc", wantErr: domain.ErrInvalidMineCount, wantMsg: domain.MsgInvalidMineCount},
		{name: "fraction truncates", arg: "3.5", want: 3},
		{name: "exponent keeps leading digits", arg: "1e1", want: 1},
		{name: "explicit plus", arg: "+5", want: 5},
		{name: "trailing text", arg: "3abc", wantErr: domain.ErrInvalidMineCount, wantMsg: domain.MsgInvalidMineCount},
		{name: "leading dot", arg: ".5", wantErr: domain.ErrInvalidMineCount, wantMsg: domain.MsgInvalidMineCount},
		{name: "nan", arg: "NaN", wantErr: domain.ErrInvalidMineCount, wantMsg: domain.MsgInvalidMineCount},
		{name: "infinity", arg: "Inf", wantErr: domain.ErrInvalidMineCount, wantMsg: domain.MsgInvalidMineCount},
		{name: "fraction below range", arg: "0.9", wantErr: domain.ErrMineCountOutOfRange, wantMsg: domain.MsgMineCountOutOfRange},
		{name: "huge", arg: "99999999999999999999", wantErr: domain.ErrMineCountOutOfRange, wantMsg: domain.MsgMineCountOutOfRange},
		{name: "zero", arg: "0", wantErr: domain.ErrMineCountOutOfRange, wantMsg: domain.MsgMineCountOutOfRange},
		{name: "twenty five", arg: "25", wantErr: domain.ErrMineCountOutOfRange, wantMsg: domain.MsgMineCountOutOfRange},
		{name: "negative", arg: "-3", wantErr: domain.ErrMineCountOutOfRange, wantMsg: domain.MsgMineCountOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseMineCount(tt.arg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseMineCount(%q) error = %v, want %v", tt.arg, err, tt.wantErr)
				}
				var verr *domain.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
				if verr.Message != tt.wantMsg {
					t.Errorf("message = %q, want %q", verr.Message, tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseMineCount(%q) = %d, want %d", tt.arg, got, tt.want)
			}
		})
	}
}

func TestRowCol(t *testing.T) {
	row, col := domain.RowCol(13)
	if row != 2 || col != 3 {
		t.Fatalf("RowCol(13) = (%d, %d), want (2, 3)", row, col)
	}
}
