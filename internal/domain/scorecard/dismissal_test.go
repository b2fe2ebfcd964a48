package scorecard

import (
	"reflect"
	"testing"
)

func TestResolveDismissal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []Credit
	}{
		{
			name: "caught",
			text: "c sharma b kumar",
			want: []Credit{{Fielder: "sharma", Kind: CreditCatch}},
		},
		{
			name: "caught and bowled ampersand",
			text: "c & b bumrah",
			want: []Credit{{Fielder: "bumrah", Kind: CreditCatch}},
		},
		{
			name: "caught and bowled words",
			text: "c and b jadeja",
			want: []Credit{{Fielder: "jadeja", Kind: CreditCatch}},
		},
		{
			name: "stumped",
			text: "st verma b singh",
			want: []Credit{{Fielder: "verma", Kind: CreditStumping}},
		},
		{
			name: "stumped two word keeper",
			text: "st rishabh pant b kuldeep",
			want: []Credit{{Fielder: "rishabh pant", Kind: CreditStumping}},
		},
		{
			name: "run out shared",
			text: "run out (jadeja/dhoni)",
			want: []Credit{
				{Fielder: "jadeja", Kind: CreditRunOut},
				{Fielder: "dhoni", Kind: CreditRunOut},
			},
		},
		{
			name: "substitute catch",
			text: "c (sub)patel b shami",
			want: []Credit{{Fielder: "patel", Kind: CreditCatch}},
		},
		{name: "bowled", text: "b kumar", want: nil},
		{name: "lbw", text: "lbw b ashwin", want: nil},
		{name: "not out", text: "not out", want: nil},
		{name: "retired hurt", text: "retired hurt", want: nil},
		{name: "empty", text: "", want: nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ResolveDismissal(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("unexpected credits: got=%+v want=%+v", got, tc.want)
			}
		})
	}
}

func TestResolveDismissalCaughtAndBowledIsExclusive(t *testing.T) {
	t.Parallel()

	got := ResolveDismissal("c & b st john")
	if len(got) != 1 || got[0].Kind != CreditCatch {
		t.Fatalf("expected a single catch, got=%+v", got)
	}
}

func TestFieldingTallyAccumulatesPerFielder(t *testing.T) {
	t.Parallel()

	tally := NewFieldingTally("m1", 1, "Team B")
	tally.Add(ResolveDismissal("c sharma b kumar"))
	tally.Add(ResolveDismissal("run out (sharma/DHONI)"))
	tally.Add(ResolveDismissal("st dhoni b jadeja"))
	tally.Add(ResolveDismissal("b kumar"))

	got := tally.Credits()
	want := []FieldingCredit{
		{MatchID: "m1", Innings: 1, Team: "Team B", FielderName: "Sharma", Catches: 1, RunOuts: 1},
		{MatchID: "m1", Innings: 1, Team: "Team B", FielderName: "Dhoni", Stumpings: 1, RunOuts: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tally: got=%+v want=%+v", got, want)
	}
}

func TestNumericCoercion(t *testing.T) {
	t.Parallel()

	if got := ParseInt("45"); got != 45 {
		t.Fatalf("unexpected int: got=%d want=45", got)
	}
	if got := ParseInt("-"); got != 0 {
		t.Fatalf("unexpected int for dash: got=%d want=0", got)
	}
	if got := ParseFloat(" 3.4 "); got != 3.4 {
		t.Fatalf("unexpected float: got=%v want=3.4", got)
	}
	if got := ParseFloat("NaN"); got != 0 {
		t.Fatalf("unexpected float for NaN: got=%v want=0", got)
	}
}

func TestProperNameAndCleanDisplayName(t *testing.T) {
	t.Parallel()

	if got := ProperName("de VILLIERS"); got != "De Villiers" {
		t.Fatalf("unexpected proper name: got=%q", got)
	}
	if got := CleanDisplayName(" Harmanpreet Kaur (c) "); got != "Harmanpreet Kaur" {
		t.Fatalf("unexpected display name: got=%q", got)
	}
	if got := CleanDisplayName("Richa Ghosh (wk)"); got != "Richa Ghosh" {
		t.Fatalf("unexpected display name: got=%q", got)
	}
}

func TestInningsTeams(t *testing.T) {
	t.Parallel()

	teams := []string{"Mumbai", "Delhi"}
	if got := OpposingTeam(teams, 1); got != "Delhi" {
		t.Fatalf("unexpected opposing team: got=%q", got)
	}
	if got := OpposingTeam(teams, 2); got != "Mumbai" {
		t.Fatalf("unexpected opposing team: got=%q", got)
	}
	if got := TeamForInnings(teams[:1], 2); got != UnknownTeam {
		t.Fatalf("unexpected team for missing innings: got=%q", got)
	}
}
