package taxfolio

import "testing"

func TestMoney_String(t *testing.T) {
	// values stay exact internally, rounding happens at the presentation
	// boundary only.
	testCases := []struct {
		money Money
		want  string
	}{
		{M(198.6, "USD"), "$198.60"},
		{M(100.105, "USD"), "$100.11"},
		{M(-400, "USD"), "-$400.00"},
		{M(1500, "JPY"), "¥1,500"},
	}
	for _, tc := range testCases {
		if got := tc.money.String(); got != tc.want {
			t.Errorf("String(%s %s) = %q, want %q", tc.money.Amount(), tc.money.Currency(), got, tc.want)
		}
	}
}

func TestMoney_SignedString(t *testing.T) {
	if got := M(0, "USD").SignedString(); got != "-" {
		t.Errorf("zero = %q, want -", got)
	}
	if got := M(198.6, "USD").SignedString(); got != "+$198.60" {
		t.Errorf("positive = %q, want +$198.60", got)
	}
	if got := M(-400, "USD").SignedString(); got != "-$400.00" {
		t.Errorf("negative = %q, want -$400.00", got)
	}
}

func TestMoney_WeakCurrency(t *testing.T) {
	// the zero value has no currency and adopts the other operand's.
	var zero Money
	sum := zero.Add(M(10, "EUR"))
	if sum.Currency() != "EUR" {
		t.Errorf("currency = %q, want EUR", sum.Currency())
	}

	defer func() {
		if recover() == nil {
			t.Error("adding USD to EUR did not panic")
		}
	}()
	M(1, "USD").Add(M(1, "EUR"))
}

func TestMoney_DivPrice(t *testing.T) {
	// proceeds over pool value: the unit-less allocation ratio.
	ratio := M(600, "USD").DivPrice(M(1500, "USD"))
	if want := Q(0.4); !ratio.Equal(want) {
		t.Errorf("ratio = %s, want %s", ratio, want)
	}
}
