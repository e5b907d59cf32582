package engine_test

import (
	"testing"

	"github.com/warp/sales-simulator/engine"
)

func flowOf(values map[int]string) engine.CashFlow {
	var cf engine.CashFlow
	for m, v := range values {
		cf[m] = dec(v)
	}
	return cf
}

func assertFlowsEqual(t *testing.T, want, got engine.CashFlow) {
	t.Helper()
	for m := range want {
		if !want[m].Equal(got[m]) {
			t.Errorf("month %d: expected %s, got %s", m, want[m], got[m])
		}
	}
}

func TestAggregate_Empty_IsZeros(t *testing.T) {
	got := engine.Aggregate()

	if len(got) != engine.Months {
		t.Fatalf("expected %d months, got %d", engine.Months, len(got))
	}
	for m, v := range got {
		if !v.IsZero() {
			t.Errorf("month %d: expected 0, got %s", m, v)
		}
	}
}

func TestAggregate_SumsMonthByMonth(t *testing.T) {
	a := flowOf(map[int]string{0: "100", 5: "10.5"})
	b := flowOf(map[int]string{0: "-40", 23: "7"})

	got := engine.Aggregate(a, b)

	assertDecimal(t, "60", got[0])
	assertDecimal(t, "10.5", got[5])
	assertDecimal(t, "7", got[23])
	assertDecimal(t, "77.5", got.Total())
}

func TestAggregate_Commutative(t *testing.T) {
	a := flowOf(map[int]string{1: "13500", 23: "190000.123"})
	b := flowOf(map[int]string{0: "5000", 1: "-2.5"})

	assertFlowsEqual(t, engine.Aggregate(a, b), engine.Aggregate(b, a))
}

func TestAggregate_Associative(t *testing.T) {
	a := flowOf(map[int]string{1: "0.1", 2: "0.2"})
	b := flowOf(map[int]string{1: "0.2", 3: "1e6"})
	c := flowOf(map[int]string{2: "-0.3", 23: "42"})

	left := engine.Aggregate(engine.Aggregate(a, b), c)
	right := engine.Aggregate(a, engine.Aggregate(b, c))

	assertFlowsEqual(t, left, right)
	assertFlowsEqual(t, left, engine.Aggregate(a, b, c))
}

func TestAggregate_DoesNotMutateInputs(t *testing.T) {
	a := flowOf(map[int]string{0: "1"})
	b := flowOf(map[int]string{0: "2"})

	_ = engine.Aggregate(a, b)

	assertDecimal(t, "1", a[0])
	assertDecimal(t, "2", b[0])
}
