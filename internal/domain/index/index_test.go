package index

import "testing"

func TestTable_EachKeepsOrder(t *testing.T) {
	rows := map[string]map[string]float64{
		"3": {"a": 1},
		"1": {"b": 2},
		"2": {"c": 3},
	}
	tbl := NewTable([]string{"3", "1", "ghost", "2"}, rows)

	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}

	var got []string
	tbl.Each(func(id string, _ map[string]float64) { got = append(got, id) })
	want := []string{"3", "1", "2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Each order = %v, want %v", got, want)
		}
	}
}

func TestTable_Nil(t *testing.T) {
	var tbl *Table
	if tbl.Len() != 0 {
		t.Error("nil table should be empty")
	}
	if _, ok := tbl.Row("x"); ok {
		t.Error("nil table Row should be false")
	}
	tbl.Each(func(string, map[string]float64) { t.Error("nil table should not iterate") })
}

func TestIDF_UnknownTermIsZero(t *testing.T) {
	idf := IDF{"sum": 1.5}
	if idf.Weight("sum") != 1.5 {
		t.Errorf("Weight(sum) = %f", idf.Weight("sum"))
	}
	if idf.Weight("nope") != 0 {
		t.Errorf("Weight(nope) = %f, want 0", idf.Weight("nope"))
	}
}

func TestTable_TermsSorted(t *testing.T) {
	tbl := NewTable([]string{"1"}, map[string]map[string]float64{
		"1": {"tree": 1, "array": 2, "sum": 3},
	})
	got := tbl.Terms("1")
	want := []string{"array", "sum", "tree"}
	if len(got) != len(want) {
		t.Fatalf("Terms = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Terms = %v, want %v", got, want)
		}
	}
	if tbl.Terms("missing") != nil {
		t.Error("unknown id should have no terms")
	}
}
