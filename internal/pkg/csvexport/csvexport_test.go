package csvexport

import "testing"

func TestMarshal(t *testing.T) {
	out, err := Marshal(
		[]string{"date", "user"},
		[][]string{
			{"2024-05-01", "Asha"},
			{"2024-05-02", "Doe, John"},
		},
	)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := "date,user\n2024-05-01,Asha\n2024-05-02,\"Doe, John\"\n"
	if string(out) != want {
		t.Fatalf("Marshal() = %q, want %q", out, want)
	}
}

func TestMarshalColumnMismatch(t *testing.T) {
	if _, err := Marshal([]string{"a", "b"}, [][]string{{"only-one"}}); err == nil {
		t.Fatal("Marshal() expected an error for a short row")
	}
}
