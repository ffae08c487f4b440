package fields

import "testing"

func TestFold_StripsAccentsAndCase(t *testing.T) {
	cases := map[string]string{
		"Período":             "periodo",
		"  COMPETÊNCIA  ":     "competencia",
		"Nome do Funcionário": "nome do funcionario",
		"":                    "",
	}
	for in, want := range cases {
		if got := Fold(in); got != want {
			t.Fatalf("Fold(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLabel(t *testing.T) {
	cases := []struct {
		in   string
		want Field
	}{
		{"Funcionário:", Employee},
		{"Nome do Funcionário", Employee},
		{"Competência", Period},
		{"Assinatura", Signature},
		{"Data", Date},
		{"Previsto (h)", Predicted},
		{"Horas Realizadas", Realized},
		{"TOTAL", Total},
		{"Observações", None},
		{"", None},
	}
	for _, c := range cases {
		if got := Label(c.in); got != c.want {
			t.Fatalf("Label(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSplitLabel(t *testing.T) {
	f, v := SplitLabel("Funcionário:  Adriano  Costa de Souza Roque ")
	if f != Employee || v != "Adriano Costa de Souza Roque" {
		t.Fatalf("SplitLabel = %v %q", f, v)
	}
	if f, _ := SplitLabel("01/07/2025 08:00 08:00"); f != None {
		t.Fatalf("a day row must not read as a label, got %v", f)
	}
	if f, _ := SplitLabel("no colon here"); f != None {
		t.Fatalf("expected None, got %v", f)
	}
}

func TestMinutes(t *testing.T) {
	cases := map[string]string{
		"08:00":  "480",
		" 7:45 ": "465",
		"00:00":  "0",
		"24:00":  "1440",
		"480":    "480",
		"8:5":    "8:5",
		"08:75":  "08:75",
		"abc":    "abc",
		"":       "",
	}
	for in, want := range cases {
		if got := Minutes(in); got != want {
			t.Fatalf("Minutes(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSigned(t *testing.T) {
	for _, v := range []string{"____________", "", "Não", "pendente"} {
		if Signed(v) {
			t.Fatalf("Signed(%q) = true, want false", v)
		}
	}
	for _, v := range []string{"Breno Silva", "sim", "assinado"} {
		if !Signed(v) {
			t.Fatalf("Signed(%q) = false, want true", v)
		}
	}
}
