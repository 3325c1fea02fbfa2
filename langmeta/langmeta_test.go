package langmeta

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{lang: "de", want: "Deutsch"},
		{lang: "pt-BR", want: "Português (Brasil)"},
		{lang: "pt_br", want: "Português (Brasil)"},
		{lang: "fr-CA", want: "Français"},
		{lang: "zz", want: "zz"},
		{lang: "zz-ZZ", want: "zz-ZZ"},
	}

	for _, tc := range tests {
		if got := Resolve(tc.lang).Name; got != tc.want {
			t.Fatalf("Resolve(%q).Name = %q, want %q", tc.lang, got, tc.want)
		}
	}
}
