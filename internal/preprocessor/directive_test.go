package preprocessor

import "testing"

func TestParseDirective(t *testing.T) {
	tests := []struct {
		line    string
		kind    directiveKind
		keyword string
		arg     string
	}{
		{"class A {}", kindContent, "", ""},
		{"#if UNITY\n", kindIf, "if", "UNITY"},
		{"  #if !UNITY // c\r\n", kindIf, "if", "!UNITY"},
		{"#else", kindElse, "else", ""},
		{"#endif // UNITY", kindEndif, "endif", ""},
		{"#pragma warning disable 0618", kindContent, "pragma", "warning disable 0618"},
		{"#region Public API", kindContent, "region", "Public API"},
		{"#endregion", kindContent, "endregion", ""},
		{"#elif X", kindUnknown, "elif", "X"},
		{"#ifdef X", kindUnknown, "ifdef", "X"},
		{"// #if X", kindContent, "", ""},
		{"#if!UNITY", kindIf, "if", "!UNITY"},
		{"#endif// UNITY", kindEndif, "endif", ""},
		{"#if_X", kindUnknown, "if_X", ""},
		{"#endif2", kindUnknown, "endif2", ""},
		{"#else:", kindUnknown, "else:", ""},
		{"#endif extra", kindEndif, "endif", "extra"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			d := parseDirective(tt.line)
			if d.kind != tt.kind {
				t.Errorf("kind = %v, want %v", d.kind, tt.kind)
			}
			if tt.kind != kindContent || tt.keyword != "" {
				if d.keyword != tt.keyword {
					t.Errorf("keyword = %q, want %q", d.keyword, tt.keyword)
				}
				if d.arg != tt.arg {
					t.Errorf("arg = %q, want %q", d.arg, tt.arg)
				}
			}
		})
	}
}

func TestParseCondition(t *testing.T) {
	tests := []struct {
		expr    string
		symbol  string
		negate  bool
		wantErr bool
	}{
		{"UNITY", "UNITY", false, false},
		{"!UNITY", "UNITY", true, false},
		{"! UNITY_2019_1", "UNITY_2019_1", true, false},
		{"_private", "_private", false, false},
		{"", "", false, true},
		{"!", "", false, true},
		{"A || B", "", false, true},
		{"(A)", "", false, true},
		{"!!A", "", false, true},
		{"2D", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			symbol, negate, err := parseCondition(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCondition(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
			if symbol != tt.symbol || negate != tt.negate {
				t.Errorf("parseCondition(%q) = (%q, %v), want (%q, %v)", tt.expr, symbol, negate, tt.symbol, tt.negate)
			}
		})
	}
}
