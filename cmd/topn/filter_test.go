package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestFilterOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    filterOptions
		wantErr bool
	}{
		{"valid_defaults", filterOptions{count: 10}, false},
		{"count_zero", filterOptions{count: 0}, true},
		{"count_negative", filterOptions{count: -5}, true},
		{"field_negative", filterOptions{count: 3, field: -1}, true},
		{"field_positive", filterOptions{count: 3, field: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if tt.wantErr {
				var usageErr *usageError
				if !errors.As(err, &usageErr) {
					t.Fatalf("expected *usageError, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("validate() = %v, want nil", err)
			}
		})
	}
}

func TestFilterOptionsRank(t *testing.T) {
	tests := []struct {
		name    string
		opts    filterOptions
		line    string
		wantKey string
		wantNum float64
		wantOK  bool
	}{
		{"whole_line", filterOptions{count: 1}, "hello world", "hello world", 0, true},
		{"field_1", filterOptions{count: 1, field: 1}, "alpha beta", "alpha", 0, true},
		{"field_2", filterOptions{count: 1, field: 2}, "alpha beta", "beta", 0, true},
		{"field_missing", filterOptions{count: 1, field: 3}, "alpha beta", "", 0, false},
		{"field_empty_line", filterOptions{count: 1, field: 1}, "", "", 0, false},
		{"numeric", filterOptions{count: 1, numeric: true}, "42.5", "42.5", 42.5, true},
		{"numeric_field", filterOptions{count: 1, numeric: true, field: 2}, "req 17", "17", 17, true},
		{"numeric_invalid", filterOptions{count: 1, numeric: true}, "abc", "", 0, false},
		{"numeric_nan", filterOptions{count: 1, numeric: true}, "NaN", "", 0, false},
		{"numeric_negative", filterOptions{count: 1, numeric: true}, "-3", "-3", -3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.opts.rank(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("rank(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.key != tt.wantKey {
				t.Errorf("rank(%q) key = %q, want %q", tt.line, got.key, tt.wantKey)
			}
			if got.num != tt.wantNum {
				t.Errorf("rank(%q) num = %v, want %v", tt.line, got.num, tt.wantNum)
			}
			if got.raw != tt.line {
				t.Errorf("rank(%q) raw = %q, want original line", tt.line, got.raw)
			}
		})
	}
}

func TestFilterOptionsCompare(t *testing.T) {
	a := rankedLine{key: "apple", num: 1}
	b := rankedLine{key: "banana", num: 2}

	lex := filterOptions{count: 1}
	if lex.compare(a, b) >= 0 {
		t.Error("lexicographic: apple should rank below banana")
	}

	num := filterOptions{count: 1, numeric: true}
	if num.compare(b, a) <= 0 {
		t.Error("numeric: 2 should rank above 1")
	}

	small := filterOptions{count: 1, numeric: true, smallest: true}
	if small.compare(a, b) <= 0 {
		t.Error("smallest: 1 should rank above 2 when inverted")
	}
}

func runCmdFilter(t *testing.T, opts filterOptions, paths []string, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := cmdFilter(context.Background(), opts, paths, strings.NewReader(input), &out)
	return out.String(), err
}

func TestCmdFilter(t *testing.T) {
	t.Run("lexicographic_largest", func(t *testing.T) {
		got, err := runCmdFilter(t, filterOptions{count: 2}, nil, "banana\ncherry\napple\n")
		if err != nil {
			t.Fatalf("cmdFilter() error: %v", err)
		}
		want := "cherry\nbanana\n"
		if got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("numeric_field", func(t *testing.T) {
		input := "a 3\nb 12\nc 7\nd 1\n"
		got, err := runCmdFilter(t, filterOptions{count: 2, field: 2, numeric: true}, nil, input)
		if err != nil {
			t.Fatalf("cmdFilter() error: %v", err)
		}
		want := "b 12\nc 7\n"
		if got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("smallest", func(t *testing.T) {
		got, err := runCmdFilter(t, filterOptions{count: 2, numeric: true, smallest: true}, nil, "30\n10\n20\n")
		if err != nil {
			t.Fatalf("cmdFilter() error: %v", err)
		}
		want := "10\n20\n"
		if got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("fewer_lines_than_count", func(t *testing.T) {
		got, err := runCmdFilter(t, filterOptions{count: 10}, nil, "b\na\n")
		if err != nil {
			t.Fatalf("cmdFilter() error: %v", err)
		}
		want := "b\na\n"
		if got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("skipped_lines_excluded", func(t *testing.T) {
		input := "a 5\nmalformed\nb 9\n"
		got, err := runCmdFilter(t, filterOptions{count: 3, field: 2, numeric: true}, nil, input)
		if err != nil {
			t.Fatalf("cmdFilter() error: %v", err)
		}
		want := "b 9\na 5\n"
		if got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("invalid_count", func(t *testing.T) {
		_, err := runCmdFilter(t, filterOptions{count: 0}, nil, "a\n")
		var usageErr *usageError
		if !errors.As(err, &usageErr) {
			t.Fatalf("expected *usageError, got %T: %v", err, err)
		}
	})

	t.Run("file_input", func(t *testing.T) {
		dir := t.TempDir()
		p1 := filepath.Join(dir, "a.txt")
		p2 := filepath.Join(dir, "b.txt")
		if err := os.WriteFile(p1, []byte("3\n1\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p2, []byte("9\n4\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		got, err := runCmdFilter(t, filterOptions{count: 2, numeric: true}, []string{p1, p2}, "")
		if err != nil {
			t.Fatalf("cmdFilter() error: %v", err)
		}
		want := "9\n4\n"
		if got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := runCmdFilter(t, filterOptions{count: 2}, []string{"/nonexistent/topn-test"}, "")
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			t.Error("missing file is a runtime error, not a usage error")
		}
	})

	t.Run("canceled_context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var out bytes.Buffer
		err := cmdFilter(ctx, filterOptions{count: 2}, nil, strings.NewReader("a\nb\n"), &out)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestLineSelectorModes(t *testing.T) {
	// 默认模式走自然序路径，其余模式走比较函数路径，结果语义一致
	natural := newLineSelector(filterOptions{count: 2})
	ranked := newLineSelector(filterOptions{count: 2, field: 1})
	for _, line := range []string{"b", "d", "a", "c"} {
		natural.Add(line)
		ranked.Add(line)
	}
	if natural.natural == nil || ranked.ranked == nil {
		t.Fatal("selector strategy wiring is wrong")
	}
	if !slices.Equal(natural.Result(), ranked.Result()) {
		t.Error("natural and comparator paths diverged on equivalent input")
	}
}

func TestIsCLIUsageError(t *testing.T) {
	if !isCLIUsageError(errors.New("flag provided but not defined: -bogus")) {
		t.Error("flag parse error not recognized as usage error")
	}
	if isCLIUsageError(errors.New("open /tmp/x: no such file or directory")) {
		t.Error("runtime error misclassified as usage error")
	}
}

func TestUsageError(t *testing.T) {
	err := &usageError{msg: "test error"}
	if err.Error() != "test error" {
		t.Errorf("usageError.Error() = %q, want %q", err.Error(), "test error")
	}
	var target *usageError
	if !errors.As(error(err), &target) {
		t.Error("errors.As failed for *usageError")
	}
}
