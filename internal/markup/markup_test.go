package markup

import "testing"

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "hello world",
			want: "hello world",
		},
		{
			name: "bold",
			in:   "*bold*",
			want: "<strong>bold</strong>",
		},
		{
			name: "bold and italic with plain text between",
			in:   "*bold* and _ital_",
			want: "<strong>bold</strong> and <em>ital</em>",
		},
		{
			name: "italic and strikethrough",
			in:   "_ital_ and ~gone~",
			want: "<em>ital</em> and <del>gone</del>",
		},
		{
			name: "nested different delimiters",
			in:   "*bold _inner_ more*",
			want: "<strong>bold <em>inner</em> more</strong>",
		},
		{
			name: "unterminated delimiter stays literal",
			in:   "*unterminated",
			want: "*unterminated",
		},
		{
			name: "empty pair stays literal",
			in:   "**",
			want: "**",
		},
		{
			name: "monospace interior is literal",
			in:   "```*not bold*```",
			want: "<code>*not bold*</code>",
		},
		{
			name: "delimiter inside code does not close outer pair",
			in:   "*a ```b*c``` d*",
			want: "<strong>a <code>b*c</code> d</strong>",
		},
		{
			name: "html is escaped",
			in:   "<script>alert('x')</script>",
			want: "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;",
		},
		{
			name: "ampersand escaped",
			in:   "fish & chips",
			want: "fish &amp; chips",
		},
		{
			name: "existing entity left alone",
			in:   "fish &amp; chips",
			want: "fish &amp; chips",
		},
		{
			name: "numeric entity left alone",
			in:   "&#39; and &#x27;",
			want: "&#39; and &#x27;",
		},
		{
			name: "url autolinked",
			in:   "see https://example.com/a_b for more",
			want: `see <a href="https://example.com/a_b" target="_blank">https://example.com/a_b</a> for more`,
		},
		{
			name: "delimiters inside url are not formatting",
			in:   "https://example.com/x_y_z",
			want: `<a href="https://example.com/x_y_z" target="_blank">https://example.com/x_y_z</a>`,
		},
		{
			name: "multiline converts per line",
			in:   "*a*\nplain",
			want: "<strong>a</strong>\nplain",
		},
		{
			name: "bold around escaped text",
			in:   "*a < b*",
			want: "<strong>a &lt; b</strong>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(tt.in); got != tt.want {
				t.Errorf("Convert(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvertIdempotentOnPlainText(t *testing.T) {
	inputs := []string{
		"no formatting here",
		"fish & chips",
		"a < b > c",
	}
	for _, in := range inputs {
		once := Convert(in)
		twice := Convert(once)
		if once != twice {
			t.Errorf("Convert not idempotent on %q: %q then %q", in, once, twice)
		}
	}
}
