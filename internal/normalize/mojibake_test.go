package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairMojibake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii unchanged", "see you at 8pm!", "see you at 8pm!"},
		{"double encoded accent", "hÃ©llo", "héllo"},
		{"double encoded emoji", "good night ð\u009f\u0098\u0098", "good night 😘"},
		{"already decoded accent", "héllo world", "[decodingError] world"},
		{"outside latin1", "hi 你好 there", "hi [decodingError] there"},
		{"collapses whitespace", "  a \t b\n\nc  ", "a b c"},
		{"empty", "", ""},
		{"whitespace only", " \n ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RepairMojibake(tt.in))
		})
	}
}

func TestRepairMojibake_CountsFailures(t *testing.T) {
	out, failures := repairMojibake("ok 你 fine 好")
	assert.Equal(t, "ok [decodingError] fine [decodingError]", out)
	assert.Equal(t, 2, failures)
}

func TestRepairMojibake_IdempotentOnASCII(t *testing.T) {
	in := "lunch tomorrow? (12:30) #yes"
	once := RepairMojibake(in)
	assert.Equal(t, in, once)
	assert.Equal(t, once, RepairMojibake(once))
}
