package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "ascii", in: "Ken Lee", want: "ken lee"},
		{name: "trim", in: "  KEN lee \t", want: "ken lee"},
		{name: "cjk untouched", in: " 大谷翔平 ", want: "大谷翔平"},
		{name: "non ascii letters", in: "ÖSTERBERG", want: "österberg"},
		{name: "decomposed accent", in: "Jose\u0301", want: "jos\u00e9"},
		{name: "empty", in: "   ", want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Name(tt.in))
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "Lions", Text("  Lions\n"))
}
