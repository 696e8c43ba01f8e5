package domain_test

import (
	"testing"

	"handlescan/pkg/domain"

	"github.com/stretchr/testify/require"
)

func TestProvider_URL(t *testing.T) {
	tests := map[string]struct {
		template string
		want     string
	}{
		"identifier":     {"https://a.example/{identifier}", "https://a.example/jane"},
		"legacy":         {"https://a.example/u/{username}", "https://a.example/u/jane"},
		"repeated":       {"https://{identifier}.a.example/{identifier}", "https://jane.a.example/jane"},
		"no placeholder": {"https://a.example/profile", "https://a.example/profile"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := domain.Provider{Name: "A", URLTemplate: tt.template}
			require.Equal(t, tt.want, p.URL("jane"))
		})
	}
}

func TestProvider_HasPlaceholder(t *testing.T) {
	require.True(t, domain.Provider{URLTemplate: "https://a.example/{identifier}"}.HasPlaceholder())
	require.True(t, domain.Provider{URLTemplate: "https://a.example/{username}"}.HasPlaceholder())
	require.False(t, domain.Provider{URLTemplate: "https://a.example/profile"}.HasPlaceholder())
	require.False(t, domain.Provider{URLTemplate: "https://a.example/{user}"}.HasPlaceholder())
}
