package doclet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/api/test", "/api/test"},
		{"/api/test{id}", "/api/test{id}"},
		{"/api/test/{id}", "/api/test/{id}"},
		{"/api/test/{id }", "/api/test/{id}"},
		{"/api/test/{id:}", "/api/test/{id}"},
		{"/api/test/{id : }", "/api/test/{id}"},
		{"/api/test/{id :}", "/api/test/{id}"},
		{"/api/test/{id:[0-9]+}", "/api/test/{id}"},
		{"/api/test/{id: [0-9]+}", "/api/test/{id}"},
		{`/api/{workspace: \w+}/{id: [0-9]+}`, "/api/{workspace}/{id}"},
		{`/api/{code: \d{3}}/x`, "/api/{code}/x"},
		{"/with space/{ id }", "/with space/{id}"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := SanitizePath(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, SanitizePath(got), "not idempotent")
		})
	}
}

func TestPathPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"taskId"}, PathPlaceholders("/api/{taskId: [0-9]+}"))
	assert.Equal(t, []string{"workspace", "id"}, PathPlaceholders(`/api/{workspace: \w+}/{ id }`))
	assert.Equal(t, []string{"code"}, PathPlaceholders(`/{code: \d{3}}`))
	assert.Empty(t, PathPlaceholders("/api/items"))
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		prefix, fragment, want string
	}{
		{"/items", "", "/items"},
		{"/items", "/", "/items"},
		{"/items", "{id}", "/items/{id}"},
		{"/items/", "/{id}", "/items/{id}"},
		{"", "", "/"},
		{"items", "sub/", "/items/sub"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, joinPath(tt.prefix, tt.fragment), "%q + %q", tt.prefix, tt.fragment)
	}
}
