package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubmission_Valid(t *testing.T) {
	sub, err := ParseSubmission([]byte(`{"name":"Jane Doe","email":"jane@example.com","message":"Hello there"}`))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", sub.Name)
	assert.Equal(t, "jane@example.com", sub.Email)
	assert.Equal(t, "Hello there", sub.Message)
	assert.Empty(t, sub.Subject)
}

func TestParseSubmission_TrimsAndLowercases(t *testing.T) {
	sub, err := ParseSubmission([]byte(`{"name":"  Jane  ","email":" Jane@Example.COM ","message":" hi ","subject":" Hi "}`))
	require.NoError(t, err)

	assert.Equal(t, "Jane", sub.Name)
	assert.Equal(t, "jane@example.com", sub.Email)
	assert.Equal(t, "hi", sub.Message)
	assert.Equal(t, "Hi", sub.Subject)
}

func TestParseSubmission_FieldAliases(t *testing.T) {
	sub, err := ParseSubmission([]byte(`{"from_name":"Jane","from_email":"jane@example.com","message":"hi"}`))
	require.NoError(t, err)

	assert.Equal(t, "Jane", sub.Name)
	assert.Equal(t, "jane@example.com", sub.Email)
}

func TestParseSubmission_CanonicalFieldsWin(t *testing.T) {
	sub, err := ParseSubmission([]byte(`{"name":"Jane","from_name":"Other","email":"jane@example.com","message":"hi"}`))
	require.NoError(t, err)

	assert.Equal(t, "Jane", sub.Name)
}

func TestParseSubmission_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"no name", `{"email":"a@b.co","message":"hi"}`},
		{"no email", `{"name":"Jane","message":"hi"}`},
		{"no message", `{"name":"Jane","email":"a@b.co"}`},
		{"whitespace only", `{"name":"  ","email":"a@b.co","message":"hi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSubmission([]byte(tt.body))
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
}

func TestParseSubmission_InvalidEmail(t *testing.T) {
	tests := []string{
		"not-an-email",
		"missing@tld",
		"two@@example.com",
		"spaces in@example.com",
		"@example.com",
		"jane@",
	}

	for _, email := range tests {
		t.Run(email, func(t *testing.T) {
			_, err := ParseSubmission([]byte(`{"name":"Jane","email":"` + email + `","message":"hi"}`))
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
}

func TestParseSubmission_NonStringField(t *testing.T) {
	_, err := ParseSubmission([]byte(`{"name":42,"email":"a@b.co","message":"hi"}`))
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestParseSubmission_MalformedJSON(t *testing.T) {
	_, err := ParseSubmission([]byte(`{"name":`))
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}
