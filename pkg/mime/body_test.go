package mime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFields(boundary string) []Field {
	return []Field{{Name: "Content-Type", Values: []string{"multipart/mixed; boundary=" + boundary}}}
}

func TestSetBody_SplitAndJoin(t *testing.T) {
	body := "--XYZ\r\nP1\r\n--XYZ\r\nP2\r\n--XYZ--\r\n"

	e, err := New(multipartFields("XYZ"), body)
	require.NoError(t, err)

	require.Equal(t, 2, e.PartCount())
	assert.Equal(t, "P1", e.Part(0).String())
	assert.Equal(t, "P2", e.Part(1).String())
	assert.Equal(t, body, e.Body())
}

func TestSetBody_DropsPreambleAndEpilogue(t *testing.T) {
	body := "This is a preamble\r\n--XYZ\r\nP1\r\n--XYZ--\r\nepilogue"

	e, err := New(multipartFields("XYZ"), body)
	require.NoError(t, err)

	require.Equal(t, 1, e.PartCount())
	assert.Equal(t, "P1", e.Part(0).String())
	assert.Equal(t, "--XYZ\r\nP1\r\n--XYZ--\r\n", e.Body())
}

func TestSetBody_StripsOneLineBreakOnly(t *testing.T) {
	body := "--XYZ\r\n\r\npayload\r\n\r\n\r\n--XYZ--\r\n"

	e, err := New(multipartFields("XYZ"), body)
	require.NoError(t, err)

	require.Equal(t, 1, e.PartCount())
	part := e.Part(0)
	assert.Equal(t, "\r\npayload\r\n\r\n", part.String())
	// The leading blank line means the part has no headers
	assert.Equal(t, 0, part.Header().Len())
	assert.Equal(t, "payload\r\n\r\n", part.Body())
}

func TestSetBody_BareLineFeeds(t *testing.T) {
	e, err := New(multipartFields("XYZ"), "--XYZ\nP1\n--XYZ\nP2\n--XYZ--\n")
	require.NoError(t, err)

	require.Equal(t, 2, e.PartCount())
	assert.Equal(t, "P1", e.Part(0).String())
	assert.Equal(t, "P2", e.Part(1).String())
}

func TestSetBody_NoBoundary(t *testing.T) {
	e, err := New([]Field{{Name: "Content-Type", Values: []string{"text/plain"}}}, "--XYZ\r\nP1\r\n--XYZ--\r\n")
	require.NoError(t, err)

	assert.Equal(t, 0, e.PartCount())
	assert.Equal(t, "--XYZ\r\nP1\r\n--XYZ--\r\n", e.Body())
}

func TestSetBody_BoundaryNotInBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"absent", "no delimiters at all"},
		{"single delimiter", "--XYZ\r\nP1\r\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(multipartFields("XYZ"), tt.body)
			require.NoError(t, err)

			assert.Equal(t, 0, e.PartCount())
			assert.Equal(t, "", e.Body())
		})
	}
}

func TestSetBody_NestedMultipart(t *testing.T) {
	inner := "Content-Type: multipart/mixed; boundary=inner\r\n" +
		"\r\n" +
		"--inner\r\nA\r\n--inner\r\nB\r\n--inner--\r\n"
	body := "--outer\r\n" + inner + "\r\n--outer\r\nC\r\n--outer--\r\n"

	e, err := New(multipartFields("outer"), body)
	require.NoError(t, err)

	require.Equal(t, 2, e.PartCount())
	nested := e.Part(0)
	require.Equal(t, 2, nested.PartCount())
	assert.Equal(t, "A", nested.Part(0).String())
	assert.Equal(t, "B", nested.Part(1).String())
	assert.Equal(t, inner, nested.String())
	assert.Equal(t, body, e.Body())
}

func TestSetBody_AppendsToExistingParts(t *testing.T) {
	e, err := New(multipartFields("XYZ"), "--XYZ\r\nP1\r\n--XYZ--\r\n")
	require.NoError(t, err)

	require.NoError(t, e.SetBody("--XYZ\r\nP2\r\n--XYZ--\r\n"))

	require.Equal(t, 2, e.PartCount())
	assert.Equal(t, "P2", e.Part(1).String())
}

func TestBody_PartsWithoutBoundary(t *testing.T) {
	e, err := New(nil, "opaque")
	require.NoError(t, err)
	require.NoError(t, e.AddRawPart("P1"))

	assert.Equal(t, 1, e.PartCount())
	assert.Equal(t, "opaque", e.Body())
}

func TestRemovePart_LeavesGap(t *testing.T) {
	e, err := New(multipartFields("XYZ"), "--XYZ\r\nP1\r\n--XYZ\r\nP2\r\n--XYZ\r\nP3\r\n--XYZ--\r\n")
	require.NoError(t, err)

	assert.True(t, e.RemovePart(1))
	assert.False(t, e.RemovePart(1))
	assert.False(t, e.RemovePart(7))
	assert.False(t, e.RemovePart(-1))

	assert.Equal(t, 2, e.PartCount())
	assert.Nil(t, e.Part(1))
	assert.Equal(t, "P3", e.Part(2).String())
	assert.Equal(t, "--XYZ\r\nP1\r\n--XYZ\r\nP3\r\n--XYZ--\r\n", e.Body())

	// New parts go after the gap
	require.NoError(t, e.AddRawPart("P4"))
	assert.Nil(t, e.Part(1))
	assert.Equal(t, "P4", e.Part(3).String())
	assert.Len(t, e.Parts(), 3)
}

func TestAddPart_Order(t *testing.T) {
	e, err := New(multipartFields("XYZ"), "")
	require.NoError(t, err)

	first, err := New(nil, "first")
	require.NoError(t, err)
	second, err := FromText("second", true)
	require.NoError(t, err)

	e.SetParts(first, second)
	e.AddPart(nil)

	require.Equal(t, 2, e.PartCount())
	assert.Equal(t, "--XYZ\r\n\r\nfirst\r\n--XYZ\r\nsecond\r\n--XYZ--\r\n", e.Body())
}

func TestTrimLineBreaks(t *testing.T) {
	tests := map[string]string{
		"\r\nabc\r\n":         "abc",
		"\nabc\n":             "abc",
		"\r\n\r\nabc\r\n\r\n": "\r\nabc\r\n",
		"abc":                 "abc",
		"":                    "",
		"\r\n":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, trimLineBreaks(in), "input %q", in)
	}
}
