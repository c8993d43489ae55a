package cdsco_test

import (
	"net/url"
	"testing"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRef_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid reference", func(t *testing.T) {
		t.Parallel()

		ref := &cdsco.DocumentRef{ID: "42", URL: "https://example.com/doc.pdf"}
		assert.NoError(t, ref.Validate())
	})

	t.Run("missing ID", func(t *testing.T) {
		t.Parallel()

		ref := &cdsco.DocumentRef{URL: "https://example.com/doc.pdf"}
		err := ref.Validate()
		require.Error(t, err)
		assert.Equal(t, cdsco.EINVALID, cdsco.ErrorCode(err))
	})

	t.Run("missing URL", func(t *testing.T) {
		t.Parallel()

		ref := &cdsco.DocumentRef{ID: "42"}
		err := ref.Validate()
		require.Error(t, err)
		assert.Equal(t, cdsco.EINVALID, cdsco.ErrorCode(err))
	})
}

func TestDocumentRef_Label(t *testing.T) {
	t.Parallel()

	t.Run("prefers title", func(t *testing.T) {
		t.Parallel()

		ref := &cdsco.DocumentRef{URL: "https://example.com/a.pdf", Title: "Committee Minutes"}
		assert.Equal(t, "Committee Minutes", ref.Label())
	})

	t.Run("falls back to final path segment", func(t *testing.T) {
		t.Parallel()

		ref := &cdsco.DocumentRef{URL: "https://example.com/notices/a.pdf"}
		assert.Equal(t, "a.pdf", ref.Label())
	})
}

func TestDirectPolicy_Classify(t *testing.T) {
	t.Parallel()

	base := mustParseURL(t, "https://example.com/notices/")
	policy := &cdsco.DirectPolicy{Extension: ".pdf"}

	t.Run("resolves relative href against listing page", func(t *testing.T) {
		t.Parallel()

		ref, ok := policy.Classify(base, "reports/a.pdf", "Report A")
		require.True(t, ok)
		assert.Equal(t, "https://example.com/notices/reports/a.pdf", ref.URL)
		assert.Equal(t, ref.URL, ref.ID)
		assert.Equal(t, "Report A", ref.Title)
	})

	t.Run("extension match is case-insensitive", func(t *testing.T) {
		t.Parallel()

		ref, ok := policy.Classify(base, "/files/B.PDF", "")
		require.True(t, ok)
		assert.Equal(t, "https://example.com/files/B.PDF", ref.URL)
	})

	t.Run("ignores non-matching extension", func(t *testing.T) {
		t.Parallel()

		_, ok := policy.Classify(base, "page.html", "")
		assert.False(t, ok)
	})

	t.Run("ignores query-only match", func(t *testing.T) {
		t.Parallel()

		// The extension must be part of the path, not the query.
		_, ok := policy.Classify(base, "/download?file=a.pdf", "")
		assert.False(t, ok)
	})

	t.Run("strips fragment from identity", func(t *testing.T) {
		t.Parallel()

		ref, ok := policy.Classify(base, "a.pdf#page=2", "")
		require.True(t, ok)
		assert.Equal(t, "https://example.com/notices/a.pdf", ref.ID)
	})
}

func TestIndirectPolicy_Classify(t *testing.T) {
	t.Parallel()

	base := mustParseURL(t, "https://cdsco.gov.in/opencms/opencms/en/Committees/SEC/")
	policy := &cdsco.IndirectPolicy{
		Marker:   "common_download.jsp",
		IDParam:  "num_id_pk",
		Endpoint: "https://cdsco.gov.in/opencms/opencms/system/modules/CDSCO.WEB/elements/common_download.jsp",
	}

	t.Run("extracts identifier and synthesizes download URL", func(t *testing.T) {
		t.Parallel()

		ref, ok := policy.Classify(base, "/opencms/resources/common_download.jsp?num_id_pk=123", "  SEC Minutes  ")
		require.True(t, ok)
		assert.Equal(t, "123", ref.ID)
		assert.Equal(t, policy.Endpoint+"?num_id_pk=123", ref.URL)
		assert.Equal(t, "SEC Minutes", ref.Title)
	})

	t.Run("skips href without marker", func(t *testing.T) {
		t.Parallel()

		_, ok := policy.Classify(base, "/opencms/en/Home/", "Home")
		assert.False(t, ok)
	})

	t.Run("skips missing identifier parameter", func(t *testing.T) {
		t.Parallel()

		_, ok := policy.Classify(base, "/resources/common_download.jsp?other=1", "")
		assert.False(t, ok)
	})

	t.Run("skips malformed href", func(t *testing.T) {
		t.Parallel()

		_, ok := policy.Classify(base, "common_download.jsp?num_id_pk=%zz", "")
		assert.False(t, ok)
	})
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
