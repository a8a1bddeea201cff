package certificate_test

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"melodie/pkg/certificate"
)

var timestamp = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func demoData(creators int) certificate.Data {
	d := certificate.Data{
		Title:         "Demo",
		AssetFilename: "demo.wav",
		Hash:          strings.Repeat("ab", 32),
		Timestamp:     timestamp,
	}
	for i := 0; i < creators; i++ {
		d.Creators = append(d.Creators, certificate.Creator{
			Fullname: fmt.Sprintf("Creator %02d", i),
			Email:    fmt.Sprintf("creator%02d@example.com", i),
			Roles:    []string{"composer", "producer"},
			IPI:      "12345678993",
			ISNI:     "000000012281955X",
		})
	}
	return d
}

type CertificateSuite struct {
	suite.Suite
}

func TestCertificateSuite(t *testing.T) {
	suite.Run(t, new(CertificateSuite))
}

func (s *CertificateSuite) TestGenerateProducesPdf() {
	out, err := certificate.NewGenerator().Generate(demoData(1))
	s.Require().NoError(err)
	s.True(bytes.HasPrefix(out, []byte("%PDF-")), "output starts with a PDF header")
	s.Contains(string(out[:16]), "%PDF-1.7")
}

func (s *CertificateSuite) TestZeroTimestampRejected() {
	d := demoData(1)
	d.Timestamp = time.Time{}
	_, err := certificate.NewGenerator().Generate(d)
	s.Require().Error(err)
	s.True(certificate.HasKind(err, certificate.ErrInvalidTimestamp))
}

func (s *CertificateSuite) TestStrictModeRejectsUnsupportedGlyphs() {
	d := demoData(1)
	d.Title = "Demo 日本語"
	_, err := certificate.NewGenerator().Generate(d)
	s.Require().Error(err)
	s.True(certificate.HasKind(err, certificate.ErrUnsupportedField))
	var ce *certificate.Error
	s.Require().ErrorAs(err, &ce)
	s.Equal("title", ce.Field)
}

func (s *CertificateSuite) TestLenientModeSubstitutes() {
	d := demoData(1)
	d.Creators[0].Fullname = "Björk 日" // o-umlaut supported, kanji is not
	out, err := certificate.NewGenerator(certificate.WithLenientText()).Generate(d)
	s.Require().NoError(err)
	s.NotEmpty(out)
}

func (s *CertificateSuite) TestPaginationOverflow() {
	_, err := certificate.NewGenerator().Generate(demoData(6000))
	s.Require().Error(err)
	s.True(certificate.HasKind(err, certificate.ErrPaginationOverflow))
}

func (s *CertificateSuite) TestRolesJoinedSorted() {
	c := certificate.Creator{Roles: []string{"producer", "composer", "mixer"}}
	s.Equal("composer, mixer, producer", c.RolesJoined())

	c.Roles = []string{" producer", "producer", "composer "}
	s.Equal("composer, producer", c.RolesJoined())
}

func (s *CertificateSuite) TestDataEqual() {
	a, b := demoData(2), demoData(2)
	s.True(a.Equal(b))
	b.Creators[1].Email = "other@example.com"
	s.False(a.Equal(b))
}

// TestDeterministic covers the end-to-end scenario: three separate
// invocations over the same snapshot hash identically.
func TestDeterministic(t *testing.T) {
	gen := certificate.NewGenerator()
	data := demoData(1)

	first, err := gen.Generate(data)
	require.NoError(t, err)
	want := sha256.Sum256(first)

	for i := 0; i < 2; i++ {
		out, err := certificate.NewGenerator().Generate(demoData(1))
		require.NoError(t, err)
		assert.Equal(t, want, sha256.Sum256(out))
	}
}

// TestPagination covers the end-to-end scenario: forty creators spill onto
// a second page and both page headers carry the full page count.
func TestPagination(t *testing.T) {
	gen := certificate.NewGenerator()

	single, err := gen.Generate(demoData(1))
	require.NoError(t, err)

	forty, err := gen.Generate(demoData(40))
	require.NoError(t, err)

	// Compression is off, so page-indicator text is visible in the
	// content streams.
	assert.Contains(t, string(forty), "(1/2)")
	assert.Contains(t, string(forty), "(2/2)")
	assert.NotContains(t, string(single), "(1/2)")
	assert.Contains(t, string(single), "(1/1)")
	assert.Greater(t, len(forty), len(single))
}
