package work_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"melodie/pkg/midds"
	"melodie/pkg/midds/work"
)

// ref keeps year bounds stable regardless of when the tests run.
var ref = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func validWork() work.MusicalWork {
	return work.NewBuilder("T-012345678-9", "Hello", 2020).
		Creator(1, midds.RoleComposer, 1000).
		Build()
}

type WorkSuite struct {
	suite.Suite
}

func TestWorkSuite(t *testing.T) {
	suite.Run(t, new(WorkSuite))
}

func (s *WorkSuite) TestValidate() {
	s.Run("valid work passes", func() {
		s.Require().NoError(validWork().Validate(ref))
	})

	s.Run("title of exactly 256 bytes accepted", func() {
		w := validWork()
		w.Title = strings.Repeat("a", 256)
		s.Require().NoError(w.Validate(ref))
	})

	s.Run("title of 257 bytes rejected", func() {
		w := validWork()
		w.Title = strings.Repeat("a", 257)
		err := w.Validate(ref)
		s.Require().Error(err)
		s.True(work.HasKind(err, work.ErrInvalidTitle))
	})

	s.Run("empty title rejected", func() {
		w := validWork()
		w.Title = ""
		err := w.Validate(ref)
		s.Require().Error(err)
		s.True(work.HasKind(err, work.ErrInvalidTitle))
	})

	s.Run("year bounds follow the reference time", func() {
		w := validWork()
		w.CreationYear = 2025 // ref year + 1
		s.Require().NoError(w.Validate(ref))

		w.CreationYear = 2026
		s.True(work.HasKind(w.Validate(ref), work.ErrInvalidYear))

		w.CreationYear = 1899
		s.True(work.HasKind(w.Validate(ref), work.ErrInvalidYear))
	})

	s.Run("bpm and voices ranges", func() {
		w := validWork()
		bpm := uint16(19)
		w.Bpm = &bpm
		s.True(work.HasKind(w.Validate(ref), work.ErrInvalidBpm))

		bpm = 400
		s.Require().NoError(w.Validate(ref))

		voices := uint16(65)
		w.Voices = &voices
		s.True(work.HasKind(w.Validate(ref), work.ErrInvalidVoices))
	})

	s.Run("iswc with wrong check digit", func() {
		w := validWork()
		w.Iswc = "T-012345678-8"
		err := w.Validate(ref)
		s.Require().Error(err)
		s.True(work.HasKind(err, work.ErrInvalidIswc))
		s.True(midds.HasKind(err, midds.KindBadChecksum), "root cause stays reachable")
	})

	s.Run("empty creators", func() {
		w := validWork()
		w.Creators = nil
		err := w.Validate(ref)
		s.Require().Error(err)
		s.True(work.HasKind(err, work.ErrEmptyCreators))
	})

	s.Run("share sums of 999 and 1001 rejected", func() {
		for _, shares := range [][]uint16{{500, 499}, {500, 501}} {
			w := work.NewBuilder("T-012345678-9", "Hello", 2020).
				Creator(1, midds.RoleComposer, shares[0]).
				Creator(2, midds.RoleLyricist, shares[1]).
				Build()
			err := w.Validate(ref)
			s.Require().Error(err)
			s.True(work.HasKind(err, work.ErrInvalidShareSum))
		}
	})

	s.Run("share sum of exactly 1000 accepted", func() {
		w := work.NewBuilder("T-012345678-9", "Hello", 2020).
			Creator(1, midds.RoleComposer, 500).
			Creator(2, midds.RoleLyricist, 500).
			Build()
		s.Require().NoError(w.Validate(ref))
	})

	s.Run("single share above 1000 is its own kind", func() {
		w := work.NewBuilder("T-012345678-9", "Hello", 2020).
			Creator(1, midds.RoleComposer, 1001).
			Build()
		s.True(work.HasKind(w.Validate(ref), work.ErrInvalidShare))
	})

	s.Run("sixty-five creators rejected with count", func() {
		b := work.NewBuilder("T-012345678-9", "Hello", 2020)
		for i := uint64(0); i < 65; i++ {
			b.Creator(i, midds.RoleComposer, 0)
		}
		err := b.Build().Validate(ref)
		s.Require().Error(err)
		s.True(work.HasKind(err, work.ErrTooManyCreators))
		var we *work.Error
		s.Require().ErrorAs(err, &we)
		s.Equal(65, we.Count)
	})

	s.Run("empty creators reported before share sum", func() {
		// Both violations hold; canonical order puts creators-empty first.
		w := validWork()
		w.Creators = []work.CreatorRef{}
		s.True(work.HasKind(w.Validate(ref), work.ErrEmptyCreators))
	})

	s.Run("title checked before iswc", func() {
		w := validWork()
		w.Title = ""
		w.Iswc = "garbage"
		s.True(work.HasKind(w.Validate(ref), work.ErrInvalidTitle))
	})

	s.Run("opus and catalog bounds", func() {
		w := validWork()
		w.Opus = strings.Repeat("x", 33)
		s.True(work.HasKind(w.Validate(ref), work.ErrInvalidOpus))

		w.Opus = "Op. 27 No. 2"
		w.CatalogNumber = strings.Repeat("x", 33)
		s.True(work.HasKind(w.Validate(ref), work.ErrInvalidCatalog))
	})
}

func (s *WorkSuite) TestRoundTrip() {
	s.Run("minimal work", func() {
		std := validWork()
		rt, err := work.ToRuntime(std, ref)
		s.Require().NoError(err)
		s.Equal(std, work.FromRuntime(rt))
	})

	s.Run("fully populated work", func() {
		std := work.NewBuilder("T-034524680-1", "Nocturne", 2023).
			Bpm(72).
			Voices(2).
			Opus("Op. 9 No. 2").
			CatalogNumber("HN 618").
			Creator(10, midds.RoleComposer, 600).
			Creator(11, midds.RoleArranger, 400).
			Build()
		rt, err := work.ToRuntime(std, ref)
		s.Require().NoError(err)
		s.Equal(std, work.FromRuntime(rt))
	})

	s.Run("validation failure and conversion failure share the root kind", func() {
		std := validWork()
		std.Creators[0].SharePermille = 999

		vErr := std.Validate(ref)
		_, cErr := work.ToRuntime(std, ref)
		s.True(work.HasKind(vErr, work.ErrInvalidShareSum))
		s.True(work.HasKind(cErr, work.ErrInvalidShareSum))
	})
}

// TestScaleBytesDeterministic covers the end-to-end scenario: a valid work
// converts, encodes to a fixed-length byte string, and decodes back to a
// structurally equal std form.
func TestScaleBytesDeterministic(t *testing.T) {
	std := validWork()
	rt, err := work.ToRuntime(std, ref)
	require.NoError(t, err)

	var first bytes.Buffer
	require.NoError(t, rt.Encode(*scale.NewEncoder(&first)))

	// iswc: 1 compact + 13; title: 1 + 5; year: 2; four empty options: 4;
	// creators: 1 compact + (8 + 1 + 2).
	assert.Equal(t, 38, first.Len())

	var second bytes.Buffer
	require.NoError(t, rt.Encode(*scale.NewEncoder(&second)))
	assert.Equal(t, first.Bytes(), second.Bytes())

	var decoded work.Runtime
	require.NoError(t, decoded.Decode(*scale.NewDecoder(bytes.NewReader(first.Bytes()))))
	assert.Equal(t, std, work.FromRuntime(decoded))
}

// TestScaleDecodeTruncated pins the error taxonomy on transport failures:
// a cut-off byte stream is an I/O error, never a capacity violation.
func TestScaleDecodeTruncated(t *testing.T) {
	rt, err := work.ToRuntime(validWork(), ref)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rt.Encode(*scale.NewEncoder(&buf)))

	truncated := buf.Bytes()[:buf.Len()/2]
	var decoded work.Runtime
	err = decoded.Decode(*scale.NewDecoder(bytes.NewReader(truncated)))
	require.Error(t, err)
	assert.False(t, work.HasKind(err, work.ErrExceedsCapacity))
}
