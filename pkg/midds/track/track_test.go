package track_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"melodie/pkg/midds"
	"melodie/pkg/midds/track"
)

// ref keeps year bounds stable regardless of when the tests run.
var ref = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func validTrack() track.Track {
	return track.NewBuilder("USRC17607839", "Hello", 215_000, 2020).
		MusicalWork(7).
		Build()
}

type TrackSuite struct {
	suite.Suite
}

func TestTrackSuite(t *testing.T) {
	suite.Run(t, new(TrackSuite))
}

func (s *TrackSuite) TestValidate() {
	s.Run("valid track passes", func() {
		s.Require().NoError(validTrack().Validate(ref))
	})

	s.Run("title of exactly 256 bytes accepted", func() {
		tr := validTrack()
		tr.Title = strings.Repeat("a", 256)
		s.Require().NoError(tr.Validate(ref))
	})

	s.Run("title of 257 bytes rejected", func() {
		tr := validTrack()
		tr.Title = strings.Repeat("a", 257)
		s.True(track.HasKind(tr.Validate(ref), track.ErrInvalidTitle))
	})

	s.Run("isrc missing registrant digits rejected", func() {
		tr := validTrack()
		tr.Isrc = "US12345678"
		err := tr.Validate(ref)
		s.Require().Error(err)
		s.True(track.HasKind(err, track.ErrInvalidIsrc))
		s.True(midds.HasKind(err, midds.KindInvalidPattern), "root cause stays reachable")
	})

	s.Run("duration bounds", func() {
		tr := validTrack()
		tr.DurationMs = 0
		s.True(track.HasKind(tr.Validate(ref), track.ErrInvalidDuration))

		tr.DurationMs = 36_000_001
		s.True(track.HasKind(tr.Validate(ref), track.ErrInvalidDuration))

		tr.DurationMs = 36_000_000
		s.Require().NoError(tr.Validate(ref))
	})

	s.Run("bpm range when present", func() {
		tr := validTrack()
		bpm := uint16(401)
		tr.Bpm = &bpm
		s.True(track.HasKind(tr.Validate(ref), track.ErrInvalidBpm))

		bpm = 20
		s.Require().NoError(tr.Validate(ref))
	})

	s.Run("recording year follows the reference time", func() {
		tr := validTrack()
		tr.RecordingYear = 2025 // ref year + 1
		s.Require().NoError(tr.Validate(ref))

		tr.RecordingYear = 2026
		s.True(track.HasKind(tr.Validate(ref), track.ErrInvalidYear))

		tr.RecordingYear = 1899
		s.True(track.HasKind(tr.Validate(ref), track.ErrInvalidYear))
	})

	s.Run("recording place of 129 bytes rejected", func() {
		tr := validTrack()
		tr.RecordingPlace = strings.Repeat("x", 129)
		s.True(track.HasKind(tr.Validate(ref), track.ErrInvalidPlace))
	})

	s.Run("duplicate title alias rejected, never deduplicated", func() {
		tr := validTrack()
		tr.TitleAliases = []string{"Hello (Live)", "Hello (Live)"}
		err := tr.Validate(ref)
		s.Require().Error(err)
		s.True(track.HasKind(err, track.ErrDuplicateAlias))
	})

	s.Run("seventeen aliases rejected with count", func() {
		tr := validTrack()
		for i := 0; i < 17; i++ {
			tr.TitleAliases = append(tr.TitleAliases, fmt.Sprintf("alias %d", i))
		}
		err := tr.Validate(ref)
		s.Require().Error(err)
		s.True(track.HasKind(err, track.ErrTooManyAliases))
		var te *track.Error
		s.Require().ErrorAs(err, &te)
		s.Equal(17, te.Count)
	})

	s.Run("six genres rejected, duplicates rejected", func() {
		tr := validTrack()
		tr.Genres = []midds.Genre{
			midds.GenreBlues, midds.GenreClassical, midds.GenreCountry,
			midds.GenreElectronic, midds.GenreFolk, midds.GenreHipHop,
		}
		s.True(track.HasKind(tr.Validate(ref), track.ErrTooManyGenres))

		tr.Genres = []midds.Genre{midds.GenreBlues, midds.GenreBlues}
		s.True(track.HasKind(tr.Validate(ref), track.ErrDuplicateGenre))
	})

	s.Run("unknown genre rejected", func() {
		tr := validTrack()
		tr.Genres = []midds.Genre{"vaporwave"}
		s.True(track.HasKind(tr.Validate(ref), track.ErrUnknownGenre))
	})

	s.Run("sixty-five producers rejected with count", func() {
		tr := validTrack()
		for i := uint64(0); i < 65; i++ {
			tr.Producers = append(tr.Producers, i)
		}
		err := tr.Validate(ref)
		s.Require().Error(err)
		s.True(track.HasKind(err, track.ErrTooManyProducers))
		var te *track.Error
		s.Require().ErrorAs(err, &te)
		s.Equal(65, te.Count)
	})

	s.Run("unknown contributor role rejected", func() {
		tr := validTrack()
		tr.Contributors = []track.ContributorRef{{PartyID: 1, Role: "roadie"}}
		s.True(track.HasKind(tr.Validate(ref), track.ErrUnknownRole))
	})

	s.Run("title checked before isrc", func() {
		tr := validTrack()
		tr.Title = ""
		tr.Isrc = "garbage"
		s.True(track.HasKind(tr.Validate(ref), track.ErrInvalidTitle))
	})
}

func (s *TrackSuite) TestRoundTrip() {
	s.Run("minimal track", func() {
		std := validTrack()
		rt, err := track.ToRuntime(std, ref)
		s.Require().NoError(err)
		s.Equal(std, track.FromRuntime(rt))
	})

	s.Run("fully populated track", func() {
		std := track.NewBuilder("FRZ039900212", "Nocturne", 312_500, 2023).
			TitleAlias("Nocturne (Live)").
			TitleAlias("Nocturne (Remastered)").
			Bpm(72).
			RecordingPlace("Abbey Road Studio 2, London").
			Genre(midds.GenreClassical).
			Genre(midds.GenreJazz).
			Producer(21).
			Performer(30).
			Performer(31).
			Contributor(40, midds.RoleEngineer).
			Contributor(41, midds.RoleMixer).
			MusicalWork(9).
			Build()
		rt, err := track.ToRuntime(std, ref)
		s.Require().NoError(err)
		s.Equal(std, track.FromRuntime(rt))
	})

	s.Run("validation failure and conversion failure share the root kind", func() {
		std := validTrack()
		std.DurationMs = 0

		vErr := std.Validate(ref)
		_, cErr := track.ToRuntime(std, ref)
		s.True(track.HasKind(vErr, track.ErrInvalidDuration))
		s.True(track.HasKind(cErr, track.ErrInvalidDuration))
	})
}

// TestScaleBytesDeterministic covers the end-to-end scenario: a valid track
// converts, encodes to a fixed-length byte string, and decodes back to a
// structurally equal std form.
func TestScaleBytesDeterministic(t *testing.T) {
	std := validTrack()
	rt, err := track.ToRuntime(std, ref)
	require.NoError(t, err)

	var first bytes.Buffer
	require.NoError(t, rt.Encode(*scale.NewEncoder(&first)))

	// isrc: 1 compact + 12; title: 1 + 5; empty aliases: 1; duration: 4;
	// bpm option: 1; year: 2; place option: 1; three empty vecs: 3;
	// contributors compact: 1; work reference: 8.
	assert.Equal(t, 40, first.Len())

	var second bytes.Buffer
	require.NoError(t, rt.Encode(*scale.NewEncoder(&second)))
	assert.Equal(t, first.Bytes(), second.Bytes())

	var decoded track.Runtime
	require.NoError(t, decoded.Decode(*scale.NewDecoder(bytes.NewReader(first.Bytes()))))
	assert.Equal(t, std, track.FromRuntime(decoded))
}
