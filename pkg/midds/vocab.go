package midds

// Controlled vocabularies shared across MIDDS entities. Each is a closed
// string enum with a validating parser, following the same shape as the
// identifier codes: unknown values never construct.

// Key is a musical key from the twelve-tone set crossed with major/minor.
// Canonical spelling uses sharps, e.g. "C# minor".
type Key string

// ParseKey validates against the closed 24-value enumeration.
func ParseKey(raw string) (Key, error) {
	k := Key(raw)
	if _, ok := musicalKeys[k]; !ok {
		return "", unknownEnumerant("key", raw)
	}
	return k, nil
}

func (k Key) String() string { return string(k) }
func (k Key) IsZero() bool   { return k == "" }

var musicalKeys = func() map[Key]struct{} {
	notes := []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	m := make(map[Key]struct{}, 24)
	for _, n := range notes {
		m[Key(n+" major")] = struct{}{}
		m[Key(n+" minor")] = struct{}{}
	}
	return m
}()

// Genre is a controlled genre vocabulary entry.
type Genre string

const (
	GenreBlues      Genre = "blues"
	GenreClassical  Genre = "classical"
	GenreCountry    Genre = "country"
	GenreElectronic Genre = "electronic"
	GenreFolk       Genre = "folk"
	GenreFunk       Genre = "funk"
	GenreHipHop     Genre = "hip-hop"
	GenreJazz       Genre = "jazz"
	GenreLatin      Genre = "latin"
	GenreMetal      Genre = "metal"
	GenrePop        Genre = "pop"
	GenreReggae     Genre = "reggae"
	GenreRnB        Genre = "rnb"
	GenreRock       Genre = "rock"
	GenreSoul       Genre = "soul"
	GenreSoundtrack Genre = "soundtrack"
	GenreWorld      Genre = "world"
)

var genres = map[Genre]struct{}{
	GenreBlues: {}, GenreClassical: {}, GenreCountry: {}, GenreElectronic: {},
	GenreFolk: {}, GenreFunk: {}, GenreHipHop: {}, GenreJazz: {},
	GenreLatin: {}, GenreMetal: {}, GenrePop: {}, GenreReggae: {},
	GenreRnB: {}, GenreRock: {}, GenreSoul: {}, GenreSoundtrack: {},
	GenreWorld: {},
}

// ParseGenre validates against the closed genre vocabulary.
func ParseGenre(raw string) (Genre, error) {
	g := Genre(raw)
	if _, ok := genres[g]; !ok {
		return "", unknownEnumerant("genre", raw)
	}
	return g, nil
}

func (g Genre) String() string { return string(g) }

// Role describes a party's contribution to a work or recording.
type Role string

const (
	RoleComposer Role = "composer"
	RoleLyricist Role = "lyricist"
	RoleArranger Role = "arranger"
	RoleAdapter  Role = "adapter"
	RoleProducer Role = "producer"
	RoleMixer    Role = "mixer"
	RoleEngineer Role = "engineer"
	RoleFeatured Role = "featured"
)

var roles = map[Role]struct{}{
	RoleComposer: {}, RoleLyricist: {}, RoleArranger: {}, RoleAdapter: {},
	RoleProducer: {}, RoleMixer: {}, RoleEngineer: {}, RoleFeatured: {},
}

// ParseRole validates against the closed role vocabulary.
func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if _, ok := roles[r]; !ok {
		return "", unknownEnumerant("role", raw)
	}
	return r, nil
}

func (r Role) String() string { return string(r) }

// roleIndex fixes the SCALE enum discriminant for each role. Order is part
// of the on-chain encoding and must never change.
var roleIndex = map[Role]uint8{
	RoleComposer: 0, RoleLyricist: 1, RoleArranger: 2, RoleAdapter: 3,
	RoleProducer: 4, RoleMixer: 5, RoleEngineer: 6, RoleFeatured: 7,
}

var roleByIndex = map[uint8]Role{
	0: RoleComposer, 1: RoleLyricist, 2: RoleArranger, 3: RoleAdapter,
	4: RoleProducer, 5: RoleMixer, 6: RoleEngineer, 7: RoleFeatured,
}

// ScaleIndex returns the on-chain enum discriminant for the role.
func (r Role) ScaleIndex() uint8 { return roleIndex[r] }

// RoleFromScaleIndex resolves an on-chain discriminant back to a Role.
func RoleFromScaleIndex(idx uint8) (Role, error) {
	r, ok := roleByIndex[idx]
	if !ok {
		return "", unknownEnumerant("role", string(rune('0'+idx)))
	}
	return r, nil
}

// genreIndex fixes the SCALE enum discriminant for each genre.
var genreIndex = map[Genre]uint8{
	GenreBlues: 0, GenreClassical: 1, GenreCountry: 2, GenreElectronic: 3,
	GenreFolk: 4, GenreFunk: 5, GenreHipHop: 6, GenreJazz: 7,
	GenreLatin: 8, GenreMetal: 9, GenrePop: 10, GenreReggae: 11,
	GenreRnB: 12, GenreRock: 13, GenreSoul: 14, GenreSoundtrack: 15,
	GenreWorld: 16,
}

var genreByIndex = func() map[uint8]Genre {
	m := make(map[uint8]Genre, len(genreIndex))
	for g, i := range genreIndex {
		m[i] = g
	}
	return m
}()

// ScaleIndex returns the on-chain enum discriminant for the genre.
func (g Genre) ScaleIndex() uint8 { return genreIndex[g] }

// GenreFromScaleIndex resolves an on-chain discriminant back to a Genre.
func GenreFromScaleIndex(idx uint8) (Genre, error) {
	g, ok := genreByIndex[idx]
	if !ok {
		return "", unknownEnumerant("genre", string(rune('0'+idx)))
	}
	return g, nil
}
