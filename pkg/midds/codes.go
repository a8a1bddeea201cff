package midds

import "strings"

// Standardized industry identifiers. Parsers are whitespace-sensitive: the
// caller normalizes, the parser only verifies. Check digits are computed in
// a single pass, constant time per character.

// Iswc is an International Standard Musical Work Code: T-DDDDDDDDD-C where
// C is the mod-10 weighted check digit over the nine body digits.
type Iswc struct {
	value string
}

// ParseIswc validates the T-\d{9}-\d pattern and its check digit.
func ParseIswc(raw string) (Iswc, error) {
	if len(raw) != 13 || raw[0] != 'T' || raw[1] != '-' || raw[11] != '-' {
		return Iswc{}, invalidPattern("iswc")
	}
	sum := 1
	for i := 0; i < 9; i++ {
		c := raw[2+i]
		if c < '0' || c > '9' {
			return Iswc{}, invalidPattern("iswc")
		}
		sum += int(c-'0') * (i + 1)
	}
	check := raw[12]
	if check < '0' || check > '9' {
		return Iswc{}, invalidPattern("iswc")
	}
	if (10-sum%10)%10 != int(check-'0') {
		return Iswc{}, badChecksum("iswc")
	}
	return Iswc{value: raw}, nil
}

func (i Iswc) String() string { return i.value }
func (i Iswc) IsZero() bool   { return i.value == "" }

// Isrc is an International Standard Recording Code:
// two uppercase country letters, three uppercase alphanumeric registrant
// characters, seven digits. No check digit is defined by the standard.
type Isrc struct {
	value string
}

// ParseIsrc validates the [A-Z]{2}[A-Z0-9]{3}\d{7} pattern. Lowercase is
// rejected; the standard demands uppercase.
func ParseIsrc(raw string) (Isrc, error) {
	if len(raw) != 12 {
		return Isrc{}, invalidPattern("isrc")
	}
	for i := 0; i < 2; i++ {
		if raw[i] < 'A' || raw[i] > 'Z' {
			return Isrc{}, invalidPattern("isrc")
		}
	}
	for i := 2; i < 5; i++ {
		c := raw[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return Isrc{}, invalidPattern("isrc")
		}
	}
	for i := 5; i < 12; i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return Isrc{}, invalidPattern("isrc")
		}
	}
	return Isrc{value: raw}, nil
}

func (i Isrc) String() string { return i.value }
func (i Isrc) IsZero() bool   { return i.value == "" }

// CountryCode returns the two-letter registrant country prefix.
func (i Isrc) CountryCode() string { return i.value[:2] }

// Ipi is an Interested Parties Information number: up to eleven digits,
// the last two being a mod-101 check over the nine base digits. Inputs
// shorter than eleven digits are left-padded with zeros before checking;
// the canonical spelling drops leading zeros so that the value survives a
// u64 round trip through the runtime form unchanged.
type Ipi struct {
	value string // canonical form, no leading zeros
}

// ParseIpi validates digits-only input of at most eleven characters and
// verifies the mod-101 check.
func ParseIpi(raw string) (Ipi, error) {
	if raw == "" || len(raw) > 11 {
		return Ipi{}, invalidPattern("ipi")
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return Ipi{}, invalidPattern("ipi")
		}
	}
	canonical := raw
	for len(canonical) < 11 {
		canonical = "0" + canonical
	}
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(canonical[i]-'0') * (10 - i)
	}
	check := (101 - sum%101) % 101
	got := int(canonical[9]-'0')*10 + int(canonical[10]-'0')
	if check != got {
		return Ipi{}, badChecksum("ipi")
	}
	trimmed := strings.TrimLeft(canonical, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return Ipi{value: trimmed}, nil
}

func (i Ipi) String() string { return i.value }
func (i Ipi) IsZero() bool   { return i.value == "" }

// Isni is an International Standard Name Identifier: sixteen characters,
// optionally split into hyphen groups, with an ISO 7064 mod 11-2 check
// character where 'X' stands for ten.
type Isni struct {
	value string // canonical 16-character form, no hyphens
}

// ParseIsni validates the digit groups and the mod-11 check character.
func ParseIsni(raw string) (Isni, error) {
	compact := make([]byte, 0, 16)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '-':
			// Hyphen group separators are permitted anywhere but the ends.
			if i == 0 || i == len(raw)-1 {
				return Isni{}, invalidPattern("isni")
			}
		case c >= '0' && c <= '9':
			compact = append(compact, c)
		case c == 'X' && i == len(raw)-1:
			compact = append(compact, c)
		default:
			return Isni{}, invalidPattern("isni")
		}
	}
	if len(compact) != 16 {
		return Isni{}, invalidPattern("isni")
	}
	total := 0
	for i := 0; i < 15; i++ {
		total = (total + int(compact[i]-'0')) * 2
	}
	want := (12 - total%11) % 11
	got := 10
	if compact[15] != 'X' {
		got = int(compact[15] - '0')
	}
	if want != got {
		return Isni{}, badChecksum("isni")
	}
	return Isni{value: string(compact)}, nil
}

func (i Isni) String() string { return i.value }
func (i Isni) IsZero() bool   { return i.value == "" }

// Upc is a twelve-digit GS1 Universal Product Code with standard mod-10
// check digit.
type Upc struct {
	value string
}

// ParseUpc validates twelve digits and the GS1 check digit.
func ParseUpc(raw string) (Upc, error) {
	if len(raw) != 12 {
		return Upc{}, invalidPattern("upc")
	}
	sum := 0
	for i := 0; i < 11; i++ {
		c := raw[i]
		if c < '0' || c > '9' {
			return Upc{}, invalidPattern("upc")
		}
		if i%2 == 0 {
			sum += int(c-'0') * 3
		} else {
			sum += int(c - '0')
		}
	}
	check := raw[11]
	if check < '0' || check > '9' {
		return Upc{}, invalidPattern("upc")
	}
	if (10-sum%10)%10 != int(check-'0') {
		return Upc{}, badChecksum("upc")
	}
	return Upc{value: raw}, nil
}

func (u Upc) String() string { return u.value }
func (u Upc) IsZero() bool   { return u.value == "" }
