package catalog

// Kind distinguishes stars from planets.
type Kind uint8

const (
	KindPlanet Kind = iota
	KindStar
)

func (k Kind) String() string {
	if k == KindStar {
		return "star"
	}
	return "planet"
}

// MaxStarSubType is the highest sub-type a star tag may carry.
const MaxStarSubType = 11

// ValidTypeTag reports whether tag is a planet tag P00-P99 or a star tag
// S00-S11. The tag must already be trimmed.
func ValidTypeTag(tag string) bool {
	if len(tag) != 3 || !isDigit(tag[1]) || !isDigit(tag[2]) {
		return false
	}
	switch tag[0] {
	case 'P':
		return true
	case 'S':
		return subType(tag) <= MaxStarSubType
	default:
		return false
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// subType assumes tag has already passed the length and digit checks.
func subType(tag string) int {
	return int(tag[1]-'0')*10 + int(tag[2]-'0')
}
