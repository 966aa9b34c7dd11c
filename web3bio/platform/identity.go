package platform

import (
	"regexp"
	"strings"
)

// Identity is a canonical platform-qualified identity.
type Identity struct {
	Platform Platform `json:"platform"`
	ID       string   `json:"identity"`
}

// String returns the "platform,identifier" wire form.
func (i Identity) String() string {
	return string(i.Platform) + "," + i.ID
}

// Resolve normalizes a raw identity token.
//
// "platform,handle" keeps the explicit platform; a bare token is classified.
// The identifier is prettified and lower-cased unless it is a case-sensitive
// address. Returns false for empty input, more than one comma, an unqueryable
// platform or an empty identifier.
func Resolve(input string) (Identity, bool) {
	if input == "" {
		return Identity{}, false
	}

	var (
		p  Platform
		id string
	)
	parts := strings.Split(input, ",")
	switch len(parts) {
	case 2:
		p = Platform(parts[0])
		id = Prettify(parts[1])
	case 1:
		p = Classify(input)
		id = Prettify(input)
	default:
		return Identity{}, false
	}

	if !IsSupported(p) || id == "" {
		return Identity{}, false
	}

	if !ReLowercaseExempt.MatchString(id) {
		id = strings.ToLower(id)
	}
	return Identity{Platform: p, ID: id}, true
}

// Prettify strips platform suffixes so display strings stay short.
//
//	jack.twitter       -> jack
//	farcaster,#1234    -> #1234
//	dwr.farcaster.eth  -> dwr
//	184.linea          -> 184.linea.eth
func Prettify(input string) string {
	if input == "" {
		return ""
	}
	// kept verbatim ahead of the generic web2 rule
	for _, suffix := range []string{".twitter", ".nextid"} {
		if trimmed, ok := trimSuffixFold(input, suffix); ok {
			return trimmed
		}
	}
	if len(input) > len("farcaster,#") && strings.EqualFold(input[:len("farcaster,#")], "farcaster,#") {
		return input[len("farcaster,"):]
	}
	for _, suffix := range farcasterSuffixes {
		if trimmed, ok := trimSuffixFold(input, suffix); ok {
			return trimmed
		}
	}
	if hasSuffixFold(input, ".base") || hasSuffixFold(input, ".linea") {
		return input + ".eth"
	}
	if idx := strings.LastIndex(input, "."); idx >= 0 && IsWeb2Suffix(strings.ToLower(input[idx+1:])) {
		return input[:idx]
	}
	return input
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

func trimSuffixFold(s, suffix string) (string, bool) {
	if !hasSuffixFold(s, suffix) {
		return s, false
	}
	return s[:len(s)-len(suffix)], true
}

// Uglify appends the platform suffix to a bare name, if missing.
func Uglify(input string, p Platform) string {
	if input == "" {
		return ""
	}
	switch p {
	case Farcaster:
		for _, suffix := range farcasterSuffixes {
			if strings.HasSuffix(input, suffix) {
				return input
			}
		}
		return input + ".farcaster"
	case Lens:
		if strings.HasSuffix(input, ".lens") {
			return input
		}
		return input + ".lens"
	case Basenames, Linea:
		full := byKey[p].Suffix // ".base.eth" / ".linea.eth"
		short := strings.TrimSuffix(full, ".eth")
		switch {
		case strings.HasSuffix(input, full):
			return input
		case strings.HasSuffix(input, short):
			return input + ".eth"
		default:
			return input + full
		}
	default:
		return input
	}
}

// IDToJSON resolves input and returns it as a struct, or nil if invalid.
func IDToJSON(input string) *Identity {
	id, ok := Resolve(input)
	if !ok {
		return nil
	}
	return &id
}

var reBurnAddress = regexp.MustCompile(`(?i)^0x0*.$|^0x[123468abef]*$|^0x0*dead$`)

// IsSameAddress compares two addresses ignoring case.
func IsSameAddress(address, other string) bool {
	if address == "" || other == "" {
		return false
	}
	return strings.EqualFold(address, other)
}

// IsWeb3Address reports whether s looks like any supported chain address.
func IsWeb3Address(s string) bool {
	if s == "" {
		return false
	}
	for _, re := range []*regexp.Regexp{ReEthAddress, ReBtcAddress, ReSolanaAddress, ReNextID, ReNostr} {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// IsValidEthereumAddress rejects malformed, empty and burn addresses.
func IsValidEthereumAddress(s string) bool {
	if !ReEthAddress.MatchString(s) {
		return false
	}
	return !reBurnAddress.MatchString(s)
}

// IsValidSolanaAddress checks the base58 shape only.
func IsValidSolanaAddress(s string) bool {
	return ReSolanaAddress.MatchString(s)
}
