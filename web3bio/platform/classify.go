package platform

import (
	"regexp"
	"strings"

	"github.com/liuran001/Web3Bio-Go/web3bio/platform/registry"
)

// Identity shapes recognized by the classifier and the address helpers.
var (
	ReENS                = regexp.MustCompile(`(?i)^.+\.(?:eth|xyz|bio|app|luxe|kred|art|ceo|club|box|uni\.eth|cb\.id)$`)
	ReBasenames          = regexp.MustCompile(`(?i)^.+\.base(?:\.eth)?$`)
	ReLinea              = regexp.MustCompile(`(?i)^.+\.linea(?:\.eth)?$`)
	ReFarcaster          = regexp.MustCompile(`(?i)^(?:[A-Za-z0-9_-]{1,61}(?:\.(?:eth|farcaster|fcast\.id|farcaster\.eth))?|farcaster,#\d+)$`)
	ReLens               = regexp.MustCompile(`(?i)^.+\.lens$`)
	ReCluster            = regexp.MustCompile(`^[\w-]+/[\w-]+$`)
	ReSpaceID            = regexp.MustCompile(`(?i)^.+\.(?:bnb|arb)$`)
	ReSeekerID           = regexp.MustCompile(`(?i)^.+\.skr$`)
	ReUnstoppableDomains = regexp.MustCompile(`(?i)^.+\.(?:crypto|888|nft|blockchain|bitcoin|dao|x|klever|hi|zil|kresus|polygon|wallet|binanceus|anime|go|manga|eth)$`)
	ReDotbit             = regexp.MustCompile(`(?i)^.+\.bit$`)
	ReSNS                = regexp.MustCompile(`(?i)^.+\.sol$`)
	ReEthAddress         = regexp.MustCompile(`(?i)^0x[a-f0-9]{40}$`)
	ReBtcAddress         = regexp.MustCompile(`^(?:[13][a-km-zA-HJ-NP-Z1-9]{25,34}|bc1[qp][a-z0-9]{11,71})$`)
	ReSolanaAddress      = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)
	ReTwitter            = regexp.MustCompile(`(?i)^[A-Za-z0-9_]{1,15}(?:\.twitter)?$`)
	ReNextID             = regexp.MustCompile(`(?i)^0x[a-f0-9]{66}(?:\.nextid)?$`)
	ReNostr              = regexp.MustCompile(`(?i)^(?:(?:npub1|nsec1)[0-9a-z]{58,59}|[0-9a-f]{64})$`)

	// ReLowercaseExempt matches identifiers whose case is significant.
	ReLowercaseExempt = regexp.MustCompile(`^(?:[13][a-km-zA-HJ-NP-Z1-9]{25,34}|bc1[qp][a-z0-9]{11,71}|[1-9A-HJ-NP-Za-km-z]{32,44})$`)
)

// farcasterSuffixes in longest-first order.
var farcasterSuffixes = []string{".farcaster.eth", ".farcaster", ".fcast.id"}

type patternRule struct {
	name     string
	re       *regexp.Regexp
	platform Platform
}

func (r patternRule) Name() string { return r.name }

func (r patternRule) Match(term string) (string, bool) {
	if r.re.MatchString(term) {
		return string(r.platform), true
	}
	return "", false
}

type funcRule struct {
	name  string
	match func(term string) (Platform, bool)
}

func (r funcRule) Name() string { return r.name }

func (r funcRule) Match(term string) (string, bool) {
	p, ok := r.match(term)
	return string(p), ok
}

func pattern(re *regexp.Regexp, p Platform) registry.Rule {
	return patternRule{name: string(p), re: re, platform: p}
}

// rules is evaluated first match wins; specific suffixes precede generic ones.
var rules = registry.New().MustRegister(
	funcRule{name: "farcaster-suffix", match: func(term string) (Platform, bool) {
		for _, suffix := range farcasterSuffixes {
			if strings.HasSuffix(strings.ToLower(term), suffix) {
				return Farcaster, true
			}
		}
		return "", false
	}},
	funcRule{name: "web2-suffix", match: func(term string) (Platform, bool) {
		idx := strings.LastIndex(term, ".")
		if idx < 0 {
			return "", false
		}
		tag := strings.ToLower(term[idx+1:])
		if !IsWeb2Suffix(tag) {
			return "", false
		}
		return Platform(tag), true
	}},
	pattern(ReBasenames, Basenames),
	pattern(ReLinea, Linea),
	pattern(ReENS, ENS),
	pattern(ReEthAddress, Ethereum),
	pattern(ReLens, Lens),
	pattern(ReUnstoppableDomains, UnstoppableDomains),
	pattern(ReSpaceID, SpaceID),
	pattern(ReDotbit, Dotbit),
	pattern(ReSNS, SNS),
	pattern(ReSeekerID, SeekerID),
	pattern(ReBtcAddress, Bitcoin),
	pattern(ReSolanaAddress, Solana),
	pattern(ReFarcaster, Farcaster),
	pattern(ReCluster, Clusters),
	pattern(ReNextID, NextID),
	pattern(ReNostr, Nostr),
	pattern(ReTwitter, Twitter),
	funcRule{name: "fallback", match: func(term string) (Platform, bool) {
		if strings.Contains(term, ".") {
			return ENS, true
		}
		return Farcaster, true
	}},
)

// Classify infers the platform of a bare token. It never fails.
func Classify(term string) Platform {
	tag, _, ok := rules.Match(term)
	if !ok {
		// unreachable while the fallback rule is registered last
		return Farcaster
	}
	return Platform(tag)
}

// ClassifyRule is Classify that also reports which rule decided.
func ClassifyRule(term string) (Platform, string) {
	tag, rule, ok := rules.Match(term)
	if !ok {
		return Farcaster, ""
	}
	return Platform(tag), rule.Name()
}

// Rules returns the classifier rule names in evaluation order.
func Rules() []string {
	all := rules.GetAll()
	names := make([]string, 0, len(all))
	for _, r := range all {
		names = append(names, r.Name())
	}
	return names
}
