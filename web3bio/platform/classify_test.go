package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ethAddr    = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"
	btcAddr    = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"
	bech32Addr = "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq"
	solAddr    = "GHtcGVhLfPqGfJ5MBoVs1ZDtpd8q5Vz8gfF5UmMDshUh"
	nextIDKey  = "0x02d7c5e01bedf1c993f40ec302d9bf162620daea93a7155cd9a8019ae3a2c2a476"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		term string
		want Platform
	}{
		{"vitalik.eth", ENS},
		{"sujiyan.xyz", ENS},
		{"jesse.cb.id", ENS},
		{"sub.base.eth", Basenames},
		{"jesse.base", Basenames},
		{"184.linea.eth", Linea},
		{"184.linea", Linea},
		{"dwr.farcaster.eth", Farcaster},
		{"dwr.farcaster", Farcaster},
		{"dwr.fcast.id", Farcaster},
		{"a.b.farcaster", Farcaster},
		{"dwr", Farcaster},
		{"farcaster,#1234", Farcaster},
		{"stani.lens", Lens},
		{"brad.crypto", UnstoppableDomains},
		{"bob.nft", UnstoppableDomains},
		{"alice.bnb", SpaceID},
		{"alice.arb", SpaceID},
		{"alice.bit", Dotbit},
		{"bonfida.sol", SNS},
		{"alice.skr", SeekerID},
		{ethAddr, Ethereum},
		{btcAddr, Bitcoin},
		{bech32Addr, Bitcoin},
		{solAddr, Solana},
		{"clusters/main", Clusters},
		{nextIDKey, NextID},
		{nextIDKey + ".nextid", NextID},
		{"jack.twitter", Twitter},
		{"torvalds.github", GitHub},
		{"someone.telegram", Telegram},
		{"npub1sg6plzptd64u62a878hep2kev88swjh3tw00gjsfl8f237lmu63q0uf63m", Nostr},
		{"some.unknown.tld", ENS},
		{"has space", Farcaster},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.term))
		})
	}
}

func TestClassifyCompoundSuffixBeatsENS(t *testing.T) {
	got, rule := ClassifyRule("sub.base.eth")
	assert.Equal(t, Basenames, got)
	assert.Equal(t, "basenames", rule)
}

func TestClassifyDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		require.Equal(t, ENS, Classify("vitalik.eth"))
		require.Equal(t, Solana, Classify(solAddr))
	}
}

func TestRulesOrder(t *testing.T) {
	names := Rules()
	require.NotEmpty(t, names)
	assert.Equal(t, "farcaster-suffix", names[0])
	assert.Equal(t, "fallback", names[len(names)-1])

	index := func(name string) int {
		for i, n := range names {
			if n == name {
				return i
			}
		}
		t.Fatalf("rule %s not registered", name)
		return -1
	}
	assert.Less(t, index("basenames"), index("ens"))
	assert.Less(t, index("linea"), index("ens"))
	assert.Less(t, index("ens"), index("unstoppableDomains"))
	assert.Less(t, index("solana"), index("farcaster"))
}

func TestRulesIndividually(t *testing.T) {
	tests := []struct {
		rule  string
		term  string
		match bool
	}{
		{"ens", "vitalik.eth", true},
		{"ens", "vitalik.lens", false},
		{"basenames", "a.base.eth", true},
		{"basenames", "a.base", true},
		{"linea", "a.linea", true},
		{"lens", "stani.lens", true},
		{"ethereum", ethAddr, true},
		{"ethereum", "0x1234", false},
		{"bitcoin", btcAddr, true},
		{"solana", solAddr, true},
		{"solana", "0OIl", false},
		{"twitter", "jack", true},
		{"twitter", "this_is_far_too_long", false},
		{"clusters", "a/b", true},
		{"nextid", nextIDKey, true},
	}

	for _, tt := range tests {
		t.Run(tt.rule+"/"+tt.term, func(t *testing.T) {
			rule, ok := rules.Get(tt.rule)
			require.True(t, ok)
			_, matched := rule.Match(tt.term)
			assert.Equal(t, tt.match, matched)
		})
	}
}

func TestFallbackRule(t *testing.T) {
	rule, ok := rules.Get("fallback")
	require.True(t, ok)

	tag, matched := rule.Match("a.b")
	assert.True(t, matched)
	assert.Equal(t, string(ENS), tag)

	tag, matched = rule.Match("ab")
	assert.True(t, matched)
	assert.Equal(t, string(Farcaster), tag)
}
