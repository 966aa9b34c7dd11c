package platform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"bare ens", "vitalik.eth", "ens,vitalik.eth", true},
		{"explicit ens", "ens,vitalik.eth", "ens,vitalik.eth", true},
		{"upper case ens", "Vitalik.ETH", "ens,vitalik.eth", true},
		{"linea short form", "184.linea", "linea,184.linea.eth", true},
		{"basenames short form", "jesse.base", "basenames,jesse.base.eth", true},
		{"basenames nested", "a.b.base", "basenames,a.b.base.eth", true},
		{"farcaster fid", "farcaster,#1234", "farcaster,#1234", true},
		{"farcaster suffix", "dwr.farcaster", "farcaster,dwr", true},
		{"farcaster eth suffix", "dwr.farcaster.eth", "farcaster,dwr", true},
		{"explicit farcaster suffix", "farcaster,dwr.fcast.id", "farcaster,dwr", true},
		{"bare handle", "dwr", "farcaster,dwr", true},
		{"lens", "stani.lens", "lens,stani.lens", true},
		{"twitter suffix", "Jack.twitter", "twitter,jack", true},
		{"github suffix", "torvalds.github", "github,torvalds", true},
		{"mixed case web2 suffix", "Torvalds.GitHub", "github,torvalds", true},
		{"mixed case twitter suffix", "jack.Twitter", "twitter,jack", true},
		{"mixed case farcaster suffix", "dwr.Farcaster", "farcaster,dwr", true},
		{"ethereum lower-cased", ethAddr, "ethereum," + strings.ToLower(ethAddr), true},
		{"solana keeps case", solAddr, "solana," + solAddr, true},
		{"nextid suffix", nextIDKey + ".nextid", "nextid," + nextIDKey, true},
		{"explicit platform not classified", "lens,vitalik.eth", "lens,vitalik.eth", true},
		{"empty", "", "", false},
		{"too many commas", "ens,vitalik.eth,extra", "", false},
		{"unsupported inferred platform", btcAddr, "", false},
		{"unsupported explicit platform", "space_id,alice.bnb", "", false},
		{"unknown explicit platform", "myspace,tom", "", false},
		{"empty identifier", "ens,", "", false},
		{"identifier is only a suffix", ".github", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	inputs := []string{
		"vitalik.eth", "ens,vitalik.eth", "184.linea", "jesse.base", "farcaster,#1234",
		"dwr.farcaster.eth", "stani.lens", "jack.twitter", ethAddr, solAddr, nextIDKey + ".nextid",
		"brad.crypto", "alice.bit", "bonfida.sol",
		"dwr.Farcaster", "Torvalds.GitHub", "jack.Twitter", "DWR.fcast.id", "Jesse.BASE",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, ok := Resolve(input)
			require.True(t, ok)
			second, ok := Resolve(first.String())
			require.True(t, ok)
			assert.Equal(t, first, second)
		})
	}
}

func TestResolveCaseExemption(t *testing.T) {
	for _, addr := range []string{solAddr, "3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy"} {
		assert.True(t, ReLowercaseExempt.MatchString(addr))
	}

	id, ok := Resolve("solana," + solAddr)
	require.True(t, ok)
	assert.Equal(t, solAddr, id.ID)

	id, ok = Resolve("ens,MiXeD.eth")
	require.True(t, ok)
	assert.Equal(t, "mixed.eth", id.ID)
}

func TestPrettify(t *testing.T) {
	tests := map[string]string{
		"":                    "",
		"jack.twitter":        "jack",
		nextIDKey + ".nextid": nextIDKey,
		"farcaster,#1234":     "#1234",
		"dwr.farcaster":       "dwr",
		"dwr.fcast.id":        "dwr",
		"dwr.farcaster.eth":   "dwr",
		"foo.base":            "foo.base.eth",
		"184.linea":           "184.linea.eth",
		"foo.base.eth":        "foo.base.eth",
		"someone.keybase":     "someone",
		"someone.bluesky":     "someone",
		"vitalik.eth":         "vitalik.eth",
		"stani.lens":          "stani.lens",
		"name.facebook":       "name.facebook",
		"jack.Twitter":        "jack",
		"dwr.FARCASTER":       "dwr",
		"torvalds.GitHub":     "torvalds",
	}
	for input, want := range tests {
		assert.Equal(t, want, Prettify(input), "Prettify(%q)", input)
	}
}

func TestUglify(t *testing.T) {
	tests := []struct {
		input string
		p     Platform
		want  string
	}{
		{"", Farcaster, ""},
		{"dwr", Farcaster, "dwr.farcaster"},
		{"dwr.fcast.id", Farcaster, "dwr.fcast.id"},
		{"dwr.farcaster.eth", Farcaster, "dwr.farcaster.eth"},
		{"stani", Lens, "stani.lens"},
		{"stani.lens", Lens, "stani.lens"},
		{"jesse", Basenames, "jesse.base.eth"},
		{"jesse.base", Basenames, "jesse.base.eth"},
		{"jesse.base.eth", Basenames, "jesse.base.eth"},
		{"184", Linea, "184.linea.eth"},
		{"184.linea", Linea, "184.linea.eth"},
		{"vitalik.eth", ENS, "vitalik.eth"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Uglify(tt.input, tt.p), "Uglify(%q, %s)", tt.input, tt.p)
	}
}

func TestPrettifyUglifyRoundTrip(t *testing.T) {
	for _, name := range []string{"dwr", "v", "some-name"} {
		assert.Equal(t, name, Prettify(Uglify(name, Farcaster)))
	}
	// suffixes that are part of the wire identifier stay a fixed point
	for _, p := range []Platform{Lens, Basenames, Linea} {
		ugly := Uglify("name", p)
		assert.Equal(t, ugly, Prettify(ugly), string(p))
	}
}

func TestIDToJSON(t *testing.T) {
	got := IDToJSON("suji.base")
	require.NotNil(t, got)
	assert.Equal(t, Identity{Platform: Basenames, ID: "suji.base.eth"}, *got)

	assert.Nil(t, IDToJSON(""))
}

func TestAddressHelpers(t *testing.T) {
	assert.True(t, IsSameAddress(ethAddr, strings.ToLower(ethAddr)))
	assert.False(t, IsSameAddress("", ""))

	assert.True(t, IsWeb3Address(ethAddr))
	assert.True(t, IsWeb3Address(btcAddr))
	assert.True(t, IsWeb3Address(solAddr))
	assert.False(t, IsWeb3Address("vitalik.eth"))

	assert.True(t, IsValidEthereumAddress(ethAddr))
	assert.False(t, IsValidEthereumAddress("0x0000000000000000000000000000000000000000"))
	assert.False(t, IsValidEthereumAddress("0x000000000000000000000000000000000000dead"))
	assert.False(t, IsValidEthereumAddress("0x1234"))

	assert.True(t, IsValidSolanaAddress(solAddr))
	assert.False(t, IsValidSolanaAddress(ethAddr))
}

func TestCatalog(t *testing.T) {
	seen := make(map[Platform]bool)
	for _, p := range All() {
		require.False(t, seen[p], "duplicate %s", p)
		seen[p] = true

		meta, ok := Lookup(p)
		require.True(t, ok)
		assert.Equal(t, p, meta.Key)
		assert.NotEmpty(t, meta.Label, p)
		assert.Contains(t, []System{SystemWeb2, SystemWeb3}, meta.System, p)
	}

	for _, p := range []Platform{ENS, Basenames, Linea, Ethereum, Farcaster, Lens, Twitter, Solana, SNS, Dotbit, NextID, UnstoppableDomains} {
		assert.True(t, IsSupported(p), p)
	}
	for _, p := range []Platform{Bitcoin, SpaceID, Clusters, SeekerID, Platform("")} {
		assert.False(t, IsSupported(p), p)
	}
}
