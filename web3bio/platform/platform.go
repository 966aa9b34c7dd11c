package platform

// Platform is a platform tag as understood by the identity API.
type Platform string

// System groups platforms into on-chain and social identities.
type System string

const (
	SystemWeb2 System = "web2"
	SystemWeb3 System = "web3"
)

const (
	Basenames          Platform = "basenames"
	Bitcoin            Platform = "bitcoin"
	Bluesky            Platform = "bluesky"
	Box                Platform = "box"
	Clusters           Platform = "clusters"
	Crossbell          Platform = "crossbell"
	Discord            Platform = "discord"
	Dotbit             Platform = "dotbit"
	ENS                Platform = "ens"
	Ethereum           Platform = "ethereum"
	Facebook           Platform = "facebook"
	Farcaster          Platform = "farcaster"
	Genome             Platform = "genome"
	GitHub             Platform = "github"
	Instagram          Platform = "instagram"
	Keybase            Platform = "keybase"
	Lens               Platform = "lens"
	Linea              Platform = "linea"
	LinkedIn           Platform = "linkedin"
	NextID             Platform = "nextid"
	Nostr              Platform = "nostr"
	Reddit             Platform = "reddit"
	SeekerID           Platform = "seekerid"
	SNS                Platform = "sns"
	Solana             Platform = "solana"
	SpaceID            Platform = "space_id"
	Telegram           Platform = "telegram"
	Twitter            Platform = "twitter"
	UnstoppableDomains Platform = "unstoppableDomains"
	Website            Platform = "website"
)

// Meta is the single record describing a platform: display data and
// the capabilities the normalizer relies on.
type Meta struct {
	Key       Platform
	Label     string
	Color     string
	URLPrefix string
	System    System
	// Queryable platforms may be addressed in platform-qualified requests.
	Queryable bool
	// Suffix is appended by Uglify to turn a bare name into the platform form.
	Suffix string
	// Web2Suffix platforms accept the "<handle>.<platform>" shorthand,
	// which Prettify strips and Classify recognizes.
	Web2Suffix bool
}

// catalog is the only source of known platforms.
var catalog = []Meta{
	{Key: Basenames, Label: "Basenames", Color: "#2254FF", URLPrefix: "https://www.base.org/name/", System: SystemWeb3, Queryable: true, Suffix: ".base.eth"},
	{Key: Bitcoin, Label: "Bitcoin", Color: "#F7931A", URLPrefix: "https://www.blockchain.com/explorer/addresses/btc/", System: SystemWeb3},
	{Key: Bluesky, Label: "Bluesky", Color: "#0085FF", URLPrefix: "https://bsky.app/profile/", System: SystemWeb2, Queryable: true, Web2Suffix: true},
	{Key: Box, Label: ".box", Color: "#3E3E3E", URLPrefix: "https://my.box/", System: SystemWeb3},
	{Key: Clusters, Label: "Clusters", Color: "#000000", URLPrefix: "https://clusters.xyz/", System: SystemWeb3},
	{Key: Crossbell, Label: "Crossbell", Color: "#FFCF55", URLPrefix: "https://xchar.app/", System: SystemWeb3},
	{Key: Discord, Label: "Discord", Color: "#5865F2", URLPrefix: "https://discord.com/users/", System: SystemWeb2, Queryable: true, Web2Suffix: true},
	{Key: Dotbit, Label: ".bit", Color: "#0e7dff", URLPrefix: "https://d.id/", System: SystemWeb3, Queryable: true},
	{Key: ENS, Label: "ENS", Color: "#5298FF", URLPrefix: "https://app.ens.domains/", System: SystemWeb3, Queryable: true},
	{Key: Ethereum, Label: "Ethereum", Color: "#3741ba", URLPrefix: "https://etherscan.io/address/", System: SystemWeb3, Queryable: true},
	{Key: Facebook, Label: "Facebook", Color: "#0866FF", URLPrefix: "https://www.facebook.com/", System: SystemWeb2, Queryable: true},
	{Key: Farcaster, Label: "Farcaster", Color: "#8a63d2", URLPrefix: "https://farcaster.xyz/", System: SystemWeb3, Queryable: true, Suffix: ".farcaster"},
	{Key: Genome, Label: "Genome", Color: "#E8F36D", URLPrefix: "https://genomedomains.com/name/", System: SystemWeb3},
	{Key: GitHub, Label: "GitHub", Color: "#000000", URLPrefix: "https://github.com/", System: SystemWeb2, Queryable: true, Web2Suffix: true},
	{Key: Instagram, Label: "Instagram", Color: "#EA3377", URLPrefix: "https://www.instagram.com/", System: SystemWeb2, Queryable: true, Web2Suffix: true},
	{Key: Keybase, Label: "Keybase", Color: "#4162E2", URLPrefix: "https://keybase.io/", System: SystemWeb2, Queryable: true, Web2Suffix: true},
	{Key: Lens, Label: "Lens", Color: "#6bc674", URLPrefix: "https://hey.xyz/u/", System: SystemWeb3, Queryable: true, Suffix: ".lens"},
	{Key: Linea, Label: "Linea Name Service", Color: "#000000", URLPrefix: "https://names.linea.build/", System: SystemWeb3, Queryable: true, Suffix: ".linea.eth"},
	{Key: LinkedIn, Label: "LinkedIn", Color: "#0A66C2", URLPrefix: "https://www.linkedin.com/in/", System: SystemWeb2, Queryable: true, Web2Suffix: true},
	{Key: NextID, Label: "Next.ID", Color: "#000000", URLPrefix: "https://web3.bio/", System: SystemWeb3, Queryable: true, Web2Suffix: true},
	{Key: Nostr, Label: "Nostr", Color: "#A238FF", URLPrefix: "https://primal.net/p/", System: SystemWeb3, Queryable: true, Web2Suffix: true},
	{Key: Reddit, Label: "Reddit", Color: "#ff4500", URLPrefix: "https://www.reddit.com/user/", System: SystemWeb2, Queryable: true, Web2Suffix: true},
	{Key: SeekerID, Label: "Seeker ID", Color: "#00E0FF", URLPrefix: "", System: SystemWeb3},
	{Key: SNS, Label: "SNS", Color: "#000000", URLPrefix: "https://www.sns.id/domain/", System: SystemWeb3, Queryable: true},
	{Key: Solana, Label: "Solana", Color: "#9945FF", URLPrefix: "https://solscan.io/account/", System: SystemWeb3, Queryable: true},
	{Key: SpaceID, Label: "SPACE ID", Color: "#71EBAA", URLPrefix: "https://space.id/", System: SystemWeb3},
	{Key: Telegram, Label: "Telegram", Color: "#0088CC", URLPrefix: "https://t.me/", System: SystemWeb2, Queryable: true, Web2Suffix: true},
	{Key: Twitter, Label: "Twitter (X)", Color: "#000000", URLPrefix: "https://x.com/", System: SystemWeb2, Queryable: true, Web2Suffix: true},
	{Key: UnstoppableDomains, Label: "Unstoppable Domains", Color: "#2E65F5", URLPrefix: "https://ud.me/", System: SystemWeb3, Queryable: true},
	{Key: Website, Label: "Website", Color: "#000000", System: SystemWeb2},
}

var byKey = func() map[Platform]Meta {
	m := make(map[Platform]Meta, len(catalog))
	for _, meta := range catalog {
		if _, dup := m[meta.Key]; dup {
			panic("platform: duplicate catalog entry " + string(meta.Key))
		}
		m[meta.Key] = meta
	}
	return m
}()

// Lookup returns the metadata of p.
func Lookup(p Platform) (Meta, bool) {
	meta, ok := byKey[p]
	return meta, ok
}

// All returns every known platform in catalog order.
func All() []Platform {
	out := make([]Platform, 0, len(catalog))
	for _, meta := range catalog {
		out = append(out, meta.Key)
	}
	return out
}

// IsSupported reports whether p can be queried in platform-qualified mode.
func IsSupported(p Platform) bool {
	meta, ok := byKey[p]
	return ok && meta.Queryable
}

// IsWeb2Suffix reports whether "<handle>.<tag>" is a recognized shorthand.
func IsWeb2Suffix(tag string) bool {
	meta, ok := byKey[Platform(tag)]
	return ok && meta.Web2Suffix
}
