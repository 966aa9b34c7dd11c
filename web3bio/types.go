package web3bio

// AddressRecord is a blockchain address record.
type AddressRecord struct {
	Address  string `json:"address"`
	Network  string `json:"network"`
	TypeName string `json:"__typename,omitempty"`
}

// SocialLinksItem describes one social link on a profile.
type SocialLinksItem struct {
	Link    *string  `json:"link"`
	Handle  *string  `json:"handle"`
	Sources []string `json:"sources"`
}

// SocialRecord holds social account metrics.
type SocialRecord struct {
	UID       *int64 `json:"uid,omitempty"`
	Follower  int64  `json:"follower,omitempty"`
	Following int64  `json:"following,omitempty"`
}

// NSResponse is the name service payload.
type NSResponse struct {
	Identity    string   `json:"identity"`
	Address     *string  `json:"address"`
	Avatar      *string  `json:"avatar"`
	Description *string  `json:"description"`
	Platform    string   `json:"platform"`
	DisplayName *string  `json:"displayName"`
	Aliases     []string `json:"aliases,omitempty"`
}

// ProfileResponse is the full profile payload.
type ProfileResponse struct {
	NSResponse
	Email       *string                    `json:"email"`
	Contenthash *string                    `json:"contenthash"`
	Header      *string                    `json:"header"`
	Location    *string                    `json:"location"`
	CreatedAt   *string                    `json:"createdAt"`
	Status      *string                    `json:"status"`
	Error       string                     `json:"error,omitempty"`
	Links       map[string]SocialLinksItem `json:"links"`
	Social      SocialRecord               `json:"social"`
}

// DomainResponse is the domain payload.
type DomainResponse struct {
	Identity        string            `json:"identity"`
	Platform        string            `json:"platform"`
	ResolvedAddress *string           `json:"resolvedAddress"`
	OwnerAddress    *string           `json:"ownerAddress"`
	ManagerAddress  *string           `json:"managerAddress"`
	DisplayName     *string           `json:"displayName"`
	IsPrimary       bool              `json:"isPrimary"`
	Status          string            `json:"status"`
	CreatedAt       *string           `json:"createdAt"`
	UpdatedAt       *string           `json:"updatedAt"`
	ExpiredAt       *string           `json:"expiredAt"`
	Contenthash     *string           `json:"contenthash"`
	Texts           map[string]string `json:"texts"`
	Addresses       map[string]string `json:"addresses"`
}

// Credential categories.
const (
	CredentialIsHuman = "isHuman"
	CredentialIsRisky = "isRisky"
	CredentialIsSpam  = "isSpam"
)

// CredentialData is one attestation about an identity.
type CredentialData struct {
	ID          string  `json:"id"`
	Platform    string  `json:"platform,omitempty"`
	Category    string  `json:"category"`
	DataSource  string  `json:"dataSource"`
	Type        string  `json:"type"`
	Value       string  `json:"value"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Link        *string `json:"link"`
	UpdatedAt   *int64  `json:"updatedAt"`
	ExpiredAt   *int64  `json:"expiredAt"`
}

// CredentialResponse groups credentials by category; a nil slice means none.
type CredentialResponse struct {
	IsHuman []CredentialData `json:"isHuman"`
	IsRisky []CredentialData `json:"isRisky"`
	IsSpam  []CredentialData `json:"isSpam"`
}

// QueryOptions configures a single query.
type QueryOptions struct {
	// APIKey overrides the client-wide key.
	APIKey string
	// Enabled gates execution; a disabled query never touches the network.
	Enabled bool
}

// DefaultQueryOptions returns options with Enabled set.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{Enabled: true}
}

// Result mirrors the state of a query at one point in time.
type Result[T any] struct {
	Data      T
	IsLoading bool
	Err       error
}
