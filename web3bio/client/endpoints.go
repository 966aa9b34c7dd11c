package client

import (
	"context"

	"github.com/liuran001/Web3Bio-Go/web3bio"
	"github.com/liuran001/Web3Bio-Go/web3bio/request"
)

// QueryOption adjusts a single query.
type QueryOption func(*web3bio.QueryOptions)

// WithAPIKey overrides the client API key for one query.
func WithAPIKey(key string) QueryOption {
	return func(o *web3bio.QueryOptions) {
		o.APIKey = key
	}
}

// WithEnabled gates a query; a disabled query makes no request.
func WithEnabled(enabled bool) QueryOption {
	return func(o *web3bio.QueryOptions) {
		o.Enabled = enabled
	}
}

func applyOptions(opts []QueryOption) web3bio.QueryOptions {
	o := web3bio.DefaultQueryOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Fetcher runs one request for an identity.
type Fetcher[T any] func(ctx context.Context, id request.Identity, opts web3bio.QueryOptions) (T, error)

func fetcher[T any](c *Client, endpoint request.Endpoint, universal bool) Fetcher[T] {
	return func(ctx context.Context, id request.Identity, opts web3bio.QueryOptions) (T, error) {
		return fetch[T](ctx, c, endpoint, universal, id, opts)
	}
}

// run executes a one-shot call. A disabled query returns the zero value.
func run[T any](ctx context.Context, f Fetcher[T], id request.Identity, opts []QueryOption) (T, error) {
	o := applyOptions(opts)
	if !o.Enabled {
		var zero T
		return zero, nil
	}
	return f(ctx, id, o)
}

// Profile fetches the profile of a platform-qualified identity.
func (c *Client) Profile(ctx context.Context, identity string, opts ...QueryOption) (*web3bio.ProfileResponse, error) {
	return run(ctx, fetcher[*web3bio.ProfileResponse](c, request.EndpointProfile, false), request.One(identity), opts)
}

// NS fetches name service data of a platform-qualified identity.
func (c *Client) NS(ctx context.Context, identity string, opts ...QueryOption) (*web3bio.NSResponse, error) {
	return run(ctx, fetcher[*web3bio.NSResponse](c, request.EndpointNS, false), request.One(identity), opts)
}

// Domain fetches domain data of a platform-qualified identity.
func (c *Client) Domain(ctx context.Context, identity string, opts ...QueryOption) (*web3bio.DomainResponse, error) {
	return run(ctx, fetcher[*web3bio.DomainResponse](c, request.EndpointDomain, false), request.One(identity), opts)
}

// Credential fetches human, risk and spam credentials of a platform-qualified identity.
func (c *Client) Credential(ctx context.Context, identity string, opts ...QueryOption) (*web3bio.CredentialResponse, error) {
	return run(ctx, fetcher[*web3bio.CredentialResponse](c, request.EndpointCredential, false), request.One(identity), opts)
}

// UniversalProfile lets the server infer the platform and returns every matching profile.
func (c *Client) UniversalProfile(ctx context.Context, identity string, opts ...QueryOption) ([]web3bio.ProfileResponse, error) {
	return run(ctx, fetcher[[]web3bio.ProfileResponse](c, request.EndpointProfile, true), request.One(identity), opts)
}

// UniversalNS is the name service counterpart of UniversalProfile.
func (c *Client) UniversalNS(ctx context.Context, identity string, opts ...QueryOption) ([]web3bio.NSResponse, error) {
	return run(ctx, fetcher[[]web3bio.NSResponse](c, request.EndpointNS, true), request.One(identity), opts)
}

// BatchProfile fetches profiles for several identities in one request.
func (c *Client) BatchProfile(ctx context.Context, identities []string, opts ...QueryOption) ([]web3bio.ProfileResponse, error) {
	return run(ctx, fetcher[[]web3bio.ProfileResponse](c, request.EndpointProfile, false), request.Many(identities...), opts)
}

// BatchNS fetches name service data for several identities in one request.
func (c *Client) BatchNS(ctx context.Context, identities []string, opts ...QueryOption) ([]web3bio.NSResponse, error) {
	return run(ctx, fetcher[[]web3bio.NSResponse](c, request.EndpointNS, false), request.Many(identities...), opts)
}

// ProfileQuery returns an observer over Profile.
func (c *Client) ProfileQuery(identity string, opts ...QueryOption) *Query[*web3bio.ProfileResponse] {
	return startQuery(c, fetcher[*web3bio.ProfileResponse](c, request.EndpointProfile, false), request.One(identity), opts)
}

// NSQuery returns an observer over NS.
func (c *Client) NSQuery(identity string, opts ...QueryOption) *Query[*web3bio.NSResponse] {
	return startQuery(c, fetcher[*web3bio.NSResponse](c, request.EndpointNS, false), request.One(identity), opts)
}

// DomainQuery returns an observer over Domain.
func (c *Client) DomainQuery(identity string, opts ...QueryOption) *Query[*web3bio.DomainResponse] {
	return startQuery(c, fetcher[*web3bio.DomainResponse](c, request.EndpointDomain, false), request.One(identity), opts)
}

// CredentialQuery returns an observer over Credential.
func (c *Client) CredentialQuery(identity string, opts ...QueryOption) *Query[*web3bio.CredentialResponse] {
	return startQuery(c, fetcher[*web3bio.CredentialResponse](c, request.EndpointCredential, false), request.One(identity), opts)
}

// UniversalProfileQuery returns an observer over UniversalProfile.
func (c *Client) UniversalProfileQuery(identity string, opts ...QueryOption) *Query[[]web3bio.ProfileResponse] {
	return startQuery(c, fetcher[[]web3bio.ProfileResponse](c, request.EndpointProfile, true), request.One(identity), opts)
}

// UniversalNSQuery returns an observer over UniversalNS.
func (c *Client) UniversalNSQuery(identity string, opts ...QueryOption) *Query[[]web3bio.NSResponse] {
	return startQuery(c, fetcher[[]web3bio.NSResponse](c, request.EndpointNS, true), request.One(identity), opts)
}

// BatchProfileQuery returns an observer over BatchProfile.
func (c *Client) BatchProfileQuery(identities []string, opts ...QueryOption) *Query[[]web3bio.ProfileResponse] {
	return startQuery(c, fetcher[[]web3bio.ProfileResponse](c, request.EndpointProfile, false), request.Many(identities...), opts)
}

// BatchNSQuery returns an observer over BatchNS.
func (c *Client) BatchNSQuery(identities []string, opts ...QueryOption) *Query[[]web3bio.NSResponse] {
	return startQuery(c, fetcher[[]web3bio.NSResponse](c, request.EndpointNS, false), request.Many(identities...), opts)
}
