package grpc

import (
	"context"

	"github.com/m-zajac/ghreputation/internal/app"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls Reputation service.
// Errors returned by the server are mapped back to app error kinds.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates new Client instance.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Profile returns aggregated github profile.
func (c *Client) Profile(ctx context.Context, login string) (*app.Profile, error) {
	var profile app.Profile
	if err := c.invoke(ctx, profileMethod, login, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// Reputation returns reputation score.
func (c *Client) Reputation(ctx context.Context, login string) (*app.Reputation, error) {
	var reputation app.Reputation
	if err := c.invoke(ctx, reputationMethod, login, &reputation); err != nil {
		return nil, err
	}

	return &reputation, nil
}

func (c *Client) invoke(ctx context.Context, method string, login string, target interface{}) error {
	var trailer metadata.MD
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, wrapperspb.String(login), out, grpc.Trailer(&trailer)); err != nil {
		return fromStatusError(err, trailer)
	}

	return fromStruct(out, target)
}
