package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SecretPrefix marks a value that names an SSM parameter instead of holding the secret.
const SecretPrefix = "ssm:"

type ParameterAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type Client struct {
	SSM    ParameterAPI
	Region string
}

func NewClient(ctx context.Context, region string) (*Client, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	return &Client{
		SSM:    ssm.NewFromConfig(cfg),
		Region: cfg.Region,
	}, nil
}

func IsSecretReference(value string) bool {
	return strings.HasPrefix(value, SecretPrefix)
}

// ResolveSecret reads the decrypted value of the parameter named by ref ("ssm:<name>").
func (c *Client) ResolveSecret(ctx context.Context, ref string) (string, error) {
	name := strings.TrimPrefix(ref, SecretPrefix)
	if name == "" {
		return "", fmt.Errorf("empty SSM parameter name in %q", ref)
	}

	out, err := c.SSM.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read SSM parameter %s: %w", name, err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", fmt.Errorf("SSM parameter %s has no value", name)
	}

	return aws.ToString(out.Parameter.Value), nil
}
