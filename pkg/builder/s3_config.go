package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 client construction modes, picked by S3ClientConfig.Mode.
const (
	S3ModeWebIdentity        = "web-identity"
	S3ModeAssumeRoleEndpoint = "assume-role-endpoint"
	S3ModeAssumeRole         = "assume-role"
	S3ModeStatic             = "static"
	S3ModeDefaultChain       = "default-chain"
)

// S3ClientConfig describes how to reach the bucket that stores captures and
// exports.
type S3ClientConfig struct {
	Region         string
	Endpoint       string // LocalStack/MinIO; "" for AWS
	ForcePathStyle bool

	AccessKey    string
	SecretKey    string
	SessionToken string

	RoleARN              string
	SessionName          string
	ExternalID           string
	RoleDuration         time.Duration
	WebIdentityTokenFile string
}

// S3ClientConfigFromEnv reads <prefix>REGION, ENDPOINT, PATH_STYLE,
// ACCESS_KEY, SECRET_KEY, SESSION_TOKEN, ROLE_ARN, SESSION_NAME, EXTERNAL_ID,
// ROLE_DURATION and WEB_IDENTITY_TOKEN_FILE. An empty prefix means
// "BREATH_S3_". Region and keys fall back to the standard AWS_* variables.
func S3ClientConfigFromEnv(prefix string) S3ClientConfig {
	if prefix == "" {
		prefix = "BREATH_S3_"
	}
	endpoint := EnvOr(prefix+"ENDPOINT", "")
	cfg := S3ClientConfig{
		Region:               EnvOr(prefix+"REGION", EnvOr("AWS_REGION", "us-east-1")),
		Endpoint:             endpoint,
		ForcePathStyle:       EnvBoolOr(prefix+"PATH_STYLE", endpoint != ""),
		AccessKey:            EnvOr(prefix+"ACCESS_KEY", EnvOr("AWS_ACCESS_KEY_ID", "")),
		SecretKey:            EnvOr(prefix+"SECRET_KEY", EnvOr("AWS_SECRET_ACCESS_KEY", "")),
		SessionToken:         EnvOr(prefix+"SESSION_TOKEN", EnvOr("AWS_SESSION_TOKEN", "")),
		RoleARN:              EnvOr(prefix+"ROLE_ARN", ""),
		SessionName:          EnvOr(prefix+"SESSION_NAME", "breathscope"),
		ExternalID:           EnvOr(prefix+"EXTERNAL_ID", ""),
		WebIdentityTokenFile: EnvOr(prefix+"WEB_IDENTITY_TOKEN_FILE", ""),
	}
	if d, err := time.ParseDuration(EnvOr(prefix+"ROLE_DURATION", "")); err == nil {
		cfg.RoleDuration = d
	}
	return cfg
}

// Mode reports which constructor NewS3Client will use.
func (c S3ClientConfig) Mode() string {
	switch {
	case c.RoleARN != "" && c.WebIdentityTokenFile != "":
		return S3ModeWebIdentity
	case c.RoleARN != "" && c.Endpoint != "":
		return S3ModeAssumeRoleEndpoint
	case c.RoleARN != "":
		return S3ModeAssumeRole
	case c.AccessKey != "" && c.SecretKey != "":
		return S3ModeStatic
	default:
		return S3ModeDefaultChain
	}
}

// NewS3Client builds an S3 client for cfg.Mode().
func NewS3Client(ctx context.Context, cfg S3ClientConfig) (*s3.Client, error) {
	switch cfg.Mode() {
	case S3ModeWebIdentity:
		return NewS3ClientWebIdentity(ctx, cfg.Region, cfg.RoleARN, cfg.SessionName,
			cfg.WebIdentityTokenFile, cfg.RoleDuration, cfg.Endpoint, cfg.ForcePathStyle)
	case S3ModeAssumeRoleEndpoint:
		return NewS3ClientAssumeRoleLocalstack(ctx, LocalstackS3AssumeRoleConfig{
			RoleARN:      cfg.RoleARN,
			SessionName:  cfg.SessionName,
			Region:       cfg.Region,
			Duration:     cfg.RoleDuration,
			ExternalID:   cfg.ExternalID,
			Endpoint:     cfg.Endpoint,
			AccessKey:    cfg.AccessKey,
			SecretKey:    cfg.SecretKey,
			SessionToken: cfg.SessionToken,
		})
	case S3ModeAssumeRole:
		var source aws.CredentialsProvider
		if cfg.AccessKey != "" && cfg.SecretKey != "" {
			source = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken)
		}
		return NewS3ClientAssumeRole(ctx, cfg.Region, cfg.RoleARN, cfg.SessionName,
			cfg.RoleDuration, cfg.ExternalID, source, cfg.Endpoint, cfg.ForcePathStyle)
	case S3ModeStatic:
		return NewS3ClientStatic(ctx, cfg.Region, cfg.AccessKey, cfg.SecretKey,
			cfg.SessionToken, cfg.Endpoint, cfg.ForcePathStyle)
	default:
		var loaders []func(*config.LoadOptions) error
		if cfg.Region != "" {
			loaders = append(loaders, config.WithRegion(cfg.Region))
		}
		awsCfg, err := config.LoadDefaultConfig(ctx, loaders...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		s3Opt, _ := endpointOptions(cfg.Endpoint, cfg.ForcePathStyle)
		return s3.NewFromConfig(awsCfg, s3Opt), nil
	}
}
