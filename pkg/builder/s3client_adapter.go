package builder

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	s3ClientAdapter "github.com/joeydtaylor/breathscope/pkg/internal/adapter/s3client"
	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

type (
	S3ClientAdapter = types.S3ClientAdapter
	S3WriterConfig  = types.S3WriterConfig
	S3Object        = types.S3Object
)

////////////////////////
// Adapter constructor +
////////////////////////

// NewS3ClientAdapter creates an uploader for capture archives and report exports.
func NewS3ClientAdapter(ctx context.Context, options ...types.Option[types.S3ClientAdapter]) types.S3ClientAdapter {
	return s3ClientAdapter.NewS3ClientAdapter(ctx, options...)
}

// S3ClientAdapterWithClientAndBucket injects an AWS client and bucket.
func S3ClientAdapterWithClientAndBucket(cli *s3.Client, bucket string) types.Option[types.S3ClientAdapter] {
	return s3ClientAdapter.WithClientAndBucket(cli, bucket)
}

func S3ClientAdapterWithWriterConfig(cfg types.S3WriterConfig) types.Option[types.S3ClientAdapter] {
	return s3ClientAdapter.WithWriterConfig(cfg)
}

// S3ClientAdapterWithWriterPrefixTemplate sets the key prefix, e.g. "captures/{yyyy}/{MM}/{dd}".
func S3ClientAdapterWithWriterPrefixTemplate(prefix string) types.Option[types.S3ClientAdapter] {
	return s3ClientAdapter.WithPrefixTemplate(prefix)
}

func S3ClientAdapterWithSSE(mode, kmsKey string) types.Option[types.S3ClientAdapter] {
	return s3ClientAdapter.WithSSE(mode, kmsKey)
}

func S3ClientAdapterWithRetryBackoff(base time.Duration) types.Option[types.S3ClientAdapter] {
	return s3ClientAdapter.WithRetryBackoff(base)
}

func S3ClientAdapterWithLogger(l ...types.Logger) types.Option[types.S3ClientAdapter] {
	return s3ClientAdapter.WithLogger(l...)
}

func S3ClientAdapterWithComponentMetadata(name string, id string) types.Option[types.S3ClientAdapter] {
	return s3ClientAdapter.WithComponentMetadata(name, id)
}

// UploadCapture compresses samples and uploads them as <name><ext>.
func UploadCapture(ctx context.Context, a types.S3ClientAdapter, name string, samples []SamplePair, algorithm CompressionAlgorithm) (string, error) {
	return s3ClientAdapter.UploadCapture(ctx, a, name, samples, algorithm)
}

// UploadReport uploads the parquet peak and summary exports of r.
func UploadReport(ctx context.Context, a types.S3ClientAdapter, r Report, compression string) ([]string, error) {
	return s3ClientAdapter.UploadReport(ctx, a, r, compression)
}

/////////////////////////////////////////////
// Compliant S3 client constructors (no env)
/////////////////////////////////////////////

// endpointOptions points both S3 and STS at endpoint when it is set.
func endpointOptions(endpoint string, forcePathStyle bool) (func(*s3.Options), func(*sts.Options)) {
	s3Opt := func(o *s3.Options) {
		o.UsePathStyle = forcePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}
	stsOpt := func(o *sts.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}
	return s3Opt, stsOpt
}

// NewS3ClientStatic creates an S3 client using static credentials.
// If endpoint != "", it's used (LocalStack/MinIO). forcePathStyle=true for emulators.
func NewS3ClientStatic(
	ctx context.Context,
	region string,
	accessKey string,
	secretKey string,
	sessionToken string, // "" if none
	endpoint string, // "" for AWS
	forcePathStyle bool,
) (*s3.Client, error) {
	var loaders []func(*config.LoadOptions) error
	if region != "" {
		loaders = append(loaders, config.WithRegion(region))
	}
	loaders = append(loaders, config.WithCredentialsProvider(
		credentials.NewStaticCredentialsProvider(accessKey, secretKey, sessionToken),
	))
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}
	s3Opt, _ := endpointOptions(endpoint, forcePathStyle)
	return s3.NewFromConfig(cfg, s3Opt), nil
}

// NewS3ClientAssumeRole creates an S3 client by assuming an IAM role via STS.
// sourceCreds: underlying creds to call STS. If nil, default chain.
// externalID optional. duration capped by role MaxSessionDuration.
func NewS3ClientAssumeRole(
	ctx context.Context,
	region string,
	roleARN string,
	sessionName string,
	duration time.Duration,
	externalID string,
	sourceCreds aws.CredentialsProvider, // nil => default provider chain
	endpoint string, // optional S3/STS endpoint override
	forcePathStyle bool,
) (*s3.Client, error) {
	var loaders []func(*config.LoadOptions) error
	if region != "" {
		loaders = append(loaders, config.WithRegion(region))
	}
	if sourceCreds != nil {
		loaders = append(loaders, config.WithCredentialsProvider(sourceCreds))
	}
	baseCfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}

	s3Opt, stsOpt := endpointOptions(endpoint, forcePathStyle)
	stsClient := sts.NewFromConfig(baseCfg, stsOpt)

	provider := stscreds.NewAssumeRoleProvider(stsClient, roleARN, func(o *stscreds.AssumeRoleOptions) {
		if sessionName != "" {
			o.RoleSessionName = sessionName
		}
		if duration > 0 {
			o.Duration = duration
		}
		if externalID != "" {
			o.ExternalID = &externalID
		}
	})

	assumed := baseCfg
	assumed.Credentials = aws.NewCredentialsCache(provider)

	return s3.NewFromConfig(assumed, s3Opt), nil
}

// NewS3ClientWebIdentity assumes a role using an OIDC/WebIdentity token file (e.g., EKS IRSA).
func NewS3ClientWebIdentity(
	ctx context.Context,
	region string,
	roleARN string,
	sessionName string,
	tokenFile string,
	duration time.Duration,
	endpoint string,
	forcePathStyle bool,
) (*s3.Client, error) {
	var loaders []func(*config.LoadOptions) error
	if region != "" {
		loaders = append(loaders, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}
	s3Opt, stsOpt := endpointOptions(endpoint, forcePathStyle)
	stsClient := sts.NewFromConfig(cfg, stsOpt)
	provider := stscreds.NewWebIdentityRoleProvider(
		stsClient,
		roleARN,
		stscreds.IdentityTokenFile(tokenFile),
		func(o *stscreds.WebIdentityRoleOptions) {
			if sessionName != "" {
				o.RoleSessionName = sessionName
			}
			if duration > 0 {
				o.Duration = duration
			}
		},
	)

	assumed := cfg
	assumed.Credentials = aws.NewCredentialsCache(provider)

	return s3.NewFromConfig(assumed, s3Opt), nil
}
