package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/rds/auth"

	"github.com/pdf2db/pdf2db/pkg/pdf2db"
)

// azurePostgreSQLScope is the OAuth scope Azure AD uses to issue tokens
// for Azure Database for PostgreSQL.
const azurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"

// tokenProvider acquires a short-lived credential used as the PostgreSQL
// password. String must describe the provider without leaking secrets.
type tokenProvider interface {
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)
	String() string
}

// awsIAMTokenProvider builds RDS IAM auth tokens from the default AWS
// credential chain.
type awsIAMTokenProvider struct {
	endpoint string // host:port
	region   string
	username string
}

func newAWSIAMTokenProvider(config *pdf2db.ConnectionConfig) (*awsIAMTokenProvider, error) {
	if config.AWSRegion == "" {
		return nil, fmt.Errorf("aws-iam auth requires a region (aws_region connection parameter or $AWS_REGION): %w", pdf2db.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("aws-iam auth requires a database username: %w", pdf2db.ErrInvalidConfig)
	}
	return &awsIAMTokenProvider{
		endpoint: fmt.Sprintf("%s:%d", config.Host, config.Port),
		region:   config.AWSRegion,
		username: config.Username,
	}, nil
}

// GetToken builds an RDS auth token. RDS IAM tokens are valid for 15
// minutes from acquisition.
func (p *awsIAMTokenProvider) GetToken(ctx context.Context) (string, time.Time, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(p.region))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("load AWS config: %w", err)
	}

	token, err := auth.BuildAuthToken(ctx, p.endpoint, p.region, p.username, cfg.Credentials)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build RDS auth token: %w", err)
	}
	return token, time.Now().Add(15 * time.Minute), nil
}

func (p *awsIAMTokenProvider) String() string {
	return fmt.Sprintf("AWS IAM (endpoint=%s, region=%s, user=%s)", p.endpoint, p.region, p.username)
}

// azureTokenProvider acquires Entra ID tokens, either through an explicit
// service principal or the default credential chain (managed identity,
// workload identity, Azure CLI, ...).
type azureTokenProvider struct {
	credential azcore.TokenCredential
	desc       string
}

func newAzureTokenProvider(config *pdf2db.ConnectionConfig) (*azureTokenProvider, error) {
	if config.AzureClientSecret != "" {
		if config.AzureTenantID == "" || config.AzureClientID == "" {
			return nil, fmt.Errorf("azure service principal auth requires tenant ID and client ID alongside the secret: %w", pdf2db.ErrInvalidConfig)
		}
		cred, err := azidentity.NewClientSecretCredential(config.AzureTenantID, config.AzureClientID, config.AzureClientSecret, nil)
		if err != nil {
			return nil, fmt.Errorf("create Azure service principal credential: %w", err)
		}
		return &azureTokenProvider{
			credential: cred,
			desc:       fmt.Sprintf("Azure service principal (tenant=%s, client=%s)", config.AzureTenantID, config.AzureClientID),
		}, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("create Azure default credential: %w", err)
	}
	return &azureTokenProvider{credential: cred, desc: "Azure default credential chain"}, nil
}

func (p *azureTokenProvider) GetToken(ctx context.Context) (string, time.Time, error) {
	token, err := p.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{azurePostgreSQLScope},
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("azure token acquisition: %w", err)
	}
	return token.Token, token.ExpiresOn, nil
}

func (p *azureTokenProvider) String() string {
	return p.desc
}
